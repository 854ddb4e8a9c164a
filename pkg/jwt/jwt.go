package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const issuer = "giftgroup"

var ErrInvalidToken = errors.New("invalid token")

type claims[T any] struct {
	jwt.RegisteredClaims
	Object T `json:"obj,omitempty"`
}

// Engine signs tokens. The draw service only verifies tokens in production,
// Engine exists for the auth service contract and for tests.
type Engine[T any] struct {
	Expiration time.Duration

	secret  []byte
	counter atomic.Int64
}

func NewEngine[T any](secret string, expiration time.Duration) *Engine[T] {
	return &Engine[T]{secret: []byte(secret), Expiration: expiration}
}

func (e *Engine[T]) Generate(sub string, obj T) (string, error) {
	now := time.Now()
	c := claims[T]{
		Object: obj,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(e.Expiration)),
			ID:        strconv.FormatInt(e.counter.Add(1), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			NotBefore: jwt.NewNumericDate(now),
			Subject:   sub,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(e.secret)
}

type Verifier[T any] struct {
	secret []byte
}

func NewVerifier[T any](secret string) *Verifier[T] {
	return &Verifier[T]{secret: []byte(secret)}
}

func (v *Verifier[T]) Verify(token string) (T, error) {
	var c claims[T]
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return v.secret, nil
	})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return c.Object, nil
}
