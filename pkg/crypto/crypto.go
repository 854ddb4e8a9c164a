package crypto

import (
	"crypto/rand"
	"math"
	"math/big"
	mrand "math/rand"
)

// RandInt63 returns a uniform random value in [0, 1<<63 - 1).
func RandInt63() int64 {
	r, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		panic(err)
	}

	return r.Int64()
}

// NewMathRand returns a fast generator seeded from the system random source.
// Two generators created at the same instant do not share a sequence.
func NewMathRand() *mrand.Rand {
	return mrand.New(mrand.NewSource(RandInt63()))
}
