package drawsolver

import "github.com/giftgroup/backend/internal/entity"

// Pair is an unordered pair of members, A <= B always holds.
type Pair struct {
	A string
	B string
}

func NewPair(a, b string) Pair {
	a, b = entity.OrderPair(a, b)
	return Pair{A: a, B: b}
}
