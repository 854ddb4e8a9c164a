// Package drawsolver finds a random derangement of group members that avoids
// a set of excluded pairs.
package drawsolver

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/giftgroup/backend/pkg/crypto"
	"golang.org/x/exp/slices"
)

const (
	DefaultAttempts   = 100
	DefaultNodeBudget = 1_000_000

	// ctx and the deadline are polled once per this many search nodes.
	cancelCheckInterval = 1024
)

var (
	ErrTooFewMembers = errors.New("drawsolver: at least two members are required")
	ErrInfeasible    = errors.New("drawsolver: no valid assignment exists")
)

type Phase string

const (
	PhaseShuffle   Phase = "shuffle"
	PhaseBacktrack Phase = "backtrack"

	// PhaseMatching returns the randomized matching found by the feasibility
	// check once the backtracking budget is spent.
	PhaseMatching Phase = "matching"
)

type Result struct {
	// Assignment maps every giver to its receiver.
	Assignment map[string]string
	Phase      Phase

	// Nodes is the number of search nodes the backtracking phase visited.
	Nodes int
}

type Option func(*Solver)

// WithAttempts sets the number of random shuffles tried before the exact
// search. Zero goes straight to the search.
func WithAttempts(n int) Option {
	return func(s *Solver) {
		if n >= 0 {
			s.attempts = n
		}
	}
}

func WithNodeBudget(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.nodeBudget = n
		}
	}
}

// WithTimeout bounds the wall time of the backtracking phase like the node
// budget does. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Solver) {
		if d >= 0 {
			s.timeout = d
		}
	}
}

// WithRand replaces the random source. newRand is called once per Solve, the
// returned *rand.Rand is not shared between calls.
func WithRand(newRand func() *rand.Rand) Option {
	return func(s *Solver) {
		if newRand != nil {
			s.newRand = newRand
		}
	}
}

// Solver is safe for concurrent use.
type Solver struct {
	attempts   int
	nodeBudget int
	timeout    time.Duration
	newRand    func() *rand.Rand
}

func New(opts ...Option) *Solver {
	s := &Solver{
		attempts:   DefaultAttempts,
		nodeBudget: DefaultNodeBudget,
		newRand:    crypto.NewMathRand,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Solve returns a mapping giver -> receiver over the distinct members where
// nobody receives themselves and no mapped pair is excluded, in either
// orientation. Exclusions naming unknown members or a member twice are
// ignored.
func (s *Solver) Solve(ctx context.Context, members []string, exclusions []Pair) (map[string]string, error) {
	result, err := s.SolveDetailed(ctx, members, exclusions)
	if err != nil {
		return nil, err
	}

	return result.Assignment, nil
}

func (s *Solver) SolveDetailed(ctx context.Context, members []string, exclusions []Pair) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := newProblem(members, exclusions)
	if p.size() < 2 {
		return nil, ErrTooFewMembers
	}

	r := s.newRand()
	witness, ok := p.perfectMatching(r)
	if !ok {
		return nil, ErrInfeasible
	}

	if perm, ok := p.shuffle(r, s.attempts); ok {
		return &Result{Assignment: p.toMap(perm), Phase: PhaseShuffle}, nil
	}

	b := &backtracker{
		ctx:    ctx,
		p:      p,
		budget: s.nodeBudget,
		used:   make([]bool, p.size()),
		assign: make([]int, p.size()),
	}
	if s.timeout > 0 {
		b.deadline = time.Now().Add(s.timeout)
	}

	if b.run(r) {
		return &Result{Assignment: p.toMap(b.assign), Phase: PhaseBacktrack, Nodes: b.nodes}, nil
	}

	if b.err != nil {
		return nil, b.err
	}

	return &Result{Assignment: p.toMap(witness), Phase: PhaseMatching, Nodes: b.nodes}, nil
}

type problem struct {
	ids        []string
	forbidden  [][]bool
	candidates [][]int
}

func newProblem(members []string, exclusions []Pair) *problem {
	index := make(map[string]int, len(members))
	ids := make([]string, 0, len(members))
	for _, m := range members {
		if _, ok := index[m]; ok {
			continue
		}

		index[m] = len(ids)
		ids = append(ids, m)
	}

	n := len(ids)
	forbidden := make([][]bool, n)
	for i := range forbidden {
		forbidden[i] = make([]bool, n)
		forbidden[i][i] = true
	}

	for _, e := range exclusions {
		a, okA := index[e.A]
		b, okB := index[e.B]
		if !okA || !okB {
			continue
		}

		forbidden[a][b] = true
		forbidden[b][a] = true
	}

	candidates := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if !forbidden[i][j] {
				candidates[i] = append(candidates[i], j)
			}
		}
	}

	return &problem{ids: ids, forbidden: forbidden, candidates: candidates}
}

func (p *problem) size() int {
	return len(p.ids)
}

// shuffle tries up to attempts uniform permutations and returns the first
// one valid at every position.
func (p *problem) shuffle(r *rand.Rand, attempts int) ([]int, bool) {
	perm := make([]int, p.size())
	for i := range perm {
		perm[i] = i
	}

	for attempt := 0; attempt < attempts; attempt++ {
		r.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
		if p.valid(perm) {
			return perm, true
		}
	}

	return nil, false
}

func (p *problem) valid(perm []int) bool {
	for giver, receiver := range perm {
		if p.forbidden[giver][receiver] {
			return false
		}
	}

	return true
}

func (p *problem) toMap(perm []int) map[string]string {
	result := make(map[string]string, len(perm))
	for giver, receiver := range perm {
		result[p.ids[giver]] = p.ids[receiver]
	}

	return result
}

// perfectMatching returns a valid assignment, giver -> receiver, or false
// when none exists. Givers and their candidates are visited in an order drawn
// from r, so the witness is not biased toward low member indexes.
func (p *problem) perfectMatching(r *rand.Rand) ([]int, bool) {
	n := p.size()
	giverOf := make([]int, n)
	for i := range giverOf {
		giverOf[i] = -1
	}

	candidates := make([][]int, n)
	for i, c := range p.candidates {
		candidates[i] = slices.Clone(c)
		r.Shuffle(len(candidates[i]), func(x, y int) {
			candidates[i][x], candidates[i][y] = candidates[i][y], candidates[i][x]
		})
	}

	var augment func(giver int, seen []bool) bool
	augment = func(giver int, seen []bool) bool {
		for _, receiver := range candidates[giver] {
			if seen[receiver] {
				continue
			}
			seen[receiver] = true

			if giverOf[receiver] < 0 || augment(giverOf[receiver], seen) {
				giverOf[receiver] = giver
				return true
			}
		}

		return false
	}

	for _, giver := range r.Perm(n) {
		if len(candidates[giver]) == 0 || !augment(giver, make([]bool, n)) {
			return nil, false
		}
	}

	assign := make([]int, n)
	for receiver, giver := range giverOf {
		assign[giver] = receiver
	}

	return assign, true
}

type backtracker struct {
	ctx      context.Context
	p        *problem
	budget   int
	deadline time.Time

	order      []int
	candidates [][]int
	assigned   []bool
	used       []bool
	assign     []int
	nodes      int
	exhausted  bool
	err        error
}

func (b *backtracker) run(r *rand.Rand) bool {
	n := b.p.size()
	b.assigned = make([]bool, n)

	b.candidates = make([][]int, n)
	for i, c := range b.p.candidates {
		b.candidates[i] = slices.Clone(c)
		r.Shuffle(len(b.candidates[i]), func(x, y int) {
			b.candidates[i][x], b.candidates[i][y] = b.candidates[i][y], b.candidates[i][x]
		})
	}

	// Ties between equally constrained givers follow this random order.
	b.order = r.Perm(n)

	return b.visit(0)
}

// next returns the unassigned giver with the fewest free receivers, or -1
// when one of them has none left.
func (b *backtracker) next() int {
	best, bestFree := -1, 0
	for _, giver := range b.order {
		if b.assigned[giver] {
			continue
		}

		free := 0
		for _, receiver := range b.candidates[giver] {
			if !b.used[receiver] {
				free++
			}
		}

		if free == 0 {
			return -1
		}

		if best < 0 || free < bestFree {
			best, bestFree = giver, free
		}
	}

	return best
}

func (b *backtracker) visit(depth int) bool {
	if depth == len(b.order) {
		return true
	}

	giver := b.next()
	if giver < 0 {
		return false
	}

	b.assigned[giver] = true
	for _, receiver := range b.candidates[giver] {
		if b.used[receiver] {
			continue
		}

		b.nodes++
		if b.exhausted || b.nodes > b.budget {
			b.exhausted = true
			break
		}

		if b.nodes%cancelCheckInterval == 0 {
			if err := b.ctx.Err(); err != nil {
				b.err = err
				break
			}

			if !b.deadline.IsZero() && time.Now().After(b.deadline) {
				b.exhausted = true
				break
			}
		}

		b.used[receiver] = true
		b.assign[giver] = receiver
		if b.visit(depth + 1) {
			return true
		}

		b.used[receiver] = false
		if b.err != nil || b.exhausted {
			break
		}
	}

	b.assigned[giver] = false
	return false
}
