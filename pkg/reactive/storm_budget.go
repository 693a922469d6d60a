package reactive

import "sync"

// StormBudgetChecker is consulted before every effect run of a drain. It
// protects against effects that keep re-triggering each other.
type StormBudgetChecker interface {
	CheckEffectRun() error
	ResetTick()
}

// StormBudget limits effect runs per drain ("tick").
type StormBudget struct {
	maxEffectRuns int

	mu                 sync.Mutex
	effectRunsThisTick int
	exceeded           int
}

// NewStormBudget returns a budget allowing maxEffectRuns effect runs per
// tick. Zero or a negative value disables the limit and returns nil.
func NewStormBudget(maxEffectRuns int) *StormBudget {
	if maxEffectRuns <= 0 {
		return nil
	}
	return &StormBudget{maxEffectRuns: maxEffectRuns}
}

// CheckEffectRun returns ErrBudgetExceeded once the tick's limit is reached.
func (b *StormBudget) CheckEffectRun() error {
	if b == nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.effectRunsThisTick >= b.maxEffectRuns {
		b.exceeded++
		return ErrBudgetExceeded
	}
	b.effectRunsThisTick++
	return nil
}

// ResetTick starts a new tick.
func (b *StormBudget) ResetTick() {
	if b == nil {
		return
	}

	b.mu.Lock()
	b.effectRunsThisTick = 0
	b.mu.Unlock()
}

// Exceeded returns how many times the limit has been hit.
func (b *StormBudget) Exceeded() int {
	if b == nil {
		return 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.exceeded
}
