package reactive

import (
	"errors"
	"sync"
	"testing"
)

func TestOwnerHierarchy(t *testing.T) {
	parent := NewOwner(nil)
	defer parent.Dispose()

	child := NewOwner(parent)
	if child.Parent() != parent {
		t.Error("child should reference its parent")
	}
	if len(parent.childSnapshot()) != 1 {
		t.Errorf("expected 1 child, got %d", len(parent.childSnapshot()))
	}
}

func TestOwnerDisposeOrder(t *testing.T) {
	parent := NewOwner(nil)
	a := NewOwner(parent)
	b := NewOwner(parent)

	var order []string
	a.OnCleanup(func() { order = append(order, "a") })
	b.OnCleanup(func() { order = append(order, "b") })
	parent.OnCleanup(func() { order = append(order, "parent-1") })
	parent.OnCleanup(func() { order = append(order, "parent-2") })

	parent.Dispose()

	want := []string{"b", "a", "parent-2", "parent-1"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
	if !a.IsDisposed() || !b.IsDisposed() {
		t.Error("children should be disposed with their parent")
	}
}

func TestOwnerOnCleanupAfterDispose(t *testing.T) {
	owner := NewOwner(nil)
	owner.Dispose()

	ran := false
	owner.OnCleanup(func() { ran = true })
	if !ran {
		t.Error("cleanup registered after dispose should run immediately")
	}
}

func TestOwnerDoubleDispose(t *testing.T) {
	owner := NewOwner(nil)
	count := 0
	owner.OnCleanup(func() { count++ })

	owner.Dispose()
	owner.Dispose()

	if count != 1 {
		t.Errorf("cleanup should run once, got %d", count)
	}
}

func TestOwnerDisposeRemovesFromParent(t *testing.T) {
	parent := NewOwner(nil)
	defer parent.Dispose()

	child := NewOwner(parent)
	child.Dispose()

	if len(parent.childSnapshot()) != 0 {
		t.Errorf("disposed child should be removed from parent, got %d children", len(parent.childSnapshot()))
	}
}

func TestOwnerRunPendingEffectsInChildren(t *testing.T) {
	root := NewOwner(nil)
	defer root.Dispose()
	child := NewOwner(root)

	count := NewSignal(0)
	runs := 0
	WithOwner(child, func() {
		CreateEffect(func() Cleanup {
			_ = count.Get()
			runs++
			return nil
		})
	})

	count.Set(1)
	if !root.HasPendingEffects() {
		t.Error("root should see pending effects of its children")
	}

	root.RunPendingEffects(nil)
	if runs != 2 {
		t.Errorf("expected 2 runs, got %d", runs)
	}
	if root.HasPendingEffects() {
		t.Error("no effects should remain pending")
	}
}

func TestRootDrainsAutomatically(t *testing.T) {
	var drains []DrainStats
	root := NewRoot(WithDrainHook(func(s DrainStats) { drains = append(drains, s) }))
	defer root.Dispose()

	a := NewSignal(0)
	b := NewSignal(0)

	// a -> b chain: writing a must settle b within the same call.
	var seenB int
	WithOwner(root, func() {
		CreateEffect(func() Cleanup {
			b.Set(a.Get() * 10)
			return nil
		})
		CreateEffect(func() Cleanup {
			seenB = b.Get()
			return nil
		})
	})

	a.Set(2)
	if seenB != 20 {
		t.Errorf("expected chained value 20, got %d", seenB)
	}
	if len(drains) == 0 {
		t.Fatal("drain hook should have been called")
	}
	if drains[len(drains)-1].Exceeded {
		t.Error("drain should not exceed an unlimited budget")
	}
}

func TestRootStormBudget(t *testing.T) {
	budget := NewStormBudget(5)
	var last DrainStats
	root := NewRoot(WithStormBudget(budget), WithDrainHook(func(s DrainStats) { last = s }))
	defer root.Dispose()

	n := NewSignal(0)
	WithOwner(root, func() {
		// Writes its own dependency: loops until the budget stops it.
		CreateEffect(func() Cleanup {
			v := n.Get()
			n.Set(v + 1)
			return nil
		})
	})

	if !last.Exceeded {
		t.Error("self-triggering effect should exceed the storm budget")
	}
	if last.EffectRuns != 5 {
		t.Errorf("expected 5 effect runs in the drain, got %d", last.EffectRuns)
	}
	if budget.Exceeded() == 0 {
		t.Error("budget should record the overflow")
	}
	if !root.HasPendingEffects() {
		t.Error("effect beyond the budget should stay pending")
	}
}

func TestRunPendingEffectsBudgetError(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	s := NewSignal(0)
	WithOwner(owner, func() {
		for i := 0; i < 3; i++ {
			CreateEffect(func() Cleanup {
				_ = s.Get()
				return nil
			})
		}
	})

	s.Set(1)
	err := owner.RunPendingEffects(NewStormBudget(2))
	if !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("expected ErrBudgetExceeded, got %v", err)
	}
	if !owner.HasPendingEffects() {
		t.Error("remaining effect should be requeued")
	}
	if err := owner.RunPendingEffects(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner.HasPendingEffects() {
		t.Error("requeued effect should run on the next pass")
	}
}

func TestRootConcurrentWriters(t *testing.T) {
	root := NewRoot()
	defer root.Dispose()

	signals := make([]*Signal[int], 8)
	for i := range signals {
		signals[i] = NewSignal(0)
	}

	var mu sync.Mutex
	total := 0
	WithOwner(root, func() {
		for _, s := range signals {
			s := s
			CreateEffect(func() Cleanup {
				v := s.Get()
				mu.Lock()
				total += v
				mu.Unlock()
				return nil
			})
		}
	})

	var wg sync.WaitGroup
	for i, s := range signals {
		wg.Add(1)
		go func(i int, s *Signal[int]) {
			defer wg.Done()
			defer ReleaseGoroutine()
			s.Set(i + 1)
		}(i, s)
	}
	wg.Wait()
	root.Flush()

	mu.Lock()
	defer mu.Unlock()
	if total != 36 {
		t.Errorf("expected every effect to observe its write (sum 36), got %d", total)
	}
}
