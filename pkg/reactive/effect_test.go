package reactive

import "testing"

func TestEffectRunsOnCreate(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	ran := false
	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			ran = true
			return nil
		})
	})

	if !ran {
		t.Error("effect should run immediately on creation")
	}
}

func TestEffectTracksDependencies(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	count := NewSignal(0)
	runCount := 0

	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			_ = count.Get()
			runCount++
			return nil
		})
	})

	count.Set(1)
	if runCount != 1 {
		t.Errorf("manual owner should not run before RunPendingEffects, got %d runs", runCount)
	}

	if err := owner.RunPendingEffects(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runCount != 2 {
		t.Errorf("expected 2 runs after signal change, got %d", runCount)
	}
}

func TestEffectCleanupBeforeRerun(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	count := NewSignal(0)
	cleanupCount := 0
	runCount := 0

	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			_ = count.Get()
			runCount++
			return func() {
				cleanupCount++
			}
		})
	})

	count.Set(1)
	owner.RunPendingEffects(nil)

	if runCount != 2 {
		t.Errorf("expected 2 runs, got %d", runCount)
	}
	if cleanupCount != 1 {
		t.Errorf("expected 1 cleanup before re-run, got %d", cleanupCount)
	}

	owner.Dispose()
	if cleanupCount != 2 {
		t.Errorf("expected cleanup on dispose, got %d", cleanupCount)
	}
}

func TestEffectDynamicDependencies(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	flag := NewSignal(true)
	a := NewSignal(1)
	b := NewSignal(2)

	runCount := 0
	var lastValue int

	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			runCount++
			if flag.Get() {
				lastValue = a.Get()
			} else {
				lastValue = b.Get()
			}
			return nil
		})
	})

	// b is not read yet.
	b.Set(20)
	owner.RunPendingEffects(nil)
	if runCount != 1 {
		t.Errorf("changing b should not trigger, got %d runs", runCount)
	}

	flag.Set(false)
	owner.RunPendingEffects(nil)
	if lastValue != 20 {
		t.Errorf("expected value 20 after switching, got %d", lastValue)
	}

	runCount = 0
	a.Set(100)
	owner.RunPendingEffects(nil)
	if runCount != 0 {
		t.Errorf("changing a should not trigger when using b, got %d runs", runCount)
	}
}

func TestEffectDisposedDoesNotRun(t *testing.T) {
	owner := NewOwner(nil)

	count := NewSignal(0)
	var e *Effect
	WithOwner(owner, func() {
		e = CreateEffect(func() Cleanup {
			_ = count.Get()
			return nil
		})
	})

	count.Set(1)
	owner.Dispose()
	owner.RunPendingEffects(nil)

	if e.Runs() != 1 {
		t.Errorf("disposed effect should not re-run, got %d runs", e.Runs())
	}
	if !e.Disposed() {
		t.Error("effect should be disposed with its owner")
	}
	if count.Subscribers() != 0 {
		t.Errorf("disposed effect should unsubscribe, got %d subscribers", count.Subscribers())
	}
}

func TestEffectWithoutOwnerRunsSynchronously(t *testing.T) {
	count := NewSignal(0)
	seen := 0

	CreateEffect(func() Cleanup {
		seen = count.Get()
		return nil
	})

	count.Set(3)
	if seen != 3 {
		t.Errorf("ownerless effect should re-run on write, got %d", seen)
	}
}

func TestEffectNestedScopeIsReplaced(t *testing.T) {
	root := NewRoot()
	defer root.Dispose()

	active := NewSignal(false)
	value := NewSignal(0)
	var observed []int

	WithOwner(root, func() {
		CreateEffect(func() Cleanup {
			if !active.Get() {
				return nil
			}
			scope := NewOwner(root)
			WithOwner(scope, func() {
				CreateEffect(func() Cleanup {
					observed = append(observed, value.Get())
					return nil
				})
			})
			return scope.Dispose
		})
	})

	value.Set(1)
	active.Set(true)
	value.Set(2)
	active.Set(false)
	value.Set(3)

	want := []int{1, 2}
	if len(observed) != len(want) {
		t.Fatalf("expected %v, got %v", want, observed)
	}
	for i := range want {
		if observed[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, observed)
		}
	}
	if value.Subscribers() != 0 {
		t.Errorf("inner effect should be torn down, got %d subscribers", value.Subscribers())
	}
}
