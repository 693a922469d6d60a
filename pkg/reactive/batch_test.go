package reactive

import "testing"

func TestBatchSingleNotification(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)
	c := NewSignal(0)

	listener := newTestListener()
	WithListener(listener, func() {
		_ = a.Get()
		_ = b.Get()
		_ = c.Get()
	})

	Batch(func() {
		a.Set(1)
		b.Set(2)
		c.Set(3)
	})

	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification (batched), got %d", listener.getDirtyCount())
	}
}

func TestBatchNested(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()
	WithListener(listener, func() {
		_ = count.Get()
	})

	Batch(func() {
		count.Set(1)
		Batch(func() {
			count.Set(2)
		})
		if listener.getDirtyCount() != 0 {
			t.Errorf("inner batch should not flush, got %d", listener.getDirtyCount())
		}
	})

	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification after outer batch, got %d", listener.getDirtyCount())
	}
}

func TestBatchWithPanic(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()
	WithListener(listener, func() {
		_ = count.Get()
	})

	func() {
		defer func() { _ = recover() }()
		Batch(func() {
			count.Set(1)
			panic("boom")
		})
	}()

	if getBatchDepth() != 0 {
		t.Errorf("batch depth should be restored after panic, got %d", getBatchDepth())
	}
	if listener.getDirtyCount() != 1 {
		t.Errorf("pending notification should still fire, got %d", listener.getDirtyCount())
	}
}

func TestBatchEffectsSeeFinalState(t *testing.T) {
	root := NewRoot()
	defer root.Dispose()

	x := NewSignal(0)
	y := NewSignal(0)
	var pairs [][2]int

	WithOwner(root, func() {
		CreateEffect(func() Cleanup {
			pairs = append(pairs, [2]int{x.Get(), y.Get()})
			return nil
		})
	})

	Tx(func() {
		x.Set(1)
		y.Set(2)
	})

	if len(pairs) != 2 {
		t.Fatalf("expected initial run plus one batched run, got %v", pairs)
	}
	if pairs[1] != [2]int{1, 2} {
		t.Errorf("batched run should see both writes, got %v", pairs[1])
	}
}

func TestUntracked(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	WithListener(listener, func() {
		Untracked(func() {
			_ = count.Get()
		})
		if getCurrentListener() != listener {
			t.Error("Untracked should restore the listener")
		}
	})

	count.Set(1)
	if listener.getDirtyCount() != 0 {
		t.Errorf("untracked read should not subscribe, got %d", listener.getDirtyCount())
	}
	if UntrackedGet(count) != 1 {
		t.Errorf("expected 1, got %d", UntrackedGet(count))
	}
}
