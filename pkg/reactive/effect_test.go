package reactive

import (
	"reflect"
	"testing"
)

func TestEffectRunsOnCreate(t *testing.T) {
	runs := 0
	e := CreateEffect(func() Cleanup {
		runs++
		return nil
	})
	defer e.Dispose()

	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
}

func TestOwnedEffectWaitsForRunPendingEffects(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	source := NewSignal("a")
	var seen []string
	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			seen = append(seen, source.Get())
			return nil
		})
	})

	source.Set("b")
	if len(seen) != 1 {
		t.Fatalf("effect ran before RunPendingEffects: %v", seen)
	}
	if !owner.HasPendingEffects() {
		t.Errorf("HasPendingEffects() = false after a change")
	}

	owner.RunPendingEffects()
	if !reflect.DeepEqual(seen, []string{"a", "b"}) {
		t.Errorf("seen = %v, want [a b]", seen)
	}
	if owner.HasPendingEffects() {
		t.Errorf("HasPendingEffects() = true after running them")
	}
}

func TestOwnedEffectRunsOncePerFlush(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	source := NewSignal(0)
	var seen []int
	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			seen = append(seen, source.Get())
			return nil
		})
	})

	source.Set(1)
	source.Set(2)
	source.Set(3)
	owner.RunPendingEffects()
	owner.RunPendingEffects()

	if !reflect.DeepEqual(seen, []int{0, 3}) {
		t.Errorf("seen = %v, want [0 3]", seen)
	}
}

func TestOwnerlessEffectRunsImmediately(t *testing.T) {
	source := NewSignal(1)
	var seen []int
	e := CreateEffect(func() Cleanup {
		seen = append(seen, source.Get())
		return nil
	})
	defer e.Dispose()

	source.Set(2)
	if !reflect.DeepEqual(seen, []int{1, 2}) {
		t.Errorf("seen = %v, want [1 2]", seen)
	}
}

func TestEffectCleanup(t *testing.T) {
	source := NewSignal(1)
	var log []string
	e := CreateEffect(func() Cleanup {
		source.Get()
		log = append(log, "run")
		return func() { log = append(log, "cleanup") }
	})

	source.Set(2)
	e.Dispose()
	e.Dispose()

	want := []string{"run", "cleanup", "run", "cleanup"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestDisposedEffectStopsObserving(t *testing.T) {
	source := NewSignal(1)
	runs := 0
	e := CreateEffect(func() Cleanup {
		source.Get()
		runs++
		return nil
	})

	e.Dispose()
	if n := source.n.observerCount(); n != 0 {
		t.Errorf("observers = %d after Dispose, want 0", n)
	}
	source.Set(2)
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
}

func TestEffectReadsMemo(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	source := NewSignal("ab")
	length := NewMemo(func() int { return len(source.Get()) })

	var seen []int
	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			seen = append(seen, length.Get())
			return nil
		})
	})

	source.Set("abcd")
	owner.RunPendingEffects()

	if !reflect.DeepEqual(seen, []int{2, 4}) {
		t.Errorf("seen = %v, want [2 4]", seen)
	}
	if length.Computations() != 2 {
		t.Errorf("computations = %d, want 2", length.Computations())
	}
}

func TestEffectUntrackedRead(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	tracked := NewSignal(1)
	ignored := NewSignal(1)
	runs := 0
	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			tracked.Get()
			Untracked(func() { ignored.Get() })
			runs++
			return nil
		})
	})

	ignored.Set(2)
	owner.RunPendingEffects()
	if runs != 1 {
		t.Errorf("runs = %d after an untracked change, want 1", runs)
	}

	tracked.Set(2)
	owner.RunPendingEffects()
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

func TestOwnerDisposeOrder(t *testing.T) {
	parent := NewOwner(nil)
	child := NewOwner(parent)

	var order []string
	parent.OnCleanup(func() { order = append(order, "parent 1") })
	parent.OnCleanup(func() { order = append(order, "parent 2") })
	child.OnCleanup(func() { order = append(order, "child") })
	WithOwner(parent, func() {
		CreateEffect(func() Cleanup {
			return func() { order = append(order, "effect") }
		})
	})

	parent.Dispose()

	want := []string{"child", "effect", "parent 2", "parent 1"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if !child.IsDisposed() {
		t.Errorf("child not disposed with its parent")
	}
}

func TestOwnerOnCleanupAfterDispose(t *testing.T) {
	owner := NewOwner(nil)
	owner.Dispose()

	ran := false
	owner.OnCleanup(func() { ran = true })
	if !ran {
		t.Errorf("OnCleanup on a disposed owner did not run fn")
	}
}

func TestChildOwnerEffectsRun(t *testing.T) {
	parent := NewOwner(nil)
	defer parent.Dispose()
	child := NewOwner(parent)

	source := NewSignal(0)
	runs := 0
	WithOwner(child, func() {
		CreateEffect(func() Cleanup {
			source.Get()
			runs++
			return nil
		})
	})

	source.Set(1)
	if !parent.HasPendingEffects() {
		t.Errorf("parent does not see the child's pending effect")
	}
	parent.RunPendingEffects()
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}

	child.Dispose()
	source.Set(2)
	parent.RunPendingEffects()
	if runs != 2 {
		t.Errorf("disposed child's effect ran: runs = %d", runs)
	}
}
