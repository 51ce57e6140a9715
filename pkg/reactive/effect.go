package reactive

import "sync/atomic"

// Effect is a side effect that runs again after anything it read changes.
//
// An effect runs once when created. A change to a value it read queues it
// on its Owner, which runs it on the next RunPendingEffects. An effect
// created without an owner runs again immediately on every change.
type Effect struct {
	id uint64

	fn      func() Cleanup
	cleanup Cleanup

	owner *Owner
	deps  sources

	queued   atomic.Bool
	disposed atomic.Bool
}

// CreateEffect creates an effect owned by the current owner and runs it.
func CreateEffect(fn func() Cleanup) *Effect {
	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: currentOwner(),
	}
	if e.owner != nil {
		e.owner.adopt(e)
	}
	e.run()
	return e
}

// MarkDirty implements Listener.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() || !e.queued.CompareAndSwap(false, true) {
		return
	}
	if e.owner == nil {
		e.run()
		return
	}
	e.owner.enqueue(e)
}

// ID implements Listener.
func (e *Effect) ID() uint64 {
	return e.id
}

// Pending reports whether the effect is queued to run again.
func (e *Effect) Pending() bool {
	return e.queued.Load()
}

func (e *Effect) dependOn(n *node) {
	e.deps.add(n)
}

func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}
	e.queued.Store(false)

	e.runCleanup()
	e.deps.release(e)

	WithListener(e, func() {
		e.cleanup = e.fn()
	})
}

func (e *Effect) runCleanup() {
	if c := e.cleanup; c != nil {
		e.cleanup = nil
		c()
	}
}

// Dispose runs the last cleanup and stops the effect from running again.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}
	e.runCleanup()
	e.deps.release(e)
}

var _ dependent = (*Effect)(nil)
