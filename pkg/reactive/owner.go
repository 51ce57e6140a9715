package reactive

import (
	"sync"
	"sync/atomic"
)

// Owner owns effects, cleanup functions and child owners, and runs the
// effects whose dependencies changed when asked to.
type Owner struct {
	id     uint64
	parent *Owner

	mu       sync.Mutex
	children []*Owner
	effects  []*Effect
	queue    []*Effect
	cleanups []func()

	disposed atomic.Bool
}

// NewOwner creates an owner. A non-nil parent disposes it along with
// itself and runs its effects after its own.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{id: nextID(), parent: parent}
	if parent != nil {
		parent.mu.Lock()
		parent.children = append(parent.children, o)
		parent.mu.Unlock()
	}
	return o
}

// ID returns the owner's unique ID.
func (o *Owner) ID() uint64 {
	return o.id
}

// IsDisposed reports whether Dispose has been called.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

func (o *Owner) adopt(e *Effect) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.disposed.Load() {
		o.effects = append(o.effects, e)
	}
}

func (o *Owner) enqueue(e *Effect) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.disposed.Load() {
		o.queue = append(o.queue, e)
	}
}

func (o *Owner) childList() []*Owner {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]*Owner(nil), o.children...)
}

// OnCleanup registers fn to run on Dispose. On a disposed owner fn runs
// immediately.
func (o *Owner) OnCleanup(fn func()) {
	o.mu.Lock()
	if o.disposed.Load() {
		o.mu.Unlock()
		fn()
		return
	}
	o.cleanups = append(o.cleanups, fn)
	o.mu.Unlock()
}

// RunPendingEffects runs the queued effects in the order they were queued,
// then those of the child owners. Effects queued while this runs wait for
// the next call.
func (o *Owner) RunPendingEffects() {
	if o.disposed.Load() {
		return
	}

	o.mu.Lock()
	queue := o.queue
	o.queue = nil
	o.mu.Unlock()

	for _, e := range queue {
		if e.Pending() {
			e.run()
		}
	}
	for _, child := range o.childList() {
		child.RunPendingEffects()
	}
}

// HasPendingEffects reports whether this owner or a descendant has queued
// effects.
func (o *Owner) HasPendingEffects() bool {
	if o.disposed.Load() {
		return false
	}

	o.mu.Lock()
	queued := len(o.queue) > 0
	o.mu.Unlock()
	if queued {
		return true
	}

	for _, child := range o.childList() {
		if child.HasPendingEffects() {
			return true
		}
	}
	return false
}

// Dispose disposes the children, newest first, then the effects, then runs
// the cleanup functions newest first. Later calls do nothing.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if p := o.parent; p != nil {
		p.mu.Lock()
		for i, c := range p.children {
			if c == o {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
		p.mu.Unlock()
	}

	o.mu.Lock()
	children, effects, cleanups := o.children, o.effects, o.cleanups
	o.children, o.effects, o.cleanups, o.queue = nil, nil, nil, nil
	o.mu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}
	for _, e := range effects {
		e.Dispose()
	}
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}
