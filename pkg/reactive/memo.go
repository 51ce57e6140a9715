package reactive

import (
	"sync"
	"sync/atomic"
)

// Memo is a lazily cached computation.
//
// The computation runs on the first read and again on the first read after
// anything it read has changed. Several changes between reads cause a single
// recomputation. A Memo can itself be read by other memos and effects.
type Memo[T any] struct {
	n node

	compute func() T

	mu    sync.RWMutex
	value T

	fresh   atomic.Bool
	running atomic.Bool
	runs    atomic.Uint64

	deps sources
}

// NewMemo creates a memo of compute. Nothing runs until the first read.
func NewMemo[T any](compute func() T) *Memo[T] {
	m := &Memo[T]{compute: compute}
	m.n.id = nextID()
	return m
}

// Get returns the value, recomputing it if stale, and records the read.
func (m *Memo[T]) Get() T {
	m.n.read()
	return m.Peek()
}

// Peek is like Get but does not record the read.
func (m *Memo[T]) Peek() T {
	if !m.fresh.Load() {
		m.recompute()
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value
}

// Fresh reports whether the cached value is current.
func (m *Memo[T]) Fresh() bool {
	return m.fresh.Load()
}

// Computations returns how many times the computation has run.
func (m *Memo[T]) Computations() uint64 {
	return m.runs.Load()
}

// MarkDirty implements Listener. Only the first change after a computation
// is passed on to the memo's own readers.
func (m *Memo[T]) MarkDirty() {
	if m.fresh.CompareAndSwap(true, false) {
		m.n.changed()
	}
}

func (m *Memo[T]) invalidate() {
	m.MarkDirty()
}

// ID implements Listener.
func (m *Memo[T]) ID() uint64 {
	return m.n.id
}

func (m *Memo[T]) dependOn(n *node) {
	m.deps.add(n)
}

func (m *Memo[T]) recompute() {
	// A memo reading itself keeps its previous value.
	if !m.running.CompareAndSwap(false, true) {
		return
	}
	defer m.running.Store(false)

	m.deps.release(m)

	var next T
	WithListener(m, func() {
		next = m.compute()
	})
	m.runs.Add(1)

	m.mu.Lock()
	m.value = next
	m.mu.Unlock()
	m.fresh.Store(true)
}

var (
	_ dependent   = (*Memo[struct{}])(nil)
	_ invalidator = (*Memo[struct{}])(nil)
)
