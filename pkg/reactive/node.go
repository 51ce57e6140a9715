package reactive

import (
	"sync"
	"sync/atomic"
)

// Listener is notified when a value it read changes. Memos and effects
// implement it.
type Listener interface {
	// MarkDirty is called once per change of a value the listener read.
	MarkDirty()

	// ID identifies the listener for deduplication.
	ID() uint64
}

// Cleanup is returned by an effect run. It is called before the next run
// and when the effect is disposed.
type Cleanup func()

var lastID atomic.Uint64

func nextID() uint64 {
	return lastID.Add(1)
}

// node is the observable part of a Signal or Memo.
type node struct {
	id uint64

	mu        sync.Mutex
	observers []Listener
}

func (n *node) observe(l Listener) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := l.ID()
	for _, o := range n.observers {
		if o.ID() == id {
			return
		}
	}
	n.observers = append(n.observers, l)
}

func (n *node) forget(l Listener) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := l.ID()
	for i, o := range n.observers {
		if o.ID() == id {
			n.observers = append(n.observers[:i], n.observers[i+1:]...)
			return
		}
	}
}

func (n *node) observerCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.observers)
}

// read makes the current listener of this goroutine, if any, observe n.
func (n *node) read() {
	l := currentListener()
	if l == nil {
		return
	}
	n.observe(l)
	if d, ok := l.(dependent); ok {
		d.dependOn(n)
	}
}

// changed marks every observer dirty. While a batch is open only
// invalidators are marked; the rest are queued until it closes. No lock is
// held while observers run.
func (n *node) changed() {
	n.mu.Lock()
	observers := append([]Listener(nil), n.observers...)
	n.mu.Unlock()

	if s := lookupScope(); s != nil && s.batchDepth > 0 {
		for _, l := range observers {
			if inv, ok := l.(invalidator); ok {
				inv.invalidate()
				continue
			}
			s.queued = append(s.queued, l)
		}
		return
	}
	for _, l := range observers {
		l.MarkDirty()
	}
}

// invalidator is a listener that must go stale as soon as a value it read
// changes, batch or not.
type invalidator interface {
	Listener
	invalidate()
}

// dependent is a listener that keeps track of the nodes it read, so it can
// stop observing them before it runs again.
type dependent interface {
	Listener
	dependOn(n *node)
}

// sources is the set of nodes a listener read during its last run.
type sources struct {
	mu    sync.Mutex
	nodes []*node
}

func (s *sources) add(n *node) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.nodes {
		if existing == n {
			return
		}
	}
	s.nodes = append(s.nodes, n)
}

// release stops l from observing every node in the set and empties it.
func (s *sources) release(l Listener) {
	s.mu.Lock()
	nodes := s.nodes
	s.nodes = nil
	s.mu.Unlock()

	for _, n := range nodes {
		n.forget(l)
	}
}

func (s *sources) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.nodes)
}
