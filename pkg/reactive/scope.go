package reactive

import (
	"runtime"
	"sync"
)

// scope is the reactive state of one goroutine.
type scope struct {
	gid uint64

	// owner receives effects created on this goroutine.
	owner *Owner

	// listener is the computation currently recording reads. nil means
	// reads are not tracked.
	listener Listener

	batchDepth int

	// queued are listeners notified inside an open batch.
	queued []Listener
}

var scopes sync.Map // goroutine ID -> *scope

// goroutineID parses the current goroutine's ID from the first line of its
// stack trace, "goroutine <id> [running]:".
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for _, c := range buf[len("goroutine "):n] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}

// lookupScope returns the goroutine's scope, or nil if it has none.
func lookupScope() *scope {
	if s, ok := scopes.Load(goroutineID()); ok {
		return s.(*scope)
	}
	return nil
}

// currentScope returns the goroutine's scope, creating it if needed.
func currentScope() *scope {
	gid := goroutineID()
	if s, ok := scopes.Load(gid); ok {
		return s.(*scope)
	}
	s := &scope{gid: gid}
	scopes.Store(gid, s)
	return s
}

// release drops s once it holds no state, so goroutines that are done with
// reactive values leave nothing behind.
func (s *scope) release() {
	if s.owner == nil && s.listener == nil && s.batchDepth == 0 && len(s.queued) == 0 {
		scopes.Delete(s.gid)
	}
}

func currentListener() Listener {
	if s := lookupScope(); s != nil {
		return s.listener
	}
	return nil
}

func currentOwner() *Owner {
	if s := lookupScope(); s != nil {
		return s.owner
	}
	return nil
}

// swapListener installs l as the tracking listener and returns the previous
// one.
func swapListener(l Listener) Listener {
	s := lookupScope()
	if s == nil {
		if l == nil {
			return nil
		}
		s = currentScope()
	}
	prev := s.listener
	s.listener = l
	s.release()
	return prev
}

func swapOwner(o *Owner) *Owner {
	s := lookupScope()
	if s == nil {
		if o == nil {
			return nil
		}
		s = currentScope()
	}
	prev := s.owner
	s.owner = o
	s.release()
	return prev
}

// WithOwner runs fn with owner receiving the effects fn creates.
func WithOwner(owner *Owner, fn func()) {
	prev := swapOwner(owner)
	defer swapOwner(prev)
	fn()
}

// WithListener runs fn with l recording the reads fn makes.
func WithListener(l Listener, fn func()) {
	prev := swapListener(l)
	defer swapListener(prev)
	fn()
}

// Untracked runs fn without recording its reads.
func Untracked(fn func()) {
	WithListener(nil, fn)
}

// ReleaseGoroutine drops the calling goroutine's reactive state, including
// an owner or listener left installed.
func ReleaseGoroutine() {
	scopes.Delete(goroutineID())
}
