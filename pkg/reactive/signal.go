package reactive

import (
	"reflect"
	"sync"
)

// Signal is a reactive value. Reading it while a Memo or Effect runs makes
// that computation depend on it.
type Signal[T any] struct {
	n node

	mu    sync.RWMutex
	value T

	// equal decides whether Set changes the value.
	equal func(a, b T) bool
}

// NewSignal creates a signal holding initial.
func NewSignal[T any](initial T) *Signal[T] {
	s := &Signal[T]{value: initial, equal: valuesEqual[T]}
	s.n.id = nextID()
	return s
}

// Get returns the value and records the read.
func (s *Signal[T]) Get() T {
	v := s.Peek()
	s.n.read()
	return v
}

// Peek returns the value without recording the read.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores value. Dependents are notified only if it differs from the
// current value.
func (s *Signal[T]) Set(value T) {
	s.Update(func(T) T { return value })
}

// Update replaces the value with fn applied to it, under the signal's lock.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	next := fn(s.value)
	if s.equal(s.value, next) {
		s.mu.Unlock()
		return
	}
	s.value = next
	s.mu.Unlock()

	s.n.changed()
}

// WithEquals replaces the equality used by Set and returns the signal.
func (s *Signal[T]) WithEquals(equal func(a, b T) bool) *Signal[T] {
	s.equal = equal
	return s
}

// ID returns the signal's unique ID.
func (s *Signal[T]) ID() uint64 {
	return s.n.id
}

// valuesEqual compares scalars, strings and pointers with == and everything
// else with reflect.DeepEqual.
func valuesEqual[T any](a, b T) bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return any(a) == any(b)
	default:
		return reflect.DeepEqual(a, b)
	}
}
