// Package reactive provides the fine-grained reactive runtime behind mathlive.
//
// Dependencies are tracked automatically at runtime: reading a Signal or a
// Memo while a Memo or Effect is computing subscribes that computation to the
// value it read.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	source := NewSignal(`\frac{1}{2}`)
//	text := source.Get()  // Read (subscribes current listener)
//	source.Set(`x^2`)     // Write (notifies subscribers when the value differs)
//
// Memo[T] is a lazily cached derived computation:
//
//	length := NewMemo(func() int { return len(source.Get()) })
//	n := length.Get()  // Recomputes only if a dependency changed
//
// Effect re-runs a side effect when its dependencies change. Effects belong
// to an Owner, which queues them until RunPendingEffects is called:
//
//	owner := NewOwner(nil)
//	WithOwner(owner, func() {
//	    CreateEffect(func() Cleanup {
//	        fmt.Println("length:", length.Get())
//	        return nil
//	    })
//	})
//	source.Set("abc")
//	owner.RunPendingEffects()
//
// # Batching
//
// Batch defers notifications until the outermost batch returns, so a burst of
// writes invalidates each dependent once.
//
// # Goroutines
//
// The tracking context is per-goroutine. Values may be shared between
// goroutines, but a Memo or Effect tracks only the reads made on the
// goroutine that runs it.
package reactive
