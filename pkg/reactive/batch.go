package reactive

// Batch runs fn and holds back change notifications until the outermost
// Batch returns. Each listener is then notified once, however many of the
// values it read changed. Memos still go stale at once, so a memo read
// inside fn reflects the values written so far.
//
//	Batch(func() {
//	    source.Set(`\frac{1}`)
//	    source.Set(`\frac{1}{2}`)
//	})
func Batch(fn func()) {
	s := currentScope()
	s.batchDepth++
	defer func() {
		s.batchDepth--
		if s.batchDepth == 0 {
			flushBatch(s)
			s.release()
		}
	}()
	fn()
}

func flushBatch(s *scope) {
	queued := s.queued
	s.queued = nil

	seen := make(map[uint64]struct{}, len(queued))
	for _, l := range queued {
		if _, dup := seen[l.ID()]; dup {
			continue
		}
		seen[l.ID()] = struct{}{}
		l.MarkDirty()
	}
}
