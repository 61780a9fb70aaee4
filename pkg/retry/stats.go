package retry

// RetrierStats contains retrier statistics
type RetrierStats struct {
	TotalCalls     int64 // Retry invocations
	TotalQueued    int64 // calls whose first failure was retryable
	TotalAttempts  int64 // executions, first attempts included
	TotalSucceeded int64 // queued tasks that eventually succeeded
	TotalRejected  int64 // queued tasks failed by a non-retryable error
	TotalBailedOut int64 // queued tasks abandoned on age
	TotalCancelled int64 // queued tasks cancelled by their caller
	TotalClosed    int64 // queued tasks rejected by Close
	QueueLength    int   // tasks currently queued
}

// Stats gets retrier statistics
func (r *Retrier) Stats() RetrierStats {
	r.statsMu.Lock()
	stats := r.stats
	r.statsMu.Unlock()

	stats.QueueLength = r.queue.Len()
	return stats
}

// ResetStats resets statistics
func (r *Retrier) ResetStats() {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	r.stats = RetrierStats{}
}

// updateStats updates statistics (thread-safe)
func (r *Retrier) updateStats(fn func(*RetrierStats)) {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	fn(&r.stats)
}

func (s *RetrierStats) recordOutcome(outcome Outcome) {
	switch outcome {
	case OutcomeSucceeded:
		s.TotalSucceeded++
	case OutcomeRejected:
		s.TotalRejected++
	case OutcomeBailedOut:
		s.TotalBailedOut++
	case OutcomeCancelled:
		s.TotalCancelled++
	case OutcomeClosed:
		s.TotalClosed++
	}
}
