package upload

import (
	"fmt"
	"time"
)

// Progress accumulates finalized outcomes into batch totals. It is mutated
// only by the scheduler's single drain loop, strictly after each worker has
// completed, so it needs no locking even though uploads run in parallel.
type Progress struct {
	Total        int // fixed at batch start
	Success      int
	Errors       int
	FilesRetried int // distinct files that consumed at least one retry
	TotalRetries int
	Bytes        int64 // cumulative bytes of successful uploads

	started time.Time
	now     func() time.Time
}

// NewProgress starts the running totals for a batch of total files.
func NewProgress(total int) *Progress {
	return &Progress{
		Total:   total,
		started: time.Now(),
		now:     time.Now,
	}
}

// Update folds one finalized outcome into the totals. Success and error are
// mutually exclusive; bytes count only on success; retry counters move only
// when the outcome consumed at least one retry, win or lose.
func (p *Progress) Update(o Outcome) {
	if o.Failed() {
		p.Errors++
	} else {
		p.Success++
		p.Bytes += o.Bytes
	}
	if o.Retries > 0 {
		p.FilesRetried++
		p.TotalRetries += o.Retries
	}
}

// StatusLine renders the current totals as the single-line status display.
// It has no side effects; whether and where to print is the caller's call.
func (p *Progress) StatusLine() string {
	elapsed := p.now().Sub(p.started).Seconds()
	mb := float64(p.Bytes) / (1024 * 1024)
	// clamp elapsed away from zero so throughput never divides by zero
	mbps := mb / (elapsed + 1e-6)

	return fmt.Sprintf("Uploaded %d/%d files, %d errors %d|%d retries %.2f MB in %.2f seconds (%.2f MB/s)",
		p.Success, p.Total, p.Errors, p.FilesRetried, p.TotalRetries, mb, elapsed, mbps)
}
