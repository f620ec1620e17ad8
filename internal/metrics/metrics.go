package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// CallbackStats counts gateway callbacks by how they ended.
type CallbackStats struct {
	Received         Counter
	MarkedPaid       Counter
	InvalidSignature Counter
	Rejected         Counter
	Failed           Counter
}

func (s *CallbackStats) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"received":          s.Received.Load(),
		"marked_paid":       s.MarkedPaid.Load(),
		"invalid_signature": s.InvalidSignature.Load(),
		"rejected":          s.Rejected.Load(),
		"failed":            s.Failed.Load(),
	}
}
