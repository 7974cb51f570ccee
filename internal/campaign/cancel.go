// internal/campaign/cancel.go
package campaign

import "sync/atomic"

// Canceller is the cooperative cancellation token shared between the
// operator action and the run loops. Loops poll it at iteration boundaries
// only; an in-flight external call is allowed to complete before the token
// is honored.
type Canceller struct {
	flag atomic.Bool
}

func NewCanceller() *Canceller {
	return &Canceller{}
}

// Cancel requests that the current loop stop at its next checkpoint.
func (c *Canceller) Cancel() {
	c.flag.Store(true)
}

// Cancelled reports whether cancellation was requested. A nil token never
// cancels.
func (c *Canceller) Cancelled() bool {
	if c == nil {
		return false
	}
	return c.flag.Load()
}
