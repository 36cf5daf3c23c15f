package gesture

import "time"

// OKHold tracks how long the OK sign has been observed without a gap.
// The zero value means the sign is not currently held.
type OKHold struct {
	Since time.Time
}

// Update returns the hold after observing ok at now. Any frame without the
// sign resets it.
func (h OKHold) Update(ok bool, now time.Time) OKHold {
	if !ok {
		return OKHold{}
	}
	if h.Since.IsZero() {
		return OKHold{Since: now}
	}
	return h
}

// Held returns the continuous duration up to now, or zero when not held.
func (h OKHold) Held(now time.Time) time.Duration {
	if h.Since.IsZero() {
		return 0
	}
	return now.Sub(h.Since)
}
