package snake

import "time"

// SpeedPolicy maps the current score to the tick interval.
type SpeedPolicy struct {
	Base time.Duration // Interval at score 0
	Ramp bool          // Whether the interval shrinks as the score grows
	Cap  int           // Max number of milliseconds the ramp may remove
}

// Interval returns base - min(score, cap) milliseconds when ramping,
// otherwise the base interval.
func (p SpeedPolicy) Interval(score int) time.Duration {
	if !p.Ramp || score <= 0 {
		return p.Base
	}
	return p.Base - time.Duration(min(score, p.Cap))*time.Millisecond
}

// Fastest returns the smallest interval the policy can produce.
func (p SpeedPolicy) Fastest() time.Duration {
	if !p.Ramp {
		return p.Base
	}
	return p.Base - time.Duration(p.Cap)*time.Millisecond
}
