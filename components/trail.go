package components

import "time"

// TrailMark is a short-lived dot left behind by the pointer.
type TrailMark struct {
	X, Y  float32
	Size  float32
	Color uint8 // Index into the theme trail palette
	Born  time.Time
}

// Age returns how long the mark has existed at now.
func (m TrailMark) Age(now time.Time) time.Duration {
	return now.Sub(m.Born)
}
