// Package keyseq matches a fixed key sequence such as the Konami code.
package keyseq

import (
	"slices"
	"strings"
	"time"
)

// Konami is the classic sequence.
var Konami = []string{"up", "up", "down", "down", "left", "right", "left", "right", "b", "a"}

// Matcher tracks progress through a key sequence. A wrong key keeps the
// longest partial match it still extends. Completing the sequence
// latches it active for a while, after which matching starts over.
// Not safe for concurrent use.
type Matcher struct {
	seq      []string
	latch    time.Duration
	pos      int
	activeAt time.Time
	active   bool
}

// NewMatcher creates a matcher. Keys are compared case-insensitively.
func NewMatcher(seq []string, latch time.Duration) *Matcher {
	norm := make([]string, len(seq))
	for i, k := range seq {
		norm[i] = strings.ToLower(k)
	}
	return &Matcher{seq: norm, latch: latch}
}

// Press feeds one key and reports whether it completed the sequence.
func (m *Matcher) Press(key string, now time.Time) bool {
	if len(m.seq) == 0 {
		return false
	}
	m.expire(now)

	key = strings.ToLower(key)
	if key == m.seq[m.pos] {
		m.pos++
	} else {
		m.pos = m.fallback(key)
	}

	if m.pos < len(m.seq) {
		return false
	}
	m.pos = 0
	m.active = true
	m.activeAt = now
	return true
}

// Active reports whether the sequence completed within the latch window.
func (m *Matcher) Active(now time.Time) bool {
	m.expire(now)
	return m.active
}

// Progress returns how many keys of the sequence have matched so far.
func (m *Matcher) Progress() int {
	return m.pos
}

// fallback returns the length of the longest sequence prefix that ends the
// matched keys followed by key, so "up up up down ..." still completes.
func (m *Matcher) fallback(key string) int {
	for n := m.pos; n > 0; n-- {
		// Candidate: last n-1 matched keys plus key
		if m.seq[n-1] != key {
			continue
		}
		if slices.Equal(m.seq[m.pos-(n-1):m.pos], m.seq[:n-1]) {
			return n
		}
	}
	return 0
}

func (m *Matcher) expire(now time.Time) {
	if m.active && now.Sub(m.activeAt) >= m.latch {
		m.active = false
	}
}
