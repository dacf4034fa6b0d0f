// Package prefs stores boolean user preferences that persist across sessions.
package prefs

import (
	"context"
	"errors"
)

// Known preference keys.
const (
	ParticlesEnabled  = "particlesEnabled"
	MouseTrailEnabled = "mouseTrailEnabled"
)

// DefaultScope is the scope used by local hosts with a single user.
const DefaultScope = "local"

// ErrUnknownKey is returned for keys outside the known set.
var ErrUnknownKey = errors.New("prefs: unknown key")

// Store reads and writes boolean preferences.
// Get reports ok=false when the key has never been set.
type Store interface {
	Get(ctx context.Context, key string) (value bool, ok bool, err error)
	Set(ctx context.Context, key string, value bool) error
	Delete(ctx context.Context, key string) error
}

// Scoper hands out stores partitioned by scope (one per client).
type Scoper interface {
	Scope(name string) Store
}

// ValidKey reports whether key is a known preference.
func ValidKey(key string) bool {
	return key == ParticlesEnabled || key == MouseTrailEnabled
}

func checkKey(key string) error {
	if !ValidKey(key) {
		return ErrUnknownKey
	}
	return nil
}
