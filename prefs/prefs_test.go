package prefs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

type scopedStore interface {
	Store
	Scoper
}

func stores(t *testing.T) map[string]scopedStore {
	t.Helper()
	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { sq.Close() })

	return map[string]scopedStore{
		"memory": NewMemoryStore(),
		"sqlite": sq,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := s.Get(ctx, ParticlesEnabled); err != nil || ok {
				t.Fatalf("expected unset key, got ok=%v err=%v", ok, err)
			}

			if err := s.Set(ctx, ParticlesEnabled, false); err != nil {
				t.Fatalf("Set: %v", err)
			}
			v, ok, err := s.Get(ctx, ParticlesEnabled)
			if err != nil || !ok || v {
				t.Errorf("Get = (%v, %v, %v), want (false, true, nil)", v, ok, err)
			}

			if err := s.Set(ctx, ParticlesEnabled, true); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if v, _, _ := s.Get(ctx, ParticlesEnabled); !v {
				t.Error("expected overwrite to true")
			}

			if err := s.Delete(ctx, ParticlesEnabled); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, ok, _ := s.Get(ctx, ParticlesEnabled); ok {
				t.Error("expected key cleared after Delete")
			}
		})
	}
}

func TestStoreRejectsUnknownKey(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set(ctx, "volume", true); !errors.Is(err, ErrUnknownKey) {
				t.Errorf("Set unknown key: err = %v, want ErrUnknownKey", err)
			}
			if _, _, err := s.Get(ctx, "volume"); !errors.Is(err, ErrUnknownKey) {
				t.Errorf("Get unknown key: err = %v, want ErrUnknownKey", err)
			}
		})
	}
}

func TestStoreScopesAreIsolated(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			a := s.Scope("client-a")
			b := s.Scope("client-b")

			if err := a.Set(ctx, MouseTrailEnabled, false); err != nil {
				t.Fatal(err)
			}
			if _, ok, _ := b.Get(ctx, MouseTrailEnabled); ok {
				t.Error("scope b should not see scope a's value")
			}
			if _, ok, _ := s.Get(ctx, MouseTrailEnabled); ok {
				t.Error("default scope should not see scope a's value")
			}
		})
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, ParticlesEnabled, false); err != nil {
		t.Fatal(err)
	}
	s.Close()

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, ParticlesEnabled)
	if err != nil || !ok || v {
		t.Errorf("after reopen Get = (%v, %v, %v), want (false, true, nil)", v, ok, err)
	}
}
