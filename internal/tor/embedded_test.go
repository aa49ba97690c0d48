package tor

import (
	"errors"
	"testing"
	"time"
)

// TestNewEmbeddedTor tests construction without starting a daemon.
func TestNewEmbeddedTor(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		e := NewEmbeddedTor()
		if e.startupTimeout != 3*time.Minute {
			t.Errorf("startupTimeout = %v", e.startupTimeout)
		}
		if e.IsRunning() {
			t.Error("expected not running")
		}
		if e.SocksAddr() != "" {
			t.Errorf("SocksAddr = %q", e.SocksAddr())
		}
	})

	t.Run("custom timeout", func(t *testing.T) {
		t.Parallel()

		if e := NewEmbeddedTor(WithStartupTimeout(time.Minute)); e.startupTimeout != time.Minute {
			t.Errorf("startupTimeout = %v", e.startupTimeout)
		}
		if e := NewEmbeddedTor(WithStartupTimeout(0)); e.startupTimeout != 3*time.Minute {
			t.Errorf("zero timeout should keep default, got %v", e.startupTimeout)
		}
	})

	t.Run("stop before start", func(t *testing.T) {
		t.Parallel()

		if err := NewEmbeddedTor().Stop(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("client before start", func(t *testing.T) {
		t.Parallel()

		_, err := NewEmbeddedTor().NewClient(time.Second)
		if !errors.Is(err, ErrTorNotRunning) {
			t.Errorf("expected ErrTorNotRunning, got %v", err)
		}
	})
}
