//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clip_test

import (
	"os"
	"testing"
)

// requireDisplay skips tests that need a live X server.
func requireDisplay(t *testing.T) {
	t.Helper()
	if os.Getenv("DISPLAY") == "" {
		t.Skip("no X server available (DISPLAY unset)")
	}
}

// hasPrimarySelection reports whether the platform carries a separate mouse
// selection buffer.
func hasPrimarySelection() bool { return true }
