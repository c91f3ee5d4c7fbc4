//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clip_test

import "testing"

func requireDisplay(t *testing.T) { t.Helper() }

func hasPrimarySelection() bool { return false }
