package clip

import (
	"testing"
	"time"
)

func TestOptionsNilDefaults(t *testing.T) {
	var o *Options
	got := o.withDefaults()
	if got.ActionTimeout != DefaultActionTimeout {
		t.Errorf("ActionTimeout = %v, want %v", got.ActionTimeout, DefaultActionTimeout)
	}
	if got.TransferSize != DefaultTransferSize {
		t.Errorf("TransferSize = %d, want %d", got.TransferSize, DefaultTransferSize)
	}
	if got.MaxRetries != DefaultMaxRetries {
		t.Errorf("MaxRetries = %d, want %d", got.MaxRetries, DefaultMaxRetries)
	}
	if got.RetryDelay != DefaultRetryDelay {
		t.Errorf("RetryDelay = %v, want %v", got.RetryDelay, DefaultRetryDelay)
	}
	if got.DisplayName != "" {
		t.Errorf("DisplayName = %q, want empty", got.DisplayName)
	}
}

func TestOptionsInvalidFieldsFallBack(t *testing.T) {
	got := (&Options{
		ActionTimeout: -time.Second,
		TransferSize:  1023, // not a multiple of 4
		MaxRetries:    -1,
		RetryDelay:    -5 * time.Millisecond,
	}).withDefaults()
	if got.ActionTimeout != DefaultActionTimeout {
		t.Errorf("ActionTimeout = %v, want default", got.ActionTimeout)
	}
	if got.TransferSize != DefaultTransferSize {
		t.Errorf("TransferSize = %d, want default", got.TransferSize)
	}
	if got.MaxRetries != DefaultMaxRetries {
		t.Errorf("MaxRetries = %d, want default", got.MaxRetries)
	}
	if got.RetryDelay != DefaultRetryDelay {
		t.Errorf("RetryDelay = %v, want default", got.RetryDelay)
	}
}

func TestOptionsValidFieldsKept(t *testing.T) {
	got := (&Options{
		ActionTimeout: 2 * time.Second,
		TransferSize:  4096,
		DisplayName:   ":9",
		MaxRetries:    3,
		RetryDelay:    time.Millisecond,
	}).withDefaults()
	if got.ActionTimeout != 2*time.Second || got.TransferSize != 4096 ||
		got.DisplayName != ":9" || got.MaxRetries != 3 || got.RetryDelay != time.Millisecond {
		t.Errorf("withDefaults mangled valid options: %+v", got)
	}
}

func TestOptionsRetryFieldsIndependent(t *testing.T) {
	// The two Win32 tunables must be honoured on their own.
	got := (&Options{RetryDelay: 42 * time.Millisecond}).withDefaults()
	if got.MaxRetries != DefaultMaxRetries {
		t.Errorf("MaxRetries = %d, want default", got.MaxRetries)
	}
	if got.RetryDelay != 42*time.Millisecond {
		t.Errorf("RetryDelay = %v, want 42ms", got.RetryDelay)
	}

	got = (&Options{MaxRetries: 9}).withDefaults()
	if got.MaxRetries != 9 {
		t.Errorf("MaxRetries = %d, want 9", got.MaxRetries)
	}
	if got.RetryDelay != DefaultRetryDelay {
		t.Errorf("RetryDelay = %v, want default", got.RetryDelay)
	}
}

func TestModeString(t *testing.T) {
	if ModeClipboard.String() != "clipboard" || ModeSelection.String() != "selection" {
		t.Error("mode names changed")
	}
	if Mode(99).String() != "unknown" {
		t.Error("out-of-range mode should stringify as unknown")
	}
}
