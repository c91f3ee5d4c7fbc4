package clip

import "time"

// Defaults applied by New when the corresponding Options field is zero or out
// of range.
const (
	// DefaultActionTimeout bounds how long an X11 inbound transfer or a
	// single INCR step may take before the caller gets a neutral failure.
	DefaultActionTimeout = 1500 * time.Millisecond
	// DefaultTransferSize is the X11 INCR threshold and chunk size in bytes.
	DefaultTransferSize uint32 = 1 << 20
	// DefaultMaxRetries is the Win32 clipboard-open retry budget.
	DefaultMaxRetries = 5
	// DefaultRetryDelay is the sleep between Win32 clipboard-open retries.
	DefaultRetryDelay = 5 * time.Millisecond
)

// Options tunes platform behaviour. The zero value selects every default.
type Options struct {
	// ActionTimeout is the maximum wait for an X11 inbound transfer or INCR
	// step. Non-positive values select DefaultActionTimeout.
	ActionTimeout time.Duration

	// TransferSize is the X11 INCR threshold and chunk size in bytes. It must
	// be a positive multiple of 4; other values select DefaultTransferSize.
	TransferSize uint32

	// DisplayName names the X server to connect to. Empty means the DISPLAY
	// environment variable.
	DisplayName string

	// MaxRetries is how often a Win32 clipboard open is retried while another
	// process holds the clipboard lock. Non-positive values select
	// DefaultMaxRetries.
	MaxRetries int

	// RetryDelay is the sleep between Win32 clipboard-open retries.
	// Non-positive values select DefaultRetryDelay.
	RetryDelay time.Duration
}

// withDefaults returns a copy with every unset or invalid field replaced by
// its default. Each field is validated on its own.
func (o *Options) withDefaults() Options {
	out := Options{
		ActionTimeout: DefaultActionTimeout,
		TransferSize:  DefaultTransferSize,
		MaxRetries:    DefaultMaxRetries,
		RetryDelay:    DefaultRetryDelay,
	}
	if o == nil {
		return out
	}
	if o.ActionTimeout > 0 {
		out.ActionTimeout = o.ActionTimeout
	}
	if o.TransferSize > 0 && o.TransferSize%4 == 0 {
		out.TransferSize = o.TransferSize
	}
	out.DisplayName = o.DisplayName
	if o.MaxRetries > 0 {
		out.MaxRetries = o.MaxRetries
	}
	if o.RetryDelay > 0 {
		out.RetryDelay = o.RetryDelay
	}
	return out
}
