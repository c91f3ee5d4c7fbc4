// Package clip exposes the host windowing system's clipboard service as a
// small text-centric API. A Clipboard holds the platform resources needed to
// publish and retrieve UTF-8 text on the copy/paste buffer and, where the
// platform has one, the mouse selection buffer.
//
// All methods are safe for concurrent use and safe on a nil receiver: a nil
// or closed Clipboard answers every operation neutrally instead of failing
// loudly.
package clip

import (
	"sync"
	"sync/atomic"
)

// Mode selects which of the host's logical selections an operation targets.
type Mode int

const (
	// ModeClipboard is the explicit copy/paste buffer.
	ModeClipboard Mode = iota
	// ModeSelection is the mouse-highlight buffer (PRIMARY on X11). Platforms
	// without a separate selection buffer answer operations on it neutrally.
	ModeSelection

	modeEnd
)

func (m Mode) valid() bool { return m >= ModeClipboard && m < modeEnd }

// String returns the mode name for diagnostics.
func (m Mode) String() string {
	switch m {
	case ModeClipboard:
		return "clipboard"
	case ModeSelection:
		return "selection"
	}
	return "unknown"
}

// backend is the per-platform capability surface behind the façade. Mode
// validation happens in the façade; backends only see valid modes.
type backend interface {
	text(m Mode) ([]byte, bool)
	setText(m Mode, data []byte) bool
	clear(m Mode)
	hasOwnership(m Mode) bool
	close()
}

// Clipboard is a handle to the host clipboard service. Create one with New,
// share it freely across goroutines, and release it with Close.
type Clipboard struct {
	b         backend
	closed    atomic.Bool
	closeOnce sync.Once
}

// live reports whether the context can still be used.
func (c *Clipboard) live() bool {
	return c != nil && c.b != nil && !c.closed.Load()
}

// New establishes a clipboard context for the current platform. opts may be
// nil; zero or out-of-range option fields fall back to their defaults.
func New(opts *Options) (*Clipboard, error) {
	b, err := newBackend(opts.withDefaults())
	if err != nil {
		return nil, err
	}
	return &Clipboard{b: b}, nil
}

// Close releases the context's platform resources. It is safe to call on a
// nil Clipboard and safe to call more than once; operations after Close
// answer neutrally.
func (c *Clipboard) Close() {
	if c == nil || c.b == nil {
		return
	}
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.b.close()
	})
}

// Text returns the text currently advertised on the copy/paste buffer.
func (c *Clipboard) Text() (string, bool) { return c.TextMode(ModeClipboard) }

// TextMode returns the text currently advertised on the given selection. The
// second return is false when there is nothing to read, the mode is unknown,
// or the transfer timed out.
func (c *Clipboard) TextMode(m Mode) (string, bool) {
	data, ok := c.Bytes(m)
	if !ok {
		return "", false
	}
	return string(data), true
}

// Bytes is TextMode without the string conversion. The returned slice is the
// caller's to keep.
func (c *Clipboard) Bytes(m Mode) ([]byte, bool) {
	if !c.live() || !m.valid() {
		return nil, false
	}
	return c.b.text(m)
}

// SetText publishes text on the copy/paste buffer.
func (c *Clipboard) SetText(text string) bool { return c.SetTextMode(ModeClipboard, text) }

// SetTextMode publishes text on the given selection. Empty text is rejected.
func (c *Clipboard) SetTextMode(m Mode, text string) bool {
	return c.SetBytes(m, []byte(text))
}

// SetBytes publishes raw UTF-8 bytes on the given selection. The bytes are
// copied; no validation or line-ending normalisation is performed, so the
// payload round-trips byte-identical.
func (c *Clipboard) SetBytes(m Mode, data []byte) bool {
	if !c.live() || !m.valid() || len(data) == 0 {
		return false
	}
	return c.b.setText(m, data)
}

// Clear relinquishes the given selection. Unknown modes are a no-op.
func (c *Clipboard) Clear(m Mode) {
	if !c.live() || !m.valid() {
		return
	}
	c.b.clear(m)
}

// HasOwnership reports whether this context still owns the given selection,
// i.e. whether the last successful write came from here and no other client
// has taken the selection over since. The Klipper backend used on
// Wayland-only sessions has no ownership notion and always reports false.
func (c *Clipboard) HasOwnership(m Mode) bool {
	if !c.live() || !m.valid() {
		return false
	}
	return c.b.hasOwnership(m)
}
