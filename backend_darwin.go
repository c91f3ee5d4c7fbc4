//go:build darwin

package clip

import "github.com/example/clip/internal/cocoa"

func newBackend(Options) (backend, error) {
	c, err := cocoa.New()
	if err != nil {
		return nil, err
	}
	return cocoaBackend{c}, nil
}

// cocoaBackend serves only the general pasteboard; the selection mode
// answers neutrally because macOS has no primary selection.
type cocoaBackend struct{ c *cocoa.Clipboard }

func (b cocoaBackend) text(m Mode) ([]byte, bool) {
	if m != ModeClipboard {
		return nil, false
	}
	return b.c.Text()
}

func (b cocoaBackend) setText(m Mode, data []byte) bool {
	if m != ModeClipboard {
		return false
	}
	return b.c.SetText(data)
}

func (b cocoaBackend) clear(m Mode) {
	if m == ModeClipboard {
		b.c.Clear()
	}
}

func (b cocoaBackend) hasOwnership(m Mode) bool {
	return m == ModeClipboard && b.c.HasOwnership()
}

func (b cocoaBackend) close() { b.c.Close() }
