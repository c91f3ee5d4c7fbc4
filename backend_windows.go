//go:build windows

package clip

import "github.com/example/clip/internal/win32"

func newBackend(o Options) (backend, error) {
	w, err := win32.New(win32.Options{
		MaxRetries: o.MaxRetries,
		RetryDelay: o.RetryDelay,
	})
	if err != nil {
		return nil, err
	}
	return winBackend{w}, nil
}

// winBackend serves only the copy/paste buffer; the selection mode answers
// neutrally because Windows has no primary selection.
type winBackend struct{ c *win32.Clipboard }

func (b winBackend) text(m Mode) ([]byte, bool) {
	if m != ModeClipboard {
		return nil, false
	}
	return b.c.Text()
}

func (b winBackend) setText(m Mode, data []byte) bool {
	if m != ModeClipboard {
		return false
	}
	return b.c.SetText(data)
}

func (b winBackend) clear(m Mode) {
	if m == ModeClipboard {
		b.c.Clear()
	}
}

func (b winBackend) hasOwnership(m Mode) bool {
	return m == ModeClipboard && b.c.HasOwnership()
}

func (b winBackend) close() { b.c.Close() }
