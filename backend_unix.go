//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clip

import (
	"os"

	"github.com/example/clip/internal/klipper"
	"github.com/example/clip/internal/x11"
)

// newBackend prefers the X selection protocol. On a Wayland-only session
// (no DISPLAY anywhere) it falls back to the Klipper clipboard manager.
func newBackend(o Options) (backend, error) {
	if o.DisplayName == "" && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") != "" {
		k, err := klipper.New()
		if err != nil {
			return nil, err
		}
		return klipperBackend{k}, nil
	}
	x, err := x11.New(x11.Options{
		Display:      o.DisplayName,
		Timeout:      o.ActionTimeout,
		TransferSize: o.TransferSize,
	})
	if err != nil {
		return nil, err
	}
	return x11Backend{x}, nil
}

type x11Backend struct{ c *x11.Clipboard }

func xsel(m Mode) x11.Selection {
	if m == ModeSelection {
		return x11.SelPrimary
	}
	return x11.SelClipboard
}

func (b x11Backend) text(m Mode) ([]byte, bool) { return b.c.Text(xsel(m)) }

func (b x11Backend) setText(m Mode, data []byte) bool { return b.c.SetText(xsel(m), data) }

func (b x11Backend) clear(m Mode) { b.c.Clear(xsel(m)) }

func (b x11Backend) hasOwnership(m Mode) bool { return b.c.HasOwnership(xsel(m)) }

func (b x11Backend) close() { b.c.Close() }

// klipperBackend serves only Klipper's single clipboard; the selection mode
// answers neutrally, as on Windows.
type klipperBackend struct{ c *klipper.Clipboard }

func (b klipperBackend) text(m Mode) ([]byte, bool) {
	if m != ModeClipboard {
		return nil, false
	}
	return b.c.Text()
}

func (b klipperBackend) setText(m Mode, data []byte) bool {
	if m != ModeClipboard {
		return false
	}
	return b.c.SetText(data)
}

func (b klipperBackend) clear(m Mode) {
	if m == ModeClipboard {
		b.c.Clear()
	}
}

func (b klipperBackend) hasOwnership(Mode) bool { return false }
func (b klipperBackend) close()                 { b.c.Close() }
