// Package klipper provides a clipboard backend for Wayland desktops, where
// the X selection protocol is unreachable, by talking to the Klipper
// clipboard manager over the session bus.
//
// The interface carries no ownership notion, so ownership queries always
// answer false; callers treat the backend the way the Windows one treats the
// primary selection.
package klipper

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	busName    = "org.kde.klipper"
	objectPath = "/klipper"
	iface      = "org.kde.klipper.klipper"
)

// Clipboard is one session-bus connection to Klipper.
type Clipboard struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// New connects to the session bus and verifies the Klipper service answers.
func New() (*Clipboard, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("dbus connect: %w", err)
	}
	c := &Clipboard{conn: conn, obj: conn.Object(busName, objectPath)}
	if _, err := c.contents(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("klipper unavailable: %w", err)
	}
	return c, nil
}

// Close drops the bus connection.
func (c *Clipboard) Close() {
	_ = c.conn.Close()
}

func (c *Clipboard) contents() (string, error) {
	var s string
	if err := c.obj.Call(iface+".getClipboardContents", 0).Store(&s); err != nil {
		return "", err
	}
	return s, nil
}

// Text returns the current clipboard text.
func (c *Clipboard) Text() ([]byte, bool) {
	s, err := c.contents()
	if err != nil || s == "" {
		return nil, false
	}
	return []byte(s), true
}

// SetText replaces the clipboard text.
func (c *Clipboard) SetText(data []byte) bool {
	return c.obj.Call(iface+".setClipboardContents", 0, string(data)).Err == nil
}

// Clear empties the current clipboard entry.
func (c *Clipboard) Clear() {
	c.obj.Call(iface+".clearClipboardContents", 0)
}
