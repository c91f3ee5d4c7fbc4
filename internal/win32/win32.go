//go:build windows

// Package win32 implements the clipboard over the Win32 global clipboard.
//
// The Windows clipboard is a global blackboard behind an open/close lock.
// Each Clipboard owns a hidden message-only window whose handle is passed to
// OpenClipboard, which is what makes GetClipboardOwner a usable ownership
// check after a write.
package win32

import (
	"runtime"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Options tunes the clipboard-open retry loop.
type Options struct {
	// MaxRetries is how often OpenClipboard is retried while another process
	// holds the lock.
	MaxRetries int
	// RetryDelay is the sleep between retries.
	RetryDelay time.Duration
}

// Clipboard is one clipboard context backed by a message-only window.
type Clipboard struct {
	hwnd windows.HWND
	opts Options
}

const (
	cfUnicodeText = 13
	gmemMoveable  = 0x0002
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procOpenClipboard     = user32.NewProc("OpenClipboard")
	procCloseClipboard    = user32.NewProc("CloseClipboard")
	procEmptyClipboard    = user32.NewProc("EmptyClipboard")
	procGetClipboardData  = user32.NewProc("GetClipboardData")
	procSetClipboardData  = user32.NewProc("SetClipboardData")
	procGetClipboardOwner = user32.NewProc("GetClipboardOwner")

	procGlobalAlloc  = kernel32.NewProc("GlobalAlloc")
	procGlobalFree   = kernel32.NewProc("GlobalFree")
	procGlobalLock   = kernel32.NewProc("GlobalLock")
	procGlobalUnlock = kernel32.NewProc("GlobalUnlock")
)

// New creates the message-only window backing the context.
func New(opts Options) (*Clipboard, error) {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 5
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 5 * time.Millisecond
	}
	hwnd, err := createMessageWindow()
	if err != nil {
		return nil, err
	}
	return &Clipboard{hwnd: hwnd, opts: opts}, nil
}

// Close destroys the message-only window.
func (c *Clipboard) Close() {
	if c.hwnd != 0 {
		destroyWindow(c.hwnd)
		c.hwnd = 0
	}
}

// lock attempts to open the clipboard on behalf of our window. Retries
// happen only while the failure is ERROR_ACCESS_DENIED, which means another
// process holds the lock; any other error aborts immediately.
func (c *Clipboard) lock() bool { return c.lockOwner(uintptr(c.hwnd)) }

func (c *Clipboard) lockOwner(owner uintptr) bool {
	retries := c.opts.MaxRetries
	for {
		r, _, err := procOpenClipboard.Call(owner)
		if r != 0 {
			return true
		}
		if errno, ok := err.(syscall.Errno); !ok || errno != syscall.Errno(windows.ERROR_ACCESS_DENIED) {
			return false
		}
		if retries <= 0 {
			return false
		}
		retries--
		time.Sleep(c.opts.RetryDelay)
	}
}

// Text reads CF_UNICODETEXT and transcodes it to UTF-8.
func (c *Clipboard) Text() ([]byte, bool) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !c.lock() {
		return nil, false
	}
	defer procCloseClipboard.Call()

	h, _, _ := procGetClipboardData.Call(cfUnicodeText)
	if h == 0 {
		return nil, false
	}
	p, _, _ := procGlobalLock.Call(h)
	if p == 0 {
		return nil, false
	}
	defer procGlobalUnlock.Call(h)

	// Clipboard text is NUL-terminated UTF-16.
	var n int
	for ptr := p; *(*uint16)(unsafe.Pointer(ptr)) != 0; ptr += 2 {
		n++
	}
	units := unsafe.Slice((*uint16)(unsafe.Pointer(p)), n)
	return utf8FromUTF16(units), true
}

// SetText transcodes UTF-8 to UTF-16, places it in a movable global buffer
// and publishes it. EmptyClipboard must run first: that is what records our
// window as the clipboard owner.
func (c *Clipboard) SetText(data []byte) bool {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	units, err := utf16FromUTF8(data)
	if err != nil {
		return false
	}
	units = append(units, 0)

	h, _, _ := procGlobalAlloc.Call(gmemMoveable, uintptr(len(units)*2))
	if h == 0 {
		return false
	}
	p, _, _ := procGlobalLock.Call(h)
	if p == 0 {
		procGlobalFree.Call(h)
		return false
	}
	copy(unsafe.Slice((*uint16)(unsafe.Pointer(p)), len(units)), units)
	procGlobalUnlock.Call(h)

	if !c.lock() {
		procGlobalFree.Call(h)
		return false
	}
	defer procCloseClipboard.Call()

	procEmptyClipboard.Call()
	if r, _, _ := procSetClipboardData.Call(cfUnicodeText, h); r == 0 {
		procGlobalFree.Call(h)
		return false
	}
	// Ownership of the buffer transferred to the system.
	return true
}

// Clear empties the clipboard. The open is ownerless on purpose:
// EmptyClipboard hands ownership to the opening window, and a cleared
// clipboard should not read as ours.
func (c *Clipboard) Clear() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !c.lockOwner(0) {
		return
	}
	procEmptyClipboard.Call()
	procCloseClipboard.Call()
}

// HasOwnership reports whether the clipboard owner recorded by the system is
// our window.
func (c *Clipboard) HasOwnership() bool {
	owner, _, _ := procGetClipboardOwner.Call()
	return c.hwnd != 0 && windows.HWND(owner) == c.hwnd
}
