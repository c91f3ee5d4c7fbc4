//go:build windows

package win32

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const hwndMessage = ^uintptr(2) // HWND_MESSAGE

var (
	procRegisterClassExW = user32.NewProc("RegisterClassExW")
	procCreateWindowExW  = user32.NewProc("CreateWindowExW")
	procDestroyWindow    = user32.NewProc("DestroyWindow")
	procDefWindowProcW   = user32.NewProc("DefWindowProcW")

	classOnce sync.Once
	classErr  error
	className *uint16
)

type wndClassEx struct {
	size       uint32
	style      uint32
	wndProc    uintptr
	clsExtra   int32
	wndExtra   int32
	instance   windows.Handle
	icon       windows.Handle
	cursor     windows.Handle
	background windows.Handle
	menuName   *uint16
	className  *uint16
	iconSm     windows.Handle
}

// registerClass registers the window class shared by every context. The
// window never processes messages of its own.
func registerClass() error {
	classOnce.Do(func() {
		className, classErr = windows.UTF16PtrFromString("clip")
		if classErr != nil {
			return
		}
		inst, err := windows.GetModuleHandle(nil)
		if err != nil {
			classErr = err
			return
		}
		wc := wndClassEx{
			size: uint32(unsafe.Sizeof(wndClassEx{})),
			wndProc: windows.NewCallback(func(hwnd, msg, wparam, lparam uintptr) uintptr {
				r, _, _ := procDefWindowProcW.Call(hwnd, msg, wparam, lparam)
				return r
			}),
			instance:  inst,
			className: className,
		}
		r, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc)))
		if r == 0 {
			if errno, ok := err.(syscall.Errno); !ok || errno != syscall.Errno(windows.ERROR_CLASS_ALREADY_EXISTS) {
				classErr = fmt.Errorf("register window class: %w", err)
			}
		}
	})
	return classErr
}

func createMessageWindow() (windows.HWND, error) {
	if err := registerClass(); err != nil {
		return 0, err
	}
	r, _, err := procCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(className)),
		0,
		0, 0, 0, 0,
		hwndMessage,
		0, 0, 0,
	)
	if r == 0 {
		return 0, fmt.Errorf("create message window: %w", err)
	}
	return windows.HWND(r), nil
}

func destroyWindow(hwnd windows.HWND) {
	procDestroyWindow.Call(uintptr(hwnd))
}
