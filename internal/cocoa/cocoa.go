//go:build darwin

// Package cocoa implements the clipboard over the AppKit general pasteboard.
//
// AppKit is reached through the Objective-C runtime rather than cgo. The
// pasteboard keeps a monotonic change count; remembering the count at our
// last successful write is what stands in for ownership.
package cocoa

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/ebitengine/purego/objc"
)

const nsUTF8StringEncoding = 4

// Clipboard wraps the general pasteboard.
type Clipboard struct {
	lastChange atomic.Int64 // change count at our last successful write
}

var (
	initOnce sync.Once
	initErr  error

	selAlloc             objc.SEL
	selInit              objc.SEL
	selRelease           objc.SEL
	selGeneralPasteboard objc.SEL
	selClearContents     objc.SEL
	selChangeCount       objc.SEL
	selSetStringForType  objc.SEL
	selStringForType     objc.SEL
	selUTF8String        objc.SEL
	selStringWithUTF8    objc.SEL
	selInitWithBytes     objc.SEL

	// NSPasteboardTypeString is the UTI below; building the string directly
	// avoids dlsym'ing the AppKit constant.
	pasteboardTypeString objc.ID
)

func ensureAppKit() error {
	initOnce.Do(func() {
		if _, err := purego.Dlopen("/System/Library/Frameworks/AppKit.framework/AppKit",
			purego.RTLD_LAZY|purego.RTLD_GLOBAL); err != nil {
			initErr = fmt.Errorf("load AppKit: %w", err)
			return
		}
		selAlloc = objc.RegisterName("alloc")
		selInit = objc.RegisterName("init")
		selRelease = objc.RegisterName("release")
		selGeneralPasteboard = objc.RegisterName("generalPasteboard")
		selClearContents = objc.RegisterName("clearContents")
		selChangeCount = objc.RegisterName("changeCount")
		selSetStringForType = objc.RegisterName("setString:forType:")
		selStringForType = objc.RegisterName("stringForType:")
		selUTF8String = objc.RegisterName("UTF8String")
		selStringWithUTF8 = objc.RegisterName("stringWithUTF8String:")
		selInitWithBytes = objc.RegisterName("initWithBytes:length:encoding:")

		pasteboardTypeString = nsString("public.utf8-plain-text")
	})
	return initErr
}

// New loads AppKit and resolves the pasteboard selectors.
func New() (*Clipboard, error) {
	if err := ensureAppKit(); err != nil {
		return nil, err
	}
	return &Clipboard{}, nil
}

// Close releases nothing; the general pasteboard is a process-wide singleton.
func (c *Clipboard) Close() {}

func generalPasteboard() objc.ID {
	cls := objc.GetClass("NSPasteboard")
	if cls == 0 {
		return 0
	}
	return objc.ID(cls).Send(selGeneralPasteboard)
}

// SetText clears the pasteboard, writes the string and records the new
// change count. Initialising the NSString from raw bytes makes AppKit the
// validator: malformed UTF-8 yields nil and the write fails.
func (c *Clipboard) SetText(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	pool := objc.ID(objc.GetClass("NSAutoreleasePool")).Send(selAlloc).Send(selInit)
	if pool != 0 {
		defer pool.Send(selRelease)
	}

	pb := generalPasteboard()
	if pb == 0 {
		return false
	}
	str := objc.ID(objc.GetClass("NSString")).Send(selAlloc)
	str = objc.Send[objc.ID](str, selInitWithBytes,
		unsafe.Pointer(&data[0]), uint(len(data)), uint(nsUTF8StringEncoding))
	if str == 0 {
		return false
	}
	defer str.Send(selRelease)

	// clearContents declares us the new writer and bumps the change count.
	pb.Send(selClearContents)
	ok := objc.Send[bool](pb, selSetStringForType, str, pasteboardTypeString)
	if ok {
		c.lastChange.Store(int64(objc.Send[int64](pb, selChangeCount)))
	}
	return ok
}

// Text reads the pasteboard string type as UTF-8 bytes.
func (c *Clipboard) Text() ([]byte, bool) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	pool := objc.ID(objc.GetClass("NSAutoreleasePool")).Send(selAlloc).Send(selInit)
	if pool != 0 {
		defer pool.Send(selRelease)
	}

	pb := generalPasteboard()
	if pb == 0 {
		return nil, false
	}
	str := objc.Send[objc.ID](pb, selStringForType, pasteboardTypeString)
	if str == 0 {
		return nil, false
	}
	data := utf8Bytes(str)
	if len(data) == 0 {
		return nil, false
	}
	return data, true
}

// Clear empties the pasteboard. The change count moves past our remembered
// value, so ownership reads false afterwards.
func (c *Clipboard) Clear() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if pb := generalPasteboard(); pb != 0 {
		pb.Send(selClearContents)
	}
}

// HasOwnership compares the live change count with the one recorded at our
// last successful write.
func (c *Clipboard) HasOwnership() bool {
	pb := generalPasteboard()
	if pb == 0 {
		return false
	}
	return int64(objc.Send[int64](pb, selChangeCount)) == c.lastChange.Load()
}

func nsString(v string) objc.ID {
	return objc.ID(objc.GetClass("NSString")).Send(selStringWithUTF8, v+"\x00")
}

// utf8Bytes copies an NSString's UTF-8 representation. The backing buffer
// belongs to the autorelease pool, so the copy is mandatory.
func utf8Bytes(str objc.ID) []byte {
	ptr := objc.Send[unsafe.Pointer](str, selUTF8String)
	if ptr == nil {
		return nil
	}
	n := 0
	for *(*byte)(unsafe.Add(ptr, n)) != 0 {
		n++
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = *(*byte)(unsafe.Add(ptr, i))
	}
	return out
}
