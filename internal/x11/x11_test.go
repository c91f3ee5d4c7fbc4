package x11

import (
	"bytes"
	"testing"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

func TestAtomNamesMatchTable(t *testing.T) {
	want := map[int]string{
		atomTargets:   "TARGETS",
		atomLength:    "LENGTH",
		atomMultiple:  "MULTIPLE",
		atomTimestamp: "TIMESTAMP",
		atomClipboard: "CLIPBOARD",
		atomUTF8:      "UTF8_STRING",
		atomIncr:      "INCR",
	}
	if len(want) != atomCount {
		t.Fatalf("atom table has %d entries, want %d", atomCount, len(want))
	}
	for idx, name := range want {
		if atomNames[idx] != name {
			t.Errorf("atomNames[%d] = %q, want %q", idx, atomNames[idx], name)
		}
	}
}

func TestAtomsToBytes(t *testing.T) {
	atoms := []xproto.Atom{1, 0x1234, 0xdeadbeef}
	buf := atomsToBytes(atoms)
	if len(buf) != len(atoms)*4 {
		t.Fatalf("len = %d, want %d", len(buf), len(atoms)*4)
	}
	for i, atom := range atoms {
		if got := xgb.Get32(buf[i*4:]); got != uint32(atom) {
			t.Errorf("atom %d round-tripped as %#x, want %#x", i, got, uint32(atom))
		}
	}
}

func TestLookupLocked(t *testing.T) {
	c := &Clipboard{}
	c.selections[SelClipboard].atom = 77
	c.selections[SelPrimary].atom = xproto.AtomPrimary

	if rec := c.lookupLocked(77); rec != &c.selections[SelClipboard] {
		t.Error("CLIPBOARD atom did not resolve to its record")
	}
	if rec := c.lookupLocked(xproto.AtomPrimary); rec != &c.selections[SelPrimary] {
		t.Error("PRIMARY atom did not resolve to its record")
	}
	if rec := c.lookupLocked(12345); rec != nil {
		t.Error("unknown atom resolved to a record")
	}
}

func TestInvalidSelectionIsNeutral(t *testing.T) {
	c := &Clipboard{}
	for _, s := range []Selection{-1, numSelections, 99} {
		if _, ok := c.Text(s); ok {
			t.Errorf("Text(%d) reported data", s)
		}
		if c.SetText(s, []byte("x")) {
			t.Errorf("SetText(%d) succeeded", s)
		}
		if c.HasOwnership(s) {
			t.Errorf("HasOwnership(%d) true", s)
		}
		c.Clear(s) // must not touch the connection
	}
}

func TestEmptySetTextRejected(t *testing.T) {
	c := &Clipboard{}
	if c.SetText(SelClipboard, nil) || c.SetText(SelClipboard, []byte{}) {
		t.Error("empty payloads must be rejected")
	}
}

func TestDeadContextIsNeutral(t *testing.T) {
	c := &Clipboard{dead: true}
	c.selections[SelClipboard].owned = true
	c.selections[SelClipboard].data = []byte("stale")

	if _, ok := c.Text(SelClipboard); ok {
		t.Error("dead context served cached data")
	}
	if c.SetText(SelClipboard, []byte("x")) {
		t.Error("dead context accepted a write")
	}
	if c.HasOwnership(SelClipboard) {
		t.Error("dead context reported ownership")
	}
	c.Clear(SelClipboard)
}

func TestOptionsNormalize(t *testing.T) {
	got := Options{Timeout: -1, TransferSize: 7, Display: ":3"}.normalize()
	if got.Timeout != fallbackTimeout {
		t.Errorf("Timeout = %v, want %v", got.Timeout, fallbackTimeout)
	}
	if got.TransferSize != fallbackTransferSize {
		t.Errorf("TransferSize = %d, want %d", got.TransferSize, fallbackTransferSize)
	}
	if got.Display != ":3" {
		t.Errorf("Display = %q, want :3", got.Display)
	}

	keep := Options{Timeout: 100, TransferSize: 4096}
	if got := keep.normalize(); got != keep {
		t.Errorf("valid options mangled: %+v", got)
	}
}

func TestSelectionClearDropsOwnership(t *testing.T) {
	c := &Clipboard{}
	c.selections[SelClipboard].atom = 5
	c.selections[SelClipboard].owned = true
	c.selections[SelClipboard].data = []byte("mine")

	c.handleSelectionClear(xproto.SelectionClearEvent{Selection: 5})

	rec := &c.selections[SelClipboard]
	if rec.owned || rec.data != nil {
		t.Errorf("record after clear: owned=%v data=%q", rec.owned, rec.data)
	}
	if rec.atom != 5 {
		t.Error("selection identity must survive a clear")
	}
}

func TestSelectionClearUnknownSelection(t *testing.T) {
	c := &Clipboard{}
	c.selections[SelClipboard].atom = 5
	c.selections[SelClipboard].owned = true
	c.selections[SelClipboard].data = []byte("mine")

	c.handleSelectionClear(xproto.SelectionClearEvent{Selection: 999})

	if !c.selections[SelClipboard].owned {
		t.Error("clear for a foreign selection must not touch our records")
	}
}

func TestFailTransfersWakesWaiter(t *testing.T) {
	c := &Clipboard{sends: make(map[xproto.Window]*incrSend)}
	f := &fetch{done: make(chan bool, 1), progress: make(chan struct{}, 1)}
	c.pending = f

	c.mu.Lock()
	c.failTransfersLocked()
	c.mu.Unlock()

	select {
	case ok := <-f.done:
		if ok {
			t.Error("aborted transfer signalled success")
		}
	default:
		t.Fatal("waiter was not woken")
	}
	if c.pending != nil {
		t.Error("pending slot not cleared")
	}
}

func TestIncrChunking(t *testing.T) {
	// The chunk arithmetic used by continueSend, checked on its own.
	const transfer = 8
	data := bytes.Repeat([]byte("x"), 20)

	var sizes []int
	offset := 0
	for {
		n := len(data) - offset
		if n > transfer {
			n = transfer
		}
		sizes = append(sizes, n)
		offset += n
		if n == 0 {
			break
		}
	}
	want := []int{8, 8, 4, 0}
	if len(sizes) != len(want) {
		t.Fatalf("chunk count = %d, want %d", len(sizes), len(want))
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("chunk %d size = %d, want %d", i, sizes[i], want[i])
		}
	}
}
