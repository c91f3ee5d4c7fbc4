// Package x11 implements the clipboard over the ICCCM selection protocol.
//
// X11 has no central clipboard store: selection contents live inside the
// owning client and are transferred between clients by asynchronous message
// exchanges mediated by the X server. Each Clipboard therefore owns an
// invisible message window and a background event loop that serves
// SelectionRequest events from other clients, tracks ownership loss through
// SelectionClear, and completes inbound ConvertSelection transfers,
// including the INCR chunked protocol in both directions.
package x11

import (
	"fmt"
	"sync"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Selection identifies one of the two X selections the package speaks for.
type Selection int

const (
	// SelClipboard is the CLIPBOARD selection.
	SelClipboard Selection = iota
	// SelPrimary is the PRIMARY (mouse highlight) selection.
	SelPrimary

	numSelections
)

// Options tunes the connection and the transfer protocol. The caller is
// expected to pass resolved values; zero fields still fall back defensively.
type Options struct {
	// Display names the X server. Empty means the DISPLAY environment
	// variable.
	Display string
	// Timeout bounds an inbound transfer and each INCR step.
	Timeout time.Duration
	// TransferSize is the INCR threshold and chunk size in bytes. Must be a
	// positive multiple of 4.
	TransferSize uint32
}

const (
	fallbackTimeout      = 1500 * time.Millisecond
	fallbackTransferSize = 1 << 20
)

// normalize replaces unusable option values with the protocol defaults.
func (o Options) normalize() Options {
	if o.Timeout <= 0 {
		o.Timeout = fallbackTimeout
	}
	if o.TransferSize == 0 || o.TransferSize%4 != 0 {
		o.TransferSize = fallbackTransferSize
	}
	return o
}

// selection is the per-mode record of owned or requested data.
type selection struct {
	owned  bool
	data   []byte
	target xproto.Atom // type under which data is served
	atom   xproto.Atom // X selection identity (CLIPBOARD or PRIMARY)
}

// Clipboard is one connection to the X server together with the message
// window and event loop that carry the selection protocol.
type Clipboard struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atomTable
	opts   Options

	// mu guards everything below: the loop and caller threads both touch it.
	mu         sync.Mutex
	selections [numSelections]selection
	pending    *fetch
	sends      map[xproto.Window]*incrSend
	dead       bool

	// fetchMu serialises inbound transfers so at most one ConvertSelection
	// is outstanding at a time; later readers queue behind it.
	fetchMu sync.Mutex

	loopDone  chan struct{}
	closeOnce sync.Once
}

// New connects to the X server, creates the message window, interns the
// protocol atoms and starts the event loop. Any failure tears down whatever
// was already established.
func New(opts Options) (*Clipboard, error) {
	opts = opts.normalize()

	conn, err := connect(opts.Display)
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}

	setup := xproto.Setup(conn)
	if setup == nil {
		conn.Close()
		return nil, fmt.Errorf("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		conn.Close()
		return nil, fmt.Errorf("xproto screen unavailable")
	}

	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("allocate window id: %w", err)
	}
	// An InputOnly window never maps anything visible; it exists to receive
	// selection traffic. StructureNotify delivers the DestroyNotify that
	// Close uses as the loop's termination sentinel.
	const eventMask = xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify
	err = xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{eventMask}).Check()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create message window: %w", err)
	}

	atoms, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return nil, err
	}

	c := &Clipboard{
		conn:     conn,
		window:   window,
		atoms:    atoms,
		opts:     opts,
		sends:    make(map[xproto.Window]*incrSend),
		loopDone: make(chan struct{}),
	}
	c.selections[SelClipboard].atom = atoms[atomClipboard]
	c.selections[SelPrimary].atom = xproto.AtomPrimary
	go c.eventLoop()
	return c, nil
}

func connect(display string) (*xgb.Conn, error) {
	if display == "" {
		return xgb.NewConn()
	}
	return xgb.NewConnDisplay(display)
}

// Close destroys the message window, joins the event loop and disconnects.
// Safe to call more than once.
func (c *Clipboard) Close() {
	c.closeOnce.Do(func() {
		// The loop treats the DestroyNotify for its own window as the signal
		// to exit; closing the connection afterwards is the fallback should
		// the sentinel never arrive (server already gone).
		xproto.DestroyWindow(c.conn, c.window)
		select {
		case <-c.loopDone:
		case <-time.After(c.opts.Timeout):
		}
		c.conn.Close()
		<-c.loopDone

		c.mu.Lock()
		for i := range c.selections {
			c.selections[i].owned = false
			c.selections[i].data = nil
		}
		c.mu.Unlock()
	})
}

// SetText copies data into the selection record and claims ownership of the
// corresponding X selection. The checked request doubles as the flush;
// SetSelectionOwner is authoritative once the server has processed it.
func (c *Clipboard) SetText(s Selection, data []byte) bool {
	if c == nil || s < 0 || s >= numSelections || len(data) == 0 {
		return false
	}
	c.mu.Lock()
	if c.dead {
		c.mu.Unlock()
		return false
	}
	rec := &c.selections[s]
	rec.data = append([]byte(nil), data...)
	rec.target = c.atoms[atomUTF8]
	rec.owned = true
	selAtom := rec.atom
	c.mu.Unlock()

	if err := xproto.SetSelectionOwnerChecked(c.conn, c.window, selAtom, xproto.TimeCurrentTime).Check(); err != nil {
		c.mu.Lock()
		rec.owned = false
		rec.data = nil
		c.mu.Unlock()
		return false
	}
	return true
}

// Text returns the selection's text. When this context owns the selection the
// stored bytes are returned directly; otherwise the current owner is asked
// via ConvertSelection and the call blocks until the event loop completes the
// transfer or the timeout expires.
func (c *Clipboard) Text(s Selection) ([]byte, bool) {
	if c == nil || s < 0 || s >= numSelections {
		return nil, false
	}
	c.mu.Lock()
	if c.dead {
		c.mu.Unlock()
		return nil, false
	}
	if rec := &c.selections[s]; rec.owned {
		out := append([]byte(nil), rec.data...)
		c.mu.Unlock()
		return out, true
	}
	c.mu.Unlock()
	return c.fetchRemote(s)
}

// Clear relinquishes the selection server-side. Local ownership state is not
// touched here: the server answers with a SelectionClear that the event loop
// applies, so there is a single source of truth for ownership loss.
func (c *Clipboard) Clear(s Selection) {
	if c == nil || s < 0 || s >= numSelections {
		return
	}
	c.mu.Lock()
	if c.dead {
		c.mu.Unlock()
		return
	}
	selAtom := c.selections[s].atom
	c.mu.Unlock()
	_ = xproto.SetSelectionOwnerChecked(c.conn, xproto.AtomNone, selAtom, xproto.TimeCurrentTime).Check()
}

// HasOwnership reports whether this context currently owns the selection.
func (c *Clipboard) HasOwnership(s Selection) bool {
	if c == nil || s < 0 || s >= numSelections {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.dead && c.selections[s].owned
}

// lookupLocked resolves an X selection atom to its record. Callers hold mu.
func (c *Clipboard) lookupLocked(atom xproto.Atom) *selection {
	for i := range c.selections {
		if c.selections[i].atom == atom {
			return &c.selections[i]
		}
	}
	return nil
}
