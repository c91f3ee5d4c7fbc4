package x11

import (
	"time"

	"github.com/jezek/xgb/xproto"
)

// fetchState tracks the single outstanding inbound transfer. The façade sets
// the initial state; only the event loop reads and advances it, under mu.
type fetchState int

const (
	fetchAwaitingNotify fetchState = iota
	fetchIncrReceiving
)

// fetch is the pending inbound transfer record.
type fetch struct {
	sel      Selection
	state    fetchState
	buf      []byte
	done     chan bool     // completion; buffered so the loop never blocks
	progress chan struct{} // INCR chunk arrived; re-arms the caller's timer
}

// Property reads are paged in 16 MiB steps; GetProperty counts in 32-bit
// words.
const propertyChunkWords = 1 << 22

// fetchRemote asks the current owner for the selection and blocks until the
// event loop delivers the answer or the timeout runs out. Each INCR chunk
// restarts the clock, so the timeout bounds a protocol step rather than the
// whole payload.
func (c *Clipboard) fetchRemote(s Selection) ([]byte, bool) {
	c.fetchMu.Lock()
	defer c.fetchMu.Unlock()

	c.mu.Lock()
	if c.dead || c.pending != nil {
		c.mu.Unlock()
		return nil, false
	}
	f := &fetch{
		sel:      s,
		state:    fetchAwaitingNotify,
		done:     make(chan bool, 1),
		progress: make(chan struct{}, 1),
	}
	c.pending = f
	selAtom := c.selections[s].atom
	c.mu.Unlock()

	// The selection atom doubles as the transfer property on our window.
	err := xproto.ConvertSelectionChecked(c.conn, c.window, selAtom,
		c.atoms[atomUTF8], selAtom, xproto.TimeCurrentTime).Check()
	if err != nil {
		c.mu.Lock()
		if c.pending == f {
			c.pending = nil
		}
		c.mu.Unlock()
		return nil, false
	}

	timer := time.NewTimer(c.opts.Timeout)
	defer timer.Stop()
	for {
		select {
		case ok := <-f.done:
			if !ok {
				return nil, false
			}
			c.mu.Lock()
			buf := f.buf
			c.mu.Unlock()
			return buf, true
		case <-f.progress:
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(c.opts.Timeout)
		case <-timer.C:
			// Abandon the transfer; the loop discards late events for it.
			c.mu.Lock()
			if c.pending == f {
				c.pending = nil
			}
			c.mu.Unlock()
			return nil, false
		}
	}
}

// handleSelectionNotify completes (or begins, for INCR) the pending inbound
// transfer once the owner has answered our ConvertSelection.
func (c *Clipboard) handleSelectionNotify(e xproto.SelectionNotifyEvent) {
	c.mu.Lock()
	f := c.pending
	if f == nil || f.state != fetchAwaitingNotify || c.selections[f.sel].atom != e.Selection {
		c.mu.Unlock()
		return
	}
	if e.Property == xproto.AtomNone {
		// No owner, or the owner cannot produce UTF8_STRING.
		c.finishFetchLocked(f, nil, false)
		c.mu.Unlock()
		return
	}
	prop := e.Property
	c.mu.Unlock()

	typ, format, value, err := c.readProperty(prop)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != f {
		// The waiter timed out while we were reading.
		return
	}
	switch {
	case err != nil:
		c.finishFetchLocked(f, nil, false)
	case typ == c.atoms[atomIncr]:
		// Deleting the INCR stub acknowledged the transfer; the owner now
		// streams chunks as PropertyNotify NewValue events on our window.
		f.state = fetchIncrReceiving
		f.buf = nil
	case format != 8:
		c.finishFetchLocked(f, nil, false)
	default:
		c.finishFetchLocked(f, value, true)
	}
}

// continueFetch appends one INCR chunk delivered to our window. A zero-length
// write terminates the stream successfully.
func (c *Clipboard) continueFetch(prop xproto.Atom) {
	c.mu.Lock()
	f := c.pending
	if f == nil || f.state != fetchIncrReceiving || c.selections[f.sel].atom != prop {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	_, _, value, err := c.readProperty(prop)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != f {
		return
	}
	switch {
	case err != nil:
		c.finishFetchLocked(f, nil, false)
	case len(value) == 0:
		c.finishFetchLocked(f, f.buf, true)
	default:
		f.buf = append(f.buf, value...)
		select {
		case f.progress <- struct{}{}:
		default:
		}
	}
}

// finishFetchLocked hands the result to the waiter and clears the pending
// slot. Callers hold mu.
func (c *Clipboard) finishFetchLocked(f *fetch, buf []byte, ok bool) {
	f.buf = buf
	f.done <- ok
	c.pending = nil
}

// readProperty reads and deletes a property on the message window, paging
// through large values. The property is only deleted by the server once the
// final page has been read, which is what acknowledges INCR writes.
func (c *Clipboard) readProperty(prop xproto.Atom) (xproto.Atom, byte, []byte, error) {
	var (
		out    []byte
		typ    xproto.Atom
		format byte
		offset uint32
	)
	for {
		reply, err := xproto.GetProperty(c.conn, true, c.window, prop,
			xproto.GetPropertyTypeAny, offset, propertyChunkWords).Reply()
		if err != nil {
			return 0, 0, nil, err
		}
		typ = reply.Type
		format = reply.Format
		out = append(out, reply.Value...)
		if reply.BytesAfter == 0 {
			return typ, format, out, nil
		}
		offset += uint32(len(reply.Value)) / 4
	}
}
