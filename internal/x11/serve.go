package x11

import (
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// incrSend is one in-flight chunked transfer to a single requestor. Sessions
// are keyed by requestor window; a requestor runs at most one at a time.
type incrSend struct {
	property xproto.Atom
	target   xproto.Atom
	data     []byte
	offset   int
	finished bool
	expire   *time.Timer
}

// handleSelectionRequest answers another client's request for a selection we
// may own. Supported targets are TARGETS, UTF8_STRING and the STRING alias;
// anything else, and any selection we do not own, gets a SelectionNotify
// with property None. The notify is always sent.
func (c *Clipboard) handleSelectionRequest(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		// Obsolete clients leave the property unset; the ICCCM fallback is
		// to use the target atom.
		property = e.Target
	}

	c.mu.Lock()
	rec := c.lookupLocked(e.Selection)
	served := false
	if rec != nil && rec.owned {
		switch e.Target {
		case c.atoms[atomTargets]:
			payload := atomsToBytes([]xproto.Atom{
				c.atoms[atomTargets],
				c.atoms[atomUTF8],
				xproto.AtomString,
			})
			xproto.ChangeProperty(c.conn, xproto.PropModeReplace, e.Requestor, property,
				xproto.AtomAtom, 32, uint32(len(payload)/4), payload)
			served = true
		case c.atoms[atomUTF8], xproto.AtomString:
			if len(rec.data) > int(c.opts.TransferSize) {
				c.beginSendLocked(e, property, rec.data)
			} else {
				xproto.ChangeProperty(c.conn, xproto.PropModeReplace, e.Requestor, property,
					e.Target, 8, uint32(len(rec.data)), rec.data)
			}
			served = true
		}
	}
	c.mu.Unlock()

	if !served {
		property = xproto.AtomNone
	}
	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	xproto.SendEvent(c.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// beginSendLocked starts an INCR session: the property is set to type INCR
// carrying the total length, and the requestor window is watched so each
// deletion reaches our event loop as the cue for the next chunk. Callers
// hold mu.
func (c *Clipboard) beginSendLocked(e xproto.SelectionRequestEvent, property xproto.Atom, data []byte) {
	xproto.ChangeWindowAttributes(c.conn, e.Requestor, xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange})

	total := make([]byte, 4)
	xgb.Put32(total, uint32(len(data)))
	xproto.ChangeProperty(c.conn, xproto.PropModeReplace, e.Requestor, property,
		c.atoms[atomIncr], 32, 1, total)

	if old := c.sends[e.Requestor]; old != nil {
		old.expire.Stop()
	}
	s := &incrSend{property: property, target: e.Target, data: data}
	s.expire = time.AfterFunc(c.opts.Timeout, func() { c.expireSend(e.Requestor) })
	c.sends[e.Requestor] = s
}

// continueSend advances an INCR session after the requestor deleted the
// transfer property. Chunks are TransferSize bytes; a zero-length write ends
// the stream, and the deletion of that write tears the session down.
func (c *Clipboard) continueSend(requestor xproto.Window, property xproto.Atom) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.sends[requestor]
	if s == nil || s.property != property {
		return
	}
	if s.finished {
		c.dropSendLocked(requestor, s)
		return
	}

	n := len(s.data) - s.offset
	if n > int(c.opts.TransferSize) {
		n = int(c.opts.TransferSize)
	}
	chunk := s.data[s.offset : s.offset+n]
	s.offset += n
	if n == 0 {
		s.finished = true
	}
	xproto.ChangeProperty(c.conn, xproto.PropModeReplace, requestor, s.property,
		s.target, 8, uint32(n), chunk)
	s.expire.Reset(c.opts.Timeout)
}

// expireSend abandons a session whose requestor stopped consuming chunks
// within the action timeout.
func (c *Clipboard) expireSend(requestor xproto.Window) {
	c.mu.Lock()
	if s := c.sends[requestor]; s != nil {
		c.dropSendLocked(requestor, s)
	}
	c.mu.Unlock()
}

// dropSendLocked stops watching the requestor window and forgets the
// session. Callers hold mu.
func (c *Clipboard) dropSendLocked(requestor xproto.Window, s *incrSend) {
	s.expire.Stop()
	xproto.ChangeWindowAttributes(c.conn, requestor, xproto.CwEventMask,
		[]uint32{xproto.EventMaskNoEvent})
	delete(c.sends, requestor)
}
