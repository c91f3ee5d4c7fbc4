package x11

import "github.com/jezek/xgb/xproto"

// eventLoop is the context's single background task. It blocks on the next X
// event and dispatches it to exactly one handler; it never calls back into
// the public API. The loop exits on the DestroyNotify for the message window
// or when the connection dies.
func (c *Clipboard) eventLoop() {
	defer close(c.loopDone)
	for {
		ev, xerr := c.conn.WaitForEvent()
		if ev == nil && xerr == nil {
			// Connection shut down or broken: the context is dead. Wake any
			// waiter so it fails now instead of running out its timeout.
			c.mu.Lock()
			c.dead = true
			c.failTransfersLocked()
			c.mu.Unlock()
			return
		}
		if xerr != nil {
			// Protocol errors are not fatal to the context; a requestor that
			// disappeared mid-transfer produces these routinely.
			continue
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			c.handleSelectionRequest(e)
		case xproto.SelectionClearEvent:
			c.handleSelectionClear(e)
		case xproto.SelectionNotifyEvent:
			c.handleSelectionNotify(e)
		case xproto.PropertyNotifyEvent:
			c.handlePropertyNotify(e)
		case xproto.DestroyNotifyEvent:
			if e.Window == c.window {
				c.mu.Lock()
				c.failTransfersLocked()
				c.mu.Unlock()
				return
			}
		}
	}
}

// handleSelectionClear records ownership loss when another client (or our
// own Clear) takes the selection over. The selection identity and the atom
// table stay intact.
func (c *Clipboard) handleSelectionClear(e xproto.SelectionClearEvent) {
	c.mu.Lock()
	if rec := c.lookupLocked(e.Selection); rec != nil {
		rec.owned = false
		rec.data = nil
	}
	c.mu.Unlock()
}

// handlePropertyNotify serves two protocols: property deletions on a foreign
// requestor window drive an outbound INCR session, and new values on our own
// window carry inbound INCR chunks.
func (c *Clipboard) handlePropertyNotify(e xproto.PropertyNotifyEvent) {
	if e.Window == c.window {
		if e.State == xproto.PropertyNewValue {
			c.continueFetch(e.Atom)
		}
		return
	}
	if e.State == xproto.PropertyDelete {
		c.continueSend(e.Window, e.Atom)
	}
}

// failTransfersLocked aborts the pending inbound transfer and every outbound
// INCR session. Callers hold mu.
func (c *Clipboard) failTransfersLocked() {
	if c.pending != nil {
		c.pending.done <- false
		c.pending = nil
	}
	for w, s := range c.sends {
		s.expire.Stop()
		delete(c.sends, w)
	}
}
