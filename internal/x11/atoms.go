package x11

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Indices into the interned atom table. The table is filled once at context
// creation and never written again, so reads are lock-free.
const (
	atomTargets = iota
	atomLength
	atomMultiple
	atomTimestamp
	atomClipboard
	atomUTF8
	atomIncr
	atomCount
)

var atomNames = [atomCount]string{
	"TARGETS",
	"LENGTH",
	"MULTIPLE",
	"TIMESTAMP",
	"CLIPBOARD",
	"UTF8_STRING",
	"INCR",
}

type atomTable [atomCount]xproto.Atom

// internAtoms resolves the protocol atoms in one pipelined batch: all
// requests go out first, then the replies are collected.
func internAtoms(conn *xgb.Conn) (atomTable, error) {
	var cookies [atomCount]xproto.InternAtomCookie
	for i, name := range atomNames {
		cookies[i] = xproto.InternAtom(conn, false, uint16(len(name)), name)
	}
	var table atomTable
	for i, cookie := range cookies {
		reply, err := cookie.Reply()
		if err != nil {
			return table, fmt.Errorf("intern atom %s: %w", atomNames[i], err)
		}
		table[i] = reply.Atom
	}
	return table, nil
}

// atomsToBytes packs an atom list into the 32-bit wire layout used by
// format-32 properties.
func atomsToBytes(atoms []xproto.Atom) []byte {
	buf := make([]byte, len(atoms)*4)
	for i, atom := range atoms {
		xgb.Put32(buf[i*4:], uint32(atom))
	}
	return buf
}
