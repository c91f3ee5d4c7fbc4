package win32

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("invalid UTF-8 sequence")

// utf16FromUTF8 transcodes strictly: a malformed sequence fails the whole
// conversion rather than being replaced, matching MB_ERR_INVALID_CHARS. The
// result carries no terminator.
func utf16FromUTF8(data []byte) ([]uint16, error) {
	if !utf8.Valid(data) {
		return nil, errInvalidUTF8
	}
	return utf16.Encode([]rune(string(data))), nil
}

// utf8FromUTF16 transcodes a NUL-free UTF-16 sequence back to UTF-8 bytes.
// Unpaired surrogates decode to the replacement character, as the system
// transcoder does without strict flags.
func utf8FromUTF16(units []uint16) []byte {
	return []byte(string(utf16.Decode(units)))
}
