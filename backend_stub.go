//go:build !(linux || freebsd || openbsd || netbsd || dragonfly || windows || darwin)

package clip

import "errors"

func newBackend(Options) (backend, error) {
	return nil, errors.New("clipboard is not supported on this platform")
}
