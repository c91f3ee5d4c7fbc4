// Package config loads optional clipboard settings from a TOML file. It is
// used by the sample tool; the library itself takes Options directly.
package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/example/clip"
)

// File mirrors the option surface of the library in config-file form.
// Durations are carried as integer milliseconds, matching how the options
// are usually quoted.
type File struct {
	X11 struct {
		ActionTimeoutMS int    `toml:"action_timeout_ms"`
		TransferSize    uint32 `toml:"transfer_size"`
		Display         string `toml:"display"`
	} `toml:"x11"`
	Win32 struct {
		MaxRetries   int `toml:"max_retries"`
		RetryDelayMS int `toml:"retry_delay_ms"`
	} `toml:"win32"`
}

// Options converts the file form into library options. Unset fields stay
// zero and fall back to the library defaults.
func (f *File) Options() clip.Options {
	return clip.Options{
		ActionTimeout: time.Duration(f.X11.ActionTimeoutMS) * time.Millisecond,
		TransferSize:  f.X11.TransferSize,
		DisplayName:   f.X11.Display,
		MaxRetries:    f.Win32.MaxRetries,
		RetryDelay:    time.Duration(f.Win32.RetryDelayMS) * time.Millisecond,
	}
}

// Parse reads a configuration document from r.
func Parse(r io.Reader) (*File, error) {
	var f File
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads path, or the default location when path is empty. A missing
// default file is not an error; it yields all-default options. A missing
// file at an explicit path is reported as an error.
func Load(path string) (clip.Options, error) {
	explicit := path != ""
	if !explicit {
		path = defaultPath()
		if path == "" {
			return clip.Options{}, nil
		}
	}
	fh, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return clip.Options{}, nil
		}
		return clip.Options{}, err
	}
	defer fh.Close()

	f, err := Parse(fh)
	if err != nil {
		return clip.Options{}, err
	}
	return f.Options(), nil
}

func defaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "clip", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "clip", "config.toml")
}
