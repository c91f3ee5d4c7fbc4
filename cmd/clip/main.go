// Command clip is a small interactive exerciser for the clipboard library.
// Lines starting with "x" publish the rest of the line; any other line reads
// the clipboard back; "q" quits.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/example/clip"
	"github.com/example/clip/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default: $XDG_CONFIG_HOME/clip/config.toml)")
	display := flag.String("display", "", "X11 display to connect to")
	timeout := flag.Duration("timeout", 0, "X11 action timeout")
	primary := flag.Bool("primary", false, "operate on the primary selection instead of the clipboard")
	flag.Parse()

	opts, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *display != "" {
		opts.DisplayName = *display
	}
	if *timeout > 0 {
		opts.ActionTimeout = *timeout
	}

	cb, err := clip.New(&opts)
	if err != nil {
		log.Fatalf("clipboard init failed: %v", err)
	}
	defer cb.Close()

	mode := clip.ModeClipboard
	if *primary {
		mode = clip.ModeSelection
	}

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "q":
			return
		case strings.HasPrefix(line, "x"):
			ok := cb.SetTextMode(mode, strings.TrimPrefix(line, "x"))
			fmt.Printf("set=%v owned=%v\n", ok, cb.HasOwnership(mode))
		default:
			if text, ok := cb.TextMode(mode); ok {
				fmt.Printf("owned=%v %s=%q\n", cb.HasOwnership(mode), mode, text)
			} else {
				fmt.Printf("%s is empty\n", mode)
			}
		}
	}
	if err := sc.Err(); err != nil {
		log.Fatalf("stdin: %v", err)
	}
}
