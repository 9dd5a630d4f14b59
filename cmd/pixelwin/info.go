package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/1broseidon/pixelwin"
	"github.com/1broseidon/pixelwin/key"
)

func runKeys(args []string) int {
	fs := flag.NewFlagSet("keys", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	oneColumn := fs.Bool("1", false, "One name per line")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var names []string
	for _, k := range key.All() {
		names = append(names, k.String())
	}

	width := 0
	if !*oneColumn && term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}
	printColumns(os.Stdout, names, width)
	return 0
}

// printColumns lays names out column-major to fit width. A width of zero
// prints one name per line.
func printColumns(w io.Writer, names []string, width int) {
	longest := 0
	for _, n := range names {
		longest = max(longest, len(n))
	}
	colWidth := longest + 2
	cols := 1
	if width > 0 {
		cols = max(1, width/colWidth)
	}
	rows := (len(names) + cols - 1) / cols
	for r := 0; r < rows; r++ {
		var line strings.Builder
		for c := 0; c < cols; c++ {
			i := c*rows + r
			if i >= len(names) {
				break
			}
			if c < cols-1 && (c+1)*rows+r < len(names) {
				fmt.Fprintf(&line, "%-*s", colWidth, names[i])
			} else {
				line.WriteString(names[i])
			}
		}
		fmt.Fprintln(w, line.String())
	}
}

func runDisplays(args []string) int {
	fs := flag.NewFlagSet("displays", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	backend, err := pixelwin.BackendName()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	displays, err := pixelwin.Displays()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("backend: %s\n", backend)
	for _, d := range displays {
		primary := ""
		if d.Primary {
			primary = " (primary)"
		}
		fmt.Printf("%d: %s%s %dx%d+%d+%d usable %dx%d+%d+%d\n",
			d.ID, d.Name, primary,
			d.Bounds.Width, d.Bounds.Height, d.Bounds.X, d.Bounds.Y,
			d.Usable.Width, d.Usable.Height, d.Usable.X, d.Usable.Y)
	}
	return 0
}
