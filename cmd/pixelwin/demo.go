package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/1broseidon/pixelwin"
	"github.com/1broseidon/pixelwin/key"
)

const (
	menuClear = iota + 1
	menuPause
	menuQuit
	menuCrosshair
	menuHideCursor
	menuTopmost
)

func parseScale(s string) (pixelwin.Scale, error) {
	switch strings.ToLower(s) {
	case "1":
		return pixelwin.ScaleX1, nil
	case "2":
		return pixelwin.ScaleX2, nil
	case "4":
		return pixelwin.ScaleX4, nil
	case "8":
		return pixelwin.ScaleX8, nil
	case "16":
		return pixelwin.ScaleX16, nil
	case "fit":
		return pixelwin.ScaleFitScreen, nil
	}
	return 0, fmt.Errorf("invalid scale %q (want 1, 2, 4, 8, 16 or fit)", s)
}

func parseScaleMode(s string) (pixelwin.ScaleMode, error) {
	for _, m := range []pixelwin.ScaleMode{
		pixelwin.ScaleModeStretch,
		pixelwin.ScaleModeAspectRatioStretch,
		pixelwin.ScaleModeCenter,
		pixelwin.ScaleModeUpperLeft,
	} {
		if m.String() == strings.ToLower(s) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid scale mode %q (want stretch, aspect, center or upper-left)", s)
}

func demoMenus() []*pixelwin.Menu {
	file := pixelwin.NewMenu("File")
	file.AddItem("Clear", menuClear).Shortcut(key.N, key.ModCtrl).Build()
	file.AddItem("Pause noise", menuPause).Shortcut(key.P, key.ModCtrl).Build()
	file.AddSeparator()
	file.AddItem("Quit", menuQuit).Shortcut(key.Q, key.ModCtrl).Build()

	cursor := pixelwin.NewMenu("Cursor")
	cursor.AddItem("Crosshair", menuCrosshair).Build()
	cursor.AddItem("Hide", menuHideCursor).Shortcut(key.H, key.ModCtrl|key.ModShift).Build()

	view := pixelwin.NewMenu("View")
	view.AddSubMenu("Cursor", cursor)
	view.AddItem("Topmost", menuTopmost).Shortcut(key.T, key.ModCtrl).Build()
	return []*pixelwin.Menu{file, view}
}

func runDemo(args []string) int {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	width := fs.Int("width", 320, "Buffer width")
	height := fs.Int("height", 180, "Buffer height")
	scale := fs.String("scale", "2", "Scale factor: 1, 2, 4, 8, 16 or fit")
	mode := fs.String("mode", "upper-left", "Scale mode: stretch, aspect, center or upper-left")
	resize := fs.Bool("resize", false, "Allow resizing the window")
	borderless := fs.Bool("borderless", false, "Remove window decorations")
	backend := fs.String("backend", "", "Backend to use (default from config)")
	fps := fs.Int("fps", 60, "Frame rate limit, 0 disables pacing")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	opts := pixelwin.DefaultWindowOptions()
	var err error
	if opts.Scale, err = parseScale(*scale); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if opts.ScaleMode, err = parseScaleMode(*mode); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	opts.Resize = *resize
	opts.Borderless = *borderless
	opts.Backend = *backend

	code := 0
	pixelwin.Run(func() {
		if err := demo(*width, *height, *fps, opts); err != nil {
			log.Printf("demo: %v", err)
			code = 1
		}
	})
	return code
}

func demo(width, height, fps int, opts pixelwin.WindowOptions) error {
	w, err := pixelwin.New("pixelwin demo - Esc to quit", width, height, opts)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, m := range demoMenus() {
		if _, err := w.AddMenu(m); err != nil {
			return err
		}
	}
	if fps > 0 {
		period := time.Second / time.Duration(fps)
		w.LimitUpdateRate(&period)
	} else {
		w.LimitUpdateRate(nil)
	}
	w.SetBackgroundColor(0x20, 0x20, 0x28)

	var typed []rune
	w.SetInputCallback(func(r rune) {
		typed = append(typed, r)
		if len(typed) > 32 {
			typed = typed[len(typed)-32:]
		}
	})

	buf := make([]uint32, width*height)
	paint := make([]uint32, width*height)
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	paused := false
	hidden := false
	topmost := false
	frames := 0
	lastTitle := time.Now()

	for w.IsOpen() && !w.IsKeyDown(key.Escape) {
		for {
			id, ok := w.IsMenuPressed()
			if !ok {
				break
			}
			switch id {
			case menuClear:
				clear(paint)
			case menuPause:
				paused = !paused
			case menuQuit:
				w.SetShouldClose(true)
			case menuCrosshair:
				w.SetCursorStyle(pixelwin.CursorCrosshair)
			case menuHideCursor:
				hidden = !hidden
				w.SetCursorVisibility(!hidden)
			case menuTopmost:
				topmost = !topmost
				w.Topmost(topmost)
			}
		}

		if x, y, ok := w.MousePos(pixelwin.MouseDiscard); ok {
			i := int(y)*width + int(x)
			switch {
			case w.MouseDown(pixelwin.MouseLeft):
				paint[i] = 0xFFFFFFFF
			case w.MouseDown(pixelwin.MouseRight):
				paint[i] = 0
			}
		}
		if _, dy, ok := w.ScrollWheel(); ok {
			log.Printf("scroll %+.1f", dy)
		}

		for i := range buf {
			if paint[i] != 0 {
				buf[i] = paint[i] & 0xFFFFFF
				continue
			}
			if !paused {
				v := rng.Uint32() & 0xFF
				buf[i] = v<<16 | v<<8 | v
			}
		}

		if err := w.UpdateWithBuffer(buf, width, height); err != nil {
			return err
		}

		frames++
		if since := time.Since(lastTitle); since >= time.Second {
			title := "pixelwin demo - " + strconv.Itoa(int(float64(frames)/since.Seconds())) + " fps"
			if len(typed) > 0 {
				title += " - " + string(typed)
			}
			w.SetTitle(title)
			frames = 0
			lastTitle = time.Now()
		}
	}
	return nil
}
