package ui

import (
	"log"
	"log/slog"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/OpenTraceLab/OpenTraceView/pkg/formats"
)

// Options configures the property panel window.
type Options struct {
	Title   string
	Width   int
	Height  int
	Catalog *formats.Catalog
	// Logger receives binder diagnostics. Nil logs to the log pane.
	Logger *slog.Logger
}

// Run launches the Gio UI and blocks until the window closes.
func Run(state *AppState, opts Options) error {
	if state == nil {
		state = NewState()
	}
	if opts.Title == "" {
		opts.Title = "OpenTraceView"
	}
	if opts.Width <= 0 {
		opts.Width = 480
	}
	if opts.Height <= 0 {
		opts.Height = 640
	}

	go func() {
		w := new(app.Window)
		w.Option(app.Title(opts.Title), app.Size(unit.Dp(float32(opts.Width)), unit.Dp(float32(opts.Height))))
		ui := New(w, state, opts.Catalog, opts.Logger)
		if err := ui.Run(); err != nil {
			log.Printf("ui: %v", err)
		}
		os.Exit(0)
	}()

	app.Main()
	return nil
}
