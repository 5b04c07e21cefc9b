package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/treemenu/internal/app"
	"github.com/atomicstack/treemenu/internal/config"
	"github.com/atomicstack/treemenu/internal/logging"
	"github.com/atomicstack/treemenu/internal/logging/events"
	"github.com/atomicstack/treemenu/internal/terminal"
	"golang.org/x/term"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	events.App.Start(startupTracePayload(cfg))

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		if errors.Is(err, terminal.ErrNotTerminal) {
			fmt.Fprintln(os.Stderr, "treemenu needs an interactive terminal; use -script to replay keys off-screen")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"tty":    collectTTYDetails(),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}

type ttyDetails struct {
	// Interactive is true when the console can be opened: stdin must be a
	// terminal for raw key reads and stdout for cursor control.
	Interactive bool       `json:"interactive"`
	Width       int        `json:"width,omitempty"`
	Probes      []ttyProbe `json:"probes"`
}

type ttyProbe struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

func collectTTYDetails() ttyDetails {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}
	details := ttyDetails{Probes: make([]ttyProbe, 0, len(files))}
	for i, f := range files {
		probe := ttyProbe{Name: names[i]}
		fd := int(f.Fd())
		if fd >= 0 && term.IsTerminal(fd) {
			probe.IsTerminal = true
			width, height, err := term.GetSize(fd)
			if err != nil {
				probe.Error = err.Error()
			} else {
				probe.Width, probe.Height = width, height
			}
		}
		details.Probes = append(details.Probes, probe)
	}
	details.Interactive = details.Probes[0].IsTerminal && details.Probes[1].IsTerminal
	if details.Interactive {
		details.Width = details.Probes[1].Width
	}
	return details
}
