package mux

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// Detect picks the multiplexer the process is running inside. The $TMUX
// variable is authoritative; without it a running tmux server found on PATH
// still counts, since the jump may be launched from a detached helper.
func Detect(log *slog.Logger) (Multiplexer, error) {
	if os.Getenv("TMUX") != "" {
		return NewTmux(log), nil
	}
	if os.Getenv("ZELLIJ") != "" {
		return nil, fmt.Errorf("zellij support is not yet implemented")
	}

	if _, err := exec.LookPath("tmux"); err == nil {
		if exec.Command("tmux", "list-sessions").Run() == nil {
			return NewTmux(log), nil
		}
	}
	return nil, fmt.Errorf("no terminal multiplexer detected (run inside tmux, or set --mux)")
}

// FromName creates a Multiplexer by name, for the --mux flag.
func FromName(name string, log *slog.Logger) (Multiplexer, error) {
	switch name {
	case "tmux":
		return NewTmux(log), nil
	case "zellij":
		return nil, fmt.Errorf("zellij support is not yet implemented")
	default:
		return nil, fmt.Errorf("unknown multiplexer: %q (supported: tmux)", name)
	}
}
