package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/timvw/tmux-easyjump/internal/mux"
)

// Version is injected by the linker at release builds.
var Version = "dev"

// flagMux selects the multiplexer backend; empty auto-detects.
var flagMux string

var rootCmd = &cobra.Command{
	Use:   "tmux-easyjump",
	Short: "Jump the tmux cursor to any visible text",
	Long: `tmux-easyjump overlays hint labels on every occurrence of a typed
character sequence across all panes of the current tmux window. Typing a
hint moves the copy-mode cursor there, optionally starting a selection.

It is a single-shot tool meant to be bound to a tmux key: it captures the
window, prompts for the search characters, renders hints, waits for one
hint selection and exits.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagMux, "mux", envOrDefault("TMUX_EASYJUMP_MUX", ""), "terminal multiplexer: tmux (default: auto-detect)")
}

// getMultiplexer returns the configured or auto-detected multiplexer.
func getMultiplexer(log *slog.Logger) (mux.Multiplexer, error) {
	if flagMux != "" {
		return mux.FromName(flagMux, log)
	}
	return mux.Detect(log)
}

func envOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
