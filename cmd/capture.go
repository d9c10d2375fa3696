package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

var captureCmd = &cobra.Command{
	Use:   "capture <pane-id>",
	Short: "Capture the visible content of a pane",
	Long: `Capture the visible content of a pane and print it to stdout,
one screen line per output line.

The pane id is the tmux %-prefixed identifier as printed by "list".
If the pane is scrolled in copy mode the scrolled-to region is captured,
matching what the jump overlay would render.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getMultiplexer(slog.New(slog.NewTextHandler(io.Discard, nil)))
		if err != nil {
			return err
		}

		panes, err := m.ListPanes(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list panes: %w", err)
		}

		for _, p := range panes {
			if p.ID != args[0] {
				continue
			}
			lines, err := m.CapturePane(cmd.Context(), p)
			if err != nil {
				return fmt.Errorf("failed to capture pane %s: %w", p.ID, err)
			}
			for _, line := range lines {
				fmt.Println(line)
			}
			return nil
		}
		return fmt.Errorf("no visible pane with id %q", args[0])
	},
}

func init() {
	rootCmd.AddCommand(captureCmd)
}
