package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List visible panes with their window geometry",
	Long: `List the panes of the current window, one per line, with the
geometry used for hint placement.

Columns: pane id, active flag, top, left, width, height, copy-mode flag,
scroll position. When the window is zoomed only the active pane appears.`,
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
			active := 0
			if p.Active {
				active = 1
			}
			copyMode := 0
			if p.CopyMode {
				copyMode = 1
			}
			fmt.Printf("%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
				p.ID, active, p.Top, p.Left, p.Width, p.Height, copyMode, p.ScrollPosition)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
