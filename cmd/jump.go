package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/timvw/tmux-easyjump/internal/config"
	"github.com/timvw/tmux-easyjump/internal/jump"
	"github.com/timvw/tmux-easyjump/internal/logging"
	ejotel "github.com/timvw/tmux-easyjump/internal/otel"
	"github.com/timvw/tmux-easyjump/internal/screen"
)

var (
	flagInputFile string
	flagMotion    string
	flagSelect    bool
	flagAltScreen bool
)

var jumpCmd = &cobra.Command{
	Use:   "jump [pattern]",
	Short: "Capture the window, overlay hints and jump to the chosen match",
	Long: `Run one jump cycle: capture all visible panes, search them for the
pattern, overlay hint labels and move the cursor to the selected match.

The pattern comes from the argument, from --input-file (written by the
tmux prompt launcher), or interactively from the terminal. Cancelling with
Ctrl-C or typing a non-hint key exits cleanly; only setup failures return
a non-zero status.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if flagMotion != "" {
			cfg.MotionType = flagMotion
		}
		if flagSelect {
			cfg.Select = true
		}
		if flagAltScreen {
			cfg.AltScreen = true
		}

		log, closeLog := logging.New(logging.Config{Debug: cfg.Debug, Perf: cfg.Perf})
		defer closeLog()
		for _, w := range cfg.Warnings {
			log.Warn(w)
		}

		// Interrupt routes through context cancellation into the blocking
		// key read, so cleanup always runs before exit.
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ejotel.Version = Version
		tel, err := ejotel.Init(ctx, ejotel.OTELConfig{
			Endpoint: cfg.OTELEndpoint,
			Headers:  cfg.OTELHeaders,
		})
		if err != nil {
			log.Warn("otel init failed", "err", err)
		}
		if tel != nil {
			defer tel.Shutdown(context.WithoutCancel(ctx))
		}

		m, err := getMultiplexer(log)
		if err != nil {
			return err
		}

		pattern, err := readPattern(args, cfg)
		if err != nil {
			if errors.Is(err, screen.ErrCancelled) {
				return nil
			}
			return err
		}
		if pattern == "" {
			return nil
		}

		runner := &jump.Runner{
			Mux:    m,
			Config: cfg,
			Log:    log,
		}
		if tel != nil {
			runner.Metrics = tel.Metrics
		}

		outcome, err := runner.Run(ctx, pattern)
		if err != nil {
			log.Error("jump failed", "err", err)
			return err
		}
		log.Debug("jump finished", "outcome", string(outcome))
		return nil
	},
}

// readPattern resolves the search pattern from argument, launcher file or
// interactive keystrokes.
func readPattern(args []string, cfg *config.Config) (string, error) {
	if len(args) == 1 && args[0] != "" {
		runes := []rune(args[0])
		if n := cfg.PatternLength(); len(runes) > n {
			runes = runes[:n]
		}
		return string(runes), nil
	}
	return jump.ReadPattern(flagInputFile, cfg.PatternLength())
}

func init() {
	jumpCmd.Flags().StringVar(&flagInputFile, "input-file", "", "file containing the typed pattern (first line)")
	jumpCmd.Flags().StringVar(&flagMotion, "motion", "", `motion type: "s" (1 char) or "s2" (2 chars)`)
	jumpCmd.Flags().BoolVar(&flagSelect, "select", false, "begin a copy-mode selection at the target")
	jumpCmd.Flags().BoolVar(&flagAltScreen, "alt-screen", false, "render on the alternate screen instead of direct escapes")
	rootCmd.AddCommand(jumpCmd)
}
