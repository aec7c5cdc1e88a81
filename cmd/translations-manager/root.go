package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/carlhashmi/translations-manager/internal/config"
	"github.com/carlhashmi/translations-manager/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// app holds settings resolved before any subcommand runs.
type app struct {
	cfg config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		debug      bool
		colorMode  string
	)

	a := &app{cfg: config.Default(), log: logger.L()}

	cmd := &cobra.Command{
		Use:          "translations-manager",
		Short:        "Clean up YAML locale files",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadOptional(configPath)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("debug") {
				cfg.Debug = debug
			}

			if cmd.Flags().Changed("color") {
				cfg.Color = colorMode
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			a.cfg = cfg
			a.log = logger.Setup(logger.Config{Writer: cmd.ErrOrStderr(), Debug: cfg.Debug})
			setupColor(cfg.Color, cmd.OutOrStdout())

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./"+config.DefaultFile+" when present)")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")
	cmd.PersistentFlags().StringVar(&colorMode, "color", config.ColorAuto, "colorize output (auto|on|off)")

	cmd.AddCommand(cleanCmd(a))
	cmd.AddCommand(versionCmd())

	return cmd
}

// setupColor applies the color mode to fatih/color's global switch.
func setupColor(mode string, out io.Writer) {
	switch mode {
	case config.ColorOn:
		color.NoColor = false
	case config.ColorOff:
		color.NoColor = true
	default:
		f, ok := out.(*os.File)
		color.NoColor = !ok || !term.IsTerminal(int(f.Fd())) || os.Getenv("NO_COLOR") != ""
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), "translations-manager "+version+"\n")
			return err
		},
	}
}
