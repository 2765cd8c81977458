package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dtessler/mxlink/driver/native"
	"github.com/dtessler/mxlink/engine"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mxlink",
	Short: "Bridge to an external numeric-computation engine",
	Long: `mxlink - Execute statements and exchange variables with an external
numeric-computation engine.

Statements run in the engine's remote workspace; whatever the engine
prints is forwarded to stdout. Requires a binary built with the matlab
tag and an engine installation on this machine.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ~/.config/mxlink/config.toml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("start-cmd", "", "Engine startup command")
	rootCmd.PersistentFlags().Int("buffer", engine.DefaultBufferSize, "Output-capture buffer size in bytes (0 disables capture)")
	rootCmd.PersistentFlags().Bool("visible", false, "Show the engine window where the platform has one")
}

// newLogger builds the CLI logger. Diagnostics go to stderr; stdout is
// reserved for engine output.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// openSession opens an engine session from the resolved configuration,
// forwarding captured output to out. The resolved config is returned so
// callers do not have to parse the config file a second time.
func openSession(cmd *cobra.Command, out io.Writer) (*engine.Session, config, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, cfg, err
	}

	log := newLogger(cmd)
	log.Debug().
		Str("start_command", cfg.StartCommand).
		Int("buffer_size", cfg.BufferSize).
		Bool("visible", cfg.Visible).
		Msg("opening engine session")

	session, err := engine.Open(
		engine.WithDriver(native.New()),
		engine.WithMarshaler(native.NewMarshaler()),
		engine.WithStartCommand(cfg.StartCommand),
		engine.WithBufferSize(cfg.BufferSize),
		engine.WithVisible(cfg.Visible),
		engine.WithOutput(out),
	)
	if err != nil {
		return nil, cfg, err
	}

	log.Debug().Msg("engine session open")
	return session, cfg, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
