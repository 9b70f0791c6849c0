// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"zee5/internal/config"
	"zee5/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagPlayer    string
	flagCountry   string
	flagPlatform  string
	flagLanguages []string
	flagSubs      []string
	flagNoSubs    bool
	flagJSON      bool
	flagDebug     bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

// logCloser releases the log file opened by loadConfig.
var logCloser io.Closer

var rootCmd = &cobra.Command{
	Use:   "zee5",
	Short: "Browse and play the ZEE5 catalog from the terminal",
	Long: `zee5 browses the ZEE5 catalog (collections, buckets, shows, seasons),
searches it, and plays streams with mpv/vlc or records them with ffmpeg.
Run without arguments for the interactive browser.`,
	Args:               cobra.NoArgs,
	PersistentPostRunE: closeLog,
	RunE:               browserRun,
	SilenceUsage:       true,
}

// Execute runs the root command. Interrupts cancel in-flight requests.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	// Assigned here rather than in the literal: loadConfig refers to rootCmd.
	rootCmd.PersistentPreRunE = loadConfig

	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Media player: mpv | vlc | iina | celluloid")
	rootCmd.PersistentFlags().StringVar(&flagCountry, "country", "", "Country code for catalog availability (default: CA)")
	rootCmd.PersistentFlags().StringVar(&flagPlatform, "platform", "", "Platform whose collections are listed (default: web_app)")
	rootCmd.PersistentFlags().StringSliceVar(&flagLanguages, "languages", nil, "Content languages, e.g. en,hi")
	rootCmd.PersistentFlags().StringSliceVar(&flagSubs, "subs", nil, "Subtitle languages to fetch (default: all offered)")
	rootCmd.PersistentFlags().BoolVarP(&flagNoSubs, "no-subs", "n", false, "Disable subtitles")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagPlayer != "" {
		cfg.Player = flagPlayer
	}
	if flagCountry != "" {
		cfg.Country = flagCountry
	}
	if flagPlatform != "" {
		cfg.Platform = flagPlatform
	}
	if len(flagLanguages) > 0 {
		cfg.Languages = flagLanguages
	}
	if len(flagSubs) > 0 {
		cfg.SubtitleLanguages = flagSubs
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// The full-screen browser owns the terminal; keep logs off it.
	quiet := cmd == rootCmd
	logCloser, err = logging.Setup(cfg, quiet)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	logrus.WithField("version", Version).Debug("configuration loaded")
	return nil
}

func closeLog(cmd *cobra.Command, args []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

// isTerminal reports whether both stdin and stdout are attached to a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "zee5 %s\n", Version)
	},
}
