package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"shivansh.dev/internal/config"
	"shivansh.dev/internal/logging"
	"shivansh.dev/internal/thumbnail"
)

var (
	configPath string
	midpoint   bool
	offset   string
	exclude  []string
	timeout  time.Duration
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "generate [media-dir]",
	Short: "Pre-generate thumbnails for video assets",
	Long: `Generate extracts one JPEG frame per video in the media directory and writes
it next to the video as thumbnail-<name>.jpg. Videos that already have a
thumbnail are skipped, so the command is safe to re-run.

Requires ffmpeg (and ffprobe for --midpoint) on PATH.

Examples:
  generate
  generate public/media
  generate --midpoint public/media
  generate --exclude "draft-*" public/media`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGenerate,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to portfolio.toml (default: ./portfolio.toml if present)")
	rootCmd.Flags().BoolVar(&midpoint, "midpoint", false, "Take the frame from the middle of each clip instead of a fixed offset")
	rootCmd.Flags().StringVar(&offset, "offset", thumbnail.DefaultOffset, "Seek position for the frame when not using --midpoint")
	rootCmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Glob patterns of video names to skip (can be repeated)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "Give up on a single video after this long (0 waits indefinitely)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: log.level from config)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadSettings(configPath)
	if err != nil {
		return err
	}
	mediaDir := resolveMediaDir(cfg, args)
	if logLevel == "" {
		logLevel = cfg.Log.Level
	}

	logger, err := logging.NewCLI(logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	batch := thumbnail.NewBatch(thumbnail.NewFFmpeg(), logger)
	batch.Offset = offset
	batch.Exclude = exclude
	batch.Timeout = timeout
	if midpoint {
		batch.Mode = thumbnail.ModeMidpoint
	}

	// Per-video failures are reported in the log; only an unusable
	// directory fails the command.
	if _, err := batch.Run(cmd.Context(), mediaDir); err != nil {
		return err
	}
	return nil
}

// resolveMediaDir prefers the positional argument over the configured dir
func resolveMediaDir(cfg *config.Config, args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return cfg.Data.MediaDir
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
