package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shivansh.dev/internal/buildhook"
	"shivansh.dev/internal/config"
	"shivansh.dev/internal/logging"
	"shivansh.dev/internal/thumbnail"
)

var (
	configPath string
	mediaDir   string
)

var rootCmd = &cobra.Command{
	Use:   "buildhook",
	Short: "Deploy build step for video thumbnails",
	Long: `Buildhook runs during a deploy build. When ffmpeg is installed it generates
missing video thumbnails; otherwise it prints how to generate and commit them
locally and exits successfully so the deploy continues.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadSettings(configPath)
		if err != nil {
			return err
		}
		if mediaDir == "" {
			mediaDir = cfg.Data.MediaDir
		}

		logger, err := logging.NewCLI(cfg.Log.Level)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		batch := thumbnail.NewBatch(thumbnail.NewFFmpeg(), logger)
		return buildhook.New(mediaDir, batch).Run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to portfolio.toml (default: ./portfolio.toml if present)")
	rootCmd.Flags().StringVar(&mediaDir, "media-dir", "", "Media directory (default: data.media_dir from config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
