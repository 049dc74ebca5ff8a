package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"shivansh.dev/internal/config"
	"shivansh.dev/internal/handlers"
	"shivansh.dev/internal/logging"
	"shivansh.dev/internal/services"
	"shivansh.dev/internal/validation"
)

var (
	configPath string
	addr       string
	devMode    bool
	dataDir    string
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve the portfolio site and its API",
	Long: `Server loads the project catalog and site content from the data directory,
then serves the static bundle together with the JSON API.

Settings come from portfolio.toml, then environment variables
(SERVER_ADDR, PORTFOLIO_DATA_DIR, PORTFOLIO_STATIC_DIR, PORTFOLIO_LOG_LEVEL),
then flags.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServer,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to portfolio.toml (default: ./portfolio.toml if present)")
	rootCmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides config")
	rootCmd.Flags().BoolVar(&devMode, "dev", false, "Development mode: console logs at debug level")
	rootCmd.Flags().StringVar(&dataDir, "data-dir", "", "Data directory, overrides config")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadSettings(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if dataDir != "" {
		cfg.Data.Dir = dataDir
	}
	if devMode {
		cfg.Server.DevMode = true
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Server.DevMode)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := cfg.LoadData(); err != nil {
		return err
	}
	for _, src := range validation.MissingAssets(cfg.Projects, cfg.Data.StaticDir) {
		logger.Warn("Media asset not found", zap.String("src", src))
	}

	projectService := services.NewProjectService(cfg.Projects)
	sessions := services.NewSessionStore(projectService, services.ShowcaseDefaults{
		Autoplay: cfg.Showcase.Autoplay,
		Delay:    cfg.Showcase.AutoplayDelay.Duration,
		Loop:     cfg.Showcase.Loop,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handlers.SetupRoutes(cfg, projectService, sessions, logger),
		ReadHeaderTimeout: 10 * time.Second,
		// autoplay streams end when the server begins shutting down
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g.Go(func() error {
		logger.Info("Server listening",
			zap.String("addr", cfg.Server.Addr),
			zap.Int("projects", len(cfg.Projects.Projects)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		idle := cfg.Server.SessionIdle.Duration
		if idle <= 0 {
			<-ctx.Done()
			return nil
		}
		ticker := time.NewTicker(idle / 2)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if n := sessions.Sweep(idle); n > 0 {
					logger.Debug("Evicted idle sessions", zap.Int("count", n))
				}
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
