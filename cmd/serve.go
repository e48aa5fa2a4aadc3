package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/blogrender/internal/carousel"
	"github.com/ziadkadry99/blogrender/internal/server"
	"github.com/ziadkadry99/blogrender/internal/site"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve blog pages rendered on request",
	Long: `Starts an HTTP server that renders the home, index and post pages per request,
serves static assets from the site directory and hosts the live carousel
websocket at /ws/carousel.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}

		shells, err := site.LoadShells(cfg.SiteDir)
		if err != nil {
			return err
		}

		loader := newLoader(cfg)
		live := carousel.NewLive(loader, cfg.CarouselSize, cfg.Interval(), logger)
		srv := server.New(server.Config{
			Port:     cfg.Port,
			SiteDir:  cfg.SiteDir,
			AllowAll: cfg.AllowAllOrigins,
		}, newController(cfg, loader), shells, loader, live, logger)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("shutdown", zap.Error(err))
			}
		}()

		logger.Info("blogrender starting",
			zap.String("version", Version),
			zap.Int("port", cfg.Port),
			zap.String("site_dir", cfg.SiteDir),
			zap.String("full_source", cfg.FullSource))

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}
