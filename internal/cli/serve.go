package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sunburst-explorer/internal/api"
	"sunburst-explorer/internal/api/handler"
	"sunburst-explorer/internal/logging"
	"sunburst-explorer/internal/pipeline"
	"sunburst-explorer/internal/store"
	"sunburst-explorer/pkg/router"
	"sunburst-explorer/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	serveAddr      string
	serveDB        string
	serveLocalData string
	serveNoLocal   bool
	serveNoWatch   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive sunburst page and the JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := *current()
		f := cmd.Flags()
		if f.Changed("addr") {
			c.Addr = serveAddr
		}
		if f.Changed("db") {
			c.DBPath = serveDB
		}
		if f.Changed("local-data") {
			c.LocalDataPath = serveLocalData
			c.UseLocalData = true
		}
		if serveNoLocal {
			c.UseLocalData = false
		}
		if serveNoWatch {
			c.WatchLocal = false
		}

		logger, err := logging.New(debug)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck

		st, err := store.Open(c.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		h := handler.New(st, handler.Settings{
			UseLocalData:      c.UseLocalData,
			LocalDataPath:     c.LocalDataPath,
			PlaceholderFormat: c.PlaceholderFormat,
			MaxUploadBytes:    int64(c.MaxUploadMB) << 20,
			ExportDir:         c.ExportDir,
			Load:              loadOptions(&c),
		}, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if c.UseLocalData {
			if err := h.LoadLocal(ctx); err != nil {
				// The page reports the missing file; serving continues.
				logger.Warn("local data not loaded", zap.String("path", c.LocalDataPath), zap.Error(err))
			}
		}

		r := router.New(logger)
		api.RegisterRoutes(r, h)
		srv := &http.Server{
			Addr:              c.Addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logger.Info("listening", zap.String("addr", c.Addr), zap.Bool("local_data", c.UseLocalData))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		if c.UseLocalData && c.WatchLocal {
			w := pipeline.NewLocalWatcher(c.LocalDataPath, h.LoadLocal, logger)
			g.Go(func() error {
				if err := w.Run(gctx); err != nil {
					logger.Warn("local data watcher stopped", zap.Error(err))
				}
				return nil
			})
		}
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), utils.ParseDuration(c.ShutdownTimeout, 10*time.Second))
			defer cancel()
			logger.Info("shutting down")
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "sqlite database path (overrides config)")
	serveCmd.Flags().StringVar(&serveLocalData, "local-data", "", "local CSV or XLSX file; enables local data mode")
	serveCmd.Flags().BoolVar(&serveNoLocal, "no-local", false, "start with local data mode off")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "do not reload the local file when it changes")
	rootCmd.AddCommand(serveCmd)
}
