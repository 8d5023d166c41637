package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	cfgpkg "sunburst-explorer/internal/config"
	"sunburst-explorer/internal/model"
	"sunburst-explorer/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "sunburst",
	Short: "Sunburst Explorer: count rows over a column hierarchy and chart them",
	Long: `Sunburst Explorer groups a CSV or XLSX table by up to three columns, counts
each combination with its share of the total and draws the result as a
sunburst chart. Run "sunburst serve" for the interactive page or
"sunburst aggregate" for one-off counts.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.sunburst/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults.
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// current returns the loaded configuration or the defaults.
func current() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	c, err := cfgpkg.Load("")
	if err != nil {
		c = &cfgpkg.Global{
			Addr:              ":8080",
			DBPath:            "sunburst.db",
			ShutdownTimeout:   "10s",
			MaxUploadMB:       32,
			LocalDataPath:     "data/tickets.csv",
			PlaceholderFormat: pipeline.DefaultPlaceholderFormat,
			ExportDir:         "exports",
		}
	}
	cfg = c
	return cfg
}

// loadOptions maps configuration onto table loading.
func loadOptions(c *cfgpkg.Global) pipeline.LoadOptions {
	opts := pipeline.LoadOptions{
		NAValues: c.NAValues,
		Sheet:    c.XLSXSheet,
		Retry:    pipeline.DefaultRetryConfig,
	}
	if c.HTTPTimeoutSec > 0 {
		opts.HTTPClient = &http.Client{Timeout: time.Duration(c.HTTPTimeoutSec) * time.Second}
	}
	if c.RetryMaxAttempts > 0 {
		opts.Retry.MaxAttempts = c.RetryMaxAttempts
	}
	if c.RetryBaseDelayMs > 0 {
		opts.Retry.InitialDelay = time.Duration(c.RetryBaseDelayMs) * time.Millisecond
	}
	return opts
}

// loadSource reads a table from a local path or an http(s) URL.
func loadSource(ctx context.Context, source string, opts pipeline.LoadOptions) (model.Table, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return pipeline.LoadURL(ctx, source, opts)
	}
	return pipeline.LoadFile(ctx, source, opts)
}
