package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"sunburst-explorer/internal/logging"
	"sunburst-explorer/internal/model"
	"sunburst-explorer/internal/pipeline"
	"sunburst-explorer/pkg/utils"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

const formatTable = "table"

type aggregateOptions struct {
	Levels      []string
	Filter      string
	Format      string
	Out         string
	Placeholder string
	Load        pipeline.LoadOptions
}

var (
	aggLevels []string
	aggLevel  [model.MaxLevels]string
	aggFilter string
	aggFormat string
	aggOut    string
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate <file-or-url>",
	Short: "Count rows per combination of up to three columns",
	Example: `  sunburst aggregate data/tickets.csv --levels Theme,Sub-Theme,Channel
  sunburst aggregate tickets.xlsx --level1 Theme --filter Billing --format json
  sunburst aggregate tickets.csv --levels Theme --format xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := current()
		logger := logging.Nop()
		if debug {
			l, err := logging.New(true)
			if err != nil {
				return err
			}
			defer l.Sync() //nolint:errcheck
			logger = l
		}
		levels := aggLevels
		if len(levels) == 0 {
			levels = aggLevel[:]
		}
		opts := aggregateOptions{
			Levels:      levels,
			Filter:      aggFilter,
			Format:      aggFormat,
			Out:         aggOut,
			Placeholder: c.PlaceholderFormat,
			Load:        loadOptions(c),
		}
		opts.Load.Logger = logger
		if opts.Format == "" && opts.Out != "" {
			opts.Format = pipeline.FormatFromName(opts.Out)
		}
		// Binary output never goes to a terminal.
		if opts.Format == pipeline.FormatXLSX && opts.Out == "" {
			om := utils.NewOutputManager(c.ExportDir)
			path, err := om.Path("cli", om.FileName(pipeline.FormatXLSX, time.Now()))
			if err != nil {
				return err
			}
			opts.Out = path
		}
		return runAggregate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
	},
}

func init() {
	aggregateCmd.Flags().StringSliceVar(&aggLevels, "levels", nil, "comma-separated hierarchy columns, outermost first")
	for i := range aggLevel {
		n := strconv.Itoa(i + 1)
		aggregateCmd.Flags().StringVar(&aggLevel[i], "level"+n, "", "column for hierarchy level "+n)
	}
	aggregateCmd.Flags().StringVar(&aggFilter, "filter", "", "keep only rows whose first column equals this value")
	aggregateCmd.Flags().StringVarP(&aggFormat, "format", "f", "", "output format: table, csv, json, yaml or xlsx")
	aggregateCmd.Flags().StringVarP(&aggOut, "out", "o", "", "write to this file instead of stdout")
	rootCmd.AddCommand(aggregateCmd)
}

func runAggregate(ctx context.Context, stdout, stderr io.Writer, source string, opts aggregateOptions) error {
	tbl, err := loadSource(ctx, source, opts.Load)
	if err != nil {
		return err
	}
	res, err := pipeline.Run(ctx, tbl, model.NewRequest(opts.Levels, opts.Filter), pipeline.Options{
		PlaceholderFormat: opts.Placeholder,
		Logger:            opts.Load.Logger,
	})
	if err != nil {
		return err
	}
	printMessages(stderr, res.Messages)
	if len(res.Path) == 0 {
		return nil
	}

	format := strings.ToLower(opts.Format)
	if format == "" {
		format = formatTable
	}
	if opts.Out != "" {
		if format == formatTable {
			format = pipeline.FormatFromName(opts.Out)
		}
		result := pipeline.NewExporter(res).WriteFile(opts.Out, format)
		if !result.Success {
			return fmt.Errorf("export %s: %s", result.Path, result.Error)
		}
		fmt.Fprintf(stderr, "✓ Wrote %d records to %s\n", result.RecordCount, result.Path)
		return nil
	}
	if format == formatTable {
		if !res.Charted() {
			return nil
		}
		_, err := fmt.Fprintln(stdout, renderTable(res))
		return err
	}
	return pipeline.NewExporter(res).Write(stdout, format)
}

func printMessages(w io.Writer, messages []model.Message) {
	for _, m := range messages {
		prefix := "ℹ"
		if m.Level == model.LevelWarning {
			prefix = "⚠"
		}
		fmt.Fprintf(w, "%s %s\n", prefix, m.Text)
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

// renderTable lays the records out one row per combination with a total row.
func renderTable(res *pipeline.Result) string {
	headers := append([]string{}, res.Path...)
	headers = append(headers, "Count", "Percentage")
	numeric := len(res.Path)

	rows := make([][]string, 0, len(res.Records)+1)
	for _, rec := range res.Records {
		row := append([]string{}, rec.Values...)
		row = append(row, strconv.Itoa(rec.Count), utils.FormatPercent(rec.Percentage))
		rows = append(rows, row)
	}
	total := make([]string, len(headers))
	total[0] = "Total"
	total[numeric] = strconv.Itoa(res.Total)
	total[numeric+1] = utils.FormatPercent(100)
	rows = append(rows, total)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col >= numeric:
				return numberStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}
