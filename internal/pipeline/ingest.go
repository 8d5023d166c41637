package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"sunburst-explorer/internal/metrics"
	"sunburst-explorer/internal/model"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var (
	ErrNoHeader   = errors.New("table has no header row")
	ErrFetchTable = errors.New("fetch table")
)

// LoadOptions controls how raw files become tables.
type LoadOptions struct {
	// NAValues are cell texts treated as missing. Nil means DefaultNAValues.
	NAValues []string
	// Sheet selects the XLSX worksheet; empty means the first one.
	Sheet string
	// HTTPClient is used by LoadURL; nil means a client with a 30s timeout.
	HTTPClient *http.Client
	Retry      RetryConfig
	Logger     *zap.Logger
}

// DefaultNAValues mirrors the NA markers recognised by common CSV tooling.
var DefaultNAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a",
	"nan", "null",
}

func (o LoadOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o LoadOptions) naSet() map[string]bool {
	values := o.NAValues
	if values == nil {
		values = DefaultNAValues
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// IsXLSX reports whether name looks like an Excel workbook.
func IsXLSX(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".xlsx" || ext == ".xlsm"
}

// LoadFile reads a local CSV or XLSX file.
func LoadFile(ctx context.Context, filePath string, opts LoadOptions) (model.Table, error) {
	if err := ctx.Err(); err != nil {
		return model.Table{}, err
	}
	file, err := os.Open(filePath)
	if err != nil {
		return model.Table{}, fmt.Errorf("failed to open table file: %w", err)
	}
	defer file.Close()

	table, err := Read(file, filepath.Base(filePath), opts)
	if err != nil {
		return model.Table{}, err
	}
	opts.logger().Info("table loaded",
		zap.String("path", filePath),
		zap.Int("rows", table.Len()),
		zap.Int("columns", len(table.Columns)))
	metrics.DatasetsLoaded.WithLabelValues("file").Inc()
	metrics.DatasetRows.WithLabelValues("file").Set(float64(table.Len()))
	return table, nil
}

// LoadURL fetches a CSV or XLSX over HTTP, retrying timeouts, 429 and 5xx.
func LoadURL(ctx context.Context, url string, opts LoadOptions) (model.Table, error) {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	logger := opts.logger()

	var body []byte
	err := withRetry(ctx, opts.Retry, logger, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFetchTable, err)
		}
		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return retryable(fmt.Errorf("%w: %v", ErrFetchTable, err))
		}
		defer resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return retryable(fmt.Errorf("%w: unexpected status %s", ErrFetchTable, resp.Status))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("%w: unexpected status %s", ErrFetchTable, resp.Status)
		}
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return retryable(fmt.Errorf("%w: read body: %v", ErrFetchTable, err))
		}
		body = b
		return nil
	})
	if err != nil {
		return model.Table{}, err
	}

	name := path.Base(strings.SplitN(url, "?", 2)[0])
	table, err := Read(bytes.NewReader(body), name, opts)
	if err != nil {
		return model.Table{}, err
	}
	logger.Info("table fetched", zap.String("url", url), zap.Int("rows", table.Len()))
	metrics.DatasetsLoaded.WithLabelValues("url").Inc()
	metrics.DatasetRows.WithLabelValues("url").Set(float64(table.Len()))
	return table, nil
}

// Read dispatches on the file name: workbooks go through excelize, everything else is CSV.
func Read(r io.Reader, name string, opts LoadOptions) (model.Table, error) {
	if IsXLSX(name) {
		return ReadXLSX(r, name, opts)
	}
	return ReadCSV(r, name, opts)
}

// ReadCSV parses comma separated text with a header row.
func ReadCSV(r io.Reader, name string, opts LoadOptions) (model.Table, error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true
	// Short rows are padded with missing cells below; long rows are rejected there too.
	csvReader.FieldsPerRecord = -1

	headers, err := csvReader.Read()
	if err == io.EOF {
		return model.Table{}, ErrNoHeader
	}
	if err != nil {
		return model.Table{}, fmt.Errorf("read csv header: %w", err)
	}

	var records [][]string
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.Table{}, fmt.Errorf("read csv: %w", err)
		}
		records = append(records, record)
	}
	return buildTable(name, headers, records, opts)
}

// ReadXLSX reads the configured (or first) worksheet of a workbook.
func ReadXLSX(r io.Reader, name string, opts LoadOptions) (model.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return model.Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return model.Table{}, ErrNoHeader
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return model.Table{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	// Blank rows are skipped, matching the CSV reader.
	var nonBlank [][]string
	for _, row := range rows {
		if len(row) > 0 {
			nonBlank = append(nonBlank, row)
		}
	}
	if len(nonBlank) == 0 {
		return model.Table{}, ErrNoHeader
	}
	return buildTable(name, nonBlank[0], nonBlank[1:], opts)
}

func buildTable(name string, headers []string, records [][]string, opts LoadOptions) (model.Table, error) {
	columns := cleanHeaders(headers)
	na := opts.naSet()

	rows := make([]model.Row, 0, len(records))
	for line, record := range records {
		if len(record) > len(columns) {
			return model.Table{}, fmt.Errorf("row %d: expected %d fields, saw %d", line+2, len(columns), len(record))
		}
		row := make(model.Row, len(columns))
		for i, c := range columns {
			if i >= len(record) || na[record[i]] {
				row[c] = model.Absent()
				continue
			}
			row[c] = model.Present(record[i])
		}
		rows = append(rows, row)
	}
	return model.Table{Name: name, Columns: columns, Rows: rows}, nil
}

// cleanHeaders trims whitespace, strips quotes and a leading BOM, names blank
// headers "Unnamed: N" and suffixes duplicates with ".1", ".2", ...
func cleanHeaders(headers []string) []string {
	out := make([]string, len(headers))
	seen := make(map[string]int, len(headers))
	for i, h := range headers {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		clean := strings.TrimSpace(h)
		clean = strings.ReplaceAll(clean, `"`, "")
		if clean == "" {
			clean = fmt.Sprintf("Unnamed: %d", i)
		}
		base := clean
		for seen[clean] > 0 {
			clean = fmt.Sprintf("%s.%d", base, seen[base])
			seen[base]++
		}
		seen[clean]++
		out[i] = clean
	}
	return out
}
