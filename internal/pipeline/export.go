package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"sunburst-explorer/internal/model"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
	FormatYAML = "yaml"
)

var ErrUnknownFormat = errors.New("unknown export format")

// ContentTypes maps export formats to HTTP content types.
var ContentTypes = map[string]string{
	FormatCSV:  "text/csv; charset=utf-8",
	FormatJSON: "application/json",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatYAML: "application/yaml",
}

// ExportDocument is the JSON/YAML shape of an export.
type ExportDocument struct {
	Hierarchy  []string       `json:"hierarchy" yaml:"hierarchy"`
	Filter     string         `json:"filter" yaml:"filter"`
	Total      int            `json:"total" yaml:"total"`
	ExportedAt time.Time      `json:"exported_at" yaml:"exported_at"`
	Records    []ExportRecord `json:"records" yaml:"records"`
}

// ExportRecord flattens a record with its level names for readability.
type ExportRecord struct {
	Levels     map[string]string `json:"levels" yaml:"levels"`
	Values     []string          `json:"values" yaml:"values"`
	Count      int               `json:"count" yaml:"count"`
	Percentage float64           `json:"percentage" yaml:"percentage"`
}

// Exporter writes the records of one Result.
type Exporter struct {
	Path    model.HierarchyPath
	Filter  model.FilterChoice
	Records []model.AggregateRecord
}

// NewExporter prepares an export of res.
func NewExporter(res *Result) *Exporter {
	return &Exporter{Path: res.Path, Filter: res.Filter, Records: res.Records}
}

// FormatFromName picks a format from a file extension, defaulting to CSV.
func FormatFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".xlsx":
		return FormatXLSX
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatCSV
	}
}

// Write encodes the records in format to w.
func (e *Exporter) Write(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case FormatCSV:
		return e.writeCSV(w)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(e.document())
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(e.document()); err != nil {
			return err
		}
		return enc.Close()
	case FormatXLSX:
		return e.writeXLSX(w)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// WriteFile exports to filePath, creating parent directories as needed.
func (e *Exporter) WriteFile(filePath, format string) model.ExportResult {
	result := model.ExportResult{
		Type:      format,
		Path:      filePath,
		Timestamp: time.Now(),
	}
	err := func() error {
		if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		file, err := os.Create(filePath)
		if err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
		if err := e.Write(file, format); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	}()
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Success = true
	result.RecordCount = len(e.Records)
	return result
}

func (e *Exporter) header() []string {
	header := make([]string, 0, len(e.Path)+2)
	header = append(header, e.Path...)
	return append(header, "count", "percentage")
}

func (e *Exporter) writeCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(e.header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, rec := range e.Records {
		row := make([]string, 0, len(rec.Values)+2)
		row = append(row, rec.Values...)
		row = append(row, strconv.Itoa(rec.Count), strconv.FormatFloat(rec.Percentage, 'f', -1, 64))
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func (e *Exporter) writeXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Counts"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := e.header()
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range e.Records {
		row := make([]interface{}, 0, len(rec.Values)+2)
		for _, v := range rec.Values {
			row = append(row, v)
		}
		row = append(row, rec.Count, rec.Percentage)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func (e *Exporter) document() ExportDocument {
	doc := ExportDocument{
		Hierarchy:  append([]string{}, e.Path...),
		Filter:     e.Filter.String(),
		Total:      Total(e.Records),
		ExportedAt: time.Now().UTC(),
		Records:    make([]ExportRecord, 0, len(e.Records)),
	}
	for _, rec := range e.Records {
		levels := make(map[string]string, len(e.Path))
		for i, c := range e.Path {
			if i < len(rec.Values) {
				levels[c] = rec.Values[i]
			}
		}
		doc.Records = append(doc.Records, ExportRecord{
			Levels:     levels,
			Values:     rec.Values,
			Count:      rec.Count,
			Percentage: rec.Percentage,
		})
	}
	return doc
}
