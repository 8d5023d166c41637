package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sunburst-explorer/internal/metrics"
	"sunburst-explorer/internal/model"

	"go.uber.org/zap"
)

// User-facing notices, worded as on the page.
const (
	MsgSelectColumns = "Please select at least one column for the hierarchy to generate the chart."
	MsgNoInput       = "Please upload a CSV file or enable local data."
	MsgUsingLocal    = "Using local data for the visualization."
	MsgNoRows        = "No rows match the current filter."
	MsgEmptyTable    = "The table has no rows."
)

// Options tunes a Run.
type Options struct {
	PlaceholderFormat string
	Logger            *zap.Logger
}

// Result is everything the chart and the API need from one recomputation.
type Result struct {
	Path          model.HierarchyPath     `json:"hierarchy"`
	Filter        model.FilterChoice      `json:"-"`
	FilterOptions []string                `json:"filter_options"`
	Records       []model.AggregateRecord `json:"records"`
	Total         int                     `json:"total"`
	Messages      []model.Message         `json:"messages"`
	Timings       []model.StageTiming     `json:"timings"`
	Duration      time.Duration           `json:"duration"`
}

// Charted reports whether the result carries anything to draw.
func (r *Result) Charted() bool {
	return len(r.Records) > 0
}

// Run executes raw → substituted → filtered → aggregated for one request.
// Each stage produces a new table; table itself is never modified.
//
// An empty hierarchy is not an error: the result carries MsgSelectColumns and
// no records. Invalid selections (duplicate or unknown columns) are returned
// as errors wrapping the model sentinels.
func Run(ctx context.Context, table model.Table, req model.Request, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	res := &Result{Filter: req.Filter}

	path, err := req.Path()
	if errors.Is(err, model.ErrEmptyHierarchy) {
		res.Messages = append(res.Messages, model.Info(MsgSelectColumns))
		return res, nil
	}
	if err != nil {
		return nil, err
	}
	if err := ValidatePath(table, path); err != nil {
		return nil, err
	}
	res.Path = path

	tracker := newStageTracker(time.Now())

	substituted := Substitute(table, path, opts.PlaceholderFormat)
	res.FilterOptions = FilterOptions(substituted, path.First())
	tracker.done("substitute", substituted.Len())
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("substitute: %w", err)
	}

	filtered := Filter(substituted, path.First(), req.Filter)
	tracker.done("filter", filtered.Len())
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	res.Records = Aggregate(filtered, path)
	res.Total = Total(res.Records)
	tracker.done("aggregate", len(res.Records))
	metrics.AggregationGroups.Observe(float64(len(res.Records)))

	switch {
	case table.Len() == 0:
		res.Messages = append(res.Messages, model.Info(MsgEmptyTable))
	case filtered.Len() == 0:
		res.Messages = append(res.Messages, model.Info(MsgNoRows))
	}
	res.Timings = tracker.timings
	res.Duration = tracker.elapsed()

	logger.Debug("aggregation complete",
		zap.String("hierarchy", path.String()),
		zap.String("filter", req.Filter.String()),
		zap.Int("rows", filtered.Len()),
		zap.Int("groups", len(res.Records)),
		zap.Duration("duration", res.Duration))
	return res, nil
}
