package pipeline

import (
	"time"

	"sunburst-explorer/internal/metrics"
	"sunburst-explorer/internal/model"

	"github.com/google/uuid"
)

// stageTracker collects per-stage timings for one Run.
type stageTracker struct {
	start   time.Time
	current time.Time
	timings []model.StageTiming
}

func newStageTracker(now time.Time) *stageTracker {
	return &stageTracker{start: now, current: now}
}

// done closes the running stage, records it and starts the next one.
func (t *stageTracker) done(stage string, rows int) {
	now := time.Now()
	d := now.Sub(t.current)
	t.current = now
	t.timings = append(t.timings, model.StageTiming{Stage: stage, Duration: d, Rows: rows})
	metrics.AggregationDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (t *stageTracker) elapsed() time.Duration {
	return t.current.Sub(t.start)
}

// Summarize turns a result into the history entry stored for a dataset.
func Summarize(datasetID string, res *Result) model.RunSummary {
	run := model.RunSummary{
		ID:         uuid.New().String(),
		DatasetID:  datasetID,
		Hierarchy:  []string(res.Path),
		Filter:     res.Filter.String(),
		Groups:     len(res.Records),
		Total:      res.Total,
		DurationMs: res.Duration.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	if run.Hierarchy == nil {
		run.Hierarchy = []string{}
	}
	return run
}
