package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"sunburst-explorer/internal/model"
	"sunburst-explorer/internal/pipeline"
	"sunburst-explorer/internal/store"
	"sunburst-explorer/pkg/router"
	"sunburst-explorer/pkg/utils"

	"go.uber.org/zap"
)

// Settings are the handler-relevant parts of the configuration.
type Settings struct {
	UseLocalData      bool
	LocalDataPath     string
	PlaceholderFormat string
	MaxUploadBytes    int64
	ExportDir         string
	Load              pipeline.LoadOptions
}

// Handler serves the page and the dataset API.
type Handler struct {
	store    *store.Store
	settings Settings
	outputs  *utils.OutputManager
	logger   *zap.Logger
}

// New wires a handler to its store.
func New(st *store.Store, settings Settings, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.MaxUploadBytes <= 0 {
		settings.MaxUploadBytes = 32 << 20
	}
	if settings.ExportDir == "" {
		settings.ExportDir = "exports"
	}
	settings.Load.Logger = logger
	return &Handler{
		store:    st,
		settings: settings,
		outputs:  utils.NewOutputManager(settings.ExportDir),
		logger:   logger,
	}
}

// LoadLocal (re)loads the local data file into the store under the fixed
// local dataset id.
func (h *Handler) LoadLocal(ctx context.Context) error {
	table, err := pipeline.LoadFile(ctx, h.settings.LocalDataPath, h.settings.Load)
	if err != nil {
		return err
	}
	_, err = h.store.SaveDataset(ctx, store.LocalDatasetID, "local", table)
	return err
}

func (h *Handler) pipelineOptions() pipeline.Options {
	return pipeline.Options{PlaceholderFormat: h.settings.PlaceholderFormat, Logger: h.logger}
}

// run executes the pipeline and records the run in the history.
func (h *Handler) run(ctx context.Context, datasetID string, table model.Table, req model.Request) (*pipeline.Result, error) {
	res, err := pipeline.Run(ctx, table, req, h.pipelineOptions())
	if err != nil {
		return nil, err
	}
	if len(res.Path) > 0 {
		if err := h.store.SaveRun(ctx, pipeline.Summarize(datasetID, res)); err != nil {
			h.logger.Warn("failed to save run", zap.String("dataset", datasetID), zap.Error(err))
		}
	}
	return res, nil
}

// datasetID extracts {id} from /api/v1/datasets/{id}/...
func datasetID(r *http.Request) string {
	return router.Segment(r, 3)
}

// requestFromQuery reads level1..level3 and filter.
func requestFromQuery(q url.Values) model.Request {
	levels := make([]string, model.MaxLevels)
	for i := range levels {
		levels[i] = q.Get("level" + strconv.Itoa(i+1))
	}
	return model.NewRequest(levels, q.Get("filter"))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps sentinel errors to status codes.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, model.ErrDuplicateColumn),
		errors.Is(err, model.ErrUnknownColumn),
		errors.Is(err, model.ErrTooManyLevels),
		errors.Is(err, pipeline.ErrUnknownFormat):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("request failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
