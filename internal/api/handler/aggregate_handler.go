package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"sunburst-explorer/internal/chart"
	"sunburst-explorer/internal/model"
	"sunburst-explorer/internal/pipeline"

	"go.uber.org/zap"
)

func resultBody(id string, req model.Request, res *pipeline.Result) map[string]interface{} {
	hierarchy := []string(res.Path)
	if hierarchy == nil {
		hierarchy = []string{}
	}
	records := res.Records
	if records == nil {
		records = []model.AggregateRecord{}
	}
	messages := res.Messages
	if messages == nil {
		messages = []model.Message{}
	}
	options := res.FilterOptions
	if options == nil {
		options = []string{}
	}
	return map[string]interface{}{
		"dataset_id":     id,
		"hierarchy":      hierarchy,
		"filter":         req.Filter.String(),
		"filter_options": options,
		"records":        records,
		"total":          res.Total,
		"messages":       messages,
		"duration_ms":    res.Duration.Milliseconds(),
	}
}

// Aggregate computes counts and percentages for a hierarchy
// @Summary Aggregate a dataset
// @Description Group rows by up to three columns (missing values substituted, optional filter on the first column) and return counts and percentages. An empty selection returns an informational message and no records.
// @Tags aggregation
// @Accept json
// @Produce json
// @Param id path string true "Dataset ID"
// @Param request body model.AggregateRequest true "Hierarchy levels and filter"
// @Success 200 {object} map[string]interface{} "Aggregate records"
// @Failure 400 {string} string "Invalid selection"
// @Failure 404 {string} string "Dataset not found"
// @Router /datasets/{id}/aggregate [post]
func (h *Handler) Aggregate(w http.ResponseWriter, r *http.Request) {
	var body model.AggregateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if len(body.Levels) > model.MaxLevels {
		h.writeError(w, fmt.Errorf("%w: %d > %d", model.ErrTooManyLevels, len(body.Levels), model.MaxLevels))
		return
	}

	id := datasetID(r)
	table, _, err := h.store.GetDataset(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	req := body.Request()
	res, err := h.run(r.Context(), id, table, req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultBody(id, req, res))
}

// Chart returns the sunburst trace
// @Summary Sunburst chart data
// @Description Plotly sunburst trace (ids, labels, parents, values, customdata=[count, percentage]) for the selected hierarchy
// @Tags aggregation
// @Produce json
// @Param id path string true "Dataset ID"
// @Param level1 query string false "First column"
// @Param level2 query string false "Second column"
// @Param level3 query string false "Third column"
// @Param filter query string false "Value of the first column to keep"
// @Success 200 {object} chart.Sunburst "Sunburst trace"
// @Failure 400 {string} string "Invalid selection"
// @Failure 404 {string} string "Dataset not found"
// @Router /datasets/{id}/chart [get]
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	id := datasetID(r)
	table, _, err := h.store.GetDataset(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	req := requestFromQuery(r.URL.Query())
	res, err := h.run(r.Context(), id, table, req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if len(res.Path) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"messages": res.Messages,
		})
		return
	}
	writeJSON(w, http.StatusOK, chart.BuildSunburst(res.Path, res.Records))
}

// Export downloads aggregate records
// @Summary Export aggregate records
// @Description Download the records as csv, json, yaml or xlsx. With save=true the file is written to the export directory instead and an export result is returned.
// @Tags aggregation
// @Produce octet-stream
// @Param id path string true "Dataset ID"
// @Param format query string false "csv (default), json, yaml or xlsx"
// @Param save query bool false "Write to the export directory"
// @Param level1 query string false "First column"
// @Param level2 query string false "Second column"
// @Param level3 query string false "Third column"
// @Param filter query string false "Value of the first column to keep"
// @Success 200 {file} file "Export"
// @Failure 400 {string} string "Invalid selection or format"
// @Failure 404 {string} string "Dataset not found"
// @Router /datasets/{id}/export [get]
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatCSV
	}
	contentType, ok := pipeline.ContentTypes[format]
	if !ok {
		h.writeError(w, fmt.Errorf("%w: %s", pipeline.ErrUnknownFormat, format))
		return
	}

	id := datasetID(r)
	table, _, err := h.store.GetDataset(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	res, err := h.run(r.Context(), id, table, requestFromQuery(q))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if len(res.Path) == 0 {
		http.Error(w, pipeline.MsgSelectColumns, http.StatusBadRequest)
		return
	}

	exporter := pipeline.NewExporter(res)
	fileName := h.outputs.FileName(format, time.Now())

	if save, _ := strconv.ParseBool(q.Get("save")); save {
		filePath, err := h.outputs.Path(id, fileName)
		if err != nil {
			h.writeError(w, err)
			return
		}
		result := exporter.WriteFile(filePath, format)
		if !result.Success {
			h.logger.Error("export failed", zap.String("path", filePath), zap.String("error", result.Error))
			writeJSON(w, http.StatusInternalServerError, result)
			return
		}
		h.logger.Info("export written", zap.String("path", filePath), zap.Int("records", result.RecordCount))
		writeJSON(w, http.StatusOK, result)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	if err := exporter.Write(w, format); err != nil {
		h.logger.Error("export failed", zap.String("dataset", id), zap.Error(err))
	}
}

// ListRuns returns the aggregation history
// @Summary Aggregation history
// @Tags aggregation
// @Produce json
// @Param id path string true "Dataset ID"
// @Param limit query int false "Maximum entries (default 50)"
// @Success 200 {object} map[string]interface{} "Runs"
// @Failure 404 {string} string "Dataset not found"
// @Router /datasets/{id}/runs [get]
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	id := datasetID(r)
	if _, err := h.store.DatasetInfo(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	runs, err := h.store.ListRuns(r.Context(), id, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dataset_id": id,
		"runs":       runs,
		"count":      len(runs),
	})
}
