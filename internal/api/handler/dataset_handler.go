package handler

import (
	"fmt"
	"net/http"

	"sunburst-explorer/internal/metrics"
	"sunburst-explorer/internal/model"
	"sunburst-explorer/internal/pipeline"

	"go.uber.org/zap"
)

// readUpload parses the multipart "file" field into a table.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (model.Table, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.settings.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.settings.MaxUploadBytes); err != nil {
		return model.Table{}, fmt.Errorf("invalid upload: %w", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return model.Table{}, fmt.Errorf("missing file field: %w", err)
	}
	defer file.Close()
	table, err := pipeline.Read(file, header.Filename, h.settings.Load)
	if err != nil {
		return model.Table{}, err
	}
	metrics.DatasetsLoaded.WithLabelValues("upload").Inc()
	metrics.DatasetRows.WithLabelValues("upload").Set(float64(table.Len()))
	return table, nil
}

// UploadDataset stores an uploaded table
// @Summary Upload a dataset
// @Description Upload a CSV or XLSX file with a header row; returns the stored dataset
// @Tags datasets
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Success 201 {object} model.DatasetInfo "Stored dataset"
// @Failure 400 {string} string "Invalid upload"
// @Failure 500 {string} string "Internal server error"
// @Router /datasets [post]
func (h *Handler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	table, err := h.readUpload(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	info, err := h.store.SaveDataset(r.Context(), "", "upload", table)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logger.Info("dataset uploaded",
		zap.String("id", info.ID),
		zap.String("name", info.Name),
		zap.Int("rows", info.RowCount))
	writeJSON(w, http.StatusCreated, info)
}

// ReplaceDataset uploads new content for an existing dataset
// @Summary Replace a dataset
// @Description Upload a CSV or XLSX file that replaces the rows of an existing dataset; the id and history are kept
// @Tags datasets
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Dataset ID"
// @Param file formData file true "CSV or XLSX file"
// @Success 200 {object} model.DatasetInfo "Updated dataset"
// @Failure 400 {string} string "Invalid upload"
// @Failure 404 {string} string "Dataset not found"
// @Router /datasets/{id} [put]
func (h *Handler) ReplaceDataset(w http.ResponseWriter, r *http.Request) {
	table, err := h.readUpload(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	info, err := h.store.ReplaceDataset(r.Context(), datasetID(r), table)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logger.Info("dataset replaced", zap.String("id", info.ID), zap.Int("rows", info.RowCount))
	writeJSON(w, http.StatusOK, info)
}

// ListDatasets lists stored datasets
// @Summary List datasets
// @Description Get all stored datasets, newest first
// @Tags datasets
// @Produce json
// @Success 200 {array} model.DatasetInfo "Datasets"
// @Failure 500 {string} string "Internal server error"
// @Router /datasets [get]
func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := h.store.ListDatasets(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"datasets": datasets,
		"count":    len(datasets),
	})
}

// GetDataset returns dataset metadata
// @Summary Get dataset
// @Description Columns and row count of a stored dataset
// @Tags datasets
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 200 {object} model.DatasetInfo "Dataset"
// @Failure 404 {string} string "Dataset not found"
// @Router /datasets/{id} [get]
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	info, err := h.store.DatasetInfo(r.Context(), datasetID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// DeleteDataset removes a dataset and its history
// @Summary Delete dataset
// @Tags datasets
// @Param id path string true "Dataset ID"
// @Success 204 "Deleted"
// @Failure 404 {string} string "Dataset not found"
// @Router /datasets/{id} [delete]
func (h *Handler) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteDataset(r.Context(), datasetID(r)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetFilterValues lists the filter options of a column
// @Summary Filter options
// @Description Distinct values of a column after missing-value substitution, in first-seen order, preceded by "All"
// @Tags datasets
// @Produce json
// @Param id path string true "Dataset ID"
// @Param column query string true "Column name"
// @Success 200 {object} map[string]interface{} "Options"
// @Failure 400 {string} string "Unknown column"
// @Failure 404 {string} string "Dataset not found"
// @Router /datasets/{id}/values [get]
func (h *Handler) GetFilterValues(w http.ResponseWriter, r *http.Request) {
	id := datasetID(r)
	column := r.URL.Query().Get("column")
	if column == "" {
		http.Error(w, "column is required", http.StatusBadRequest)
		return
	}
	table, _, err := h.store.GetDataset(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !table.HasColumn(column) {
		h.writeError(w, fmt.Errorf("%w: %s", model.ErrUnknownColumn, column))
		return
	}
	substituted := pipeline.Substitute(table, []string{column}, h.settings.PlaceholderFormat)
	values := pipeline.FilterOptions(substituted, column)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dataset_id": id,
		"column":     column,
		"options":    append([]string{model.AllOption}, values...),
	})
}
