package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"sunburst-explorer/internal/chart"
	"sunburst-explorer/internal/model"
	"sunburst-explorer/internal/pipeline"
	"sunburst-explorer/internal/store"

	"go.uber.org/zap"
)

// Page renders the single-page tool. Query parameters: local, local_set,
// dataset, level1..level3, filter.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	data := chart.NewPageData()
	data.UseLocal = h.settings.UseLocalData
	if q.Get("local_set") != "" {
		data.UseLocal = q.Get("local") == "1"
	}
	data.LocalPath = h.settings.LocalDataPath

	datasets, err := h.store.ListDatasets(ctx)
	if err != nil {
		h.writeError(w, err)
		return
	}
	for _, d := range datasets {
		if d.ID != store.LocalDatasetID {
			data.Datasets = append(data.Datasets, d)
		}
	}

	id := q.Get("dataset")
	if data.UseLocal {
		id = store.LocalDatasetID
		data.Messages = append(data.Messages, model.Info(pipeline.MsgUsingLocal))
	} else {
		data.DatasetID = id
	}
	if id == "" || (!data.UseLocal && id == store.LocalDatasetID) {
		data.Messages = append(data.Messages, model.Warning(pipeline.MsgNoInput))
		h.render(w, data)
		return
	}

	table, info, err := h.store.GetDataset(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		if data.UseLocal {
			data.Messages = append(data.Messages, model.Warning(fmt.Sprintf("Local data is not available (%s).", h.settings.LocalDataPath)))
		} else {
			data.Messages = append(data.Messages, model.Warning(pipeline.MsgNoInput))
		}
		h.render(w, data)
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	data.DatasetID = info.ID
	data.DatasetName = info.Name
	data.Columns = table.Columns

	req := pageRequest(q, table)
	for i, choice := range req.Levels {
		if choice.Valid {
			data.Pickers[i].Selected = choice.Name
		}
	}

	// A filter left over from another first column falls back to "All".
	if path, err := req.Path(); err == nil && req.Filter.Valid && table.HasColumn(path.First()) {
		first := pipeline.Substitute(table, path[:1], h.settings.PlaceholderFormat)
		if !contains(pipeline.FilterOptions(first, path.First()), req.Filter.Value) {
			req.Filter = model.FilterChoice{}
		}
	}

	res, err := h.run(ctx, id, table, req)
	if err != nil {
		data.Messages = append(data.Messages, model.Warning(err.Error()))
		h.render(w, data)
		return
	}

	data.Messages = append(data.Messages, res.Messages...)
	if len(res.Path) > 0 {
		data.FilterEnabled = true
		data.FilterOptions = res.FilterOptions
		data.Filter = req.Filter.String()
	}
	if res.Charted() {
		s := chart.BuildSunburst(res.Path, res.Records)
		data.Chart = &s
		data.Path = res.Path
		data.Records = res.Records
	}
	h.render(w, data)
}

// UploadForm stores a file posted from the page and redirects to it.
func (h *Handler) UploadForm(w http.ResponseWriter, r *http.Request) {
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
	h.logger.Info("dataset uploaded from page", zap.String("id", info.ID), zap.String("name", info.Name))

	q := url.Values{}
	q.Set("local_set", "1")
	q.Set("dataset", info.ID)
	http.Redirect(w, r, "/?"+q.Encode(), http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, data chart.PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := chart.RenderPage(w, data); err != nil {
		h.logger.Error("render page", zap.Error(err))
	}
}

// pageRequest reads the pickers, dropping columns the current table lacks
// (left over from a previously selected dataset).
func pageRequest(q url.Values, table model.Table) model.Request {
	req := requestFromQuery(q)
	for i, choice := range req.Levels {
		if choice.Valid && !table.HasColumn(choice.Name) {
			req.Levels[i] = model.ColumnChoice{}
		}
	}
	return req
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
