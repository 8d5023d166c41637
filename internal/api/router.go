package api

import (
	"sunburst-explorer/internal/api/docs"
	"sunburst-explorer/internal/api/handler"
	"sunburst-explorer/pkg/router"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Sunburst Explorer API
// @version 1.0
// @description Upload tables, aggregate them over up to three columns and fetch sunburst chart data.
// @BasePath /api/v1
func RegisterRoutes(r *router.Router, h *handler.Handler) {
	docs.SwaggerInfo.BasePath = "/api/v1"

	r.GET("/", h.Page)
	r.POST("/upload", h.UploadForm)

	r.POST("/api/v1/datasets", h.UploadDataset)
	r.GET("/api/v1/datasets", h.ListDatasets)
	r.GET("/api/v1/datasets/*/values", h.GetFilterValues)
	r.POST("/api/v1/datasets/*/aggregate", h.Aggregate)
	r.GET("/api/v1/datasets/*/chart", h.Chart)
	r.GET("/api/v1/datasets/*/export", h.Export)
	r.GET("/api/v1/datasets/*/runs", h.ListRuns)
	r.GET("/api/v1/datasets/*", h.GetDataset)
	r.PUT("/api/v1/datasets/*", h.ReplaceDataset)
	r.DELETE("/api/v1/datasets/*", h.DeleteDataset)

	r.Mount("/swagger/", httpSwagger.WrapHandler)
	r.Mount("/metrics", promhttp.Handler())
}
