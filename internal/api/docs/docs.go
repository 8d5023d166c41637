// Package docs registers the OpenAPI document served by the swagger UI.
// Regenerate with: swag init -g internal/api/router.go -o internal/api/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/datasets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["datasets"],
                "summary": "List datasets",
                "responses": {
                    "200": {"description": "Datasets", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.DatasetInfo"}}},
                    "500": {"description": "Internal server error", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["datasets"],
                "summary": "Upload a dataset",
                "parameters": [
                    {"type": "file", "description": "CSV or XLSX file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Stored dataset", "schema": {"$ref": "#/definitions/model.DatasetInfo"}},
                    "400": {"description": "Invalid upload", "schema": {"type": "string"}}
                }
            }
        },
        "/datasets/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["datasets"],
                "summary": "Get dataset",
                "parameters": [
                    {"type": "string", "description": "Dataset ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Dataset", "schema": {"$ref": "#/definitions/model.DatasetInfo"}},
                    "404": {"description": "Dataset not found", "schema": {"type": "string"}}
                }
            },
            "put": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["datasets"],
                "summary": "Replace a dataset",
                "parameters": [
                    {"type": "string", "description": "Dataset ID", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "CSV or XLSX file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated dataset", "schema": {"$ref": "#/definitions/model.DatasetInfo"}},
                    "400": {"description": "Invalid upload", "schema": {"type": "string"}},
                    "404": {"description": "Dataset not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "tags": ["datasets"],
                "summary": "Delete dataset",
                "parameters": [
                    {"type": "string", "description": "Dataset ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Dataset not found", "schema": {"type": "string"}}
                }
            }
        },
        "/datasets/{id}/values": {
            "get": {
                "produces": ["application/json"],
                "tags": ["datasets"],
                "summary": "Filter options",
                "parameters": [
                    {"type": "string", "description": "Dataset ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Column name", "name": "column", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "Options", "schema": {"type": "object"}},
                    "400": {"description": "Unknown column", "schema": {"type": "string"}},
                    "404": {"description": "Dataset not found", "schema": {"type": "string"}}
                }
            }
        },
        "/datasets/{id}/aggregate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["aggregation"],
                "summary": "Aggregate a dataset",
                "parameters": [
                    {"type": "string", "description": "Dataset ID", "name": "id", "in": "path", "required": true},
                    {"description": "Hierarchy levels and filter", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.AggregateRequest"}}
                ],
                "responses": {
                    "200": {"description": "Aggregate records", "schema": {"type": "object"}},
                    "400": {"description": "Invalid selection", "schema": {"type": "string"}},
                    "404": {"description": "Dataset not found", "schema": {"type": "string"}}
                }
            }
        },
        "/datasets/{id}/chart": {
            "get": {
                "produces": ["application/json"],
                "tags": ["aggregation"],
                "summary": "Sunburst chart data",
                "parameters": [
                    {"type": "string", "description": "Dataset ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "First column", "name": "level1", "in": "query"},
                    {"type": "string", "description": "Second column", "name": "level2", "in": "query"},
                    {"type": "string", "description": "Third column", "name": "level3", "in": "query"},
                    {"type": "string", "description": "Value of the first column to keep", "name": "filter", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Sunburst trace", "schema": {"$ref": "#/definitions/chart.Sunburst"}},
                    "400": {"description": "Invalid selection", "schema": {"type": "string"}},
                    "404": {"description": "Dataset not found", "schema": {"type": "string"}}
                }
            }
        },
        "/datasets/{id}/export": {
            "get": {
                "produces": ["application/octet-stream"],
                "tags": ["aggregation"],
                "summary": "Export aggregate records",
                "parameters": [
                    {"type": "string", "description": "Dataset ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "csv (default), json, yaml or xlsx", "name": "format", "in": "query"},
                    {"type": "boolean", "description": "Write to the export directory", "name": "save", "in": "query"},
                    {"type": "string", "description": "First column", "name": "level1", "in": "query"},
                    {"type": "string", "description": "Second column", "name": "level2", "in": "query"},
                    {"type": "string", "description": "Third column", "name": "level3", "in": "query"},
                    {"type": "string", "description": "Value of the first column to keep", "name": "filter", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Export", "schema": {"type": "file"}},
                    "400": {"description": "Invalid selection or format", "schema": {"type": "string"}},
                    "404": {"description": "Dataset not found", "schema": {"type": "string"}}
                }
            }
        },
        "/datasets/{id}/runs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["aggregation"],
                "summary": "Aggregation history",
                "parameters": [
                    {"type": "string", "description": "Dataset ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Maximum entries (default 50)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Runs", "schema": {"type": "object"}},
                    "404": {"description": "Dataset not found", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "model.DatasetInfo": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "source": {"type": "string"},
                "columns": {"type": "array", "items": {"type": "string"}},
                "row_count": {"type": "integer"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "model.AggregateRequest": {
            "type": "object",
            "properties": {
                "levels": {"type": "array", "items": {"type": "string"}, "example": ["Theme", "Sub-Theme", "Channel"]},
                "filter": {"type": "string", "example": "Billing"}
            }
        },
        "chart.Sunburst": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "levels": {"type": "array", "items": {"type": "string"}},
                "ids": {"type": "array", "items": {"type": "string"}},
                "labels": {"type": "array", "items": {"type": "string"}},
                "parents": {"type": "array", "items": {"type": "string"}},
                "values": {"type": "array", "items": {"type": "integer"}},
                "customdata": {"type": "array", "items": {"type": "array", "items": {"type": "number"}}},
                "hovertemplate": {"type": "string"},
                "branchvalues": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Sunburst Explorer API",
	Description:      "Upload tables, aggregate them over up to three columns and fetch sunburst chart data.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
