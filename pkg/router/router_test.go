package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func named(name string) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(name))
	}
}

func TestRouterDispatch(t *testing.T) {
	r := New(nil)
	r.GET("/", named("page"))
	r.GET("/api/v1/datasets", named("list"))
	r.GET("/api/v1/datasets/*/values", named("values"))
	r.GET("/api/v1/datasets/*", named("get"))
	r.DELETE("/api/v1/datasets/*", named("delete"))
	r.Mount("/metrics", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("metrics"))
	}))

	tests := []struct {
		method string
		path   string
		status int
		body   string
	}{
		{http.MethodGet, "/", http.StatusOK, "page"},
		{http.MethodGet, "/api/v1/datasets", http.StatusOK, "list"},
		{http.MethodGet, "/api/v1/datasets/abc", http.StatusOK, "get"},
		{http.MethodGet, "/api/v1/datasets/abc/values", http.StatusOK, "values"},
		{http.MethodDelete, "/api/v1/datasets/abc", http.StatusOK, "delete"},
		{http.MethodGet, "/metrics", http.StatusOK, "metrics"},
		{http.MethodPost, "/api/v1/datasets", http.StatusMethodNotAllowed, ""},
		{http.MethodDelete, "/api/v1/datasets/abc/values", http.StatusMethodNotAllowed, ""},
		{http.MethodGet, "/api/v1/datasets/abc/values/extra", http.StatusNotFound, ""},
		{http.MethodGet, "/nope", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestMatchWildcardRoute(t *testing.T) {
	assert.True(t, matchWildcardRoute("/a/x/b", "/a/*/b"))
	assert.False(t, matchWildcardRoute("/a//b", "/a/*/b"))
	assert.False(t, matchWildcardRoute("/a/x", "/a/*/b"))
	assert.False(t, matchWildcardRoute("/a/x/b/c", "/a/*/b"))
}

func TestSegment(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/datasets/abc/chart", nil)
	assert.Equal(t, "abc", Segment(req, 3))
	assert.Equal(t, "chart", Segment(req, 4))
	assert.Equal(t, "", Segment(req, 9))
}

func TestPatterns(t *testing.T) {
	r := New(nil)
	r.GET("/a", named("a"))
	r.POST("/b", named("b"))
	assert.Equal(t, []string{"GET:/a", "POST:/b"}, r.Patterns())
}
