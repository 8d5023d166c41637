package chart

import (
	"bytes"
	"testing"

	"sunburst-explorer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageData(t *testing.T) {
	data := NewPageData()
	assert.Equal(t, PageTitle, data.Title)
	assert.Equal(t, "All", data.Filter)
	require.Len(t, data.Pickers, 3)
	for i, p := range data.Pickers {
		assert.Equal(t, "None", p.Selected)
		assert.Equal(t, LevelLabels[i], p.Label)
	}
	assert.Equal(t, "level2", data.Pickers[1].Name)
}

func TestRenderPageWithChart(t *testing.T) {
	data := NewPageData()
	data.UseLocal = true
	data.Columns = []string{"Theme", "Sub"}
	data.Pickers[0].Selected = "Theme"
	data.Pickers[1].Selected = "Sub"
	data.FilterEnabled = true
	data.FilterOptions = []string{"Billing", "Access"}
	data.Messages = []model.Message{model.Info("Using local data for the visualization.")}
	data.Path = examplePath
	data.Records = exampleRecords
	chart := BuildSunburst(examplePath, exampleRecords)
	data.Chart = &chart

	var buf bytes.Buffer
	require.NoError(t, RenderPage(&buf, data))
	html := buf.String()

	assert.Contains(t, html, "<title>Dynamic Ticket Visualization</title>")
	assert.Contains(t, html, `class="msg msg-info">Using local data for the visualization.</div>`)
	assert.Contains(t, html, `<option value="Theme" selected>Theme</option>`)
	assert.Contains(t, html, "Filter by Theme (Optional):")
	assert.Contains(t, html, `<option value="Billing" >Billing</option>`)
	assert.Contains(t, html, "Plotly.newPlot")
	assert.Contains(t, html, "50.00%")
	assert.NotContains(t, html, `action="/upload"`, "upload form hidden in local mode")
}

func TestRenderPageWithoutChart(t *testing.T) {
	data := NewPageData()
	data.Messages = []model.Message{model.Warning("Please upload a CSV file or enable local data.")}

	var buf bytes.Buffer
	require.NoError(t, RenderPage(&buf, data))
	html := buf.String()

	assert.Contains(t, html, "msg-warning")
	assert.Contains(t, html, `action="/upload"`)
	assert.NotContains(t, html, "Plotly.newPlot")
	assert.NotContains(t, html, "Column Selection")
}

func TestRenderPageEscapesCells(t *testing.T) {
	data := NewPageData()
	data.Path = model.HierarchyPath{"Theme"}
	data.Records = []model.AggregateRecord{{Values: []string{"<script>x</script>"}, Count: 1, Percentage: 100}}
	chart := BuildSunburst(data.Path, data.Records)
	data.Chart = &chart

	var buf bytes.Buffer
	require.NoError(t, RenderPage(&buf, data))
	assert.NotContains(t, buf.String(), "<td><script>x</script></td>")
	assert.Contains(t, buf.String(), "&lt;script&gt;x&lt;/script&gt;")
}
