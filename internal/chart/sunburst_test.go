package chart

import (
	"encoding/json"
	"testing"

	"sunburst-explorer/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var examplePath = model.HierarchyPath{"Theme", "Sub"}

var exampleRecords = []model.AggregateRecord{
	{Values: []string{"Access", "Unknown Sub"}, Count: 1, Percentage: 25},
	{Values: []string{"Billing", "Late Fee"}, Count: 1, Percentage: 25},
	{Values: []string{"Billing", "Refund"}, Count: 2, Percentage: 50},
}

func TestNodes(t *testing.T) {
	got := Nodes(examplePath, exampleRecords)
	want := []Node{
		{ID: "/Access", Label: "Access", Level: "Theme", Depth: 0, Count: 1, Percentage: 25},
		{ID: "/Access/Unknown%20Sub", Label: "Unknown Sub", Parent: "/Access", Level: "Sub", Depth: 1, Count: 1, Percentage: 25},
		{ID: "/Billing", Label: "Billing", Level: "Theme", Depth: 0, Count: 3, Percentage: 75},
		{ID: "/Billing/Late%20Fee", Label: "Late Fee", Parent: "/Billing", Level: "Sub", Depth: 1, Count: 1, Percentage: 25},
		{ID: "/Billing/Refund", Label: "Refund", Parent: "/Billing", Level: "Sub", Depth: 1, Count: 2, Percentage: 50},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Nodes() mismatch (-want +got):\n%s", diff)
	}
}

func TestNodesSlashInLabel(t *testing.T) {
	records := []model.AggregateRecord{
		{Values: []string{"A/B", "C"}, Count: 1, Percentage: 50},
		{Values: []string{"A", "B/C"}, Count: 1, Percentage: 50},
	}
	nodes := Nodes(examplePath, records)
	require.Len(t, nodes, 4)

	ids := make(map[string]bool)
	for _, n := range nodes {
		assert.NotEmpty(t, n.ID)
		ids[n.ID] = true
	}
	assert.Len(t, ids, 4, "ids stay distinct")
}

func TestNodesSameLabelUnderDifferentParents(t *testing.T) {
	records := []model.AggregateRecord{
		{Values: []string{"Billing", "Other"}, Count: 1, Percentage: 50},
		{Values: []string{"Access", "Other"}, Count: 1, Percentage: 50},
	}
	nodes := Nodes(examplePath, records)
	assert.Len(t, nodes, 4)
}

func TestBuildSunburst(t *testing.T) {
	s := BuildSunburst(examplePath, exampleRecords)

	assert.Equal(t, ChartTitle, s.Title)
	assert.Equal(t, []string{"Theme", "Sub"}, s.Levels)
	assert.Equal(t, "total", s.BranchValues)
	assert.Equal(t, HoverTemplate, s.HoverTemplate)
	assert.Equal(t, []int{1, 1, 3, 1, 2}, s.Values)
	assert.Equal(t, []string{"", "/Access", "", "/Billing", "/Billing"}, s.Parents)
	assert.Equal(t, []float64{3, 75}, s.CustomData[2])

	// Every ring sums to the total.
	rootSum := 0
	for i, p := range s.Parents {
		if p == "" {
			rootSum += s.Values[i]
		}
	}
	assert.Equal(t, 4, rootSum)

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"branchvalues":"total"`)
}

func TestBuildSunburstEmpty(t *testing.T) {
	s := BuildSunburst(examplePath, nil)
	assert.Empty(t, s.IDs)
	assert.NotNil(t, s.Values)
}

func TestHoverTemplateShowsTwoDecimals(t *testing.T) {
	assert.Contains(t, HoverTemplate, "%{label}")
	assert.Contains(t, HoverTemplate, "Count: %{customdata[0]}")
	assert.Contains(t, HoverTemplate, "%{customdata[1]:.2f}%")
}
