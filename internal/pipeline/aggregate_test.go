package pipeline

import (
	"testing"

	"sunburst-explorer/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

func TestAggregateTicketsExample(t *testing.T) {
	path := model.HierarchyPath{"Theme", "Sub"}
	table := Substitute(ticketsTable(), path, DefaultPlaceholderFormat)

	got := Aggregate(table, path)
	want := []model.AggregateRecord{
		{Values: []string{"Access", "Unknown Sub"}, Count: 1, Percentage: 25},
		{Values: []string{"Billing", "Late Fee"}, Count: 1, Percentage: 25},
		{Values: []string{"Billing", "Refund"}, Count: 2, Percentage: 50},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateInvariants(t *testing.T) {
	table := newTable([]string{"Theme", "Sub", "Channel"},
		[]string{"Billing", "Refund", "Email"},
		[]string{"Billing", "Refund", "Phone"},
		[]string{"Billing", "", "Email"},
		[]string{"Access", "Login", ""},
		[]string{"", "Login", "Chat"},
		[]string{"Access", "Login", "Chat"},
		[]string{"Shipping", "Delay", "Email"},
	)

	paths := []model.HierarchyPath{
		{"Theme"},
		{"Theme", "Sub"},
		{"Theme", "Sub", "Channel"},
		{"Channel", "Theme"},
	}
	for _, path := range paths {
		t.Run(path.String(), func(t *testing.T) {
			substituted := Substitute(table, path, DefaultPlaceholderFormat)
			records := Aggregate(substituted, path)

			assert.Equal(t, table.Len(), Total(records), "counts sum to row count")

			sum := 0.0
			for _, r := range records {
				sum += r.Percentage
				assert.Len(t, r.Values, len(path))
			}
			assert.InDelta(t, 100.0, sum, 1e-9)

			again := Aggregate(substituted, path)
			assert.Equal(t, records, again, "aggregation is deterministic")
		})
	}
}

func TestAggregateEmptyInputs(t *testing.T) {
	assert.Nil(t, Aggregate(ticketsTable(), nil))
	assert.Nil(t, Aggregate(newTable([]string{"Theme"}), model.HierarchyPath{"Theme"}))
}

func TestAggregateCountsLeftoverMissingCells(t *testing.T) {
	// Unsubstituted input still keeps every row.
	records := Aggregate(ticketsTable(), model.HierarchyPath{"Theme", "Sub"})
	assert.Equal(t, 4, Total(records))
	assert.Contains(t, records, model.AggregateRecord{Values: []string{"Access", "Unknown Sub"}, Count: 1, Percentage: 25})
}

func TestAggregateDoesNotModifyInput(t *testing.T) {
	table := ticketsTable()
	before := table.Cells()
	Aggregate(Substitute(table, []string{"Theme", "Sub"}, DefaultPlaceholderFormat), model.HierarchyPath{"Theme", "Sub"})
	assert.Equal(t, before, table.Cells())
}

func TestSortRecordsNumbersBeforeText(t *testing.T) {
	records := []model.AggregateRecord{
		{Values: []string{"b"}},
		{Values: []string{"10"}},
		{Values: []string{"a"}},
		{Values: []string{"9"}},
	}
	SortRecords(records)

	var got []string
	for _, r := range records {
		got = append(got, r.Values[0])
	}
	if diff := cmp.Diff([]string{"9", "10", "a", "b"}, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}
