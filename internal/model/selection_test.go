package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColumnChoice(t *testing.T) {
	assert.False(t, ParseColumnChoice("").Valid)
	assert.False(t, ParseColumnChoice("None").Valid)
	assert.False(t, ParseColumnChoice("  ").Valid)
	assert.Equal(t, SelectColumn("Theme"), ParseColumnChoice(" Theme "))
}

func TestParseFilterChoice(t *testing.T) {
	assert.False(t, ParseFilterChoice("").Valid)
	assert.False(t, ParseFilterChoice("All").Valid)
	assert.Equal(t, "All", ParseFilterChoice("All").String())

	f := ParseFilterChoice("Billing")
	assert.True(t, f.Valid)
	assert.Equal(t, "Billing", f.String())
}

func TestNewHierarchyPath(t *testing.T) {
	t.Run("skips unselected pickers and keeps order", func(t *testing.T) {
		path, err := NewHierarchyPath(SelectColumn("Theme"), ColumnChoice{}, SelectColumn("Channel"))
		require.NoError(t, err)
		assert.Equal(t, HierarchyPath{"Theme", "Channel"}, path)
		assert.Equal(t, "Theme", path.First())
		assert.Equal(t, "Theme → Channel", path.String())
	})

	t.Run("empty", func(t *testing.T) {
		_, err := NewHierarchyPath(ColumnChoice{}, ColumnChoice{})
		assert.ErrorIs(t, err, ErrEmptyHierarchy)
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := NewHierarchyPath(SelectColumn("Theme"), SelectColumn("Theme"))
		assert.ErrorIs(t, err, ErrDuplicateColumn)
	})

	t.Run("too many levels", func(t *testing.T) {
		_, err := NewHierarchyPath(SelectColumn("a"), SelectColumn("b"), SelectColumn("c"), SelectColumn("d"))
		assert.ErrorIs(t, err, ErrTooManyLevels)
	})
}

func TestHierarchyPathValidate(t *testing.T) {
	table := Table{Columns: []string{"Theme", "Sub-Theme"}}

	assert.NoError(t, HierarchyPath{"Theme", "Sub-Theme"}.Validate(table))
	assert.ErrorIs(t, HierarchyPath{"Theme", "Channel"}.Validate(table), ErrUnknownColumn)
	assert.ErrorIs(t, HierarchyPath{}.Validate(table), ErrEmptyHierarchy)
	assert.Equal(t, "", HierarchyPath{}.First())
}

func TestRequestPath(t *testing.T) {
	req := NewRequest([]string{"Theme", "None", "Channel"}, "All")
	path, err := req.Path()
	require.NoError(t, err)
	assert.Equal(t, HierarchyPath{"Theme", "Channel"}, path)
	assert.False(t, req.Filter.Valid)

	body := AggregateRequest{Levels: []string{"Theme"}, Filter: "Billing"}
	assert.Equal(t, FilterOn("Billing"), body.Request().Filter)
}
