package pipeline

import (
	"testing"

	"sunburst-explorer/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestValidatePath(t *testing.T) {
	table := newTable([]string{"a", "b", "c", "d"})

	assert.NoError(t, ValidatePath(table, model.HierarchyPath{"a", "b", "c"}))
	assert.ErrorIs(t, ValidatePath(table, model.HierarchyPath{"a", "b", "c", "d"}), model.ErrTooManyLevels)
	assert.ErrorIs(t, ValidatePath(table, model.HierarchyPath{"a", "a"}), model.ErrDuplicateColumn)
	assert.ErrorIs(t, ValidatePath(table, model.HierarchyPath{"a", "z"}), model.ErrUnknownColumn)
	assert.ErrorIs(t, ValidatePath(table, nil), model.ErrEmptyHierarchy)
}
