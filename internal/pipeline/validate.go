package pipeline

import (
	"fmt"

	"sunburst-explorer/internal/model"
)

// ValidatePath checks the hierarchy against the table header before any
// stage runs.
func ValidatePath(table model.Table, path model.HierarchyPath) error {
	if len(path) > model.MaxLevels {
		return fmt.Errorf("%w: %d > %d", model.ErrTooManyLevels, len(path), model.MaxLevels)
	}
	seen := make(map[string]bool, len(path))
	for _, c := range path {
		if seen[c] {
			return fmt.Errorf("%w: %s", model.ErrDuplicateColumn, c)
		}
		seen[c] = true
	}
	return path.Validate(table)
}
