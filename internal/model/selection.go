package model

import (
	"errors"
	"fmt"
	"strings"
)

// MaxLevels is the deepest hierarchy the chart supports.
const MaxLevels = 3

// Picker sentinels shown in the UI.
const (
	NoneOption = "None"
	AllOption  = "All"
)

var (
	ErrEmptyHierarchy  = errors.New("no hierarchy columns selected")
	ErrDuplicateColumn = errors.New("column selected more than once")
	ErrUnknownColumn   = errors.New("column not found in table")
	ErrTooManyLevels   = errors.New("too many hierarchy levels")
)

// ColumnChoice is an optional column reference coming from a picker.
type ColumnChoice struct {
	Name  string
	Valid bool
}

// SelectColumn returns a choice referencing name.
func SelectColumn(name string) ColumnChoice {
	return ColumnChoice{Name: name, Valid: true}
}

// ParseColumnChoice maps picker text to a choice; "" and "None" select nothing.
func ParseColumnChoice(s string) ColumnChoice {
	s = strings.TrimSpace(s)
	if s == "" || s == NoneOption {
		return ColumnChoice{}
	}
	return SelectColumn(s)
}

// FilterChoice is an optional single value filter on the first hierarchy column.
type FilterChoice struct {
	Value string
	Valid bool
}

// FilterOn returns a filter matching value.
func FilterOn(value string) FilterChoice {
	return FilterChoice{Value: value, Valid: true}
}

// ParseFilterChoice maps picker text to a filter; "" and "All" disable it.
func ParseFilterChoice(s string) FilterChoice {
	if s == "" || s == AllOption {
		return FilterChoice{}
	}
	return FilterOn(s)
}

// String renders the filter the way the picker shows it.
func (f FilterChoice) String() string {
	if !f.Valid {
		return AllOption
	}
	return f.Value
}

// HierarchyPath is the ordered list of columns defining chart rings, outermost first.
type HierarchyPath []string

// NewHierarchyPath keeps the selected choices in order and rejects duplicates.
func NewHierarchyPath(choices ...ColumnChoice) (HierarchyPath, error) {
	var path HierarchyPath
	seen := make(map[string]bool, len(choices))
	for _, c := range choices {
		if !c.Valid {
			continue
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, c.Name)
		}
		seen[c.Name] = true
		path = append(path, c.Name)
	}
	if len(path) == 0 {
		return nil, ErrEmptyHierarchy
	}
	if len(path) > MaxLevels {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyLevels, len(path), MaxLevels)
	}
	return path, nil
}

// Validate checks every column exists in t.
func (p HierarchyPath) Validate(t Table) error {
	if len(p) == 0 {
		return ErrEmptyHierarchy
	}
	for _, c := range p {
		if !t.HasColumn(c) {
			return fmt.Errorf("%w: %s", ErrUnknownColumn, c)
		}
	}
	return nil
}

// First returns the outermost column, or "" for an empty path.
func (p HierarchyPath) First() string {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}

func (p HierarchyPath) String() string {
	return strings.Join(p, " → ")
}
