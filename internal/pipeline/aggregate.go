package pipeline

import (
	"sort"

	"sunburst-explorer/internal/model"
	"sunburst-explorer/pkg/utils"
)

// Aggregate counts the rows of table per distinct combination of values in
// path and derives each combination's share of the total.
//
// The table is expected to be substituted already; a missing cell that slips
// through is counted under the default placeholder so no row is dropped.
// Records are ordered column by column with utils.CompareValues. An empty
// table yields no records.
func Aggregate(table model.Table, path model.HierarchyPath) []model.AggregateRecord {
	if len(path) == 0 || table.Len() == 0 {
		return nil
	}

	groups := make(map[string]*model.AggregateRecord)
	var order []*model.AggregateRecord
	for _, row := range table.Rows {
		values := make([]string, len(path))
		for i, c := range path {
			v := row.Get(c)
			if v.Missing {
				values[i] = Placeholder(DefaultPlaceholderFormat, c)
				continue
			}
			values[i] = v.Text
		}
		rec := model.AggregateRecord{Values: values}
		key := rec.Key()
		if existing, ok := groups[key]; ok {
			existing.Count++
			continue
		}
		rec.Count = 1
		groups[key] = &rec
		order = append(order, &rec)
	}

	total := table.Len()
	records := make([]model.AggregateRecord, 0, len(order))
	for _, rec := range order {
		rec.Percentage = float64(rec.Count) / float64(total) * 100
		records = append(records, *rec)
	}
	SortRecords(records)
	return records
}

// SortRecords orders records by their value tuples.
func SortRecords(records []model.AggregateRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return compareTuples(records[i].Values, records[j].Values) < 0
	})
}

func compareTuples(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := utils.CompareValues(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

// Total sums the counts of records.
func Total(records []model.AggregateRecord) int {
	total := 0
	for _, r := range records {
		total += r.Count
	}
	return total
}
