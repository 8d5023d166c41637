package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"sunburst-explorer/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleTable() model.Table {
	return model.Table{
		Name:    "tickets.csv",
		Columns: []string{"Theme", "Sub"},
		Rows: []model.Row{
			{"Theme": model.Present("Billing"), "Sub": model.Present("Refund")},
			{"Theme": model.Present("Access"), "Sub": model.Absent()},
		},
	}
}

func TestSaveAndGetDataset(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	info, err := st.SaveDataset(ctx, "", "upload", sampleTable())
	require.NoError(t, err)
	assert.NotEmpty(t, info.ID)
	assert.Equal(t, "tickets.csv", info.Name)
	assert.Equal(t, "upload", info.Source)
	assert.Equal(t, 2, info.RowCount)
	assert.Equal(t, []string{"Theme", "Sub"}, info.Columns)

	table, got, err := st.GetDataset(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, info.ID, got.ID)
	if diff := cmp.Diff(sampleTable(), table); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, table.Rows[1].Get("Sub").Missing, "missing cells survive storage")
}

func TestSaveDatasetReplacesLocal(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	first, err := st.SaveDataset(ctx, LocalDatasetID, "local", sampleTable())
	require.NoError(t, err)

	smaller := sampleTable()
	smaller.Rows = smaller.Rows[:1]
	second, err := st.SaveDataset(ctx, LocalDatasetID, "local", smaller)
	require.NoError(t, err)

	assert.Equal(t, LocalDatasetID, second.ID)
	assert.Equal(t, 1, second.RowCount)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt), "created_at kept on replace")

	all, err := st.ListDatasets(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestNotFound(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, _, err := st.GetDataset(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.DatasetInfo(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.DeleteDataset(ctx, "nope"), ErrNotFound)
}

func TestRunsHistory(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	info, err := st.SaveDataset(ctx, "", "upload", sampleTable())
	require.NoError(t, err)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, filter := range []string{"All", "Billing", "Access"} {
		require.NoError(t, st.SaveRun(ctx, model.RunSummary{
			ID:         filter,
			DatasetID:  info.ID,
			Hierarchy:  []string{"Theme", "Sub"},
			Filter:     filter,
			Groups:     2,
			Total:      2,
			DurationMs: 1,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	runs, err := st.ListRuns(ctx, info.ID, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "Access", runs[0].Filter, "newest first")
	assert.Equal(t, "Billing", runs[1].Filter)
	assert.Equal(t, []string{"Theme", "Sub"}, runs[0].Hierarchy)

	require.NoError(t, st.DeleteDataset(ctx, info.ID))
	runs, err = st.ListRuns(ctx, info.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestReplaceDataset(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	info, err := st.SaveDataset(ctx, "", "upload", sampleTable())
	require.NoError(t, err)

	smaller := sampleTable()
	smaller.Name = "v2.csv"
	smaller.Rows = smaller.Rows[:1]
	got, err := st.ReplaceDataset(ctx, info.ID, smaller)
	require.NoError(t, err)
	assert.Equal(t, info.ID, got.ID)
	assert.Equal(t, "upload", got.Source)
	assert.Equal(t, "v2.csv", got.Name)
	assert.Equal(t, 1, got.RowCount)

	_, err = st.ReplaceDataset(ctx, "nope", smaller)
	assert.ErrorIs(t, err, ErrNotFound)
}
