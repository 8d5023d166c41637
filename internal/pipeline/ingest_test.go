package pipeline

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"sunburst-explorer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	src := "Theme,Sub-Theme,Channel\n" +
		"Billing,Refund,Email\n" +
		"Billing,NA,Phone\n" +
		"Access,,\n" +
		"\"Shipping, Intl\",Delay,Chat\n"

	table, err := ReadCSV(strings.NewReader(src), "tickets.csv", LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "tickets.csv", table.Name)
	assert.Equal(t, []string{"Theme", "Sub-Theme", "Channel"}, table.Columns)
	require.Equal(t, 4, table.Len())
	assert.True(t, table.Rows[1].Get("Sub-Theme").Missing, "NA marker is missing")
	assert.True(t, table.Rows[2].Get("Sub-Theme").Missing)
	assert.True(t, table.Rows[2].Get("Channel").Missing)
	assert.Equal(t, "Shipping, Intl", table.Rows[3].Get("Theme").Text)
}

func TestReadCSVCustomNAValues(t *testing.T) {
	src := "Theme\nNA\n-\n\n"
	table, err := ReadCSV(strings.NewReader(src), "t.csv", LoadOptions{NAValues: []string{"-"}})
	require.NoError(t, err)

	require.Equal(t, 2, table.Len())
	assert.Equal(t, model.Present("NA"), table.Rows[0].Get("Theme"))
	assert.True(t, table.Rows[1].Get("Theme").Missing)
}

func TestReadCSVShortAndLongRows(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("a,b,c\n1\n"), "t.csv", LoadOptions{})
	require.NoError(t, err)
	assert.True(t, table.Rows[0].Get("c").Missing)

	_, err = ReadCSV(strings.NewReader("a,b\n1,2,3\n"), "t.csv", LoadOptions{})
	assert.ErrorContains(t, err, "row 2: expected 2 fields, saw 3")
}

func TestReadCSVNoHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), "t.csv", LoadOptions{})
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestCleanHeaders(t *testing.T) {
	got := cleanHeaders([]string{"\ufeffTheme", ` "Sub" `, "", "Theme", "Theme"})
	assert.Equal(t, []string{"Theme", "Sub", "Unnamed: 2", "Theme.1", "Theme.2"}, got)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Theme", "Sub"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Billing", "Refund"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"Access"}))
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)

	table, err := Read(&buf, "tickets.xlsx", LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Theme", "Sub"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "Refund", table.Rows[0].Get("Sub").Text)
	assert.True(t, table.Rows[1].Get("Sub").Missing)
}

func TestReadXLSXUnknownSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)

	_, err = ReadXLSX(&buf, "t.xlsx", LoadOptions{Sheet: "Missing"})
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tickets.csv")
	require.NoError(t, os.WriteFile(path, []byte("Theme\nBilling\n"), 0o644))

	table, err := LoadFile(context.Background(), path, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "tickets.csv", table.Name)
	assert.Equal(t, 1, table.Len())

	_, err = LoadFile(context.Background(), filepath.Join(dir, "missing.csv"), LoadOptions{})
	assert.Error(t, err)
}

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, BackoffMultiplier: 2}
}

func TestLoadURLRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("Theme\nBilling\nAccess\n"))
	}))
	defer srv.Close()

	table, err := LoadURL(context.Background(), srv.URL+"/tickets.csv?token=x", LoadOptions{Retry: fastRetry()})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "tickets.csv", table.Name)
	assert.Equal(t, 2, table.Len())
}

func TestLoadURLDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := LoadURL(context.Background(), srv.URL+"/x.csv", LoadOptions{Retry: fastRetry()})
	assert.ErrorIs(t, err, ErrFetchTable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLoadURLGivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := LoadURL(context.Background(), srv.URL+"/x.csv", LoadOptions{Retry: fastRetry()})
	assert.ErrorIs(t, err, ErrFetchTable)
	assert.Equal(t, int32(3), calls.Load())
}
