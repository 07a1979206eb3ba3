package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/storesight/pkg/timestamp"
	"github.com/c360/storesight/types"
)

func writeInput(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadAll_Transactions(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "pos_transactions.jsonl",
		`{"timestamp":"2025-08-13T16:05:45","station_id":"SCC1","status":"Active","data":{"customer_id":"C004","sku":"PRD_S_04","product_name":"Sourdough Loaf","barcode":"4870000000004","price":5.25,"weight_g":450}}
{"timestamp":"2025-08-13T16:06:01","station_id":"SCC2","data":{"customer_id":"C011","sku":"PRD_A_01","price":2.49,"weight_g":1028}}
`)

	s, err := New(dir).LoadAll()
	require.NoError(t, err)

	require.Len(t, s.Transactions, 2)
	tx := s.Transactions[0]
	want, err := timestamp.Parse("2025-08-13T16:05:45")
	require.NoError(t, err)
	assert.Equal(t, want, tx.Timestamp)
	assert.Equal(t, "SCC1", tx.StationID)
	assert.Equal(t, "C004", tx.CustomerID)
	assert.Equal(t, "PRD_S_04", tx.SKU)
	assert.Equal(t, "4870000000004", tx.Barcode)
	assert.InDelta(t, 5.25, tx.Price, 1e-9)
	assert.InDelta(t, 450, tx.ActualWeight, 1e-9)
	assert.Equal(t, 0, s.Skipped[types.StreamTransactions])
}

func TestLoadAll_MalformedRecordsSkippedAndCounted(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "pos_transactions.jsonl",
		`{"timestamp":"2025-08-13T16:05:45","station_id":"SCC1","data":{"sku":"PRD_S_04"}}
not json at all
{"timestamp":"2025-08-13T16:05:46","station_id":"SCC1","data":{"price":1.0}}
{"station_id":"SCC1","data":{"sku":"PRD_S_04"}}
{"timestamp":"2025-08-13T16:05:47","data":{"sku":"PRD_S_04"}}
`)

	s, err := New(dir).LoadAll()
	require.NoError(t, err)

	assert.Len(t, s.Transactions, 1)
	assert.Equal(t, 4, s.Skipped[types.StreamTransactions])
}

func TestLoadAll_Recognitions(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "product_recognition.jsonl",
		`{"timestamp":"2025-08-13T16:05:45","station_id":"SCC1","data":{"predicted_product":"PRD_S_04","accuracy":0.95}}
`)

	s, err := New(dir).LoadAll()
	require.NoError(t, err)

	require.Len(t, s.Recognitions, 1)
	assert.Equal(t, "PRD_S_04", s.Recognitions[0].PredictedSKU)
	assert.InDelta(t, 0.95, s.Recognitions[0].Confidence, 1e-9)
}

func TestLoadAll_QueueSamples(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "queue_monitoring.jsonl",
		`{"timestamp":"2025-08-13T16:05:45","station_id":"SCC1","data":{"customer_count":6,"average_dwell_time":321.5}}
{"timestamp":"2025-08-13T16:05:50","station_id":"SCC1","data":{"customer_count":-1,"average_dwell_time":1}}
`)

	s, err := New(dir).LoadAll()
	require.NoError(t, err)

	require.Len(t, s.QueueSamples, 1)
	assert.Equal(t, 6, s.QueueSamples[0].CustomerCount)
	assert.InDelta(t, 321.5, s.QueueSamples[0].AverageDwellTime, 1e-9)
	assert.Equal(t, 1, s.Skipped[types.StreamQueue])
}

func TestLoadAll_Snapshots(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "inventory_snapshots.jsonl",
		`{"timestamp":"2025-08-13T16:10:00","data":{"PRD_F_03":120,"PRD_A_01":55}}
`)

	s, err := New(dir).LoadAll()
	require.NoError(t, err)

	require.Len(t, s.Snapshots, 1)
	assert.Equal(t, 120, s.Snapshots[0].Counts["PRD_F_03"])
	assert.Equal(t, 55, s.Snapshots[0].Counts["PRD_A_01"])
}

func TestLoadAll_MissingFilesAreEmptyStreams(t *testing.T) {
	s, err := New(t.TempDir()).LoadAll()
	require.NoError(t, err)

	assert.Empty(t, s.Transactions)
	assert.Empty(t, s.Recognitions)
	assert.Empty(t, s.QueueSamples)
	assert.Empty(t, s.Snapshots)
	assert.Empty(t, s.Catalog)
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "products_list.csv",
		"SKU,product_name,barcode,weight,price,quantity,EPC_range\n"+
			"PRD_S_04,Sourdough Loaf,4870000000004,450,5.25,100,E280-1\n"+
			"PRD_A_01, Whole Milk 1L ,4870000000001,1030,2.49,80,E280-2\n")

	s, err := New(dir).LoadAll()
	require.NoError(t, err)

	require.Len(t, s.Catalog, 2)
	assert.Equal(t, "PRD_S_04", s.Catalog[0].SKU)
	assert.InDelta(t, 450, s.Catalog[0].ExpectedWeight, 1e-9)
	assert.Equal(t, 100, s.Catalog[0].Quantity)
	// Whitespace around fields is trimmed.
	assert.Equal(t, "Whole Milk 1L", s.Catalog[1].ProductName)
}

func TestLoadCatalog_MalformedRowsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "products_list.csv",
		"SKU,product_name,weight,price,quantity\n"+
			",No SKU,10,1,1\n"+
			"PRD_B_01,Bad Weight,heavy,1,1\n"+
			"PRD_C_01,Fine,250,3.10,5\n")

	s, err := New(dir).LoadAll()
	require.NoError(t, err)

	require.Len(t, s.Catalog, 1)
	assert.Equal(t, "PRD_C_01", s.Catalog[0].SKU)
	assert.Equal(t, 2, s.Skipped[streamCatalog])
}

func TestLoadDataset(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "pos_transactions.jsonl",
		`{"timestamp":"2025-08-13T16:05:45","station_id":"SCC1","data":{"sku":"PRD_S_04","weight_g":450}}
`)
	writeInput(t, dir, "products_list.csv",
		"SKU,product_name,weight,price,quantity\nPRD_S_04,Sourdough Loaf,450,5.25,100\n")

	ds, err := New(dir).LoadDataset()
	require.NoError(t, err)

	assert.Len(t, ds.Transactions, 1)
	entry, ok := ds.Catalog.Lookup("PRD_S_04")
	require.True(t, ok)
	assert.InDelta(t, 450, entry.ExpectedWeight, 1e-9)
}

func TestLoadDataset_DuplicateCatalogSKU(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "products_list.csv",
		"SKU,product_name,weight,price,quantity\nPRD_S_04,A,450,1,1\nPRD_S_04,B,450,1,1\n")

	_, err := New(dir).LoadDataset()
	assert.Error(t, err)
}
