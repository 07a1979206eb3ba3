package detector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c360/storesight/catalog"
	"github.com/c360/storesight/config"
	"github.com/c360/storesight/dataset"
	"github.com/c360/storesight/types"
)

// sec converts whole seconds to the Unix-millisecond timeline used by
// the fixtures.
func sec(s int64) int64 { return s * 1000 }

func testDataset(t *testing.T,
	transactions []types.Transaction,
	recognitions []types.Recognition,
	queueSamples []types.QueueSample,
	snapshots []types.InventorySnapshot,
	entries []types.CatalogEntry,
) *dataset.Dataset {
	t.Helper()
	cat, err := catalog.New(entries)
	require.NoError(t, err)
	return dataset.New(transactions, recognitions, queueSamples, snapshots, cat, nil)
}

func defaults() config.Detection {
	return config.Default().Detection
}

func TestAll_OrdinalsFixed(t *testing.T) {
	detectors := All(defaults(), Options{})
	require.Len(t, detectors, 6)
	for i, d := range detectors {
		require.Equal(t, i, d.Ordinal(), "detector %s out of order", d.Name())
	}
}
