package types

// Stream names used for metrics labels and log fields. They match the
// sensor export file basenames.
const (
	StreamTransactions = "pos_transactions"
	StreamRecognitions = "product_recognition"
	StreamQueue        = "queue_monitoring"
	StreamInventory    = "inventory_snapshots"
)

// Transaction is a point-of-sale scan event at a checkout station.
// ActualWeight is the scale reading in grams.
type Transaction struct {
	Timestamp    int64   `json:"timestamp"`
	StationID    string  `json:"station_id"`
	CustomerID   string  `json:"customer_id"`
	SKU          string  `json:"sku"`
	Barcode      string  `json:"barcode"`
	Price        float64 `json:"price"`
	ActualWeight float64 `json:"weight_g"`
}

// Recognition is a vision-system product prediction at a station.
// Confidence is the model's self-reported certainty in [0, 1].
type Recognition struct {
	Timestamp    int64   `json:"timestamp"`
	StationID    string  `json:"station_id"`
	PredictedSKU string  `json:"predicted_product"`
	Confidence   float64 `json:"accuracy"`
}

// QueueSample is a queue occupancy measurement at a station.
// AverageDwellTime is in seconds.
type QueueSample struct {
	Timestamp        int64   `json:"timestamp"`
	StationID        string  `json:"station_id"`
	CustomerCount    int     `json:"customer_count"`
	AverageDwellTime float64 `json:"average_dwell_time"`
}

// InventorySnapshot is a store-wide SKU on-hand count taken at one instant.
type InventorySnapshot struct {
	Timestamp int64          `json:"timestamp"`
	Counts    map[string]int `json:"data"`
}

// CatalogEntry holds the reference attributes for one SKU.
// ExpectedWeight is in grams.
type CatalogEntry struct {
	SKU            string  `json:"sku"`
	ProductName    string  `json:"product_name"`
	Barcode        string  `json:"barcode"`
	ExpectedWeight float64 `json:"weight"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
}
