package loader

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/c360/storesight/errors"
	"github.com/c360/storesight/types"
)

// streamCatalog labels catalog rows in skip counts and metrics.
const streamCatalog = "products_list"

// loadCatalog reads the product catalog CSV. Columns are matched by
// header name, so column order does not matter. Rows without a SKU or
// with unparseable numerics are skipped and counted like any other
// malformed record.
func (l *Loader) loadCatalog(s *Streams) error {
	path := filepath.Join(l.dir, fileCatalog)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Warn("catalog file not found, treating as empty",
				slog.String("path", path))
			return nil
		}
		return errors.Wrap(err, "Loader", "loadCatalog", "open "+fileCatalog)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return errors.WrapInvalid(err, "Loader", "loadCatalog", "read header")
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	if _, ok := col["SKU"]; !ok {
		return errors.WrapInvalid(errors.ErrParsingFailed, "Loader", "loadCatalog", "missing SKU column")
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	loaded, skipped := 0, 0
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			skipped++
			l.logger.Debug("skipping malformed catalog row",
				slog.Int("line", line), slog.String("error", err.Error()))
			continue
		}

		sku := field(row, "SKU")
		if sku == "" {
			skipped++
			continue
		}
		weight, werr := parseFloat(field(row, "weight"))
		price, perr := parseFloat(field(row, "price"))
		quantity, qerr := parseInt(field(row, "quantity"))
		if werr != nil || perr != nil || qerr != nil {
			skipped++
			l.logger.Debug("skipping malformed catalog row",
				slog.Int("line", line), slog.String("sku", sku))
			continue
		}

		s.Catalog = append(s.Catalog, types.CatalogEntry{
			SKU:            sku,
			ProductName:    field(row, "product_name"),
			Barcode:        field(row, "barcode"),
			ExpectedWeight: weight,
			Price:          price,
			Quantity:       quantity,
		})
		loaded++
	}

	s.Skipped[streamCatalog] += skipped
	if l.metrics != nil {
		l.metrics.RecordLoaded(streamCatalog, loaded)
		l.metrics.RecordSkipped(streamCatalog, skipped)
	}
	return nil
}

// parseFloat treats the empty string as zero, matching exports that
// leave optional numerics blank.
func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
