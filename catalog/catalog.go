// Package catalog provides the immutable SKU lookup built once per run.
package catalog

import (
	"fmt"
	"sort"

	"github.com/c360/storesight/errors"
	"github.com/c360/storesight/types"
)

// Catalog is an immutable mapping from SKU to reference attributes
// (expected weight, price, barcode). A lookup miss is a recoverable
// condition for callers, not a fatal error.
type Catalog struct {
	entries map[string]types.CatalogEntry
}

// New builds a catalog from loaded entries. SKUs must be unique; a
// duplicate is invalid input and rejected.
func New(entries []types.CatalogEntry) (*Catalog, error) {
	m := make(map[string]types.CatalogEntry, len(entries))
	for _, entry := range entries {
		if entry.SKU == "" {
			return nil, errors.WrapInvalid(errors.ErrMalformedRecord,
				"Catalog", "New", "entry with empty sku")
		}
		if _, exists := m[entry.SKU]; exists {
			return nil, errors.WrapInvalid(errors.ErrDuplicateSKU,
				"Catalog", "New", fmt.Sprintf("sku %s", entry.SKU))
		}
		m[entry.SKU] = entry
	}
	return &Catalog{entries: m}, nil
}

// Lookup returns the entry for a SKU. The second return value reports
// whether the SKU is present.
func (c *Catalog) Lookup(sku string) (types.CatalogEntry, bool) {
	entry, ok := c.entries[sku]
	return entry, ok
}

// Len returns the number of catalog entries
func (c *Catalog) Len() int {
	return len(c.entries)
}

// SKUs returns all catalog SKUs in sorted order
func (c *Catalog) SKUs() []string {
	skus := make([]string, 0, len(c.entries))
	for sku := range c.entries {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	return skus
}
