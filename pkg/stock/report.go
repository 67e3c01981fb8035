package stock

import (
	"fmt"
	"sort"

	"storewatch/pkg/logger"
)

// logStoreHeader prints the human-readable header for one store
func logStoreHeader(record *StoreRecord) {
	logger.Info(fmt.Sprintf("%s, %s (%s)", record.StoreName, record.City, record.StoreID))
}

// logPartStatus prints the ✔/✖ status line for one classified part
func logPartStatus(sku string, c Classification) {
	mark := "✖"
	if c.Available {
		mark = "✔"
	}
	logger.Info(fmt.Sprintf(" - %s %s (%s)", mark, c.Title, sku))
}

// sortedPartNumbers returns the store's part numbers in a stable order so the
// report does not jitter between runs
func sortedPartNumbers(record *StoreRecord) []string {
	skus := make([]string, 0, len(record.Parts))
	for sku := range record.Parts {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	return skus
}
