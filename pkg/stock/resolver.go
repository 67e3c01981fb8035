package stock

// ResolveSKUs turns free-text model labels into concrete SKUs using the
// label-to-SKU map. A label with no mapping passes through unchanged so raw
// SKU fragments work directly; empty labels are dropped (an empty selection
// is expressed by an empty list, not by blank entries).
func ResolveSKUs(labels []string, skuMap map[string]string) []string {
	skus := make([]string, 0, len(labels))
	for _, label := range labels {
		if label == "" {
			continue
		}
		if sku, ok := skuMap[label]; ok {
			skus = append(skus, sku)
			continue
		}
		skus = append(skus, label)
	}
	return skus
}
