package stock

import "testing"

func TestResolveSKUs(t *testing.T) {
	skuMap := map[string]string{
		"256-orange-pro": "MG8H4QN/A",
		"256-blue-pro":   "MG8J4QN/A",
	}

	skus := ResolveSKUs([]string{"256-orange-pro", "MYE93QN/A", ""}, skuMap)

	if len(skus) != 2 {
		t.Fatalf("Expected 2 SKUs, got %v", skus)
	}
	if skus[0] != "MG8H4QN/A" {
		t.Errorf("Expected mapped SKU, got %s", skus[0])
	}
	// Unknown labels pass through as raw SKUs
	if skus[1] != "MYE93QN/A" {
		t.Errorf("Expected passthrough SKU, got %s", skus[1])
	}
}

func TestResolveSKUsEmptySelection(t *testing.T) {
	if skus := ResolveSKUs(nil, map[string]string{"a": "b"}); len(skus) != 0 {
		t.Errorf("Empty selection must stay empty, got %v", skus)
	}
}
