package stock

import (
	"sort"

	"storewatch/pkg/storefront"
)

// Merger folds per-device availability responses into a per-store view.
// It is owned by a single run; no concurrent mutation occurs.
type Merger struct {
	selectedStores map[string]bool // empty means register every store
	registered     map[string]*StoreRecord
	order          []string // store numbers in registration order
}

// NewMerger creates a merger registering only the selected store numbers;
// an empty selection registers every store seen.
func NewMerger(selectedStores []string) *Merger {
	selection := make(map[string]bool, len(selectedStores))
	for _, s := range selectedStores {
		selection[s] = true
	}
	return &Merger{
		selectedStores: selection,
		registered:     make(map[string]*StoreRecord),
	}
}

// Merge folds one device's raw store entries into the per-store view. Each
// incoming SKU key replaces any prior record for that SKU at that store; a
// store outside the selection is read but not retained.
func (m *Merger) Merge(stores []storefront.StoreAvailability) {
	for _, store := range stores {
		record, ok := m.registered[store.StoreNumber]
		if !ok {
			record = &StoreRecord{
				StoreID:   store.StoreNumber,
				StoreName: store.StoreName,
				City:      store.City,
				Sequence:  store.StoreListNumber,
				Parts:     make(map[string]storefront.PartAvailability),
			}
		}

		for sku, part := range store.PartsAvailability {
			record.Parts[sku] = part
		}

		if !ok && (len(m.selectedStores) == 0 || m.selectedStores[store.StoreNumber]) {
			m.registered[store.StoreNumber] = record
			m.order = append(m.order, store.StoreNumber)
		}
	}
}

// Stores returns the registered records sorted ascending by sequence number.
// The sort is stable so equal sequences keep their registration order.
func (m *Merger) Stores() []*StoreRecord {
	stores := make([]*StoreRecord, 0, len(m.order))
	for _, storeNumber := range m.order {
		stores = append(stores, m.registered[storeNumber])
	}
	sort.SliceStable(stores, func(i, j int) bool {
		return stores[i].Sequence < stores[j].Sequence
	})
	return stores
}

// Len returns the number of registered stores
func (m *Merger) Len() int {
	return len(m.registered)
}
