package stock

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storewatch/pkg/logger"
	"storewatch/pkg/metrics"
	"storewatch/pkg/storefront"

	"go.uber.org/zap"
)

// Enumerator filters the family-level catalog down to the devices matching
// the user's model and carrier selection
type Enumerator struct {
	api      AvailabilityAPI
	family   string
	models   []string // SKU fragments, partial-matched; empty means all
	carriers []string // exact carrier names; empty means all
}

// NewEnumerator creates a device enumerator
func NewEnumerator(api AvailabilityAPI, family string, models, carriers []string) *Enumerator {
	return &Enumerator{
		api:      api,
		family:   family,
		models:   models,
		carriers: carriers,
	}
}

// FindDevices returns the catalog entries matching the selection. A failed
// download or a body that does not parse is fatal to the run; a body that
// parses but lacks the expected nested structure degrades to searching by
// the raw selected SKUs.
func (e *Enumerator) FindDevices(ctx context.Context) ([]Device, error) {
	products, err := e.api.FetchCatalog(ctx, e.family)
	if err != nil {
		if errors.Is(err, storefront.ErrUnexpectedShape) {
			metrics.RecordFetchFailure("catalog_shape")
			logger.Warn("✖ Catalog shape changed, searching by raw SKU instead",
				zap.Error(err))
			return e.fallbackDevices(), nil
		}
		metrics.RecordFetchFailure("catalog")
		return nil, fmt.Errorf("%w: %v", ErrCatalogFetch, err)
	}

	devices := make([]Device, 0, len(products))
	for _, product := range products {
		if !e.modelMatches(product.PartNumber) {
			continue
		}
		if !e.carrierMatches(product.CarrierModel) {
			continue
		}
		devices = append(devices, Device{
			Title:   product.ProductTitle,
			Model:   product.PartNumber,
			Carrier: product.CarrierModel,
		})
	}
	return devices, nil
}

// fallbackDevices builds degraded-mode devices from the raw selected SKUs
func (e *Enumerator) fallbackDevices() []Device {
	devices := make([]Device, 0, len(e.models))
	for _, model := range e.models {
		if model == "" {
			continue
		}
		devices = append(devices, Device{Model: model})
	}
	return devices
}

func (e *Enumerator) modelMatches(partNumber string) bool {
	if len(e.models) == 0 {
		return true
	}
	for _, fragment := range e.models {
		if strings.Contains(partNumber, fragment) {
			return true
		}
	}
	return false
}

func (e *Enumerator) carrierMatches(carrier string) bool {
	if len(e.carriers) == 0 {
		return true
	}
	for _, c := range e.carriers {
		if c == carrier {
			return true
		}
	}
	return false
}
