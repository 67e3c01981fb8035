package stock

import (
	"context"
	"time"

	"storewatch/pkg/storefront"
)

// Device is one concrete product configuration to check. Degraded-mode
// devices carry only the model (raw SKU search).
type Device struct {
	Title   string `json:"title,omitempty"`
	Model   string `json:"model"`
	Carrier string `json:"carrier,omitempty"`
}

// StoreRecord is the merged per-store view for one run. It is created on the
// first sighting of a store and mutated in place on every later sighting;
// records are never removed during a run.
type StoreRecord struct {
	StoreID   string                                 `json:"store_id"`
	StoreName string                                 `json:"store_name"`
	City      string                                 `json:"city"`
	Sequence  int                                    `json:"sequence"`
	Parts     map[string]storefront.PartAvailability `json:"parts"`
}

// AvailabilityEvent is produced for each notify-worthy part at a store
type AvailabilityEvent struct {
	StoreName    string `json:"store_name"`
	DisplayTitle string `json:"display_title"`
	SKU          string `json:"sku"`
	Link         string `json:"link"`
}

// PartStatus is the classified state of one part at one store, kept for the
// run report and the status API
type PartStatus struct {
	SKU          string `json:"sku"`
	Title        string `json:"title"`
	Available    bool   `json:"available"`
	NotifyWorthy bool   `json:"notify_worthy"`
}

// StoreReport summarizes one store after classification, in display order
type StoreReport struct {
	StoreID   string       `json:"store_id"`
	StoreName string       `json:"store_name"`
	City      string       `json:"city"`
	Sequence  int          `json:"sequence"`
	Parts     []PartStatus `json:"parts"`
}

// RunResult summarizes one complete check run
type RunResult struct {
	RunID             string        `json:"run_id"`
	StartedAt         time.Time     `json:"started_at"`
	CompletedAt       time.Time     `json:"completed_at"`
	Duration          time.Duration `json:"duration"`
	DevicesMatched    int           `json:"devices_matched"`
	DevicesSkipped    int           `json:"devices_skipped"`
	StoresRegistered  int           `json:"stores_registered"`
	PartsChecked      int           `json:"parts_checked"`
	EventsProduced    int           `json:"events_produced"`
	AppointmentsFound bool          `json:"appointments_found"`
	NotifyFailed      bool          `json:"notify_failed"`
	Stores            []StoreReport `json:"stores"`
}

// AvailabilityAPI is the storefront collaborator consumed by the engine
type AvailabilityAPI interface {
	FetchCatalog(ctx context.Context, family string) ([]storefront.CatalogProduct, error)
	FetchAvailability(ctx context.Context, sku, zip string) ([]storefront.StoreAvailability, error)
	FetchAppointments(ctx context.Context, date, hour string) ([]storefront.AppointmentSlot, error)
	ProductURL(sku string) string
}

// EventSink receives availability events and delivers them to the
// notification channels. Publish may deliver immediately (special-case
// routing); Flush sends the accumulated group message once per run.
type EventSink interface {
	Publish(ctx context.Context, event AvailabilityEvent) error
	Flush(ctx context.Context) error
}

// AppointmentAlerter sends the single end-of-scan appointment summary
type AppointmentAlerter interface {
	AlertAppointments(ctx context.Context) error
}

// LabelSource supplies the remotely-selected model labels, if any
type LabelSource interface {
	FetchSelectedLabels(ctx context.Context) ([]string, error)
}
