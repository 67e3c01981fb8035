package storefront

// CatalogProduct is one entry of the family-level product catalog
type CatalogProduct struct {
	PartNumber   string `json:"partNumber"`
	CarrierModel string `json:"carrierModel"`
	ProductTitle string `json:"productTitle"`
}

// catalogResponse mirrors the product-locator-meta response envelope. The
// nested levels are pointers so a parsed-but-wrong-shaped body is detectable.
type catalogResponse struct {
	Body *catalogBody `json:"body"`
}

type catalogBody struct {
	ProductLocatorOverlayData *productLocatorOverlayData `json:"productLocatorOverlayData"`
}

type productLocatorOverlayData struct {
	ProductLocatorMeta *productLocatorMeta `json:"productLocatorMeta"`
}

type productLocatorMeta struct {
	Products []CatalogProduct `json:"products"`
}

// StoreAvailability is one raw store entry of the pickup-message response
type StoreAvailability struct {
	StoreNumber       string                      `json:"storeNumber"`
	StoreName         string                      `json:"storeName"`
	City              string                      `json:"city"`
	StoreListNumber   int                         `json:"storeListNumber"`
	PartsAvailability map[string]PartAvailability `json:"partsAvailability"`
}

// availabilityResponse mirrors the pickup-message response envelope
type availabilityResponse struct {
	Body *availabilityBody `json:"body"`
}

type availabilityBody struct {
	Stores []StoreAvailability `json:"stores"`
}

// PartAvailability is the raw provider record for one SKU at one store.
// Optional nested fields are pointers; absence is part of the signal.
type PartAvailability struct {
	PartNumber              string        `json:"partNumber"`
	StorePickEligible       bool          `json:"storePickEligible"`
	StorePickupProductTitle string        `json:"storePickupProductTitle"`
	ProductTitle            string        `json:"productTitle"`
	MessageTypes            *MessageTypes `json:"messageTypes"`
}

// MessageTypes carries the per-message-class status blocks
type MessageTypes struct {
	Regular *RegularMessage `json:"regular"`
}

// RegularMessage is the "regular" message-class status for a part
type RegularMessage struct {
	StoreSelectionEnabled   bool   `json:"storeSelectionEnabled"`
	StorePickupProductTitle string `json:"storePickupProductTitle"`
}

// Regular returns the regular message block, or a zero value when the
// provider omitted it. Callers never need a nil check.
func (p PartAvailability) Regular() RegularMessage {
	if p.MessageTypes == nil || p.MessageTypes.Regular == nil {
		return RegularMessage{}
	}
	return *p.MessageTypes.Regular
}

// AppointmentSlot is one store's appointment availability for the scanned hour
type AppointmentSlot struct {
	StoreNumber               string `json:"storeNumber"`
	AppointmentsAvailable     bool   `json:"appointmentsAvailable"`
	FirstAvailableAppointment int64  `json:"firstAvailableAppointment"` // epoch seconds
}
