package stock

import "errors"

var (
	// ErrNoDevices means enumeration and the degraded fallback both came up
	// empty. The caller must treat this as terminal and user-visible.
	ErrNoDevices = errors.New("stock: no device matching the configuration was found")

	// ErrCatalogFetch wraps a failed catalog download
	ErrCatalogFetch = errors.New("stock: catalog fetch failed")

	// ErrNotify wraps a notification transport failure
	ErrNotify = errors.New("stock: notification delivery failed")
)
