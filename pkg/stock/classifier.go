package stock

import "storewatch/pkg/storefront"

// UnknownTitle is displayed when the provider record carries no title at all
const UnknownTitle = "Unknown"

// Classification is the business-rule view of one raw part record.
//
// Available and NotifyWorthy are deliberately different signals: a part may
// be pickup-eligible (shown as available) while its regular-message selection
// flag is off, in which case it must not produce a notification.
type Classification struct {
	Title        string
	Available    bool
	NotifyWorthy bool
}

// Classify applies the fixed precedence rules to one raw part record
func Classify(part storefront.PartAvailability) Classification {
	return Classification{
		Title:        DisplayTitle(part),
		Available:    part.StorePickEligible || part.Regular().StoreSelectionEnabled,
		NotifyWorthy: part.Regular().StoreSelectionEnabled,
	}
}

// DisplayTitle picks the first non-empty title: the regular message's pickup
// title, then the top-level pickup title, then the product title, then
// "Unknown".
func DisplayTitle(part storefront.PartAvailability) string {
	if title := part.Regular().StorePickupProductTitle; title != "" {
		return title
	}
	if part.StorePickupProductTitle != "" {
		return part.StorePickupProductTitle
	}
	if part.ProductTitle != "" {
		return part.ProductTitle
	}
	return UnknownTitle
}
