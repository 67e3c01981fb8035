package stock

import (
	"testing"

	"storewatch/pkg/storefront"
)

func partWithFlags(pickEligible, selectionEnabled bool) storefront.PartAvailability {
	return storefront.PartAvailability{
		PartNumber:        "MG8H4QN/A",
		StorePickEligible: pickEligible,
		ProductTitle:      "iPhone 17 Pro 256GB Orange",
		MessageTypes: &storefront.MessageTypes{
			Regular: &storefront.RegularMessage{
				StoreSelectionEnabled: selectionEnabled,
			},
		},
	}
}

func TestClassifyPickEligibleButSelectionDisabled(t *testing.T) {
	// Displayed as available, but not notify-worthy. The asymmetry is the
	// point: only the regular-message selection flag gates notifications.
	c := Classify(partWithFlags(true, false))
	if !c.Available {
		t.Error("Pick-eligible part must display as available")
	}
	if c.NotifyWorthy {
		t.Error("Selection-disabled part must not be notify-worthy")
	}
}

func TestClassifySelectionEnabledAlwaysNotifies(t *testing.T) {
	for _, pickEligible := range []bool{true, false} {
		c := Classify(partWithFlags(pickEligible, true))
		if !c.Available {
			t.Errorf("pickEligible=%v: selection-enabled part must display as available", pickEligible)
		}
		if !c.NotifyWorthy {
			t.Errorf("pickEligible=%v: selection-enabled part must be notify-worthy", pickEligible)
		}
	}
}

func TestClassifyNeitherFlag(t *testing.T) {
	c := Classify(partWithFlags(false, false))
	if c.Available || c.NotifyWorthy {
		t.Error("Part with no flags set must be unavailable and silent")
	}
}

func TestClassifyAbsentMessageTypes(t *testing.T) {
	c := Classify(storefront.PartAvailability{PartNumber: "MG8H4QN/A", StorePickEligible: true})
	if !c.Available {
		t.Error("Pick-eligible part without a regular block still displays as available")
	}
	if c.NotifyWorthy {
		t.Error("Missing regular block must read as selection disabled")
	}
}

func TestDisplayTitlePrecedence(t *testing.T) {
	tests := []struct {
		name string
		part storefront.PartAvailability
		want string
	}{
		{
			name: "regular pickup title wins",
			part: storefront.PartAvailability{
				StorePickupProductTitle: "Top Level",
				ProductTitle:            "Product",
				MessageTypes: &storefront.MessageTypes{
					Regular: &storefront.RegularMessage{StorePickupProductTitle: "Regular"},
				},
			},
			want: "Regular",
		},
		{
			name: "top-level pickup title second",
			part: storefront.PartAvailability{
				StorePickupProductTitle: "Top Level",
				ProductTitle:            "Product",
			},
			want: "Top Level",
		},
		{
			name: "product title third",
			part: storefront.PartAvailability{ProductTitle: "Product"},
			want: "Product",
		},
		{
			name: "unknown as last resort",
			part: storefront.PartAvailability{},
			want: "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayTitle(tt.part); got != tt.want {
				t.Errorf("DisplayTitle = %q, want %q", got, tt.want)
			}
		})
	}
}
