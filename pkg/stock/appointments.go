package stock

import (
	"context"
	"time"

	"storewatch/pkg/logger"
	"storewatch/pkg/utils/dateutils"

	"go.uber.org/zap"
)

// AppointmentChecker flags appointment slots for the configured stores.
// It only runs when at least one appointment store is configured.
type AppointmentChecker struct {
	api    AvailabilityAPI
	stores map[string]bool
}

// NewAppointmentChecker creates an appointment checker for the given stores
func NewAppointmentChecker(api AvailabilityAPI, stores []string) *AppointmentChecker {
	selection := make(map[string]bool, len(stores))
	for _, s := range stores {
		selection[s] = true
	}
	return &AppointmentChecker{api: api, stores: selection}
}

// Enabled reports whether any appointment store is configured
func (a *AppointmentChecker) Enabled() bool {
	return len(a.stores) > 0
}

// Check scans the current date/hour partition and logs per-store status.
// It returns true when any configured store has an open slot; the caller
// sends a single summary notification after the scan, not one per store.
func (a *AppointmentChecker) Check(ctx context.Context) (bool, error) {
	now := time.Now()
	date := dateutils.FeedDate(now)
	hour := dateutils.FeedHour(now)

	logger.Info("➜  Downloading store appointment availability...")

	slots, err := a.api.FetchAppointments(ctx, date, hour)
	if err != nil {
		return false, err
	}

	slotsFound := false
	for _, slot := range slots {
		if !a.stores[slot.StoreNumber] {
			continue
		}
		if slot.AppointmentsAvailable {
			first := dateutils.FormatAppointmentTime(slot.FirstAvailableAppointment)
			logger.Info(" - Appointment Slot Available: ✔",
				zap.String("store", slot.StoreNumber),
				zap.String("first_available", first))
			slotsFound = true
		} else {
			logger.Info(" - ✖ No appointment slots",
				zap.String("store", slot.StoreNumber))
		}
	}

	return slotsFound, nil
}
