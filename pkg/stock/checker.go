package stock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storewatch/pkg/config"
	"storewatch/pkg/logger"
	"storewatch/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Checker runs one complete stock check: resolve the model selection,
// enumerate devices, merge per-store availability, classify, dispatch
// notifications, then optionally scan appointment slots.
//
// Every run starts from an empty aggregation state; nothing persists
// between runs.
type Checker struct {
	cfg     *config.Config
	api     AvailabilityAPI
	sink    EventSink
	alerter AppointmentAlerter
	labels  LabelSource
	limiter *rate.Limiter
}

// NewChecker wires the engine to its collaborators. alerter and labels may
// be nil when the appointment summary or the remote selection is not used.
func NewChecker(cfg *config.Config, api AvailabilityAPI, sink EventSink, alerter AppointmentAlerter, labels LabelSource) *Checker {
	pause := time.Duration(cfg.Retailer.PauseSeconds) * time.Second
	var limiter *rate.Limiter
	if pause > 0 {
		// Courtesy pacing toward the upstream service: one availability
		// fetch per pause interval, no bursting.
		limiter = rate.NewLimiter(rate.Every(pause), 1)
	}

	return &Checker{
		cfg:     cfg,
		api:     api,
		sink:    sink,
		alerter: alerter,
		labels:  labels,
		limiter: limiter,
	}
}

// Run executes one full pass and returns its summary. ErrNoDevices is
// terminal; a notification transport failure is reported in the result and
// the returned error but does not stop the appointment scan.
func (c *Checker) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
	}
	ctx = logger.WithRunID(ctx, result.RunID)
	log := logger.FromContext(ctx)

	devices, err := c.findDevices(ctx)
	if err != nil {
		metrics.RecordRun("catalog_failed")
		return nil, err
	}
	if len(devices) == 0 {
		metrics.RecordRun("no_devices")
		log.Error("✖  No device matching your configuration was found!")
		return nil, ErrNoDevices
	}
	result.DevicesMatched = len(devices)
	log.Info("✔  Found devices matching your config", zap.Int("devices", len(devices)))

	log.Info("➜  Downloading stock information for the devices...")
	merger := NewMerger(c.cfg.Retailer.Stores)
	for _, device := range devices {
		if err := c.checkStoresForDevice(ctx, merger, device); err != nil {
			// One malformed response never aborts the whole run
			result.DevicesSkipped++
			metrics.RecordFetchFailure("availability")
			log.Warn("✖  Fetch failed for device, skipping",
				zap.String("model", device.Model),
				zap.Error(err))
		}
	}
	result.StoresRegistered = merger.Len()

	notifyErr := c.reportAndDispatch(ctx, merger, result)

	if apptErr := c.checkAppointments(ctx, result); apptErr != nil {
		log.Warn("✖  Appointment availability check failed", zap.Error(apptErr))
	}

	result.CompletedAt = time.Now()
	result.Duration = result.CompletedAt.Sub(result.StartedAt)

	if notifyErr != nil {
		result.NotifyFailed = true
		metrics.RecordRun("notify_failed")
		return result, fmt.Errorf("%w: %v", ErrNotify, notifyErr)
	}

	metrics.RecordRun("ok")
	log.Info("✔  Done",
		zap.Int("stores", result.StoresRegistered),
		zap.Int("parts", result.PartsChecked),
		zap.Int("events", result.EventsProduced),
		zap.Duration("duration", result.Duration))
	return result, nil
}

// findDevices resolves the model selection and enumerates matching devices
func (c *Checker) findDevices(ctx context.Context) ([]Device, error) {
	log := logger.FromContext(ctx)

	selected := c.cfg.Retailer.DeviceModels
	if c.labels != nil {
		if remote, err := c.labels.FetchSelectedLabels(ctx); err != nil {
			// The remote selection is best effort; keep the configured labels
			log.Warn("✖  Remote model selection unavailable, using configured models", zap.Error(err))
		} else if len(remote) > 0 {
			selected = remote
		}
	}

	skus := ResolveSKUs(selected, c.cfg.SKUMap.Labels)

	log.Info("➜  Downloading models list...")
	enumerator := NewEnumerator(c.api, c.cfg.Retailer.DeviceFamily, skus, c.cfg.Retailer.Carriers)
	return enumerator.FindDevices(ctx)
}

// checkStoresForDevice fetches one device's per-store availability and folds
// it into the merger. The pacing limiter enforces the minimum spacing between
// upstream requests regardless of fetch outcome.
func (c *Checker) checkStoresForDevice(ctx context.Context, merger *Merger, device Device) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	metrics.RecordDeviceChecked()
	stores, err := c.api.FetchAvailability(ctx, device.Model, c.cfg.Retailer.ZipCode)
	if err != nil {
		return err
	}

	merger.Merge(stores)
	return nil
}

// reportAndDispatch walks the merged stores in display order, prints the
// status report, and hands notify-worthy parts to the event sink
func (c *Checker) reportAndDispatch(ctx context.Context, merger *Merger, result *RunResult) error {
	var notifyErr error

	for _, record := range merger.Stores() {
		logStoreHeader(record)

		report := StoreReport{
			StoreID:   record.StoreID,
			StoreName: record.StoreName,
			City:      record.City,
			Sequence:  record.Sequence,
		}

		for _, sku := range sortedPartNumbers(record) {
			part := record.Parts[sku]
			classification := Classify(part)
			logPartStatus(sku, classification)
			result.PartsChecked++

			report.Parts = append(report.Parts, PartStatus{
				SKU:          sku,
				Title:        classification.Title,
				Available:    classification.Available,
				NotifyWorthy: classification.NotifyWorthy,
			})

			if !classification.NotifyWorthy {
				continue
			}

			result.EventsProduced++
			metrics.RecordAvailabilityEvent()
			event := AvailabilityEvent{
				StoreName:    record.StoreName,
				DisplayTitle: classification.Title,
				SKU:          sku,
				Link:         c.api.ProductURL(sku),
			}
			if err := c.sink.Publish(ctx, event); err != nil {
				notifyErr = errors.Join(notifyErr, err)
			}
		}

		result.Stores = append(result.Stores, report)
	}

	if err := c.sink.Flush(ctx); err != nil {
		notifyErr = errors.Join(notifyErr, err)
	}
	if notifyErr != nil {
		logger.FromContext(ctx).Error("✖  Notification delivery failed", zap.Error(notifyErr))
	}
	return notifyErr
}

// checkAppointments runs the optional appointment sub-flow
func (c *Checker) checkAppointments(ctx context.Context, result *RunResult) error {
	checker := NewAppointmentChecker(c.api, c.cfg.Retailer.AppointmentStores)
	if !checker.Enabled() {
		return nil
	}

	found, err := checker.Check(ctx)
	if err != nil {
		return err
	}

	result.AppointmentsFound = found
	if found && c.alerter != nil {
		if err := c.alerter.AlertAppointments(ctx); err != nil {
			return err
		}
	}
	return nil
}
