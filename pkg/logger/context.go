package logger

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	runIDKey  contextKey = "run_id"
	deviceKey contextKey = "device"
	storeKey  contextKey = "store"
	loggerKey contextKey = "logger"
)

// WithRunID adds the check-run ID to context
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithDevice adds the device SKU being checked to context
func WithDevice(ctx context.Context, sku string) context.Context {
	return context.WithValue(ctx, deviceKey, sku)
}

// WithStore adds the store number to context
func WithStore(ctx context.Context, storeNumber string) context.Context {
	return context.WithValue(ctx, storeKey, storeNumber)
}

// WithLogger adds a logger to context
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts a logger from context with all accumulated fields
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
		return l
	}

	l := Logger
	if l == nil {
		l, _ = zap.NewProduction()
	}

	var fields []zap.Field
	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, zap.String("run_id", runID))
	}
	if sku, ok := ctx.Value(deviceKey).(string); ok && sku != "" {
		fields = append(fields, zap.String("device", sku))
	}
	if storeNumber, ok := ctx.Value(storeKey).(string); ok && storeNumber != "" {
		fields = append(fields, zap.String("store", storeNumber))
	}

	if len(fields) > 0 {
		l = l.With(fields...)
	}
	return l
}

// WithRun creates a logger carrying the run ID field
func WithRun(logger *zap.Logger, runID string) *zap.Logger {
	if logger == nil {
		logger = Logger
	}
	return logger.With(zap.String("run_id", runID))
}
