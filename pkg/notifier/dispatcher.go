package notifier

import (
	"context"
	"fmt"
	"sync"

	"storewatch/pkg/config"
	"storewatch/pkg/logger"
	"storewatch/pkg/stock"

	"go.uber.org/zap"
)

// StoreGroup is one store's rendered item lines, in arrival order
type StoreGroup struct {
	StoreName string
	Items     []string
}

// GroupChannel delivers the combined once-per-run message
type GroupChannel interface {
	NotifyGroup(ctx context.Context, groups []StoreGroup) error
}

// IndividualChannel delivers immediate per-event alerts and the appointment
// summary
type IndividualChannel interface {
	NotifyStore(ctx context.Context, storeName string, items []string) error
	AlertAppointments(ctx context.Context) error
}

// Dispatcher groups availability events by store and routes them to the
// notification channels. The configured special-case (part, store) pair goes
// to the individual channel immediately; everything else accumulates for one
// combined group message per run. Transport failures are surfaced, never
// retried.
//
// Safe for concurrent use: the server mode shares one dispatcher between the
// cron runner and API-triggered checks.
type Dispatcher struct {
	group      GroupChannel
	individual IndividualChannel
	special    *config.SpecialCaseRoute

	mu     sync.Mutex
	groups map[string]*StoreGroup
	order  []string // store names in first-event order
}

// NewDispatcher creates a dispatcher routing to the given channels
func NewDispatcher(group GroupChannel, individual IndividualChannel, special *config.SpecialCaseRoute) *Dispatcher {
	return &Dispatcher{
		group:      group,
		individual: individual,
		special:    special,
		groups:     make(map[string]*StoreGroup),
	}
}

// Publish routes one availability event. Special-case events are delivered
// immediately, not batched.
func (d *Dispatcher) Publish(ctx context.Context, event stock.AvailabilityEvent) error {
	line := renderItemLine(event)

	if d.special.Matches(event.SKU, event.StoreName) {
		logger.Info("Routing special-case availability to the individual channel",
			zap.String("store", event.StoreName),
			zap.String("sku", event.SKU))
		return d.individual.NotifyStore(ctx, event.StoreName, []string{line})
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	group, ok := d.groups[event.StoreName]
	if !ok {
		group = &StoreGroup{StoreName: event.StoreName}
		d.groups[event.StoreName] = group
		d.order = append(d.order, event.StoreName)
	}
	group.Items = append(group.Items, line)
	return nil
}

// Flush sends the accumulated group message, if any, then resets the
// accumulation state for the next run. The snapshot is taken under the lock;
// the network send is not, so a slow transport never blocks Publish.
func (d *Dispatcher) Flush(ctx context.Context) error {
	d.mu.Lock()
	if len(d.order) == 0 {
		d.mu.Unlock()
		return nil
	}

	groups := make([]StoreGroup, 0, len(d.order))
	for _, storeName := range d.order {
		groups = append(groups, *d.groups[storeName])
	}

	d.groups = make(map[string]*StoreGroup)
	d.order = nil
	d.mu.Unlock()

	return d.group.NotifyGroup(ctx, groups)
}

// AlertAppointments forwards the appointment summary to the individual channel
func (d *Dispatcher) AlertAppointments(ctx context.Context) error {
	return d.individual.AlertAppointments(ctx)
}

// renderItemLine renders one event as an HTML anchor to the product page
func renderItemLine(event stock.AvailabilityEvent) string {
	return fmt.Sprintf(`<a href="%s">%s</a>`, event.Link, event.DisplayTitle)
}
