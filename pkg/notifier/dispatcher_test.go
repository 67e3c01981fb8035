package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"storewatch/pkg/config"
	"storewatch/pkg/logger"
	"storewatch/pkg/stock"
)

func init() {
	_ = logger.InitLogger(true, "", "error")
}

type fakeGroupChannel struct {
	calls  int
	groups []StoreGroup
	err    error
}

func (f *fakeGroupChannel) NotifyGroup(ctx context.Context, groups []StoreGroup) error {
	f.calls++
	f.groups = groups
	return f.err
}

type fakeIndividualChannel struct {
	mu           sync.Mutex
	stores       []string
	items        [][]string
	appointments int
	err          error
}

func (f *fakeIndividualChannel) NotifyStore(ctx context.Context, storeName string, items []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stores = append(f.stores, storeName)
	f.items = append(f.items, items)
	return f.err
}

func (f *fakeIndividualChannel) AlertAppointments(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appointments++
	return f.err
}

func event(store, sku, title string) stock.AvailabilityEvent {
	return stock.AvailabilityEvent{
		StoreName:    store,
		DisplayTitle: title,
		SKU:          sku,
		Link:         "https://www.apple.com/gb/shop/product/" + sku,
	}
}

func specialCase() *config.SpecialCaseRoute {
	return &config.SpecialCaseRoute{PartNumber: "MG8H4QN/A", StoreName: "Liverpool"}
}

func TestSpecialCaseRoutesToIndividualChannel(t *testing.T) {
	group := &fakeGroupChannel{}
	individual := &fakeIndividualChannel{}
	d := NewDispatcher(group, individual, specialCase())
	ctx := context.Background()

	// The special pair plus an ordinary part at the same store
	if err := d.Publish(ctx, event("Liverpool", "MG8H4QN/A", "Orange")); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if err := d.Publish(ctx, event("Liverpool", "MG8J4QN/A", "Blue")); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if err := d.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	// Individual channel invoked immediately, once
	if len(individual.stores) != 1 || individual.stores[0] != "Liverpool" {
		t.Fatalf("Expected one individual alert for Liverpool, got %v", individual.stores)
	}

	// The special SKU never appears in the group message even though the
	// same store contributed another part
	if group.calls != 1 {
		t.Fatalf("Expected one group message, got %d", group.calls)
	}
	for _, g := range group.groups {
		for _, item := range g.Items {
			if strings.Contains(item, "MG8H4QN/A") {
				t.Errorf("Special-case SKU leaked into the group message: %s", item)
			}
		}
	}
	if len(group.groups) != 1 || len(group.groups[0].Items) != 1 {
		t.Fatalf("Expected Liverpool's other part in the group, got %+v", group.groups)
	}
}

func TestGroupMessageGroupsByStoreInArrivalOrder(t *testing.T) {
	group := &fakeGroupChannel{}
	d := NewDispatcher(group, &fakeIndividualChannel{}, nil)
	ctx := context.Background()

	d.Publish(ctx, event("London", "MG8H4QN/A", "Orange"))
	d.Publish(ctx, event("Leeds", "MG8J4QN/A", "Blue"))
	d.Publish(ctx, event("London", "MG8K4QN/A", "Silver"))
	if err := d.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	if len(group.groups) != 2 {
		t.Fatalf("Expected 2 store groups, got %d", len(group.groups))
	}
	if group.groups[0].StoreName != "London" || len(group.groups[0].Items) != 2 {
		t.Errorf("Unexpected first group: %+v", group.groups[0])
	}
	if group.groups[1].StoreName != "Leeds" {
		t.Errorf("Unexpected second group: %+v", group.groups[1])
	}
}

func TestFlushWithoutEventsSendsNothing(t *testing.T) {
	group := &fakeGroupChannel{}
	d := NewDispatcher(group, &fakeIndividualChannel{}, nil)

	if err := d.Flush(context.Background()); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if group.calls != 0 {
		t.Errorf("Empty run must not send a group message, got %d calls", group.calls)
	}
}

func TestFlushResetsState(t *testing.T) {
	group := &fakeGroupChannel{}
	d := NewDispatcher(group, &fakeIndividualChannel{}, nil)
	ctx := context.Background()

	d.Publish(ctx, event("London", "MG8H4QN/A", "Orange"))
	d.Flush(ctx)
	d.Flush(ctx)

	if group.calls != 1 {
		t.Errorf("Second flush must be a no-op, got %d calls", group.calls)
	}
}

func TestTransportErrorsPropagate(t *testing.T) {
	wantErr := errors.New("channel down")

	d := NewDispatcher(&fakeGroupChannel{err: wantErr}, &fakeIndividualChannel{}, nil)
	ctx := context.Background()
	d.Publish(ctx, event("London", "MG8H4QN/A", "Orange"))
	if err := d.Flush(ctx); !errors.Is(err, wantErr) {
		t.Errorf("Group transport error must surface, got %v", err)
	}

	d = NewDispatcher(&fakeGroupChannel{}, &fakeIndividualChannel{err: wantErr}, specialCase())
	if err := d.Publish(ctx, event("Liverpool", "MG8H4QN/A", "Orange")); !errors.Is(err, wantErr) {
		t.Errorf("Individual transport error must surface, got %v", err)
	}
}

func TestRenderItemLine(t *testing.T) {
	line := renderItemLine(event("London", "MG8H4QN/A", "iPhone 17 Pro"))
	want := `<a href="https://www.apple.com/gb/shop/product/MG8H4QN/A">iPhone 17 Pro</a>`
	if line != want {
		t.Errorf("renderItemLine = %q, want %q", line, want)
	}
}

// countingGroupChannel tallies delivered items under its own lock so it can
// be shared across goroutines
type countingGroupChannel struct {
	mu      sync.Mutex
	calls   int
	items   int
	special int
}

func (c *countingGroupChannel) NotifyGroup(ctx context.Context, groups []StoreGroup) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	for _, g := range groups {
		c.items += len(g.Items)
		for _, item := range g.Items {
			if strings.Contains(item, "MG8H4QN/A") {
				c.special++
			}
		}
	}
	return nil
}

func TestConcurrentRunsShareOneDispatcher(t *testing.T) {
	// The server mode shares one dispatcher between the cron runner and
	// API-triggered checks; concurrent Publish/Flush must not lose events,
	// duplicate them, or leak the special-case SKU into a group message.
	group := &countingGroupChannel{}
	individual := &fakeIndividualChannel{}
	d := NewDispatcher(group, individual, specialCase())
	ctx := context.Background()

	const runs = 8
	const eventsPerRun = 5

	var wg sync.WaitGroup
	for r := 0; r < runs; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			for i := 0; i < eventsPerRun; i++ {
				store := fmt.Sprintf("Store %d-%d", r, i)
				if err := d.Publish(ctx, event(store, "MG8J4QN/A", "Blue")); err != nil {
					t.Errorf("Publish failed: %v", err)
				}
			}
			if err := d.Publish(ctx, event("Liverpool", "MG8H4QN/A", "Orange")); err != nil {
				t.Errorf("Publish failed: %v", err)
			}
			if err := d.Flush(ctx); err != nil {
				t.Errorf("Flush failed: %v", err)
			}
		}(r)
	}
	wg.Wait()

	if err := d.Flush(ctx); err != nil {
		t.Fatalf("Final flush failed: %v", err)
	}

	if group.items != runs*eventsPerRun {
		t.Errorf("Delivered %d group items, want %d", group.items, runs*eventsPerRun)
	}
	if group.special != 0 {
		t.Errorf("Special-case SKU leaked into %d group items", group.special)
	}
}

func TestAlertAppointmentsDelegates(t *testing.T) {
	individual := &fakeIndividualChannel{}
	d := NewDispatcher(&fakeGroupChannel{}, individual, nil)

	if err := d.AlertAppointments(context.Background()); err != nil {
		t.Fatalf("AlertAppointments failed: %v", err)
	}
	if individual.appointments != 1 {
		t.Errorf("Expected 1 appointment alert, got %d", individual.appointments)
	}
}
