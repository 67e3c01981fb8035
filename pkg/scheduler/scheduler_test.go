package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storewatch/pkg/config"
	"storewatch/pkg/logger"
	"storewatch/pkg/stock"
)

func init() {
	_ = logger.InitLogger(true, "", "error")
}

type fakeRunner struct {
	runs   int
	result *stock.RunResult
	err    error
}

func (f *fakeRunner) Run(ctx context.Context) (*stock.RunResult, error) {
	f.runs++
	return f.result, f.err
}

func testConfig(jobs ...config.ScheduledJob) *config.Config {
	return &config.Config{
		Scheduler: &config.SchedulerConfig{
			Enabled: true,
			Jobs:    jobs,
		},
	}
}

func TestConfiguredJobsAreLoaded(t *testing.T) {
	cfg := testConfig(
		config.ScheduledJob{Name: "morning_check", Cron: "0 9 * * *"},
		config.ScheduledJob{Name: "evening_check", Cron: "0 18 * * *"},
	)

	cs, err := NewCheckScheduler(context.Background(), cfg, &fakeRunner{})
	if err != nil {
		t.Fatalf("NewCheckScheduler failed: %v", err)
	}

	jobs := cs.GetJobs()
	if len(jobs) != 2 {
		t.Fatalf("Expected 2 jobs, got %d", len(jobs))
	}
	for _, job := range jobs {
		if job.ID == "" {
			t.Error("Job ID should be assigned")
		}
		if job.Status != JobStatusScheduled {
			t.Errorf("Job %s status = %s, want %s", job.Name, job.Status, JobStatusScheduled)
		}
		if job.NextRun.IsZero() {
			t.Errorf("Job %s has no next run time", job.Name)
		}
	}
}

func TestDefaultScheduleWhenNoJobsConfigured(t *testing.T) {
	cs, err := NewCheckScheduler(context.Background(), testConfig(), &fakeRunner{})
	if err != nil {
		t.Fatalf("NewCheckScheduler failed: %v", err)
	}

	jobs := cs.GetJobs()
	if len(jobs) != 1 {
		t.Fatalf("Expected 1 default job, got %d", len(jobs))
	}
	if jobs[0].Cron != defaultCron {
		t.Errorf("Default cron = %s, want %s", jobs[0].Cron, defaultCron)
	}
}

func TestAddJobRejectsInvalidCron(t *testing.T) {
	cs, err := NewCheckScheduler(context.Background(), testConfig(config.ScheduledJob{Name: "ok", Cron: "* * * * *"}), &fakeRunner{})
	if err != nil {
		t.Fatalf("NewCheckScheduler failed: %v", err)
	}

	if err := cs.AddJob(&ScheduledJob{Name: "broken", Cron: "not a cron"}); err == nil {
		t.Error("Expected an error for an invalid cron expression")
	}
}

func TestRemoveJob(t *testing.T) {
	cs, err := NewCheckScheduler(context.Background(), testConfig(config.ScheduledJob{Name: "check", Cron: "* * * * *"}), &fakeRunner{})
	if err != nil {
		t.Fatalf("NewCheckScheduler failed: %v", err)
	}

	jobs := cs.GetJobs()
	if err := cs.RemoveJob(jobs[0].ID); err != nil {
		t.Fatalf("RemoveJob failed: %v", err)
	}
	if len(cs.GetJobs()) != 0 {
		t.Error("Job should be gone after removal")
	}

	if err := cs.RemoveJob("missing"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("Expected ErrJobNotFound, got %v", err)
	}
}

func TestRunNowRecordsLastResult(t *testing.T) {
	runner := &fakeRunner{result: &stock.RunResult{RunID: "abc", EventsProduced: 3}}
	cs, err := NewCheckScheduler(context.Background(), testConfig(config.ScheduledJob{Name: "check", Cron: "* * * * *"}), runner)
	if err != nil {
		t.Fatalf("NewCheckScheduler failed: %v", err)
	}

	if cs.LastResult() != nil {
		t.Fatal("LastResult should be nil before any run")
	}

	result, err := cs.RunNow(context.Background())
	if err != nil {
		t.Fatalf("RunNow failed: %v", err)
	}
	if runner.runs != 1 {
		t.Errorf("Expected 1 run, got %d", runner.runs)
	}
	if got := cs.LastResult(); got == nil || got.RunID != result.RunID {
		t.Errorf("LastResult = %+v, want the run just completed", got)
	}
}

// overlapDetectingRunner reports whether two runs ever executed at once
type overlapDetectingRunner struct {
	inFlight   atomic.Int32
	overlapped atomic.Bool
	runs       atomic.Int32
}

func (o *overlapDetectingRunner) Run(ctx context.Context) (*stock.RunResult, error) {
	if o.inFlight.Add(1) > 1 {
		o.overlapped.Store(true)
	}
	time.Sleep(5 * time.Millisecond)
	o.inFlight.Add(-1)
	o.runs.Add(1)
	return &stock.RunResult{RunID: "r"}, nil
}

func TestRunsNeverOverlap(t *testing.T) {
	// The checker and its notification sink aggregate per run, so checks
	// triggered concurrently must execute one at a time
	runner := &overlapDetectingRunner{}
	cs, err := NewCheckScheduler(context.Background(), testConfig(config.ScheduledJob{Name: "check", Cron: "* * * * *"}), runner)
	if err != nil {
		t.Fatalf("NewCheckScheduler failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cs.RunNow(context.Background()); err != nil {
				t.Errorf("RunNow failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if runner.overlapped.Load() {
		t.Error("Two checks ran at the same time")
	}
	if got := runner.runs.Load(); got != 8 {
		t.Errorf("Expected 8 completed runs, got %d", got)
	}
}

func TestConcurrentJobListing(t *testing.T) {
	// GetJobs refreshes next-run times in place; concurrent listings must
	// not race on the job fields
	cs, err := NewCheckScheduler(context.Background(), testConfig(
		config.ScheduledJob{Name: "a", Cron: "* * * * *"},
		config.ScheduledJob{Name: "b", Cron: "0 9 * * *"},
	), &fakeRunner{})
	if err != nil {
		t.Fatalf("NewCheckScheduler failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if jobs := cs.GetJobs(); len(jobs) != 2 {
					t.Errorf("Expected 2 jobs, got %d", len(jobs))
				}
			}
		}()
	}
	wg.Wait()
}

func TestRunNowKeepsResultOnError(t *testing.T) {
	runner := &fakeRunner{
		result: &stock.RunResult{RunID: "partial"},
		err:    errors.New("notify failed"),
	}
	cs, err := NewCheckScheduler(context.Background(), testConfig(config.ScheduledJob{Name: "check", Cron: "* * * * *"}), runner)
	if err != nil {
		t.Fatalf("NewCheckScheduler failed: %v", err)
	}

	if _, err := cs.RunNow(context.Background()); err == nil {
		t.Fatal("Expected the runner error to propagate")
	}
	if got := cs.LastResult(); got == nil || got.RunID != "partial" {
		t.Errorf("Partial result should still be recorded, got %+v", got)
	}
}
