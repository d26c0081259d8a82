package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/edgard/riffbot/internal/bot/tasks"
	"github.com/edgard/riffbot/internal/chat"
	"github.com/edgard/riffbot/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakePlatform struct {
	failErr error
	// exitEarly makes Start return before ctx is cancelled.
	exitEarly bool
}

func (p *fakePlatform) Name() string { return "fake" }

func (p *fakePlatform) SendText(context.Context, string, string) error  { return nil }
func (p *fakePlatform) SendImage(context.Context, string, string) error { return nil }

func (p *fakePlatform) Start(ctx context.Context, handler chat.Handler) error {
	if p.failErr != nil {
		return p.failErr
	}
	handler(ctx, chat.Event{ID: "e1", Text: "hello"})
	if p.exitEarly {
		return nil
	}
	<-ctx.Done()
	return nil
}

func newTestScheduler(t *testing.T, cfg *config.SchedulerConfig, taskMap map[string]tasks.ScheduledTaskFunc) *Scheduler {
	t.Helper()
	s, err := NewScheduler(testLogger(), cfg, taskMap)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	return s
}

func TestBotRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	platform := &fakePlatform{}
	received := make(chan chat.Event, 1)
	handler := func(_ context.Context, e chat.Event) { received <- e }

	b := NewBot(testLogger(), platform, handler, newTestScheduler(t, &config.SchedulerConfig{}, nil), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	select {
	case e := <-received:
		if e.ID != "e1" {
			t.Errorf("handler got %+v", e)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("handler never called")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestBotRunPlatformFailure(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("invalid token")
	platform := &fakePlatform{failErr: wantErr}
	b := NewBot(testLogger(), platform, func(context.Context, chat.Event) {}, newTestScheduler(t, &config.SchedulerConfig{}, nil), nil)

	if err := b.Run(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("Run() error = %v, want %v", err, wantErr)
	}
}

func TestBotRunPlatformExitsUnexpectedly(t *testing.T) {
	t.Parallel()

	platform := &fakePlatform{exitEarly: true}
	b := NewBot(testLogger(), platform, func(context.Context, chat.Event) {}, newTestScheduler(t, &config.SchedulerConfig{}, nil), nil)

	if err := b.Run(context.Background()); err == nil {
		t.Error("Run() error = nil, want unexpected stop error")
	}
}

func TestSchedulerSchedulesEnabledTasks(t *testing.T) {
	t.Parallel()

	noop := func(context.Context) error { return nil }
	cfg := &config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"enabled":      {Enabled: true, Schedule: "0 0 * * * *"},
		"disabled":     {Enabled: false, Schedule: "0 0 * * * *"},
		"unregistered": {Enabled: true, Schedule: "0 0 * * * *"},
		"no_schedule":  {Enabled: true},
		"bad_schedule": {Enabled: true, Schedule: "not a cron"},
	}}
	taskMap := map[string]tasks.ScheduledTaskFunc{
		"enabled":      noop,
		"disabled":     noop,
		"no_schedule":  noop,
		"bad_schedule": noop,
	}

	s := newTestScheduler(t, cfg, taskMap)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Stop() })

	got := s.Jobs()
	sort.Strings(got)
	if len(got) != 1 || got[0] != "enabled" {
		t.Errorf("Jobs() = %v, want [enabled]", got)
	}

	if err := s.Start(); err == nil {
		t.Error("second Start() error = nil, want already running")
	}
}

func TestSchedulerStopWhenNotRunning(t *testing.T) {
	t.Parallel()

	s := newTestScheduler(t, nil, nil)
	if err := s.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}
