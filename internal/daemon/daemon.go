package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/pocketpaws/paws/internal/api"
	"github.com/pocketpaws/paws/internal/app/progression"
	"github.com/pocketpaws/paws/internal/domain"
	"github.com/pocketpaws/paws/internal/infra/metrics"
	"github.com/pocketpaws/paws/internal/infra/store"
)

// Daemon is the core Paws runtime. It wires together all services.
type Daemon struct {
	Config Config
	Store  *store.Store
	Bus    *progression.Bus
	Server *api.Server
	cancel context.CancelFunc

	Profile   *progression.ProfileStore
	Streak    *progression.StreakTracker
	Quests    *progression.QuestEngine
	Badges    *progression.BadgeEvaluator
	Attention *progression.AttentionGate
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	s, err := store.Open(pawsHome())
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	cal := domain.DefaultCalendar()
	if cfg.Streak.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Streak.Timezone)
		if err != nil {
			log.Printf("[daemon] unknown timezone %q, using UTC", cfg.Streak.Timezone)
		} else {
			cal = domain.NewCalendar(loc)
		}
	}

	table := progression.DefaultXPTable()
	if len(cfg.Leveling.Steps) > 0 {
		table = progression.XPTable{Steps: cfg.Leveling.Steps, Increment: cfg.Leveling.Increment}
		if table.Increment <= 0 {
			table.Increment = table.Steps[len(table.Steps)-1]
		}
	}

	bus := progression.NewBus()
	d := &Daemon{
		Config: cfg,
		Store:  s,
		Bus:    bus,
	}
	d.Profile = progression.NewProfileStore(s, table, bus)
	d.Streak = progression.NewStreakTracker(s, cal, bus)
	d.Quests = progression.NewQuestEngine(s, d.Streak, d.Profile, bus, progression.QuestConfig{
		AdvanceDelay: cfg.Quests.AdvanceDelayDuration(),
	})
	d.Badges = progression.NewBadgeEvaluator(s, bus)
	d.Attention = progression.NewAttentionGate(s, progression.DefaultAttentionPolicy())

	d.wireMetrics()

	d.Server = api.NewServer(d.Profile, d.Streak, d.Quests, d.Badges, d.Attention)
	d.Server.SetResetAll(d.ResetAll)
	if cfg.Telemetry.Prometheus {
		d.Server.EnableMetrics()
	}

	return d, nil
}

// wireMetrics subscribes the Prometheus instruments to the event bus.
// Handlers only read their payloads — they never call back into the
// publishing component.
func (d *Daemon) wireMetrics() {
	metrics.CurrentBatch.Set(float64(d.Quests.CurrentBatch()))
	metrics.CurrentLevel.Set(float64(d.Profile.Profile().Level))
	rec := d.Streak.Record()
	metrics.CurrentStreak.Set(float64(rec.Current))
	metrics.LongestStreak.Set(float64(rec.Longest))

	d.Bus.Subscribe(progression.EventQuestCompleted, func(ev progression.Event) {
		p := ev.Payload.(progression.QuestCompleted)
		metrics.QuestsCompleted.WithLabelValues(strconv.Itoa(p.Batch)).Inc()
	})
	d.Bus.Subscribe(progression.EventBatchAdvanced, func(ev progression.Event) {
		p := ev.Payload.(progression.BatchAdvanced)
		metrics.BatchesAdvanced.Inc()
		metrics.CurrentBatch.Set(float64(p.To))
	})
	d.Bus.Subscribe(progression.EventStreakUpdated, func(ev progression.Event) {
		p := ev.Payload.(progression.StreakUpdated)
		metrics.CurrentStreak.Set(float64(p.Current))
		metrics.LongestStreak.Set(float64(p.Longest))
	})
	d.Bus.Subscribe(progression.EventBadgeUnlocked, func(ev progression.Event) {
		p := ev.Payload.(progression.BadgeUnlocked)
		metrics.BadgesUnlocked.WithLabelValues(string(p.Category)).Inc()
	})
	d.Bus.Subscribe(progression.EventLevelUp, func(ev progression.Event) {
		p := ev.Payload.(progression.LevelUp)
		metrics.LevelUps.Inc()
		metrics.CurrentLevel.Set(float64(p.Level))
	})
}

// ResetAll wipes every piece of progression state: quests, streak, badges,
// profile, and the notification gate.
func (d *Daemon) ResetAll() error {
	if err := d.Quests.Reset(); err != nil {
		return fmt.Errorf("reset quests: %w", err)
	}
	if err := d.Streak.Reset(); err != nil {
		return fmt.Errorf("reset streak: %w", err)
	}
	if err := d.Badges.Reset(); err != nil {
		return fmt.Errorf("reset badges: %w", err)
	}
	if err := d.Profile.Reset(); err != nil {
		return fmt.Errorf("reset profile: %w", err)
	}
	if err := d.Attention.Reset(); err != nil {
		return fmt.Errorf("reset attention gate: %w", err)
	}
	return nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		d.Quests.Close()
		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.Store.Close()
	}()

	fmt.Printf("Paws serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.Quests != nil {
		d.Quests.Close()
	}
	if d.Store != nil {
		_ = d.Store.Close()
	}
}
