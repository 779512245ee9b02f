package progression

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pocketpaws/paws/internal/domain"
)

// ─── Event Types ────────────────────────────────────────────────────────────

// EventType names a progression event on the bus.
type EventType string

const (
	EventQuestCompleted EventType = "quest_completed"
	EventBatchAdvanced  EventType = "batch_advanced"
	EventBadgeUnlocked  EventType = "badge_unlocked"
	EventStreakUpdated  EventType = "streak_updated"
	EventLevelUp        EventType = "level_up"
)

// Event is a published progression event with a typed payload.
type Event struct {
	ID      string    `json:"id"`
	Type    EventType `json:"type"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload"`
}

// QuestCompleted is the payload for EventQuestCompleted.
type QuestCompleted struct {
	QuestID string `json:"quest_id"`
	Title   string `json:"title"`
	Batch   int    `json:"batch"`
}

// BatchAdvanced is the payload for EventBatchAdvanced.
type BatchAdvanced struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// BadgeUnlocked is the payload for EventBadgeUnlocked.
type BadgeUnlocked struct {
	BadgeID  string               `json:"badge_id"`
	Category domain.BadgeCategory `json:"category"`
}

// StreakUpdated is the payload for EventStreakUpdated.
type StreakUpdated struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// LevelUp is the payload for EventLevelUp.
type LevelUp struct {
	Level int `json:"level"`
}

// ─── Bus ────────────────────────────────────────────────────────────────────

// Handler receives published events.
type Handler func(Event)

// Bus is an in-process typed publish/subscribe channel. Subscribers are
// registered explicitly; dispatch is synchronous on the publisher's
// goroutine, matching the engine's single-writer model. Handlers may run
// while the publishing component holds its own lock, so they must not call
// back into it — work off the payload instead.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[EventType][]Handler)}
}

// Subscribe registers a handler for one event type. Nil handlers are ignored.
func (b *Bus) Subscribe(t EventType, h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// Publish dispatches an event to every subscriber of its type, in
// registration order.
func (b *Bus) Publish(t EventType, payload any) {
	b.mu.RLock()
	hs := make([]Handler, len(b.handlers[t]))
	copy(hs, b.handlers[t])
	b.mu.RUnlock()

	ev := Event{
		ID:      uuid.NewString(),
		Type:    t,
		At:      time.Now(),
		Payload: payload,
	}
	for _, h := range hs {
		h(ev)
	}
}
