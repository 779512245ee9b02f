// Package progression implements the Paws progression engine: quest batches,
// the daily login streak, badge evaluation, and the XP/level model.
// All mutation is single-writer; each component guards itself with a mutex
// and rewrites its whole state blob on every effective change.
package progression

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketpaws/paws/internal/domain"
)

// Persisted blob keys. Each blob is an independent versioned JSON envelope.
const (
	keyCurrentBatch   = "quest.currentBatch"
	keyAllQuests      = "quest.allQuests"
	keyPendingRewards = "quest.pendingRewards"
	keyStreak         = "streak.data"
	keyBadges         = "badges.byCategory"
	keyProfile        = "profile.data"
	keyAttention      = "notify.lastAttention"
)

// schemaVersion tags every persisted blob so future field additions cannot
// silently corrupt old state: a version mismatch degrades to defaults.
const schemaVersion = 1

type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	Data          json.RawMessage `json:"data"`
}

// saveBlob marshals v into a versioned envelope and writes it whole.
func saveBlob(s domain.Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	raw, err := json.Marshal(envelope{SchemaVersion: schemaVersion, Data: data})
	if err != nil {
		return fmt.Errorf("marshal envelope %s: %w", key, err)
	}
	if err := s.Set(key, raw); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

// loadBlob decodes the blob at key into v. Returns false when the blob is
// absent, malformed, or carries a foreign schema version — callers fall back
// to fresh defaults; decode failures are never surfaced.
func loadBlob(s domain.Store, key string, v any) bool {
	raw, err := s.Get(key)
	if err != nil || raw == nil {
		return false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("[progression] %s: malformed blob, using defaults: %v", key, err)
		return false
	}
	if env.SchemaVersion != schemaVersion {
		log.Printf("[progression] %s: schema version %d (want %d), using defaults", key, env.SchemaVersion, schemaVersion)
		return false
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		log.Printf("[progression] %s: undecodable payload, using defaults: %v", key, err)
		return false
	}
	return true
}
