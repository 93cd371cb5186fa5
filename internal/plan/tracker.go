package plan

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// StorageKey is the fixed key the persisted override record lives under.
const StorageKey = "analytics.personal.planTargets.v1"

// Store is the persistence capability injected into the tracker: a fallible
// key→JSON read/write pair. Load returns (nil, nil) when the key is absent.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
}

// Tracker owns the merged target set for the session. It is the only stateful
// component of the derivation engine: reads and the commit path are guarded
// so no caller ever observes a half-updated bucket.
//
// When editable is false (viewing someone else's analytics) the stored
// override is never consulted and targets always recompute from facts, so one
// person's plan cannot leak into another's read-only view.
type Tracker struct {
	store    Store
	editable bool
	log      zerolog.Logger

	mu       sync.RWMutex
	defaults Targets
	targets  Targets
}

// NewTracker builds a tracker seeded from current facts. The persisted
// override is loaded immediately; read faults and malformed payloads fall
// back silently to the computed defaults.
func NewTracker(ctx context.Context, store Store, editable bool, facts Facts, log zerolog.Logger) *Tracker {
	t := &Tracker{
		store:    store,
		editable: editable,
		log:      log,
	}
	defaults := DefaultTargets(facts)
	t.defaults = defaults
	t.targets = Merge(defaults, t.loadStored(ctx))
	return t
}

// Sync recomputes defaults from fresh facts and re-applies the stored
// override on top, mirroring the tracker's initialization.
func (t *Tracker) Sync(ctx context.Context, facts Facts) {
	defaults := DefaultTargets(facts)
	stored := t.loadStored(ctx)

	t.mu.Lock()
	t.defaults = defaults
	t.targets = Merge(defaults, stored)
	t.mu.Unlock()
}

// Targets returns the current merged target set.
func (t *Tracker) Targets() Targets {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.targets
}

// Defaults returns the fact-derived targets without any override applied.
func (t *Tracker) Defaults() Targets {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.defaults
}

// Editable reports whether commits are allowed in this context.
func (t *Tracker) Editable() bool {
	return t.editable
}

// Commit normalizes an edited target set, installs it atomically and writes
// it through to storage. A write fault keeps the in-memory update and is
// logged, never surfaced. Commits in a read-only context are ignored.
func (t *Tracker) Commit(ctx context.Context, edited Targets) Targets {
	if !t.editable {
		return t.Targets()
	}
	next := Normalize(edited)

	t.mu.Lock()
	t.targets = next
	t.mu.Unlock()

	if t.store == nil {
		return next
	}
	payload, err := json.Marshal(next)
	if err != nil {
		t.log.Error().Err(err).Msg("encode plan targets")
		return next
	}
	if err := t.store.Save(ctx, StorageKey, payload); err != nil {
		t.log.Warn().Err(err).Msg("persist plan targets")
	}
	return next
}

func (t *Tracker) loadStored(ctx context.Context) *StoredTargets {
	if !t.editable || t.store == nil {
		return nil
	}
	raw, err := t.store.Load(ctx, StorageKey)
	if err != nil {
		t.log.Warn().Err(err).Msg("load plan targets")
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	var stored StoredTargets
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.log.Warn().Err(err).Msg("decode plan targets, using defaults")
		return nil
	}
	return &stored
}
