package knowledge

import (
	"log/slog"
	"slices"
	"sync"
	"time"
)

// Registry is the process-wide catalog of knowledge sources. Reads take a
// shared lock and return copies; writes are serialized so concurrent
// updates cannot lose LastUpdated stamps. Sources are never deleted at
// runtime, only added or updated.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]Source
	order   []string
	logger  *slog.Logger
	now     func() time.Time
}

// NewRegistry creates a Registry seeded with the given sources.
// Duplicate ids keep the first occurrence.
func NewRegistry(sources []Source, logger *slog.Logger) *Registry {
	r := &Registry{
		sources: make(map[string]Source, len(sources)),
		order:   make([]string, 0, len(sources)),
		logger:  logger.With("system", "knowledge"),
		now:     time.Now,
	}

	for _, s := range sources {
		if _, exists := r.sources[s.ID]; exists {
			r.logger.Warn("duplicate knowledge source id in seed, skipping", "id", s.ID)
			continue
		}
		r.sources[s.ID] = s
		r.order = append(r.order, s.ID)
	}

	return r
}

// Snapshot returns copies of all registered sources in seed order.
func (r *Registry) Snapshot() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Source, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.sources[id])
	}
	return out
}

// Active returns copies of all active sources in seed order.
func (r *Registry) Active() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Source, 0, len(r.order))
	for _, id := range r.order {
		if s := r.sources[id]; s.Active {
			out = append(out, s)
		}
	}
	return out
}

// Get returns the source with the given id, or false if not registered.
func (r *Registry) Get(id string) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sources[id]
	return s, ok
}

// Add registers a new source. Returns ErrDuplicateSource if the id exists.
func (r *Registry) Add(s Source) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[s.ID]; exists {
		return ErrDuplicateSource
	}

	s.LastUpdated = r.now()
	r.sources[s.ID] = s
	r.order = append(r.order, s.ID)

	r.logger.Info("knowledge source added", "id", s.ID, "name", s.Name)
	return nil
}

// Update applies a partial patch to a registered source and stamps
// LastUpdated. Returns false if the id is unknown.
func (r *Registry) Update(id string, patch Patch) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sources[id]
	if !ok {
		return false
	}

	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Description != nil {
		s.Description = *patch.Description
	}
	if patch.Category != nil {
		s.Category = *patch.Category
	}
	if patch.DocumentCount != nil {
		s.DocumentCount = *patch.DocumentCount
	}
	if patch.Active != nil {
		s.Active = *patch.Active
	}
	if patch.Tags != nil {
		s.Tags = slices.Clone(patch.Tags)
	}

	s.LastUpdated = r.now()
	r.sources[id] = s

	r.logger.Info("knowledge source updated", "id", id)
	return true
}
