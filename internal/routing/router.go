package routing

import (
	"fmt"
	"log/slog"

	"github.com/inovapharm/consilium/analysis"
	"github.com/inovapharm/consilium/internal/knowledge"
)

// Router selects knowledge source bundles against a registry.
type Router struct {
	registry *knowledge.Registry
	logger   *slog.Logger
}

// New creates a Router bound to the given registry.
func New(registry *knowledge.Registry, logger *slog.Logger) *Router {
	return &Router{
		registry: registry,
		logger:   logger.With("system", "routing"),
	}
}

// Route builds the knowledge bundle for a classification and an optional
// analysis type. Selection runs in three passes (primary anchors,
// complementary per detected element, analysis-type additions), then
// candidates are deduplicated by id (first occurrence wins) and filtered
// to active, resolvable sources. Routing the same inputs against the same
// registry state always yields the same bundle.
func (r *Router) Route(c analysis.Classification, analysisType string) *Bundle {
	candidates := r.candidateIDs(c, analysisType)
	sources := r.resolve(candidates)

	bundle := &Bundle{
		Sources:         sources,
		CrossReferences: crossReferences(c.Type, sources),
	}

	for _, s := range sources {
		bundle.TotalDocumentCount += s.DocumentCount
	}
	bundle.EstimatedProcessingSeconds = len(sources)*perSourceSeconds +
		clientDocSeconds + specializedRunSeconds

	r.logger.Info(
		"knowledge bundle routed",
		"type", c.Type,
		"analysis_type", analysisType,
		"sources", len(bundle.Sources),
		"documents", bundle.TotalDocumentCount,
	)

	return bundle
}

// candidateIDs collects source ids in selection order, duplicates included.
func (r *Router) candidateIDs(c analysis.Classification, analysisType string) []string {
	ids := make([]string, 0, 8)

	// primary anchors by document type
	ids = append(ids, primarySources[c.Type]...)
	if c.Type == analysis.TypeRegulatory && c.Subtype != "" {
		if id, ok := regulatorySubtypeSources[c.Subtype]; ok {
			ids = append(ids, id)
		}
	}

	// complementary selection per detected element, independent of winner
	for _, es := range complementarySources {
		if es.flagged(c.Elements) {
			ids = append(ids, es.id)
		}
	}

	// analysis-specific additions
	if analysisType != "" {
		ids = append(ids, analysisTypeSources[analysisType]...)
	}

	return ids
}

// resolve deduplicates candidate ids (first occurrence wins) and drops
// inactive or unregistered sources.
func (r *Router) resolve(ids []string) []knowledge.Source {
	seen := make(map[string]bool, len(ids))
	sources := make([]knowledge.Source, 0, len(ids))

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		s, ok := r.registry.Get(id)
		if !ok {
			r.logger.Warn("routing table references unknown source", "id", id)
			continue
		}
		if !s.Active {
			continue
		}

		sources = append(sources, s)
	}

	return sources
}

// crossReferences appends the fixed per-type hints plus one hint per
// selected regulatory-category source, deduplicated in order.
func crossReferences(docType analysis.DocumentType, sources []knowledge.Source) []string {
	hints := make([]string, 0, 4)
	seen := make(map[string]bool)

	add := func(hint string) {
		if !seen[hint] {
			seen[hint] = true
			hints = append(hints, hint)
		}
	}

	for _, hint := range typeCrossReferences[docType] {
		add(hint)
	}

	for _, s := range sources {
		if s.Category == knowledge.CategoryRegulatory {
			add(fmt.Sprintf("Cross-reference findings against %s", s.Name))
		}
	}

	return hints
}
