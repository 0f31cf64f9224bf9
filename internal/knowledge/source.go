// Package knowledge implements the knowledge source catalog for Consilium.
// Sources are reference corpora (regulatory bodies, technical libraries)
// that routing attaches to analysis workspaces. The registry is loaded once
// at process start and mutated only through explicit updates.
package knowledge

import "time"

// Category groups knowledge sources by domain.
type Category string

// Knowledge source categories.
const (
	CategoryRegulatory  Category = "regulatory"
	CategoryTechnical   Category = "technical"
	CategoryVeterinary  Category = "veterinary"
	CategorySupplements Category = "supplements"
	CategoryProcess     Category = "process"
)

// Source is a named reference corpus available for analysis routing.
type Source struct {
	ID            string    `json:"id" toml:"id"`
	Name          string    `json:"name" toml:"name"`
	Description   string    `json:"description" toml:"description"`
	Category      Category  `json:"category" toml:"category"`
	DocumentCount int       `json:"document_count" toml:"document_count"`
	LastUpdated   time.Time `json:"last_updated" toml:"last_updated"`
	Active        bool      `json:"active" toml:"active"`
	Tags          []string  `json:"tags" toml:"tags"`
}

// Patch carries partial updates for a registered source. Nil fields are
// left unchanged; any applied patch refreshes LastUpdated.
type Patch struct {
	Name          *string   `json:"name,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Category      *Category `json:"category,omitempty"`
	DocumentCount *int      `json:"document_count,omitempty"`
	Active        *bool     `json:"active,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
}
