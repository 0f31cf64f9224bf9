package knowledge

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// seedFile is the TOML shape of an external knowledge source seed.
type seedFile struct {
	Sources []Source `toml:"sources"`
}

// LoadSeed reads knowledge sources from a TOML seed file. When path is
// empty, the built-in default catalog is returned.
func LoadSeed(path string) ([]Source, error) {
	if path == "" {
		return DefaultSources(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge seed: %w", err)
	}

	var seed seedFile
	if err := toml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse knowledge seed: %w", err)
	}

	if len(seed.Sources) == 0 {
		return nil, fmt.Errorf("knowledge seed %s contains no sources", path)
	}

	return seed.Sources, nil
}

// DefaultSources returns the built-in knowledge source catalog.
func DefaultSources() []Source {
	seeded := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	return []Source{
		{
			ID:            "regulatory_pharma",
			Name:          "Pharmaceutical Regulatory Library",
			Description:   "General pharmaceutical regulation: ANVISA resolutions, registration requirements, GMP guides.",
			Category:      CategoryRegulatory,
			DocumentCount: 1240,
			LastUpdated:   seeded,
			Active:        true,
			Tags:          []string{"anvisa", "gmp", "registration"},
		},
		{
			ID:            "international_guidelines",
			Name:          "International Guidelines (ICH/FDA/EMA)",
			Description:   "Harmonized international guidance: ICH quality and safety series, FDA guidance documents, EMA scientific guidelines.",
			Category:      CategoryRegulatory,
			DocumentCount: 860,
			LastUpdated:   seeded,
			Active:        true,
			Tags:          []string{"ich", "fda", "ema"},
		},
		{
			ID:            "anvisa_resolutions",
			Name:          "ANVISA Resolutions (RDC)",
			Description:   "Brazilian sanitary agency resolutions and normative instructions, indexed by therapeutic area.",
			Category:      CategoryRegulatory,
			DocumentCount: 540,
			LastUpdated:   seeded,
			Active:        true,
			Tags:          []string{"anvisa", "rdc", "brazil"},
		},
		{
			ID:            "formulation_science",
			Name:          "Formulation Science Collection",
			Description:   "Preformulation, excipient compatibility, dosage form design, and stability study references.",
			Category:      CategoryTechnical,
			DocumentCount: 705,
			LastUpdated:   seeded,
			Active:        true,
			Tags:          []string{"formulation", "excipients", "stability"},
		},
		{
			ID:            "veterinary_regulatory",
			Name:          "Veterinary Regulatory (MAPA)",
			Description:   "Veterinary product registration, MAPA normative acts, and target species safety data.",
			Category:      CategoryVeterinary,
			DocumentCount: 410,
			LastUpdated:   seeded,
			Active:        true,
			Tags:          []string{"mapa", "veterinary"},
		},
		{
			ID:            "supplement_regulations",
			Name:          "Supplement Regulations",
			Description:   "Food supplement composition limits, labeling rules, and permitted claims.",
			Category:      CategorySupplements,
			DocumentCount: 330,
			LastUpdated:   seeded,
			Active:        true,
			Tags:          []string{"supplements", "labeling", "claims"},
		},
		{
			ID:            "lyophilization_tech",
			Name:          "Lyophilization Technology",
			Description:   "Freeze-drying cycle development, scale-up, and cryoprotectant formulation references.",
			Category:      CategoryProcess,
			DocumentCount: 275,
			LastUpdated:   seeded,
			Active:        true,
			Tags:          []string{"lyophilization", "freeze-drying"},
		},
		{
			ID:            "analytical_methods",
			Name:          "Analytical Methods Library",
			Description:   "Chromatographic and spectroscopic method development, validation protocols, and transfer packages.",
			Category:      CategoryTechnical,
			DocumentCount: 620,
			LastUpdated:   seeded,
			Active:        true,
			Tags:          []string{"analytical", "validation", "hplc"},
		},
	}
}
