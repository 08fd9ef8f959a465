package roster

import (
	"github.com/go-playground/validator/v10"

	"github.com/yanqian/pikacalc/internal/domain/stats"
	"github.com/yanqian/pikacalc/internal/domain/typechart"
	"github.com/yanqian/pikacalc/pkg/metrics"
)

const (
	// CacheSchemaVersion tags every cache envelope. A stored envelope with any other tag is ignored.
	CacheSchemaVersion = "v3"
	// UniverseSize bounds a full roster load.
	UniverseSize = 1025
	// BatchSize is the number of detail fetches in flight at once.
	BatchSize = 20
	// NoDescription replaces an ability description that could not be resolved.
	NoDescription = "No description available"
)

// Species is one resolved roster entry.
type Species struct {
	ID        int              `json:"id" validate:"gte=1"`
	Name      string           `json:"name" validate:"required"`
	Sprite    string           `json:"sprite"`
	Types     []typechart.Type `json:"types" validate:"min=1,max=2,dive,required"`
	BaseStats stats.Stats      `json:"baseStats"`
	Abilities []Ability        `json:"abilities,omitempty"`
	Height    int              `json:"height,omitempty"`
	Weight    int              `json:"weight,omitempty"`
}

// Ability is a non-hidden ability with its resolved description.
type Ability struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var validate = validator.New()

// Validate checks the structural rules a resolved record must satisfy.
func (s Species) Validate() error {
	return validate.Struct(s)
}

// SpeciesRef is a summary pointer from the listing endpoint.
type SpeciesRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Page is one listing response.
type Page struct {
	Count   int          `json:"count"`
	Results []SpeciesRef `json:"results"`
}

// Snapshot is the accumulated roster after one batch of a background load.
type Snapshot struct {
	Species []Species          `json:"pokemon"`
	Batch   int                `json:"batch"`
	Batches int                `json:"batches"`
	Cached  bool               `json:"cached"`
	Usage   metrics.FetchUsage `json:"usage"`
}

// Final reports whether no further snapshots follow.
func (s Snapshot) Final() bool {
	return s.Batch >= s.Batches
}
