package roster

const (
	// DefaultCacheKey is the store key the roster envelope lives under.
	DefaultCacheKey = "pikacalc_pokemon_cache"
	// DefaultInitialLimit is the size of the fast first page.
	DefaultInitialLimit = 150
)

// Config holds runtime knobs for the roster service.
type Config struct {
	CacheKey     string
	InitialLimit int
}
