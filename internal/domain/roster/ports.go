package roster

import (
	"context"
	"errors"
)

// ErrSpeciesNotFound is returned by a Source when the remote has no such species.
var ErrSpeciesNotFound = errors.New("species not found")

// Source resolves species from the remote data service.
type Source interface {
	ListSpecies(ctx context.Context, limit, offset int) (Page, error)
	FetchSpecies(ctx context.Context, ref SpeciesRef) (Species, error)
	LookupSpecies(ctx context.Context, nameOrID string) (Species, error)
}

// Store persists the serialized cache envelope under a single key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, payload []byte) error
}
