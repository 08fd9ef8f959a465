package roster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yanqian/pikacalc/internal/domain/stats"
	"github.com/yanqian/pikacalc/internal/domain/typechart"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func makeSpecies(id int) Species {
	types := []typechart.Type{typechart.Grass}
	if id%2 == 0 {
		types = []typechart.Type{typechart.Fire, typechart.Flying}
	}
	return Species{
		ID:        id,
		Name:      FormatName(fmt.Sprintf("species-%d", id)),
		Sprite:    fmt.Sprintf("https://img.example/%d.png", id),
		Types:     types,
		BaseStats: stats.Uniform(50 + id%50),
		Abilities: []Ability{{Name: "Overgrow", Description: "Boosts grass moves."}},
		Height:    7,
		Weight:    69,
	}
}

type stubSource struct {
	universe  []Species
	listErr   error
	failNames map[string]bool

	mu        sync.Mutex
	listCalls [][2]int

	fetches     atomic.Int64
	inflight    atomic.Int64
	maxInflight atomic.Int64
}

func newStubSource(n int) *stubSource {
	src := &stubSource{failNames: map[string]bool{}}
	for id := 1; id <= n; id++ {
		src.universe = append(src.universe, makeSpecies(id))
	}
	return src
}

func refName(id int) string { return fmt.Sprintf("species-%d", id) }

func (s *stubSource) ListSpecies(_ context.Context, limit, offset int) (Page, error) {
	s.mu.Lock()
	s.listCalls = append(s.listCalls, [2]int{limit, offset})
	s.mu.Unlock()
	if s.listErr != nil {
		return Page{}, s.listErr
	}
	page := Page{Count: len(s.universe)}
	for i := offset; i < len(s.universe) && i < offset+limit; i++ {
		id := s.universe[i].ID
		page.Results = append(page.Results, SpeciesRef{Name: refName(id), URL: fmt.Sprintf("https://api.example/pokemon/%d/", id)})
	}
	return page, nil
}

func (s *stubSource) FetchSpecies(_ context.Context, ref SpeciesRef) (Species, error) {
	s.fetches.Add(1)
	cur := s.inflight.Add(1)
	defer s.inflight.Add(-1)
	for {
		prev := s.maxInflight.Load()
		if cur <= prev || s.maxInflight.CompareAndSwap(prev, cur) {
			break
		}
	}
	time.Sleep(time.Millisecond)

	if s.failNames[ref.Name] {
		return Species{}, errors.New("boom")
	}
	for _, sp := range s.universe {
		if refName(sp.ID) == ref.Name {
			return sp.clone(), nil
		}
	}
	return Species{}, ErrSpeciesNotFound
}

func (s *stubSource) LookupSpecies(ctx context.Context, nameOrID string) (Species, error) {
	for _, sp := range s.universe {
		if refName(sp.ID) == nameOrID || fmt.Sprint(sp.ID) == nameOrID || slugOf(sp.Name) == nameOrID {
			return sp.clone(), nil
		}
	}
	return Species{}, fmt.Errorf("lookup %s: %w", nameOrID, ErrSpeciesNotFound)
}

func (s *stubSource) listCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listCalls)
}

type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  error
	putErr  error
	putHits int
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Put(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.putHits++
	m.data[key] = append([]byte(nil), payload...)
	return nil
}
