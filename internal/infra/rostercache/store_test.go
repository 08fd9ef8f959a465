package rostercache

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/pikacalc/internal/domain/roster"
	"github.com/yanqian/pikacalc/internal/domain/stats"
	"github.com/yanqian/pikacalc/internal/domain/typechart"
)

// exerciseStore checks the behaviour every backend shares.
func exerciseStore(t *testing.T, store roster.Store) {
	t.Helper()
	ctx := context.Background()
	key := "pikacalc_test_" + time.Now().Format("150405.000000000")

	_, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Put(ctx, key, []byte(`{"version":"v1"}`)))
	require.NoError(t, store.Put(ctx, key, []byte(`{"version":"v2"}`)))

	got, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"version":"v2"}`, string(got))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStoreCopiesPayload(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	payload := []byte("abc")
	require.NoError(t, store.Put(ctx, "k", payload))
	payload[0] = 'z'

	got, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(got))
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	exerciseStore(t, store)

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStoreSanitizesKey(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), "../escape/key", []byte("x")))

	_, err = os.Stat(filepath.Join(dir, "___escape_key.json"))
	require.NoError(t, err)
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "pikacalc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	exerciseStore(t, store)
}

func TestSQLiteStoreBacksRosterService(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pikacalc.db")
	store, err := OpenSQLite(path)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	src := &fixedSource{species: []roster.Species{
		{ID: 25, Name: "Pikachu", Types: []typechart.Type{typechart.Electric}, BaseStats: stats.Stats{HP: 35, Attack: 55, Defense: 40, SpecialAttack: 50, SpecialDefense: 50, Speed: 90}},
		{ID: 26, Name: "Raichu", Types: []typechart.Type{typechart.Electric}, BaseStats: stats.Stats{HP: 60, Attack: 90, Defense: 55, SpecialAttack: 90, SpecialDefense: 80, Speed: 110}},
	}}
	list, err := roster.NewService(roster.Config{}, src, store, logger).Initial(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })
	cached := roster.NewService(roster.Config{}, src, reopened, logger).Cached(context.Background())
	require.Equal(t, list, cached)
}

func TestValkeyStore(t *testing.T) {
	addr := os.Getenv("PIKACALC_TEST_VALKEY_ADDR")
	if addr == "" {
		t.Skip("PIKACALC_TEST_VALKEY_ADDR not set")
	}
	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	require.NoError(t, err)
	t.Cleanup(client.Close)
	exerciseStore(t, NewValkeyStore(client, "pikacalc-test"))
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("PIKACALC_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PIKACALC_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	require.NoError(t, RunMigrations(ctx, dsn))
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	exerciseStore(t, NewPostgresStore(pool))
}

func TestObjectStore(t *testing.T) {
	endpoint := os.Getenv("PIKACALC_TEST_S3_ENDPOINT")
	if endpoint == "" {
		t.Skip("PIKACALC_TEST_S3_ENDPOINT not set")
	}
	store, err := NewObjectStore(endpoint,
		os.Getenv("PIKACALC_TEST_S3_ACCESS_KEY"),
		os.Getenv("PIKACALC_TEST_S3_SECRET_KEY"),
		"pikacalc-test", "us-east-1", nil)
	require.NoError(t, err)
	require.NoError(t, store.EnsureBucket(context.Background()))
	exerciseStore(t, store)
}

func TestSanitizeEndpoint(t *testing.T) {
	require.Equal(t, "abc.r2.cloudflarestorage.com", sanitizeEndpoint("https://abc.r2.cloudflarestorage.com/bucket"))
	require.Equal(t, "localhost:9000", sanitizeEndpoint(" http://localhost:9000 "))
}

type fixedSource struct {
	species []roster.Species
}

func (f *fixedSource) ListSpecies(_ context.Context, limit, offset int) (roster.Page, error) {
	page := roster.Page{Count: len(f.species)}
	for i := offset; i < len(f.species) && i < offset+limit; i++ {
		page.Results = append(page.Results, roster.SpeciesRef{Name: f.species[i].Name})
	}
	return page, nil
}

func (f *fixedSource) FetchSpecies(ctx context.Context, ref roster.SpeciesRef) (roster.Species, error) {
	return f.LookupSpecies(ctx, ref.Name)
}

func (f *fixedSource) LookupSpecies(_ context.Context, nameOrID string) (roster.Species, error) {
	for _, sp := range f.species {
		if sp.Name == nameOrID {
			return sp, nil
		}
	}
	return roster.Species{}, roster.ErrSpeciesNotFound
}
