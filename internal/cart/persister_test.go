package cart

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tabletap/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPersister(t *testing.T) Persister {
	t.Helper()
	p, err := NewFilePersister(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return p
}

func validSnapshot() *model.CartSnapshot {
	table := "T3"
	return &model.CartSnapshot{
		Items: []model.CartItem{
			{ID: "a", Name: "Doro Wat", Price: decimal.NewFromFloat(12.50), Quantity: 2, Notes: "mild"},
			{ID: "b", Name: "Tej", Price: decimal.NewFromFloat(5.00), Quantity: 1, Station: model.StationBar},
		},
		RestaurantSlug: "addis-kitchen",
		TableNumber:    &table,
	}
}

func TestFilePersister_RoundTrip(t *testing.T) {
	ctx := context.Background()
	p := newTestPersister(t)

	snap := validSnapshot()
	require.NoError(t, p.Save(ctx, "session-1", snap))

	loaded, err := p.Load(ctx, "session-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, snap.RestaurantSlug, loaded.RestaurantSlug)
	require.NotNil(t, loaded.TableNumber)
	assert.Equal(t, *snap.TableNumber, *loaded.TableNumber)
	require.Len(t, loaded.Items, 2)
	assert.Equal(t, "a", loaded.Items[0].ID)
	assert.True(t, loaded.Items[0].Price.Equal(decimal.NewFromFloat(12.50)))
	assert.Equal(t, "mild", loaded.Items[0].Notes)
	assert.Equal(t, model.StationBar, loaded.Items[1].Station)
}

func TestFilePersister_MissingSnapshotIsNoCart(t *testing.T) {
	ctx := context.Background()
	p := newTestPersister(t)

	loaded, err := p.Load(ctx, "never-saved")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFilePersister_CorruptSnapshotIsNoCart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	p, err := NewFilePersister(dir, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "session-1.json"), []byte("{not json"), 0o644))

	loaded, err := p.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFilePersister_InvalidEntryRejectsWholeSnapshot(t *testing.T) {
	// A single schema violation yields "no saved cart", never a partially
	// populated one.
	ctx := context.Background()
	p := newTestPersister(t)

	snap := validSnapshot()
	snap.Items[1].Quantity = 0
	require.NoError(t, p.Save(ctx, "session-1", snap))

	loaded, err := p.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFilePersister_Delete(t *testing.T) {
	ctx := context.Background()
	p := newTestPersister(t)

	require.NoError(t, p.Save(ctx, "session-1", validSnapshot()))
	require.NoError(t, p.Delete(ctx, "session-1"))

	loaded, err := p.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Deleting a missing snapshot is a no-op.
	require.NoError(t, p.Delete(ctx, "session-1"))
}

func TestFilePersister_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	p := newTestPersister(t)

	first := validSnapshot()
	require.NoError(t, p.Save(ctx, "session-1", first))

	second := validSnapshot()
	second.Items = second.Items[:1]
	require.NoError(t, p.Save(ctx, "session-1", second))

	loaded, err := p.Load(ctx, "session-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Len(t, loaded.Items, 1)
}

func TestManager_SessionRestoresPersistedCart(t *testing.T) {
	ctx := context.Background()
	p := newTestPersister(t)
	require.NoError(t, p.Save(ctx, "session-1", validSnapshot()))

	m := NewManager(p, zerolog.Nop())

	store := m.Session(ctx, "session-1", "", nil)
	items := store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)

	// Same session id returns the same store.
	again := m.Session(ctx, "session-1", "", nil)
	assert.Same(t, store, again)
}

func TestManager_SessionStartsEmptyWithoutSnapshot(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newTestPersister(t), zerolog.Nop())

	store := m.Session(ctx, "fresh-session", "addis-kitchen", nil)
	assert.Empty(t, store.Items())
}

func TestManager_DropRemovesStoreAndSnapshot(t *testing.T) {
	ctx := context.Background()
	p := newTestPersister(t)
	m := NewManager(p, zerolog.Nop())

	store := m.Session(ctx, "session-1", "addis-kitchen", nil)
	store.AddItem(ctx, model.CartItem{ID: "a", Name: "Doro Wat", Price: decimal.NewFromFloat(12.50), Quantity: 1})

	m.Drop(ctx, "session-1")

	loaded, err := p.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// A new session with the same id starts from scratch.
	fresh := m.Session(ctx, "session-1", "addis-kitchen", nil)
	assert.NotSame(t, store, fresh)
	assert.Empty(t, fresh.Items())
}

func TestStore_MutationsPersistSnapshot(t *testing.T) {
	ctx := context.Background()
	p := newTestPersister(t)
	m := NewManager(p, zerolog.Nop())

	store := m.Session(ctx, "session-1", "addis-kitchen", nil)
	store.AddItem(ctx, model.CartItem{ID: "a", Name: "Doro Wat", Price: decimal.NewFromFloat(12.50), Quantity: 2})

	loaded, err := p.Load(ctx, "session-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 2, loaded.Items[0].Quantity)
}
