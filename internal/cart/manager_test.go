package cart

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Session_ReturnsSameStore(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(nil, zerolog.Nop())

	table := "7"
	first := manager.Session(ctx, "session-1", "addis-kitchen", &table)
	second := manager.Session(ctx, "session-1", "addis-kitchen", &table)

	assert.Same(t, first, second)
}

func TestManager_Session_AdoptsLaterRestaurantContext(t *testing.T) {
	// A session is often created by a bare cart read, which carries no
	// restaurant. The first request that does carry one must stick.
	ctx := context.Background()
	persister, err := NewFilePersister(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	manager := NewManager(persister, zerolog.Nop())

	store := manager.Session(ctx, "session-1", "", nil)
	snap := store.Snapshot()
	assert.Empty(t, snap.RestaurantSlug)
	assert.Nil(t, snap.TableNumber)

	table := "7"
	adopted := manager.Session(ctx, "session-1", "addis-kitchen", &table)
	require.Same(t, store, adopted)

	snap = adopted.Snapshot()
	assert.Equal(t, "addis-kitchen", snap.RestaurantSlug)
	require.NotNil(t, snap.TableNumber)
	assert.Equal(t, "7", *snap.TableNumber)

	// The adopted context is part of the durable snapshot: add an item and
	// reload the session through a fresh manager.
	adopted.AddItem(ctx, item("doro-wat", 12.50, 1))

	reloaded := NewManager(persister, zerolog.Nop()).Session(ctx, "session-1", "", nil)
	snap = reloaded.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "addis-kitchen", snap.RestaurantSlug)
	require.NotNil(t, snap.TableNumber)
	assert.Equal(t, "7", *snap.TableNumber)
}

func TestManager_Session_EmptyContextDoesNotErase(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(nil, zerolog.Nop())

	table := "7"
	manager.Session(ctx, "session-1", "addis-kitchen", &table)

	// Reads pass no context; the stored one must survive them.
	store := manager.Session(ctx, "session-1", "", nil)

	snap := store.Snapshot()
	assert.Equal(t, "addis-kitchen", snap.RestaurantSlug)
	require.NotNil(t, snap.TableNumber)
	assert.Equal(t, "7", *snap.TableNumber)
}

func TestManager_Session_NewerContextWins(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(nil, zerolog.Nop())

	oldTable := "7"
	manager.Session(ctx, "session-1", "addis-kitchen", &oldTable)

	newTable := "12"
	store := manager.Session(ctx, "session-1", "addis-kitchen", &newTable)

	snap := store.Snapshot()
	require.NotNil(t, snap.TableNumber)
	assert.Equal(t, "12", *snap.TableNumber)
}

func TestManager_Drop_RemovesStoreAndSnapshot(t *testing.T) {
	ctx := context.Background()
	persister, err := NewFilePersister(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	manager := NewManager(persister, zerolog.Nop())

	table := "7"
	store := manager.Session(ctx, "session-1", "addis-kitchen", &table)
	store.AddItem(ctx, item("doro-wat", 12.50, 1))

	manager.Drop(ctx, "session-1")

	snap, err := persister.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Nil(t, snap)

	fresh := manager.Session(ctx, "session-1", "addis-kitchen", &table)
	assert.NotSame(t, store, fresh)
	assert.Empty(t, fresh.Items())
}
