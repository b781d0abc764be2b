package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/quest-engine/pkg/state"
	"github.com/jwebster45206/quest-engine/pkg/storage"
)

// testStorageContract runs the behavior every Storage must share.
func testStorageContract(t *testing.T, s storage.Storage) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	t.Run("missing save loads as nil", func(t *testing.T) {
		gs, err := s.LoadGameState(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, gs)
	})

	t.Run("round trip", func(t *testing.T) {
		gs := state.Reduce(state.NewGameState("Rin"), state.StartCombat{EnemyName: "Rat", HP: 4})
		gs = state.Reduce(gs, state.UpdateNPCMemory{Memories: state.NPCMemory{"Mara": "friendly"}})
		gs = state.Reduce(gs, state.UpdateMap{Direction: state.East, Terrain: state.TerrainForest})
		updatedBefore := gs.UpdatedAt

		require.NoError(t, s.SaveGameState(ctx, gs.ID, gs))
		assert.Equal(t, updatedBefore, gs.UpdatedAt, "caller's state is not modified")

		loaded, err := s.LoadGameState(ctx, gs.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, gs.ID, loaded.ID)
		assert.Equal(t, gs.Player.Name, loaded.Player.Name)
		assert.Equal(t, gs.Player.Stats, loaded.Player.Stats)
		assert.Equal(t, len(gs.Player.Inventory), len(loaded.Player.Inventory))
		assert.Equal(t, *gs.Player.Inventory[0].Weight, *loaded.Player.Inventory[0].Weight)
		assert.Equal(t, "friendly", loaded.World.NPCMemory["Mara"])
		assert.Equal(t, state.Coordinates{X: 1, Y: 0}, loaded.Player.Position)
		assert.Equal(t, state.TerrainForest, loaded.World.Map[state.CoordKey(1, 0)].Type)
		require.NotNil(t, loaded.Combat.EnemyHP)
		assert.Equal(t, 4, *loaded.Combat.EnemyHP)
		assert.Equal(t, len(gs.GameLog), len(loaded.GameLog))
		assert.False(t, loaded.UpdatedAt.Before(updatedBefore))
		assert.Empty(t, state.CheckInvariants(loaded))
	})

	t.Run("overwrite is last write wins", func(t *testing.T) {
		gs := state.NewGameState("Ada")
		require.NoError(t, s.SaveGameState(ctx, gs.ID, gs))
		gs = state.Reduce(gs, state.UpdateGold{Delta: 90})
		require.NoError(t, s.SaveGameState(ctx, gs.ID, gs))

		loaded, err := s.LoadGameState(ctx, gs.ID)
		require.NoError(t, err)
		assert.Equal(t, 100, loaded.Player.Gold)
	})

	t.Run("list newest first and delete", func(t *testing.T) {
		first := state.NewGameState("First")
		require.NoError(t, s.SaveGameState(ctx, first.ID, first))
		time.Sleep(5 * time.Millisecond)
		second := state.NewGameState("Second")
		require.NoError(t, s.SaveGameState(ctx, second.ID, second))

		games, err := s.ListGameStates(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(games), 2)
		assert.Equal(t, second.ID, games[0].ID)
		assert.Equal(t, first.ID, games[1].ID)

		require.NoError(t, s.DeleteGameState(ctx, second.ID))
		require.NoError(t, s.DeleteGameState(ctx, uuid.New()), "deleting a missing save is not an error")

		gone, err := s.LoadGameState(ctx, second.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)

		games, err = s.ListGameStates(ctx)
		require.NoError(t, err)
		for _, g := range games {
			assert.NotEqual(t, second.ID, g.ID)
		}
	})

	assert.Error(t, s.SaveGameState(ctx, uuid.New(), nil))
}

func TestMemoryStorage_Contract(t *testing.T) {
	testStorageContract(t, storage.NewMemoryStorage())
}
