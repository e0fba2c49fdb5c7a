package sqlstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/roombooking/internal/persistence"
	"github.com/example/roombooking/internal/testfixtures"
)

func names[T any](rows []T, name func(T) string) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = name(row)
	}
	return out
}

func TestLocationRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("lists active locations ordered case-insensitively", func(t *testing.T) {
		store := testfixtures.NewStore(t)
		for _, name := range []string{"bravo", "Alpha", "charlie"} {
			testfixtures.SeedLocation(t, store, testfixtures.NewLocation(testfixtures.WithLocationName(name)))
		}
		testfixtures.SeedLocation(t, store, testfixtures.NewLocation(
			testfixtures.WithLocationName("Archived"),
			testfixtures.WithLocationState(persistence.StateArchived),
		))

		var locations []persistence.Location
		err := store.WithinReadTx(ctx, func(repos persistence.Repositories) error {
			var err error
			locations, err = repos.Locations().ListActiveLocations(ctx)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha", "bravo", "charlie"},
			names(locations, func(l persistence.Location) string { return l.Name }))
	})

	t.Run("counts names", func(t *testing.T) {
		store := testfixtures.NewStore(t)
		testfixtures.SeedLocation(t, store, testfixtures.NewLocation(testfixtures.WithLocationName("Lagos")))
		testfixtures.SeedLocation(t, store, testfixtures.NewLocation(
			testfixtures.WithLocationName("LAGOS"),
			testfixtures.WithLocationState(persistence.StateDeleted),
		))

		err := store.WithinReadTx(ctx, func(repos persistence.Repositories) error {
			folded, err := repos.Locations().CountLocationsByNameFold(ctx, "lagos")
			require.NoError(t, err)
			assert.Equal(t, 2, folded)

			exact, err := repos.Locations().CountActiveLocationsByName(ctx, "Lagos")
			require.NoError(t, err)
			assert.Equal(t, 1, exact)

			exact, err = repos.Locations().CountActiveLocationsByName(ctx, "LAGOS")
			require.NoError(t, err)
			assert.Equal(t, 0, exact)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("folds non-ASCII letters", func(t *testing.T) {
		store := testfixtures.NewStore(t)
		for _, name := range []string{"Éclair", "ébène", "Zulu"} {
			testfixtures.SeedLocation(t, store, testfixtures.NewLocation(testfixtures.WithLocationName(name)))
		}

		err := store.WithinReadTx(ctx, func(repos persistence.Repositories) error {
			n, err := repos.Locations().CountLocationsByNameFold(ctx, "ÉBÈNE")
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			n, err = repos.Locations().CountLocationsByNameFold(ctx, "éclair")
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			locations, err := repos.Locations().ListActiveLocations(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"Zulu", "ébène", "Éclair"},
				names(locations, func(l persistence.Location) string { return l.Name }))
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("round trips optional fields", func(t *testing.T) {
		store := testfixtures.NewStore(t)
		url := "https://example.com/lagos.png"
		location := testfixtures.NewLocation()
		location.ImageURL = &url
		location = testfixtures.SeedLocation(t, store, location)

		location.Abbreviation = "LOS"
		err := store.WithinTx(ctx, func(repos persistence.Repositories) error {
			return repos.Locations().UpdateLocation(ctx, location)
		})
		require.NoError(t, err)

		var got persistence.Location
		err = store.WithinReadTx(ctx, func(repos persistence.Repositories) error {
			var err error
			got, err = repos.Locations().GetLocation(ctx, location.ID)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, location, got)
	})

	t.Run("reports missing rows", func(t *testing.T) {
		store := testfixtures.NewStore(t)
		err := store.WithinReadTx(ctx, func(repos persistence.Repositories) error {
			_, err := repos.Locations().GetLocation(ctx, 404)
			return err
		})
		assert.ErrorIs(t, err, persistence.ErrNotFound)

		err = store.WithinTx(ctx, func(repos persistence.Repositories) error {
			return repos.Locations().UpdateLocation(ctx, persistence.Location{ID: 404, State: persistence.StateActive})
		})
		assert.ErrorIs(t, err, persistence.ErrNotFound)
	})
}

func TestRoomRepository(t *testing.T) {
	ctx := context.Background()
	store := testfixtures.NewStore(t)

	open := testfixtures.SeedLocation(t, store, testfixtures.NewLocation())
	closed := testfixtures.SeedLocation(t, store, testfixtures.NewLocation(
		testfixtures.WithLocationState(persistence.StateArchived),
	))
	testfixtures.SeedRoom(t, store, testfixtures.NewRoom(open.ID, testfixtures.WithRoomName("zebra")))
	testfixtures.SeedRoom(t, store, testfixtures.NewRoom(open.ID, testfixtures.WithRoomName("Aardvark")))
	testfixtures.SeedRoom(t, store, testfixtures.NewRoom(open.ID,
		testfixtures.WithRoomName("Gone"),
		testfixtures.WithRoomState(persistence.StateDeleted),
	))
	testfixtures.SeedRoom(t, store, testfixtures.NewRoom(closed.ID, testfixtures.WithRoomName("Hidden")))

	err := store.WithinReadTx(ctx, func(repos persistence.Repositories) error {
		inOpen, err := repos.Rooms().ListActiveRoomsInLocation(ctx, open.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"zebra", "Aardvark"},
			names(inOpen, func(r persistence.Room) string { return r.Name }))

		inClosed, err := repos.Rooms().ListActiveRoomsInLocation(ctx, closed.ID)
		require.NoError(t, err)
		assert.Empty(t, inClosed)

		all, err := repos.Rooms().ListActiveRooms(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
		return nil
	})
	require.NoError(t, err)

	t.Run("maps foreign key violations", func(t *testing.T) {
		err := store.WithinTx(ctx, func(repos persistence.Repositories) error {
			_, err := repos.Rooms().CreateRoom(ctx, testfixtures.NewRoom(9999))
			return err
		})
		assert.ErrorIs(t, err, persistence.ErrForeignKey)
	})
}

func TestBlockRepository(t *testing.T) {
	ctx := context.Background()
	store := testfixtures.NewStore(t)

	location := testfixtures.SeedLocation(t, store, testfixtures.NewLocation())
	office := testfixtures.SeedOffice(t, store, location.ID, "Head Office")
	block := testfixtures.SeedBlock(t, store, office.ID, "Block A", "third", "First", "second")
	other := testfixtures.SeedBlock(t, store, office.ID, "Block B")

	err := store.WithinReadTx(ctx, func(repos persistence.Repositories) error {
		blocks, err := repos.Blocks().ListBlocks(ctx)
		require.NoError(t, err)
		require.Len(t, blocks, 2)
		assert.Equal(t, []string{"First", "second", "third"},
			names(blocks[0].Floors, func(f persistence.Floor) string { return f.Name }))
		assert.Empty(t, blocks[1].Floors)

		n, err := repos.Blocks().CountBlocksByNameFold(ctx, office.ID, "BLOCK a")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		return nil
	})
	require.NoError(t, err)

	accented := testfixtures.SeedBlock(t, store, office.ID, "Östra Flygeln", "Étage", "éta")
	err = store.WithinReadTx(ctx, func(repos persistence.Repositories) error {
		n, err := repos.Blocks().CountBlocksByNameFold(ctx, office.ID, "ÖSTRA FLYGELN")
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		floors, err := repos.Blocks().ListFloors(ctx, accented.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"éta", "Étage"},
			names(floors, func(f persistence.Floor) string { return f.Name }))
		return nil
	})
	require.NoError(t, err)

	err = store.WithinTx(ctx, func(repos persistence.Repositories) error {
		return repos.Blocks().DeleteBlock(ctx, block.ID)
	})
	require.NoError(t, err)

	err = store.WithinReadTx(ctx, func(repos persistence.Repositories) error {
		floors, err := repos.Blocks().ListFloors(ctx, block.ID)
		require.NoError(t, err)
		assert.Empty(t, floors)

		_, err = repos.Blocks().GetBlock(ctx, block.ID)
		assert.ErrorIs(t, err, persistence.ErrNotFound)

		remaining, err := repos.Blocks().GetBlock(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, "Block B", remaining.Name)
		return nil
	})
	require.NoError(t, err)
}

func TestDeviceRepository(t *testing.T) {
	ctx := context.Background()
	store := testfixtures.NewStore(t)

	location := testfixtures.SeedLocation(t, store, testfixtures.NewLocation())
	room := testfixtures.SeedRoom(t, store, testfixtures.NewRoom(location.ID))

	// rows written before the state column existed carry NULL
	_, err := store.DB().ExecContext(ctx,
		"INSERT INTO devices (name, device_type, room_id, location) VALUES (?, ?, ?, ?)",
		"legacy", "tablet", room.ID, "door")
	require.NoError(t, err)

	archived := persistence.StateArchived
	testfixtures.SeedDevice(t, store, persistence.Device{Name: "retired", DeviceType: "tablet", RoomID: room.ID, Location: "door", State: &archived})
	created := testfixtures.SeedDevice(t, store, persistence.Device{Name: "kiosk", DeviceType: "tablet", RoomID: room.ID, Location: "lobby"})
	require.NotNil(t, created.State)
	assert.Equal(t, persistence.StateActive, *created.State)

	err = store.WithinReadTx(ctx, func(repos persistence.Repositories) error {
		devices, err := repos.Devices().ListActiveDevices(ctx)
		require.NoError(t, err)
		require.Len(t, devices, 2)
		assert.Equal(t, "legacy", devices[0].Name)
		assert.Nil(t, devices[0].State)
		assert.Equal(t, "kiosk", devices[1].Name)
		return nil
	})
	require.NoError(t, err)
}

func TestEventRepository(t *testing.T) {
	ctx := context.Background()
	store := testfixtures.NewStore(t)

	location := testfixtures.SeedLocation(t, store, testfixtures.NewLocation())
	room := testfixtures.SeedRoom(t, store, testfixtures.NewRoom(location.ID))

	base := testfixtures.ReferenceTime()
	late := testfixtures.SeedEvent(t, store, testfixtures.NewEvent(room.ID,
		testfixtures.WithEventStart(base.Add(48*time.Hour)),
		testfixtures.WithRecurringEventID("weekly"),
	))
	early := testfixtures.SeedEvent(t, store, testfixtures.NewEvent(room.ID,
		testfixtures.WithEventStart(base.Add(24*time.Hour)),
		testfixtures.WithRecurringEventID("weekly"),
	))
	testfixtures.SeedEvent(t, store, testfixtures.NewEvent(room.ID,
		testfixtures.WithEventState(persistence.StateDeleted),
	))

	err := store.WithinReadTx(ctx, func(repos persistence.Repositories) error {
		events, err := repos.Events().ListActiveRoomEvents(ctx, room.ID)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, early.EventID, events[0].EventID)
		assert.Equal(t, late.EventID, events[1].EventID)
		assert.True(t, events[0].StartTime.Equal(early.StartTime))

		series, err := repos.Events().ListEventsByRecurringID(ctx, "weekly")
		require.NoError(t, err)
		assert.Len(t, series, 2)
		return nil
	})
	require.NoError(t, err)
}

func TestStoreWithinTxRollsBack(t *testing.T) {
	ctx := context.Background()
	store := testfixtures.NewStore(t)
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(repos persistence.Repositories) error {
		if _, err := repos.Locations().CreateLocation(ctx, testfixtures.NewLocation()); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = store.WithinReadTx(ctx, func(repos persistence.Repositories) error {
		locations, err := repos.Locations().ListActiveLocations(ctx)
		require.NoError(t, err)
		assert.Empty(t, locations)
		return nil
	})
	require.NoError(t, err)
}
