package sqlstore

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/example/roombooking/internal/persistence"
)

const roomsTable = "rooms"

type roomRepository struct {
	q *querier
}

func (r roomRepository) CreateRoom(ctx context.Context, room persistence.Room) (persistence.Room, error) {
	if room.State == "" {
		room.State = persistence.StateActive
	}
	id, err := r.q.insert(ctx, r.q.insertInto(roomsTable).Rows(room))
	if err != nil {
		return persistence.Room{}, err
	}
	room.ID = id
	return room, nil
}

func (r roomRepository) UpdateRoom(ctx context.Context, room persistence.Room) error {
	return r.q.exec(ctx, r.q.update(roomsTable).Set(room).Where(goqu.C("id").Eq(room.ID)))
}

func (r roomRepository) GetRoom(ctx context.Context, id int64) (persistence.Room, error) {
	var room persistence.Room
	err := r.q.get(ctx, &room, r.q.from(roomsTable).
		Select(persistence.Room{}).
		Where(goqu.C("id").Eq(id)))
	return room, err
}

func (r roomRepository) ListActiveRooms(ctx context.Context) ([]persistence.Room, error) {
	rooms := []persistence.Room{}
	err := r.q.selectAll(ctx, &rooms, r.q.from(roomsTable).
		Select(persistence.Room{}).
		Where(goqu.C("state").Eq(persistence.StateActive)).
		Order(goqu.C("id").Asc()))
	return rooms, err
}

func (r roomRepository) ListActiveRoomsInLocation(ctx context.Context, locationID int64) ([]persistence.Room, error) {
	activeLocation := r.q.from(locationsTable).
		Select(goqu.C("id")).
		Where(goqu.C("id").Eq(locationID), goqu.C("state").Eq(persistence.StateActive))

	rooms := []persistence.Room{}
	err := r.q.selectAll(ctx, &rooms, r.q.from(roomsTable).
		Select(persistence.Room{}).
		Where(
			goqu.C("state").Eq(persistence.StateActive),
			goqu.C("location_id").In(activeLocation),
		).
		Order(goqu.C("id").Asc()))
	return rooms, err
}
