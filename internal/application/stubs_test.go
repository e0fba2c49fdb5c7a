package application

import (
	"context"
	"sort"
	"strings"

	"github.com/example/roombooking/internal/persistence"
)

type locationRepoStub struct {
	rows    map[int64]Location
	nextID  int64
	created []Location
	updated []Location

	createErr error
	updateErr error
}

func newLocationRepoStub(rows ...Location) *locationRepoStub {
	stub := &locationRepoStub{rows: make(map[int64]Location)}
	for _, row := range rows {
		stub.rows[row.ID] = row
		if row.ID > stub.nextID {
			stub.nextID = row.ID
		}
	}
	return stub
}

func (r *locationRepoStub) CreateLocation(ctx context.Context, location Location) (Location, error) {
	if r.createErr != nil {
		return Location{}, r.createErr
	}
	r.nextID++
	location.ID = r.nextID
	r.rows[location.ID] = location
	r.created = append(r.created, location)
	return location, nil
}

func (r *locationRepoStub) UpdateLocation(ctx context.Context, location Location) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.rows[location.ID]; !ok {
		return persistence.ErrNotFound
	}
	r.rows[location.ID] = location
	r.updated = append(r.updated, location)
	return nil
}

func (r *locationRepoStub) GetLocation(ctx context.Context, id int64) (Location, error) {
	row, ok := r.rows[id]
	if !ok {
		return Location{}, persistence.ErrNotFound
	}
	return row, nil
}

func (r *locationRepoStub) CountLocationsByNameFold(ctx context.Context, name string) (int, error) {
	n := 0
	for _, row := range r.rows {
		if strings.EqualFold(row.Name, name) {
			n++
		}
	}
	return n, nil
}

func (r *locationRepoStub) CountActiveLocationsByName(ctx context.Context, name string) (int, error) {
	n := 0
	for _, row := range r.rows {
		if row.Name == name && row.State == persistence.StateActive {
			n++
		}
	}
	return n, nil
}

func (r *locationRepoStub) ListActiveLocations(ctx context.Context) ([]Location, error) {
	var out []Location
	for _, row := range r.rows {
		if row.State == persistence.StateActive {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

type roomRepoStub struct {
	rows    map[int64]Room
	nextID  int64
	updated []Room
}

func newRoomRepoStub(rows ...Room) *roomRepoStub {
	stub := &roomRepoStub{rows: make(map[int64]Room)}
	for _, row := range rows {
		stub.rows[row.ID] = row
		if row.ID > stub.nextID {
			stub.nextID = row.ID
		}
	}
	return stub
}

func (r *roomRepoStub) CreateRoom(ctx context.Context, room Room) (Room, error) {
	r.nextID++
	room.ID = r.nextID
	r.rows[room.ID] = room
	return room, nil
}

func (r *roomRepoStub) UpdateRoom(ctx context.Context, room Room) error {
	if _, ok := r.rows[room.ID]; !ok {
		return persistence.ErrNotFound
	}
	r.rows[room.ID] = room
	r.updated = append(r.updated, room)
	return nil
}

func (r *roomRepoStub) GetRoom(ctx context.Context, id int64) (Room, error) {
	row, ok := r.rows[id]
	if !ok {
		return Room{}, persistence.ErrNotFound
	}
	return row, nil
}

func (r *roomRepoStub) ListActiveRooms(ctx context.Context) ([]Room, error) {
	var out []Room
	for _, row := range r.rows {
		if row.State == persistence.StateActive {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *roomRepoStub) ListActiveRoomsInLocation(ctx context.Context, locationID int64) ([]Room, error) {
	var out []Room
	for _, row := range r.rows {
		if row.State == persistence.StateActive && row.LocationID == locationID {
			out = append(out, row)
		}
	}
	return out, nil
}

type reposStub struct {
	locations *locationRepoStub
	rooms     *roomRepoStub
}

func (r *reposStub) Locations() persistence.LocationRepository { return r.locations }
func (r *reposStub) Rooms() persistence.RoomRepository         { return r.rooms }
func (r *reposStub) Offices() persistence.OfficeRepository     { return nil }
func (r *reposStub) Blocks() persistence.BlockRepository       { return nil }
func (r *reposStub) Devices() persistence.DeviceRepository     { return nil }
func (r *reposStub) Events() persistence.EventRepository       { return nil }

type uowStub struct {
	repos   *reposStub
	writes  int
	reads   int
	failErr error
}

func newUOWStub(locations *locationRepoStub, rooms *roomRepoStub) *uowStub {
	if locations == nil {
		locations = newLocationRepoStub()
	}
	if rooms == nil {
		rooms = newRoomRepoStub()
	}
	return &uowStub{repos: &reposStub{locations: locations, rooms: rooms}}
}

func (u *uowStub) WithinTx(ctx context.Context, fn func(persistence.Repositories) error) error {
	u.writes++
	if u.failErr != nil {
		return u.failErr
	}
	return fn(u.repos)
}

func (u *uowStub) WithinReadTx(ctx context.Context, fn func(persistence.Repositories) error) error {
	u.reads++
	if u.failErr != nil {
		return u.failErr
	}
	return fn(u.repos)
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func activeLocation(id int64, name string) Location {
	return Location{
		ID:           id,
		Name:         name,
		Abbreviation: strings.ToUpper(name[:3]),
		Country:      "Nigeria",
		TimeZone:     "Africa/Lagos",
		State:        persistence.StateActive,
	}
}

var adminPrincipal = Principal{UserID: "admin-1", Roles: []string{RoleAdmin}}
