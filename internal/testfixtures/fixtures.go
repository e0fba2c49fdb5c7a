package testfixtures

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/example/roombooking/internal/persistence"
)

var (
	locationCounter uint64
	roomCounter     uint64
	eventCounter    uint64
)

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ----------------------------- Location fixtures -----------------------------

// LocationOption configures a generated location.
type LocationOption func(*persistence.Location)

// NewLocation returns an active location with a unique name.
func NewLocation(opts ...LocationOption) persistence.Location {
	idx := atomic.AddUint64(&locationCounter, 1)
	location := persistence.Location{
		Name:         fmt.Sprintf("Location %03d", idx),
		Abbreviation: fmt.Sprintf("L%03d", idx),
		Country:      "Kenya",
		TimeZone:     "Africa/Nairobi",
		State:        persistence.StateActive,
	}
	for _, opt := range opts {
		opt(&location)
	}
	return location
}

// WithLocationName overrides the generated name.
func WithLocationName(name string) LocationOption {
	return func(l *persistence.Location) {
		l.Name = name
	}
}

// WithLocationState overrides the state.
func WithLocationState(state persistence.State) LocationOption {
	return func(l *persistence.Location) {
		l.State = state
	}
}

// WithLocationCountry overrides the country.
func WithLocationCountry(country string) LocationOption {
	return func(l *persistence.Location) {
		l.Country = country
	}
}

// ------------------------------- Room fixtures -------------------------------

// RoomOption configures a generated room.
type RoomOption func(*persistence.Room)

// NewRoom returns an active room in locationID.
func NewRoom(locationID int64, opts ...RoomOption) persistence.Room {
	idx := atomic.AddUint64(&roomCounter, 1)
	room := persistence.Room{
		Name:       fmt.Sprintf("Room %03d", idx),
		RoomType:   "meeting",
		Capacity:   8,
		LocationID: locationID,
		State:      persistence.StateActive,
	}
	for _, opt := range opts {
		opt(&room)
	}
	return room
}

// WithRoomName overrides the generated name.
func WithRoomName(name string) RoomOption {
	return func(r *persistence.Room) {
		r.Name = name
	}
}

// WithRoomState overrides the state.
func WithRoomState(state persistence.State) RoomOption {
	return func(r *persistence.Room) {
		r.State = state
	}
}

// WithRoomFloor places the room on a floor.
func WithRoomFloor(floorID int64) RoomOption {
	return func(r *persistence.Room) {
		r.FloorID = &floorID
	}
}

// ------------------------------ Event fixtures -------------------------------

// EventOption configures a generated event.
type EventOption func(*persistence.Event)

// NewEvent returns a one hour active event in roomID. Each call starts an hour
// after the previous one.
func NewEvent(roomID int64, opts ...EventOption) persistence.Event {
	idx := atomic.AddUint64(&eventCounter, 1)
	start := referenceTime.Add(time.Duration(idx) * time.Hour)
	event := persistence.Event{
		EventID:              fmt.Sprintf("evt-%03d", idx),
		RoomID:               roomID,
		StartTime:            start,
		EndTime:              start.Add(time.Hour),
		NumberOfParticipants: 4,
		State:                persistence.StateActive,
	}
	for _, opt := range opts {
		opt(&event)
	}
	return event
}

// WithRecurringEventID links the event to a recurring series.
func WithRecurringEventID(id string) EventOption {
	return func(e *persistence.Event) {
		e.RecurringEventID = &id
	}
}

// WithEventStart moves the event to start, keeping its duration.
func WithEventStart(start time.Time) EventOption {
	return func(e *persistence.Event) {
		d := e.EndTime.Sub(e.StartTime)
		e.StartTime = start
		e.EndTime = start.Add(d)
	}
}

// WithEventState overrides the state.
func WithEventState(state persistence.State) EventOption {
	return func(e *persistence.Event) {
		e.State = state
	}
}

// ------------------------------- Seeding helpers -------------------------------

// SeedLocation inserts location and returns it with its ID.
func SeedLocation(tb testing.TB, uow persistence.UnitOfWork, location persistence.Location) persistence.Location {
	tb.Helper()
	err := uow.WithinTx(context.Background(), func(repos persistence.Repositories) error {
		var err error
		location, err = repos.Locations().CreateLocation(context.Background(), location)
		return err
	})
	if err != nil {
		tb.Fatalf("failed to seed location: %v", err)
	}
	return location
}

// SeedRoom inserts room and returns it with its ID.
func SeedRoom(tb testing.TB, uow persistence.UnitOfWork, room persistence.Room) persistence.Room {
	tb.Helper()
	err := uow.WithinTx(context.Background(), func(repos persistence.Repositories) error {
		var err error
		room, err = repos.Rooms().CreateRoom(context.Background(), room)
		return err
	})
	if err != nil {
		tb.Fatalf("failed to seed room: %v", err)
	}
	return room
}

// SeedOffice inserts an active office named name.
func SeedOffice(tb testing.TB, uow persistence.UnitOfWork, locationID int64, name string) persistence.Office {
	tb.Helper()
	office := persistence.Office{Name: name, LocationID: locationID, State: persistence.StateActive}
	err := uow.WithinTx(context.Background(), func(repos persistence.Repositories) error {
		var err error
		office, err = repos.Offices().CreateOffice(context.Background(), office)
		return err
	})
	if err != nil {
		tb.Fatalf("failed to seed office: %v", err)
	}
	return office
}

// SeedBlock inserts an active block with one floor per entry of floors.
func SeedBlock(tb testing.TB, uow persistence.UnitOfWork, officeID int64, name string, floors ...string) persistence.Block {
	tb.Helper()
	block := persistence.Block{Name: name, OfficeID: officeID, State: persistence.StateActive}
	err := uow.WithinTx(context.Background(), func(repos persistence.Repositories) error {
		var err error
		block, err = repos.Blocks().CreateBlock(context.Background(), block)
		if err != nil {
			return err
		}
		for _, floorName := range floors {
			floor, err := repos.Blocks().CreateFloor(context.Background(), persistence.Floor{
				Name:    floorName,
				BlockID: block.ID,
				State:   persistence.StateActive,
			})
			if err != nil {
				return err
			}
			block.Floors = append(block.Floors, floor)
		}
		return nil
	})
	if err != nil {
		tb.Fatalf("failed to seed block: %v", err)
	}
	return block
}

// SeedDevice inserts device and returns it with its ID.
func SeedDevice(tb testing.TB, uow persistence.UnitOfWork, device persistence.Device) persistence.Device {
	tb.Helper()
	err := uow.WithinTx(context.Background(), func(repos persistence.Repositories) error {
		var err error
		device, err = repos.Devices().CreateDevice(context.Background(), device)
		return err
	})
	if err != nil {
		tb.Fatalf("failed to seed device: %v", err)
	}
	return device
}

// SeedEvent inserts event and returns it with its ID.
func SeedEvent(tb testing.TB, uow persistence.UnitOfWork, event persistence.Event) persistence.Event {
	tb.Helper()
	err := uow.WithinTx(context.Background(), func(repos persistence.Repositories) error {
		var err error
		event, err = repos.Events().CreateEvent(context.Background(), event)
		return err
	})
	if err != nil {
		tb.Fatalf("failed to seed event: %v", err)
	}
	return event
}
