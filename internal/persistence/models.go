package persistence

import (
	"fmt"
	"time"
)

// State is the lifecycle marker shared by every soft-deletable record.
type State string

const (
	StateActive   State = "active"
	StateArchived State = "archived"
	StateDeleted  State = "deleted"
)

// Valid reports whether s is one of the known lifecycle values.
func (s State) Valid() bool {
	switch s {
	case StateActive, StateArchived, StateDeleted:
		return true
	}
	return false
}

// ParseState converts user input into a State.
func ParseState(value string) (State, error) {
	s := State(value)
	if !s.Valid() {
		return "", fmt.Errorf("persistence: invalid state %q", value)
	}
	return s, nil
}

// Location is a physical site (a city campus) that owns offices and rooms.
type Location struct {
	ID           int64   `db:"id" goqu:"skipinsert,skipupdate"`
	Name         string  `db:"name"`
	Abbreviation string  `db:"abbreviation"`
	Country      string  `db:"country"`
	ImageURL     *string `db:"image_url"`
	TimeZone     string  `db:"time_zone"`
	State        State   `db:"state"`
}

// Office is a tenant office inside a location.
type Office struct {
	ID         int64  `db:"id" goqu:"skipinsert,skipupdate"`
	Name       string `db:"name"`
	LocationID int64  `db:"location_id"`
	State      State  `db:"state"`
}

// Block is a building wing within an office.
type Block struct {
	ID       int64   `db:"id" goqu:"skipinsert,skipupdate"`
	Name     string  `db:"name"`
	OfficeID int64   `db:"office_id"`
	State    State   `db:"state"`
	Floors   []Floor `db:"-"`
}

// Floor belongs to a block and is removed together with it.
type Floor struct {
	ID      int64  `db:"id" goqu:"skipinsert,skipupdate"`
	Name    string `db:"name"`
	BlockID int64  `db:"block_id"`
	State   State  `db:"state"`
}

// Room is a bookable meeting room.
type Room struct {
	ID            int64   `db:"id" goqu:"skipinsert,skipupdate"`
	Name          string  `db:"name"`
	RoomType      string  `db:"room_type"`
	Capacity      int     `db:"capacity"`
	LocationID    int64   `db:"location_id"`
	FloorID       *int64  `db:"floor_id"`
	CalendarID    *string `db:"calendar_id"`
	ImageURL      *string `db:"image_url"`
	NextSyncToken *string `db:"next_sync_token"`
	State         State   `db:"state"`
}

// Device is a piece of hardware installed in a room. State is nullable
// because rows created before the column existed carry no value.
type Device struct {
	ID         int64      `db:"id" goqu:"skipinsert,skipupdate"`
	Name       string     `db:"name"`
	DeviceType string     `db:"device_type"`
	RoomID     int64      `db:"room_id"`
	LastSeen   *time.Time `db:"last_seen"`
	Location   string     `db:"location"`
	State      *State     `db:"state"`
}

// Event is a calendar booking synced for a room.
type Event struct {
	ID                   int64     `db:"id" goqu:"skipinsert,skipupdate"`
	EventID              string    `db:"event_id"`
	RoomID               int64     `db:"room_id"`
	Title                *string   `db:"event_title"`
	StartTime            time.Time `db:"start_time"`
	EndTime              time.Time `db:"end_time"`
	NumberOfParticipants int       `db:"number_of_participants"`
	RecurringEventID     *string   `db:"recurring_event_id"`
	State                State     `db:"state"`
}
