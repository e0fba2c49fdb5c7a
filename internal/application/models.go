package application

import (
	"slices"
	"strings"
	"time"

	"github.com/example/roombooking/internal/persistence"
)

// RoleAdmin is the role allowed to run mutations.
const RoleAdmin = "Admin"

// Principal represents the authenticated user invoking a service method.
type Principal struct {
	UserID string
	Email  string
	Roles  []string
}

// HasRole reports whether the principal holds role, ignoring case.
func (p Principal) HasRole(role string) bool {
	return slices.ContainsFunc(p.Roles, func(r string) bool {
		return strings.EqualFold(r, role)
	})
}

// Records returned by the services.
type (
	Location = persistence.Location
	Room     = persistence.Room
	Office   = persistence.Office
	Block    = persistence.Block
	Floor    = persistence.Floor
	Device   = persistence.Device
	Event    = persistence.Event
)

// CreateLocationParams wraps the data required to create a location.
type CreateLocationParams struct {
	Principal    Principal
	Name         string
	Abbreviation string
	Country      string
	TimeZone     string
	ImageURL     *string
	State        *string
}

// UpdateLocationParams carries the fields to merge; nil fields are left unchanged.
type UpdateLocationParams struct {
	Principal    Principal
	LocationID   int64
	Name         *string
	Abbreviation *string
	Country      *string
	ImageURL     *string
	TimeZone     *string
}

// DeleteLocationParams identifies the location to archive. State optionally
// overrides the archived state.
type DeleteLocationParams struct {
	Principal  Principal
	LocationID int64
	State      *string
}

// CreateRoomParams wraps the data required to create a room.
type CreateRoomParams struct {
	Principal  Principal
	Name       string
	RoomType   string
	Capacity   int
	LocationID int64
	FloorID    *int64
	CalendarID *string
	ImageURL   *string
}

// UpdateRoomParams carries the room fields to merge.
type UpdateRoomParams struct {
	Principal     Principal
	RoomID        int64
	Name          *string
	RoomType      *string
	Capacity      *int
	FloorID       *int64
	CalendarID    *string
	ImageURL      *string
	NextSyncToken *string
}

// DeleteRoomParams identifies the room to archive.
type DeleteRoomParams struct {
	Principal Principal
	RoomID    int64
	State     *string
}

type CreateOfficeParams struct {
	Principal  Principal
	Name       string
	LocationID int64
}

type CreateBlockParams struct {
	Principal Principal
	Name      string
	OfficeID  int64
}

type CreateFloorParams struct {
	Principal Principal
	Name      string
	BlockID   int64
}

type CreateDeviceParams struct {
	Principal  Principal
	Name       string
	DeviceType string
	RoomID     int64
	Location   string
	LastSeen   *time.Time
}

type DeleteDeviceParams struct {
	Principal Principal
	DeviceID  int64
	State     *string
}

// CreateEventParams records a calendar event synced for a room.
type CreateEventParams struct {
	Principal            Principal
	EventID              string
	RoomID               int64
	Title                *string
	Start                time.Time
	End                  time.Time
	NumberOfParticipants int
	RecurringEventID     *string
}
