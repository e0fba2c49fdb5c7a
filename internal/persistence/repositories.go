package persistence

import "context"

// LocationRepository stores locations.
type LocationRepository interface {
	CreateLocation(ctx context.Context, location Location) (Location, error)
	UpdateLocation(ctx context.Context, location Location) error
	// GetLocation returns the location regardless of its state.
	GetLocation(ctx context.Context, id int64) (Location, error)
	// CountLocationsByNameFold counts rows of any state whose name matches
	// case-insensitively.
	CountLocationsByNameFold(ctx context.Context, name string) (int, error)
	// CountActiveLocationsByName counts active rows whose name matches exactly.
	CountActiveLocationsByName(ctx context.Context, name string) (int, error)
	// ListActiveLocations returns active locations ordered by lower(name).
	ListActiveLocations(ctx context.Context) ([]Location, error)
}

// RoomRepository stores rooms.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) (Room, error)
	UpdateRoom(ctx context.Context, room Room) error
	GetRoom(ctx context.Context, id int64) (Room, error)
	ListActiveRooms(ctx context.Context) ([]Room, error)
	// ListActiveRoomsInLocation returns active rooms whose location is active too.
	ListActiveRoomsInLocation(ctx context.Context, locationID int64) ([]Room, error)
}

// OfficeRepository stores offices.
type OfficeRepository interface {
	CreateOffice(ctx context.Context, office Office) (Office, error)
	GetOffice(ctx context.Context, id int64) (Office, error)
	ListActiveOffices(ctx context.Context) ([]Office, error)
}

// BlockRepository stores blocks and the floors they own.
type BlockRepository interface {
	CreateBlock(ctx context.Context, block Block) (Block, error)
	GetBlock(ctx context.Context, id int64) (Block, error)
	CountBlocksByNameFold(ctx context.Context, officeID int64, name string) (int, error)
	// DeleteBlock hard deletes the block and its floors.
	DeleteBlock(ctx context.Context, id int64) error
	// ListBlocks returns blocks with their floors ordered by lower(name).
	ListBlocks(ctx context.Context) ([]Block, error)
	CreateFloor(ctx context.Context, floor Floor) (Floor, error)
	ListFloors(ctx context.Context, blockID int64) ([]Floor, error)
}

// DeviceRepository stores devices.
type DeviceRepository interface {
	CreateDevice(ctx context.Context, device Device) (Device, error)
	UpdateDevice(ctx context.Context, device Device) error
	GetDevice(ctx context.Context, id int64) (Device, error)
	// ListActiveDevices treats a NULL state as active.
	ListActiveDevices(ctx context.Context) ([]Device, error)
}

// EventRepository stores synced calendar events.
type EventRepository interface {
	CreateEvent(ctx context.Context, event Event) (Event, error)
	ListActiveRoomEvents(ctx context.Context, roomID int64) ([]Event, error)
	ListEventsByRecurringID(ctx context.Context, recurringEventID string) ([]Event, error)
}

// Repositories bundles the repositories bound to a single transaction.
type Repositories interface {
	Locations() LocationRepository
	Rooms() RoomRepository
	Offices() OfficeRepository
	Blocks() BlockRepository
	Devices() DeviceRepository
	Events() EventRepository
}

// UnitOfWork runs fn inside a transaction; any error rolls back every
// write fn made.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(Repositories) error) error
	WithinReadTx(ctx context.Context, fn func(Repositories) error) error
}
