package graph

import (
	"log/slog"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/example/roombooking/internal/application"
	"github.com/example/roombooking/internal/auth"
	"github.com/example/roombooking/internal/metrics"
)

// Resolver binds the GraphQL fields to the application services.
type Resolver struct {
	Locations *application.LocationService
	Rooms     *application.RoomService
	Offices   *application.OfficeService
	Blocks    *application.BlockService
	Devices   *application.DeviceService
	Events    *application.EventService

	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

type adminResolveFn func(p graphql.ResolveParams, principal application.Principal) (interface{}, error)

// requireRole runs next only when the caller holds one of roles.
func requireRole(next adminResolveFn, roles ...string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		principal, err := auth.Require(p.Context, roles...)
		if err != nil {
			return nil, err
		}
		return next(p, principal)
	}
}

// query instruments a public resolver.
func (r *Resolver) query(operation string, fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		start := time.Now()
		out, err := fn(p)
		r.Metrics.Observe(operation, start, err)
		if err != nil {
			return nil, toError(p.Context, r.logger(), operation, err)
		}
		return out, nil
	}
}

// mutation instruments a resolver reserved for administrators.
func (r *Resolver) mutation(operation string, fn adminResolveFn) graphql.FieldResolveFn {
	return r.query(operation, requireRole(fn, application.RoleAdmin))
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Resolver) resolveAllLocations(p graphql.ResolveParams) (interface{}, error) {
	return r.Locations.ListLocations(p.Context)
}

func (r *Resolver) resolveRoomsInLocation(p graphql.ResolveParams) (interface{}, error) {
	return r.Locations.ListRoomsInLocation(p.Context, argInt64(p.Args, "locationId"))
}

func (r *Resolver) resolveLocationRooms(p graphql.ResolveParams) (interface{}, error) {
	loc, ok := p.Source.(application.Location)
	if !ok {
		return nil, nil
	}
	return r.Locations.ListRoomsInLocation(p.Context, loc.ID)
}

func (r *Resolver) resolveAllRooms(p graphql.ResolveParams) (interface{}, error) {
	return r.Rooms.ListRooms(p.Context)
}

func (r *Resolver) resolveRoomByID(p graphql.ResolveParams) (interface{}, error) {
	return r.Rooms.GetRoom(p.Context, argInt64(p.Args, "roomId"))
}

func (r *Resolver) resolveAllOffices(p graphql.ResolveParams) (interface{}, error) {
	return r.Offices.ListOffices(p.Context)
}

func (r *Resolver) resolveAllBlocks(p graphql.ResolveParams) (interface{}, error) {
	return r.Blocks.ListBlocks(p.Context)
}

func (r *Resolver) resolveAllDevices(p graphql.ResolveParams) (interface{}, error) {
	return r.Devices.ListDevices(p.Context)
}

func (r *Resolver) resolveRoomEvents(p graphql.ResolveParams) (interface{}, error) {
	return r.Events.ListRoomEvents(p.Context, argInt64(p.Args, "roomId"))
}

func (r *Resolver) resolveRecurringEvents(p graphql.ResolveParams) (interface{}, error) {
	return r.Events.ListRecurringOccurrences(p.Context, argString(p.Args, "recurringEventId"))
}

func (r *Resolver) createLocation(p graphql.ResolveParams, principal application.Principal) (interface{}, error) {
	loc, err := r.Locations.CreateLocation(p.Context, application.CreateLocationParams{
		Principal:    principal,
		Name:         argString(p.Args, "name"),
		Abbreviation: argString(p.Args, "abbreviation"),
		Country:      argString(p.Args, "country"),
		TimeZone:     argString(p.Args, "timeZone"),
		ImageURL:     argOptString(p.Args, "imageUrl"),
		State:        argOptString(p.Args, "state"),
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"location": loc}, nil
}

func (r *Resolver) updateLocation(p graphql.ResolveParams, principal application.Principal) (interface{}, error) {
	loc, err := r.Locations.UpdateLocation(p.Context, application.UpdateLocationParams{
		Principal:    principal,
		LocationID:   argInt64(p.Args, "locationId"),
		Name:         argOptString(p.Args, "name"),
		Abbreviation: argOptString(p.Args, "abbreviation"),
		Country:      argOptString(p.Args, "country"),
		ImageURL:     argOptString(p.Args, "imageUrl"),
		TimeZone:     argOptString(p.Args, "timeZone"),
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"location": loc}, nil
}

func (r *Resolver) deleteLocation(p graphql.ResolveParams, principal application.Principal) (interface{}, error) {
	loc, err := r.Locations.DeleteLocation(p.Context, application.DeleteLocationParams{
		Principal:  principal,
		LocationID: argInt64(p.Args, "locationId"),
		State:      argOptString(p.Args, "state"),
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"location": loc}, nil
}

func (r *Resolver) createRoom(p graphql.ResolveParams, principal application.Principal) (interface{}, error) {
	room, err := r.Rooms.CreateRoom(p.Context, application.CreateRoomParams{
		Principal:  principal,
		Name:       argString(p.Args, "name"),
		RoomType:   argString(p.Args, "roomType"),
		Capacity:   argInt(p.Args, "capacity"),
		LocationID: argInt64(p.Args, "locationId"),
		FloorID:    argOptInt64(p.Args, "floorId"),
		CalendarID: argOptString(p.Args, "calendarId"),
		ImageURL:   argOptString(p.Args, "imageUrl"),
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"room": room}, nil
}

func (r *Resolver) updateRoom(p graphql.ResolveParams, principal application.Principal) (interface{}, error) {
	var capacity *int
	if c := argOptInt64(p.Args, "capacity"); c != nil {
		v := int(*c)
		capacity = &v
	}
	room, err := r.Rooms.UpdateRoom(p.Context, application.UpdateRoomParams{
		Principal:     principal,
		RoomID:        argInt64(p.Args, "roomId"),
		Name:          argOptString(p.Args, "name"),
		RoomType:      argOptString(p.Args, "roomType"),
		Capacity:      capacity,
		FloorID:       argOptInt64(p.Args, "floorId"),
		CalendarID:    argOptString(p.Args, "calendarId"),
		ImageURL:      argOptString(p.Args, "imageUrl"),
		NextSyncToken: argOptString(p.Args, "nextSyncToken"),
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"room": room}, nil
}

func (r *Resolver) deleteRoom(p graphql.ResolveParams, principal application.Principal) (interface{}, error) {
	room, err := r.Rooms.DeleteRoom(p.Context, application.DeleteRoomParams{
		Principal: principal,
		RoomID:    argInt64(p.Args, "roomId"),
		State:     argOptString(p.Args, "state"),
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"room": room}, nil
}

func (r *Resolver) createOffice(p graphql.ResolveParams, principal application.Principal) (interface{}, error) {
	office, err := r.Offices.CreateOffice(p.Context, application.CreateOfficeParams{
		Principal:  principal,
		Name:       argString(p.Args, "name"),
		LocationID: argInt64(p.Args, "locationId"),
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"office": office}, nil
}

func (r *Resolver) createBlock(p graphql.ResolveParams, principal application.Principal) (interface{}, error) {
	block, err := r.Blocks.CreateBlock(p.Context, application.CreateBlockParams{
		Principal: principal,
		Name:      argString(p.Args, "name"),
		OfficeID:  argInt64(p.Args, "officeId"),
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"block": block}, nil
}

func (r *Resolver) deleteBlock(p graphql.ResolveParams, principal application.Principal) (interface{}, error) {
	block, err := r.Blocks.DeleteBlock(p.Context, principal, argInt64(p.Args, "blockId"))
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"block": block}, nil
}

func (r *Resolver) createFloor(p graphql.ResolveParams, principal application.Principal) (interface{}, error) {
	floor, err := r.Blocks.CreateFloor(p.Context, application.CreateFloorParams{
		Principal: principal,
		Name:      argString(p.Args, "name"),
		BlockID:   argInt64(p.Args, "blockId"),
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"floor": floor}, nil
}

func (r *Resolver) createDevice(p graphql.ResolveParams, principal application.Principal) (interface{}, error) {
	device, err := r.Devices.CreateDevice(p.Context, application.CreateDeviceParams{
		Principal:  principal,
		Name:       argString(p.Args, "name"),
		DeviceType: argString(p.Args, "deviceType"),
		RoomID:     argInt64(p.Args, "roomId"),
		Location:   argString(p.Args, "location"),
		LastSeen:   argOptTime(p.Args, "lastSeen"),
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"device": device}, nil
}

func (r *Resolver) deleteDevice(p graphql.ResolveParams, principal application.Principal) (interface{}, error) {
	device, err := r.Devices.DeleteDevice(p.Context, application.DeleteDeviceParams{
		Principal: principal,
		DeviceID:  argInt64(p.Args, "deviceId"),
		State:     argOptString(p.Args, "state"),
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"device": device}, nil
}

func (r *Resolver) createEvent(p graphql.ResolveParams, principal application.Principal) (interface{}, error) {
	params := application.CreateEventParams{
		Principal:        principal,
		EventID:          argString(p.Args, "eventId"),
		RoomID:           argInt64(p.Args, "roomId"),
		Title:            argOptString(p.Args, "eventTitle"),
		RecurringEventID: argOptString(p.Args, "recurringEventId"),
	}
	if t := argOptTime(p.Args, "startTime"); t != nil {
		params.Start = *t
	}
	if t := argOptTime(p.Args, "endTime"); t != nil {
		params.End = *t
	}
	if n := argOptInt64(p.Args, "numberOfParticipants"); n != nil {
		params.NumberOfParticipants = int(*n)
	}
	event, err := r.Events.CreateEvent(p.Context, params)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"event": event}, nil
}
