package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/roombooking/internal/persistence"
	"github.com/example/roombooking/internal/validation"
)

// RoomService orchestrates validation and persistence for rooms.
type RoomService struct {
	uow       persistence.UnitOfWork
	validator *validation.Validator
	logger    *slog.Logger
}

// NewRoomService constructs a room service with the provided dependencies.
func NewRoomService(uow persistence.UnitOfWork, v *validation.Validator) *RoomService {
	return NewRoomServiceWithLogger(uow, v, nil)
}

// NewRoomServiceWithLogger constructs a room service with a specified logger.
func NewRoomServiceWithLogger(uow persistence.UnitOfWork, v *validation.Validator, logger *slog.Logger) *RoomService {
	if v == nil {
		v = validation.New(nil)
	}
	return &RoomService{uow: uow, validator: v, logger: defaultLogger(logger)}
}

func (s *RoomService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RoomService", operation, attrs...)
}

// CreateRoom validates input and adds a room to an active location.
func (s *RoomService) CreateRoom(ctx context.Context, params CreateRoomParams) (room Room, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateRoom",
		"principal_id", params.Principal.UserID,
		"location_id", params.LocationID,
	)
	defer func() {
		logOutcome(ctx, logger, err, "failed to create room", "room created", "room_id", room.ID)
	}()

	vErr := &ValidationError{}
	vErr.check(s.validator.Required("name", params.Name))
	vErr.check(s.validator.Required("room_type", params.RoomType))
	if params.Capacity <= 0 {
		vErr.add("capacity", "capacity must be positive")
	}
	imageURL := normalizeOptionalString(params.ImageURL)
	if imageURL != nil {
		vErr.check(s.validator.URL("image_url", *imageURL))
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	err = s.uow.WithinTx(ctx, func(repos persistence.Repositories) error {
		location, err := repos.Locations().GetLocation(ctx, params.LocationID)
		if errors.Is(err, persistence.ErrNotFound) || (err == nil && location.State != persistence.StateActive) {
			return &NotFoundError{Entity: "Location", ID: params.LocationID}
		}
		if err != nil {
			return err
		}

		created, err := repos.Rooms().CreateRoom(ctx, Room{
			Name:       strings.TrimSpace(params.Name),
			RoomType:   strings.TrimSpace(params.RoomType),
			Capacity:   params.Capacity,
			LocationID: location.ID,
			FloorID:    params.FloorID,
			CalendarID: normalizeOptionalString(params.CalendarID),
			ImageURL:   imageURL,
			State:      persistence.StateActive,
		})
		if err != nil {
			return mapRepoError(err, "Room", 0)
		}
		room = created
		return nil
	})
	return
}

// UpdateRoom merges the provided fields into an active room.
func (s *RoomService) UpdateRoom(ctx context.Context, params UpdateRoomParams) (room Room, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateRoom",
		"principal_id", params.Principal.UserID,
		"room_id", params.RoomID,
	)
	defer func() {
		logOutcome(ctx, logger, err, "failed to update room", "room updated", "room_id", room.ID)
	}()

	err = s.uow.WithinTx(ctx, func(repos persistence.Repositories) error {
		existing, err := activeRoom(ctx, repos, params.RoomID)
		if err != nil {
			return err
		}

		vErr := &ValidationError{}
		if params.Name != nil {
			vErr.check(s.validator.Required("name", *params.Name))
		}
		if params.RoomType != nil {
			vErr.check(s.validator.Required("room_type", *params.RoomType))
		}
		if params.Capacity != nil && *params.Capacity <= 0 {
			vErr.add("capacity", "capacity must be positive")
		}
		if params.ImageURL != nil {
			vErr.check(s.validator.URL("image_url", *params.ImageURL))
		}
		if vErr.HasErrors() {
			return vErr
		}

		updated := existing
		if params.Name != nil {
			updated.Name = strings.TrimSpace(*params.Name)
		}
		if params.RoomType != nil {
			updated.RoomType = strings.TrimSpace(*params.RoomType)
		}
		if params.Capacity != nil {
			updated.Capacity = *params.Capacity
		}
		if params.FloorID != nil {
			updated.FloorID = params.FloorID
		}
		if params.CalendarID != nil {
			updated.CalendarID = normalizeOptionalString(params.CalendarID)
		}
		if params.ImageURL != nil {
			updated.ImageURL = normalizeOptionalString(params.ImageURL)
		}
		if params.NextSyncToken != nil {
			updated.NextSyncToken = normalizeOptionalString(params.NextSyncToken)
		}

		if err := repos.Rooms().UpdateRoom(ctx, updated); err != nil {
			return mapRepoError(err, "Room", updated.ID)
		}
		room = updated
		return nil
	})
	return
}

// DeleteRoom archives an active room.
func (s *RoomService) DeleteRoom(ctx context.Context, params DeleteRoomParams) (room Room, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}

	logger := s.loggerWith(ctx, "DeleteRoom",
		"principal_id", params.Principal.UserID,
		"room_id", params.RoomID,
	)
	defer func() {
		logOutcome(ctx, logger, err, "failed to delete room", "room archived", "state", room.State)
	}()

	state, vErr := archiveState(params.State)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	err = s.uow.WithinTx(ctx, func(repos persistence.Repositories) error {
		existing, err := activeRoom(ctx, repos, params.RoomID)
		if err != nil {
			return err
		}
		existing.State = state
		if err := repos.Rooms().UpdateRoom(ctx, existing); err != nil {
			return mapRepoError(err, "Room", existing.ID)
		}
		room = existing
		return nil
	})
	return
}

// GetRoom returns an active room.
func (s *RoomService) GetRoom(ctx context.Context, roomID int64) (room Room, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}
	err = s.uow.WithinReadTx(ctx, func(repos persistence.Repositories) error {
		var err error
		room, err = activeRoom(ctx, repos, roomID)
		return err
	})
	if err != nil {
		s.loggerWith(ctx, "GetRoom", "room_id", roomID).
			WarnContext(ctx, "failed to get room", "error", err, "error_kind", ErrorKind(err))
	}
	return
}

// ListRooms returns every active room.
func (s *RoomService) ListRooms(ctx context.Context) (rooms []Room, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}
	err = s.uow.WithinReadTx(ctx, func(repos persistence.Repositories) error {
		var err error
		rooms, err = repos.Rooms().ListActiveRooms(ctx)
		return err
	})
	if err != nil {
		s.loggerWith(ctx, "ListRooms").ErrorContext(ctx, "failed to list rooms", "error", err, "error_kind", ErrorKind(err))
	}
	return
}

func activeRoom(ctx context.Context, repos persistence.Repositories, id int64) (Room, error) {
	room, err := repos.Rooms().GetRoom(ctx, id)
	if errors.Is(err, persistence.ErrNotFound) || (err == nil && room.State != persistence.StateActive) {
		return Room{}, &NotFoundError{Entity: "Room", ID: id}
	}
	return room, err
}
