package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/roombooking/internal/persistence"
	"github.com/example/roombooking/internal/validation"
)

// EventService records calendar events synced for rooms. Recurring events
// are stored one row per occurrence and share a recurring event id.
type EventService struct {
	uow       persistence.UnitOfWork
	validator *validation.Validator
	logger    *slog.Logger
}

// NewEventServiceWithLogger constructs an event service.
func NewEventServiceWithLogger(uow persistence.UnitOfWork, v *validation.Validator, logger *slog.Logger) *EventService {
	if v == nil {
		v = validation.New(nil)
	}
	return &EventService{uow: uow, validator: v, logger: defaultLogger(logger)}
}

// CreateEvent stores an event for an active room.
func (s *EventService) CreateEvent(ctx context.Context, params CreateEventParams) (event Event, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}

	logger := serviceLogger(ctx, s.logger, "EventService", "CreateEvent",
		"principal_id", params.Principal.UserID,
		"room_id", params.RoomID,
		"event_id", params.EventID,
	)
	defer func() {
		logOutcome(ctx, logger, err, "failed to create event", "event created", "id", event.ID)
	}()

	vErr := &ValidationError{}
	vErr.check(s.validator.Required("event_id", params.EventID))
	if params.NumberOfParticipants < 0 {
		vErr.add("number_of_participants", "number_of_participants cannot be negative")
	}
	if params.Start.IsZero() || params.End.IsZero() {
		vErr.add("start_time", "start_time and end_time are required")
	} else if !params.Start.Before(params.End) {
		vErr.add("end_time", "end_time must be after start_time")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	err = s.uow.WithinTx(ctx, func(repos persistence.Repositories) error {
		if _, err := activeRoom(ctx, repos, params.RoomID); err != nil {
			return err
		}
		created, err := repos.Events().CreateEvent(ctx, Event{
			EventID:              strings.TrimSpace(params.EventID),
			RoomID:               params.RoomID,
			Title:                normalizeOptionalString(params.Title),
			StartTime:            params.Start.UTC(),
			EndTime:              params.End.UTC(),
			NumberOfParticipants: params.NumberOfParticipants,
			RecurringEventID:     normalizeOptionalString(params.RecurringEventID),
			State:                persistence.StateActive,
		})
		if err != nil {
			return mapRepoError(err, "Event", 0)
		}
		event = created
		return nil
	})
	return
}

// ListRoomEvents returns the active events of a room ordered by start time.
func (s *EventService) ListRoomEvents(ctx context.Context, roomID int64) (events []Event, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}
	err = s.uow.WithinReadTx(ctx, func(repos persistence.Repositories) error {
		var err error
		events, err = repos.Events().ListActiveRoomEvents(ctx, roomID)
		return err
	})
	return
}

// ListRecurringOccurrences returns every active occurrence sharing recurringEventID.
func (s *EventService) ListRecurringOccurrences(ctx context.Context, recurringEventID string) (events []Event, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}
	if fe := s.validator.Required("recurring_event_id", recurringEventID); fe != nil {
		vErr := &ValidationError{}
		vErr.check(fe)
		return nil, vErr
	}
	err = s.uow.WithinReadTx(ctx, func(repos persistence.Repositories) error {
		var err error
		events, err = repos.Events().ListEventsByRecurringID(ctx, strings.TrimSpace(recurringEventID))
		return err
	})
	return
}
