package sqlstore

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/example/roombooking/internal/persistence"
)

const eventsTable = "events"

type eventRepository struct {
	q *querier
}

func (r eventRepository) CreateEvent(ctx context.Context, event persistence.Event) (persistence.Event, error) {
	if event.State == "" {
		event.State = persistence.StateActive
	}
	id, err := r.q.insert(ctx, r.q.insertInto(eventsTable).Rows(event))
	if err != nil {
		return persistence.Event{}, err
	}
	event.ID = id
	return event, nil
}

func (r eventRepository) ListActiveRoomEvents(ctx context.Context, roomID int64) ([]persistence.Event, error) {
	events := []persistence.Event{}
	err := r.q.selectAll(ctx, &events, r.q.from(eventsTable).
		Select(persistence.Event{}).
		Where(goqu.C("room_id").Eq(roomID), goqu.C("state").Eq(persistence.StateActive)).
		Order(goqu.C("start_time").Asc(), goqu.C("id").Asc()))
	return events, err
}

func (r eventRepository) ListEventsByRecurringID(ctx context.Context, recurringEventID string) ([]persistence.Event, error) {
	events := []persistence.Event{}
	err := r.q.selectAll(ctx, &events, r.q.from(eventsTable).
		Select(persistence.Event{}).
		Where(
			goqu.C("recurring_event_id").Eq(recurringEventID),
			goqu.C("state").Eq(persistence.StateActive),
		).
		Order(goqu.C("start_time").Asc(), goqu.C("id").Asc()))
	return events, err
}
