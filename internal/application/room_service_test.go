package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/roombooking/internal/persistence"
)

func TestRoomService_CreateRoom(t *testing.T) {
	t.Run("creates a room in an active location", func(t *testing.T) {
		rooms := newRoomRepoStub()
		svc := NewRoomService(newUOWStub(newLocationRepoStub(activeLocation(1, "Lagos")), rooms), nil)

		room, err := svc.CreateRoom(context.Background(), CreateRoomParams{
			Principal:  adminPrincipal,
			Name:       "Oculus",
			RoomType:   "meeting",
			Capacity:   6,
			LocationID: 1,
			CalendarID: strPtr("andela.com_oculus@resource.calendar.google.com"),
		})
		if err != nil {
			t.Fatalf("CreateRoom returned error: %v", err)
		}
		if room.ID == 0 || room.State != persistence.StateActive || room.CalendarID == nil {
			t.Fatalf("unexpected room: %#v", room)
		}
	})

	t.Run("rejects archived locations", func(t *testing.T) {
		archived := activeLocation(1, "Lagos")
		archived.State = persistence.StateArchived
		svc := NewRoomService(newUOWStub(newLocationRepoStub(archived), nil), nil)

		_, err := svc.CreateRoom(context.Background(), CreateRoomParams{
			Principal: adminPrincipal, Name: "Oculus", RoomType: "meeting", Capacity: 6, LocationID: 1,
		})
		var nf *NotFoundError
		if !errors.As(err, &nf) || nf.Entity != "Location" {
			t.Fatalf("expected location not found, got %v", err)
		}
	})

	t.Run("validates input", func(t *testing.T) {
		uow := newUOWStub(nil, nil)
		svc := NewRoomService(uow, nil)

		_, err := svc.CreateRoom(context.Background(), CreateRoomParams{Principal: adminPrincipal, Capacity: 0})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"name", "room_type", "capacity"} {
			if vErr.FieldErrors[field] == "" {
				t.Fatalf("expected %s to be reported, got %v", field, vErr.FieldErrors)
			}
		}
		if uow.writes != 0 {
			t.Fatalf("expected no transaction")
		}
	})
}

func TestRoomService_UpdateRoom(t *testing.T) {
	rooms := newRoomRepoStub(Room{ID: 4, Name: "Oculus", RoomType: "meeting", Capacity: 6, LocationID: 1, State: persistence.StateActive})
	svc := NewRoomService(newUOWStub(nil, rooms), nil)

	room, err := svc.UpdateRoom(context.Background(), UpdateRoomParams{
		Principal:     adminPrincipal,
		RoomID:        4,
		Capacity:      intPtr(10),
		NextSyncToken: strPtr("CPDAlvWDx70CEPDAlvWDx70CGAU="),
	})
	if err != nil {
		t.Fatalf("UpdateRoom returned error: %v", err)
	}
	if room.Capacity != 10 || room.NextSyncToken == nil || room.Name != "Oculus" {
		t.Fatalf("unexpected merge: %#v", room)
	}

	_, err = svc.UpdateRoom(context.Background(), UpdateRoomParams{Principal: adminPrincipal, RoomID: 4, Capacity: intPtr(-1)})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRoomService_DeleteRoom(t *testing.T) {
	rooms := newRoomRepoStub(Room{ID: 4, Name: "Oculus", LocationID: 1, State: persistence.StateActive})
	svc := NewRoomService(newUOWStub(nil, rooms), nil)
	ctx := context.Background()

	room, err := svc.DeleteRoom(ctx, DeleteRoomParams{Principal: adminPrincipal, RoomID: 4})
	if err != nil {
		t.Fatalf("DeleteRoom returned error: %v", err)
	}
	if room.State != persistence.StateArchived {
		t.Fatalf("expected archived room, got %q", room.State)
	}

	if _, err := svc.GetRoom(ctx, 4); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected archived room to be hidden, got %v", err)
	}
	listed, err := svc.ListRooms(ctx)
	if err != nil || len(listed) != 0 {
		t.Fatalf("expected no active rooms, got %d (%v)", len(listed), err)
	}
}
