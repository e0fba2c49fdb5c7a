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

// DeviceService manages room hardware.
type DeviceService struct {
	uow       persistence.UnitOfWork
	validator *validation.Validator
	logger    *slog.Logger
}

// NewDeviceServiceWithLogger constructs a device service.
func NewDeviceServiceWithLogger(uow persistence.UnitOfWork, v *validation.Validator, logger *slog.Logger) *DeviceService {
	if v == nil {
		v = validation.New(nil)
	}
	return &DeviceService{uow: uow, validator: v, logger: defaultLogger(logger)}
}

func (s *DeviceService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "DeviceService", operation, attrs...)
}

// CreateDevice registers a device in an active room.
func (s *DeviceService) CreateDevice(ctx context.Context, params CreateDeviceParams) (device Device, err error) {
	if s == nil {
		err = fmt.Errorf("DeviceService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateDevice",
		"principal_id", params.Principal.UserID,
		"room_id", params.RoomID,
	)
	defer func() {
		logOutcome(ctx, logger, err, "failed to create device", "device created", "device_id", device.ID)
	}()

	vErr := &ValidationError{}
	vErr.check(s.validator.Required("name", params.Name))
	vErr.check(s.validator.Required("device_type", params.DeviceType))
	vErr.check(s.validator.Required("location", params.Location))
	if vErr.HasErrors() {
		err = vErr
		return
	}

	err = s.uow.WithinTx(ctx, func(repos persistence.Repositories) error {
		if _, err := activeRoom(ctx, repos, params.RoomID); err != nil {
			return err
		}
		active := persistence.StateActive
		created, err := repos.Devices().CreateDevice(ctx, Device{
			Name:       strings.TrimSpace(params.Name),
			DeviceType: strings.TrimSpace(params.DeviceType),
			RoomID:     params.RoomID,
			LastSeen:   params.LastSeen,
			Location:   strings.TrimSpace(params.Location),
			State:      &active,
		})
		if err != nil {
			return mapRepoError(err, "Device", 0)
		}
		device = created
		return nil
	})
	return
}

// DeleteDevice archives a device. Devices without a recorded state count as active.
func (s *DeviceService) DeleteDevice(ctx context.Context, params DeleteDeviceParams) (device Device, err error) {
	if s == nil {
		err = fmt.Errorf("DeviceService is nil")
		return
	}

	logger := s.loggerWith(ctx, "DeleteDevice",
		"principal_id", params.Principal.UserID,
		"device_id", params.DeviceID,
	)
	defer func() {
		logOutcome(ctx, logger, err, "failed to delete device", "device archived")
	}()

	state, vErr := archiveState(params.State)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	err = s.uow.WithinTx(ctx, func(repos persistence.Repositories) error {
		existing, err := repos.Devices().GetDevice(ctx, params.DeviceID)
		if errors.Is(err, persistence.ErrNotFound) || (err == nil && existing.State != nil && *existing.State != persistence.StateActive) {
			return &NotFoundError{Entity: "Device", ID: params.DeviceID}
		}
		if err != nil {
			return err
		}
		existing.State = &state
		if err := repos.Devices().UpdateDevice(ctx, existing); err != nil {
			return mapRepoError(err, "Device", existing.ID)
		}
		device = existing
		return nil
	})
	return
}

// ListDevices returns active devices.
func (s *DeviceService) ListDevices(ctx context.Context) (devices []Device, err error) {
	if s == nil {
		err = fmt.Errorf("DeviceService is nil")
		return
	}
	err = s.uow.WithinReadTx(ctx, func(repos persistence.Repositories) error {
		var err error
		devices, err = repos.Devices().ListActiveDevices(ctx)
		return err
	})
	return
}
