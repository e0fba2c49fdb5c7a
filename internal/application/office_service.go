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

// OfficeService manages offices inside locations.
type OfficeService struct {
	uow       persistence.UnitOfWork
	validator *validation.Validator
	logger    *slog.Logger
}

// NewOfficeServiceWithLogger constructs an office service.
func NewOfficeServiceWithLogger(uow persistence.UnitOfWork, v *validation.Validator, logger *slog.Logger) *OfficeService {
	if v == nil {
		v = validation.New(nil)
	}
	return &OfficeService{uow: uow, validator: v, logger: defaultLogger(logger)}
}

// CreateOffice adds an office to an active location.
func (s *OfficeService) CreateOffice(ctx context.Context, params CreateOfficeParams) (office Office, err error) {
	if s == nil {
		err = fmt.Errorf("OfficeService is nil")
		return
	}

	logger := serviceLogger(ctx, s.logger, "OfficeService", "CreateOffice",
		"principal_id", params.Principal.UserID,
		"location_id", params.LocationID,
	)
	defer func() {
		logOutcome(ctx, logger, err, "failed to create office", "office created", "office_id", office.ID)
	}()

	if fe := s.validator.Required("name", params.Name); fe != nil {
		vErr := &ValidationError{}
		vErr.check(fe)
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
		created, err := repos.Offices().CreateOffice(ctx, Office{
			Name:       strings.TrimSpace(params.Name),
			LocationID: location.ID,
			State:      persistence.StateActive,
		})
		if err != nil {
			return mapRepoError(err, "Office", 0)
		}
		office = created
		return nil
	})
	return
}

// ListOffices returns active offices ordered by name.
func (s *OfficeService) ListOffices(ctx context.Context) (offices []Office, err error) {
	if s == nil {
		err = fmt.Errorf("OfficeService is nil")
		return
	}
	err = s.uow.WithinReadTx(ctx, func(repos persistence.Repositories) error {
		var err error
		offices, err = repos.Offices().ListActiveOffices(ctx)
		return err
	})
	return
}
