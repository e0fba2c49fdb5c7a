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

// LocationService creates, edits, archives, and lists locations.
type LocationService struct {
	uow       persistence.UnitOfWork
	validator *validation.Validator
	logger    *slog.Logger
}

// NewLocationService constructs a location service with the provided dependencies.
func NewLocationService(uow persistence.UnitOfWork, v *validation.Validator) *LocationService {
	return NewLocationServiceWithLogger(uow, v, nil)
}

// NewLocationServiceWithLogger constructs a location service with a specified logger.
func NewLocationServiceWithLogger(uow persistence.UnitOfWork, v *validation.Validator, logger *slog.Logger) *LocationService {
	if v == nil {
		v = validation.New(nil)
	}
	return &LocationService{uow: uow, validator: v, logger: defaultLogger(logger)}
}

func (s *LocationService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "LocationService", operation, attrs...)
}

// CreateLocation validates input, rejects names already used by any
// location regardless of case, and persists the new row.
func (s *LocationService) CreateLocation(ctx context.Context, params CreateLocationParams) (location Location, err error) {
	if s == nil {
		err = fmt.Errorf("LocationService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateLocation",
		"principal_id", params.Principal.UserID,
		"name", params.Name,
	)
	defer func() {
		logOutcome(ctx, logger, err, "failed to create location", "location created", "location_id", location.ID)
	}()

	name := strings.TrimSpace(params.Name)
	vErr := &ValidationError{}
	vErr.check(s.validator.Required("name", name))
	vErr.check(s.validator.Required("abbreviation", params.Abbreviation))
	vErr.check(s.validator.Country("country", params.Country))
	vErr.check(s.validator.TimeZone("time_zone", params.TimeZone))
	imageURL := normalizeOptionalString(params.ImageURL)
	if imageURL != nil {
		vErr.check(s.validator.URL("image_url", *imageURL))
	}
	state := persistence.StateActive
	if params.State != nil {
		if fe := s.validator.State("state", *params.State); fe != nil {
			vErr.check(fe)
		} else {
			state = persistence.State(strings.TrimSpace(*params.State))
		}
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	err = s.uow.WithinTx(ctx, func(repos persistence.Repositories) error {
		matches, err := repos.Locations().CountLocationsByNameFold(ctx, name)
		if err != nil {
			return err
		}
		if matches > 0 {
			return &ConflictError{Entity: "Location", Name: name}
		}

		created, err := repos.Locations().CreateLocation(ctx, Location{
			Name:         name,
			Abbreviation: strings.TrimSpace(params.Abbreviation),
			Country:      strings.TrimSpace(params.Country),
			ImageURL:     imageURL,
			TimeZone:     strings.TrimSpace(params.TimeZone),
			State:        state,
		})
		if err != nil {
			return mapRepoError(err, "Location", 0)
		}
		location = created
		return nil
	})
	return
}

// UpdateLocation merges the provided fields into an active location.
//
// After validation the resulting name (the new one when given, otherwise the
// stored one) must still match an active location exactly, otherwise the
// update is rejected with "Not a valid location".
func (s *LocationService) UpdateLocation(ctx context.Context, params UpdateLocationParams) (location Location, err error) {
	if s == nil {
		err = fmt.Errorf("LocationService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateLocation",
		"principal_id", params.Principal.UserID,
		"location_id", params.LocationID,
	)
	defer func() {
		logOutcome(ctx, logger, err, "failed to update location", "location updated", "location_id", location.ID)
	}()

	err = s.uow.WithinTx(ctx, func(repos persistence.Repositories) error {
		existing, err := s.activeLocation(ctx, repos, params.LocationID)
		if err != nil {
			return err
		}

		if vErr := s.validateLocationDelta(params); vErr.HasErrors() {
			return vErr
		}

		name := existing.Name
		if params.Name != nil {
			name = strings.TrimSpace(*params.Name)
		}
		matches, err := repos.Locations().CountActiveLocationsByName(ctx, name)
		if err != nil {
			return err
		}
		if matches == 0 {
			return &RejectionError{Reason: "Not a valid location"}
		}

		updated := existing
		updated.Name = name
		if params.Abbreviation != nil {
			updated.Abbreviation = strings.TrimSpace(*params.Abbreviation)
		}
		if params.Country != nil {
			updated.Country = strings.TrimSpace(*params.Country)
		}
		if params.ImageURL != nil {
			updated.ImageURL = normalizeOptionalString(params.ImageURL)
		}
		if params.TimeZone != nil {
			updated.TimeZone = strings.TrimSpace(*params.TimeZone)
		}

		if err := repos.Locations().UpdateLocation(ctx, updated); err != nil {
			return mapRepoError(err, "Location", updated.ID)
		}
		location = updated
		return nil
	})
	return
}

func (s *LocationService) validateLocationDelta(params UpdateLocationParams) *ValidationError {
	vErr := &ValidationError{}
	if params.Name != nil {
		vErr.check(s.validator.Required("name", *params.Name))
	}
	if params.Abbreviation != nil {
		vErr.check(s.validator.Required("abbreviation", *params.Abbreviation))
	}
	if params.Country != nil {
		vErr.check(s.validator.Country("country", *params.Country))
	}
	if params.TimeZone != nil {
		vErr.check(s.validator.TimeZone("time_zone", *params.TimeZone))
	}
	if params.ImageURL != nil {
		vErr.check(s.validator.URL("image_url", *params.ImageURL))
	}
	return vErr
}

// DeleteLocation archives an active location, or moves it to the requested
// non-active state.
func (s *LocationService) DeleteLocation(ctx context.Context, params DeleteLocationParams) (location Location, err error) {
	if s == nil {
		err = fmt.Errorf("LocationService is nil")
		return
	}

	logger := s.loggerWith(ctx, "DeleteLocation",
		"principal_id", params.Principal.UserID,
		"location_id", params.LocationID,
	)
	defer func() {
		logOutcome(ctx, logger, err, "failed to delete location", "location archived", "state", location.State)
	}()

	state, vErr := archiveState(params.State)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	err = s.uow.WithinTx(ctx, func(repos persistence.Repositories) error {
		existing, err := s.activeLocation(ctx, repos, params.LocationID)
		if err != nil {
			return err
		}
		existing.State = state
		if err := repos.Locations().UpdateLocation(ctx, existing); err != nil {
			return mapRepoError(err, "Location", existing.ID)
		}
		location = existing
		return nil
	})
	return
}

// ListLocations returns active locations ordered by name, ignoring case.
func (s *LocationService) ListLocations(ctx context.Context) (locations []Location, err error) {
	if s == nil {
		err = fmt.Errorf("LocationService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ListLocations")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list locations", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.DebugContext(ctx, "locations listed", "result_count", len(locations))
	}()

	err = s.uow.WithinReadTx(ctx, func(repos persistence.Repositories) error {
		var err error
		locations, err = repos.Locations().ListActiveLocations(ctx)
		return err
	})
	return
}

// ListRoomsInLocation returns the active rooms of an active location. An
// unknown or inactive location yields an empty list.
func (s *LocationService) ListRoomsInLocation(ctx context.Context, locationID int64) (rooms []Room, err error) {
	if s == nil {
		err = fmt.Errorf("LocationService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ListRoomsInLocation", "location_id", locationID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list rooms in location", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.DebugContext(ctx, "rooms in location listed", "result_count", len(rooms))
	}()

	err = s.uow.WithinReadTx(ctx, func(repos persistence.Repositories) error {
		var err error
		rooms, err = repos.Rooms().ListActiveRoomsInLocation(ctx, locationID)
		return err
	})
	return
}

func (s *LocationService) activeLocation(ctx context.Context, repos persistence.Repositories, id int64) (Location, error) {
	location, err := repos.Locations().GetLocation(ctx, id)
	if errors.Is(err, persistence.ErrNotFound) || (err == nil && location.State != persistence.StateActive) {
		return Location{}, &NotFoundError{Entity: "Location", ID: id}
	}
	return location, err
}
