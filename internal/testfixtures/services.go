package testfixtures

import (
	"log/slog"

	"github.com/example/roombooking/internal/application"
	"github.com/example/roombooking/internal/persistence"
	"github.com/example/roombooking/internal/validation"
)

// Services bundles every application service bound to one unit of work.
type Services struct {
	Locations *application.LocationService
	Rooms     *application.RoomService
	Offices   *application.OfficeService
	Blocks    *application.BlockService
	Devices   *application.DeviceService
	Events    *application.EventService
}

// ServiceFactory assists tests with constructing application services.
type ServiceFactory struct {
	Validator *validation.Validator
	Logger    *slog.Logger
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Validator == nil {
		factory.Validator = validation.New(nil)
	}
	if factory.Logger == nil {
		factory.Logger = DiscardLogger()
	}
	return factory
}

// WithValidator overrides the validator used by the factory.
func WithValidator(v *validation.Validator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Validator = v
	}
}

// WithLogger overrides the logger used by the factory.
func WithLogger(logger *slog.Logger) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Logger = logger
	}
}

// NewServices builds every service on top of uow.
func (f *ServiceFactory) NewServices(uow persistence.UnitOfWork) Services {
	return Services{
		Locations: application.NewLocationServiceWithLogger(uow, f.Validator, f.Logger),
		Rooms:     application.NewRoomServiceWithLogger(uow, f.Validator, f.Logger),
		Offices:   application.NewOfficeServiceWithLogger(uow, f.Validator, f.Logger),
		Blocks:    application.NewBlockServiceWithLogger(uow, f.Validator, f.Logger),
		Devices:   application.NewDeviceServiceWithLogger(uow, f.Validator, f.Logger),
		Events:    application.NewEventServiceWithLogger(uow, f.Validator, f.Logger),
	}
}
