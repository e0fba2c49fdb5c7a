package sqlstore

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/example/roombooking/internal/persistence"
)

const devicesTable = "devices"

type deviceRepository struct {
	q *querier
}

func (r deviceRepository) CreateDevice(ctx context.Context, device persistence.Device) (persistence.Device, error) {
	if device.State == nil {
		active := persistence.StateActive
		device.State = &active
	}
	id, err := r.q.insert(ctx, r.q.insertInto(devicesTable).Rows(device))
	if err != nil {
		return persistence.Device{}, err
	}
	device.ID = id
	return device, nil
}

func (r deviceRepository) UpdateDevice(ctx context.Context, device persistence.Device) error {
	return r.q.exec(ctx, r.q.update(devicesTable).Set(device).Where(goqu.C("id").Eq(device.ID)))
}

func (r deviceRepository) GetDevice(ctx context.Context, id int64) (persistence.Device, error) {
	var device persistence.Device
	err := r.q.get(ctx, &device, r.q.from(devicesTable).
		Select(persistence.Device{}).
		Where(goqu.C("id").Eq(id)))
	return device, err
}

func (r deviceRepository) ListActiveDevices(ctx context.Context) ([]persistence.Device, error) {
	devices := []persistence.Device{}
	err := r.q.selectAll(ctx, &devices, r.q.from(devicesTable).
		Select(persistence.Device{}).
		Where(goqu.Or(
			goqu.C("state").Eq(persistence.StateActive),
			goqu.C("state").IsNull(),
		)).
		Order(goqu.C("id").Asc()))
	return devices, err
}
