package sqlstore

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/example/roombooking/internal/persistence"
)

const officesTable = "offices"

type officeRepository struct {
	q *querier
}

func (r officeRepository) CreateOffice(ctx context.Context, office persistence.Office) (persistence.Office, error) {
	if office.State == "" {
		office.State = persistence.StateActive
	}
	id, err := r.q.insert(ctx, r.q.insertInto(officesTable).Rows(office))
	if err != nil {
		return persistence.Office{}, err
	}
	office.ID = id
	return office, nil
}

func (r officeRepository) GetOffice(ctx context.Context, id int64) (persistence.Office, error) {
	var office persistence.Office
	err := r.q.get(ctx, &office, r.q.from(officesTable).
		Select(persistence.Office{}).
		Where(goqu.C("id").Eq(id)))
	return office, err
}

func (r officeRepository) ListActiveOffices(ctx context.Context) ([]persistence.Office, error) {
	offices := []persistence.Office{}
	err := r.q.selectAll(ctx, &offices, r.q.from(officesTable).
		Select(persistence.Office{}).
		Where(goqu.C("state").Eq(persistence.StateActive)).
		Order(r.q.folded("name").Asc()))
	return offices, err
}
