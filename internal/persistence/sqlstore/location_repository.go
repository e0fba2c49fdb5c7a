package sqlstore

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/example/roombooking/internal/persistence"
)

const locationsTable = "locations"

type locationRepository struct {
	q *querier
}

func (r locationRepository) CreateLocation(ctx context.Context, location persistence.Location) (persistence.Location, error) {
	if location.State == "" {
		location.State = persistence.StateActive
	}
	id, err := r.q.insert(ctx, r.q.insertInto(locationsTable).Rows(location))
	if err != nil {
		return persistence.Location{}, err
	}
	location.ID = id
	return location, nil
}

func (r locationRepository) UpdateLocation(ctx context.Context, location persistence.Location) error {
	return r.q.exec(ctx, r.q.update(locationsTable).Set(location).Where(goqu.C("id").Eq(location.ID)))
}

func (r locationRepository) GetLocation(ctx context.Context, id int64) (persistence.Location, error) {
	var location persistence.Location
	err := r.q.get(ctx, &location, r.q.from(locationsTable).
		Select(persistence.Location{}).
		Where(goqu.C("id").Eq(id)))
	return location, err
}

func (r locationRepository) CountLocationsByNameFold(ctx context.Context, name string) (int, error) {
	return r.q.count(ctx, r.q.from(locationsTable).
		Where(r.q.folded("name").Eq(foldName(name))))
}

func (r locationRepository) CountActiveLocationsByName(ctx context.Context, name string) (int, error) {
	return r.q.count(ctx, r.q.from(locationsTable).
		Where(goqu.C("name").Eq(name), goqu.C("state").Eq(persistence.StateActive)))
}

func (r locationRepository) ListActiveLocations(ctx context.Context) ([]persistence.Location, error) {
	locations := []persistence.Location{}
	err := r.q.selectAll(ctx, &locations, r.q.from(locationsTable).
		Select(persistence.Location{}).
		Where(goqu.C("state").Eq(persistence.StateActive)).
		Order(r.q.folded("name").Asc(), goqu.C("id").Asc()))
	return locations, err
}
