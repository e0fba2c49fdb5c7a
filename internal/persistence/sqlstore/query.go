package sqlstore

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/example/roombooking/internal/persistence"
	"github.com/example/roombooking/internal/persistence/sqlstore/migration"
)

// querier builds prepared statements with goqu and runs them on one transaction.
type querier struct {
	tx        *sqlx.Tx
	builder   goqu.DialectWrapper
	dialect   migration.Dialect
	returning bool
	mapper    *ErrorMapper
}

type sqlBuilder interface {
	ToSQL() (string, []interface{}, error)
}

func (q *querier) from(table string) *goqu.SelectDataset {
	return q.builder.From(table).Prepared(true)
}

func (q *querier) insertInto(table string) *goqu.InsertDataset {
	return q.builder.Insert(table).Prepared(true)
}

func (q *querier) update(table string) *goqu.UpdateDataset {
	return q.builder.Update(table).Prepared(true)
}

func (q *querier) deleteFrom(table string) *goqu.DeleteDataset {
	return q.builder.Delete(table).Prepared(true)
}

func (q *querier) get(ctx context.Context, dest interface{}, ds sqlBuilder) error {
	query, args, err := ds.ToSQL()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return q.mapper.MapError(q.tx.GetContext(ctx, dest, query, args...))
}

func (q *querier) selectAll(ctx context.Context, dest interface{}, ds sqlBuilder) error {
	query, args, err := ds.ToSQL()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return q.mapper.MapError(q.tx.SelectContext(ctx, dest, query, args...))
}

func (q *querier) count(ctx context.Context, ds *goqu.SelectDataset) (int, error) {
	var n int
	if err := q.get(ctx, &n, ds.Select(goqu.COUNT(goqu.Star()))); err != nil {
		return 0, err
	}
	return n, nil
}

// insert runs the statement and returns the generated id.
func (q *querier) insert(ctx context.Context, ds *goqu.InsertDataset) (int64, error) {
	if q.returning {
		query, args, err := ds.Returning(goqu.C("id")).ToSQL()
		if err != nil {
			return 0, fmt.Errorf("build insert: %w", err)
		}
		var id int64
		if err := q.tx.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, q.mapper.MapError(err)
		}
		return id, nil
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}
	res, err := q.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, q.mapper.MapError(err)
	}
	return res.LastInsertId()
}

// exec runs an update or delete and fails with ErrNotFound when no row matched.
func (q *querier) exec(ctx context.Context, ds sqlBuilder) error {
	query, args, err := ds.ToSQL()
	if err != nil {
		return fmt.Errorf("build statement: %w", err)
	}
	res, err := q.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return q.mapper.MapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

type repositories struct {
	q *querier
}

func newRepositories(s *Store, tx *sqlx.Tx) persistence.Repositories {
	return &repositories{q: &querier{
		tx:        tx,
		builder:   s.builder,
		dialect:   s.dialect,
		returning: s.dialect == migration.DialectPostgres,
		mapper:    s.mapper,
	}}
}

func (r *repositories) Locations() persistence.LocationRepository { return locationRepository{q: r.q} }
func (r *repositories) Rooms() persistence.RoomRepository         { return roomRepository{q: r.q} }
func (r *repositories) Offices() persistence.OfficeRepository     { return officeRepository{q: r.q} }
func (r *repositories) Blocks() persistence.BlockRepository       { return blockRepository{q: r.q} }
func (r *repositories) Devices() persistence.DeviceRepository     { return deviceRepository{q: r.q} }
func (r *repositories) Events() persistence.EventRepository       { return eventRepository{q: r.q} }
