package sqlstore

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/example/roombooking/internal/persistence"
)

const (
	blocksTable = "blocks"
	floorsTable = "floors"
)

type blockRepository struct {
	q *querier
}

func (r blockRepository) CreateBlock(ctx context.Context, block persistence.Block) (persistence.Block, error) {
	if block.State == "" {
		block.State = persistence.StateActive
	}
	id, err := r.q.insert(ctx, r.q.insertInto(blocksTable).Rows(block))
	if err != nil {
		return persistence.Block{}, err
	}
	block.ID = id
	block.Floors = []persistence.Floor{}
	return block, nil
}

func (r blockRepository) GetBlock(ctx context.Context, id int64) (persistence.Block, error) {
	var block persistence.Block
	if err := r.q.get(ctx, &block, r.q.from(blocksTable).
		Select(persistence.Block{}).
		Where(goqu.C("id").Eq(id))); err != nil {
		return persistence.Block{}, err
	}
	floors, err := r.ListFloors(ctx, id)
	if err != nil {
		return persistence.Block{}, err
	}
	block.Floors = floors
	return block, nil
}

func (r blockRepository) CountBlocksByNameFold(ctx context.Context, officeID int64, name string) (int, error) {
	return r.q.count(ctx, r.q.from(blocksTable).Where(
		goqu.C("office_id").Eq(officeID),
		r.q.folded("name").Eq(foldName(name)),
	))
}

// DeleteBlock removes floors explicitly so the cascade holds even when the
// connection runs without foreign key enforcement.
func (r blockRepository) DeleteBlock(ctx context.Context, id int64) error {
	query, args, err := r.q.deleteFrom(floorsTable).Where(goqu.C("block_id").Eq(id)).ToSQL()
	if err != nil {
		return err
	}
	if _, err := r.q.tx.ExecContext(ctx, query, args...); err != nil {
		return r.q.mapper.MapError(err)
	}
	return r.q.exec(ctx, r.q.deleteFrom(blocksTable).Where(goqu.C("id").Eq(id)))
}

func (r blockRepository) ListBlocks(ctx context.Context) ([]persistence.Block, error) {
	blocks := []persistence.Block{}
	if err := r.q.selectAll(ctx, &blocks, r.q.from(blocksTable).
		Select(persistence.Block{}).
		Order(goqu.C("id").Asc())); err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return blocks, nil
	}

	ids := make([]int64, len(blocks))
	for i, b := range blocks {
		ids[i] = b.ID
	}
	floors := []persistence.Floor{}
	if err := r.q.selectAll(ctx, &floors, r.q.from(floorsTable).
		Select(persistence.Floor{}).
		Where(goqu.C("block_id").In(ids)).
		Order(r.q.folded("name").Asc(), goqu.C("id").Asc())); err != nil {
		return nil, err
	}

	byBlock := make(map[int64][]persistence.Floor, len(blocks))
	for _, f := range floors {
		byBlock[f.BlockID] = append(byBlock[f.BlockID], f)
	}
	for i := range blocks {
		blocks[i].Floors = byBlock[blocks[i].ID]
		if blocks[i].Floors == nil {
			blocks[i].Floors = []persistence.Floor{}
		}
	}
	return blocks, nil
}

func (r blockRepository) CreateFloor(ctx context.Context, floor persistence.Floor) (persistence.Floor, error) {
	if floor.State == "" {
		floor.State = persistence.StateActive
	}
	id, err := r.q.insert(ctx, r.q.insertInto(floorsTable).Rows(floor))
	if err != nil {
		return persistence.Floor{}, err
	}
	floor.ID = id
	return floor, nil
}

func (r blockRepository) ListFloors(ctx context.Context, blockID int64) ([]persistence.Floor, error) {
	floors := []persistence.Floor{}
	err := r.q.selectAll(ctx, &floors, r.q.from(floorsTable).
		Select(persistence.Floor{}).
		Where(goqu.C("block_id").Eq(blockID)).
		Order(r.q.folded("name").Asc(), goqu.C("id").Asc()))
	return floors, err
}
