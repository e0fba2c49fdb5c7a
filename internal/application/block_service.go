package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/example/roombooking/internal/persistence"
	"github.com/example/roombooking/internal/validation"
)

// BlockService manages blocks and their floors.
type BlockService struct {
	uow       persistence.UnitOfWork
	validator *validation.Validator
	logger    *slog.Logger
}

// NewBlockServiceWithLogger constructs a block service.
func NewBlockServiceWithLogger(uow persistence.UnitOfWork, v *validation.Validator, logger *slog.Logger) *BlockService {
	if v == nil {
		v = validation.New(nil)
	}
	return &BlockService{uow: uow, validator: v, logger: defaultLogger(logger)}
}

func (s *BlockService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BlockService", operation, attrs...)
}

// wordBreaks start a new word inside a token, so "o'neil" becomes "O'Neil".
const wordBreaks = "'\u2019"

// TitleCase normalizes block names: "north wing" becomes "North Wing".
func TitleCase(name string) string {
	caser := cases.Title(language.Und)
	name = strings.TrimSpace(name)

	var b strings.Builder
	for {
		i := strings.IndexAny(name, wordBreaks)
		if i < 0 {
			b.WriteString(caser.String(name))
			return b.String()
		}
		_, size := utf8.DecodeRuneInString(name[i:])
		b.WriteString(caser.String(name[:i]))
		b.WriteString(name[i : i+size])
		name = name[i+size:]
	}
}

// CreateBlock stores a title-cased block under an existing office. Names are
// unique per office regardless of case.
func (s *BlockService) CreateBlock(ctx context.Context, params CreateBlockParams) (block Block, err error) {
	if s == nil {
		err = fmt.Errorf("BlockService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateBlock",
		"principal_id", params.Principal.UserID,
		"office_id", params.OfficeID,
	)
	defer func() {
		logOutcome(ctx, logger, err, "failed to create block", "block created", "block_id", block.ID)
	}()

	if fe := s.validator.Required("name", params.Name); fe != nil {
		vErr := &ValidationError{}
		vErr.check(fe)
		err = vErr
		return
	}
	name := TitleCase(params.Name)

	err = s.uow.WithinTx(ctx, func(repos persistence.Repositories) error {
		if _, err := repos.Offices().GetOffice(ctx, params.OfficeID); err != nil {
			return mapRepoError(err, "Office", params.OfficeID)
		}
		matches, err := repos.Blocks().CountBlocksByNameFold(ctx, params.OfficeID, name)
		if err != nil {
			return err
		}
		if matches > 0 {
			return &ConflictError{Entity: "Block", Name: name}
		}
		created, err := repos.Blocks().CreateBlock(ctx, Block{
			Name:     name,
			OfficeID: params.OfficeID,
			State:    persistence.StateActive,
		})
		if err != nil {
			return mapRepoError(err, "Block", 0)
		}
		block = created
		return nil
	})
	return
}

// DeleteBlock removes a block together with all of its floors.
func (s *BlockService) DeleteBlock(ctx context.Context, principal Principal, blockID int64) (block Block, err error) {
	if s == nil {
		err = fmt.Errorf("BlockService is nil")
		return
	}

	logger := s.loggerWith(ctx, "DeleteBlock",
		"principal_id", principal.UserID,
		"block_id", blockID,
	)
	defer func() {
		logOutcome(ctx, logger, err, "failed to delete block", "block deleted", "floor_count", len(block.Floors))
	}()

	err = s.uow.WithinTx(ctx, func(repos persistence.Repositories) error {
		existing, err := repos.Blocks().GetBlock(ctx, blockID)
		if err != nil {
			return mapRepoError(err, "Block", blockID)
		}
		if err := repos.Blocks().DeleteBlock(ctx, blockID); err != nil {
			return mapRepoError(err, "Block", blockID)
		}
		block = existing
		return nil
	})
	return
}

// ListBlocks returns every block with floors ordered by name, ignoring case.
func (s *BlockService) ListBlocks(ctx context.Context) (blocks []Block, err error) {
	if s == nil {
		err = fmt.Errorf("BlockService is nil")
		return
	}
	err = s.uow.WithinReadTx(ctx, func(repos persistence.Repositories) error {
		var err error
		blocks, err = repos.Blocks().ListBlocks(ctx)
		return err
	})
	return
}

// CreateFloor adds a floor to an existing block.
func (s *BlockService) CreateFloor(ctx context.Context, params CreateFloorParams) (floor Floor, err error) {
	if s == nil {
		err = fmt.Errorf("BlockService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateFloor",
		"principal_id", params.Principal.UserID,
		"block_id", params.BlockID,
	)
	defer func() {
		logOutcome(ctx, logger, err, "failed to create floor", "floor created", "floor_id", floor.ID)
	}()

	if fe := s.validator.Required("name", params.Name); fe != nil {
		vErr := &ValidationError{}
		vErr.check(fe)
		err = vErr
		return
	}

	err = s.uow.WithinTx(ctx, func(repos persistence.Repositories) error {
		if _, err := repos.Blocks().GetBlock(ctx, params.BlockID); err != nil {
			return mapRepoError(err, "Block", params.BlockID)
		}
		created, err := repos.Blocks().CreateFloor(ctx, Floor{
			Name:    strings.TrimSpace(params.Name),
			BlockID: params.BlockID,
			State:   persistence.StateActive,
		})
		if err != nil {
			return mapRepoError(err, "Floor", 0)
		}
		floor = created
		return nil
	})
	return
}
