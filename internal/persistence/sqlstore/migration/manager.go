package migration

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Manager walks the revision chain forwards and backwards.
type Manager struct {
	executor Executor
	chain    *Chain
	logger   *slog.Logger
}

// NewManager validates the migrations into a chain and returns a manager.
func NewManager(executor Executor, migrations []Migration, logger *slog.Logger) (*Manager, error) {
	chain, err := NewChain(migrations)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{executor: executor, chain: chain, logger: logger.With("component", "migration")}, nil
}

// History returns every known revision, base first.
func (m *Manager) History() []Migration {
	return m.chain.Migrations()
}

// Current returns the applied revision or "" when the database is at base.
func (m *Manager) Current(ctx context.Context) (string, error) {
	if err := m.executor.InitializeVersionTable(ctx); err != nil {
		return "", fmt.Errorf("failed to initialize version table: %w", err)
	}
	current, err := m.executor.CurrentRevision(ctx)
	if err != nil {
		return "", err
	}
	if _, err := m.chain.position(current); err != nil {
		return "", err
	}
	return current, nil
}

// Status reports applied and pending revisions.
func (m *Manager) Status(ctx context.Context) (Status, error) {
	current, err := m.Current(ctx)
	if err != nil {
		return Status{}, err
	}
	pos, _ := m.chain.position(current)
	all := m.chain.Migrations()
	return Status{
		Current: current,
		Head:    m.chain.Head(),
		Applied: all[:pos+1],
		Pending: all[pos+1:],
	}, nil
}

// Upgrade applies revisions after the current one up to and including
// target. Target may be a revision id or Head.
func (m *Manager) Upgrade(ctx context.Context, target string) error {
	if target == "" {
		target = Head
	}
	current, err := m.Current(ctx)
	if err != nil {
		return err
	}
	from, _ := m.chain.position(current)
	to, err := m.chain.position(target)
	if err != nil {
		return err
	}
	if to < from {
		return NewMigrationError(target, "upgrade", fmt.Errorf("%w: current revision is %s", ErrWrongDirection, current))
	}
	if to == from {
		m.logger.InfoContext(ctx, "schema already at target revision", "revision", current)
		return nil
	}

	steps := m.chain.ordered[from+1 : to+1]
	m.logger.InfoContext(ctx, "upgrading schema", "from", revisionLabel(current), "to", steps[len(steps)-1].Revision, "steps", len(steps))
	for _, step := range steps {
		if err := m.apply(ctx, step, Up, step.Revision); err != nil {
			return err
		}
	}
	return nil
}

// Downgrade reverts revisions down to target, which stays applied. Base
// reverts everything.
func (m *Manager) Downgrade(ctx context.Context, target string) error {
	if target == "" {
		target = Base
	}
	current, err := m.Current(ctx)
	if err != nil {
		return err
	}
	from, _ := m.chain.position(current)
	to, err := m.chain.position(target)
	if err != nil {
		return err
	}
	if to > from {
		return NewMigrationError(target, "downgrade", fmt.Errorf("%w: current revision is %s", ErrWrongDirection, revisionLabel(current)))
	}
	if to == from {
		m.logger.InfoContext(ctx, "schema already at target revision", "revision", revisionLabel(current))
		return nil
	}

	m.logger.InfoContext(ctx, "downgrading schema", "from", current, "to", revisionLabel(target), "steps", from-to)
	for i := from; i > to; i-- {
		step := m.chain.ordered[i]
		if err := m.apply(ctx, step, Down, step.DownRevision); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) apply(ctx context.Context, step Migration, dir Direction, next string) error {
	started := time.Now()
	logger := m.logger.With("revision", step.Revision, "direction", dir.String())
	if err := m.executor.ApplyStep(ctx, step, dir, next); err != nil {
		logger.ErrorContext(ctx, "migration step failed", "error", err)
		return NewMigrationError(step.Revision, dir.String(), fmt.Errorf("%w: %w", ErrMigrationFailed, err))
	}
	logger.InfoContext(ctx, "migration step applied", "description", step.Description, "duration", time.Since(started))
	return nil
}

func revisionLabel(rev string) string {
	if rev == "" {
		return Base
	}
	return rev
}
