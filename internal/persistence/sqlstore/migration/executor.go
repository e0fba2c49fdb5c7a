package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// SQLExecutor implements Executor on top of sqlx for a given dialect.
type SQLExecutor struct {
	db      *sqlx.DB
	dialect Dialect
}

// NewSQLExecutor creates a migration executor bound to db.
func NewSQLExecutor(db *sqlx.DB, dialect Dialect) *SQLExecutor {
	return &SQLExecutor{db: db, dialect: dialect}
}

// InitializeVersionTable creates the schema_version table if it doesn't exist.
func (e *SQLExecutor) InitializeVersionTable(ctx context.Context) error {
	const createTableSQL = `CREATE TABLE IF NOT EXISTS schema_version (revision VARCHAR(64) NOT NULL PRIMARY KEY)`
	if _, err := e.db.ExecContext(ctx, createTableSQL); err != nil {
		return NewDatabaseError("", createTableSQL, "create schema_version table", err)
	}
	return nil
}

// CurrentRevision returns the recorded revision, or "" when at base.
func (e *SQLExecutor) CurrentRevision(ctx context.Context) (string, error) {
	const querySQL = `SELECT revision FROM schema_version`
	var revisions []string
	if err := e.db.SelectContext(ctx, &revisions, querySQL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", NewDatabaseError("", querySQL, "read current revision", err)
	}
	switch len(revisions) {
	case 0:
		return "", nil
	case 1:
		return revisions[0], nil
	}
	return "", NewDatabaseError("", querySQL, "read current revision",
		fmt.Errorf("%w: %d rows", ErrVersionTableCorrupt, len(revisions)))
}

// ApplyStep runs one direction of m and records next as the current revision.
func (e *SQLExecutor) ApplyStep(ctx context.Context, m Migration, dir Direction, next string) (err error) {
	script := m.Upgrade
	if dir == Down {
		script = m.Downgrade
	}
	body, ok := script[e.dialect]
	if !ok {
		return NewMigrationError(m.Revision, dir.String(), fmt.Errorf("%w: %s", ErrUnsupportedDialect, e.dialect))
	}

	tx, err := e.db.BeginTxx(ctx, nil)
	if err != nil {
		return NewDatabaseError(m.Revision, "", "begin transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i, stmt := range splitStatements(body) {
		if _, execErr := tx.ExecContext(ctx, stmt); execErr != nil {
			err = NewDatabaseError(m.Revision, stmt, fmt.Sprintf("%s statement %d", dir, i+1), execErr)
			return err
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM schema_version`); err != nil {
		err = NewDatabaseError(m.Revision, "", "clear schema_version", err)
		return err
	}
	if next != "" {
		insertSQL := tx.Rebind(`INSERT INTO schema_version (revision) VALUES (?)`)
		if _, err = tx.ExecContext(ctx, insertSQL, next); err != nil {
			err = NewDatabaseError(m.Revision, insertSQL, "record revision", err)
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		err = NewDatabaseError(m.Revision, "", "commit transaction", err)
		return err
	}
	return nil
}

// splitStatements splits a script on semicolons and drops comment-only lines.
func splitStatements(script string) []string {
	var statements []string
	for _, stmt := range strings.Split(script, ";") {
		var lines []string
		for _, line := range strings.Split(stmt, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "--") {
				continue
			}
			lines = append(lines, trimmed)
		}
		if len(lines) > 0 {
			statements = append(statements, strings.Join(lines, "\n"))
		}
	}
	return statements
}
