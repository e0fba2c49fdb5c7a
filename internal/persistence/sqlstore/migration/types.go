package migration

import "context"

// Dialect names the SQL flavour a script is written for.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const (
	// Head targets the newest revision of the chain.
	Head = "head"
	// Base targets the empty schema before the first revision.
	Base = "base"
)

// Script holds the SQL of one direction of a revision, keyed by dialect.
// Statements are separated by semicolons.
type Script map[Dialect]string

// Migration is one reversible revision of the schema.
type Migration struct {
	Revision     string
	DownRevision string
	Description  string
	Upgrade      Script
	Downgrade    Script
}

// Direction tells the executor which script of a revision to run.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "downgrade"
	}
	return "upgrade"
}

// Executor runs revision scripts and tracks the applied revision.
type Executor interface {
	// InitializeVersionTable creates the schema_version table if needed.
	InitializeVersionTable(ctx context.Context) error
	// CurrentRevision returns the recorded revision or "" for base.
	CurrentRevision(ctx context.Context) (string, error)
	// ApplyStep runs one script and records next as the current revision in
	// the same transaction. An empty next records base.
	ApplyStep(ctx context.Context, m Migration, dir Direction, next string) error
}

// Status summarizes where a database sits on the chain.
type Status struct {
	Current string
	Head    string
	Applied []Migration
	Pending []Migration
}

// UpToDate reports whether no revision is pending.
func (s Status) UpToDate() bool {
	return len(s.Pending) == 0
}
