package sqlstore

import (
	"database/sql/driver"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"modernc.org/sqlite"

	"github.com/example/roombooking/internal/persistence/sqlstore/migration"
)

// foldFunc is the SQLite function that lowercases with Go's Unicode rules.
// SQLite's built-in LOWER only folds ASCII.
const foldFunc = "fold"

func init() {
	if err := sqlite.RegisterDeterministicScalarFunction(foldFunc, 1, foldValue); err != nil {
		panic("sqlstore: register fold function: " + err.Error())
	}
}

func foldValue(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return foldName(v), nil
	case []byte:
		return foldName(string(v)), nil
	default:
		return v, nil
	}
}

// foldName is the Go side of the case-insensitive comparison.
func foldName(name string) string {
	return strings.ToLower(name)
}

// folded lowercases a column the same way foldName lowercases a value.
// PostgreSQL's LOWER is already Unicode aware.
func (q *querier) folded(column string) exp.SQLFunctionExpression {
	if q.dialect == migration.DialectPostgres {
		return goqu.Func("LOWER", goqu.C(column))
	}
	return goqu.Func(foldFunc, goqu.C(column))
}
