// Package migration applies the reversible schema revisions of the room
// booking database.
//
// Revisions form a single chain: every revision names the revision it
// builds on (its down revision) and the first revision names none. The
// chain head is recorded in the schema_version table, so a database is
// always at exactly one revision or at "base" when nothing is applied.
//
// Each revision carries an upgrade and a downgrade script per SQL dialect.
// A step runs inside one transaction together with the version table
// update, so a failing statement leaves the recorded revision untouched.
//
// Typical use:
//
//	manager := migration.NewManager(executor, migration.Revisions(), logger)
//	if err := manager.Upgrade(ctx, migration.Head); err != nil {
//		return err
//	}
package migration
