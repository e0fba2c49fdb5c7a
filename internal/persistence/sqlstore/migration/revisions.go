package migration

// Revisions returns every schema revision of the room booking database.
func Revisions() []Migration {
	return []Migration{
		initialSchema,
		updateRoomsAndEvents,
		createDevices,
		addDeviceState,
	}
}

var initialSchema = Migration{
	Revision:    "3974dfade8f7",
	Description: "initial schema",
	Upgrade: Script{
		DialectSQLite: `
CREATE TABLE locations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name VARCHAR NOT NULL,
	abbreviation VARCHAR NOT NULL,
	country VARCHAR NOT NULL,
	image_url VARCHAR,
	time_zone VARCHAR NOT NULL,
	state VARCHAR(8) NOT NULL DEFAULT 'active' CHECK (state IN ('active', 'archived', 'deleted'))
);
CREATE TABLE offices (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name VARCHAR NOT NULL,
	location_id INTEGER NOT NULL REFERENCES locations (id),
	state VARCHAR(8) NOT NULL DEFAULT 'active' CHECK (state IN ('active', 'archived', 'deleted'))
);
CREATE TABLE blocks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name VARCHAR NOT NULL,
	office_id INTEGER NOT NULL REFERENCES offices (id),
	state VARCHAR(8) NOT NULL DEFAULT 'active' CHECK (state IN ('active', 'archived', 'deleted'))
);
CREATE TABLE floors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name VARCHAR NOT NULL,
	block_id INTEGER NOT NULL REFERENCES blocks (id) ON DELETE CASCADE,
	state VARCHAR(8) NOT NULL DEFAULT 'active' CHECK (state IN ('active', 'archived', 'deleted'))
);
CREATE TABLE rooms (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name VARCHAR NOT NULL,
	room_type VARCHAR NOT NULL,
	capacity INTEGER NOT NULL,
	location_id INTEGER NOT NULL REFERENCES locations (id),
	floor_id INTEGER REFERENCES floors (id) ON DELETE SET NULL,
	calendar_id VARCHAR,
	image_url VARCHAR,
	state VARCHAR(8) NOT NULL DEFAULT 'active' CHECK (state IN ('active', 'archived', 'deleted'))
);
CREATE TABLE events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	event_id VARCHAR NOT NULL,
	room_id INTEGER NOT NULL REFERENCES rooms (id),
	event_title VARCHAR NOT NULL,
	start_time TIMESTAMP NOT NULL,
	end_time TIMESTAMP NOT NULL,
	state VARCHAR(8) NOT NULL DEFAULT 'active' CHECK (state IN ('active', 'archived', 'deleted'))
);
CREATE INDEX ix_events_room_id ON events (room_id);
`,
		DialectPostgres: `
CREATE TYPE statetype AS ENUM ('active', 'archived', 'deleted');
CREATE TABLE locations (
	id SERIAL PRIMARY KEY,
	name VARCHAR NOT NULL,
	abbreviation VARCHAR NOT NULL,
	country VARCHAR NOT NULL,
	image_url VARCHAR,
	time_zone VARCHAR NOT NULL,
	state statetype NOT NULL DEFAULT 'active'
);
CREATE TABLE offices (
	id SERIAL PRIMARY KEY,
	name VARCHAR NOT NULL,
	location_id INTEGER NOT NULL REFERENCES locations (id),
	state statetype NOT NULL DEFAULT 'active'
);
CREATE TABLE blocks (
	id SERIAL PRIMARY KEY,
	name VARCHAR NOT NULL,
	office_id INTEGER NOT NULL REFERENCES offices (id),
	state statetype NOT NULL DEFAULT 'active'
);
CREATE TABLE floors (
	id SERIAL PRIMARY KEY,
	name VARCHAR NOT NULL,
	block_id INTEGER NOT NULL REFERENCES blocks (id) ON DELETE CASCADE,
	state statetype NOT NULL DEFAULT 'active'
);
CREATE TABLE rooms (
	id SERIAL PRIMARY KEY,
	name VARCHAR NOT NULL,
	room_type VARCHAR NOT NULL,
	capacity INTEGER NOT NULL,
	location_id INTEGER NOT NULL REFERENCES locations (id),
	floor_id INTEGER REFERENCES floors (id) ON DELETE SET NULL,
	calendar_id VARCHAR,
	image_url VARCHAR,
	state statetype NOT NULL DEFAULT 'active'
);
CREATE TABLE events (
	id SERIAL PRIMARY KEY,
	event_id VARCHAR NOT NULL,
	room_id INTEGER NOT NULL REFERENCES rooms (id),
	event_title VARCHAR NOT NULL,
	start_time TIMESTAMPTZ NOT NULL,
	end_time TIMESTAMPTZ NOT NULL,
	state statetype NOT NULL DEFAULT 'active'
);
CREATE INDEX ix_events_room_id ON events (room_id);
`,
	},
	Downgrade: Script{
		DialectSQLite: `
DROP INDEX ix_events_room_id;
DROP TABLE events;
DROP TABLE rooms;
DROP TABLE floors;
DROP TABLE blocks;
DROP TABLE offices;
DROP TABLE locations;
`,
		DialectPostgres: `
DROP INDEX ix_events_room_id;
DROP TABLE events;
DROP TABLE rooms;
DROP TABLE floors;
DROP TABLE blocks;
DROP TABLE offices;
DROP TABLE locations;
DROP TYPE statetype;
`,
	},
}

// SQLite cannot relax NOT NULL in place, so events is rebuilt with the new
// columns. The downgrade drops the added columns and keeps event_title
// nullable.
var updateRoomsAndEvents = Migration{
	Revision:     "b51ed27a84de",
	DownRevision: "3974dfade8f7",
	Description:  "update rooms and events",
	Upgrade: Script{
		DialectSQLite: `
CREATE TABLE events_new (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	event_id VARCHAR NOT NULL,
	room_id INTEGER NOT NULL REFERENCES rooms (id),
	event_title VARCHAR,
	start_time TIMESTAMP NOT NULL,
	end_time TIMESTAMP NOT NULL,
	state VARCHAR(8) NOT NULL DEFAULT 'active' CHECK (state IN ('active', 'archived', 'deleted')),
	number_of_participants INTEGER NOT NULL DEFAULT 0,
	recurring_event_id VARCHAR
);
INSERT INTO events_new (id, event_id, room_id, event_title, start_time, end_time, state)
	SELECT id, event_id, room_id, event_title, start_time, end_time, state FROM events;
DROP INDEX ix_events_room_id;
DROP TABLE events;
ALTER TABLE events_new RENAME TO events;
CREATE INDEX ix_events_room_id ON events (room_id);
ALTER TABLE rooms ADD COLUMN next_sync_token VARCHAR;
`,
		DialectPostgres: `
ALTER TABLE events ADD COLUMN number_of_participants INTEGER NOT NULL DEFAULT 0;
ALTER TABLE events ADD COLUMN recurring_event_id VARCHAR;
ALTER TABLE events ALTER COLUMN event_title DROP NOT NULL;
ALTER TABLE rooms ADD COLUMN next_sync_token VARCHAR;
`,
	},
	Downgrade: Script{
		DialectSQLite: `
ALTER TABLE rooms DROP COLUMN next_sync_token;
ALTER TABLE events DROP COLUMN recurring_event_id;
ALTER TABLE events DROP COLUMN number_of_participants;
`,
		DialectPostgres: `
ALTER TABLE rooms DROP COLUMN next_sync_token;
ALTER TABLE events DROP COLUMN recurring_event_id;
ALTER TABLE events DROP COLUMN number_of_participants;
`,
	},
}

var createDevices = Migration{
	Revision:     "1f5e47273894",
	DownRevision: "b51ed27a84de",
	Description:  "create devices table",
	Upgrade: Script{
		DialectSQLite: `
CREATE TABLE devices (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name VARCHAR NOT NULL,
	device_type VARCHAR NOT NULL,
	room_id INTEGER NOT NULL REFERENCES rooms (id),
	last_seen TIMESTAMP,
	location VARCHAR NOT NULL
);
`,
		DialectPostgres: `
CREATE TABLE devices (
	id SERIAL PRIMARY KEY,
	name VARCHAR NOT NULL,
	device_type VARCHAR NOT NULL,
	room_id INTEGER NOT NULL REFERENCES rooms (id),
	last_seen TIMESTAMPTZ,
	location VARCHAR NOT NULL
);
`,
	},
	Downgrade: Script{
		DialectSQLite:   `DROP TABLE devices;`,
		DialectPostgres: `DROP TABLE devices;`,
	},
}

var addDeviceState = Migration{
	Revision:     "af8e4f84b552",
	DownRevision: "1f5e47273894",
	Description:  "add state to devices",
	Upgrade: Script{
		DialectSQLite:   `ALTER TABLE devices ADD COLUMN state VARCHAR(8) CHECK (state IN ('active', 'archived', 'deleted'));`,
		DialectPostgres: `ALTER TABLE devices ADD COLUMN state statetype;`,
	},
	Downgrade: Script{
		DialectSQLite:   `ALTER TABLE devices DROP COLUMN state;`,
		DialectPostgres: `ALTER TABLE devices DROP COLUMN state;`,
	},
}
