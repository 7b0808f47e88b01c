package db

import "database/sql"

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS todos (
		id         SERIAL PRIMARY KEY,
		raw_input  TEXT NOT NULL,
		text       TEXT NOT NULL CHECK (text <> ''),
		completed  BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS analytics_events (
		id               BIGSERIAL PRIMARY KEY,
		event_name       TEXT NOT NULL,
		event_time       TIMESTAMPTZ NOT NULL,
		session_id       TEXT,
		platform         TEXT,
		app_version      TEXT,
		device_locale    TEXT,
		source_event_key TEXT UNIQUE,
		properties       JSONB
	)`,
}

// Migrate creates the schema at startup. Idempotent, never drops anything.
func Migrate(dbx *sql.DB) error {
	for _, m := range migrations {
		if _, err := dbx.Exec(m); err != nil {
			return err
		}
	}
	return nil
}
