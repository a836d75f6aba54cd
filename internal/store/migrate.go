package store

import (
	"context"
	"fmt"
)

// CurrentSchemaVersion is the current database schema version.
const CurrentSchemaVersion = 1

func (s *Store) migrate(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS chat_lines (
		id             INTEGER PRIMARY KEY,
		ts             TEXT,
		kind           TEXT NOT NULL,
		type           TEXT NOT NULL,
		name           TEXT,
		payload_json   TEXT NOT NULL,
		raw_line       TEXT NOT NULL,
		source_path    TEXT NOT NULL,
		line_number    INTEGER NOT NULL,
		dedupe_key     TEXT NOT NULL,
		ingested_at    TEXT NOT NULL,
		schema_version INTEGER NOT NULL,
		UNIQUE(dedupe_key)
	);

	CREATE INDEX IF NOT EXISTS idx_chat_lines_ts ON chat_lines(ts);
	CREATE INDEX IF NOT EXISTS idx_chat_lines_type_ts ON chat_lines(type, ts);
	CREATE INDEX IF NOT EXISTS idx_chat_lines_name ON chat_lines(name);

	CREATE TABLE IF NOT EXISTS framing_failures (
		id          INTEGER PRIMARY KEY,
		source_path TEXT NOT NULL,
		line_number INTEGER NOT NULL,
		raw_line    TEXT NOT NULL,
		error_msg   TEXT NOT NULL,
		dedupe_key  TEXT NOT NULL,
		ts          TEXT NOT NULL,
		UNIQUE(dedupe_key)
	);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
