package store

import (
	"context"
	"fmt"
	"time"
)

// InsertFramingFailure records a line whose timestamp could not be read.
// Returns false if the same failure was already recorded.
func (s *Store) InsertFramingFailure(ctx context.Context, source string, lineNumber int, rawLine, errorMsg string) (inserted bool, err error) {
	if source == "" {
		return false, fmt.Errorf("source path is required")
	}

	const query = `
	INSERT INTO framing_failures (source_path, line_number, raw_line, error_msg, dedupe_key, ts)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(dedupe_key) DO NOTHING
	`
	ts := time.Now().UTC().Format(TimeFormat)
	result, err := s.db.ExecContext(ctx, query,
		source, lineNumber, rawLine, errorMsg, dedupeKey(source, lineNumber, rawLine), ts)
	if err != nil {
		return false, fmt.Errorf("insert framing failure: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// CountFramingFailures returns the number of recorded framing failures.
func (s *Store) CountFramingFailures(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM framing_failures`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count framing failures: %w", err)
	}
	return count, nil
}
