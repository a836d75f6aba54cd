package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/event"
)

// ErrInvalidLine is returned for records without a parsed event or source.
var ErrInvalidLine = errors.New("invalid line")

// LineRecord is one parsed line and where it came from.
type LineRecord struct {
	Source     string
	LineNumber int
	Raw        string
	Line       event.ChatLogLine
}

func (r *LineRecord) validate() error {
	if r.Line.Event == nil {
		return fmt.Errorf("%w: missing event", ErrInvalidLine)
	}
	if r.Source == "" {
		return fmt.Errorf("%w: missing source path", ErrInvalidLine)
	}
	return nil
}

const insertLineQuery = `
	INSERT INTO chat_lines
	(ts, kind, type, name, payload_json, raw_line, source_path, line_number, dedupe_key, ingested_at, schema_version)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(dedupe_key) DO NOTHING
	`

// InsertLines stores records in one transaction and returns how many were
// new. Records already present (same source, line number and text) are
// skipped.
func (s *Store) InsertLines(ctx context.Context, records []LineRecord) (inserted int, err error) {
	for i := range records {
		if err := records[i].validate(); err != nil {
			return 0, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, insertLineQuery)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(TimeFormat)
	for i := range records {
		r := &records[i]
		payload, err := json.Marshal(r.Line.Payload())
		if err != nil {
			return 0, fmt.Errorf("encode payload at line %d: %w", r.LineNumber, err)
		}
		var ts, name sql.NullString
		if r.Line.Timestamp != nil {
			ts = sql.NullString{String: r.Line.Timestamp.UTC().Format(TimeFormat), Valid: true}
		}
		if n := r.Line.Name(); n != "" {
			name = sql.NullString{String: n, Valid: true}
		}

		res, err := stmt.ExecContext(ctx,
			ts,
			string(r.Line.Kind()),
			string(r.Line.Type()),
			name,
			string(payload),
			r.Raw,
			r.Source,
			r.LineNumber,
			dedupeKey(r.Source, r.LineNumber, r.Raw),
			now,
			CurrentSchemaVersion,
		)
		if err != nil {
			return 0, fmt.Errorf("insert line %d: %w", r.LineNumber, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

// CountLines returns the number of stored lines.
func (s *Store) CountLines(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_lines`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count lines: %w", err)
	}
	return count, nil
}

// LastLineTime returns the latest stored timestamp, or the zero time when
// there are no timestamped lines.
func (s *Store) LastLineTime(ctx context.Context) (time.Time, error) {
	var ts string
	err := s.db.QueryRowContext(ctx,
		`SELECT ts FROM chat_lines WHERE ts IS NOT NULL ORDER BY ts DESC, id DESC LIMIT 1`).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("last line time: %w", err)
	}
	t, err := time.Parse(TimeFormat, ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", ts, err)
	}
	return t, nil
}
