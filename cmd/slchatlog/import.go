package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/slchatlog/slchatlog-go/internal/store"
	"github.com/slchatlog/slchatlog-go/pkg/slchatlog"
)

// importBatchSize is the number of lines written per transaction.
const importBatchSize = 500

var importFlags struct {
	db       string
	logDir   string
	avatar   string
	encoding string
	parser   parserFlags
}

var importCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Import chat log files into a SQLite database",
	Long: `Parse chat log files and store every line in a SQLite database.

Importing the same file again only adds lines that were not seen before.
Malformed lines are kept in a separate table for inspection.

Examples:
  slchatlog import --db chat.db --avatar "Jane Resident"
  slchatlog import --db chat.db 'logs/**/chat.txt'`,
	RunE: runImport,
}

func init() {
	f := importCmd.Flags()
	f.StringVar(&importFlags.db, "db", "slchatlog.db",
		"Path of the SQLite database (created if missing)")
	f.StringVarP(&importFlags.logDir, "log-dir", "d", "",
		"Second Life log directory (auto-detected if not specified)")
	f.StringVarP(&importFlags.avatar, "avatar", "a", "",
		"Avatar whose chat log to import when no files are given")
	f.StringVar(&importFlags.encoding, "encoding", "utf-8",
		"Character encoding of the log files")
	addParserFlags(importCmd, &importFlags.parser)

	rootCmd.AddCommand(importCmd)
}

// importStats summarizes one import run.
type importStats struct {
	Read     int
	Inserted int
	Failures int
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := newLogger()
	p, err := buildParser(importFlags.parser, logger)
	if err != nil {
		return err
	}
	paths, err := resolveInputs(args, importFlags.logDir, importFlags.avatar)
	if err != nil {
		return err
	}

	st, err := store.Open(importFlags.db)
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := importFiles(ctx, st, paths,
		slchatlog.WithParseParser(p),
		slchatlog.WithParseEncoding(importFlags.encoding),
	)
	if err != nil {
		return err
	}
	logger.Debug("import finished", "files", len(paths), "read", stats.Read,
		"inserted", stats.Inserted, "failures", stats.Failures)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d lines read, %d new, %d malformed\n",
		stats.Read, stats.Inserted, stats.Failures)

	counts, err := st.CountByType(ctx)
	if err != nil {
		return err
	}
	for _, tc := range counts {
		fmt.Fprintf(out, "  %-24s %d\n", tc.Type, tc.Count)
	}
	return nil
}

// importFiles parses paths into st in batches. Malformed lines are stored
// as framing failures; any other error aborts the import.
func importFiles(ctx context.Context, st *store.Store, paths []string, opts ...slchatlog.ParseOption) (importStats, error) {
	var stats importStats
	batch := make([]store.LineRecord, 0, importBatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := st.InsertLines(ctx, batch)
		if err != nil {
			return err
		}
		stats.Inserted += n
		batch = batch[:0]
		return nil
	}

	for entry, err := range slchatlog.ParseFiles(ctx, paths, opts...) {
		if err != nil {
			var perr *slchatlog.ParseError
			if !errors.As(err, &perr) {
				return stats, err
			}
			stats.Failures++
			if _, err := st.InsertFramingFailure(ctx, perr.Path, perr.LineNumber, perr.Line, perr.Err.Error()); err != nil {
				return stats, err
			}
			continue
		}

		stats.Read++
		batch = append(batch, store.LineRecord{
			Source:     entry.Path,
			LineNumber: entry.LineNumber,
			Raw:        entry.Raw,
			Line:       entry.Line,
		})
		if len(batch) == importBatchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}
	if err := flush(); err != nil {
		return stats, err
	}
	return stats, nil
}
