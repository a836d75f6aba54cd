package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/slchatlog/slchatlog-go/pkg/slchatlog"
)

var parseFlags struct {
	logDir      string
	avatar      string
	format      string
	include     []string
	exclude     []string
	source      bool
	encoding    string
	since       string
	until       string
	stopOnError bool
	parser      parserFlags
}

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Parse chat log files and output events",
	Long: `Parse one or more chat log files and output one event per line.

Arguments may be glob patterns, including ** for recursive matches. Without
arguments the newest chat.txt under the log directory is parsed.

Lines without a readable timestamp are reported on stderr and skipped.

Examples:
  # Parse the chat log of one avatar
  slchatlog parse --avatar "Jane Resident"

  # Parse every IM transcript
  slchatlog parse '~/.secondlife/**/*.txt'

  # Only payments, as text
  slchatlog parse chat.txt --types sent_payment,received_payment --format pretty`,
	RunE: runParse,
}

func init() {
	f := parseCmd.Flags()
	f.StringVarP(&parseFlags.logDir, "log-dir", "d", "",
		"Second Life log directory (auto-detected if not specified)")
	f.StringVarP(&parseFlags.avatar, "avatar", "a", "",
		"Avatar whose chat log to read when no files are given")
	f.StringVarP(&parseFlags.format, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	f.BoolVar(&parseFlags.source, "source", false,
		"Include file, line number and raw text in jsonl output")
	f.StringVar(&parseFlags.encoding, "encoding", "utf-8",
		"Character encoding of the log files")
	f.StringVar(&parseFlags.since, "since", "",
		"Only lines at or after this time (RFC3339)")
	f.StringVar(&parseFlags.until, "until", "",
		"Only lines before this time (RFC3339)")
	f.BoolVar(&parseFlags.stopOnError, "stop-on-error", false,
		"Stop at the first malformed line")
	addTypeFlags(parseCmd, &parseFlags.include, &parseFlags.exclude)
	addParserFlags(parseCmd, &parseFlags.parser)

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if !ValidFormats[parseFlags.format] {
		return fmt.Errorf("unknown format: %s", parseFlags.format)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := newLogger()
	opts, err := parseOptions(logger)
	if err != nil {
		return err
	}
	paths, err := resolveInputs(args, parseFlags.logDir, parseFlags.avatar)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var malformed int
	for entry, err := range slchatlog.ParseFiles(ctx, paths, opts...) {
		if err != nil {
			var perr *slchatlog.ParseError
			if errors.As(err, &perr) && !parseFlags.stopOnError {
				malformed++
				logger.Warn("skipping malformed line", "error", perr)
				continue
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if err := OutputEntry(parseFlags.format, entry, parseFlags.source, out); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
	if malformed > 0 {
		fmt.Fprintf(os.Stderr, "%d malformed line(s) skipped\n", malformed)
	}
	return nil
}

func parseOptions(logger *slog.Logger) ([]slchatlog.ParseOption, error) {
	p, err := buildParser(parseFlags.parser, logger)
	if err != nil {
		return nil, err
	}
	include, exclude, err := parseTypeFlags(parseFlags.include, parseFlags.exclude)
	if err != nil {
		return nil, err
	}
	since, err := parseTimeFlag("since", parseFlags.since)
	if err != nil {
		return nil, err
	}
	until, err := parseTimeFlag("until", parseFlags.until)
	if err != nil {
		return nil, err
	}

	return []slchatlog.ParseOption{
		slchatlog.WithParseParser(p),
		slchatlog.WithParseFilter(include, exclude),
		slchatlog.WithParseTimeRange(since, until),
		slchatlog.WithParseEncoding(parseFlags.encoding),
		slchatlog.WithParseStopOnError(parseFlags.stopOnError),
	}, nil
}
