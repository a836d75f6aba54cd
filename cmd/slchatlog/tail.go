package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/slchatlog/slchatlog-go/pkg/slchatlog"
)

var tailFlags struct {
	logDir       string
	avatar       string
	format       string
	include      []string
	exclude      []string
	source       bool
	encoding     string
	replayLast   int
	replaySince  string
	pollInterval time.Duration
	poll         bool
	wait         bool
	parser       parserFlags
}

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Monitor a chat log and output events",
	Long: `Monitor a Second Life chat log in real-time and output parsed events.

Events are output as JSON Lines by default (one JSON object per line),
which makes it easy to process with tools like jq. When --avatar is not
given, the watcher follows whichever chat.txt was written most recently.

Examples:
  # Monitor with default settings (auto-detect log directory)
  slchatlog tail

  # Follow one avatar
  slchatlog tail --avatar "Jane Resident"

  # Human-readable output, chat only
  slchatlog tail --format pretty --types chat,emote

  # Replay from start of log file
  slchatlog tail --replay-last 0  # 0 means from start

  # Pipe to jq for filtering
  slchatlog tail | jq 'select(.type == "received_payment")'`,
	RunE: runTail,
}

func init() {
	f := tailCmd.Flags()
	f.StringVarP(&tailFlags.logDir, "log-dir", "d", "",
		"Second Life log directory (auto-detected if not specified)")
	f.StringVarP(&tailFlags.avatar, "avatar", "a", "",
		"Avatar whose chat log to follow (default: most recently written)")
	f.StringVarP(&tailFlags.format, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	f.BoolVar(&tailFlags.source, "source", false,
		"Include file, line number and raw text in jsonl output")
	f.StringVar(&tailFlags.encoding, "encoding", "utf-8",
		"Character encoding of the log file")
	f.DurationVar(&tailFlags.pollInterval, "poll-interval", 2*time.Second,
		"How often to check for a newer chat log")
	f.BoolVar(&tailFlags.poll, "poll", false,
		"Poll the file instead of using file system notifications")
	f.BoolVar(&tailFlags.wait, "wait", false,
		"Wait for a chat log to appear instead of failing")

	// Replay options
	f.IntVar(&tailFlags.replayLast, "replay-last", -1,
		"Replay last N lines before tailing (-1 = disabled, 0 = from start)")
	f.StringVar(&tailFlags.replaySince, "replay-since", "",
		"Replay events since timestamp (RFC3339 format, e.g., 2024-01-15T12:00:00Z)")
	tailCmd.MarkFlagsMutuallyExclusive("replay-last", "replay-since")

	addTypeFlags(tailCmd, &tailFlags.include, &tailFlags.exclude)
	addParserFlags(tailCmd, &tailFlags.parser)

	rootCmd.AddCommand(tailCmd)
}

// replayConfig builds the replay settings from --replay-last and --replay-since.
func replayConfig(last int, since string) (slchatlog.ReplayConfig, error) {
	replay := slchatlog.ReplayConfig{}
	if last >= 0 {
		if last == 0 {
			replay.Mode = slchatlog.ReplayFromStart
		} else {
			replay.Mode = slchatlog.ReplayLastN
			replay.LastN = last
		}
	} else if since != "" {
		t, err := parseTimeFlag("replay-since", since)
		if err != nil {
			return replay, err
		}
		replay.Mode = slchatlog.ReplaySinceTime
		replay.Since = t
	}
	return replay, nil
}

func runTail(cmd *cobra.Command, args []string) error {
	if !ValidFormats[tailFlags.format] {
		return fmt.Errorf("unknown format: %s", tailFlags.format)
	}

	// Setup context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := newLogger()
	p, err := buildParser(tailFlags.parser, logger)
	if err != nil {
		return err
	}
	include, exclude, err := parseTypeFlags(tailFlags.include, tailFlags.exclude)
	if err != nil {
		return err
	}
	replay, err := replayConfig(tailFlags.replayLast, tailFlags.replaySince)
	if err != nil {
		return err
	}

	watcher, err := slchatlog.NewWatcher(
		slchatlog.WithLogDir(tailFlags.logDir),
		slchatlog.WithAvatar(tailFlags.avatar),
		slchatlog.WithEncoding(tailFlags.encoding),
		slchatlog.WithPollInterval(tailFlags.pollInterval),
		slchatlog.WithPoll(tailFlags.poll),
		slchatlog.WithWaitForLogs(tailFlags.wait),
		slchatlog.WithReplay(replay),
		slchatlog.WithFilter(include, exclude),
		slchatlog.WithWatchParser(p),
		slchatlog.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer watcher.Close()

	entries, errs, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return nil // Channel closed
			}
			if err := OutputEntry(tailFlags.format, entry, tailFlags.source, out); err != nil {
				return fmt.Errorf("output error: %w", err)
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("watch error", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}
