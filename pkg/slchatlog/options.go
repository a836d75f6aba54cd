package slchatlog

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/slchatlog/slchatlog-go/internal/textenc"
)

// ParseOption configures ParseReader, ParseFile and ParseFiles.
type ParseOption func(*parseConfig)

type parseConfig struct {
	parser      *Parser
	filter      *compiledFilter
	since       time.Time
	until       time.Time
	stopOnError bool
	encoding    string
	maxFileSize int64
}

func defaultParseConfig() *parseConfig {
	return &parseConfig{parser: defaultParser}
}

func applyParseOptions(opts []ParseOption) *parseConfig {
	cfg := defaultParseConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

func (c *parseConfig) validate() error {
	if _, err := textenc.Lookup(c.encoding); err != nil {
		return err
	}
	if !c.since.IsZero() && !c.until.IsZero() && !c.until.After(c.since) {
		return fmt.Errorf("until (%v) must be after since (%v)", c.until, c.since)
	}
	if c.maxFileSize < 0 {
		return fmt.Errorf("max file size must be non-negative, got %d", c.maxFileSize)
	}
	return nil
}

// allows applies the type filter and time range. Lines without a
// timestamp are dropped whenever a time bound is set.
func (c *parseConfig) allows(l Line) bool {
	if !c.filter.Allows(l.Type()) {
		return false
	}
	if c.since.IsZero() && c.until.IsZero() {
		return true
	}
	if l.Timestamp == nil {
		return false
	}
	if !c.since.IsZero() && l.Timestamp.Before(c.since) {
		return false
	}
	if !c.until.IsZero() && !l.Timestamp.Before(c.until) {
		return false
	}
	return true
}

// WithParseParser sets the Parser used for each line.
// If p is nil, this option has no effect.
func WithParseParser(p *Parser) ParseOption {
	return func(c *parseConfig) {
		if p != nil {
			c.parser = p
		}
	}
}

// WithParseIncludeTypes keeps only lines of the given types.
func WithParseIncludeTypes(types ...EventType) ParseOption {
	return func(c *parseConfig) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.include = typeSet(types)
	}
}

// WithParseExcludeTypes drops lines of the given types.
func WithParseExcludeTypes(types ...EventType) ParseOption {
	return func(c *parseConfig) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.exclude = typeSet(types)
	}
}

// WithParseFilter sets both include and exclude type filters.
// Exclude takes precedence over include.
func WithParseFilter(include, exclude []EventType) ParseOption {
	return func(c *parseConfig) {
		c.filter = newCompiledFilter(include, exclude)
	}
}

// WithParseTimeRange keeps lines with since <= timestamp < until.
// Zero values leave that side open.
func WithParseTimeRange(since, until time.Time) ParseOption {
	return func(c *parseConfig) {
		c.since = since
		c.until = until
	}
}

// WithParseSince keeps lines at or after since.
func WithParseSince(since time.Time) ParseOption {
	return func(c *parseConfig) {
		c.since = since
	}
}

// WithParseUntil keeps lines before until.
func WithParseUntil(until time.Time) ParseOption {
	return func(c *parseConfig) {
		c.until = until
	}
}

// WithParseStopOnError stops at the first malformed line instead of
// reporting it and continuing.
// Default: false.
func WithParseStopOnError(stop bool) ParseOption {
	return func(c *parseConfig) {
		c.stopOnError = stop
	}
}

// WithParseEncoding sets the character encoding of the input, for example
// "windows-1252" for old logs. Default: UTF-8 with an optional BOM.
func WithParseEncoding(name string) ParseOption {
	return func(c *parseConfig) {
		c.encoding = name
	}
}

// WithParseMaxFileSize makes ParseFile reject files larger than max bytes.
// Default: 0 (no limit).
func WithParseMaxFileSize(max int64) ParseOption {
	return func(c *parseConfig) {
		c.maxFileSize = max
	}
}

// WatchOption configures a Watcher.
type WatchOption func(*watchConfig)

type watchConfig struct {
	logDir             string
	avatar             string
	pollInterval       time.Duration
	flushDelay         time.Duration
	replay             ReplayConfig
	maxReplayLines     int
	maxReplayBytes     int // 0 = unlimited
	maxReplayLineBytes int // 0 = unlimited
	waitForLogs        bool
	poll               bool
	encoding           string
	logger             *slog.Logger
	filter             *compiledFilter
	parser             *Parser
}

func defaultWatchConfig() *watchConfig {
	return &watchConfig{
		pollInterval:       2 * time.Second,
		flushDelay:         DefaultFlushDelay,
		maxReplayLines:     DefaultMaxReplayLastN,
		maxReplayBytes:     10 * 1024 * 1024,
		maxReplayLineBytes: 512 * 1024,
		parser:             defaultParser,
	}
}

func applyWatchOptions(opts []WatchOption) *watchConfig {
	cfg := defaultWatchConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

func (c *watchConfig) validate() error {
	if c.replay.Mode == ReplayLastN && c.replay.LastN < 0 {
		return fmt.Errorf("replay LastN must be non-negative, got %d", c.replay.LastN)
	}
	if c.replay.Mode == ReplayLastN {
		maxLines := c.maxReplayLines
		if maxLines == 0 {
			maxLines = DefaultMaxReplayLastN
		}
		if maxLines > 0 && c.replay.LastN > maxLines {
			return fmt.Errorf("replay LastN (%d) exceeds maximum of %d", c.replay.LastN, maxLines)
		}
	}
	if c.replay.Mode == ReplaySinceTime && c.replay.Since.IsZero() {
		return fmt.Errorf("replay Since must be set when mode is ReplaySinceTime")
	}
	if c.pollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", c.pollInterval)
	}
	if c.flushDelay <= 0 {
		return fmt.Errorf("flush delay must be positive, got %v", c.flushDelay)
	}
	if c.maxReplayBytes < 0 {
		return fmt.Errorf("maxReplayBytes must be non-negative, got %d", c.maxReplayBytes)
	}
	if c.maxReplayLineBytes < 0 {
		return fmt.Errorf("maxReplayLineBytes must be non-negative, got %d", c.maxReplayLineBytes)
	}
	if _, err := textenc.Lookup(c.encoding); err != nil {
		return err
	}
	return nil
}

// WithLogDir sets the viewer's log directory.
// If not set, it is read from SLCHATLOG_LOGDIR or detected from the
// default Firestorm and Second Life locations.
func WithLogDir(dir string) WatchOption {
	return func(c *watchConfig) {
		c.logDir = dir
	}
}

// WithAvatar selects the avatar whose chat.txt is watched, for example
// "Jane Doe". By default the most recently written chat.txt is used.
func WithAvatar(name string) WatchOption {
	return func(c *watchConfig) {
		c.avatar = name
	}
}

// WithPollInterval sets how often to check whether another chat.txt has
// become the active one.
// Default: 2 seconds.
func WithPollInterval(interval time.Duration) WatchOption {
	return func(c *watchConfig) {
		c.pollInterval = interval
	}
}

// WithFlushDelay sets how long the watcher waits for continuation lines
// before emitting the last logical line.
// Default: DefaultFlushDelay.
func WithFlushDelay(d time.Duration) WatchOption {
	return func(c *watchConfig) {
		c.flushDelay = d
	}
}

// WithWaitForLogs makes the watcher poll until a chat.txt appears instead
// of failing with ErrNoLogFiles. Useful when started before the viewer
// has logged in for the first time.
func WithWaitForLogs(wait bool) WatchOption {
	return func(c *watchConfig) {
		c.waitForLogs = wait
	}
}

// WithPoll follows the file by stat polling instead of filesystem
// notifications. Needed on network shares.
func WithPoll(poll bool) WatchOption {
	return func(c *watchConfig) {
		c.poll = poll
	}
}

// WithEncoding sets the character encoding of the watched file.
func WithEncoding(name string) WatchOption {
	return func(c *watchConfig) {
		c.encoding = name
	}
}

// WithReplay configures replay behavior for existing log lines.
// Default: ReplayNone (only new lines).
func WithReplay(config ReplayConfig) WatchOption {
	return func(c *watchConfig) {
		c.replay = config
	}
}

// WithReplayFromStart reads from the beginning of the log file.
func WithReplayFromStart() WatchOption {
	return func(c *watchConfig) {
		c.replay = ReplayConfig{Mode: ReplayFromStart}
	}
}

// WithReplayLastN reads the last n physical lines before tailing.
// Continuation lines at the start of that window are dropped.
func WithReplayLastN(n int) WatchOption {
	return func(c *watchConfig) {
		c.replay = ReplayConfig{Mode: ReplayLastN, LastN: n}
	}
}

// WithReplaySinceTime reads lines stamped at or after since.
func WithReplaySinceTime(since time.Time) WatchOption {
	return func(c *watchConfig) {
		c.replay = ReplayConfig{Mode: ReplaySinceTime, Since: since}
	}
}

// WithMaxReplayLines sets the maximum lines for ReplayLastN mode.
// 0 uses DefaultMaxReplayLastN. -1 disables the limit.
func WithMaxReplayLines(max int) WatchOption {
	return func(c *watchConfig) {
		c.maxReplayLines = max
	}
}

// WithMaxReplayBytes sets the maximum total bytes read during ReplayLastN.
// Default is 10MB. 0 disables the limit.
func WithMaxReplayBytes(max int) WatchOption {
	return func(c *watchConfig) {
		c.maxReplayBytes = max
	}
}

// WithMaxReplayLineBytes sets the maximum bytes per line during
// ReplayLastN. Default is 512KB. 0 disables the limit.
func WithMaxReplayLineBytes(max int) WatchOption {
	return func(c *watchConfig) {
		c.maxReplayLineBytes = max
	}
}

// WithLogger sets a logger for debug output.
// If logger is nil, logging is disabled (default behavior).
func WithLogger(logger *slog.Logger) WatchOption {
	return func(c *watchConfig) {
		c.logger = logger
	}
}

// WithWatchParser sets the Parser used for each line.
// If p is nil, this option has no effect.
func WithWatchParser(p *Parser) WatchOption {
	return func(c *watchConfig) {
		if p != nil {
			c.parser = p
		}
	}
}

// WithIncludeTypes keeps only lines of the given types.
// If called multiple times, only the last call takes effect.
func WithIncludeTypes(types ...EventType) WatchOption {
	return func(c *watchConfig) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.include = typeSet(types)
	}
}

// WithExcludeTypes drops lines of the given types.
// Exclude takes precedence over include.
func WithExcludeTypes(types ...EventType) WatchOption {
	return func(c *watchConfig) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.exclude = typeSet(types)
	}
}

// WithFilter sets both include and exclude type filters.
func WithFilter(include, exclude []EventType) WatchOption {
	return func(c *watchConfig) {
		c.filter = newCompiledFilter(include, exclude)
	}
}
