package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/slchatlog/slchatlog-go/internal/logfinder"
	"github.com/slchatlog/slchatlog-go/pkg/slchatlog"
)

// addParserFlags registers the grammar flags on cmd.
func addParserFlags(cmd *cobra.Command, pf *parserFlags) {
	cmd.Flags().BoolVar(&pf.extended, "extended", false,
		"Recognize the extended set of viewer notices")
	cmd.Flags().StringVar(&pf.tz, "tz", "",
		"Time zone of the log timestamps (IANA name, default: local)")
	cmd.Flags().StringSliceVarP(&pf.patterns, "patterns", "p", nil,
		"YAML pattern files for custom system notices (repeatable)")
}

// addTypeFlags registers --types and --exclude-types on cmd.
func addTypeFlags(cmd *cobra.Command, include, exclude *[]string) {
	cmd.Flags().StringSliceVarP(include, "types", "t", nil,
		"Event types to show (comma-separated, see 'slchatlog types')")
	cmd.Flags().StringSliceVar(exclude, "exclude-types", nil,
		"Event types to hide (comma-separated)")
	_ = cmd.RegisterFlagCompletionFunc("types", completeEventTypes)
	_ = cmd.RegisterFlagCompletionFunc("exclude-types", completeEventTypes)
}

func completeEventTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return slchatlog.EventTypeNames(), cobra.ShellCompDirectiveNoFileComp
}

// parseTypeFlags resolves --types and --exclude-types.
func parseTypeFlags(include, exclude []string) (inc, exc []slchatlog.EventType, err error) {
	inc, err = slchatlog.ParseEventTypes(include)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --types: %w", err)
	}
	exc, err = slchatlog.ParseEventTypes(exclude)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --exclude-types: %w", err)
	}
	return inc, exc, nil
}

// parseTimeFlag parses an RFC3339 flag value. An empty value is the zero time.
func parseTimeFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s format: %w", name, err)
	}
	return t, nil
}

// resolveInputs expands file arguments. Without arguments it falls back to
// the chat log of avatar (or the newest one) under logDir.
func resolveInputs(args []string, logDir, avatar string) ([]string, error) {
	if len(args) > 0 {
		return logfinder.ExpandGlobs(args)
	}
	dir, err := logfinder.FindLogDir(logDir)
	if err != nil {
		return nil, err
	}
	path, err := logfinder.FindChatLog(dir, avatar)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}
