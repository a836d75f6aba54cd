package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/slchatlog/slchatlog-go/pkg/slchatlog"
	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/event"
	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/sltypes"
)

// ValidFormats lists all valid output formats.
var ValidFormats = map[string]bool{
	"jsonl":  true,
	"pretty": true,
}

// sourceRecord is the jsonl shape written with --source.
type sourceRecord struct {
	Path       string         `json:"path,omitempty"`
	LineNumber int            `json:"line_number,omitempty"`
	Raw        string         `json:"raw"`
	Line       slchatlog.Line `json:"line"`
}

// OutputEntry writes an entry in the specified format to the writer.
// withSource adds the file position and raw text to jsonl output.
func OutputEntry(format string, entry slchatlog.Entry, withSource bool, out io.Writer) error {
	switch format {
	case "jsonl":
		if withSource {
			return writeJSON(sourceRecord{
				Path:       entry.Path,
				LineNumber: entry.LineNumber,
				Raw:        entry.Raw,
				Line:       entry.Line,
			}, out)
		}
		return OutputJSON(entry.Line, out)
	case "pretty":
		return OutputPretty(entry.Line, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// OutputJSON writes a line as JSON Lines format.
func OutputJSON(line slchatlog.Line, out io.Writer) error {
	return writeJSON(line, out)
}

func writeJSON(v any, out io.Writer) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// OutputPretty writes a line in human-readable format.
func OutputPretty(line slchatlog.Line, out io.Writer) error {
	ts := "--:--:--"
	if line.Timestamp != nil {
		ts = line.Timestamp.Format("2006-01-02 15:04:05")
	}

	var err error
	switch ev := line.Event.(type) {
	case *event.AvatarLine:
		_, err = fmt.Fprintf(out, "[%s] %s\n", ts, prettyAvatar(ev))
	case *event.SystemLine:
		_, err = fmt.Fprintf(out, "[%s] %s\n", ts, prettySystem(ev.Message))
	case *event.OtherMessage:
		_, err = fmt.Fprintf(out, "[%s] ? %s\n", ts, ev.Message)
	default:
		_, err = fmt.Fprintf(out, "[%s] ? %s\n", ts, line.Type())
	}
	return err
}

func prettyAvatar(ev *event.AvatarLine) string {
	switch m := ev.Message.(type) {
	case *event.ChatMessage:
		switch m.Volume {
		case sltypes.Whisper:
			return fmt.Sprintf("%s whispers: %s", ev.Name, m.Message)
		case sltypes.Shout:
			return fmt.Sprintf("%s shouts: %s", ev.Name, m.Message)
		}
		return fmt.Sprintf("%s: %s", ev.Name, m.Message)
	case *event.EmoteMessage:
		return fmt.Sprintf("* %s %s", ev.Name, m.Message)
	case *event.CameOnlineMessage:
		return fmt.Sprintf("+ %s is online", ev.Name)
	case *event.WentOfflineMessage:
		return fmt.Sprintf("- %s is offline", ev.Name)
	case *event.EnteredAreaMessage:
		if m.Distance != nil {
			return fmt.Sprintf("> %s entered %s (%s)", ev.Name, m.Area, m.Distance)
		}
		return fmt.Sprintf("> %s entered %s", ev.Name, m.Area)
	case *event.LeftAreaMessage:
		return fmt.Sprintf("< %s left %s", ev.Name, m.Area)
	}
	return fmt.Sprintf("%s: %s", ev.Name, ev.Type())
}

func prettySystem(msg event.SystemMessage) string {
	switch m := msg.(type) {
	case *event.OtherSystemMessage:
		return "! " + m.Message
	case *event.PatternMessage:
		if len(m.Data) > 0 {
			return fmt.Sprintf("* %s: %s", m.ID, formatData(m.Data))
		}
		return fmt.Sprintf("* %s: %s", m.ID, m.Message)
	}

	// Typed notices are shown as their fields, flattened to key=value.
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Sprintf("! %s", msg.Type())
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil || len(fields) == 0 {
		return fmt.Sprintf("! %s", msg.Type())
	}
	flat := make(map[string]string, len(fields))
	for k, v := range fields {
		if s, ok := v.(string); ok {
			flat[k] = s
			continue
		}
		b, _ := json.Marshal(v)
		flat[k] = string(b)
	}
	return fmt.Sprintf("! %s: %s", msg.Type(), formatData(flat))
}

// formatData formats a map as sorted key=value pairs.
// Values are quoted if they contain spaces, equals signs, quotes, or control characters.
func formatData(data map[string]string) string {
	if len(data) == 0 {
		return ""
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(data))
	for _, k := range keys {
		parts = append(parts, quoteIfNeeded(k)+"="+quoteIfNeeded(data[k]))
	}
	return strings.Join(parts, " ")
}

// quoteIfNeeded quotes a value if it contains special characters or control characters.
func quoteIfNeeded(v string) string {
	if v == "" {
		return `""`
	}
	if !strings.ContainsFunc(v, needsQuote) {
		return v
	}

	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range v {
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c < 0x20 || c == 0x7F:
			fmt.Fprintf(&sb, `\x%02x`, c)
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func needsQuote(c rune) bool {
	return c == ' ' || c == '=' || c == '"' || c == '\\' || c < 0x20 || c == 0x7F
}
