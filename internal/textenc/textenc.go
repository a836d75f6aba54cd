// Package textenc decodes chat logs written in legacy encodings.
//
// Current viewers write UTF-8. Old logs copied from Windows installs are
// often Windows-1252, and some Linux builds wrote ISO-8859-1.
package textenc

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Name identifies a supported encoding.
type Name string

const (
	UTF8        Name = "utf-8"
	Windows1252 Name = "windows-1252"
	ISO88591    Name = "iso-8859-1"
)

var encodings = map[Name]encoding.Encoding{
	// The decoder strips a leading BOM.
	UTF8:        unicode.UTF8BOM,
	Windows1252: charmap.Windows1252,
	ISO88591:    charmap.ISO8859_1,
}

var aliases = map[string]Name{
	"":         UTF8,
	"utf8":     UTF8,
	"cp1252":   Windows1252,
	"latin1":   ISO88591,
	"latin-1":  ISO88591,
	"iso88591": ISO88591,
}

// Lookup resolves an encoding name or alias, case-insensitively. An empty
// name selects UTF-8.
func Lookup(name string) (Name, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if n, ok := aliases[key]; ok {
		return n, nil
	}
	if _, ok := encodings[Name(key)]; ok {
		return Name(key), nil
	}
	return "", fmt.Errorf("unsupported encoding %q (supported: %s)", name, strings.Join(Names(), ", "))
}

// Names returns the canonical encoding names, sorted.
func Names() []string {
	out := make([]string, 0, len(encodings))
	for n := range encodings {
		out = append(out, string(n))
	}
	sort.Strings(out)
	return out
}

// NewReader returns a reader that decodes r from the named encoding into
// UTF-8.
func NewReader(r io.Reader, name Name) (io.Reader, error) {
	enc, ok := encodings[name]
	if !ok {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// DecodeString decodes a single string. It is used for lines delivered by
// the tailer, which reads raw bytes.
func DecodeString(s string, name Name) (string, error) {
	if name == UTF8 || name == "" {
		return strings.TrimPrefix(s, "\ufeff"), nil
	}
	enc, ok := encodings[name]
	if !ok {
		return "", fmt.Errorf("unsupported encoding %q", name)
	}
	out, _, err := transform.String(enc.NewDecoder(), s)
	return out, err
}
