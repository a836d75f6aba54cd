package pattern_test

import (
	"errors"
	"regexp/syntax"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slchatlog/slchatlog-go/pkg/slchatlog"
	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/event"
	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/pattern"
)

func mustMatcher(t *testing.T, patterns ...pattern.Pattern) *pattern.Matcher {
	t.Helper()
	m, err := pattern.NewMatcher(&pattern.PatternFile{Version: 1, Patterns: patterns})
	require.NoError(t, err)
	return m
}

func TestMatcher_Match(t *testing.T) {
	m := mustMatcher(t,
		pattern.Pattern{ID: "region", Regex: `You have entered (?P<region>.+)\.`},
		pattern.Pattern{ID: "tip", Regex: `Tip jar: (?P<sender>\S+ \S+) tipped L\$(?P<amount>\d+)`},
		pattern.Pattern{ID: "plain", Regex: `Welcome back(, .*)?`},
	)

	tests := []struct {
		name string
		text string
		want *event.PatternMessage
	}{
		{
			name: "named group",
			text: "You have entered Ahern.",
			want: &event.PatternMessage{ID: "region", Message: "You have entered Ahern.", Data: map[string]string{"region": "Ahern"}},
		},
		{
			name: "several groups",
			text: "Tip jar: Jane Doe tipped L$50",
			want: &event.PatternMessage{ID: "tip", Message: "Tip jar: Jane Doe tipped L$50", Data: map[string]string{"sender": "Jane Doe", "amount": "50"}},
		},
		{
			name: "unnamed groups leave data nil",
			text: "Welcome back, Jane",
			want: &event.PatternMessage{ID: "plain", Message: "Welcome back, Jane"},
		},
		{name: "must match whole text", text: "You have entered Ahern. Enjoy!"},
		{name: "prefix not enough", text: "Note: Welcome back"},
		{name: "no match", text: "Home position set."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Match(tt.text)
			if tt.want == nil {
				assert.False(t, ok)
				assert.Nil(t, got)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatcher_FirstPatternWins(t *testing.T) {
	m := mustMatcher(t,
		pattern.Pattern{ID: "specific", Regex: `Hello (?P<name>Jane)`},
		pattern.Pattern{ID: "general", Regex: `Hello .+`},
	)
	got, ok := m.Match("Hello Jane")
	require.True(t, ok)
	assert.Equal(t, "specific", got.ID)

	got, ok = m.Match("Hello Bob")
	require.True(t, ok)
	assert.Equal(t, "general", got.ID)
}

func TestNewMatcher_InvalidRegex(t *testing.T) {
	_, err := pattern.NewMatcher(&pattern.PatternFile{
		Version:  1,
		Patterns: []pattern.Pattern{{ID: "ok", Regex: "a"}, {ID: "broken", Regex: "(unclosed"}},
	})
	var patErr *pattern.PatternError
	require.True(t, errors.As(err, &patErr))
	assert.Equal(t, 1, patErr.Index)
	assert.Equal(t, "broken", patErr.ID)

	var synErr *syntax.Error
	assert.True(t, errors.As(err, &synErr))
}

func TestNewMatcher_Nil(t *testing.T) {
	_, err := pattern.NewMatcher(nil)
	assert.Error(t, err)
}

func TestNewMatcherFromFile(t *testing.T) {
	m, err := pattern.NewMatcherFromFile("testdata/valid.yaml")
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())

	_, err = pattern.NewMatcherFromFile("testdata/invalid_regex.yaml")
	assert.Error(t, err)
}

func TestMatcher_Shapes(t *testing.T) {
	m, err := pattern.NewMatcherFromFile("testdata/valid.yaml")
	require.NoError(t, err)

	shapes := m.Shapes()
	require.Len(t, shapes, 2)
	assert.Equal(t, "pattern:region_entered", shapes[0].Name)
	assert.Equal(t, "pattern:tip_jar", shapes[1].Name)

	// Each shape only matches its own pattern.
	_, ok := shapes[1].Parse("You have entered Ahern.")
	assert.False(t, ok)
	msg, ok := shapes[0].Parse("You have entered Ahern.")
	require.True(t, ok)
	assert.Equal(t, event.PatternMatched, msg.Type())
}

func TestMatcher_WithParser(t *testing.T) {
	m, err := pattern.NewMatcherFromFile("testdata/valid.yaml")
	require.NoError(t, err)

	p, err := slchatlog.NewParser(slchatlog.WithLocation(time.UTC), slchatlog.WithSystemShapes(m.Shapes()...))
	require.NoError(t, err)

	l, err := p.ParseLine("[2024/01/15 10:00:00] Second Life: You have entered Ahern.")
	require.NoError(t, err)
	assert.Equal(t, &event.SystemLine{Message: &event.PatternMessage{
		ID:      "region_entered",
		Message: "You have entered Ahern.",
		Data:    map[string]string{"region": "Ahern"},
	}}, l.Event)

	// Built-in shapes still take precedence.
	l, err = p.ParseLine("[2024/01/15 10:00:00] Second Life: Now playing: You have entered Ahern.")
	require.NoError(t, err)
	assert.Equal(t, event.NowPlaying, l.Type())
}

func TestMatcher_Reclassify(t *testing.T) {
	m, err := pattern.NewMatcherFromFile("testdata/valid.yaml")
	require.NoError(t, err)

	l, err := slchatlog.ParseLine("[2024/01/15 10:00:00] Second Life: Tip jar: Jane Doe tipped L$5")
	require.NoError(t, err)
	require.Equal(t, event.OtherSystem, l.Type())

	got := slchatlog.Reclassify(l, m.Shapes())
	assert.Equal(t, event.PatternMatched, got.Type())
}
