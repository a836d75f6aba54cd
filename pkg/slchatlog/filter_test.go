package slchatlog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/event"
)

func TestCompiledFilter_Allows(t *testing.T) {
	tests := []struct {
		name    string
		filter  *compiledFilter
		allowed []EventType
		denied  []EventType
	}{
		{
			name:    "nil allows all",
			filter:  nil,
			allowed: []EventType{event.Chat, event.OtherSystem},
		},
		{
			name:    "include only",
			filter:  newCompiledFilter([]EventType{event.Chat, event.Emote}, nil),
			allowed: []EventType{event.Chat, event.Emote},
			denied:  []EventType{event.SentPayment},
		},
		{
			name:    "exclude only",
			filter:  newCompiledFilter(nil, []EventType{event.OtherSystem}),
			allowed: []EventType{event.Chat},
			denied:  []EventType{event.OtherSystem},
		},
		{
			name:   "exclude wins",
			filter: newCompiledFilter([]EventType{event.Chat}, []EventType{event.Chat}),
			denied: []EventType{event.Chat, event.Emote},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, typ := range tt.allowed {
				assert.True(t, tt.filter.Allows(typ), "%s", typ)
			}
			for _, typ := range tt.denied {
				assert.False(t, tt.filter.Allows(typ), "%s", typ)
			}
		})
	}
}
