package pattern_test

import (
	"fmt"
	"log"
	"time"

	"github.com/slchatlog/slchatlog-go/pkg/slchatlog"
	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/event"
	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/pattern"
)

// Example adds a custom notice to a parser.
func Example() {
	pf, err := pattern.LoadBytes([]byte(`version: 1
patterns:
  - id: region_entered
    regex: 'You have entered (?P<region>.+)\.'
`))
	if err != nil {
		log.Fatal(err)
	}
	m, err := pattern.NewMatcher(pf)
	if err != nil {
		log.Fatal(err)
	}

	p, err := slchatlog.NewParser(
		slchatlog.WithLocation(time.UTC),
		slchatlog.WithSystemShapes(m.Shapes()...),
	)
	if err != nil {
		log.Fatal(err)
	}

	line, err := p.ParseLine("[2024/01/15 23:59:59] Second Life: You have entered Ahern.")
	if err != nil {
		log.Fatal(err)
	}
	if msg, ok := line.Payload().(*event.PatternMessage); ok {
		fmt.Printf("Type: %s\n", line.Type())
		fmt.Printf("ID: %s\n", msg.ID)
		fmt.Printf("Region: %s\n", msg.Data["region"])
	}
	// Output:
	// Type: pattern_matched
	// ID: region_entered
	// Region: Ahern
}

// ExampleMatcher_Match matches notice text directly.
func ExampleMatcher_Match() {
	m, err := pattern.NewMatcherFromFile("testdata/valid.yaml")
	if err != nil {
		log.Fatal(err)
	}

	msg, ok := m.Match("Tip jar: Jane Doe tipped L$25")
	fmt.Println(ok, msg.ID, msg.Data["sender"], msg.Data["amount"])
	// Output:
	// true tip_jar Jane Doe 25
}
