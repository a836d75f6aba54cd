package slchatlog

// compiledFilter selects lines by event type. Exclude wins over include;
// an empty include set allows everything not excluded.
type compiledFilter struct {
	include map[EventType]struct{}
	exclude map[EventType]struct{}
}

func newCompiledFilter(include, exclude []EventType) *compiledFilter {
	f := &compiledFilter{}
	if len(include) > 0 {
		f.include = typeSet(include)
	}
	if len(exclude) > 0 {
		f.exclude = typeSet(exclude)
	}
	return f
}

func typeSet(types []EventType) map[EventType]struct{} {
	m := make(map[EventType]struct{}, len(types))
	for _, t := range types {
		m[t] = struct{}{}
	}
	return m
}

// Allows reports whether a line of type t passes the filter.
func (f *compiledFilter) Allows(t EventType) bool {
	if f == nil {
		return true
	}
	if _, ok := f.exclude[t]; ok {
		return false
	}
	if len(f.include) == 0 {
		return true
	}
	_, ok := f.include[t]
	return ok
}
