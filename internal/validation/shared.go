package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Error collects per-field validation messages. order remembers the sequence
// in which checks failed so Messages is stable.
type Error struct {
	Fields map[string]string
	order  []string
}

func (e *Error) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.order = append(e.order, field)
	}
	e.Fields[field] = msg
}

func (e *Error) empty() bool {
	return len(e.Fields) == 0
}

// Messages returns the human-readable messages in check order. Fields set
// directly on the map without add are appended in key order.
func (e *Error) Messages() []string {
	seen := make(map[string]bool, len(e.order))
	msgs := make([]string, 0, len(e.Fields))
	for _, field := range e.order {
		if msg, ok := e.Fields[field]; ok {
			msgs = append(msgs, msg)
			seen[field] = true
		}
	}

	rest := make([]string, 0)
	for field := range e.Fields {
		if !seen[field] {
			rest = append(rest, field)
		}
	}
	sort.Strings(rest)
	for _, field := range rest {
		msgs = append(msgs, e.Fields[field])
	}
	return msgs
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.order {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(parts, "; ")
}
