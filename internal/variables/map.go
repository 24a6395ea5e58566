// Package variables builds the custom property table of a document and
// follows var() indirections to literal values.
//
// The table is flat: the last declaration of a name anywhere in the text
// wins, regardless of selector or nesting.
package variables

import (
	"strings"

	"bennypowers.dev/svls/internal/patterns"
)

// Map holds the last declared raw value of each custom property, keyed by
// the lower-cased name including its leading dashes.
type Map struct {
	values map[string]string
	order  []string
}

// BuildMap collects every custom property declaration in text.
func BuildMap(text string) Map {
	m := Map{values: make(map[string]string)}
	for _, p := range patterns.CustomProperties(text) {
		m.Set(p.Name, p.Value)
	}
	return m
}

// Set records a declaration, replacing any earlier value for the name.
func (m *Map) Set(name, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	key := strings.ToLower(name)
	if _, exists := m.values[key]; !exists {
		m.order = append(m.order, key)
	}
	m.values[key] = strings.TrimSpace(value)
}

// Lookup returns the raw value declared for name, ignoring case.
func (m Map) Lookup(name string) (string, bool) {
	v, ok := m.values[strings.ToLower(name)]
	return v, ok
}

// Len returns the number of distinct names.
func (m Map) Len() int {
	return len(m.values)
}

// Names returns the lower-cased names in first-declared order.
func (m Map) Names() []string {
	return append([]string(nil), m.order...)
}
