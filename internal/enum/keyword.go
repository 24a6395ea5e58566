package enum

import (
	"slices"
	"strings"
)

// Keyword is an editable keyword value together with its domain.
type Keyword struct {
	Property string
	Value    string
	Options  []string
}

// Parse builds a Keyword from a token's raw text.
func Parse(property, raw string, keyframes []string) *Keyword {
	value := strings.TrimSpace(raw)
	if Effective(property) == "font-family" {
		value = NormalizeFontFamily(value)
	}
	return &Keyword{
		Property: property,
		Value:    value,
		Options:  Options(property, keyframes),
	}
}

// Known reports whether the current value is one of the offered options.
func (k *Keyword) Known() bool {
	return slices.ContainsFunc(k.Options, func(o string) bool {
		return strings.EqualFold(o, k.Value)
	})
}

// Alternatives returns the options other than the current value.
func (k *Keyword) Alternatives() []string {
	var out []string
	for _, o := range k.Options {
		if !strings.EqualFold(o, k.Value) {
			out = append(out, o)
		}
	}
	return out
}

// Recompose renders the keyword, quoting font family names as needed.
func (k *Keyword) Recompose() string {
	if Effective(k.Property) == "font-family" {
		return FormatFontFamily(k.Value)
	}
	return k.Value
}
