// Package enum knows the properties whose values come from a closed set of
// keywords, and offers the alternatives for each.
package enum

import (
	"strings"

	"bennypowers.dev/svls/internal/collections"
)

var properties = collections.NewSet(
	"display", "position", "overflow", "overflow-x", "overflow-y", "visibility",
	"pointer-events", "cursor", "flex-direction", "justify-content", "justify-items",
	"justify-self", "align-items", "align-content", "align-self", "flex-wrap",
	"text-transform", "text-align", "text-decoration", "text-decoration-line",
	"font-style", "font-variant", "font-stretch", "font-family", "font-weight",
	"white-space", "word-break", "background-repeat", "background-size",
	"background-attachment", "background-clip", "background-origin", "border-style",
	"object-fit", "animation", "animation-name", "animation-timing-function",
	"animation-direction", "animation-fill-mode", "animation-play-state",
	"animation-iteration-count",
)

// Keyword domains of the animation shorthand. They are disjoint, so a word
// belongs to at most one sub-property.
var (
	TimingFunctions = collections.NewKeywords("linear", "ease", "ease-in", "ease-out", "ease-in-out", "step-start", "step-end")
	Directions      = collections.NewKeywords("normal", "reverse", "alternate", "alternate-reverse")
	FillModes       = collections.NewKeywords("none", "forwards", "backwards", "both")
	PlayStates      = collections.NewKeywords("running", "paused")
	IterationCounts = collections.NewKeywords("infinite")
	BorderStyles    = collections.NewKeywords("none", "hidden", "solid", "dashed", "dotted", "double", "groove", "ridge", "inset", "outset")
)

// TimingCalls are the timing functions written as calls.
var TimingCalls = []string{"steps", "cubic-bezier"}

// IsProperty reports whether property takes a keyword value.
func IsProperty(property string) bool {
	return properties.Has(strings.ToLower(property))
}

// Effective maps a declared property to the property whose keyword domain
// applies: custom properties named --font* are treated as font-family.
func Effective(property string) string {
	p := strings.ToLower(property)
	if strings.HasPrefix(p, "--font") {
		return "font-family"
	}
	return p
}

// AnimationPart classifies one word of an animation shorthand. Declared
// keyframe names take precedence over keywords.
func AnimationPart(word string, keyframes []string) (string, bool) {
	for _, k := range keyframes {
		if strings.EqualFold(k, word) {
			return "animation-name", true
		}
	}
	switch {
	case TimingFunctions.Has(word):
		return "animation-timing-function", true
	case Directions.Has(word):
		return "animation-direction", true
	case FillModes.Has(word):
		return "animation-fill-mode", true
	case PlayStates.Has(word):
		return "animation-play-state", true
	case IterationCounts.Has(word):
		return "animation-iteration-count", true
	}
	return "", false
}
