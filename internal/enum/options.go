package enum

import (
	"slices"
	"strings"
)

var options = map[string][]string{
	"display":         {"none", "block", "inline", "inline-block", "flex", "grid", "inline-flex", "contents"},
	"position":        {"static", "relative", "absolute", "fixed", "sticky"},
	"overflow":        {"visible", "hidden", "scroll", "auto", "clip"},
	"visibility":      {"visible", "hidden", "collapse"},
	"pointer-events":  {"auto", "none"},
	"cursor": {
		"auto", "default", "pointer", "move", "text", "grab", "grabbing", "not-allowed",
		"crosshair", "zoom-in", "zoom-out", "ew-resize", "ns-resize", "nesw-resize",
		"nwse-resize", "col-resize", "row-resize",
	},
	"flex-direction":  {"row", "row-reverse", "column", "column-reverse"},
	"justify-content": {"flex-start", "center", "flex-end", "space-between", "space-around", "space-evenly"},
	"justify-items":   {"stretch", "start", "center", "end"},
	"justify-self":    {"auto", "stretch", "start", "center", "end", "self-start", "self-end"},
	"align-items":     {"stretch", "flex-start", "center", "flex-end", "baseline"},
	"align-content":   {"stretch", "flex-start", "center", "flex-end", "space-between", "space-around", "space-evenly"},
	"align-self":      {"auto", "stretch", "flex-start", "center", "flex-end", "baseline"},
	"flex-wrap":       {"nowrap", "wrap", "wrap-reverse"},
	"text-transform":  {"none", "uppercase", "lowercase", "capitalize"},
	"text-align":      {"left", "center", "right", "justify", "start", "end"},
	"text-decoration": {"none", "underline", "overline", "line-through"},
	"font-style":      {"normal", "italic", "oblique"},
	"font-variant":    {"normal", "small-caps"},
	"font-stretch": {
		"normal", "condensed", "expanded", "ultra-condensed", "extra-condensed",
		"semi-condensed", "semi-expanded", "extra-expanded", "ultra-expanded",
	},
	"font-family": {
		"JetBrains Mono", "Cinzel", "Fira Code", "Source Code Pro", "IBM Plex Mono", "Inter",
		"Roboto", "Arial", "Helvetica", "Courier New", "Georgia", "Times New Roman", "Verdana", "Tahoma",
	},
	"font-weight":               {"100", "200", "300", "400", "500", "600", "700", "800", "900", "normal", "bold", "bolder", "lighter"},
	"white-space":               {"normal", "nowrap", "pre", "pre-wrap", "pre-line", "break-spaces"},
	"word-break":                {"normal", "break-all", "keep-all", "break-word"},
	"background-repeat":         {"repeat", "repeat-x", "repeat-y", "no-repeat", "space", "round"},
	"background-size":           {"auto", "cover", "contain"},
	"background-attachment":     {"scroll", "fixed", "local"},
	"background-clip":           {"border-box", "padding-box", "content-box", "text"},
	"background-origin":         {"padding-box", "border-box", "content-box"},
	"border-style":              {"none", "hidden", "solid", "dashed", "dotted", "double", "groove", "ridge", "inset", "outset"},
	"object-fit":                {"fill", "contain", "cover", "none", "scale-down"},
	"animation-timing-function": {"ease", "linear", "ease-in", "ease-out", "ease-in-out", "step-start", "step-end", "steps(2)", "steps(4)", "cubic-bezier(0.4, 0, 0.2, 1)"},
	"animation-direction":       {"normal", "reverse", "alternate", "alternate-reverse"},
	"animation-fill-mode":       {"none", "forwards", "backwards", "both"},
	"animation-play-state":      {"running", "paused"},
	"animation-iteration-count": {"infinite", "1", "2", "3", "4", "5"},
}

var aliases = map[string]string{
	"overflow-x":           "overflow",
	"overflow-y":           "overflow",
	"text-decoration-line": "text-decoration",
}

// Options returns the keyword alternatives offered for property. Animation
// names come from the @keyframes rules of the document.
func Options(property string, keyframes []string) []string {
	p := Effective(property)
	if p == "animation" || p == "animation-name" {
		return append([]string{"none"}, keyframes...)
	}
	if alias, ok := aliases[p]; ok {
		p = alias
	}
	return slices.Clone(options[p])
}

// NormalizeFontFamily strips the quotes around a single quoted family name.
func NormalizeFontFamily(value string) string {
	if len(value) < 2 {
		return value
	}
	q := value[0]
	if (q != '"' && q != '\'') || value[len(value)-1] != q {
		return value
	}
	inner := value[1 : len(value)-1]
	if strings.IndexByte(inner, q) >= 0 {
		return value
	}
	return inner
}

// FormatFontFamily quotes a single family name that contains spaces.
// Lists and var() references are returned unquoted as written.
func FormatFontFamily(value string) string {
	cleaned := NormalizeFontFamily(strings.TrimSpace(value))
	if strings.Contains(cleaned, ",") || strings.Contains(cleaned, "var(") {
		return cleaned
	}
	if strings.Contains(cleaned, " ") {
		return "'" + cleaned + "'"
	}
	return cleaned
}
