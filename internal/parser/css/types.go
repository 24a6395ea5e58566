package css

import "bennypowers.dev/svls/internal/patterns"

// Declaration is a `property: value` declaration found by the CSS grammar.
type Declaration struct {
	// Property keeps its source casing.
	Property string
	// Value is the text between the colon and the semicolon, trimmed.
	Value string
	// Span covers the whole declaration; ValueSpan covers Value.
	Span      patterns.Span
	ValueSpan patterns.Span
}

// IsCustomProperty reports whether the declaration defines a --custom-property.
func (d *Declaration) IsCustomProperty() bool {
	return len(d.Property) > 2 && d.Property[:2] == "--"
}

// VarCall is a var() reference.
type VarCall struct {
	Name        string
	Fallback    string
	HasFallback bool
	Span        patterns.Span
}

// ParseResult contains the results of parsing CSS
type ParseResult struct {
	Declarations []*Declaration
	VarCalls     []*VarCall
}

// Shift moves every span by delta bytes, for results parsed from a region
// embedded in a larger document.
func (r *ParseResult) Shift(delta int) {
	for _, d := range r.Declarations {
		d.Span = d.Span.Shift(delta)
		d.ValueSpan = d.ValueSpan.Shift(delta)
	}
	for _, v := range r.VarCalls {
		v.Span = v.Span.Shift(delta)
	}
}

// Append adds the declarations and calls of other to r.
func (r *ParseResult) Append(other *ParseResult) {
	r.Declarations = append(r.Declarations, other.Declarations...)
	r.VarCalls = append(r.VarCalls, other.VarCalls...)
}

// CustomProperty returns the last declaration of the custom property name.
func (r *ParseResult) CustomProperty(name string) (*Declaration, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if d := r.Declarations[i]; d.IsCustomProperty() && d.Property == name {
			return d, true
		}
	}
	return nil, false
}

// VarCallAt returns the innermost var() call containing offset.
func (r *ParseResult) VarCallAt(offset int) (*VarCall, bool) {
	var found *VarCall
	for _, v := range r.VarCalls {
		if v.Span.Start <= offset && offset < v.Span.End {
			if found == nil || v.Span.Len() < found.Span.Len() {
				found = v
			}
		}
	}
	return found, found != nil
}
