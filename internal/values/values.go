// Package values turns scanned tokens into editable models. Value is a closed
// sum over the token categories, each variant able to render itself back to
// source text.
package values

import (
	"bennypowers.dev/svls/internal/color"
	"bennypowers.dev/svls/internal/enum"
	"bennypowers.dev/svls/internal/gradient"
	"bennypowers.dev/svls/internal/number"
	"bennypowers.dev/svls/internal/scanner"
	"bennypowers.dev/svls/internal/shadow"
	"bennypowers.dev/svls/internal/transform"
	"bennypowers.dev/svls/internal/variables"
)

// Value is the parsed model of one token.
type Value interface {
	// Category is the token category the value belongs to.
	Category() scanner.Category
	// Source is the token text the value was parsed from.
	Source() string
	// Recompose renders the value as replacement text.
	Recompose() string

	isValue()
}

type base struct {
	raw string
}

func (b base) Source() string { return b.raw }
func (base) isValue() {}

// Color is a color literal or a var() resolving to one.
type Color struct {
	base
	// Resolved is the literal the token resolves to.
	Resolved string
	Model    *color.Color
}

func (Color) Category() scanner.Category { return scanner.Color }
func (v Color) Recompose() string { return v.Model.Recompose() }

// Gradient is a gradient call or a var() resolving to one.
type Gradient struct {
	base
	Resolved string
	Model    *gradient.Parsed
}

func (Gradient) Category() scanner.Category { return scanner.Gradient }
func (v Gradient) Recompose() string { return v.Model.Recompose() }

// Shadow is a box-shadow or text-shadow list.
type Shadow struct {
	base
	Model *shadow.List
}

func (Shadow) Category() scanner.Category { return scanner.Shadow }
func (v Shadow) Recompose() string { return v.Model.Recompose() }

// Transform is a transform function list.
type Transform struct {
	base
	Model *transform.Parsed
}

func (Transform) Category() scanner.Category { return scanner.Transform }
func (v Transform) Recompose() string { return v.Model.Recompose() }

// Keyword is a value from a closed keyword domain.
type Keyword struct {
	base
	Model *enum.Keyword
}

func (Keyword) Category() scanner.Category { return scanner.Enum }
func (v Keyword) Recompose() string { return v.Model.Recompose() }

// Number is a numeric literal with an optional unit.
type Number struct {
	base
	Property string
	Model    *number.Number
}

func (Number) Category() scanner.Category { return scanner.Number }
func (v Number) Recompose() string { return v.Model.Recompose() }

// Range returns the editing range for the number.
func (v Number) Range() number.Range {
	return number.RangeFor(v.Property, v.Model.Unit, v.Model.Value)
}

// Raw is a token whose text fits no model. It is edited as plain text.
type Raw struct {
	base
	Cat scanner.Category
}

func (v Raw) Category() scanner.Category { return v.Cat }
func (v Raw) Recompose() string { return v.raw }

// Parse builds the model for tok within text. When the token text does not
// parse, or a var() does not resolve, it returns a Raw value and false.
func Parse(tok scanner.Token, text string, ctx scanner.Context) (Value, bool) {
	return ParseText(tok.Category, tok.Property, tok.Text(text), ctx)
}

// ParseText builds the model for raw text of the given category.
func ParseText(c scanner.Category, property, raw string, ctx scanner.Context) (Value, bool) {
	b := base{raw: raw}
	fail := Raw{base: b, Cat: c}
	switch c {
	case scanner.Color:
		lit, ok := variables.ResolveColor(raw, ctx.Vars)
		if !ok {
			return fail, false
		}
		model, ok := color.Parse(lit)
		if !ok {
			return fail, false
		}
		return Color{base: b, Resolved: lit, Model: model}, true
	case scanner.Gradient:
		lit, ok := variables.ResolveGradient(raw, ctx.Vars)
		if !ok {
			return fail, false
		}
		model, ok := gradient.Parse(lit)
		if !ok {
			return fail, false
		}
		return Gradient{base: b, Resolved: lit, Model: model}, true
	}

	resolved, ok := variables.ResolveGeneric(raw, ctx.Vars)
	if !ok {
		return fail, false
	}
	switch c {
	case scanner.Shadow:
		if model, ok := shadow.Parse(resolved, property == "box-shadow"); ok {
			return Shadow{base: b, Model: model}, true
		}
	case scanner.Transform:
		if model, ok := transform.Parse(resolved); ok {
			return Transform{base: b, Model: model}, true
		}
	case scanner.Enum:
		return Keyword{base: b, Model: enum.Parse(property, resolved, ctx.Keyframes)}, true
	case scanner.Number:
		if model, ok := number.Parse(resolved); ok {
			return Number{base: b, Property: property, Model: model}, true
		}
	}
	return fail, false
}
