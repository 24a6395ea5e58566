// Package transform parses a transform value into an ordered list of
// function calls plus a table of editable components, and renders it back.
package transform

// Component is one editable axis of a transform.
type Component int

const (
	TranslateX Component = iota
	TranslateY
	TranslateZ
	Rotate
	RotateX
	RotateY
	SkewX
	SkewY
	ScaleX
	ScaleY
	ScaleZ
	Perspective

	componentCount
)

var componentNames = [componentCount]string{
	TranslateX:  "translateX",
	TranslateY:  "translateY",
	TranslateZ:  "translateZ",
	Rotate:      "rotate",
	RotateX:     "rotateX",
	RotateY:     "rotateY",
	SkewX:       "skewX",
	SkewY:       "skewY",
	ScaleX:      "scaleX",
	ScaleY:      "scaleY",
	ScaleZ:      "scaleZ",
	Perspective: "perspective",
}

func (c Component) String() string {
	if c < 0 || c >= componentCount {
		return "unknown"
	}
	return componentNames[c]
}

// Components lists every component in canonical order.
func Components() []Component {
	out := make([]Component, componentCount)
	for i := range out {
		out[i] = Component(i)
	}
	return out
}

// Value is a component magnitude with its unit. Scale values have no unit.
type Value struct {
	Num  float64
	Unit string
}

func (c Component) isScale() bool {
	return c == ScaleX || c == ScaleY || c == ScaleZ
}

// defaultValue is the value of a component the source never set.
func (c Component) defaultValue() Value {
	switch c {
	case ScaleX, ScaleY, ScaleZ:
		return Value{Num: 1}
	case Perspective:
		return Value{Num: 800, Unit: "px"}
	case TranslateX, TranslateY, TranslateZ:
		return Value{Unit: "px"}
	}
	return Value{Unit: "deg"}
}

func (c Component) defaultUnit() string {
	return c.defaultValue().Unit
}

// decimals is the rounding applied when a component is rendered.
func (c Component) decimals() int {
	switch c {
	case TranslateX, TranslateY, TranslateZ, ScaleX, ScaleY, ScaleZ:
		return 2
	case Perspective:
		return 0
	}
	return 1
}

// function describes a recognized transform function.
type function struct {
	name       string
	components []Component
	// shorthand functions take one or two arguments for X and Y
	shorthand bool
}

// functions is keyed by lower-cased function name.
var functions = map[string]function{
	"translate":   {name: "translate", components: []Component{TranslateX, TranslateY}, shorthand: true},
	"translatex":  {name: "translateX", components: []Component{TranslateX}},
	"translatey":  {name: "translateY", components: []Component{TranslateY}},
	"translatez":  {name: "translateZ", components: []Component{TranslateZ}},
	"rotate":      {name: "rotate", components: []Component{Rotate}},
	"rotatez":     {name: "rotateZ", components: []Component{Rotate}},
	"rotatex":     {name: "rotateX", components: []Component{RotateX}},
	"rotatey":     {name: "rotateY", components: []Component{RotateY}},
	"skew":        {name: "skew", components: []Component{SkewX, SkewY}, shorthand: true},
	"skewx":       {name: "skewX", components: []Component{SkewX}},
	"skewy":       {name: "skewY", components: []Component{SkewY}},
	"scale":       {name: "scale", components: []Component{ScaleX, ScaleY}, shorthand: true},
	"scalex":      {name: "scaleX", components: []Component{ScaleX}},
	"scaley":      {name: "scaleY", components: []Component{ScaleY}},
	"scalez":      {name: "scaleZ", components: []Component{ScaleZ}},
	"perspective": {name: "perspective", components: []Component{Perspective}},
}
