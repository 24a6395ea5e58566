package values_test

import (
	"testing"

	"bennypowers.dev/svls/internal/scanner"
	"bennypowers.dev/svls/internal/shadow"
	"bennypowers.dev/svls/internal/transform"
	"bennypowers.dev/svls/internal/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stylesheet = `:root {
  --brand: #0af;
  --surface: var(--brand, white);
  --hero: linear-gradient(45deg, var(--brand), transparent 80%);
  --font-display: "Playfair Display", serif;
}
@keyframes pulse { from { opacity: 0.4; } to { opacity: 1; } }
.card {
  display: grid;
  gap: 1.5rem;
  color: var(--surface);
  background: var(--hero);
  border: 2px dashed rgba(0, 0, 0, .2);
  box-shadow: 0 1px 2px #0003, 0 4px 12px -2px hsl(210 20% 10% / .3);
  text-shadow: 1px 1px red;
  transform: translate(4px, 4px) scale(1.05) skewX(3deg);
  animation: pulse 1.2s ease-in infinite alternate;
  font-family: var(--font-display);
}`

// Every token parses, and rendering is a fixed point: parsing the rendered
// text again renders the same text.
func TestRoundTrip(t *testing.T) {
	ctx := scanner.NewContext(stylesheet)
	tokens := scanner.Scan(stylesheet)
	require.NotEmpty(t, tokens)
	for _, tok := range tokens {
		raw := tok.Text(stylesheet)
		v, ok := values.Parse(tok, stylesheet, ctx)
		if !assert.True(t, ok, "%s token %q did not parse", tok.Category, raw) {
			continue
		}
		assert.Equal(t, tok.Category, v.Category())
		assert.Equal(t, raw, v.Source())

		out := v.Recompose()
		again, ok := values.ParseText(tok.Category, tok.Property, out, ctx)
		require.True(t, ok, "recomposed %q did not parse", out)
		assert.Equal(t, out, again.Recompose(), "token %q", raw)
	}
}

func TestUntouchedStructuresKeepText(t *testing.T) {
	ctx := scanner.NewContext(stylesheet)
	for _, tok := range scanner.Scan(stylesheet) {
		switch tok.Category {
		case scanner.Shadow, scanner.Transform, scanner.Number:
			v, ok := values.Parse(tok, stylesheet, ctx)
			require.True(t, ok)
			assert.Equal(t, tok.Text(stylesheet), v.Recompose())
		}
	}
}

func TestVariants(t *testing.T) {
	text := "--c: #ff0000; color: var(--c); box-shadow: 0 0 2px red; width: 12.5px; position: sticky;"
	ctx := scanner.NewContext(text)
	got := map[scanner.Category]values.Value{}
	for _, tok := range scanner.Scan(text) {
		v, ok := values.Parse(tok, text, ctx)
		require.True(t, ok)
		got[tok.Category] = v
	}

	switch v := got[scanner.Shadow].(type) {
	case values.Shadow:
		assert.True(t, v.Model.Box)
		require.Len(t, v.Model.Shadows, 1)
		assert.Equal(t, "red", v.Model.Shadows[0].Color)
	default:
		t.Fatalf("shadow token parsed as %T", v)
	}

	num, ok := got[scanner.Number].(values.Number)
	require.True(t, ok)
	assert.Equal(t, 12.5, num.Model.Value)
	assert.Equal(t, "px", num.Model.Unit)
	assert.Equal(t, "width", num.Property)
	assert.True(t, num.Range().Max >= 12.5)

	kw, ok := got[scanner.Enum].(values.Keyword)
	require.True(t, ok)
	assert.Equal(t, "sticky", kw.Model.Value)
	assert.Contains(t, kw.Model.Alternatives(), "absolute")
}

func TestColorThroughVariable(t *testing.T) {
	text := "--c: #ff0000; color: var(--c);"
	ctx := scanner.NewContext(text)
	v, ok := values.ParseText(scanner.Color, "color", "var(--c)", ctx)
	require.True(t, ok)
	c := v.(values.Color)
	assert.Equal(t, "#ff0000", c.Resolved)
	c.Model.G, c.Model.R = 1, 0
	assert.Equal(t, "#00ff00", c.Recompose())
}

func TestEdits(t *testing.T) {
	ctx := scanner.Context{}

	v, ok := values.ParseText(scanner.Transform, "transform", "translateX(10px) rotate(45deg)", ctx)
	require.True(t, ok)
	tr := v.(values.Transform)
	tr.Model.Deactivate(transform.Rotate)
	tr.Model.Set(transform.ScaleX, transform.Value{Num: 2})
	assert.Equal(t, "translateX(10px) scaleX(2)", tr.Recompose())

	v, ok = values.ParseText(scanner.Shadow, "box-shadow", "2px 2px 4px rgba(0,0,0,0.5), inset 0 0 2px #000", ctx)
	require.True(t, ok)
	sh := v.(values.Shadow)
	require.True(t, sh.Model.Remove(1))
	assert.Equal(t, "2px 2px 4px rgba(0,0,0,0.5)", sh.Recompose())
	sh.Model.Add(shadow.Shadow{X: shadow.Length{Num: 1, Unit: "px"}, Y: shadow.Length{Num: 1, Unit: "px"}, Color: "#fff"})
	assert.Equal(t, "2px 2px 4px rgba(0,0,0,0.5), 1px 1px #fff", sh.Recompose())
}

func TestUnparseable(t *testing.T) {
	ctx := scanner.Context{}
	tests := []struct {
		c   scanner.Category
		raw string
	}{
		{scanner.Color, "currentcolor"},
		{scanner.Color, "var(--missing)"},
		{scanner.Gradient, "linear-gradient(red"},
		{scanner.Shadow, "1px"},
		{scanner.Transform, "rotate"},
		{scanner.Number, "auto"},
	}
	for _, tt := range tests {
		v, ok := values.ParseText(tt.c, "", tt.raw, ctx)
		assert.False(t, ok, tt.raw)
		assert.IsType(t, values.Raw{}, v)
		assert.Equal(t, tt.c, v.Category())
		assert.Equal(t, tt.raw, v.Recompose())
	}
}
