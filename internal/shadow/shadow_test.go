package shadow_test

import (
	"testing"

	"bennypowers.dev/svls/internal/shadow"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func length(num float64, unit string) *shadow.Length {
	return &shadow.Length{Num: num, Unit: unit}
}

func TestParseBoxShadow(t *testing.T) {
	l, ok := shadow.Parse("2px 2px 4px rgba(0,0,0,0.5), inset 0 0 2px #000", true)
	require.True(t, ok)

	want := []shadow.Shadow{
		{X: shadow.Length{Num: 2, Unit: "px"}, Y: shadow.Length{Num: 2, Unit: "px"}, Blur: length(4, "px"), Color: "rgba(0,0,0,0.5)"},
		{Inset: true, X: shadow.Length{}, Y: shadow.Length{}, Blur: length(2, "px"), Color: "#000"},
	}
	if diff := cmp.Diff(want, l.Shadows); diff != "" {
		t.Errorf("shadows mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, l.Box)
}

func TestRemoveShadow(t *testing.T) {
	l, ok := shadow.Parse("2px 2px 4px rgba(0,0,0,0.5), inset 0 0 2px #000", true)
	require.True(t, ok)

	require.True(t, l.Remove(1))
	assert.False(t, l.Remove(3))
	assert.Equal(t, "2px 2px 4px rgba(0,0,0,0.5)", l.Recompose())

	require.True(t, l.Remove(0))
	assert.Equal(t, "none", l.Recompose())
}

func TestParseVariants(t *testing.T) {
	tests := []struct {
		name  string
		value string
		box   bool
		want  shadow.Shadow
	}{
		{
			name:  "color first and spread",
			value: "#fff 1px 2px 3px 4px",
			box:   true,
			want: shadow.Shadow{
				X: shadow.Length{Num: 1, Unit: "px"}, Y: shadow.Length{Num: 2, Unit: "px"},
				Blur: length(3, "px"), Spread: length(4, "px"), Color: "#fff",
			},
		},
		{
			name:  "var color with literal fallback",
			value: "0 1px var(--shadow, #000) inset",
			box:   true,
			want: shadow.Shadow{
				Inset: true, X: shadow.Length{}, Y: shadow.Length{Num: 1, Unit: "px"}, Color: "var(--shadow, #000)",
			},
		},
		{
			name:  "named color",
			value: "1px 1px black",
			box:   false,
			want:  shadow.Shadow{X: shadow.Length{Num: 1, Unit: "px"}, Y: shadow.Length{Num: 1, Unit: "px"}, Color: "black"},
		},
		{
			name:  "no color",
			value: "-1.5em 0 .5em",
			box:   false,
			want:  shadow.Shadow{X: shadow.Length{Num: -1.5, Unit: "em"}, Y: shadow.Length{}, Blur: length(0.5, "em")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, ok := shadow.Parse(tt.value, tt.box)
			require.True(t, ok)
			require.Len(t, l.Shadows, 1)
			if diff := cmp.Diff(tt.want, l.Shadows[0]); diff != "" {
				t.Errorf("shadow mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		value string
		box   bool
	}{
		{"2px #000", true},
		{"1px 2px 3px 4px #000", false},
		{"1px 2px 3px 4px 5px", true},
		{"calc(1px + 1px) 2px #000", true},
		{"1px 2px red blue", true},
		{"", true},
	}
	for _, tt := range tests {
		_, ok := shadow.Parse(tt.value, tt.box)
		assert.False(t, ok, tt.value)
	}
}

func TestRecompose(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, v := range []string{
			"2px 2px 4px rgba(0,0,0,0.5), inset 0 0 2px #000",
			"0 1px 2px 3px var(--c)",
			"none",
		} {
			l, ok := shadow.Parse(v, true)
			require.True(t, ok, v)
			assert.Equal(t, v, l.Recompose())
		}
	})

	t.Run("text shadows drop inset and spread", func(t *testing.T) {
		l := &shadow.List{Box: false}
		l.Add(shadow.Shadow{Inset: true, X: shadow.Length{Num: 1, Unit: "px"}, Y: shadow.Length{Num: 1, Unit: "px"}, Spread: length(3, "px"), Color: "#000"})
		assert.Equal(t, "1px 1px #000", l.Recompose())
	})

	t.Run("spread without blur gets a zero blur", func(t *testing.T) {
		l := &shadow.List{Box: true}
		l.Add(shadow.Shadow{X: shadow.Length{Num: 1, Unit: "px"}, Y: shadow.Length{Num: 2, Unit: "px"}, Spread: length(3, "px")})
		assert.Equal(t, "1px 2px 0 3px", l.Recompose())
	})

	t.Run("edit blur", func(t *testing.T) {
		l, ok := shadow.Parse("0 2px 4px #0003", true)
		require.True(t, ok)
		l.Shadows[0].Blur = length(8.25, "px")
		assert.Equal(t, "0 2px 8.25px #0003", l.Recompose())
	})
}
