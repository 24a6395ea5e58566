package number_test

import (
	"testing"

	"bennypowers.dev/svls/internal/number"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want number.Number
	}{
		{"16px", number.Number{Value: 16, Unit: "px"}},
		{"-1.25rem", number.Number{Value: -1.25, Unit: "rem", Decimals: 2}},
		{".5", number.Number{Value: 0.5, Decimals: 1}},
		{" 200MS ", number.Number{Value: 200, Unit: "MS"}},
		{"50%", number.Number{Value: 50, Unit: "%"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := number.Parse(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, *got)
		})
	}

	for _, bad := range []string{"", "px", "1px solid", "calc(1px)", "1.2.3"} {
		_, ok := number.Parse(bad)
		assert.False(t, ok, bad)
	}
}

func TestRecompose(t *testing.T) {
	n, ok := number.Parse("1.50em")
	require.True(t, ok)
	assert.Equal(t, "1.50em", n.Recompose())

	n.Value = 2.456
	assert.Equal(t, "2.46em", n.Recompose())

	w, ok := number.Parse("400")
	require.True(t, ok)
	w.Value = 649.6
	assert.Equal(t, "650", w.Recompose())
}

func TestFormat(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{10, 2, "10"},
		{10.5, 2, "10.5"},
		{10.256, 2, "10.26"},
		{45, 1, "45"},
		{800, 0, "800"},
		{120, 0, "120"},
		{-0.001, 2, "0"},
		{0.1, 1, "0.1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, number.Format(tt.v, tt.decimals))
	}
}

func TestIsProperty(t *testing.T) {
	assert.True(t, number.IsProperty("Margin-Top"))
	assert.True(t, number.IsProperty("opacity"))
	assert.False(t, number.IsProperty("color"))
}

func TestRangeFor(t *testing.T) {
	tests := []struct {
		name     string
		property string
		unit     string
		value    float64
		want     number.Range
	}{
		{"opacity", "opacity", "", 0.5, number.Range{Min: 0, Max: 1, Step: 0.01}},
		{"width px", "width", "px", 320, number.Range{Min: 0, Max: 1000, Step: 1}},
		{"top px", "top", "px", -10, number.Range{Min: -400, Max: 400, Step: 1}},
		{"margin px", "margin", "px", 8, number.Range{Min: -200, Max: 200, Step: 1}},
		{"radius", "border-radius", "", 4, number.Range{Min: 0, Max: 100, Step: 1}},
		{"border width", "border-width", "", 2, number.Range{Min: 0, Max: 20, Step: 1}},
		{"duration ms", "transition-duration", "ms", 150, number.Range{Min: 0, Max: 2000, Step: 10}},
		{"grows to include value", "font-size", "", 120, number.Range{Min: 8, Max: 120, Step: 1}},
		{"unknown unit", "gap", "ch", 3, number.Range{Min: 0, Max: 100, Step: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, number.RangeFor(tt.property, tt.unit, tt.value))
		})
	}

	r := number.Range{Min: 0, Max: 1, Step: 0.01}
	assert.Equal(t, 1.0, r.Clamp(3))
	assert.Equal(t, 0.0, r.Clamp(-1))
}
