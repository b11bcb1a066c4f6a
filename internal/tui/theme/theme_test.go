package theme

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestInterpolateColor(t *testing.T) {
	tests := []struct {
		a, b string
		pos  float64
		want string
	}{
		{"#000000", "#ffffff", 0, "#000000"},
		{"#000000", "#ffffff", 1, "#ffffff"},
		{"#000000", "#ffffff", 0.5, "#7f7f7f"},
		{"#ff0000", "#0000ff", 2, "#0000ff"},
		{"#ff0000", "#0000ff", -1, "#ff0000"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, InterpolateColor(tt.a, tt.b, tt.pos))
	}
}

func TestParseHexColor(t *testing.T) {
	r, g, b := ParseHexColor("#cba6f7")
	require.Equal(t, []uint8{0xcb, 0xa6, 0xf7}, []uint8{r, g, b})

	r, g, b = ParseHexColor("nope")
	require.Equal(t, []uint8{0, 0, 0}, []uint8{r, g, b})

	require.Equal(t, "#0a0b0c", FormatHexColor(10, 11, 12))
}

func TestApplyGradient(t *testing.T) {
	require.Empty(t, ApplyGradient("", "#000000", "#ffffff", false))
	out := ApplyGradient("ta ilor", "#cba6f7", "#f5c2e7", true)
	require.Equal(t, "ta ilor", ansi.Strip(out))
}

func TestCurrentAndStyles(t *testing.T) {
	orig := Current()
	t.Cleanup(func() { SetCurrent(orig) })

	SetCurrent(nil)
	require.Same(t, orig, Current())

	custom := NewCatppuccinMocha()
	custom.Name = "custom"
	SetCurrent(custom)
	require.Equal(t, "custom", Current().Name)

	s := Current().S()
	require.NotNil(t, s)
	require.Same(t, s, Current().S(), "styles are built once")
	require.Equal(t, "x", ansi.Strip(s.Price.Render("x")))
}
