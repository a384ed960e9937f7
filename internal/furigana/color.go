package furigana

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a packed AABBGGRR value in libass channel order. Alpha 0x00 is
// fully opaque.
type Color uint32

// RGB builds an opaque color from red, green and blue channel bytes.
func RGB(r, g, b uint8) Color {
	return Color(uint32(b)<<16 | uint32(g)<<8 | uint32(r))
}

// StyleLiteral renders the color for a [V4+ Styles] record: &HAABBGGRR.
func (c Color) StyleLiteral() string {
	return fmt.Sprintf("&H%08X", uint32(c))
}

// InlineTag renders the color for an inline \c override: &HBBGGRR&.
func (c Color) InlineTag() string {
	return fmt.Sprintf("&H%06X&", uint32(c)&0xFFFFFF)
}

const (
	White Color = 0x00FFFFFF
	Black Color = 0x00000000
)

// Named colors accepted in <font color="..."> markup. Values mirror the
// palette used by professional anime releases.
var colorTable = map[string]Color{
	"red":       RGB(0xFF, 0x00, 0x00),
	"blue":      RGB(0x00, 0x00, 0xFF),
	"green":     RGB(0x00, 0xFF, 0x00),
	"yellow":    RGB(0xFF, 0xFF, 0x00),
	"cyan":      RGB(0x00, 0xFF, 0xFF),
	"magenta":   RGB(0xFF, 0x00, 0xFF),
	"white":     RGB(0xFF, 0xFF, 0xFF),
	"black":     RGB(0x00, 0x00, 0x00),
	"lightblue": RGB(0xE6, 0x8A, 0x00),
	"darkblue":  RGB(0xE6, 0x00, 0x00),
	"purple":    RGB(0xAC, 0x00, 0xE6),
	"orange":    RGB(0x00, 0x5C, 0xE6),
	"darkgreen": RGB(0x00, 0x80, 0x2B),
}

// ParseColorValue resolves a user-supplied color: an ASS &HAABBGGRR or
// &HBBGGRR literal, a #rrggbb hex value, or a table name.
func ParseColorValue(s string) (Color, error) {
	s = strings.TrimSpace(s)

	upper := strings.ToUpper(s)
	if strings.HasPrefix(upper, "&H") {
		lit := strings.TrimSuffix(strings.TrimPrefix(upper, "&H"), "&")
		v, err := strconv.ParseUint(lit, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid ASS color literal %q: %w", s, err)
		}
		return Color(v), nil
	}

	if c, ok := LookupColor(s); ok {
		return c, nil
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

// LookupColor resolves a color name from markup. Names are matched case
// insensitively; #rrggbb hex literals are also accepted.
func LookupColor(name string) (Color, bool) {
	name = strings.TrimSpace(name)

	if strings.HasPrefix(name, "#") && len(name) == 7 {
		v, err := strconv.ParseUint(name[1:], 16, 32)
		if err != nil {
			return 0, false
		}
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), true
	}

	c, ok := colorTable[strings.ToLower(name)]
	return c, ok
}
