package gapadoc

import (
	"fmt"

	"github.com/AwesomeTMC/gapac/gapaerr"
	"github.com/dlclark/regexp2"
)

// colorPattern accepts "#rrggbb" or "#rrggbbaa", case-insensitive. Empty
// string is handled separately by callers as "column omitted."
var colorPattern = regexp2.MustCompile(`^#[0-9a-f]{6}([0-9a-f]{2})?$`, regexp2.IgnoreCase)

// Color is an RGB or RGBA color parsed from a "#rrggbb[aa]" string.
type Color struct {
	R, G, B, A uint8
	HasAlpha   bool
}

// ParseColor parses a permissively-cased "#rrggbb" or "#rrggbbaa" string.
func ParseColor(s string) (Color, error) {
	matched, err := colorPattern.MatchString(s)
	if err != nil || !matched {
		return Color{}, gapaerr.New(gapaerr.ValueOutOfRange, "color must be #rrggbb or #rrggbbaa").WithTag(s)
	}
	var r, g, b, a uint8
	hasAlpha := len(s) == 9
	if hasAlpha {
		fmt.Sscanf(s[1:], "%02x%02x%02x%02x", &r, &g, &b, &a)
	} else {
		fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return Color{R: r, G: g, B: b, A: a, HasAlpha: hasAlpha}, nil
}

// String renders c back to "#rrggbb" or, if it carries alpha, "#rrggbbaa".
func (c Color) String() string {
	if c.HasAlpha {
		return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
