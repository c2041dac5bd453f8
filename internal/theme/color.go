package theme

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

var (
	hexRe     = regexp.MustCompile(`^#?([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)
	rgbRe     = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*,?\s*(\d{1,3})\s*,?\s*(\d{1,3})\s*(?:[,/]\s*[\d.]+%?\s*)?\)$`)
	hslRe     = regexp.MustCompile(`^hsla?\(\s*(\d+(?:\.\d+)?)(?:deg)?\s*,?\s*(\d+(?:\.\d+)?)%\s*,?\s*(\d+(?:\.\d+)?)%\s*(?:[,/]\s*[\d.]+%?\s*)?\)$`)
	bareHSLRe = regexp.MustCompile(`^\d+(?:\.\d+)?\s+\d+(?:\.\d+)?%\s+\d+(?:\.\d+)?%$`)
)

// HexToHSL converts #rgb or #rrggbb to "H S% L%".
func HexToHSL(hex string) (string, error) {
	m := hexRe.FindStringSubmatch(strings.TrimSpace(hex))
	if m == nil {
		return "", fmt.Errorf("invalid hex color %q", hex)
	}
	h := m[1]
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	v, _ := strconv.ParseUint(h, 16, 32)
	return rgbToHSL(int(v>>16&0xff), int(v>>8&0xff), int(v&0xff)), nil
}

// ColorToHSL normalizes hex, rgb(), hsl() or bare "h s% l%" input to "H S% L%".
// Anything else is logged and returned unchanged.
func ColorToHSL(color string) string {
	c := strings.TrimSpace(color)
	if hsl, err := HexToHSL(c); err == nil {
		return hsl
	}
	if m := rgbRe.FindStringSubmatch(c); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r <= 255 && g <= 255 && b <= 255 {
			return rgbToHSL(r, g, b)
		}
	}
	if m := hslRe.FindStringSubmatch(c); m != nil {
		return m[1] + " " + m[2] + "% " + m[3] + "%"
	}
	if bareHSLRe.MatchString(c) {
		return c
	}
	log.Warn().Str("color", color).Msg("unable to parse color format")
	return color
}

func rgbToHSL(ri, gi, bi int) string {
	r, g, b := float64(ri)/255, float64(gi)/255, float64(bi)/255
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2

	var h, s float64
	if max != min {
		d := max - min
		if l > 0.5 {
			s = d / (2 - max - min)
		} else {
			s = d / (max + min)
		}
		switch max {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h /= 6
	}
	return fmt.Sprintf("%d %d%% %d%%", int(math.Round(h*360)), int(math.Round(s*100)), int(math.Round(l*100)))
}
