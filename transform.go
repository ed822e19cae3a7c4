package glide

import (
	"math"
	"strconv"
	"strings"
)

// Lerp linearly interpolates from a toward b by factor t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TranslateMatrix returns the CSS matrix3d string translating by (x, y).
func TranslateMatrix(x, y float64) string {
	var b strings.Builder
	b.Grow(64)
	b.WriteString("matrix3d(1,0,0,0,0,1,0,0,0,0,1,0,")
	b.WriteString(strconv.FormatFloat(x, 'f', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(y, 'f', -1, 64))
	b.WriteString(",0,1)")
	return b.String()
}

// SetTransform writes a 2D translation onto el.
func SetTransform(el Element, offset Vec2) {
	el.SetStyle("transform", TranslateMatrix(offset.X, offset.Y))
}

// ParseTranslate extracts the translation from a CSS transform value in
// matrix(a, b, c, d, tx, ty) or matrix3d(... tx, ty, tz, 1) form. Any other
// value, including "none", yields the zero offset.
func ParseTranslate(transform string) Vec2 {
	transform = strings.TrimSpace(transform)
	if args, ok := matrixArgs(transform, "matrix3d("); ok {
		if len(args) != 16 {
			return Vec2{}
		}
		return Vec2{X: parseFloatOrZero(args[12]), Y: parseFloatOrZero(args[13])}
	}
	if args, ok := matrixArgs(transform, "matrix("); ok {
		if len(args) != 6 {
			return Vec2{}
		}
		return Vec2{X: parseFloatOrZero(args[4]), Y: parseFloatOrZero(args[5])}
	}
	return Vec2{}
}

func matrixArgs(s, prefix string) ([]string, bool) {
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, ")") {
		return nil, false
	}
	body := s[len(prefix) : len(s)-1]
	parts := strings.Split(body, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, true
}

func parseFloatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// readTransform returns the element's current translation when the element
// can report it.
func readTransform(el Element) (Vec2, bool) {
	tr, ok := el.(TransformReader)
	if !ok {
		return Vec2{}, false
	}
	return ParseTranslate(tr.ComputedTransform()), true
}
