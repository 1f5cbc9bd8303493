// Package geometry decides whether a raw OCR line belongs to a recognized field.
package geometry

import (
	"math"
	"strings"

	"github.com/lgarreta/ecuapassdocs/internal/ocr"
)

const (
	// AbsTolerance is the horizontal slack allowed between a line's left edge
	// and its field's left edge, in page units.
	AbsTolerance = 0.05
	RelTolerance = 1e-9
)

// IsClose reports whether a and b are equal within the larger of a relative
// and an absolute tolerance.
func IsClose(a, b, relTol, absTol float64) bool {
	return math.Abs(a-b) <= math.Max(relTol*math.Max(math.Abs(a), math.Abs(b)), absTol)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// IsContained reports whether line is one of the text lines of field f: its
// text occurs in the field content, its left edge lines up with the field's,
// and its top sits on the field's top or strictly inside the field's span.
// Coordinates are compared rounded to two decimals.
func IsContained(line ocr.Line, f *ocr.Field) bool {
	content := f.ContentText()
	if content == nil || !strings.Contains(*content, line.Content) {
		return false
	}
	lineTop, ok := line.Polygon.TopLeft()
	if !ok {
		return false
	}
	region, ok := f.Region()
	if !ok {
		return false
	}
	fieldTop, ok := region.TopLeft()
	if !ok {
		return false
	}
	fieldBottom, _ := region.BottomLeft()

	xl, yl := round2(lineTop.X), round2(lineTop.Y)
	xf, yf1, yf2 := round2(fieldTop.X), round2(fieldTop.Y), round2(fieldBottom.Y)

	if !IsClose(xl, xf, RelTolerance, AbsTolerance) {
		return false
	}
	return IsClose(yl, yf1, RelTolerance, 0) || (yf1 < yl && yl < yf2)
}
