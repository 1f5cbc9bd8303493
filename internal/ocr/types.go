package ocr

// Point is a page coordinate in the unit reported by the analysis service (inches for PDFs).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polygon is an ordered list of corners: top-left, top-right, bottom-right, bottom-left.
type Polygon []Point

// TopLeft returns the first corner.
func (p Polygon) TopLeft() (Point, bool) {
	if len(p) < 4 {
		return Point{}, false
	}
	return p[0], true
}

// BottomLeft returns the fourth corner.
func (p Polygon) BottomLeft() (Point, bool) {
	if len(p) < 4 {
		return Point{}, false
	}
	return p[3], true
}

// Line is one raw text line of a page with its geometry.
type Line struct {
	Content string  `json:"content"`
	Polygon Polygon `json:"polygon"`
}

type BoundingRegion struct {
	PageNumber int     `json:"page_number"`
	Polygon    Polygon `json:"polygon"`
}

// Result is the in-memory analysis result the engine works on: the first page's
// lines and the first document's named fields.
type Result struct {
	Lines  []Line
	Fields *FieldSet
}
