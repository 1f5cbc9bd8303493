package extract

import (
	"regexp"
	"strings"
)

// DefaultMarks is reported when the marks and numbers box is empty.
const DefaultMarks = "SIN MARCAS"

var (
	reNumber     = regexp.MustCompile(`(\d+[.]?\d*)`)
	reTotal      = regexp.MustCompile(`(?i)(?:TOTAL\s*)?(\d+)`)
	rePackaging  = regexp.MustCompile(`([\p{L}\p{N}_]+)\n?$`)
	reConditions = regexp.MustCompile(`(?s)^(.*?)\.(.*)$`)
)

// FirstNumber returns the first integer or decimal token of text.
func FirstNumber(text *string) *string {
	return firstGroup(reNumber, text)
}

// TotalPackages returns the digits following an optional TOTAL marker.
func TotalPackages(text *string) *string {
	return firstGroup(reTotal, text)
}

// Packaging returns the trailing word of text, e.g. "CAJAS" in "120 CAJAS".
// Only a single final newline may follow the word.
func Packaging(text *string) *string {
	return firstGroup(rePackaging, text)
}

func Marks(text *string) *string {
	if text == nil || strings.TrimSpace(*text) == "" {
		s := DefaultMarks
		return &s
	}
	return text
}

// PackageFields are the raw texts of the package boxes.
type PackageFields struct {
	Quantity    *string
	Marks       *string
	Description *string
	NetWeight   *string
	GrossWeight *string
	Volume      *string
	OtherUnit   *string
}

type Packages struct {
	Total       *string
	Packaging   *string
	Marks       *string
	Description *string
	NetWeight   *string
	GrossWeight *string
	Volume      *string
	OtherUnit   *string
}

func ParsePackages(in PackageFields) Packages {
	return Packages{
		Total:       TotalPackages(in.Quantity),
		Packaging:   Packaging(in.Quantity),
		Marks:       Marks(in.Marks),
		Description: in.Description,
		NetWeight:   FirstNumber(in.NetWeight),
		GrossWeight: FirstNumber(in.GrossWeight),
		Volume:      FirstNumber(in.Volume),
		OtherUnit:   FirstNumber(in.OtherUnit),
	}
}

type Merchandise struct {
	Price    *string
	Incoterm *string
	City     *string
	Country  *string
}

// Merchandise parses "<price> <INCOTERM> <city>". The country is taken from
// the first known location whose city contains the parsed city, in the order
// given; that location's city then replaces the parsed one.
func (e *Extractor) Merchandise(text *string, known ...Location) Merchandise {
	m := Merchandise{
		Price:    FirstNumber(text),
		Incoterm: firstGroup(e.reIncoterm, text),
	}
	city := firstGroup(e.reCityAfter, text)
	if city == nil {
		return m
	}
	m.City = nonEmpty(trimNonWord(*city))
	if m.City == nil {
		return m
	}
	for _, l := range known {
		if l.City != nil && strings.Contains(*l.City, *m.City) {
			m.City, m.Country = l.City, l.Country
			break
		}
	}
	return m
}

type Conditions struct {
	Payment   *string
	Transport *string
}

// ParseConditions splits "payment. transport" at the first period.
func ParseConditions(text *string) Conditions {
	if text == nil {
		return Conditions{}
	}
	m := reConditions.FindStringSubmatch(*text)
	if m == nil {
		return Conditions{}
	}
	pay := strings.TrimSpace(m[1])
	transport := strings.TrimSpace(m[2])
	return Conditions{Payment: &pay, Transport: &transport}
}
