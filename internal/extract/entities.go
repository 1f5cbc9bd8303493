package extract

import (
	"regexp"
	"strings"
)

var (
	reIdentification = regexp.MustCompile(`(?s)(?P<tipo>RUC|NIT)\s*:?\s*(?P<id>\d+-?\d*)`)
	reCompanyPlace   = regexp.MustCompile(`(?s)(?P<ciudad>.*?)[\-\s]*(?P<pais>ECUADOR|COLOMBIA)`)
	reDate           = regexp.MustCompile(`\b\d{1,2}-\d{1,2}-\d{4}\b`)
)

type Identification struct {
	Type   *string
	Number *string
}

// Identification parses "RUC: 1791834461001" or "NIT 123-4". A type missing
// from the catalog is reported as OTROS.
func (e *Extractor) Identification(text *string) Identification {
	if text == nil {
		return Identification{}
	}
	m := reIdentification.FindStringSubmatch(*text)
	if m == nil {
		return Identification{}
	}
	tipo, id := m[1], m[2]
	if !e.cat.IsIDType(tipo) {
		tipo = "OTROS"
	}
	return Identification{Type: &tipo, Number: &id}
}

// Company is the parsed content of a sender, receiver, consignee or notify box.
type Company struct {
	Name    *string
	Address *string
	City    *string
	Country *string
	ID      Identification
}

// CompanyBlock parses a box laid out as
//
//	name
//	address
//	city - country  ID
//
// A 4-line box is read as an address wrapped over two lines. Boxes with any
// other line count are not parsed and ok is false.
func (e *Extractor) CompanyBlock(text *string) (c Company, ok bool) {
	if text == nil {
		return Company{}, false
	}
	lines := strings.Split(*text, "\n")
	switch len(lines) {
	case 3:
	case 4:
		lines = []string{lines[0], lines[1] + " " + lines[2], lines[3]}
	default:
		return Company{}, false
	}

	c.Name = &lines[0]
	c.Address = &lines[1]
	place := lines[2]
	if m := reCompanyPlace.FindStringSubmatch(place); m != nil {
		c.City = nonEmpty(strings.TrimSpace(m[1]))
		c.Country = &m[2]
	}
	c.ID = e.Identification(&place)
	return c, true
}

// Location is the parsed content of a reception, shipment, delivery or
// emission box.
type Location struct {
	City    *string
	Country *string
	Date    *string
}

// LocationBlock finds "<city> - <country>" with a catalog country, and
// independently the first d-m-yyyy date.
func (e *Extractor) LocationBlock(text *string) Location {
	var l Location
	if text == nil {
		return l
	}
	if m := e.reLocation.FindStringSubmatch(*text); m != nil {
		l.City = nonEmpty(strings.Trim(m[1], " \t-"))
		l.Country = &m[2]
	}
	if d := reDate.FindString(*text); d != "" {
		l.Date = &d
	}
	return l
}
