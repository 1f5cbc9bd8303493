// Package catalog holds the static reference tables used while filling a
// cartaporte record: identifier types, countries, INCOTERM codes, customs
// districts and carrier companies.
//
// A Catalog is immutable once loaded and safe for concurrent use. Lookups are
// exact and case-sensitive; a miss is reported through the returned bool.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultYAML []byte

type Incoterm struct {
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
}

type District struct {
	CustomsCode string `yaml:"customsCode"`
	Address     string `yaml:"address"`
	Procedure   string `yaml:"procedure"`
}

type Company struct {
	Name     string `yaml:"name"`
	IDType   string `yaml:"idType"`
	IDNumber string `yaml:"idNumber"`
}

type file struct {
	IDTypes   []string            `yaml:"idTypes"`
	Countries []string            `yaml:"countries"`
	Incoterms []Incoterm          `yaml:"incoterms"`
	Districts map[string]District `yaml:"districts"`
	Companies map[string]Company  `yaml:"companies"`
}

type Catalog struct {
	idTypes   map[string]struct{}
	countries []string
	incoterms []Incoterm
	byCode    map[string]Incoterm
	districts map[string]District
	companies map[string]Company
}

// Parse builds a catalog from its YAML form.
func Parse(b []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Countries) == 0 {
		return nil, fmt.Errorf("parse catalog: no countries")
	}
	if len(f.Incoterms) == 0 {
		return nil, fmt.Errorf("parse catalog: no incoterms")
	}
	c := &Catalog{
		idTypes:   make(map[string]struct{}, len(f.IDTypes)),
		countries: f.Countries,
		incoterms: f.Incoterms,
		byCode:    make(map[string]Incoterm, len(f.Incoterms)),
		districts: f.Districts,
		companies: f.Companies,
	}
	for _, t := range f.IDTypes {
		c.idTypes[t] = struct{}{}
	}
	for _, it := range f.Incoterms {
		if it.Code == "" {
			return nil, fmt.Errorf("parse catalog: incoterm without code")
		}
		c.byCode[it.Code] = it
	}
	return c, nil
}

// Load reads a catalog file.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(b)
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the built-in catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultYAML)
		if err != nil {
			panic(err)
		}
		defaultCat = c
	})
	return defaultCat
}

func (c *Catalog) IsIDType(t string) bool {
	_, ok := c.idTypes[t]
	return ok
}

// Countries returns the country names in catalog order.
func (c *Catalog) Countries() []string {
	return append([]string(nil), c.countries...)
}

// IncotermCodes returns the codes in catalog order.
func (c *Catalog) IncotermCodes() []string {
	codes := make([]string, len(c.incoterms))
	for i, it := range c.incoterms {
		codes[i] = it.Code
	}
	return codes
}

func (c *Catalog) Incoterm(code string) (Incoterm, bool) {
	it, ok := c.byCode[code]
	return it, ok
}

func (c *Catalog) District(name string) (District, bool) {
	d, ok := c.districts[name]
	return d, ok
}

func (c *Catalog) Company(name string) (Company, bool) {
	co, ok := c.companies[name]
	return co, ok
}
