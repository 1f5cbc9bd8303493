package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgarreta/ecuapassdocs/internal/catalog"
	"github.com/lgarreta/ecuapassdocs/internal/ocr"
)

func str(s string) *string { return &s }

func newExtractor() *Extractor { return New(catalog.Default()) }

func TestIdentification(t *testing.T) {
	e := newExtractor()
	tests := []struct {
		name       string
		text       *string
		wantType   *string
		wantNumber *string
	}{
		{"ruc with colon", str("RUC: 1791834461001"), str("RUC"), str("1791834461001")},
		{"nit normalized to OTROS", str("NIT 123-4"), str("OTROS"), str("123-4")},
		{"embedded in line", str("QUITO - ECUADOR RUC:179123"), str("RUC"), str("179123")},
		{"no id", str("QUITO - ECUADOR"), nil, nil},
		{"nil text", nil, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Identification(tt.text)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantNumber, got.Number)
		})
	}
}

func TestCompanyBlockThreeLines(t *testing.T) {
	c, ok := newExtractor().CompanyBlock(str("ACME SA\nCALLE 10\nQUITO - ECUADOR RUC:179123"))

	require.True(t, ok)
	assert.Equal(t, "ACME SA", *c.Name)
	assert.Equal(t, "CALLE 10", *c.Address)
	assert.Equal(t, "QUITO", *c.City)
	assert.Equal(t, "ECUADOR", *c.Country)
	assert.Equal(t, "RUC", *c.ID.Type)
	assert.Equal(t, "179123", *c.ID.Number)
}

func TestCompanyBlockFourLinesJoinsAddress(t *testing.T) {
	c, ok := newExtractor().CompanyBlock(str("ACME SA\nCALLE 10\nY AV. 5\nIPIALES-COLOMBIA NIT 900123-1"))

	require.True(t, ok)
	assert.Equal(t, "CALLE 10 Y AV. 5", *c.Address)
	assert.Equal(t, "IPIALES", *c.City)
	assert.Equal(t, "COLOMBIA", *c.Country)
	assert.Equal(t, "OTROS", *c.ID.Type)
	assert.Equal(t, "900123-1", *c.ID.Number)
}

func TestCompanyBlockOtherShapes(t *testing.T) {
	e := newExtractor()
	for _, text := range []*string{nil, str("ONE LINE"), str("A\nB"), str("A\nB\nC\nD\nE")} {
		_, ok := e.CompanyBlock(text)
		assert.False(t, ok)
	}

	c, ok := e.CompanyBlock(str("ACME\nCALLE\nLIMA PERU"))
	require.True(t, ok)
	assert.Nil(t, c.City)
	assert.Nil(t, c.Country)
	assert.Nil(t, c.ID.Type)
}

func TestLocationBlock(t *testing.T) {
	e := newExtractor()
	tests := []struct {
		name                string
		text                *string
		city, country, date *string
	}{
		{"dash separated", str("TULCAN-ECUADOR. 10-05-2023"), str("TULCAN"), str("ECUADOR"), str("10-05-2023")},
		{"spaced dash", str("IPIALES - COLOMBIA\n1-2-2024"), str("IPIALES"), str("COLOMBIA"), str("1-2-2024")},
		{"accented country", str("LIMA - Perú"), str("LIMA"), str("Perú"), nil},
		{"case insensitive", str("La Paz bolivia"), str("La Paz"), str("bolivia"), nil},
		{"date only", str("SIN DATOS 31-12-2023"), nil, nil, str("31-12-2023")},
		{"country prefix of word", str("QUITO ECUADORIAN"), nil, nil, nil},
		{"nil", nil, nil, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.LocationBlock(tt.text)
			assert.Equal(t, tt.city, got.City)
			assert.Equal(t, tt.country, got.Country)
			assert.Equal(t, tt.date, got.Date)
		})
	}
}

func TestCostTable(t *testing.T) {
	raw := `{"fields": {"17_Gastos": {"value_type": "object", "content": "x", "value": {
		"ValorFlete": {"value_type": "object", "value": {
			"MontoDestinatario": {"value_type": "float", "value": 1200.5},
			"MonedaDestinatario": {"value_type": "string", "value": "USD"}
		}},
		"Total": {"value_type": "object", "value": {
			"MontoRemitente": {"value_type": "string", "value": "50"},
			"MontoDestinatario": {"value_type": "currency", "value": {"amount": 1300, "symbol": "$", "code": "USD"}}
		}}
	}}}}`
	var doc struct {
		Fields *ocr.FieldSet `json:"fields"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	c := CostTable(doc.Fields.Get("17_Gastos"))

	assert.Equal(t, "1200.5", *c.Freight.Receiver.Amount)
	assert.Equal(t, "USD", *c.Freight.Receiver.Currency)
	assert.Nil(t, c.Freight.Sender.Amount)
	assert.Nil(t, c.Other.Receiver.Amount)
	assert.Equal(t, "50", *c.Total.Sender.Amount)
	assert.Equal(t, "1300", *c.Total.Receiver.Amount)
	assert.Nil(t, c.Total.Receiver.Currency)

	assert.Equal(t, Costs{}, CostTable(nil))
}

func TestPackages(t *testing.T) {
	p := ParsePackages(PackageFields{
		Quantity:    str("TOTAL 120 CAJAS"),
		NetWeight:   str("1500.50 KG"),
		GrossWeight: str("KG 1600"),
		Volume:      nil,
		OtherUnit:   str("sin datos"),
		Description: str("CAJAS DE BANANO"),
	})

	assert.Equal(t, "120", *p.Total)
	assert.Equal(t, "CAJAS", *p.Packaging)
	assert.Equal(t, DefaultMarks, *p.Marks)
	assert.Equal(t, "1500.50", *p.NetWeight)
	assert.Equal(t, "1600", *p.GrossWeight)
	assert.Nil(t, p.Volume)
	assert.Nil(t, p.OtherUnit)
	assert.Equal(t, "CAJAS DE BANANO", *p.Description)

	assert.Equal(t, "S/N", *Marks(str("S/N")))
	assert.Equal(t, "45", *TotalPackages(str("45 bultos")))
	assert.Nil(t, Packaging(str("120 CAJAS.")))
	assert.Equal(t, "SACOS", *Packaging(str("80 SACOS\n")))
	assert.Nil(t, Packaging(str("80 SACOS \n")))
	assert.Nil(t, Packaging(str("80 SACOS ")))
}

func TestMerchandise(t *testing.T) {
	e := newExtractor()
	reception := Location{City: str("GUAYAQUIL"), Country: str("ECUADOR")}
	shipment := Location{City: str("IPIALES"), Country: str("COLOMBIA")}

	m := e.Merchandise(str("1500.00 FOB GUAYAQUIL"), reception, shipment, Location{})

	assert.Equal(t, "1500.00", *m.Price)
	assert.Equal(t, "FOB", *m.Incoterm)
	assert.Equal(t, "GUAYAQUIL", *m.City)
	assert.Equal(t, "ECUADOR", *m.Country)
}

func TestMerchandiseResolution(t *testing.T) {
	e := newExtractor()
	tests := []struct {
		name          string
		text          *string
		known         []Location
		city, country *string
	}{
		{
			name:    "partial city matches second location",
			text:    str("2000 CIF IPIALES."),
			known:   []Location{{City: str("QUITO"), Country: str("ECUADOR")}, {City: str("IPIALES NARIÑO"), Country: str("COLOMBIA")}},
			city:    str("IPIALES NARIÑO"),
			country: str("COLOMBIA"),
		},
		{
			name: "reception wins over shipment",
			text: str("2000 FOB IPIALES"),
			known: []Location{
				{City: str("IPIALES"), Country: str("COLOMBIA")},
				{City: str("IPIALES NARIÑO"), Country: str("ECUADOR")},
			},
			city:    str("IPIALES"),
			country: str("COLOMBIA"),
		},
		{
			name:  "unknown city keeps parsed city",
			text:  str("2000 EXW BOGOTA"),
			known: []Location{{City: str("QUITO"), Country: str("ECUADOR")}},
			city:  str("BOGOTA"),
		},
		{
			name: "no incoterm",
			text: str("2000 USD"),
		},
		{
			name: "nil text",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Merchandise(tt.text, tt.known...)
			assert.Equal(t, tt.city, got.City)
			assert.Equal(t, tt.country, got.Country)
		})
	}
}

func TestParseConditions(t *testing.T) {
	c := ParseConditions(str("CONTADO. TERRESTRE POR CARRETERA"))
	assert.Equal(t, "CONTADO", *c.Payment)
	assert.Equal(t, "TERRESTRE POR CARRETERA", *c.Transport)

	c = ParseConditions(str("CREDITO 30 DIAS.\nCAMION. CARGA"))
	assert.Equal(t, "CREDITO 30 DIAS", *c.Payment)
	assert.Equal(t, "CAMION. CARGA", *c.Transport)

	assert.Equal(t, Conditions{}, ParseConditions(str("SIN PUNTO")))
	assert.Equal(t, Conditions{}, ParseConditions(nil))
}
