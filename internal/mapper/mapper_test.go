package mapper

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgarreta/ecuapassdocs/internal/catalog"
	"github.com/lgarreta/ecuapassdocs/internal/ocr"
	"github.com/lgarreta/ecuapassdocs/internal/reconstruct"
)

const fixture = "testdata/CPI-CO003629-azure-CACHE.json"

func loadFields(t *testing.T) *ocr.FieldSet {
	t.Helper()
	res, err := ocr.DecodeFile(fixture)
	require.NoError(t, err)
	return reconstruct.Reconstruct(res.Lines, res.Fields)
}

func newMapper() *Mapper {
	return New(catalog.Default(), DefaultConfig(), nil)
}

func TestKeys(t *testing.T) {
	require.Len(t, Keys, 79)
	assert.Len(t, keyIndex, 79)
	for i, k := range Keys {
		assert.True(t, strings.HasPrefix(string(k), fmt.Sprintf("%02d_", i+1)), k)
	}
}

func TestMapFixture(t *testing.T) {
	rec := newMapper().Map(loadFields(t))

	want := map[Key]any{
		KeyDistrito:                "TULCAN",
		KeyNumeroCPIC:              "CO003629",
		KeyMRN:                     "CEC202340350941",
		KeyMSN:                     "0001",
		KeyTipoProcedimiento:       "IMPORTACION",
		KeyEmpresaTransporte:       "N.T.A.",
		KeyDepositoMercancia:       "TULCAN-01",
		KeyDirTransportista:        "ARGENTINA Y JUAN LEON MERA",
		KeyNroIdentificacion:       "1791834461001",
		KeyPaisRemitente:           "ECUADOR",
		KeyTipoIdRemitente:         "RUC",
		KeyNroIdRemitente:          "1790012345001",
		KeyNroCertSanitario:        nil,
		KeyNombreRemitente:         "ACME SA",
		KeyDireccionRemitente:      "CALLE 10",
		KeyPaisDestinatario:        "COLOMBIA",
		KeyTipoIdDestinatario:      "OTROS",
		KeyNroIdDestinatario:       "900123456-7",
		KeyNombreDestinatario:      "COMERCIAL ANDINA LTDA",
		KeyDireccionDestinatario:   "AV. PANAMERICANA KM 5 SECTOR NORTE",
		KeyNombreConsignatario:     "COMERCIAL ANDINA LTDA",
		KeyDireccionConsignatario:  "AV. PANAMERICANA KM 5",
		KeyNombreNotificado:        nil,
		KeyPaisNotificado:          nil,
		KeyPaisRecepcion:           "ECUADOR",
		KeyCiudadRecepcion:         "QUITO",
		KeyFechaRecepcion:          "10-05-2023",
		KeyCiudadEmbarque:          "TULCAN",
		KeyFechaEntrega:            "15-05-2023",
		KeyCondicionesTransporte:   "TERRESTRE",
		KeyCondicionesPago:         "CONTADO",
		KeyPesoNeto:                "1500.50",
		KeyPesoBruto:               "1600",
		KeyTotalBultos:             "120",
		KeyVolumen:                 nil,
		KeyOtraUnidad:              nil,
		KeyPrecioMercancias:        "25000.00",
		KeyIncoterm:                "FOB",
		KeyTipoMoneda:              "USD",
		KeyPaisMercancia:           "ECUADOR",
		KeyCiudadMercancia:         "QUITO",
		KeyGastosRemitente:         nil,
		KeyGastosDestinatario:      "1200",
		KeyMonedaDestinatario:      "USD",
		KeyOtrosGastosDestinatario: "50.5",
		KeyOtrosMonedaDestinatario: "USD",
		KeyTotalDestinatario:       "1250.5",
		KeyDocsRemitente:           "FACTURA 001-002-123",
		KeyFechaEmision:            "10-05-2023",
		KeyPaisEmision:             "ECUADOR",
		KeyCiudadEmision:           "QUITO",
		KeyInstrucciones:           "ENTREGAR EN BODEGA TULCAN-01",
		KeyObservaciones:           "NINGUNA",
		KeySecuencia:               "1",
		KeyCantidadBultos:          "120",
		KeyTipoEmbalaje:            "CAJAS",
		KeyMarcasNumeros:           "SIN MARCAS",
		KeyDetallePesoNeto:         "1500.50",
		KeyDetallePesoBruto:        "1600",
		KeyDetalleVolumen:          nil,
		KeySubpartida:              nil,
		KeyIMO3:                    nil,
		KeyDetalleNroCertSanitario: nil,
		KeyDescripcionCarga:        "CAJAS DE BANANO VERDE",
	}
	for k, v := range want {
		got := rec.Get(k)
		if v == nil {
			assert.Nil(t, got, k)
			continue
		}
		if assert.NotNil(t, got, k) {
			assert.Equal(t, v, *got, k)
		}
	}
}

func TestMapEmptyFieldsKeepsAllKeys(t *testing.T) {
	rec := newMapper().Map(ocr.NewFieldSet())

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	require.NoError(t, ValidateRecord(b))

	var m map[string]*string
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Len(t, m, 79)
	assert.Equal(t, "TULCAN", *m["01_Distrito"])
	assert.Equal(t, "SIN MARCAS", *m["69_MarcasNumeros"])
	assert.Nil(t, m["02_NumeroCPIC"])
	assert.Nil(t, m["77_IMO2"])
}

func TestMapUnknownDistrictAndCarrier(t *testing.T) {
	cfg := DefaultConfig()
	cfg.District = "QUITO"
	cfg.Carrier = "OTRA"
	rec := New(nil, cfg, nil).Map(ocr.NewFieldSet())

	assert.Nil(t, rec.Get(KeyDistrito))
	assert.Nil(t, rec.Get(KeyTipoProcedimiento))
	assert.Nil(t, rec.Get(KeyDirTransportista))
	assert.Nil(t, rec.Get(KeyNroIdentificacion))
	assert.Equal(t, "OTRA", *rec.Get(KeyEmpresaTransporte))
}

func TestMapEmissionBox(t *testing.T) {
	fields := loadFields(t)
	text := "CALI - COLOMBIA 01-06-2023"
	fields.Add(&ocr.Field{Name: FieldEmision, Type: ocr.TypeString, Content: &text, Value: ocr.StringValue(text)})

	rec := newMapper().Map(fields)

	assert.Equal(t, "CALI", *rec.Get(KeyCiudadEmision))
	assert.Equal(t, "COLOMBIA", *rec.Get(KeyPaisEmision))
	assert.Equal(t, "01-06-2023", *rec.Get(KeyFechaEmision))
}

func TestDeposit(t *testing.T) {
	s := func(v string) *string { return &v }
	assert.Nil(t, deposit(nil))
	assert.Nil(t, deposit(s("BODEGA")))
	assert.Equal(t, "B12", *deposit(s("ENTREGAR EN\nB12 ")))
}

func TestMapConcurrentDocumentsAreIsolated(t *testing.T) {
	m := newMapper()
	base := loadFields(t)

	const n = 16
	recs := make([]*Record, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fields := base.Clone()
			number := fmt.Sprintf("CO%06d", i)
			fields.Add(&ocr.Field{Name: FieldNumero, Type: ocr.TypeString, Content: &number, Value: ocr.StringValue(number)})
			recs[i] = m.Map(fields)
		}(i)
	}
	wg.Wait()

	for i, rec := range recs {
		assert.Equal(t, fmt.Sprintf("CO%06d", i), *rec.Get(KeyNumeroCPIC))
		assert.Equal(t, "QUITO", *rec.Get(KeyCiudadMercancia))
	}
}

func TestRecordJSONRoundTripAndOrder(t *testing.T) {
	rec := NewRecord()
	rec.SetString(KeyDistrito, "TULCAN")
	rec.SetString(KeyDescripcionCarga, "CAJAS")

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), `{"01_Distrito":"TULCAN","02_NumeroCPIC":null`))
	assert.True(t, strings.HasSuffix(string(b), `"79_DescripcionCarga":"CAJAS"}`))

	var back Record
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, 2, back.Filled())
	assert.Equal(t, 79, back.Len())

	assert.Error(t, json.Unmarshal([]byte(`{"99_Nope":"x"}`), &back))
}

func TestValidateRecordRejectsMissingKeys(t *testing.T) {
	assert.Error(t, ValidateRecord([]byte(`{"01_Distrito":"TULCAN"}`)))
	assert.Error(t, ValidateRecord([]byte(`not json`)))
}

func TestRecordSetCopiesValue(t *testing.T) {
	rec := NewRecord()
	v := "A"
	rec.Set(KeyMRN, &v)
	v = "B"
	assert.Equal(t, "A", *rec.Get(KeyMRN))

	rec.Copy(KeyMSN, KeyMRN)
	assert.Equal(t, "A", *rec.Get(KeyMSN))

	rec.Set("nope", &v)
	assert.Nil(t, rec.Get("nope"))
}

func TestMapStringValuesKeepRepeatedLines(t *testing.T) {
	obs := "CAJAS\nDE BANANO\nCAJAS"
	fields := ocr.NewFieldSet()
	fields.Add(&ocr.Field{Name: FieldObservaciones, Type: ocr.TypeString, Content: &obs, Value: ocr.StringValue(obs)})

	rec := newMapper().Map(fields)
	assert.Equal(t, obs, *rec.Get(KeyObservaciones))

	cfg := DefaultConfig()
	cfg.DedupLines = true
	rec = New(nil, cfg, nil).Map(fields)
	assert.Equal(t, "DE BANANO\nCAJAS", *rec.Get(KeyObservaciones))
}
