// Package mapper fills the Ecuapass cartaporte record from the reconstructed
// fields of an analyzed document.
package mapper

import (
	"log/slog"
	"strings"

	"github.com/lgarreta/ecuapassdocs/internal/catalog"
	"github.com/lgarreta/ecuapassdocs/internal/extract"
	"github.com/lgarreta/ecuapassdocs/internal/ocr"
)

// Names of the fields produced by the cartaporte analysis model.
const (
	FieldNumero         = "00b_Numero"
	FieldRemitente      = "02_Remitente"
	FieldDestinatario   = "03_Destinatario"
	FieldConsignatario  = "04_Consignatario"
	FieldNotificado     = "05_Notificado"
	FieldRecepcion      = "06_Recepcion"
	FieldEmbarque       = "07_Embarque"
	FieldEntrega        = "08_Entrega"
	FieldCondiciones    = "09_Condiciones"
	FieldCantidadBultos = "10_CantidadClase_Bultos"
	FieldMarcasNumeros  = "11_MarcasNumeros_Bultos"
	FieldDescripcion    = "12_Descripcion_Bultos"
	FieldPesoNeto       = "13a_Peso_Neto"
	FieldPesoBruto      = "13b_Peso_Bruto"
	FieldVolumen        = "14_Volumen"
	FieldOtrasUnidades  = "15_Otras_Unidades"
	FieldIncoterms      = "16_Incoterms"
	FieldGastos         = "17_Gastos"
	FieldDocumentos     = "18_Documentos"
	FieldEmision        = "19_Emision"
	FieldInstrucciones  = "21_Instrucciones"
	FieldObservaciones  = "22_Observaciones"
)

// Config holds the business constants stamped on every record.
type Config struct {
	District   string // catalog district, e.g. TULCAN
	Carrier    string // catalog company, e.g. N.T.A.
	MRN        string
	MSN        string
	Currency   string
	Sequence   string
	// DedupLines drops repeated leading lines from string values read as-is.
	DedupLines bool
}

func DefaultConfig() Config {
	return Config{
		District: "TULCAN",
		Carrier:  "N.T.A.",
		MRN:      "CEC202340350941",
		MSN:      "0001",
		Currency: "USD",
		Sequence: "1",
	}
}

// Mapper is stateless between calls; each Map builds its own Record.
type Mapper struct {
	cat    *catalog.Catalog
	ext    *extract.Extractor
	cfg    Config
	logger *slog.Logger
}

func New(cat *catalog.Catalog, cfg Config, logger *slog.Logger) *Mapper {
	if cat == nil {
		cat = catalog.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Sequence == "" {
		cfg.Sequence = "1"
	}
	return &Mapper{cat: cat, ext: extract.New(cat), cfg: cfg, logger: logger}
}

// WithLogger returns a mapper sharing m's catalog and config that logs to logger.
func (m *Mapper) WithLogger(logger *slog.Logger) *Mapper {
	c := *m
	if logger != nil {
		c.logger = logger
	}
	return &c
}

// mapping carries the per-call state of one Map run.
type mapping struct {
	*Mapper
	fields *ocr.FieldSet
	rec    *Record
}

// Map fills a record from fields, which should already have their line breaks
// restored. Attributes that cannot be extracted are left nil; Map never fails.
func (m *Mapper) Map(fields *ocr.FieldSet) *Record {
	r := &mapping{Mapper: m, fields: fields, rec: NewRecord()}

	r.header()
	r.company(FieldRemitente, KeyNombreRemitente, KeyDireccionRemitente, KeyPaisRemitente, KeyTipoIdRemitente, KeyNroIdRemitente)
	r.company(FieldDestinatario, KeyNombreDestinatario, KeyDireccionDestinatario, KeyPaisDestinatario, KeyTipoIdDestinatario, KeyNroIdDestinatario)
	r.company(FieldConsignatario, KeyNombreConsignatario, KeyDireccionConsignatario, KeyPaisConsignatario, KeyTipoIdConsignatario, KeyNroIdConsignatario)
	r.company(FieldNotificado, KeyNombreNotificado, KeyDireccionNotificado, KeyPaisNotificado, "", "")
	r.rec.Set(KeyNroCertSanitario, nil)

	r.location(r.content(FieldRecepcion), KeyPaisRecepcion, KeyCiudadRecepcion, KeyFechaRecepcion)
	r.location(r.content(FieldEmbarque), KeyPaisEmbarque, KeyCiudadEmbarque, KeyFechaEmbarque)
	r.location(r.content(FieldEntrega), KeyPaisEntrega, KeyCiudadEntrega, KeyFechaEntrega)

	r.conditions()
	pk := r.packages()
	// Locations must be filled before the merchandise city is resolved.
	r.merchandise()
	r.costs()

	r.set(KeyDocsRemitente, r.value(FieldDocumentos), FieldDocumentos)
	r.emission()
	r.set(KeyInstrucciones, r.value(FieldInstrucciones), FieldInstrucciones)
	r.set(KeyObservaciones, r.value(FieldObservaciones), FieldObservaciones)

	r.details(pk)
	return r.rec
}

func (r *mapping) header() {
	district, ok := r.cat.District(r.cfg.District)
	if !ok {
		r.logger.Debug("mapper.lookup_miss", "table", "districts", "key", r.cfg.District)
	}
	r.set(KeyDistrito, nonEmpty(district.CustomsCode), "catalog.district")
	r.set(KeyNumeroCPIC, r.value(FieldNumero), FieldNumero)
	r.rec.SetString(KeyMRN, r.cfg.MRN)
	r.rec.SetString(KeyMSN, r.cfg.MSN)
	r.set(KeyTipoProcedimiento, nonEmpty(district.Procedure), "catalog.district")
	r.rec.SetString(KeyEmpresaTransporte, r.cfg.Carrier)
	r.set(KeyDepositoMercancia, deposit(r.value(FieldInstrucciones)), FieldInstrucciones)
	r.set(KeyDirTransportista, nonEmpty(district.Address), "catalog.district")

	company, ok := r.cat.Company(r.cfg.Carrier)
	if !ok {
		r.logger.Debug("mapper.lookup_miss", "table", "companies", "key", r.cfg.Carrier)
	}
	r.set(KeyNroIdentificacion, nonEmpty(company.IDNumber), "catalog.company")
}

// deposit is the last word of the instructions, when there is more than one.
func deposit(text *string) *string {
	if text == nil {
		return nil
	}
	words := strings.Fields(strings.ReplaceAll(*text, "\n", " "))
	if len(words) < 2 {
		return nil
	}
	return &words[len(words)-1]
}

// company fills the keys of a company box; empty keys are skipped.
func (r *mapping) company(field string, name, address, country, idType, idNumber Key) {
	c, ok := r.ext.CompanyBlock(r.content(field))
	if !ok {
		r.logger.Debug("mapper.block_unparsed", "field", field)
	}
	r.set(name, c.Name, field)
	r.set(address, c.Address, field)
	r.set(country, c.Country, field)
	if idType != "" {
		r.set(idType, c.ID.Type, field)
	}
	if idNumber != "" {
		r.set(idNumber, c.ID.Number, field)
	}
}

func (r *mapping) location(text *string, country, city, date Key) {
	l := r.ext.LocationBlock(text)
	r.set(country, l.Country, string(country))
	r.set(city, l.City, string(city))
	r.set(date, l.Date, string(date))
}

// emission reads the emission box, or repeats the reception place and date
// when the document has none.
func (r *mapping) emission() {
	if text := r.value(FieldEmision); text != nil {
		r.location(text, KeyPaisEmision, KeyCiudadEmision, KeyFechaEmision)
		return
	}
	r.rec.Copy(KeyPaisEmision, KeyPaisRecepcion)
	r.rec.Copy(KeyCiudadEmision, KeyCiudadRecepcion)
	r.rec.Copy(KeyFechaEmision, KeyFechaRecepcion)
}

func (r *mapping) conditions() {
	c := extract.ParseConditions(r.value(FieldCondiciones))
	r.set(KeyCondicionesTransporte, c.Transport, FieldCondiciones)
	r.set(KeyCondicionesPago, c.Payment, FieldCondiciones)
}

func (r *mapping) packages() extract.Packages {
	p := extract.ParsePackages(extract.PackageFields{
		Quantity:    r.value(FieldCantidadBultos),
		Marks:       r.value(FieldMarcasNumeros),
		Description: r.value(FieldDescripcion),
		NetWeight:   r.value(FieldPesoNeto),
		GrossWeight: r.value(FieldPesoBruto),
		Volume:      r.value(FieldVolumen),
		OtherUnit:   r.value(FieldOtrasUnidades),
	})
	r.set(KeyPesoNeto, p.NetWeight, FieldPesoNeto)
	r.set(KeyPesoBruto, p.GrossWeight, FieldPesoBruto)
	r.set(KeyTotalBultos, p.Total, FieldCantidadBultos)
	r.set(KeyVolumen, p.Volume, FieldVolumen)
	r.set(KeyOtraUnidad, p.OtherUnit, FieldOtrasUnidades)
	return p
}

func (r *mapping) merchandise() {
	known := []extract.Location{
		{City: r.rec.Get(KeyCiudadRecepcion), Country: r.rec.Get(KeyPaisRecepcion)},
		{City: r.rec.Get(KeyCiudadEmbarque), Country: r.rec.Get(KeyPaisEmbarque)},
		{City: r.rec.Get(KeyCiudadEntrega), Country: r.rec.Get(KeyPaisEntrega)},
	}
	mc := r.ext.Merchandise(r.value(FieldIncoterms), known...)
	r.set(KeyPrecioMercancias, mc.Price, FieldIncoterms)
	r.set(KeyIncoterm, mc.Incoterm, FieldIncoterms)
	r.rec.SetString(KeyTipoMoneda, r.cfg.Currency)
	r.set(KeyPaisMercancia, mc.Country, FieldIncoterms)
	r.set(KeyCiudadMercancia, mc.City, FieldIncoterms)
}

func (r *mapping) costs() {
	c := extract.CostTable(r.fields.Get(FieldGastos))
	r.set(KeyGastosRemitente, c.Freight.Sender.Amount, FieldGastos)
	r.set(KeyMonedaRemitente, c.Freight.Sender.Currency, FieldGastos)
	r.set(KeyGastosDestinatario, c.Freight.Receiver.Amount, FieldGastos)
	r.set(KeyMonedaDestinatario, c.Freight.Receiver.Currency, FieldGastos)
	r.set(KeyOtrosGastosRemitente, c.Other.Sender.Amount, FieldGastos)
	r.set(KeyOtrosMonedaRemitente, c.Other.Sender.Currency, FieldGastos)
	r.set(KeyOtrosGastosDestinatario, c.Other.Receiver.Amount, FieldGastos)
	r.set(KeyOtrosMonedaDestinatario, c.Other.Receiver.Currency, FieldGastos)
	r.set(KeyTotalRemitente, c.Total.Sender.Amount, FieldGastos)
	r.set(KeyTotalDestinatario, c.Total.Receiver.Amount, FieldGastos)
}

// details fills the goods line. Quantities repeat the header values.
func (r *mapping) details(p extract.Packages) {
	r.rec.SetString(KeySecuencia, r.cfg.Sequence)
	r.rec.Copy(KeyCantidadBultos, KeyTotalBultos)
	r.set(KeyTipoEmbalaje, p.Packaging, FieldCantidadBultos)
	r.set(KeyMarcasNumeros, p.Marks, FieldMarcasNumeros)
	r.rec.Copy(KeyDetallePesoNeto, KeyPesoNeto)
	r.rec.Copy(KeyDetallePesoBruto, KeyPesoBruto)
	r.rec.Copy(KeyDetalleVolumen, KeyVolumen)
	r.rec.Copy(KeyDetalleOtraUnidad, KeyOtraUnidad)
	r.rec.Set(KeySubpartida, nil)
	r.rec.Set(KeyIMO1, nil)
	r.rec.Set(KeyIMO2, nil)
	r.rec.Set(KeyIMO3, nil)
	r.rec.Copy(KeyDetalleNroCertSanitario, KeyNroCertSanitario)
	r.set(KeyDescripcionCarga, p.Description, FieldDescripcion)
}

// set stores v, logging a miss when it is nil.
func (r *mapping) set(k Key, v *string, source string) {
	if v == nil {
		r.logger.Debug("mapper.pattern_miss", "key", string(k), "source", source)
	}
	r.rec.Set(k, v)
}

func (r *mapping) value(name string) *string {
	f := r.fields.Get(name)
	if f == nil {
		r.logger.Debug("mapper.field_missing", "field", name)
		return nil
	}
	v := f.ValueText()
	if v != nil && r.cfg.DedupLines && f.Type == ocr.TypeString {
		s := ocr.RemoveDuplicateLines(*v)
		v = &s
	}
	return v
}

func (r *mapping) content(name string) *string {
	f := r.fields.Get(name)
	if f == nil {
		r.logger.Debug("mapper.field_missing", "field", name)
		return nil
	}
	return f.ContentText()
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
