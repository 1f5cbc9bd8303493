package extract

import "github.com/lgarreta/ecuapassdocs/internal/ocr"

// Row and column names of the "gastos a pagar" table field.
const (
	RowFreight = "ValorFlete"
	RowOther   = "OtrosGastos"
	RowTotal   = "Total"

	ColSenderAmount     = "MontoRemitente"
	ColSenderCurrency   = "MonedaRemitente"
	ColReceiverAmount   = "MontoDestinatario"
	ColReceiverCurrency = "MonedaDestinatario"
)

type Charge struct {
	Amount   *string
	Currency *string
}

// CostRow holds one cost category as paid by each party.
type CostRow struct {
	Sender   Charge
	Receiver Charge
}

type Costs struct {
	Freight CostRow
	Other   CostRow
	Total   CostRow
}

// CostTable reads the nested table of field f. Each missing row or cell only
// leaves that attribute nil.
func CostTable(f *ocr.Field) Costs {
	return Costs{
		Freight: costRow(f, RowFreight),
		Other:   costRow(f, RowOther),
		Total:   costRow(f, RowTotal),
	}
}

func costRow(table *ocr.Field, row string) CostRow {
	r := subField(table, row)
	return CostRow{
		Sender: Charge{
			Amount:   subField(r, ColSenderAmount).ValueText(),
			Currency: subField(r, ColSenderCurrency).ValueText(),
		},
		Receiver: Charge{
			Amount:   subField(r, ColReceiverAmount).ValueText(),
			Currency: subField(r, ColReceiverCurrency).ValueText(),
		},
	}
}

// subField returns the named member of an object field, or nil.
func subField(f *ocr.Field, name string) *ocr.Field {
	if f == nil {
		return nil
	}
	obj, ok := f.Value.(ocr.ObjectValue)
	if !ok {
		return nil
	}
	return obj.Fields.Get(name)
}
