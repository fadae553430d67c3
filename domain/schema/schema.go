// Package schema fixes the master workbook layout: the 34 output columns
// in their exact order, the accepted header spellings for each, and the
// rule class that fills each column.
package schema

// Master column names. The identifiers are the literal header strings the
// master workbook carries; output order is defined by Columns below.
const (
	FechaCompra         = "Fecha de compra"
	Numero              = "N°"
	NumOperacion        = "N° OP"
	IDBlotter           = "ID Blotter"
	ApellidoPaterno     = "Apellido Paterno"
	ApellidoMaterno     = "Apellido materno"
	Nombres             = "Nombres"
	Rut                 = "Rut"
	DV                  = "DV"
	FechaEmision        = "Fecha de emisión"
	MontoCredito        = "Monto Crédito - Cap (UF)"
	Subsidio            = "Subsidio"
	Pie                 = "Pie"
	ValorVivienda       = "Valor Vivienda"
	Morosidad           = "Morosidad"
	NumCuotas           = "N° Cuotas"
	CuotaMes            = "Cuota Mes"
	TasaArriendo        = "Tasa Arriendo o Compra"
	FechaPrimerAporte   = "Fecha 1er Aporte"
	FechaUltimoAporte   = "Fecha Last Aporte"
	FechaCorte          = "Fecha Corte"
	VPNPrimeraFecha     = "VPN 1ra fecha"
	VPNSegundaFecha     = "VPN 2da fecha"
	PrecioMenosUnaUF    = "Precio -1UF"
	SaldoInsoluto       = "Saldo insoluto Teorico al 31-07-2019"
	Tasacion            = "Tasacion"
	PrecioVentaTasacion = "Precio Venta/Tasación"
	TasaVenta           = "Tasa Venta"
	DifTasa             = "Dif. Tasa"
	MontoDividendo      = "Monto dividendo"
	DivRenta            = "DivRenta"
	CargaFinanciera     = "Carga Financiera"
	Direccion           = "Dirección"
	Comuna              = "Comuna"
)

// Columns is the master layout in output order. Merge results and the
// persisted workbook follow this order exactly.
var Columns = []string{
	FechaCompra,
	Numero,
	NumOperacion,
	IDBlotter,
	ApellidoPaterno,
	ApellidoMaterno,
	Nombres,
	Rut,
	DV,
	FechaEmision,
	MontoCredito,
	Subsidio,
	Pie,
	ValorVivienda,
	Morosidad,
	NumCuotas,
	CuotaMes,
	TasaArriendo,
	FechaPrimerAporte,
	FechaUltimoAporte,
	FechaCorte,
	VPNPrimeraFecha,
	VPNSegundaFecha,
	PrecioMenosUnaUF,
	SaldoInsoluto,
	Tasacion,
	PrecioVentaTasacion,
	TasaVenta,
	DifTasa,
	MontoDividendo,
	DivRenta,
	CargaFinanciera,
	Direccion,
	Comuna,
}

var colIndex = func() map[string]int {
	m := make(map[string]int, len(Columns))
	for i, c := range Columns {
		m[c] = i
	}
	return m
}()

// Index returns the position of a master column in Columns, -1 when the
// name is not part of the schema.
func Index(name string) int {
	if i, ok := colIndex[name]; ok {
		return i
	}
	return -1
}

// IsColumn reports whether name is a master column.
func IsColumn(name string) bool {
	return Index(name) >= 0
}

// Aliases lists accepted source header spellings per master column, in
// match priority order. The canonical name itself is always tried first;
// entries here are the variants seen in real source workbooks. Spellings
// are compared after normalization, so accents, case and separator
// punctuation do not matter.
var Aliases = map[string][]string{
	FechaCompra:         {"fecha compra", "fechacompra"},
	Numero:              {"numero", "num", "no"},
	NumOperacion:        {"numero op", "nop", "n operacion"},
	IDBlotter:           {"id_blotter", "blotter"},
	ApellidoPaterno:     {"ap paterno", "paterno"},
	ApellidoMaterno:     {"ap materno", "materno"},
	Nombres:             {"nombre completo"},
	Rut:                 {"run", "rut cliente"},
	DV:                  {"digito verificador"},
	FechaEmision:        {"fecha emision"},
	MontoCredito:        {"monto credito uf", "credito uf", "monto cap"},
	Pie:                 {"pie inicial"},
	ValorVivienda:       {"valor propiedad"},
	Morosidad:           {"dias morosidad"},
	NumCuotas:           {"numero cuotas", "cuotas"},
	CuotaMes:            {"cuota", "cuota mensual", "primera cuota a endosar"},
	TasaArriendo:        {"tasa arriendo", "tasa compra", "tasa"},
	FechaPrimerAporte:   {"fecha primer aporte", "1er aporte", "fecha 1er aporte a endosar"},
	FechaUltimoAporte:   {"fecha ultimo aporte", "last aporte"},
	FechaCorte:          {"corte"},
	SaldoInsoluto:       {"saldo insoluto", "saldo teorico"},
	PrecioVentaTasacion: {"precio venta", "precio tasacion"},
	DifTasa:             {"diferencia tasa"},
	MontoDividendo:      {"dividendo"},
	DivRenta:            {"div renta", "dividendo renta"},
	CargaFinanciera:     {"carga financiera renta"},
	Direccion:           {"domicilio", "direccion de la propiedad"},
}

// Rule classifies how a master column is filled.
type Rule int

const (
	// RuleDirect copies the value of the matched source column.
	RuleDirect Rule = iota
	// RuleIDBlotter takes the leading digit run of the N° OP value.
	RuleIDBlotter
	// RuleDifTasa is Tasa Arriendo o Compra minus Tasa Venta.
	RuleDifTasa
	// RuleFirstDateColumn copies the column headed by the earliest
	// date-valued header of the source sheet.
	RuleFirstDateColumn
	// RuleSecondDateColumn copies the column headed by the second
	// date-valued header.
	RuleSecondDateColumn
	// RuleSecondDateMinusOne is the second date column's value minus 1.
	RuleSecondDateMinusOne
	// RuleExternalDate is the purchase date supplied once per run.
	RuleExternalDate
	// RuleBase joins the value from the Base sheet by Rut.
	RuleBase
)

// RuleFor returns the extraction rule class for a master column. Columns
// under RuleExternalDate and RuleBase fall back to RuleDirect when the
// run has no external date or the workbook has no Base sheet.
func RuleFor(name string) Rule {
	switch name {
	case IDBlotter:
		return RuleIDBlotter
	case DifTasa:
		return RuleDifTasa
	case VPNPrimeraFecha:
		return RuleFirstDateColumn
	case VPNSegundaFecha:
		return RuleSecondDateColumn
	case PrecioMenosUnaUF:
		return RuleSecondDateMinusOne
	case FechaCompra:
		return RuleExternalDate
	case FechaEmision, TasaArriendo, TasaVenta:
		return RuleBase
	default:
		return RuleDirect
	}
}

// BaseKey is the natural-key column joining Valo rows to Base rows.
const BaseKey = Rut

// BaseFields maps the master columns filled from the Base sheet to the
// Base column each one comes from.
var BaseFields = map[string]string{
	FechaEmision: "Fecha de suscripción",
	TasaArriendo: "Tasa anual de emisión",
	TasaVenta:    "Tasa anual de endoso",
}
