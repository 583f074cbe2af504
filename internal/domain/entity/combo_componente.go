package entity

import "github.com/shopspring/decimal"

// ComboComponente es una arista de la receta (bill of materials) de un combo:
// vender una unidad del combo consume Cantidad unidades del componente.
// Un combo sin componentes no puede armarse (capacidad 0).
type ComboComponente struct {
	ArticuloComboID      string
	ArticuloComponenteID string
	Cantidad             decimal.Decimal // unidades del componente por unidad de combo, debe ser > 0
}
