package stock

import "github.com/shopspring/decimal"

// ComponenteStock es la vista mínima de un componente de combo que necesita
// el cálculo de capacidad: el stock actual del artículo componente y la
// cantidad que consume cada unidad de combo.
type ComponenteStock struct {
	ArticuloID  string
	Descripcion string
	Stock       decimal.Decimal
	Cantidad    decimal.Decimal // unidades consumidas por unidad de combo
}

// CapacidadCombo calcula cuántas unidades de un combo pueden armarse con el
// stock actual de sus componentes: el mínimo de floor(stock/cantidad) entre
// todos ellos. Función pura, segura de llamar repetidamente (preview en caja,
// resync, verificación pre-venta).
//
// Reglas:
//   - receta vacía => 0 (un combo sin componentes no se puede vender)
//   - cantidad <= 0 es un dato corrupto: se ignora el componente en lugar de
//     dividir por cero
//   - stock negativo se trata como 0
//   - el resultado nunca es negativo
func CapacidadCombo(componentes []ComponenteStock) int64 {
	minimo := int64(-1)
	for _, c := range componentes {
		if !c.Cantidad.IsPositive() {
			continue
		}
		stock := c.Stock
		if stock.IsNegative() {
			stock = decimal.Zero
		}
		unidades := stock.Div(c.Cantidad).Floor().IntPart()
		if minimo < 0 || unidades < minimo {
			minimo = unidades
		}
	}
	if minimo < 0 {
		// Sin componentes válidos: no hay receta con la que armar el combo.
		return 0
	}
	return minimo
}

// ComponenteLimitante identifica el componente cuyo ratio floor(stock/cantidad)
// iguala la capacidad total del combo, para mensajes del estilo
// "stock insuficiente de X". Devuelve nil si la receta no tiene componentes
// válidos; junto al componente devuelve la capacidad calculada.
func ComponenteLimitante(componentes []ComponenteStock) (*ComponenteStock, int64) {
	var limitante *ComponenteStock
	minimo := int64(-1)
	for i := range componentes {
		c := componentes[i]
		if !c.Cantidad.IsPositive() {
			continue
		}
		stock := c.Stock
		if stock.IsNegative() {
			stock = decimal.Zero
		}
		unidades := stock.Div(c.Cantidad).Floor().IntPart()
		if minimo < 0 || unidades < minimo {
			minimo = unidades
			limitante = &componentes[i]
		}
	}
	if limitante == nil {
		return nil, 0
	}
	return limitante, minimo
}
