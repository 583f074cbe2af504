package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	TipoEntrada = "entrada"
	TipoSalida  = "salida"
)

// Orígenes habituales de movimientos. Los descuentos derivados de la venta
// de un combo llevan el sufijo SufijoOrigenCombo para distinguirse en la
// auditoría de las ventas directas del componente.
const (
	OrigenVenta       = "venta"
	OrigenReposicion  = "reposicion"
	SufijoOrigenCombo = "_combo"
)

// MovimientoStock es el registro de auditoría de cada cambio de stock.
// Append-only: nunca se actualiza ni se borra.
type MovimientoStock struct {
	ID          string
	ArticuloID  string
	PedidoID    string
	Origen      string // venta, venta_combo, reposicion, ...
	Tipo        string // entrada | salida
	Cantidad    decimal.Decimal
	StockActual decimal.Decimal // stock resultante tras aplicar el movimiento
	CreatedAt   time.Time
}
