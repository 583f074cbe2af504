package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Articulo representa un artículo vendible del catálogo.
// Stock admite fracciones (artículos pesables). Si EsCombo es true, el artículo
// se arma a partir de componentes (ComboComponente) y su Stock propio actúa
// como tope secundario además de la capacidad derivada de la receta.
type Articulo struct {
	ID             string
	Descripcion    string
	PrecioUnitario decimal.Decimal
	Stock          decimal.Decimal
	EsCombo        bool
	Equivalencia   *decimal.Decimal // factor de conversión para el consumo por equivalencia (opcional)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
