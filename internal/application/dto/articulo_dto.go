package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateArticuloRequest body para POST /api/articulos.
type CreateArticuloRequest struct {
	Descripcion    string           `json:"descripcion"`
	PrecioUnitario decimal.Decimal  `json:"precio_unitario"`
	Stock          decimal.Decimal  `json:"stock"`
	EsCombo        bool             `json:"es_combo"`
	Equivalencia   *decimal.Decimal `json:"equivalencia,omitempty"`
}

// UpdateArticuloRequest body para PUT /api/articulos/:id. El stock no se
// modifica por acá: se maneja vía movimientos o resync.
type UpdateArticuloRequest struct {
	Descripcion    *string          `json:"descripcion,omitempty"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario,omitempty"`
	Equivalencia   *decimal.Decimal `json:"equivalencia,omitempty"`
}

// ComponenteRequest una arista de la receta en PUT /api/articulos/:id/componentes.
type ComponenteRequest struct {
	ArticuloComponenteID string          `json:"articulo_componente_id"`
	Cantidad             decimal.Decimal `json:"cantidad"`
}

// SetComponentesRequest reemplaza la receta completa de un combo.
type SetComponentesRequest struct {
	Componentes []ComponenteRequest `json:"componentes"`
}

// ComponenteResponse una arista de receta en respuestas.
type ComponenteResponse struct {
	ArticuloComponenteID string          `json:"articulo_componente_id"`
	Descripcion          string          `json:"descripcion,omitempty"`
	Cantidad             decimal.Decimal `json:"cantidad"`
	Stock                decimal.Decimal `json:"stock"`
}

// ArticuloResponse representación HTTP de un artículo. Componentes solo viene
// poblado para combos.
type ArticuloResponse struct {
	ID             string               `json:"id"`
	Descripcion    string               `json:"descripcion"`
	PrecioUnitario decimal.Decimal      `json:"precio_unitario"`
	Stock          decimal.Decimal      `json:"stock"`
	EsCombo        bool                 `json:"es_combo"`
	Equivalencia   *decimal.Decimal     `json:"equivalencia,omitempty"`
	Componentes    []ComponenteResponse `json:"componentes,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}
