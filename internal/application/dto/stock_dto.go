package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponenteLimitanteDTO componente que limita la capacidad de un combo.
type ComponenteLimitanteDTO struct {
	ArticuloID       string          `json:"articulo_id"`
	Descripcion      string          `json:"descripcion"`
	Stock            decimal.Decimal `json:"stock"`
	CantidadPorCombo decimal.Decimal `json:"cantidad_por_combo"`
}

// DisponibilidadResponse respuesta de GET /api/articulos/:id/disponibilidad.
// Cuando no alcanza el stock se devuelve también como cuerpo del 409 en el
// descuento, para que el cliente muestre un mensaje accionable.
type DisponibilidadResponse struct {
	ArticuloID          string                  `json:"articulo_id"`
	Descripcion         string                  `json:"descripcion"`
	EsCombo             bool                    `json:"es_combo"`
	Disponible          bool                    `json:"disponible"`
	CantidadSolicitada  decimal.Decimal         `json:"cantidad_solicitada"`
	CantidadDisponible  decimal.Decimal         `json:"cantidad_disponible"`
	Motivo              string                  `json:"motivo,omitempty"`
	ComponenteLimitante *ComponenteLimitanteDTO `json:"componente_limitante,omitempty"`
}

// StockInsuficienteResponse cuerpo del 409 al intentar descontar más de lo
// disponible: identifica la restricción que falló y cuánto hay realmente.
type StockInsuficienteResponse struct {
	Code                string                  `json:"code"` // siempre "INSUFFICIENT_STOCK"
	Message             string                  `json:"message"`
	ArticuloID          string                  `json:"articulo_id"`
	Descripcion         string                  `json:"descripcion"`
	CantidadSolicitada  decimal.Decimal         `json:"cantidad_solicitada"`
	CantidadDisponible  decimal.Decimal         `json:"cantidad_disponible"`
	ComponenteLimitante *ComponenteLimitanteDTO `json:"componente_limitante,omitempty"`
}

// DescuentoRequest body para POST /api/stock/descuento y /api/stock/reposicion.
type DescuentoRequest struct {
	ArticuloID string          `json:"articulo_id"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	PedidoID   string          `json:"pedido_id"`
	Origen     string          `json:"origen,omitempty"`
}

// SyncComboResponse respuesta de POST /api/combos/:id/resync.
type SyncComboResponse struct {
	ComboID       string          `json:"combo_id"`
	Descripcion   string          `json:"descripcion"`
	StockAnterior decimal.Decimal `json:"stock_anterior"`
	StockNuevo    decimal.Decimal `json:"stock_nuevo"`
	Actualizado   bool            `json:"actualizado"`
}

// ResyncResponse resumen de POST /api/combos/resync.
type ResyncResponse struct {
	Total        int              `json:"total"`
	Actualizados int              `json:"actualizados"`
	SinCambio    int              `json:"sin_cambio"`
	Errores      []ErrorResyncDTO `json:"errores,omitempty"`
}

// ErrorResyncDTO combo que no pudo resincronizarse.
type ErrorResyncDTO struct {
	ComboID     string `json:"combo_id"`
	Descripcion string `json:"descripcion"`
	Mensaje     string `json:"mensaje"`
}

// MovimientoResponse un registro del historial de stock.
type MovimientoResponse struct {
	ID          string          `json:"id"`
	ArticuloID  string          `json:"articulo_id"`
	PedidoID    string          `json:"pedido_id"`
	Origen      string          `json:"origen"`
	Tipo        string          `json:"tipo"`
	Cantidad    decimal.Decimal `json:"cantidad"`
	StockActual decimal.Decimal `json:"stock_actual"`
	CreatedAt   time.Time       `json:"created_at"`
}
