package repository

import "github.com/nmorales/barpos-api/internal/domain/entity"

// MovimientoStockRepository define el puerto de persistencia para el historial
// de movimientos de stock. Solo inserta y lee: los movimientos son append-only.
type MovimientoStockRepository interface {
	Create(movimiento *entity.MovimientoStock) error
	ListByArticulo(articuloID string, limit, offset int) ([]*entity.MovimientoStock, error)
	ListByPedido(pedidoID string) ([]*entity.MovimientoStock, error)
}
