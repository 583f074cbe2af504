package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nmorales/barpos-api/internal/domain/entity"
	"github.com/nmorales/barpos-api/internal/domain/repository"
)

var _ repository.MovimientoStockRepository = (*MovimientoStockRepo)(nil)

// MovimientoStockRepo implementación sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: los movimientos son el rastro de auditoría.
type MovimientoStockRepo struct {
	q Querier
}

// NewMovimientoStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoStockRepository(q Querier) *MovimientoStockRepo {
	return &MovimientoStockRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *MovimientoStockRepo) Create(movimiento *entity.MovimientoStock) error {
	if movimiento.ID == "" {
		movimiento.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimientos_stock (id, fk_articulo, fk_pedido, origen, tipo, cantidad, stock_actual, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movimiento.ID, movimiento.ArticuloID, movimiento.PedidoID, movimiento.Origen,
		movimiento.Tipo, movimiento.Cantidad, movimiento.StockActual, movimiento.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movimiento stock: %w", err)
	}
	return nil
}

const movimientoColumns = `id, fk_articulo, fk_pedido, origen, tipo, cantidad, stock_actual, created_at`

// ListByArticulo lista los movimientos de un artículo, del más reciente al más viejo.
func (r *MovimientoStockRepo) ListByArticulo(articuloID string, limit, offset int) ([]*entity.MovimientoStock, error) {
	query := `SELECT ` + movimientoColumns + `
		FROM movimientos_stock WHERE fk_articulo = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, articuloID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movimientos by articulo: %w", err)
	}
	defer rows.Close()
	return collectMovimientos(rows)
}

// ListByPedido lista los movimientos generados por un pedido.
func (r *MovimientoStockRepo) ListByPedido(pedidoID string) ([]*entity.MovimientoStock, error) {
	query := `SELECT ` + movimientoColumns + `
		FROM movimientos_stock WHERE fk_pedido = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("list movimientos by pedido: %w", err)
	}
	defer rows.Close()
	return collectMovimientos(rows)
}

func collectMovimientos(rows pgx.Rows) ([]*entity.MovimientoStock, error) {
	var list []*entity.MovimientoStock
	for rows.Next() {
		var m entity.MovimientoStock
		if err := rows.Scan(&m.ID, &m.ArticuloID, &m.PedidoID, &m.Origen, &m.Tipo,
			&m.Cantidad, &m.StockActual, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
