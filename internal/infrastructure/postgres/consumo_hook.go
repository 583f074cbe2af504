package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/nmorales/barpos-api/internal/application/stock"
	"github.com/nmorales/barpos-api/internal/domain/entity"
)

var _ stock.PostVentaHook = (*ConsumoEquivalenciaHook)(nil)

// ConsumoEquivalenciaHook registra el consumo derivado de artículos con
// factor de equivalencia (ej. bebidas preparadas que descuentan litros de
// leche). Corre después del commit de la venta, desacoplado del motor de
// stock: si falla, se loguea y la venta sigue en pie.
type ConsumoEquivalenciaHook struct {
	q Querier
}

// NewConsumoEquivalenciaHook construye el hook. Pasar el pool: corre fuera
// de la transacción de stock a propósito.
func NewConsumoEquivalenciaHook(q Querier) *ConsumoEquivalenciaHook {
	return &ConsumoEquivalenciaHook{q: q}
}

// DespuesDeVenta inserta el consumo equivalente (cantidad vendida × factor).
// Artículos sin equivalencia no generan registro.
func (h *ConsumoEquivalenciaHook) DespuesDeVenta(ctx context.Context, articulo *entity.Articulo, cantidad decimal.Decimal, pedidoID string) error {
	if articulo.Equivalencia == nil || articulo.Equivalencia.IsZero() {
		return nil
	}
	equivalente := cantidad.Mul(*articulo.Equivalencia)
	query := `
		INSERT INTO consumos_equivalencia (id, fk_articulo, fk_pedido, cantidad_vendida, cantidad_equivalente, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := h.q.Exec(ctx, query,
		uuid.New().String(), articulo.ID, pedidoID, cantidad, equivalente, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert consumo equivalencia: %w", err)
	}
	return nil
}
