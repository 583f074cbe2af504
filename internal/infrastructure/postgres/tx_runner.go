package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nmorales/barpos-api/internal/application/stock"
	"github.com/nmorales/barpos-api/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Es la
// garantía de atomicidad del motor de stock: el descuento de un combo toca
// varias filas de articulos y varias de movimientos_stock, y todas se
// confirman o se revierten juntas.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	articuloRepo repository.ArticuloRepository,
	componenteRepo repository.ComboComponenteRepository,
	movimientoRepo repository.MovimientoStockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	articuloRepo := NewArticuloRepository(tx)
	componenteRepo := NewComboComponenteRepository(tx)
	movimientoRepo := NewMovimientoStockRepository(tx)

	if err := fn(articuloRepo, componenteRepo, movimientoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
