package stock

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/nmorales/barpos-api/internal/domain/entity"
	"github.com/nmorales/barpos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el descuento de stock de un
// combo (componentes + combo + movimientos) se aplique completo o no se
// aplique: sin escrituras parciales.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		articuloRepo repository.ArticuloRepository,
		componenteRepo repository.ComboComponenteRepository,
		movimientoRepo repository.MovimientoStockRepository,
	) error) error
}

// PostVentaHook es un efecto secundario desacoplado que corre después de que
// la transacción de stock hizo commit (ej. contabilidad de consumo por
// equivalencia). Sus errores se registran pero nunca afectan la venta.
type PostVentaHook interface {
	DespuesDeVenta(ctx context.Context, articulo *entity.Articulo, cantidad decimal.Decimal, pedidoID string) error
}
