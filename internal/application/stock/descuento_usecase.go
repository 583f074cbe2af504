package stock

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/nmorales/barpos-api/internal/domain"
	"github.com/nmorales/barpos-api/internal/domain/entity"
	"github.com/nmorales/barpos-api/internal/domain/repository"
)

// DescuentoStockUseCase aplica los efectos de stock de una venta (o su
// reversa) sobre artículos simples y combos, dejando rastro auditable en
// movimientos_stock. Toda la operación corre dentro de una única transacción
// con bloqueo de fila: o se descuentan todos los componentes y el combo, o
// no se descuenta nada.
type DescuentoStockUseCase struct {
	txRunner       TxRunner
	articuloRepo   repository.ArticuloRepository
	disponibilidad *DisponibilidadUseCase
	hooks          []PostVentaHook
}

// NewDescuentoStockUseCase construye el caso de uso. Los hooks corren después
// del commit y sus errores no afectan la venta.
func NewDescuentoStockUseCase(
	txRunner TxRunner,
	articuloRepo repository.ArticuloRepository,
	disponibilidad *DisponibilidadUseCase,
	hooks ...PostVentaHook,
) *DescuentoStockUseCase {
	return &DescuentoStockUseCase{
		txRunner:       txRunner,
		articuloRepo:   articuloRepo,
		disponibilidad: disponibilidad,
		hooks:          hooks,
	}
}

// DescuentoInput entrada para descontar o reponer stock por una línea de pedido.
type DescuentoInput struct {
	ArticuloID string
	Cantidad   decimal.Decimal
	PedidoID   string
	Origen     string // por defecto "venta" al descontar, "reposicion" al reponer
}

func (in *DescuentoInput) validar() error {
	if in.ArticuloID == "" || in.PedidoID == "" || !in.Cantidad.IsPositive() {
		return domain.ErrInvalidInput
	}
	return nil
}

// DescontarVerificado es el camino de venta: verifica disponibilidad y, solo
// si alcanza, descuenta. Falla cerrado con StockInsuficienteError; ningún
// caller puede sobrevender por esta vía.
func (uc *DescuentoStockUseCase) DescontarVerificado(ctx context.Context, input DescuentoInput) error {
	if err := input.validar(); err != nil {
		return err
	}
	res, err := uc.disponibilidad.Verificar(ctx, input.ArticuloID, input.Cantidad)
	if err != nil {
		return err
	}
	if !res.Disponible {
		return errorStockInsuficiente(res)
	}
	return uc.Descontar(ctx, input)
}

// Descontar aplica el descuento sin verificación previa. El stock persistido
// se recorta a 0, nunca queda negativo. Artículo simple: una salida con
// snapshot del stock resultante. Combo: una salida "<origen>_combo" por cada
// componente (cantidad de receta × unidades vendidas) y una salida con el
// origen pelado para el propio combo. Un componente cuya arista apunta a un
// artículo inexistente se omite con warning: una receta rota no aborta la venta.
func (uc *DescuentoStockUseCase) Descontar(ctx context.Context, input DescuentoInput) error {
	if err := input.validar(); err != nil {
		return err
	}
	if input.Origen == "" {
		input.Origen = entity.OrigenVenta
	}

	articulo, err := uc.articuloRepo.GetByID(input.ArticuloID)
	if err != nil {
		return err
	}
	if articulo == nil {
		return domain.ErrNotFound
	}
	if articulo.EsCombo && !input.Cantidad.IsInteger() {
		// Los combos se venden por unidades enteras.
		return domain.ErrInvalidInput
	}

	err = uc.txRunner.Run(ctx, func(
		articuloRepo repository.ArticuloRepository,
		componenteRepo repository.ComboComponenteRepository,
		movimientoRepo repository.MovimientoStockRepository,
	) error {
		return aplicarMovimiento(articuloRepo, componenteRepo, movimientoRepo, input, entity.TipoSalida)
	})
	if err != nil {
		return err
	}

	uc.ejecutarHooks(ctx, articulo, input.Cantidad, input.PedidoID)
	return nil
}

// Reponer revierte una línea de pedido anulada: movimientos de entrada con el
// mismo etiquetado que la salida original (componentes con sufijo _combo).
func (uc *DescuentoStockUseCase) Reponer(ctx context.Context, input DescuentoInput) error {
	if err := input.validar(); err != nil {
		return err
	}
	if input.Origen == "" {
		input.Origen = entity.OrigenReposicion
	}

	articulo, err := uc.articuloRepo.GetByID(input.ArticuloID)
	if err != nil {
		return err
	}
	if articulo == nil {
		return domain.ErrNotFound
	}
	if articulo.EsCombo && !input.Cantidad.IsInteger() {
		return domain.ErrInvalidInput
	}

	return uc.txRunner.Run(ctx, func(
		articuloRepo repository.ArticuloRepository,
		componenteRepo repository.ComboComponenteRepository,
		movimientoRepo repository.MovimientoStockRepository,
	) error {
		return aplicarMovimiento(articuloRepo, componenteRepo, movimientoRepo, input, entity.TipoEntrada)
	})
}

// aplicarMovimiento ejecuta el descuento o la reposición dentro de la tx.
func aplicarMovimiento(
	articuloRepo repository.ArticuloRepository,
	componenteRepo repository.ComboComponenteRepository,
	movimientoRepo repository.MovimientoStockRepository,
	input DescuentoInput,
	tipo string,
) error {
	articulo, err := articuloRepo.GetForUpdate(input.ArticuloID)
	if err != nil {
		return err
	}
	if articulo == nil {
		return domain.ErrNotFound
	}

	if !articulo.EsCombo {
		return ajustarStock(articuloRepo, movimientoRepo, articulo, input.Cantidad, input.PedidoID, input.Origen, tipo)
	}

	edges, err := componenteRepo.ListByCombo(articulo.ID)
	if err != nil {
		return err
	}
	for _, edge := range edges {
		componente, err := articuloRepo.GetForUpdate(edge.ArticuloComponenteID)
		if err != nil {
			return err
		}
		if componente == nil {
			log.Warn().
				Str("combo_id", articulo.ID).
				Str("componente_id", edge.ArticuloComponenteID).
				Str("pedido_id", input.PedidoID).
				Msg("componente de combo inexistente, se omite del movimiento")
			continue
		}
		consumo := edge.Cantidad.Mul(input.Cantidad)
		if err := ajustarStock(articuloRepo, movimientoRepo, componente, consumo, input.PedidoID, input.Origen+entity.SufijoOrigenCombo, tipo); err != nil {
			return err
		}
	}

	// El combo lleva además su propio registro de stock y su propio movimiento.
	return ajustarStock(articuloRepo, movimientoRepo, articulo, input.Cantidad, input.PedidoID, input.Origen, tipo)
}

// ajustarStock persiste el nuevo stock (recortado a 0 en salidas) y el
// movimiento de auditoría con el snapshot resultante.
func ajustarStock(
	articuloRepo repository.ArticuloRepository,
	movimientoRepo repository.MovimientoStockRepository,
	articulo *entity.Articulo,
	cantidad decimal.Decimal,
	pedidoID, origen, tipo string,
) error {
	var nuevo decimal.Decimal
	if tipo == entity.TipoSalida {
		nuevo = articulo.Stock.Sub(cantidad)
		if nuevo.IsNegative() {
			nuevo = decimal.Zero
		}
	} else {
		nuevo = articulo.Stock.Add(cantidad)
	}
	if err := articuloRepo.UpdateStock(articulo.ID, nuevo); err != nil {
		return err
	}
	articulo.Stock = nuevo
	return movimientoRepo.Create(&entity.MovimientoStock{
		ArticuloID:  articulo.ID,
		PedidoID:    pedidoID,
		Origen:      origen,
		Tipo:        tipo,
		Cantidad:    cantidad,
		StockActual: nuevo,
		CreatedAt:   time.Now(),
	})
}

// ejecutarHooks corre los efectos post-venta con aislamiento de fallos.
func (uc *DescuentoStockUseCase) ejecutarHooks(ctx context.Context, articulo *entity.Articulo, cantidad decimal.Decimal, pedidoID string) {
	for _, hook := range uc.hooks {
		if err := hook.DespuesDeVenta(ctx, articulo, cantidad, pedidoID); err != nil {
			log.Warn().Err(err).
				Str("articulo_id", articulo.ID).
				Str("pedido_id", pedidoID).
				Msg("hook post-venta falló; la venta no se ve afectada")
		}
	}
}
