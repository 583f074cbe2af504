package stock

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/nmorales/barpos-api/internal/domain"
	"github.com/nmorales/barpos-api/internal/domain/repository"
	stockdom "github.com/nmorales/barpos-api/internal/domain/stock"
)

// ResultadoSync reporta el antes y después de sincronizar el stock de un combo.
type ResultadoSync struct {
	ComboID       string
	Descripcion   string
	StockAnterior decimal.Decimal
	StockNuevo    decimal.Decimal
	Actualizado   bool // false si el valor almacenado ya coincidía
}

// ResultadoResync resume una corrida de resincronización masiva.
type ResultadoResync struct {
	Total        int
	Actualizados int
	SinCambio    int
	Errores      []ErrorResync
}

// ErrorResync identifica un combo que no pudo resincronizarse.
type ErrorResync struct {
	ComboID     string
	Descripcion string
	Mensaje     string
}

// ResyncUseCase recalcula y sobreescribe el stock almacenado de los combos a
// partir del stock vivo de sus componentes, corrigiendo el drift que
// introducen las ediciones directas de componentes. Solo escribe datos
// derivados: es idempotente y seguro de re-ejecutar en cualquier momento.
type ResyncUseCase struct {
	txRunner     TxRunner
	articuloRepo repository.ArticuloRepository
}

// NewResyncUseCase construye el caso de uso.
func NewResyncUseCase(txRunner TxRunner, articuloRepo repository.ArticuloRepository) *ResyncUseCase {
	return &ResyncUseCase{txRunner: txRunner, articuloRepo: articuloRepo}
}

// SincronizarCombo recalcula la capacidad del combo con el mismo calculador
// que usa la verificación pre-venta (una sola implementación autoritativa) y
// sobreescribe su stock almacenado. ErrInvalidInput si el artículo no es combo.
func (uc *ResyncUseCase) SincronizarCombo(ctx context.Context, comboID string) (*ResultadoSync, error) {
	if comboID == "" {
		return nil, domain.ErrInvalidInput
	}
	var res *ResultadoSync
	err := uc.txRunner.Run(ctx, func(
		articuloRepo repository.ArticuloRepository,
		componenteRepo repository.ComboComponenteRepository,
		_ repository.MovimientoStockRepository,
	) error {
		combo, err := articuloRepo.GetForUpdate(comboID)
		if err != nil {
			return err
		}
		if combo == nil {
			return domain.ErrNotFound
		}
		if !combo.EsCombo {
			return domain.ErrInvalidInput
		}

		componentes, err := cargarComponentes(articuloRepo, componenteRepo, combo.ID)
		if err != nil {
			return err
		}
		nuevo := decimal.NewFromInt(stockdom.CapacidadCombo(componentes))

		res = &ResultadoSync{
			ComboID:       combo.ID,
			Descripcion:   combo.Descripcion,
			StockAnterior: combo.Stock,
			StockNuevo:    nuevo,
		}
		if combo.Stock.Equal(nuevo) {
			return nil
		}
		res.Actualizado = true
		return articuloRepo.UpdateStock(combo.ID, nuevo)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ResincronizarTodos aplica SincronizarCombo a cada combo del catálogo y
// devuelve un resumen por lote. Un combo que falla no detiene el resto.
func (uc *ResyncUseCase) ResincronizarTodos(ctx context.Context) (*ResultadoResync, error) {
	combos, err := uc.articuloRepo.ListCombos()
	if err != nil {
		return nil, err
	}
	resumen := &ResultadoResync{Total: len(combos)}
	for _, combo := range combos {
		res, err := uc.SincronizarCombo(ctx, combo.ID)
		if err != nil {
			resumen.Errores = append(resumen.Errores, ErrorResync{
				ComboID:     combo.ID,
				Descripcion: combo.Descripcion,
				Mensaje:     err.Error(),
			})
			continue
		}
		if res.Actualizado {
			resumen.Actualizados++
		} else {
			resumen.SinCambio++
		}
	}
	return resumen, nil
}
