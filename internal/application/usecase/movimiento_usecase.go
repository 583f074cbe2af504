package usecase

import (
	"github.com/nmorales/barpos-api/internal/application/dto"
	"github.com/nmorales/barpos-api/internal/domain/entity"
	"github.com/nmorales/barpos-api/internal/domain/repository"
)

// MovimientoUseCase lecturas del historial de stock (auditoría).
type MovimientoUseCase struct {
	movimientoRepo repository.MovimientoStockRepository
}

// NewMovimientoUseCase construye el caso de uso.
func NewMovimientoUseCase(movimientoRepo repository.MovimientoStockRepository) *MovimientoUseCase {
	return &MovimientoUseCase{movimientoRepo: movimientoRepo}
}

// ListByArticulo lista los movimientos de un artículo con paginación.
func (uc *MovimientoUseCase) ListByArticulo(articuloID string, page dto.PageRequest) ([]dto.MovimientoResponse, error) {
	page.DefaultPage()
	movimientos, err := uc.movimientoRepo.ListByArticulo(articuloID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMovimientoResponses(movimientos), nil
}

// ListByPedido lista los movimientos generados por un pedido.
func (uc *MovimientoUseCase) ListByPedido(pedidoID string) ([]dto.MovimientoResponse, error) {
	movimientos, err := uc.movimientoRepo.ListByPedido(pedidoID)
	if err != nil {
		return nil, err
	}
	return toMovimientoResponses(movimientos), nil
}

func toMovimientoResponses(movimientos []*entity.MovimientoStock) []dto.MovimientoResponse {
	out := make([]dto.MovimientoResponse, 0, len(movimientos))
	for _, m := range movimientos {
		out = append(out, dto.MovimientoResponse{
			ID:          m.ID,
			ArticuloID:  m.ArticuloID,
			PedidoID:    m.PedidoID,
			Origen:      m.Origen,
			Tipo:        m.Tipo,
			Cantidad:    m.Cantidad,
			StockActual: m.StockActual,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out
}
