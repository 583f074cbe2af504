package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/nmorales/barpos-api/internal/application/dto"
	appstock "github.com/nmorales/barpos-api/internal/application/stock"
	"github.com/nmorales/barpos-api/internal/application/usecase"
	"github.com/nmorales/barpos-api/internal/domain"
)

// StockHandler maneja las peticiones HTTP del motor de stock (protegido).
type StockHandler struct {
	disponibilidad *appstock.DisponibilidadUseCase
	descuento      *appstock.DescuentoStockUseCase
	resync         *appstock.ResyncUseCase
	movimientos    *usecase.MovimientoUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	disponibilidad *appstock.DisponibilidadUseCase,
	descuento *appstock.DescuentoStockUseCase,
	resync *appstock.ResyncUseCase,
	movimientos *usecase.MovimientoUseCase,
) *StockHandler {
	return &StockHandler{
		disponibilidad: disponibilidad,
		descuento:      descuento,
		resync:         resync,
		movimientos:    movimientos,
	}
}

// Disponibilidad godoc
// @Summary      Verificar stock disponible antes de una venta
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id        path   string  true   "ID del artículo"
// @Param        cantidad  query  string  false  "Cantidad solicitada (por defecto 1)"
// @Success      200  {object}  dto.DisponibilidadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articulos/{id}/disponibilidad [get]
func (h *StockHandler) Disponibilidad(c *fiber.Ctx) error {
	cantidad := decimal.NewFromInt(1)
	if raw := c.Query("cantidad"); raw != "" {
		var err error
		cantidad, err = decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cantidad inválida"})
		}
	}
	res, err := h.disponibilidad.Verificar(c.Context(), c.Params("id"), cantidad)
	if err != nil {
		return mapStockError(c, err)
	}
	return c.JSON(toDisponibilidadResponse(res))
}

// Descuento godoc
// @Summary      Descontar stock por una línea de pedido vendida
// @Description  Verifica disponibilidad y descuenta de forma atómica. Para un
//               combo descuenta cada componente según la receta y además el
//               stock propio del combo, dejando un movimiento por cada uno.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DescuentoRequest  true  "articulo_id, cantidad, pedido_id, origen"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.StockInsuficienteResponse
// @Router       /api/stock/descuento [post]
func (h *StockHandler) Descuento(c *fiber.Ctx) error {
	var in dto.DescuentoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.descuento.DescontarVerificado(c.Context(), appstock.DescuentoInput{
		ArticuloID: in.ArticuloID,
		Cantidad:   in.Cantidad,
		PedidoID:   in.PedidoID,
		Origen:     in.Origen,
	})
	if err != nil {
		return mapStockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "stock descontado"})
}

// Reposicion godoc
// @Summary      Reponer stock por una línea de pedido anulada
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DescuentoRequest  true  "articulo_id, cantidad, pedido_id, origen"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/reposicion [post]
func (h *StockHandler) Reposicion(c *fiber.Ctx) error {
	var in dto.DescuentoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.descuento.Reponer(c.Context(), appstock.DescuentoInput{
		ArticuloID: in.ArticuloID,
		Cantidad:   in.Cantidad,
		PedidoID:   in.PedidoID,
		Origen:     in.Origen,
	})
	if err != nil {
		return mapStockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "stock repuesto"})
}

// SyncCombo godoc
// @Summary      Resincronizar el stock almacenado de un combo con su receta
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del combo"
// @Success      200  {object}  dto.SyncComboResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/combos/{id}/resync [post]
func (h *StockHandler) SyncCombo(c *fiber.Ctx) error {
	res, err := h.resync.SincronizarCombo(c.Context(), c.Params("id"))
	if err != nil {
		return mapStockError(c, err)
	}
	return c.JSON(dto.SyncComboResponse{
		ComboID:       res.ComboID,
		Descripcion:   res.Descripcion,
		StockAnterior: res.StockAnterior,
		StockNuevo:    res.StockNuevo,
		Actualizado:   res.Actualizado,
	})
}

// ResyncTodos godoc
// @Summary      Resincronizar el stock de todos los combos del catálogo
// @Description  Idempotente: solo sobreescribe datos derivados. Devuelve el
//               resumen del lote, incluidos los combos que fallaron.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ResyncResponse
// @Router       /api/combos/resync [post]
func (h *StockHandler) ResyncTodos(c *fiber.Ctx) error {
	res, err := h.resync.ResincronizarTodos(c.Context())
	if err != nil {
		return mapStockError(c, err)
	}
	out := dto.ResyncResponse{
		Total:        res.Total,
		Actualizados: res.Actualizados,
		SinCambio:    res.SinCambio,
	}
	for _, e := range res.Errores {
		out.Errores = append(out.Errores, dto.ErrorResyncDTO{
			ComboID:     e.ComboID,
			Descripcion: e.Descripcion,
			Mensaje:     e.Mensaje,
		})
	}
	return c.JSON(out)
}

// MovimientosPorArticulo godoc
// @Summary      Historial de movimientos de stock de un artículo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del artículo"
// @Param        limit   query  int     false  "Límite (por defecto 20)"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {array}  dto.MovimientoResponse
// @Router       /api/articulos/{id}/movimientos [get]
func (h *StockHandler) MovimientosPorArticulo(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	movimientos, err := h.movimientos.ListByArticulo(c.Params("id"), page)
	if err != nil {
		return mapStockError(c, err)
	}
	return c.JSON(movimientos)
}

// MovimientosPorPedido godoc
// @Summary      Movimientos de stock generados por un pedido
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {array}  dto.MovimientoResponse
// @Router       /api/pedidos/{id}/movimientos [get]
func (h *StockHandler) MovimientosPorPedido(c *fiber.Ctx) error {
	movimientos, err := h.movimientos.ListByPedido(c.Params("id"))
	if err != nil {
		return mapStockError(c, err)
	}
	return c.JSON(movimientos)
}

func toDisponibilidadResponse(res *appstock.ResultadoDisponibilidad) dto.DisponibilidadResponse {
	out := dto.DisponibilidadResponse{
		ArticuloID:         res.ArticuloID,
		Descripcion:        res.Descripcion,
		EsCombo:            res.EsCombo,
		Disponible:         res.Disponible,
		CantidadSolicitada: res.CantidadSolicitada,
		CantidadDisponible: res.CantidadDisponible,
		Motivo:             res.Motivo,
	}
	if res.ComponenteLimitante != nil {
		out.ComponenteLimitante = &dto.ComponenteLimitanteDTO{
			ArticuloID:       res.ComponenteLimitante.ArticuloID,
			Descripcion:      res.ComponenteLimitante.Descripcion,
			Stock:            res.ComponenteLimitante.Stock,
			CantidadPorCombo: res.ComponenteLimitante.CantidadPorCombo,
		}
	}
	return out
}

// mapStockError traduce errores de dominio a respuestas HTTP. El stock
// insuficiente devuelve 409 con el detalle completo, nunca un error pelado.
func mapStockError(c *fiber.Ctx, err error) error {
	var insuficiente *domain.StockInsuficienteError
	if errors.As(err, &insuficiente) {
		out := dto.StockInsuficienteResponse{
			Code:               "INSUFFICIENT_STOCK",
			Message:            insuficiente.Error(),
			ArticuloID:         insuficiente.ArticuloID,
			Descripcion:        insuficiente.Descripcion,
			CantidadSolicitada: insuficiente.CantidadSolicitada,
			CantidadDisponible: insuficiente.CantidadDisponible,
		}
		if insuficiente.ComponenteLimitanteID != "" {
			out.ComponenteLimitante = &dto.ComponenteLimitanteDTO{
				ArticuloID:  insuficiente.ComponenteLimitanteID,
				Descripcion: insuficiente.ComponenteLimitante,
			}
		}
		return c.Status(fiber.StatusConflict).JSON(out)
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
	}
	if errors.Is(err, domain.ErrDuplicate) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
