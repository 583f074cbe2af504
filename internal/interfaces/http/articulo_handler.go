package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nmorales/barpos-api/internal/application/dto"
	"github.com/nmorales/barpos-api/internal/application/usecase"
)

// ArticuloHandler maneja el CRUD de artículos y recetas de combo (protegido).
type ArticuloHandler struct {
	uc *usecase.ArticuloUseCase
}

// NewArticuloHandler construye el handler.
func NewArticuloHandler(uc *usecase.ArticuloUseCase) *ArticuloHandler {
	return &ArticuloHandler{uc: uc}
}

// Create godoc
// @Summary      Crear un artículo (simple o combo)
// @Tags         articulos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateArticuloRequest  true  "descripcion, precio_unitario, stock, es_combo, equivalencia"
// @Success      201  {object}  dto.ArticuloResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/articulos [post]
func (h *ArticuloHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateArticuloRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Create(in)
	if err != nil {
		return mapStockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// GetByID godoc
// @Summary      Obtener un artículo; los combos incluyen su receta
// @Tags         articulos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ArticuloResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articulos/{id} [get]
func (h *ArticuloHandler) GetByID(c *fiber.Ctx) error {
	res, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return mapStockError(c, err)
	}
	return c.JSON(res)
}

// List godoc
// @Summary      Listar artículos
// @Tags         articulos
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (por defecto 20)"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {array}  dto.ArticuloResponse
// @Router       /api/articulos [get]
func (h *ArticuloHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	res, err := h.uc.List(page)
	if err != nil {
		return mapStockError(c, err)
	}
	return c.JSON(res)
}

// Update godoc
// @Summary      Actualizar descripción, precio o equivalencia de un artículo
// @Tags         articulos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del artículo"
// @Param        body  body  dto.UpdateArticuloRequest  true  "campos a modificar"
// @Success      200  {object}  dto.ArticuloResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articulos/{id} [put]
func (h *ArticuloHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateArticuloRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return mapStockError(c, err)
	}
	return c.JSON(res)
}

// SetComponentes godoc
// @Summary      Reemplazar la receta (bill of materials) de un combo
// @Tags         articulos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del combo"
// @Param        body  body  dto.SetComponentesRequest  true  "receta completa"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articulos/{id}/componentes [put]
func (h *ArticuloHandler) SetComponentes(c *fiber.Ctx) error {
	var in dto.SetComponentesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetComponentes(c.Params("id"), in); err != nil {
		return mapStockError(c, err)
	}
	return c.JSON(fiber.Map{"message": "receta actualizada"})
}
