package http

import (
	"github.com/gofiber/fiber/v2"
	appstock "github.com/nmorales/barpos-api/internal/application/stock"
	"github.com/nmorales/barpos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ArticuloUC     *usecase.ArticuloUseCase
	MovimientoUC   *usecase.MovimientoUseCase
	Disponibilidad *appstock.DisponibilidadUseCase
	Descuento      *appstock.DescuentoStockUseCase
	Resync         *appstock.ResyncUseCase
	JWTSecret      string
}

// Router registra las rutas de la API. Todo el motor de stock va detrás del
// Bearer token: solo la caja autenticada mueve stock.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	stockHandler := NewStockHandler(deps.Disponibilidad, deps.Descuento, deps.Resync, deps.MovimientoUC)
	articuloHandler := NewArticuloHandler(deps.ArticuloUC)

	articulos := api.Group("/articulos")
	articulos.Post("/", articuloHandler.Create)
	articulos.Get("/", articuloHandler.List)
	articulos.Get("/:id", articuloHandler.GetByID)
	articulos.Put("/:id", articuloHandler.Update)
	articulos.Put("/:id/componentes", articuloHandler.SetComponentes)
	articulos.Get("/:id/disponibilidad", stockHandler.Disponibilidad)
	articulos.Get("/:id/movimientos", stockHandler.MovimientosPorArticulo)

	stockGroup := api.Group("/stock")
	stockGroup.Post("/descuento", stockHandler.Descuento)
	stockGroup.Post("/reposicion", stockHandler.Reposicion)

	combos := api.Group("/combos")
	combos.Post("/resync", stockHandler.ResyncTodos)
	combos.Post("/:id/resync", stockHandler.SyncCombo)

	pedidos := api.Group("/pedidos")
	pedidos.Get("/:id/movimientos", stockHandler.MovimientosPorPedido)
}
