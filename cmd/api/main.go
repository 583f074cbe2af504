package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appstock "github.com/nmorales/barpos-api/internal/application/stock"
	"github.com/nmorales/barpos-api/internal/application/usecase"
	"github.com/nmorales/barpos-api/internal/infrastructure/postgres"
	httpRouter "github.com/nmorales/barpos-api/internal/interfaces/http"
	"github.com/nmorales/barpos-api/pkg/config"
	"github.com/nmorales/barpos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	articuloRepo := postgres.NewArticuloRepository(pool)
	componenteRepo := postgres.NewComboComponenteRepository(pool)
	movimientoRepo := postgres.NewMovimientoStockRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// El hook de consumo corre fuera de la tx de stock: sus fallos no tocan la venta.
	consumoHook := postgres.NewConsumoEquivalenciaHook(pool)

	disponibilidadUC := appstock.NewDisponibilidadUseCase(articuloRepo, componenteRepo)
	descuentoUC := appstock.NewDescuentoStockUseCase(txRunner, articuloRepo, disponibilidadUC, consumoHook)
	resyncUC := appstock.NewResyncUseCase(txRunner, articuloRepo)
	articuloUC := usecase.NewArticuloUseCase(articuloRepo, componenteRepo)
	movimientoUC := usecase.NewMovimientoUseCase(movimientoRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "BarPOS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ArticuloUC:     articuloUC,
		MovimientoUC:   movimientoUC,
		Disponibilidad: disponibilidadUC,
		Descuento:      descuentoUC,
		Resync:         resyncUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
