package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/smartcalda-api/internal/application/inventory"
	"github.com/jhoicas/smartcalda-api/internal/application/order"
	"github.com/jhoicas/smartcalda-api/internal/application/parcela"
	"github.com/jhoicas/smartcalda-api/internal/application/ports"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
	"github.com/jhoicas/smartcalda-api/internal/infrastructure/memory"
	"github.com/jhoicas/smartcalda-api/internal/infrastructure/metrics"
	"github.com/jhoicas/smartcalda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/smartcalda-api/internal/infrastructure/supervisory"
	httpRouter "github.com/jhoicas/smartcalda-api/internal/interfaces/http"
	"github.com/jhoicas/smartcalda-api/pkg/config"
	"github.com/jhoicas/smartcalda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner ports.TxRunner
		repos    repository.Repositories
	)
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		txRunner = postgres.NewTxRunner(pool)
		repos = postgres.NewRepositories(pool)
	default:
		store := memory.NewStore()
		if cfg.Storage.SeedDemo {
			if err := seedDemo(ctx, store); err != nil {
				log.Fatal().Err(err).Msg("datos de ejemplo")
			}
			log.Info().Msg("catálogos y stock de ejemplo cargados")
		}
		txRunner = memory.NewTxRunner(store)
		repos = store.Repositories()
	}

	recorder := metrics.NewRecorder("smartcalda")

	var notifier ports.SupervisoryNotifier
	if cfg.Supervisory.URL != "" {
		notifier = supervisory.NewWebhookNotifier(cfg.Supervisory.URL, cfg.Supervisory.Timeout)
	} else {
		notifier = supervisory.NewLogNotifier(log)
	}

	ledgerUC := inventory.NewLedgerUseCase(txRunner, repos.Entries, repos.TierRecords, repos.Movements, recorder)
	replenishmentUC := inventory.NewReplenishmentUseCase(repos.Orders, repos.TierRecords, repos.Entries, repos.Reference)
	orderUC := order.NewOrderUseCase(txRunner, repos.Orders, repos.Parcelas)
	parcelaUC := parcela.NewParcelaUseCase(txRunner, repos.Parcelas, notifier, recorder, log)

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
		Title:    "SmartCalda API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(recorder.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:        ledgerUC,
		Replenishment: replenishmentUC,
		Orders:        orderUC,
		Parcelas:      parcelaUC,
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
