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

	"github.com/jhoicas/compras-grid/internal/application/purchase"
	"github.com/jhoicas/compras-grid/internal/bootstrap"
	"github.com/jhoicas/compras-grid/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/compras-grid/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/compras-grid/internal/interfaces/http"
	"github.com/jhoicas/compras-grid/pkg/config"
	"github.com/jhoicas/compras-grid/pkg/logger"
)

const sessionIdleTimeout = 2 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	adapters, err := bootstrap.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar adaptadores")
	}
	defer adapters.Close()

	sessions := purchase.NewSessionManager(
		adapters.Catalog,
		adapters.Saver,
		adapters.Invoices,
		infrapdf.NewMarotoPDFGenerator(cfg.Grid.Currency),
		notify.Fanout{notify.NewLogNotifier(log)},
		purchase.Settings{
			DefaultUnit: cfg.Grid.DefaultUnit,
			Currency:    cfg.Grid.Currency,
			MinRows:     cfg.Grid.MinRows,
			LookupLimit: cfg.Grid.LookupLimit,
		},
	)

	// Sesiones abandonadas por el navegador
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := sessions.Sweep(sessionIdleTimeout); n > 0 {
					log.Info().Int("sessions", n).Msg("sesiones inactivas descartadas")
				}
			}
		}
	}()

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
		Title:    "Compras Grid API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "sessions": sessions.Len()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions:  sessions,
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
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
