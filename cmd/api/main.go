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

	"github.com/vlamor75/vestime-api/internal/application/catalogo"
	"github.com/vlamor75/vestime-api/internal/application/referidos"
	"github.com/vlamor75/vestime-api/internal/domain/repository"
	infracloudinary "github.com/vlamor75/vestime-api/internal/infrastructure/cloudinary"
	"github.com/vlamor75/vestime-api/internal/infrastructure/sheets"
	"github.com/vlamor75/vestime-api/internal/infrastructure/storage"
	httpRouter "github.com/vlamor75/vestime-api/internal/interfaces/http"
	"github.com/vlamor75/vestime-api/pkg/config"
	"github.com/vlamor75/vestime-api/pkg/logger"
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

	// Fuente de tablas con cache TTL y fallback a último dato bueno
	tablas := sheets.NewClient(log.Componente("sheets"),
		sheets.WithBaseURL(cfg.Sheets.BaseURL),
		sheets.WithTTL(cfg.Sheets.CacheTTL),
	)

	// Índice de imágenes: una sola carga por proceso, degrada a vacío
	var indice repository.IndiceImagenes
	if cfg.Cloudinary.IndiceURL != "" {
		indice = infracloudinary.CargarIndice(nil, cfg.Cloudinary.IndiceURL, log.Componente("imagenes"))
	} else {
		log.Warn().Msg("sin URL del índice de imágenes, las referencias caerán a placeholder")
		indice = infracloudinary.NewIndiceVacio()
	}

	// Proxy del almacén: sin credenciales queda deshabilitado (500)
	var listador repository.ListadorImagenes
	if admin, err := infracloudinary.NewAdminClient(cfg.Cloudinary); err != nil {
		log.Warn().Err(err).Msg("proxy de imágenes deshabilitado")
	} else {
		listador = admin
	}

	slot, err := storage.NewFileStore(cfg.Referidos.RutaSlot)
	if err != nil {
		log.Fatal().Err(err).Msg("slot de referido")
	}

	fuenteReferidos := referidos.NewFuente(tablas, cfg.Sheets)
	sistema := referidos.NewSistema(fuenteReferidos, slot, cfg.Referidos, log.Componente("referidos"))
	catalogoSvc := catalogo.NewServicio(tablas, indice, cfg.Sheets, log.Componente("catalogo"))

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
		Title:    "Vestime API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogoSvc:   catalogoSvc,
		Sistema:       sistema,
		Listador:      listador,
		CloudinaryCfg: cfg.Cloudinary,
		Log:           log,
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
