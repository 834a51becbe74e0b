package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vlamor75/vestime-api/internal/application/catalogo"
	"github.com/vlamor75/vestime-api/internal/application/referidos"
	"github.com/vlamor75/vestime-api/internal/domain/repository"
	"github.com/vlamor75/vestime-api/pkg/config"
	"github.com/vlamor75/vestime-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogoSvc   *catalogo.Servicio
	Sistema       *referidos.Sistema
	Listador      repository.ListadorImagenes // nil si faltan credenciales
	CloudinaryCfg config.CloudinaryConfig
	Log           *logger.Logger
}

// Router registra las rutas de la API. Toda la API es pública: el
// catálogo es de solo lectura y no hay cuentas de usuario.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Proxy del almacén de imágenes (contrato legado {error} en fallos)
	productosHandler := NewProductosHandler(deps.Listador, deps.CloudinaryCfg, deps.Log)
	api.Get("/products", productosHandler.Listar)

	// Catálogo normalizado y guía de tallas
	catalogoHandler := NewCatalogoHandler(deps.CatalogoSvc)
	api.Get("/catalogo", catalogoHandler.Catalogo)
	api.Get("/tallas", catalogoHandler.Tallas)

	// Sistema de referidos
	referidosGroup := api.Group("/referidos")
	referidosHandler := NewReferidosHandler(deps.Sistema)
	referidosGroup.Post("/sesion", referidosHandler.Sesion)
	referidosGroup.Post("/botones", referidosHandler.Botones)
}
