package http

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/vlamor75/vestime-api/internal/application/dto"
	"github.com/vlamor75/vestime-api/internal/domain/entity"
	"github.com/vlamor75/vestime-api/internal/domain/repository"
	"github.com/vlamor75/vestime-api/pkg/config"
	"github.com/vlamor75/vestime-api/pkg/logger"
)

// ProductosHandler proxy de solo lectura sobre el almacén de imágenes.
// Las credenciales viven en el servidor; el navegador solo ve el listado
// ya mapeado. Es el único punto del sistema con un fallo duro: sin
// credenciales no existe un default seguro.
type ProductosHandler struct {
	listador repository.ListadorImagenes // nil cuando faltan credenciales
	cfg      config.CloudinaryConfig
	log      *logger.Logger
}

// NewProductosHandler construye el proxy. listador puede ser nil si la
// configuración upstream está incompleta; el handler responde 500.
func NewProductosHandler(listador repository.ListadorImagenes, cfg config.CloudinaryConfig, log *logger.Logger) *ProductosHandler {
	return &ProductosHandler{listador: listador, cfg: cfg, log: log}
}

// Listar godoc
// @Summary      Listar imágenes del almacén por carpeta
// @Tags         productos
// @Produce      json
// @Success      200  {object}  map[string][]entity.ImagenAsset
// @Failure      500  {object}  dto.ProxyErrorResponse
// @Router       /api/products [get]
func (h *ProductosHandler) Listar(c *fiber.Ctx) error {
	if h.listador == nil {
		h.log.Error().Msg("proxy de imágenes sin credenciales de Cloudinary")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ProxyErrorResponse{Error: "Cloudinary configuration missing"})
	}

	// Las tres carpetas se listan en paralelo, cada una a su variable
	// propia; el payload se arma tras la barrera.
	var hombre, mujer, premium []entity.ImagenAsset

	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() (err error) {
		hombre, err = h.listador.ListarCarpeta(ctx, h.cfg.CarpetaHombre)
		return err
	})
	g.Go(func() (err error) {
		mujer, err = h.listador.ListarCarpeta(ctx, h.cfg.CarpetaMujer)
		return err
	})
	g.Go(func() (err error) {
		premium, err = h.listador.ListarCarpeta(ctx, h.cfg.CarpetaPremium)
		return err
	})

	if err := g.Wait(); err != nil {
		h.log.Error().Err(err).Msg("fallo listando el almacén de imágenes")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ProxyErrorResponse{Error: "Error loading products"})
	}

	return c.JSON(map[string][]entity.ImagenAsset{
		entity.CarpetaHombre:  noNil(hombre),
		entity.CarpetaMujer:   noNil(mujer),
		entity.CarpetaPremium: noNil(premium),
	})
}

// noNil garantiza listas JSON [] en vez de null para carpetas vacías.
func noNil(assets []entity.ImagenAsset) []entity.ImagenAsset {
	if assets == nil {
		return []entity.ImagenAsset{}
	}
	return assets
}
