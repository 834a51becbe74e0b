package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vlamor75/vestime-api/internal/application/catalogo"
	"github.com/vlamor75/vestime-api/internal/application/dto"
)

// CatalogoHandler maneja las peticiones HTTP del catálogo normalizado.
type CatalogoHandler struct {
	svc *catalogo.Servicio
}

// NewCatalogoHandler construye el handler.
func NewCatalogoHandler(svc *catalogo.Servicio) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// Catalogo godoc
// @Summary      Catálogo normalizado de productos con guía de tallas
// @Tags         catalogo
// @Produce      json
// @Success      200  {object}  dto.CatalogoResponse
// @Router       /api/catalogo [get]
func (h *CatalogoHandler) Catalogo(c *fiber.Ctx) error {
	productos, tallas := h.svc.ObtenerCatalogoCompleto(c.UserContext())
	return c.JSON(dto.NewCatalogoResponse(productos, catalogo.TallasAgrupadas(tallas)))
}

// Tallas godoc
// @Summary      Guía de tallas agrupada por sexo
// @Tags         catalogo
// @Produce      json
// @Success      200  {object}  dto.TallasResponse
// @Router       /api/tallas [get]
func (h *CatalogoHandler) Tallas(c *fiber.Ctx) error {
	grupos := h.svc.ObtenerTallas(c.UserContext())
	return c.JSON(dto.TallasResponse{Grupos: grupos})
}
