package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vlamor75/vestime-api/internal/application/dto"
	"github.com/vlamor75/vestime-api/internal/application/referidos"
)

// ReferidosHandler maneja la resolución de sesión de referidos y el
// reenlazado de botones de contacto.
type ReferidosHandler struct {
	sistema *referidos.Sistema
}

// NewReferidosHandler construye el handler.
func NewReferidosHandler(sistema *referidos.Sistema) *ReferidosHandler {
	return &ReferidosHandler{sistema: sistema}
}

// Sesion godoc
// @Summary      Procesar una carga de página (detección y resolución de referido)
// @Tags         referidos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SesionRequest  true  "URL de la página"
// @Success      200   {object}  dto.SesionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/referidos/sesion [post]
func (h *ReferidosHandler) Sesion(c *fiber.Ctx) error {
	var in dto.SesionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "url es requerida"})
	}

	ses := h.sistema.Inicializar(c.UserContext(), in.URL)
	return c.JSON(dto.NewSesionResponse(ses))
}

// Botones godoc
// @Summary      Reenlazar botones de WhatsApp con el número de contacto activo
// @Tags         referidos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BotonesRequest  true  "URL de la página y botones"
// @Success      200   {object}  dto.BotonesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/referidos/botones [post]
func (h *ReferidosHandler) Botones(c *fiber.Ctx) error {
	var in dto.BotonesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "url es requerida"})
	}

	ses := h.sistema.Inicializar(c.UserContext(), in.URL)
	return c.JSON(dto.BotonesResponse{
		Sesion:  dto.NewSesionResponse(ses),
		Botones: h.sistema.ActualizarBotonesWhatsApp(ses, in.Botones),
	})
}
