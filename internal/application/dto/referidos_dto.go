package dto

import (
	"github.com/shopspring/decimal"

	"github.com/vlamor75/vestime-api/internal/application/referidos"
)

// SesionRequest carga de página a procesar por el sistema de referidos.
type SesionRequest struct {
	// URL la URL completa de la página, con o sin ?ref=.
	URL string `json:"url"`
}

// SesionResponse resultado de la pasada del sistema de referidos.
type SesionResponse struct {
	Estado Estado `json:"estado"`
	// WhatsApp número de contacto activo para todos los botones.
	WhatsApp string `json:"whatsapp"`
	// URLLimpia URL sin el parámetro ref, para history.replaceState.
	URLLimpia string `json:"urlLimpia"`
	// Nombre del referido activo, para el badge informativo; vacío si no hay.
	Nombre string `json:"nombre,omitempty"`
	// Codigo del referido activo; vacío si no hay.
	Codigo string `json:"codigo,omitempty"`
	// ComisionPorcentaje comisión del referido activo ya parseada (la hoja
	// trae "10%", "10,5"); ausente si no hay referido.
	ComisionPorcentaje *decimal.Decimal `json:"comisionPorcentaje,omitempty"`
	// ExpiraEn epoch millis de vigencia; cero si no hay referido.
	ExpiraEn int64 `json:"expiraEn,omitempty"`
}

// Estado del referido expuesto por la API.
type Estado string

// BotonesRequest botones de contacto a reenlazar para una página.
type BotonesRequest struct {
	URL     string            `json:"url"`
	Botones []referidos.Boton `json:"botones"`
}

// BotonesResponse sesión resultante y botones con destino reescrito.
type BotonesResponse struct {
	Sesion  SesionResponse    `json:"sesion"`
	Botones []referidos.Boton `json:"botones"`
}

// NewSesionResponse mapea una sesión de dominio a la respuesta HTTP.
func NewSesionResponse(ses referidos.Sesion) SesionResponse {
	resp := SesionResponse{
		Estado:    Estado(ses.Estado),
		WhatsApp:  ses.WhatsApp,
		URLLimpia: ses.URLLimpia,
		ExpiraEn:  ses.ExpiraEn,
	}
	if ses.Referido != nil {
		resp.Nombre = ses.Referido.Nombre
		resp.Codigo = ses.Referido.Codigo
		comision := ses.Referido.ComisionPorcentaje()
		resp.ComisionPorcentaje = &comision
	}
	return resp
}
