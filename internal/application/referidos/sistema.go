package referidos

import (
	"context"
	"net/url"
	"time"

	"github.com/vlamor75/vestime-api/internal/domain/entity"
	"github.com/vlamor75/vestime-api/internal/domain/repository"
	"github.com/vlamor75/vestime-api/pkg/config"
	"github.com/vlamor75/vestime-api/pkg/logger"
)

// Estado del sistema de referidos tras procesar una carga de página.
type Estado string

const (
	// EstadoSinReferido no hay referido: se usa el WhatsApp principal.
	EstadoSinReferido Estado = "sin_referido"
	// EstadoActivo hay un referido vigente, resuelto o recuperado del slot.
	EstadoActivo Estado = "activo"
)

// Sesion resultado de una pasada del sistema sobre una URL de página.
type Sesion struct {
	Estado   Estado
	Referido *entity.Referido
	// WhatsApp número de contacto activo: el del referido o el principal.
	WhatsApp string
	// ExpiraEn epoch millis de vigencia del referido activo; cero si no hay.
	ExpiraEn int64
	// URLLimpia la URL de la página sin el parámetro ref, para
	// reemplazar la barra de direcciones sin navegar.
	URLLimpia string
}

// Boton un elemento de contacto de la página: entra con su mensaje
// propio (opcional) y sale con la URL de destino reescrita.
type Boton struct {
	ID      string `json:"id"`
	Mensaje string `json:"mensaje,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Sistema máquina de estados del referido: detectar → resolver →
// persistir → expirar → aplicar. Una sola pasada por carga de página, el
// slot se lee a lo sumo una vez y solo este componente lo escribe.
type Sistema struct {
	buscador repository.BuscadorReferidos
	slot     repository.AlmacenReferido
	cfg      config.ReferidosConfig
	log      *logger.Logger
	ahora    func() time.Time
}

// NewSistema construye el sistema de referidos.
func NewSistema(buscador repository.BuscadorReferidos, slot repository.AlmacenReferido, cfg config.ReferidosConfig, log *logger.Logger) *Sistema {
	return &Sistema{
		buscador: buscador,
		slot:     slot,
		cfg:      cfg,
		log:      log,
		ahora:    time.Now,
	}
}

// WithReloj inyecta el reloj (tests de expiración).
func (s *Sistema) WithReloj(ahora func() time.Time) *Sistema {
	s.ahora = ahora
	return s
}

// Inicializar procesa una carga de página:
//
//  1. Si la URL trae ?ref=, intenta resolver el código contra la hoja.
//     Resuelto: se activa, se persiste con expiración y se limpia la URL.
//     No resuelto o fallo de red: warning y se continúa con el paso 2.
//     Un enlace con código inválido nunca revierte un referido ya
//     guardado y vigente.
//  2. Sin parámetro: se lee el slot. Vigente activa; expirado se elimina.
//  3. El estado resultante fija el número de contacto activo.
func (s *Sistema) Inicializar(ctx context.Context, paginaURL string) Sesion {
	urlLimpia, codigo := extraerRef(paginaURL)

	if codigo != "" {
		if sesion, ok := s.resolverCodigo(ctx, codigo, urlLimpia); ok {
			return sesion
		}
	}

	return s.desdeSlot(paginaURL)
}

// resolverCodigo intenta activar el código de la URL. El segundo retorno
// indica si la resolución produjo una sesión; en falso el caller cae al
// slot persistido.
func (s *Sistema) resolverCodigo(ctx context.Context, codigo, urlLimpia string) (Sesion, bool) {
	referido, err := s.buscador.BuscarReferido(ctx, codigo)
	if err != nil {
		s.log.Warn().Err(err).Str("codigo", codigo).Msg("resolución de referido falló, se ignora el parámetro")
		return Sesion{}, false
	}
	if referido == nil {
		s.log.Warn().Str("codigo", codigo).Msg("referido no encontrado, usando WhatsApp principal")
		return Sesion{}, false
	}

	expiraEn := s.ahora().Add(time.Duration(s.cfg.ExpiracionDias) * 24 * time.Hour).UnixMilli()
	guardado := entity.ReferidoGuardado{Referido: *referido, ExpiraEn: expiraEn}
	if err := s.slot.Guardar(guardado); err != nil {
		// La sesión sigue activa aunque no se haya podido persistir.
		s.log.Error().Err(err).Str("codigo", codigo).Msg("no se pudo persistir el referido")
	}

	s.log.Info().Str("codigo", referido.Codigo).Str("nombre", referido.Nombre).Msg("referido activado desde URL")
	return Sesion{
		Estado:    EstadoActivo,
		Referido:  referido,
		WhatsApp:  referido.WhatsApp,
		ExpiraEn:  expiraEn,
		URLLimpia: urlLimpia,
	}, true
}

// desdeSlot produce la sesión a partir del slot persistido. Un registro
// expirado se elimina físicamente y colapsa a sin-referido.
func (s *Sistema) desdeSlot(paginaURL string) Sesion {
	sinReferido := Sesion{
		Estado:    EstadoSinReferido,
		WhatsApp:  s.cfg.WhatsAppPrincipal,
		URLLimpia: paginaURL,
	}

	guardado, err := s.slot.Obtener()
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudo leer el slot de referido")
		return sinReferido
	}
	if guardado == nil {
		return sinReferido
	}

	if !guardado.Vigente(s.ahora()) {
		s.log.Info().Str("codigo", guardado.Codigo).Msg("referido expirado, limpiando slot")
		if err := s.slot.Eliminar(); err != nil {
			s.log.Warn().Err(err).Msg("no se pudo limpiar el slot expirado")
		}
		return sinReferido
	}

	ref := guardado.Referido
	return Sesion{
		Estado:    EstadoActivo,
		Referido:  &ref,
		WhatsApp:  ref.WhatsApp,
		ExpiraEn:  guardado.ExpiraEn,
		URLLimpia: paginaURL,
	}
}

// ActualizarBotonesWhatsApp reescribe el destino de cada botón de
// contacto con el número activo de la sesión. Idempotente: la misma
// sesión y los mismos botones producen siempre las mismas URLs.
func (s *Sistema) ActualizarBotonesWhatsApp(ses Sesion, botones []Boton) []Boton {
	actualizados := make([]Boton, len(botones))
	for i, b := range botones {
		mensaje := b.Mensaje
		if mensaje == "" {
			mensaje = s.cfg.MensajeDefault
		}
		b.URL = GenerarURLWhatsApp(ses.WhatsApp, mensaje)
		actualizados[i] = b
	}
	return actualizados
}

// GenerarURLWhatsApp arma el enlace de contacto con el mensaje escapado.
func GenerarURLWhatsApp(numero, mensaje string) string {
	q := url.Values{}
	q.Set("text", mensaje)
	return "https://wa.me/" + numero + "?" + q.Encode()
}

// extraerRef separa el parámetro ref de la URL de página. Devuelve la URL
// sin el parámetro (misma forma, sin recargar) y el código encontrado, o
// "" si no venía.
func extraerRef(paginaURL string) (string, string) {
	u, err := url.Parse(paginaURL)
	if err != nil {
		return paginaURL, ""
	}

	q := u.Query()
	codigo := q.Get("ref")
	if codigo == "" {
		return paginaURL, ""
	}

	q.Del("ref")
	u.RawQuery = q.Encode()
	return u.String(), codigo
}
