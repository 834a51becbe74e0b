package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlamor75/vestime-api/internal/application/catalogo"
	"github.com/vlamor75/vestime-api/internal/application/referidos"
	"github.com/vlamor75/vestime-api/internal/domain/entity"
	"github.com/vlamor75/vestime-api/internal/infrastructure/cloudinary"
	"github.com/vlamor75/vestime-api/internal/infrastructure/storage"
	httpiface "github.com/vlamor75/vestime-api/internal/interfaces/http"
	"github.com/vlamor75/vestime-api/pkg/config"
	"github.com/vlamor75/vestime-api/pkg/logger"
)

// fuenteTablasFake entrega una tabla por nombre de pestaña.
type fuenteTablasFake struct {
	tablas map[string]entity.Tabla
}

func (f *fuenteTablasFake) ObtenerTabla(_ context.Context, _, nombre string) (entity.Tabla, error) {
	return f.tablas[nombre], nil
}

// listadorFake lista assets por prefijo o falla con err.
type listadorFake struct {
	carpetas map[string][]entity.ImagenAsset
	err      error
}

func (l *listadorFake) ListarCarpeta(_ context.Context, prefijo string) ([]entity.ImagenAsset, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.carpetas[prefijo], nil
}

func tablaDe(filas ...[]string) entity.Tabla {
	t := entity.Tabla{}
	for _, f := range filas {
		celdas := make([]entity.Celda, len(f))
		for i, v := range f {
			celdas[i] = entity.Celda{Valor: v}
		}
		t.Filas = append(t.Filas, entity.Fila{Celdas: celdas})
	}
	return t
}

type appDeps struct {
	listador *listadorFake
}

func nuevaApp(t *testing.T, deps appDeps) *fiber.App {
	t.Helper()

	sheetsCfg := config.SheetsConfig{
		InventarioID:     "hoja-inventario",
		InventarioNombre: "inventario",
		TallasNombre:     "tallas",
		ReferidosID:      "hoja-referidos",
		ReferidosNombre:  "Referidos",
	}
	tablas := &fuenteTablasFake{tablas: map[string]entity.Tabla{
		"inventario": tablaDe(
			[]string{"item", "referencia", "sexo", "talla", "estado", "descripcion"},
			[]string{"1", "HB1", "Hombre", "M", "Único", "Camiseta negra"},
		),
		"tallas": tablaDe(
			[]string{"sexo", "talla", "hombro", "pecho", "manga", "largo"},
			[]string{"Hombre", "M", "47", "100", "20", "70"},
		),
		"Referidos": tablaDe(
			[]string{"item", "codigo", "whatsapp", "nombre", "comision", "activo", "email", "direccion"},
			[]string{"1", "maria", "573009998877", "María", "10%", "SI", "", ""},
		),
	}}

	log := logger.Nop()
	svc := catalogo.NewServicio(tablas, cloudinary.NewIndiceVacio(), sheetsCfg, log).
		WithExisteLocal(catalogo.SinImagenesLocales)

	refCfg := config.ReferidosConfig{
		WhatsAppPrincipal: "573117167526",
		MensajeDefault:    "Hola! Me interesa información sobre sus camisetas",
		ExpiracionDias:    7,
	}
	sistema := referidos.NewSistema(referidos.NewFuente(tablas, sheetsCfg), storage.NewMemoryStore(), refCfg, log)

	app := fiber.New()
	routerDeps := httpiface.RouterDeps{
		CatalogoSvc: svc,
		Sistema:     sistema,
		CloudinaryCfg: config.CloudinaryConfig{
			CarpetaHombre:  entity.CarpetaHombre,
			CarpetaMujer:   entity.CarpetaMujer,
			CarpetaPremium: entity.CarpetaPremium,
		},
		Log: log,
	}
	// La interfaz queda nil de verdad cuando no hay listador, igual que
	// en el arranque sin credenciales.
	if deps.listador != nil {
		routerDeps.Listador = deps.listador
	}
	httpiface.Router(app, routerDeps)
	return app
}

func hacer(t *testing.T, app *fiber.App, req *nethttp.Request) (*nethttp.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	cuerpo, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, cuerpo
}

// ──────────────────────────────────────────────────────────────────────────────
// Proxy de imágenes
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_SinCredencialesDevuelve500ConContratoLegado(t *testing.T) {
	app := nuevaApp(t, appDeps{})

	resp, cuerpo := hacer(t, app, httptest.NewRequest(nethttp.MethodGet, "/api/products", nil))

	assert.Equal(t, nethttp.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error": "Cloudinary configuration missing"}`, string(cuerpo))
}

func TestProducts_ListaLasTresCarpetas(t *testing.T) {
	app := nuevaApp(t, appDeps{listador: &listadorFake{carpetas: map[string][]entity.ImagenAsset{
		entity.CarpetaHombre: {{Original: "hb1", Cloudinary: "https://res.cloudinary.com/demo/hb1.webp", PublicID: "vestime/hombre/hb1"}},
	}}})

	resp, cuerpo := hacer(t, app, httptest.NewRequest(nethttp.MethodGet, "/api/products", nil))
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var payload map[string][]entity.ImagenAsset
	require.NoError(t, json.Unmarshal(cuerpo, &payload))

	require.Contains(t, payload, entity.CarpetaHombre)
	require.Contains(t, payload, entity.CarpetaMujer)
	require.Contains(t, payload, entity.CarpetaPremium)
	require.Len(t, payload[entity.CarpetaHombre], 1)
	assert.Equal(t, "hb1", payload[entity.CarpetaHombre][0].Original)
	assert.NotNil(t, payload[entity.CarpetaMujer], "las carpetas vacías serializan como lista, no null")
	assert.Contains(t, string(cuerpo), `"mujer":[]`)
}

func TestProducts_FalloUpstreamDevuelve500ConContratoLegado(t *testing.T) {
	app := nuevaApp(t, appDeps{listador: &listadorFake{err: errors.New("admin api caída")}})

	resp, cuerpo := hacer(t, app, httptest.NewRequest(nethttp.MethodGet, "/api/products", nil))

	assert.Equal(t, nethttp.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error": "Error loading products"}`, string(cuerpo))
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo y tallas
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogo_DevuelveProductosNormalizados(t *testing.T) {
	app := nuevaApp(t, appDeps{})

	resp, cuerpo := hacer(t, app, httptest.NewRequest(nethttp.MethodGet, "/api/catalogo", nil))
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var payload struct {
		Productos []map[string]any          `json:"productos"`
		Total     int                       `json:"total"`
		Tallas    map[string][]entity.Talla `json:"tallas"`
	}
	require.NoError(t, json.Unmarshal(cuerpo, &payload))

	assert.Equal(t, 1, payload.Total)
	require.Len(t, payload.Productos, 1)
	assert.Equal(t, "HB1", payload.Productos[0]["referencia"])
	assert.Equal(t, entity.CategoriaHombrePremium, payload.Productos[0]["categoria"])
	assert.Equal(t, entity.ImagenPlaceholder, payload.Productos[0]["imagen"])

	// Ambas pestañas llegan en la misma respuesta, de la misma pasada
	require.Contains(t, payload.Tallas, "hombre")
	require.Len(t, payload.Tallas["hombre"], 1)
	assert.Equal(t, "M", payload.Tallas["hombre"][0].Talla)
}

func TestTallas_AgrupadasPorSexo(t *testing.T) {
	app := nuevaApp(t, appDeps{})

	resp, cuerpo := hacer(t, app, httptest.NewRequest(nethttp.MethodGet, "/api/tallas", nil))
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var payload struct {
		Grupos map[string][]entity.Talla `json:"grupos"`
	}
	require.NoError(t, json.Unmarshal(cuerpo, &payload))

	require.Contains(t, payload.Grupos, "hombre")
	require.Len(t, payload.Grupos["hombre"], 1)
	assert.Equal(t, "M", payload.Grupos["hombre"][0].Talla)
}

// ──────────────────────────────────────────────────────────────────────────────
// Referidos
// ──────────────────────────────────────────────────────────────────────────────

func peticionJSON(metodo, ruta, cuerpo string) *nethttp.Request {
	req := httptest.NewRequest(metodo, ruta, bytes.NewBufferString(cuerpo))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSesion_SinURLDevuelve400(t *testing.T) {
	app := nuevaApp(t, appDeps{})

	resp, cuerpo := hacer(t, app, peticionJSON(nethttp.MethodPost, "/api/referidos/sesion", `{}`))

	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(cuerpo), "VALIDATION")
}

func TestSesion_ResuelveReferidoDeLaURL(t *testing.T) {
	app := nuevaApp(t, appDeps{})

	resp, cuerpo := hacer(t, app, peticionJSON(nethttp.MethodPost, "/api/referidos/sesion",
		`{"url": "https://vestime.co/catalogo?ref=MARIA"}`))
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var payload struct {
		Estado    string           `json:"estado"`
		WhatsApp  string           `json:"whatsapp"`
		URLLimpia string           `json:"urlLimpia"`
		Codigo    string           `json:"codigo"`
		Comision  *decimal.Decimal `json:"comisionPorcentaje"`
		ExpiraEn  int64            `json:"expiraEn"`
	}
	require.NoError(t, json.Unmarshal(cuerpo, &payload))

	assert.Equal(t, "activo", payload.Estado)
	assert.Equal(t, "573009998877", payload.WhatsApp)
	assert.Equal(t, "maria", payload.Codigo)
	require.NotNil(t, payload.Comision, "la sesión activa expone la comisión parseada")
	assert.True(t, payload.Comision.Equal(decimal.NewFromInt(10)), "la hoja trae 10%% y el payload el número limpio")
	assert.NotContains(t, payload.URLLimpia, "ref=")
	assert.Positive(t, payload.ExpiraEn)
}

func TestSesion_SinReferidoUsaElPrincipal(t *testing.T) {
	app := nuevaApp(t, appDeps{})

	resp, cuerpo := hacer(t, app, peticionJSON(nethttp.MethodPost, "/api/referidos/sesion",
		`{"url": "https://vestime.co/catalogo"}`))
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var payload struct {
		Estado   string `json:"estado"`
		WhatsApp string `json:"whatsapp"`
	}
	require.NoError(t, json.Unmarshal(cuerpo, &payload))

	assert.Equal(t, "sin_referido", payload.Estado)
	assert.Equal(t, "573117167526", payload.WhatsApp)
	assert.NotContains(t, string(cuerpo), "comisionPorcentaje", "sin referido no hay comisión que exponer")
}

func TestBotones_ReescribeElDestinoConElNumeroActivo(t *testing.T) {
	app := nuevaApp(t, appDeps{})

	resp, cuerpo := hacer(t, app, peticionJSON(nethttp.MethodPost, "/api/referidos/botones",
		`{"url": "https://vestime.co/catalogo?ref=maria", "botones": [{"id": "hero", "mensaje": "Quiero la HB1"}, {"id": "footer"}]}`))
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var payload struct {
		Sesion struct {
			Estado string `json:"estado"`
		} `json:"sesion"`
		Botones []referidos.Boton `json:"botones"`
	}
	require.NoError(t, json.Unmarshal(cuerpo, &payload))

	assert.Equal(t, "activo", payload.Sesion.Estado)
	require.Len(t, payload.Botones, 2)
	assert.Contains(t, payload.Botones[0].URL, "wa.me/573009998877")
	assert.Contains(t, payload.Botones[0].URL, "text=Quiero+la+HB1")
	assert.Contains(t, payload.Botones[1].URL, "wa.me/573009998877", "el botón sin mensaje también apunta al referido")
}
