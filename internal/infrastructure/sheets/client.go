package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/vlamor75/vestime-api/internal/domain"
	"github.com/vlamor75/vestime-api/internal/domain/entity"
	"github.com/vlamor75/vestime-api/pkg/logger"
)

// BaseURLDefault endpoint público de exportación tabular de Google Sheets.
const BaseURLDefault = "https://docs.google.com/spreadsheets/d"

// Client descarga hojas publicadas vía el endpoint gviz y las cachea por
// (hoja, pestaña). Dentro de la ventana de frescura un hit de cache evita
// la red por completo; ante fallo de red o de parseo se sirve la última
// tabla buena aunque esté vencida (modo degradado, con warning).
type Client struct {
	httpClient *http.Client
	baseURL    string
	ttl        time.Duration
	log        *logger.Logger

	mu    sync.RWMutex
	cache map[string]entradaCache
}

type entradaCache struct {
	tabla    entity.Tabla
	obtenida time.Time
}

// Option ajusta el cliente al construirlo.
type Option func(*Client)

// WithBaseURL cambia el host del endpoint gviz (tests).
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(base, "/") }
}

// WithTTL cambia la ventana de frescura del cache.
func WithTTL(ttl time.Duration) Option {
	return func(c *Client) { c.ttl = ttl }
}

// WithHTTPClient inyecta el *http.Client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient construye el cliente de hojas. TTL por defecto: 5 minutos.
func NewClient(log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    BaseURLDefault,
		ttl:        5 * time.Minute,
		log:        log,
		cache:      make(map[string]entradaCache),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// claveCache llave de cache por hoja y pestaña, en minúsculas.
func claveCache(sheetID, nombre string) string {
	return strings.ToLower(sheetID + "::" + nombre)
}

// urlHoja construye la URL gviz de una pestaña.
func (c *Client) urlHoja(sheetID, nombre string) string {
	return fmt.Sprintf("%s/%s/gviz/tq?tqx=out:json&sheet=%s", c.baseURL, sheetID, url.QueryEscape(nombre))
}

// ObtenerTabla devuelve la tabla de la pestaña indicada. Orden de
// resolución: cache fresco, red, cache vencido, tabla vacía + error.
func (c *Client) ObtenerTabla(ctx context.Context, sheetID, nombre string) (entity.Tabla, error) {
	clave := claveCache(sheetID, nombre)

	c.mu.RLock()
	entrada, existe := c.cache[clave]
	c.mu.RUnlock()

	if existe && time.Since(entrada.obtenida) < c.ttl {
		c.log.Debug().Str("hoja", nombre).Msg("tabla servida desde cache")
		return entrada.tabla, nil
	}

	tabla, err := c.descargar(ctx, sheetID, nombre)
	if err != nil {
		if existe {
			// Dato degradado pero servible: el caller no ve el error.
			c.log.Warn().Err(err).Str("hoja", nombre).Msg("fallo de descarga, usando cache vencido")
			return entrada.tabla, nil
		}
		c.log.Error().Err(err).Str("hoja", nombre).Msg("fallo de descarga sin cache previo")
		return entity.Tabla{}, err
	}

	c.mu.Lock()
	c.cache[clave] = entradaCache{tabla: tabla, obtenida: time.Now()}
	c.mu.Unlock()

	return tabla, nil
}

func (c *Client) descargar(ctx context.Context, sheetID, nombre string) (entity.Tabla, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.urlHoja(sheetID, nombre), nil)
	if err != nil {
		return entity.Tabla{}, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entity.Tabla{}, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.Tabla{}, fmt.Errorf("%w: status %d", domain.ErrFetch, resp.StatusCode)
	}

	cuerpo, err := io.ReadAll(resp.Body)
	if err != nil {
		return entity.Tabla{}, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}

	return parsearRespuestaGviz(cuerpo)
}

// LimpiarCache descarta todas las entradas. Solo para debugging y tests.
func (c *Client) LimpiarCache() {
	c.mu.Lock()
	c.cache = make(map[string]entradaCache)
	c.mu.Unlock()
}
