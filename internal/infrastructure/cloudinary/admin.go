package cloudinary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"golang.org/x/time/rate"

	"github.com/vlamor75/vestime-api/internal/domain"
	"github.com/vlamor75/vestime-api/internal/domain/entity"
	"github.com/vlamor75/vestime-api/pkg/config"
)

// tamPagina máximo de resultados por página que acepta la Admin API.
const tamPagina = 500

// AdminClient cliente de la Admin API de Cloudinary (listado de recursos).
// Las credenciales viven solo en el servidor; el navegador consume el
// resultado ya mapeado vía el proxy /api/products.
type AdminClient struct {
	httpClient *http.Client
	baseURL    string
	cfg        config.CloudinaryConfig
	limiter    *rate.Limiter
}

// NewAdminClient construye el cliente. Devuelve ErrConfig si faltan
// credenciales: es el único fallo duro del sistema, no existe un default
// seguro sin ellas.
func NewAdminClient(cfg config.CloudinaryConfig) (*AdminClient, error) {
	if !cfg.Completa() {
		return nil, domain.ErrConfig
	}
	// La Admin API permite 500 llamadas por hora: ~0.139/seg con ráfaga
	// corta para las páginas consecutivas de un mismo listado.
	return &AdminClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://api.cloudinary.com/v1_1",
		cfg:        cfg,
		limiter:    rate.NewLimiter(rate.Limit(0.139), 10),
	}, nil
}

// WithBaseURL apunta el cliente a otro host (tests).
func (c *AdminClient) WithBaseURL(base string) *AdminClient {
	c.baseURL = base
	return c
}

type recursoAdmin struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
}

type paginaAdmin struct {
	Resources  []recursoAdmin `json:"resources"`
	NextCursor string         `json:"next_cursor"`
}

// ListarCarpeta lista todos los assets de imagen bajo un prefijo,
// siguiendo el cursor de paginación hasta agotarlo.
func (c *AdminClient) ListarCarpeta(ctx context.Context, prefijo string) ([]entity.ImagenAsset, error) {
	return c.listar(ctx, prefijo)
}

// ListarTodo lista los assets de imagen de toda la cuenta (sin prefijo).
// Lo usa el generador de catálogo para el barrido del bucket raíz.
func (c *AdminClient) ListarTodo(ctx context.Context) ([]entity.ImagenAsset, error) {
	return c.listar(ctx, "")
}

func (c *AdminClient) listar(ctx context.Context, prefijo string) ([]entity.ImagenAsset, error) {
	var assets []entity.ImagenAsset
	cursor := ""

	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrFetch, err)
		}

		pagina, err := c.pedirPagina(ctx, prefijo, cursor)
		if err != nil {
			return nil, err
		}

		for _, r := range pagina.Resources {
			assets = append(assets, entity.ImagenAsset{
				Original:   path.Base(r.PublicID),
				Cloudinary: r.SecureURL,
				PublicID:   r.PublicID,
			})
		}

		cursor = pagina.NextCursor
		if cursor == "" {
			return assets, nil
		}
	}
}

func (c *AdminClient) pedirPagina(ctx context.Context, prefijo, cursor string) (*paginaAdmin, error) {
	params := url.Values{}
	params.Set("type", "upload")
	params.Set("max_results", fmt.Sprint(tamPagina))
	if prefijo != "" {
		params.Set("prefix", prefijo)
	}
	if cursor != "" {
		params.Set("next_cursor", cursor)
	}

	endpoint := fmt.Sprintf("%s/%s/resources/image/upload?%s", c.baseURL, c.cfg.CloudName, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	req.SetBasicAuth(c.cfg.APIKey, c.cfg.APISecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		cuerpo, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: admin api status %d: %s", domain.ErrFetch, resp.StatusCode, cuerpo)
	}

	var pagina paginaAdmin
	if err := json.NewDecoder(resp.Body).Decode(&pagina); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	return &pagina, nil
}
