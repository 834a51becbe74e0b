package cloudinary

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vlamor75/vestime-api/internal/domain/entity"
	"github.com/vlamor75/vestime-api/pkg/logger"
)

// NombreArtefactoIndice archivo generado offline con el mapeo
// carpeta → assets del almacén de imágenes.
const NombreArtefactoIndice = "cloudinary-urls.json"

// Indice mapeo en memoria carpeta → assets, cargado una sola vez por
// proceso. La resolución de imágenes degrada a placeholder, nunca a error:
// un índice que no se pudo cargar responde "sin coincidencia" a todo.
type Indice struct {
	carpetas map[string][]entity.ImagenAsset
}

// NewIndiceVacio índice sin assets; toda búsqueda falla en blando.
func NewIndiceVacio() *Indice {
	carpetas := make(map[string][]entity.ImagenAsset, len(entity.CarpetasConocidas))
	for _, c := range entity.CarpetasConocidas {
		carpetas[c] = nil
	}
	return &Indice{carpetas: carpetas}
}

// NewIndice construye el índice desde un mapeo ya deserializado.
func NewIndice(carpetas map[string][]entity.ImagenAsset) *Indice {
	idx := NewIndiceVacio()
	for carpeta, assets := range carpetas {
		idx.carpetas[carpeta] = assets
	}
	return idx
}

// CargarIndice descarga el artefacto generado y lo deja en memoria.
// La URL lleva un parámetro derivado del reloj para anular caches
// intermedios. Ante cualquier fallo devuelve un índice vacío con warning;
// el caller nunca ve un error.
func CargarIndice(httpClient *http.Client, baseURL string, log *logger.Logger) *Indice {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	url := fmt.Sprintf("%s/%s?v=%d", baseURL, NombreArtefactoIndice, time.Now().UnixMilli())
	resp, err := httpClient.Get(url)
	if err != nil {
		log.Warn().Err(err).Msg("no se pudo descargar el índice de imágenes, usando índice vacío")
		return NewIndiceVacio()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("índice de imágenes no disponible, usando índice vacío")
		return NewIndiceVacio()
	}

	cuerpo, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn().Err(err).Msg("lectura del índice de imágenes falló, usando índice vacío")
		return NewIndiceVacio()
	}

	var carpetas map[string][]entity.ImagenAsset
	if err := json.Unmarshal(cuerpo, &carpetas); err != nil {
		log.Warn().Err(err).Msg("índice de imágenes corrupto, usando índice vacío")
		return NewIndiceVacio()
	}

	idx := NewIndice(carpetas)
	log.Info().
		Int("hombre", len(idx.carpetas[entity.CarpetaHombre])).
		Int("mujer", len(idx.carpetas[entity.CarpetaMujer])).
		Int("premium", len(idx.carpetas[entity.CarpetaPremium])).
		Msg("índice de imágenes cargado")
	return idx
}

// BuscarURL busca una referencia dentro de la carpeta que corresponde a la
// categoría y, si no aparece, en el bucket raíz. La comparación es por
// nombre normalizado: sin ruta, sin extensión, sin distinguir mayúsculas.
func (i *Indice) BuscarURL(referencia, categoria string) (string, bool) {
	ref := entity.NormalizarReferencia(referencia)
	if ref == "" {
		return "", false
	}

	carpeta := entity.CarpetaDesdeCategoria(categoria)
	if url, ok := buscarEnAssets(i.carpetas[carpeta], ref); ok {
		return url, true
	}
	return buscarEnAssets(i.carpetas[entity.CarpetaRoot], ref)
}

func buscarEnAssets(assets []entity.ImagenAsset, refNormalizada string) (string, bool) {
	for _, a := range assets {
		if entity.NormalizarReferencia(a.Original) == refNormalizada {
			return a.Cloudinary, true
		}
	}
	return "", false
}
