package entity

import (
	"path"
	"regexp"
	"strings"
)

// Carpetas del almacén de imágenes. "root" agrupa los assets sueltos
// fuera de toda carpeta.
const (
	CarpetaHombre  = "hombre"
	CarpetaMujer   = "mujer"
	CarpetaPremium = "premium"
	CarpetaRoot    = "root"
)

// Carpetas conocidas del índice, en orden estable de serialización.
var CarpetasConocidas = []string{CarpetaHombre, CarpetaMujer, CarpetaPremium, CarpetaRoot}

// ImagenAsset una imagen alojada en el almacén externo.
type ImagenAsset struct {
	// Original nombre de archivo almacenado (último segmento del public ID).
	Original string `json:"original"`
	// Cloudinary URL pública de entrega.
	Cloudinary string `json:"cloudinary"`
	// PublicID identificador completo en el almacén, carpeta incluida.
	PublicID string `json:"publicId"`
}

var extImagen = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp)$`)

// NormalizarReferencia reduce un nombre de asset o una referencia a su
// forma canónica de comparación: último segmento de ruta, sin extensión
// de imagen reconocida, en minúsculas. Es la única función de
// normalización; tanto referencias sueltas ("HB1") como public IDs con
// carpeta ("vestime/hombre/hb1.jpg") terminan en "hb1".
func NormalizarReferencia(nombre string) string {
	base := path.Base(strings.TrimSpace(nombre))
	base = extImagen.ReplaceAllString(base, "")
	return strings.ToLower(base)
}

// CarpetaDesdeCategoria traduce una categoría del catálogo a la carpeta
// del almacén donde viven sus imágenes.
func CarpetaDesdeCategoria(categoria string) string {
	switch categoria {
	case CategoriaHombrePremium:
		return CarpetaPremium
	case CategoriaMujerBasic:
		return CarpetaMujer
	default:
		return CarpetaHombre
	}
}
