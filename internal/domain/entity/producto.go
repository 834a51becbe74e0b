package entity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Categorías del catálogo. Derivan del sexo de la prenda, nunca se
// escriben a mano en las hojas.
const (
	CategoriaHombrePremium = "hombre-premium"
	CategoriaMujerBasic    = "mujer-basic"
)

// ImagenPlaceholder se usa cuando una referencia no tiene imagen ni en
// Cloudinary ni como archivo local. Garantiza que todo producto tenga imagen.
const ImagenPlaceholder = "https://via.placeholder.com/400x400/FF6B6B/FFFFFF?text=Vestime"

var titularEspanol = cases.Title(language.Spanish)

// Producto un ítem del inventario ya normalizado y unido con su imagen.
type Producto struct {
	Item        string `json:"item"`
	ID          string `json:"id"`
	Referencia  string `json:"referencia"`
	Sexo        string `json:"sexo"`
	Talla       string `json:"talla"`
	Estado      string `json:"estado"`
	Descripcion string `json:"descripcion"`
	Nombre      string `json:"nombre"`
	Categoria   string `json:"categoria"`
	Imagen      string `json:"imagen"`
	Destacado   bool   `json:"destacado"`
}

// CategoriaDesdeSexo deriva la categoría del catálogo. Función pura:
// cualquier sexo que contenga "hombre" va a la línea premium, el resto
// (Mujer, Unisex, vacío) a la línea basic.
func CategoriaDesdeSexo(sexo string) string {
	if strings.Contains(strings.ToLower(sexo), "hombre") {
		return CategoriaHombrePremium
	}
	return CategoriaMujerBasic
}

// EstaAgotado normaliza la columna estado; solo "agotado" (sin distinguir
// mayúsculas) desmarca el producto como destacado.
func EstaAgotado(estado string) bool {
	return strings.ToLower(strings.TrimSpace(estado)) == "agotado"
}

// NombreCategoria devuelve el nombre visible de una categoría
// ("hombre-premium" → "Hombre Premium").
func NombreCategoria(categoria string) string {
	return titularEspanol.String(strings.ReplaceAll(categoria, "-", " "))
}
