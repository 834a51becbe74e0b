package dto

import "github.com/vlamor75/vestime-api/internal/domain/entity"

// CatalogoResponse catálogo normalizado listo para render, con la guía de
// tallas de la misma pasada (ambas pestañas se descargan en paralelo y se
// normalizan juntas).
type CatalogoResponse struct {
	Productos []ProductoResponse        `json:"productos"`
	Total     int                       `json:"total"`
	Tallas    map[string][]entity.Talla `json:"tallas"`
}

// ProductoResponse un producto del catálogo con su categoría visible.
type ProductoResponse struct {
	entity.Producto
	CategoriaDisplay string `json:"categoriaDisplay"`
}

// TallasResponse guía de tallas agrupada por pestaña (sexo en minúsculas).
type TallasResponse struct {
	Grupos map[string][]entity.Talla `json:"grupos"`
}

// NewCatalogoResponse mapea productos de dominio y guía agrupada a respuesta.
func NewCatalogoResponse(productos []entity.Producto, tallas map[string][]entity.Talla) CatalogoResponse {
	items := make([]ProductoResponse, 0, len(productos))
	for _, p := range productos {
		items = append(items, ProductoResponse{
			Producto:         p,
			CategoriaDisplay: entity.NombreCategoria(p.Categoria),
		})
	}
	return CatalogoResponse{Productos: items, Total: len(items), Tallas: tallas}
}
