package catalogo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vlamor75/vestime-api/internal/domain/entity"
	"github.com/vlamor75/vestime-api/internal/domain/repository"
)

// Columnas de la pestaña de inventario. El contrato es posicional, los
// encabezados de la fila 0 son solo decorativos.
const (
	colInvItem = iota
	colInvReferencia
	colInvSexo
	colInvTalla
	colInvEstado
	colInvDescripcion
)

// Columnas de la pestaña de tallas.
const (
	colTallaSexo = iota
	colTallaTalla
	colTallaHombro
	colTallaPecho
	colTallaManga
	colTallaLargo
)

// ExisteLocal decide si una ruta relativa de imagen local está disponible.
// Se inyecta para mantener puro el armado del catálogo.
type ExisteLocal func(ruta string) bool

// SinImagenesLocales descarta siempre la ruta local; la resolución salta
// directo al placeholder.
func SinImagenesLocales(string) bool { return false }

// ConstruirCatalogo arma el catálogo normalizado y la guía de tallas a
// partir de las dos tablas y el índice de imágenes. Función pura dadas sus
// entradas: sin red, sin cache, sin estado oculto.
func ConstruirCatalogo(
	tablaInv, tablaTallas entity.Tabla,
	indice repository.IndiceImagenes,
	existeLocal ExisteLocal,
) ([]entity.Producto, map[string]entity.Talla) {
	return ParseInventario(tablaInv, indice, existeLocal), ParseTallas(tablaTallas)
}

// ParseInventario normaliza las filas de inventario en productos. La fila 0
// es encabezado y se salta; una fila sin referencia se descarta entera, no
// hay registros parciales.
func ParseInventario(tabla entity.Tabla, indice repository.IndiceImagenes, existeLocal ExisteLocal) []entity.Producto {
	if existeLocal == nil {
		existeLocal = SinImagenesLocales
	}

	productos := make([]entity.Producto, 0, len(tabla.Filas))
	for i, fila := range tabla.Filas {
		if i == 0 {
			continue
		}

		referencia := fila.Valor(colInvReferencia)
		if referencia == "" {
			continue
		}

		sexo := valorODefault(fila.Valor(colInvSexo), "Unisex")
		talla := valorODefault(fila.Valor(colInvTalla), "Única")
		estado := valorODefault(fila.Valor(colInvEstado), "Único")
		descripcion := valorODefault(fila.Valor(colInvDescripcion), fmt.Sprintf("Referencia %s", referencia))

		categoria := entity.CategoriaDesdeSexo(sexo)

		productos = append(productos, entity.Producto{
			Item:        fila.Valor(colInvItem),
			ID:          referencia,
			Referencia:  referencia,
			Sexo:        sexo,
			Talla:       talla,
			Estado:      estado,
			Descripcion: descripcion,
			Nombre:      descripcion,
			Categoria:   categoria,
			Imagen:      resolverImagen(referencia, categoria, indice, existeLocal),
			Destacado:   !entity.EstaAgotado(estado),
		})
	}
	return productos
}

// resolverImagen aplica el orden de resolución: índice (carpeta de la
// categoría, luego bucket raíz), archivo local, placeholder. El resultado
// nunca es vacío.
func resolverImagen(referencia, categoria string, indice repository.IndiceImagenes, existeLocal ExisteLocal) string {
	if indice != nil {
		if url, ok := indice.BuscarURL(referencia, categoria); ok {
			return url
		}
	}

	local := RutaImagenLocal(referencia, categoria)
	if existeLocal(local) {
		return local
	}
	return entity.ImagenPlaceholder
}

// RutaImagenLocal ruta determinista del fallback local de una referencia.
func RutaImagenLocal(referencia, categoria string) string {
	return fmt.Sprintf("./images/productos/%s/%s.png", categoria, strings.ToLower(referencia))
}

// ParseTallas arma la guía de tallas. Filas sin sexo o sin talla se
// saltan; una llave repetida sobrescribe la anterior sin error.
func ParseTallas(tabla entity.Tabla) map[string]entity.Talla {
	tallas := make(map[string]entity.Talla)
	for i, fila := range tabla.Filas {
		if i == 0 {
			continue
		}

		sexo := fila.Valor(colTallaSexo)
		talla := fila.Valor(colTallaTalla)
		if sexo == "" || talla == "" {
			continue
		}

		tallas[entity.ClaveTalla(sexo, talla)] = entity.Talla{
			Sexo:   sexo,
			Talla:  talla,
			Hombro: fila.Valor(colTallaHombro),
			Pecho:  fila.Valor(colTallaPecho),
			Manga:  fila.Valor(colTallaManga),
			Largo:  fila.Valor(colTallaLargo),
		}
	}
	return tallas
}

// ordenTallas posición de cada talla en la guía; las desconocidas van al
// final en orden alfabético.
var ordenTallas = map[string]int{"S": 0, "M": 1, "L": 2, "XL": 3}

// TallasAgrupadas agrupa la guía por sexo (llave en minúsculas, la pestaña
// del modal) con las tallas en orden S, M, L, XL.
func TallasAgrupadas(tallas map[string]entity.Talla) map[string][]entity.Talla {
	grupos := make(map[string][]entity.Talla)
	for _, t := range tallas {
		clave := strings.ToLower(t.Sexo)
		grupos[clave] = append(grupos[clave], t)
	}

	for _, lista := range grupos {
		sort.Slice(lista, func(a, b int) bool {
			ta, tb := strings.ToUpper(lista[a].Talla), strings.ToUpper(lista[b].Talla)
			pa, okA := ordenTallas[ta]
			pb, okB := ordenTallas[tb]
			switch {
			case okA && okB:
				return pa < pb
			case okA:
				return true
			case okB:
				return false
			default:
				return ta < tb
			}
		})
	}
	return grupos
}

func valorODefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
