package repository

import (
	"context"

	"github.com/vlamor75/vestime-api/internal/domain/entity"
)

// FuenteTablas acceso a hojas de cálculo publicadas. La implementación
// cachea por (hoja, pestaña) y sirve el último resultado bueno ante
// fallos del upstream.
type FuenteTablas interface {
	ObtenerTabla(ctx context.Context, sheetID, nombre string) (entity.Tabla, error)
}

// AlmacenReferido slot único de persistencia del referido activo.
// Hay exactamente un escritor lógico por sesión; cada resolución
// exitosa sobrescribe el slot completo.
type AlmacenReferido interface {
	// Obtener devuelve el referido guardado o nil si el slot está vacío.
	// Un slot corrupto se trata como vacío.
	Obtener() (*entity.ReferidoGuardado, error)
	Guardar(ref entity.ReferidoGuardado) error
	Eliminar() error
}

// BuscadorReferidos resuelve un código contra la hoja de referidos.
// Devuelve (nil, nil) cuando el código no existe entre los activos.
type BuscadorReferidos interface {
	BuscarReferido(ctx context.Context, codigo string) (*entity.Referido, error)
}

// IndiceImagenes resuelve referencias de producto contra el índice
// precalculado de imágenes. Nunca falla: ante índice ausente responde
// que no hay coincidencia.
type IndiceImagenes interface {
	// BuscarURL busca la referencia dentro de la carpeta de la categoría
	// y, si no aparece, en el bucket raíz. Devuelve ("", false) si no hay
	// imagen para la referencia.
	BuscarURL(referencia, categoria string) (string, bool)
}

// ListadorImagenes lista todos los assets bajo un prefijo de carpeta del
// almacén de imágenes, agotando la paginación del upstream.
type ListadorImagenes interface {
	ListarCarpeta(ctx context.Context, prefijo string) ([]entity.ImagenAsset, error)
}
