package referidos

import (
	"github.com/vlamor75/vestime-api/internal/domain/entity"
)

// Columnas de la hoja de referidos.
const (
	colRefItem = iota
	colRefCodigo
	colRefWhatsApp
	colRefNombre
	colRefComision
	colRefActivo
	colRefEmail
	colRefDireccion
)

// ParseReferidos convierte la tabla de la hoja en registros de referido.
// La fila 0 es encabezado; filas sin código se descartan; solo entran los
// registros con activo == "SI" (sin distinguir mayúsculas).
func ParseReferidos(tabla entity.Tabla) []entity.Referido {
	referidos := make([]entity.Referido, 0, len(tabla.Filas))
	for i, fila := range tabla.Filas {
		if i == 0 {
			continue
		}

		codigo := fila.Valor(colRefCodigo)
		if codigo == "" {
			continue
		}
		if !entity.EsActivo(fila.Valor(colRefActivo)) {
			continue
		}

		referidos = append(referidos, entity.Referido{
			Item:      fila.Valor(colRefItem),
			Codigo:    codigo,
			WhatsApp:  fila.Valor(colRefWhatsApp),
			Nombre:    fila.Valor(colRefNombre),
			Comision:  fila.Valor(colRefComision),
			Activo:    true,
			Email:     fila.Valor(colRefEmail),
			Direccion: fila.Valor(colRefDireccion),
		})
	}
	return referidos
}
