package entity

import "strings"

// Celda un valor de hoja de cálculo. Nulos y vacíos se normalizan a "".
type Celda struct {
	Valor string
	Tipo  string // etiqueta de tipo del origen (string, number, boolean); opcional
}

// Fila secuencia ordenada de celdas. La posición de columna es el contrato
// de cada hoja, no el nombre del encabezado.
type Fila struct {
	Celdas []Celda
}

// Valor devuelve el valor de la columna idx con espacios recortados,
// o "" si la fila no alcanza esa columna.
func (f Fila) Valor(idx int) string {
	if idx < 0 || idx >= len(f.Celdas) {
		return ""
	}
	return strings.TrimSpace(f.Celdas[idx].Valor)
}

// Tabla resultado tabular de una hoja publicada.
type Tabla struct {
	Filas []Fila
}

// Vacia indica si la tabla no tiene filas.
func (t Tabla) Vacia() bool { return len(t.Filas) == 0 }
