package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrFetch fallo de red o transporte contra una fuente externa.
	ErrFetch = errors.New("error de red al consultar la fuente")
	// ErrParse envoltorio o estructura de respuesta inválida.
	ErrParse = errors.New("respuesta con formato inválido")
	// ErrNotFound código o referencia inexistente.
	ErrNotFound = errors.New("recurso no encontrado")
	// ErrConfig credenciales upstream ausentes (solo aplica al proxy de imágenes).
	ErrConfig = errors.New("configuración de Cloudinary incompleta")
	// ErrSinDatos no hay datos frescos ni cache previo que servir.
	ErrSinDatos = errors.New("sin datos disponibles")
)
