package entity

import "strings"

// Talla una entrada de la guía de tallas. Las medidas vienen como texto
// de la hoja (centímetros) y se muestran tal cual.
type Talla struct {
	Sexo   string `json:"sexo"`
	Talla  string `json:"talla"`
	Hombro string `json:"hombro"`
	Pecho  string `json:"pecho"`
	Manga  string `json:"manga"`
	Largo  string `json:"largo"`
}

// ClaveTalla construye la llave compuesta (sexo, talla). Escritura y
// lectura deben usar exactamente esta función: sexo en minúsculas,
// talla en mayúsculas, separadas por guion.
func ClaveTalla(sexo, talla string) string {
	return strings.ToLower(sexo) + "-" + strings.ToUpper(talla)
}
