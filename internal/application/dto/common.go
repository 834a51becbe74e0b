package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ProxyErrorResponse cuerpo de error del proxy de imágenes. El contrato
// del endpoint /api/products es anterior al resto de la API y expone un
// único campo error.
type ProxyErrorResponse struct {
	Error string `json:"error"`
}
