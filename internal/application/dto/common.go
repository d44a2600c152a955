package dto

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LineErrorResponse error de validación de una línea de la orden.
type LineErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	LineIndex int    `json:"line_index"`
	ItemID    string `json:"item_id"`
	Reason    string `json:"reason"`
}
