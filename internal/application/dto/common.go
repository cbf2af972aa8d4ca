package dto

import "github.com/shopspring/decimal"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StockErrorResponse cuerpo de error para rechazos por stock insuficiente,
// con el contexto necesario para que el cliente muestre algo accionable.
type StockErrorResponse struct {
	Code           string          `json:"code"`
	Message        string          `json:"message"`
	MaterialID     int64           `json:"material_id"`
	WorkshopID     int64           `json:"workshop_id"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	Delta          decimal.Decimal `json:"delta"`
	ResultingStock decimal.Decimal `json:"resulting_stock"`
}
