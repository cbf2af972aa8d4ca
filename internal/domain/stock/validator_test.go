package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/prodflux/prodflux-api/internal/domain/stock"
)

func TestValidate_SalidaConStockSuficiente(t *testing.T) {
	res := stock.Validate(decimal.NewFromInt(10), decimal.NewFromInt(-4))

	assert.True(t, res.Valid)
	assert.True(t, res.NewStock.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, "OK", res.Message)
}

// Llegar exactamente a cero es válido: el rechazo es solo para resultados
// negativos.
func TestValidate_SalidaHastaCero(t *testing.T) {
	res := stock.Validate(decimal.NewFromInt(5), decimal.NewFromInt(-5))

	assert.True(t, res.Valid)
	assert.True(t, res.NewStock.IsZero())
}

func TestValidate_SalidaInsuficiente(t *testing.T) {
	res := stock.Validate(decimal.NewFromInt(3), decimal.NewFromInt(-5))

	assert.False(t, res.Valid)
	assert.True(t, res.CurrentStock.Equal(decimal.NewFromInt(3)))
	assert.True(t, res.NewStock.Equal(decimal.NewFromInt(-2)))
	assert.Contains(t, res.Message, "negativo")
}

func TestValidate_EntradaSiempreValida(t *testing.T) {
	res := stock.Validate(decimal.Zero, decimal.NewFromInt(7))

	assert.True(t, res.Valid)
	assert.True(t, res.NewStock.Equal(decimal.NewFromInt(7)))
}

func TestValidate_CantidadesFraccionarias(t *testing.T) {
	res := stock.Validate(decimal.RequireFromString("2.50"), decimal.RequireFromString("-2.51"))

	assert.False(t, res.Valid)
	assert.True(t, res.NewStock.Equal(decimal.RequireFromString("-0.01")))
}
