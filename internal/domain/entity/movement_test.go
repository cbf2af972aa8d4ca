package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/prodflux/prodflux-api/internal/domain/entity"
)

func TestMovementKind_Direccion(t *testing.T) {
	cases := []struct {
		kind entity.MovementKind
		want int
	}{
		{entity.KindDelivery, 1},
		{entity.KindTransferIn, 1},
		{entity.KindConsumption, -1},
		{entity.KindLoss, -1},
		{entity.KindTransferOut, -1},
		{entity.KindAdjustment, 0},
		{entity.KindReconciliation, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.kind.Direction(), "dirección de %s", tc.kind)
	}
}

// Para tipos direccionales la magnitud recibe el signo del tipo; para los de
// signo libre (adjustment, reconciliation) la cantidad se respeta tal cual.
func TestMovementKind_CantidadConSigno(t *testing.T) {
	five := decimal.NewFromInt(5)
	minusThree := decimal.NewFromInt(-3)

	assert.True(t, entity.KindDelivery.SignedQuantity(five).Equal(five))
	assert.True(t, entity.KindConsumption.SignedQuantity(five).Equal(five.Neg()))
	assert.True(t, entity.KindLoss.SignedQuantity(minusThree).Equal(minusThree))
	assert.True(t, entity.KindAdjustment.SignedQuantity(minusThree).Equal(minusThree))
	assert.True(t, entity.KindAdjustment.SignedQuantity(five).Equal(five))
}

func TestMovementKind_Valido(t *testing.T) {
	assert.True(t, entity.KindDelivery.Valid())
	assert.True(t, entity.KindReconciliation.Valid())
	assert.False(t, entity.MovementKind("devolucion").Valid())
}

func TestMovement_Ligado(t *testing.T) {
	libre := entity.Movement{}
	ligado := entity.Movement{Origin: &entity.Origin{Kind: entity.OriginDelivery, ID: 7}}

	assert.False(t, libre.Linked())
	assert.True(t, ligado.Linked())
}
