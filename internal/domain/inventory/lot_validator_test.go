package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvillegas/multierp-api/internal/domain/inventory"
)

func validLot() inventory.LotInput {
	return inventory.LotInput{
		VariantID: "var-1",
		LotNumber: "L-2026-001",
		LotOrigin: "Planta A",
		UnitCost:  decimal.NewFromInt(10),
	}
}

func TestValidateLot_OK(t *testing.T) {
	res := inventory.ValidateLot(validLot())
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
}

func TestValidateLot_VariantRequerido(t *testing.T) {
	in := validLot()
	in.VariantID = ""
	res := inventory.ValidateLot(in)

	require.False(t, res.IsValid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "inv_var_id", res.Errors[0].Path)
	assert.Equal(t, "inv_var_id is required", res.Errors[0].Msg)
}

func TestValidateLot_AcumulaErrores(t *testing.T) {
	in := inventory.LotInput{
		UnitCost:    decimal.NewFromInt(-1),
		RefUnitCost: decimal.NewFromInt(-2),
	}
	res := inventory.ValidateLot(in)

	require.False(t, res.IsValid)
	// inv_var_id, lot_number, unit_cost y ref_unit_cost deben reportarse juntos
	assert.Len(t, res.Errors, 4)
	paths := make([]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		paths = append(paths, e.Path)
	}
	assert.Contains(t, paths, "inv_var_id")
	assert.Contains(t, paths, "inv_lot_number")
	assert.Contains(t, paths, "inv_lot_unit_cost")
	assert.Contains(t, paths, "inv_lot_ref_unit_cost")
}

func TestValidateLot_LongitudMaxima(t *testing.T) {
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'x'
	}
	in := validLot()
	in.LotNumber = string(long)
	in.LotOrigin = string(long)

	res := inventory.ValidateLot(in)
	require.False(t, res.IsValid)
	assert.Len(t, res.Errors, 2)
}

func TestValidateLot_VencimientoDebeSerPosterior(t *testing.T) {
	mfg := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// igual a fabricación: inválido (estrictamente posterior)
	in := validLot()
	in.ManufactureDate = &mfg
	exp := mfg
	in.ExpirationDate = &exp
	res := inventory.ValidateLot(in)
	require.False(t, res.IsValid)
	assert.Equal(t, "inv_lot_expiration_date", res.Errors[0].Path)

	// un día después: válido
	exp2 := mfg.AddDate(0, 0, 1)
	in.ExpirationDate = &exp2
	assert.True(t, inventory.ValidateLot(in).IsValid)

	// solo una de las dos fechas: válido
	in.ExpirationDate = nil
	assert.True(t, inventory.ValidateLot(in).IsValid)
}
