package chain

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// toBaseUnits truncates amount to the asset's smallest unit.
func toBaseUnits(amount decimal.Decimal, decimals uint8) (*big.Int, error) {
	units := amount.Shift(int32(decimals)).Truncate(0)
	if !units.IsPositive() {
		return nil, errors.Errorf("amount %s is below one base unit", amount)
	}
	return units.BigInt(), nil
}

func fromBaseUnits(units *big.Int, decimals uint8) decimal.Decimal {
	if units == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(units, -int32(decimals))
}
