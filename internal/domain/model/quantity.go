package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Quantity is an amount in a concrete unit of measure.
type Quantity struct {
	Amount decimal.Decimal
	UomID  UomID
}

// NewQuantity creates a quantity of the given amount and unit.
func NewQuantity(amount decimal.Decimal, uomID UomID) Quantity {
	return Quantity{Amount: amount, UomID: uomID}
}

// QuantityOfString is a test/fixture convenience; it panics on a malformed amount.
func QuantityOfString(amount string, uomID UomID) Quantity {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		panic(fmt.Sprintf("invalid quantity amount %q: %v", amount, err))
	}
	return Quantity{Amount: d, UomID: uomID}
}

// Add returns the sum of q and other. Both quantities must share the same unit.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	if q.UomID != other.UomID {
		return Quantity{}, fmt.Errorf("uom mismatch: %d vs %d: %w", q.UomID, other.UomID, ErrInvalidState)
	}
	return Quantity{Amount: q.Amount.Add(other.Amount), UomID: q.UomID}, nil
}

// Cmp compares the amounts; it ignores the unit.
func (q Quantity) Cmp(other Quantity) int {
	return q.Amount.Cmp(other.Amount)
}

// IsZero reports whether the amount is zero.
func (q Quantity) IsZero() bool {
	return q.Amount.IsZero()
}

func (q Quantity) String() string {
	return fmt.Sprintf("%s (uom %d)", q.Amount.String(), q.UomID)
}
