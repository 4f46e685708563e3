package budget_modification

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction says whether a modification raises or lowers the budget of
// the planned item it targets.
type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
)

func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case DirectionIncrease:
		return DirectionIncrease, true
	case DirectionDecrease:
		return DirectionDecrease, true
	}
	return "", false
}

// BudgetModification records an approved budget change for a planned item.
// The pair (ApprovalDate, DemandeDocument) identifies the approval and is
// unique across all modifications.
type BudgetModification struct {
	ID              int64
	ApprovalDate    time.Time
	DemandeDocument string
	Amount          decimal.Decimal
	Direction       Direction
	PlannedItemID   int64
}

// SignedAmount is the amount with the direction applied, negative for a
// decrease.
func (b BudgetModification) SignedAmount() decimal.Decimal {
	if b.Direction == DirectionDecrease {
		return b.Amount.Neg()
	}
	return b.Amount
}
