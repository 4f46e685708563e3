package planned_item

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Priority is derived from the item designations by keyword match.
type Priority string

const (
	PriorityUrgent   Priority = "URGENT"
	PriorityPriority Priority = "PRIORITY"
	PriorityRoutine  Priority = "ROUTINE"
)

// PlannedItem is a budgeted line item tied to a financial operation for
// one fiscal year. UnitPrice is the price per unit; the total amount is
// derived, never stored.
type PlannedItem struct {
	ID            int64
	DesignationAr string
	DesignationEn string
	DesignationFr string
	OperationCode string
	FiscalYear    int
	Quantity      int
	UnitPrice     decimal.Decimal
	RubricID      int64
	ItemStatusID  int64
}

// Amount is the budgeted total for the line, quantity times unit price.
func (p PlannedItem) Amount() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

var priorityKeywords = []struct {
	priority Priority
	keywords []string
}{
	{PriorityUrgent, []string{"urgent", "emergency", "critique", "critical"}},
	{PriorityPriority, []string{"priorit", "priority", "important"}},
}

// ItemPriority classifies the item from the English and French designations.
// Urgent keywords win over priority keywords; anything else is routine.
func (p PlannedItem) ItemPriority() Priority {
	text := strings.ToLower(p.DesignationEn + " " + p.DesignationFr)
	for _, entry := range priorityKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.priority
			}
		}
	}
	return PriorityRoutine
}

func ParsePriority(s string) (Priority, bool) {
	switch strings.ToUpper(s) {
	case string(PriorityUrgent):
		return PriorityUrgent, true
	case string(PriorityPriority):
		return PriorityPriority, true
	case string(PriorityRoutine):
		return PriorityRoutine, true
	}
	return "", false
}
