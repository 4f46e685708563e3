package planned_item

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPlannedItem_ItemPriority(t *testing.T) {
	tests := []struct {
		name     string
		en       string
		fr       string
		expected Priority
	}{
		{"urgent keyword in English", "Urgent radio replacement", "Remplacement des radios", PriorityUrgent},
		{"critical keyword in English", "Critical spare parts", "Pièces de rechange", PriorityUrgent},
		{"critique keyword in French", "Spare parts", "Pièces critiques", PriorityUrgent},
		{"priority keyword in French", "Vehicle maintenance", "Entretien prioritaire des véhicules", PriorityPriority},
		{"important keyword", "Important fuel reserve", "Réserve de carburant", PriorityPriority},
		{"urgent wins over priority", "Urgent priority purchase", "Achat", PriorityUrgent},
		{"no keyword is routine", "Office furniture", "Mobilier de bureau", PriorityRoutine},
		{"empty designations are routine", "", "", PriorityRoutine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := PlannedItem{DesignationEn: tt.en, DesignationFr: tt.fr}
			assert.Equal(t, tt.expected, item.ItemPriority())
		})
	}
}

func TestPlannedItem_Amount(t *testing.T) {
	item := PlannedItem{Quantity: 12, UnitPrice: decimal.RequireFromString("149.99")}
	assert.True(t, item.Amount().Equal(decimal.RequireFromString("1799.88")))
}

func TestParsePriority(t *testing.T) {
	priority, ok := ParsePriority("urgent")
	assert.True(t, ok)
	assert.Equal(t, PriorityUrgent, priority)

	_, ok = ParsePriority("whatever")
	assert.False(t, ok)
}
