package requisition

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"inventra-system/internal/database/models"
)

func TestRemaining(t *testing.T) {
	tests := []struct {
		name     string
		approved int64
		added    int64
		expected int64
	}{
		{"nothing fulfilled yet", 10, 0, 10},
		{"partially fulfilled", 10, 7, 3},
		{"fully fulfilled", 10, 10, 0},
		{"overshoot clamps to zero", 10, 12, 0},
		{"zero approved", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := models.RequisitionItem{
				QuantityApproved: tt.approved,
				AddedToInventory: tt.added,
			}
			assert.Equal(t, tt.expected, Remaining(item))
		})
	}
}

func TestComputeTotals(t *testing.T) {
	items := []models.RequisitionItem{
		{
			QuantityRequested: 5,
			QuantityApproved:  4,
			EstimatedCost:     decimal.NewFromInt(2500),
			ApprovedCost:      decimal.NewFromInt(2000),
		},
		{
			QuantityRequested: 10,
			QuantityApproved:  10,
			EstimatedCost:     decimal.NewFromFloat(149.99),
			ApprovedCost:      decimal.NewFromFloat(149.99),
		},
	}

	totals := ComputeTotals(items)
	assert.Equal(t, int64(15), totals.QuantityRequested)
	assert.Equal(t, int64(14), totals.QuantityApproved)
	assert.True(t, totals.EstimatedCost.Equal(decimal.NewFromFloat(2649.99)))
	assert.True(t, totals.ApprovedCost.Equal(decimal.NewFromFloat(2149.99)))
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil)
	assert.Zero(t, totals.QuantityRequested)
	assert.Zero(t, totals.QuantityApproved)
	assert.True(t, totals.EstimatedCost.IsZero())
	assert.True(t, totals.ApprovedCost.IsZero())
}
