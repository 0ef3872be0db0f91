package requisition

import (
	"github.com/shopspring/decimal"

	"inventra-system/internal/database/models"
)

// Totals is the requisition-level aggregate derived from its items.
type Totals struct {
	QuantityRequested int64
	QuantityApproved  int64
	EstimatedCost     decimal.Decimal
	ApprovedCost      decimal.Decimal
}

// ComputeTotals sums the aggregate fields over the items. Totals are always
// recomputed from scratch, never adjusted incrementally.
func ComputeTotals(items []models.RequisitionItem) Totals {
	totals := Totals{
		EstimatedCost: decimal.Zero,
		ApprovedCost:  decimal.Zero,
	}
	for _, item := range items {
		totals.QuantityRequested += item.QuantityRequested
		totals.QuantityApproved += item.QuantityApproved
		totals.EstimatedCost = totals.EstimatedCost.Add(item.EstimatedCost)
		totals.ApprovedCost = totals.ApprovedCost.Add(item.ApprovedCost)
	}
	return totals
}

func applyTotals(req *models.Requisition, totals Totals) {
	req.TotalQuantityRequested = totals.QuantityRequested
	req.TotalQuantityApproved = totals.QuantityApproved
	req.TotalEstimatedCost = totals.EstimatedCost
	req.TotalApprovedCost = totals.ApprovedCost
}
