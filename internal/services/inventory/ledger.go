package inventory

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inventra-system/internal/database/models"
	"inventra-system/internal/services/serviceerr"
)

// delta is the set of counter adjustments one ledger movement implies.
// Positive and negative deltas are both clamped at zero on application; a
// counter can never go below zero no matter the order deltas arrive in.
type delta struct {
	quantity    int64
	used        int64
	unusable    int64
	maintenance int64
}

func (d delta) isZero() bool {
	return d.quantity == 0 && d.used == 0 && d.unusable == 0 && d.maintenance == 0
}

// ensureLedger returns the ledger row for a type, creating it with zeroed
// counters on first movement. The insert is conflict-tolerant so two
// concurrent first movements cannot race.
func (s *Service) ensureLedger(ctx context.Context, tx *gorm.DB, typeID int64) (*models.InventoryRecord, error) {
	record := models.InventoryRecord{TypeID: typeID}
	err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "type_id"}}, DoNothing: true}).
		Create(&record).Error
	if err != nil {
		return nil, serviceerr.Internal(err)
	}

	var existing models.InventoryRecord
	if err := tx.WithContext(ctx).Where("type_id = ?", typeID).First(&existing).Error; err != nil {
		return nil, serviceerr.Internal(err)
	}
	return &existing, nil
}

// applyMovement adjusts the ledger counters for a type in one UPDATE and
// appends exactly one history row. Counter application clamps at zero
// rather than rejecting, per the ledger contract.
func (s *Service) applyMovement(ctx context.Context, tx *gorm.DB, typeID int64, action models.MovementAction, qty int64, d delta, requisitionID *int64, userID int64) (*models.InventoryRecord, error) {
	record, err := s.ensureLedger(ctx, tx, typeID)
	if err != nil {
		return nil, err
	}

	if !d.isZero() {
		updates := map[string]interface{}{}
		if d.quantity != 0 {
			updates["quantity"] = gorm.Expr("GREATEST(quantity + ?, 0)", d.quantity)
		}
		if d.used != 0 {
			updates["used_quantity"] = gorm.Expr("GREATEST(used_quantity + ?, 0)", d.used)
		}
		if d.unusable != 0 {
			updates["unusable_quantity"] = gorm.Expr("GREATEST(unusable_quantity + ?, 0)", d.unusable)
		}
		if d.maintenance != 0 {
			updates["maintenance_quantity"] = gorm.Expr("GREATEST(maintenance_quantity + ?, 0)", d.maintenance)
		}
		err := tx.WithContext(ctx).Model(&models.InventoryRecord{}).
			Where("id = ?", record.ID).
			Updates(updates).Error
		if err != nil {
			return nil, serviceerr.Internal(err)
		}
	}

	movement := models.StockMovement{
		InventoryID:   record.ID,
		Action:        action,
		Quantity:      qty,
		RequisitionID: requisitionID,
		UserID:        userID,
		Date:          s.now(),
	}
	if err := tx.WithContext(ctx).Create(&movement).Error; err != nil {
		return nil, serviceerr.Internal(err)
	}

	var updated models.InventoryRecord
	if err := tx.WithContext(ctx).First(&updated, record.ID).Error; err != nil {
		return nil, serviceerr.Internal(err)
	}
	return &updated, nil
}

// ledgerByType loads the ledger row for a type without creating it.
func (s *Service) ledgerByType(ctx context.Context, tx *gorm.DB, typeID int64) (*models.InventoryRecord, error) {
	var record models.InventoryRecord
	if err := tx.WithContext(ctx).Where("type_id = ?", typeID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, serviceerr.NotFound("no inventory record for type %d", typeID)
		}
		return nil, serviceerr.Internal(err)
	}
	return &record, nil
}
