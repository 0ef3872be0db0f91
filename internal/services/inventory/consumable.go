package inventory

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventra-system/internal/database/models"
	"inventra-system/internal/services/requisition"
	"inventra-system/internal/services/serviceerr"
)

// AddStock receives units of a CONSUMABLE type into the ledger. When the
// stock originates from a requisition the line item's fulfillment counter
// is bumped in the same transaction.
func (s *Service) AddStock(ctx context.Context, typeID, qty, actorID int64, requisitionID *int64) (*models.InventoryRecord, error) {
	if qty <= 0 {
		return nil, serviceerr.Validation("quantity must be greater than 0")
	}

	itemType, err := s.loadType(ctx, s.db, typeID)
	if err != nil {
		return nil, err
	}
	if itemType.TrackingMode != models.TrackingModeConsumable {
		return nil, serviceerr.Validation("type %q is asset tracked, create products instead", itemType.Name)
	}
	if err := s.checkUser(ctx, s.db, actorID); err != nil {
		return nil, err
	}
	if requisitionID != nil {
		if _, _, err := requisition.ResolveItem(ctx, s.db, *requisitionID, typeID); err != nil {
			return nil, err
		}
	}

	var record *models.InventoryRecord
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if requisitionID != nil {
			if err := requisition.RecordAdded(ctx, tx, *requisitionID, typeID, qty); err != nil {
				return err
			}
		}
		var txErr error
		record, txErr = s.applyMovement(ctx, tx, typeID, models.ActionIn, qty,
			delta{quantity: qty}, requisitionID, actorID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateInventoryCaches(ctx, typeID)
	s.publishMovement(ctx, "stock.in", typeID, "", models.ActionIn, qty, actorID)
	s.logger.Info("consumable stock added",
		zap.Int64("typeId", typeID), zap.Int64("quantity", qty))

	return record, nil
}

// UseStock consumes units of a CONSUMABLE type. The availability check is
// part of the decrement itself (quantity >= n in the WHERE clause), so two
// concurrent consumers cannot both drain the same units.
//
// Consumption history never carries a requisition reference, even when the
// stock arrived via one.
func (s *Service) UseStock(ctx context.Context, typeID, qty, actorID int64) (*models.InventoryRecord, error) {
	if qty <= 0 {
		return nil, serviceerr.Validation("quantity must be greater than 0")
	}

	itemType, err := s.loadType(ctx, s.db, typeID)
	if err != nil {
		return nil, err
	}
	if itemType.TrackingMode != models.TrackingModeConsumable {
		return nil, serviceerr.Validation("type %q is asset tracked", itemType.Name)
	}
	if err := s.checkUser(ctx, s.db, actorID); err != nil {
		return nil, err
	}

	var record *models.InventoryRecord
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.InventoryRecord{}).
			Where("type_id = ? AND quantity >= ?", typeID, qty).
			Updates(map[string]interface{}{
				"quantity":      gorm.Expr("quantity - ?", qty),
				"used_quantity": gorm.Expr("used_quantity + ?", qty),
			})
		if res.Error != nil {
			return serviceerr.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return serviceerr.Conflict("Not enough stock available")
		}

		current, err := s.ledgerByType(ctx, tx, typeID)
		if err != nil {
			return err
		}

		movement := models.StockMovement{
			InventoryID: current.ID,
			Action:      models.ActionUsed,
			Quantity:    qty,
			UserID:      actorID,
			Date:        s.now(),
		}
		if err := tx.Create(&movement).Error; err != nil {
			return serviceerr.Internal(err)
		}

		record = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateInventoryCaches(ctx, typeID)
	s.publishMovement(ctx, "stock.used", typeID, "", models.ActionUsed, qty, actorID)
	s.logger.Info("consumable stock used",
		zap.Int64("typeId", typeID), zap.Int64("quantity", qty))

	return record, nil
}
