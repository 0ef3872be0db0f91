package inventory

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inventra-system/internal/database/models"
	"inventra-system/internal/services/serviceerr"
)

// syncCustody reconciles the employee held-asset rows with a product's
// owner change. At most two writes: remove from the previous holder, add to
// the next. Both writes are idempotent so replays and overlaps are
// harmless. Runs inside the transition's transaction, after the product row
// itself is saved.
func (s *Service) syncCustody(ctx context.Context, tx *gorm.DB, productID int64, prevOwner, nextOwner *int64) error {
	if prevOwner != nil && (nextOwner == nil || *nextOwner != *prevOwner) {
		err := tx.WithContext(ctx).
			Where("employee_id = ? AND product_id = ?", *prevOwner, productID).
			Delete(&models.EmployeeAsset{}).Error
		if err != nil {
			return serviceerr.Internal(err)
		}
	}

	if nextOwner != nil {
		asset := models.EmployeeAsset{EmployeeID: *nextOwner, ProductID: productID}
		err := tx.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&asset).Error
		if err != nil {
			return serviceerr.Internal(err)
		}
	}

	return nil
}

// removeFromAllCustody drops a product from every held-asset set. Used on
// deletion, where the product may linger in a set after historical
// inconsistencies; removal of absent rows is a no-op.
func (s *Service) removeFromAllCustody(ctx context.Context, tx *gorm.DB, productID int64) error {
	err := tx.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.EmployeeAsset{}).Error
	if err != nil {
		return serviceerr.Internal(err)
	}
	return nil
}

// openCustodyRecord appends a custody-history entry with a null return
// date for a fresh handover.
func (s *Service) openCustodyRecord(ctx context.Context, tx *gorm.DB, productID, employeeID, handedOverByID int64, at time.Time) error {
	record := models.CustodyRecord{
		ProductID:      productID,
		EmployeeID:     employeeID,
		HandoverDate:   at,
		HandedOverByID: handedOverByID,
	}
	if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
		return serviceerr.Internal(err)
	}
	return nil
}

// closeCustodyRecord closes the most recent open custody entry. When none
// is open a synthetic already-closed entry is appended instead so the
// return is still visible in the history.
func (s *Service) closeCustodyRecord(ctx context.Context, tx *gorm.DB, product *models.Product, returnedByID int64, at time.Time) error {
	var record models.CustodyRecord
	err := tx.WithContext(ctx).
		Where("product_id = ? AND return_date IS NULL", product.ID).
		Order("handover_date DESC").
		First(&record).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return serviceerr.Internal(err)
		}

		employeeID := int64(0)
		if product.CurrentOwnerID != nil {
			employeeID = *product.CurrentOwnerID
		}
		synthetic := models.CustodyRecord{
			ProductID:      product.ID,
			EmployeeID:     employeeID,
			HandoverDate:   at,
			HandedOverByID: returnedByID,
			ReturnDate:     &at,
			ReturnByID:     &returnedByID,
		}
		if err := tx.WithContext(ctx).Create(&synthetic).Error; err != nil {
			return serviceerr.Internal(err)
		}
		return nil
	}

	return s.updateCustodyReturn(ctx, tx, record.ID, returnedByID, at)
}

func (s *Service) updateCustodyReturn(ctx context.Context, tx *gorm.DB, recordID, returnedByID int64, at time.Time) error {
	err := tx.WithContext(ctx).Model(&models.CustodyRecord{}).
		Where("id = ?", recordID).
		Updates(map[string]interface{}{
			"return_date":  at,
			"return_by_id": returnedByID,
		}).Error
	if err != nil {
		return serviceerr.Internal(err)
	}
	return nil
}
