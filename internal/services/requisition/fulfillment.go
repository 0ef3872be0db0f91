package requisition

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"inventra-system/internal/database/models"
	"inventra-system/internal/services/serviceerr"
)

// Remaining is the number of units of an item that may still be added to
// inventory.
func Remaining(item models.RequisitionItem) int64 {
	remaining := item.QuantityApproved - item.AddedToInventory
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ResolveItem loads an approved requisition and its line item for a type,
// validating everything product creation needs before any mutation.
func ResolveItem(ctx context.Context, tx *gorm.DB, requisitionID, typeID int64) (*models.Requisition, *models.RequisitionItem, error) {
	var req models.Requisition
	if err := tx.WithContext(ctx).Preload("Items").First(&req, requisitionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, serviceerr.NotFound("requisition %d not found", requisitionID)
		}
		return nil, nil, serviceerr.Internal(err)
	}

	if req.Status != models.RequisitionApproved {
		return nil, nil, serviceerr.Conflict("requisition %s is not approved", req.RequisitionID)
	}

	for i := range req.Items {
		if req.Items[i].TypeID == typeID {
			return &req, &req.Items[i], nil
		}
	}
	return nil, nil, serviceerr.Conflict("requisition %s has no item for type %d", req.RequisitionID, typeID)
}

// RecordAdded bumps an item's addedToInventory counter by count, atomically
// refusing to push it past quantityApproved. The guard is part of the UPDATE
// itself so concurrent adders cannot both slip through.
func RecordAdded(ctx context.Context, tx *gorm.DB, requisitionID, typeID, count int64) error {
	if count <= 0 {
		return serviceerr.Validation("count must be greater than 0")
	}

	res := tx.WithContext(ctx).Model(&models.RequisitionItem{}).
		Where("requisition_id = ? AND type_id = ? AND added_to_inventory + ? <= quantity_approved",
			requisitionID, typeID, count).
		Update("added_to_inventory", gorm.Expr("added_to_inventory + ?", count))
	if res.Error != nil {
		return serviceerr.Internal(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var item models.RequisitionItem
	err := tx.WithContext(ctx).
		Where("requisition_id = ? AND type_id = ?", requisitionID, typeID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return serviceerr.Conflict("requisition %d has no item for type %d", requisitionID, typeID)
		}
		return serviceerr.Internal(err)
	}

	return serviceerr.ConflictWithHint(
		fmt.Sprintf("you may add %d only", Remaining(item)),
		"adding %d would exceed the approved quantity", count,
	)
}
