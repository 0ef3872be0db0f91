package inventory

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventra-system/internal/database/models"
	"inventra-system/internal/services/requisition"
	"inventra-system/internal/services/serviceerr"
)

type CreateProductInput struct {
	TypeID        int64           `json:"typeId"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	RequisitionID *int64          `json:"requisitionId"`
	ActorID       int64           `json:"-"`
}

type ProductDetail struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type BulkCreateInput struct {
	TypeID        int64           `json:"typeId"`
	Quantity      int64           `json:"quantity"`
	Details       []ProductDetail `json:"productDetails"`
	RequisitionID *int64          `json:"requisitionId"`
	ActorID       int64           `json:"-"`
}

// CreateProduct registers one unit of an ASSET type. When sourced from a
// requisition the line item's fulfillment counter is bumped inside the same
// transaction, so the approved ceiling can never be overshot.
func (s *Service) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	products, err := s.createProducts(ctx, in.TypeID, []ProductDetail{{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
	}}, in.RequisitionID, in.ActorID)
	if err != nil {
		return nil, err
	}
	return &products[0], nil
}

// CreateBulkProducts registers a batch of units in one transaction. The
// declared quantity must match the per-unit details, and the requisition
// ceiling check applies to the batch total.
func (s *Service) CreateBulkProducts(ctx context.Context, in BulkCreateInput) ([]models.Product, error) {
	if in.Quantity <= 0 {
		return nil, serviceerr.Validation("quantity must be greater than 0")
	}
	if in.Quantity != int64(len(in.Details)) {
		return nil, serviceerr.Validation("quantity %d does not match %d product details",
			in.Quantity, len(in.Details))
	}
	return s.createProducts(ctx, in.TypeID, in.Details, in.RequisitionID, in.ActorID)
}

func (s *Service) createProducts(ctx context.Context, typeID int64, details []ProductDetail, requisitionID *int64, actorID int64) ([]models.Product, error) {
	itemType, err := s.loadType(ctx, s.db, typeID)
	if err != nil {
		return nil, err
	}
	if itemType.TrackingMode != models.TrackingModeAsset {
		return nil, serviceerr.Validation("type %q is consumable, use the stock endpoints", itemType.Name)
	}
	if err := s.checkUser(ctx, s.db, actorID); err != nil {
		return nil, err
	}

	for _, detail := range details {
		if detail.Name == "" {
			return nil, serviceerr.Validation("product name is required")
		}
		if detail.Price.IsNegative() {
			return nil, serviceerr.Validation("price cannot be negative")
		}
	}

	origin := models.OriginManualEntry
	if requisitionID != nil {
		if _, _, err := requisition.ResolveItem(ctx, s.db, *requisitionID, typeID); err != nil {
			return nil, err
		}
		origin = models.OriginRequisition
	}

	count := int64(len(details))
	products := make([]models.Product, 0, count)
	for _, detail := range details {
		// Serial allocation happens outside the transaction; a failed save
		// leaves a gap, never a duplicate.
		code, err := s.ids.ProductID(ctx, itemType)
		if err != nil {
			return nil, err
		}
		products = append(products, models.Product{
			ProductID:     code,
			Name:          detail.Name,
			Description:   detail.Description,
			TypeID:        typeID,
			Price:         detail.Price,
			Status:        models.StatusAvailable,
			Origin:        origin,
			RequisitionID: requisitionID,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if requisitionID != nil {
			if err := requisition.RecordAdded(ctx, tx, *requisitionID, typeID, count); err != nil {
				return err
			}
		}
		for i := range products {
			if err := tx.Create(&products[i]).Error; err != nil {
				return serviceerr.Internal(err)
			}
		}
		_, err := s.applyMovement(ctx, tx, typeID, models.ActionIn, count,
			delta{quantity: count}, requisitionID, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateInventoryCaches(ctx, typeID)
	s.publishMovement(ctx, "stock.in", typeID, "", models.ActionIn, count, actorID)
	s.logger.Info("products created",
		zap.Int64("typeId", typeID),
		zap.Int64("count", count),
		zap.String("origin", string(origin)))

	return products, nil
}

// UpdateProductStatus drives the lifecycle state machine for a generic
// status change. The (prev, next) pair must appear in the transition table;
// anything else is a conflict.
func (s *Service) UpdateProductStatus(ctx context.Context, productID int64, next models.ProductStatus, newOwner *int64, actorID int64) (*models.Product, error) {
	product, err := s.loadProduct(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if err := s.checkUser(ctx, s.db, actorID); err != nil {
		return nil, err
	}

	effect, err := transitionFor(product.Status, next)
	if err != nil {
		return nil, err
	}

	prevOwner := product.CurrentOwnerID
	var nextOwner *int64
	switch effect.custody {
	case custodySet, custodyMove:
		if newOwner == nil {
			return nil, serviceerr.Validation("an owner is required when assigning a product")
		}
		if err := s.checkEmployee(ctx, s.db, *newOwner); err != nil {
			return nil, err
		}
		nextOwner = newOwner
	case custodyClear:
		nextOwner = nil
	case custodyNone:
		nextOwner = prevOwner
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := s.saveProductTransition(ctx, tx, product, map[string]interface{}{
			"status":           next,
			"current_owner_id": nextOwner,
		})
		if err != nil {
			return err
		}

		if effect.logged {
			if _, err := s.applyMovement(ctx, tx, product.TypeID, effect.action, 1, effect.delta, nil, actorID); err != nil {
				return err
			}
		}

		if effect.custody != custodyNone {
			if err := s.syncCustody(ctx, tx, product.ID, prevOwner, nextOwner); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateInventoryCaches(ctx, product.TypeID)
	if effect.logged {
		s.publishMovement(ctx, "product.status", product.TypeID, product.ProductID, effect.action, 1, actorID)
	}
	s.logger.Info("product status updated",
		zap.String("productId", product.ProductID),
		zap.String("from", string(product.Status)),
		zap.String("to", string(next)))

	product.Status = next
	product.CurrentOwnerID = nextOwner
	return product, nil
}

// HandOverProduct assigns an AVAILABLE product to an employee and opens a
// custody-history entry. Products under maintenance or unusable are
// rejected outright; the caller must restore them to available first.
func (s *Service) HandOverProduct(ctx context.Context, productID, employeeID, handedOverByID int64) (*models.Product, error) {
	product, err := s.loadProduct(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}

	switch product.Status {
	case models.StatusAssigned:
		return nil, serviceerr.Conflict("product %s is already assigned", product.ProductID)
	case models.StatusMaintenance:
		return nil, serviceerr.Conflict("product %s is under maintenance, return it to available first", product.ProductID)
	case models.StatusUnusable:
		return nil, serviceerr.Conflict("product %s is unusable and cannot be handed over", product.ProductID)
	}

	if err := s.checkEmployee(ctx, s.db, employeeID); err != nil {
		return nil, err
	}

	now := s.now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := s.saveProductTransition(ctx, tx, product, map[string]interface{}{
			"status":           models.StatusAssigned,
			"current_owner_id": employeeID,
		})
		if err != nil {
			return err
		}

		if err := s.openCustodyRecord(ctx, tx, product.ID, employeeID, handedOverByID, now); err != nil {
			return err
		}

		if _, err := s.applyMovement(ctx, tx, product.TypeID, models.ActionOut, 1, delta{used: 1}, nil, handedOverByID); err != nil {
			return err
		}

		return s.syncCustody(ctx, tx, product.ID, nil, &employeeID)
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateInventoryCaches(ctx, product.TypeID)
	s.publishMovement(ctx, "product.assigned", product.TypeID, product.ProductID, models.ActionOut, 1, handedOverByID)
	s.logger.Info("product handed over",
		zap.String("productId", product.ProductID),
		zap.Int64("employee", employeeID))

	product.Status = models.StatusAssigned
	product.CurrentOwnerID = &employeeID
	return product, nil
}

// ReturnProduct takes an ASSIGNED product back, closing its open custody
// entry and restoring it to AVAILABLE.
func (s *Service) ReturnProduct(ctx context.Context, productID, returnedByID int64) (*models.Product, error) {
	product, err := s.loadProduct(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if product.Status != models.StatusAssigned {
		return nil, serviceerr.Conflict("product %s is not assigned", product.ProductID)
	}

	prevOwner := product.CurrentOwnerID
	now := s.now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := s.saveProductTransition(ctx, tx, product, map[string]interface{}{
			"status":           models.StatusAvailable,
			"current_owner_id": nil,
		})
		if err != nil {
			return err
		}

		if err := s.closeCustodyRecord(ctx, tx, product, returnedByID, now); err != nil {
			return err
		}

		if _, err := s.applyMovement(ctx, tx, product.TypeID, models.ActionIn, 1, delta{used: -1}, nil, returnedByID); err != nil {
			return err
		}

		return s.syncCustody(ctx, tx, product.ID, prevOwner, nil)
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateInventoryCaches(ctx, product.TypeID)
	s.publishMovement(ctx, "product.returned", product.TypeID, product.ProductID, models.ActionIn, 1, returnedByID)
	s.logger.Info("product returned", zap.String("productId", product.ProductID))

	product.Status = models.StatusAvailable
	product.CurrentOwnerID = nil
	return product, nil
}

// DeleteProduct removes a product record. Deletion is forbidden while the
// product is assigned; otherwise the ledger loses one unit of quantity plus
// the counter of the product's last status, and the product leaves every
// custody set.
func (s *Service) DeleteProduct(ctx context.Context, productID, actorID int64) error {
	product, err := s.loadProduct(ctx, s.db, productID)
	if err != nil {
		return err
	}
	if product.Status == models.StatusAssigned {
		return serviceerr.Conflict("product %s is assigned and cannot be deleted", product.ProductID)
	}
	if err := s.checkUser(ctx, s.db, actorID); err != nil {
		return err
	}

	d := delta{quantity: -1}
	switch product.Status {
	case models.StatusMaintenance:
		d.maintenance = -1
	case models.StatusUnusable:
		d.unusable = -1
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The delete is guarded on the observed status so a product that is
		// concurrently becoming ASSIGNED cannot slip through, and so the
		// deltas above always match the status actually removed.
		res := observedState(tx.WithContext(ctx), product).Delete(&models.Product{})
		if res.Error != nil {
			return serviceerr.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return serviceerr.Conflict("product %s was modified concurrently, retry", product.ProductID)
		}

		if _, err := s.applyMovement(ctx, tx, product.TypeID, models.ActionDeleted, 1, d, nil, actorID); err != nil {
			return err
		}
		if err := s.removeFromAllCustody(ctx, tx, product.ID); err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.CustodyRecord{}).Error; err != nil {
			return serviceerr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.InvalidateInventoryCaches(ctx, product.TypeID)
	s.publishMovement(ctx, "product.deleted", product.TypeID, product.ProductID, models.ActionDeleted, 1, actorID)
	s.logger.Info("product deleted", zap.String("productId", product.ProductID))

	return nil
}
