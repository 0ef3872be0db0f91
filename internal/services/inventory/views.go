package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"inventra-system/internal/database/models"
	"inventra-system/internal/services/serviceerr"
)

const recentMovementLimit = 50

// GetLedger returns the counters and recent movements for a type, served
// from cache when fresh.
func (s *Service) GetLedger(ctx context.Context, typeID int64) (*models.InventoryRecord, error) {
	cacheKey := fmt.Sprintf("%s%d", LEDGER_CACHE_PREFIX, typeID)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var record models.InventoryRecord
			if json.Unmarshal([]byte(cached), &record) == nil {
				return &record, nil
			}
		}
	}

	var record models.InventoryRecord
	err := s.db.WithContext(ctx).
		Preload("Type").
		Preload("Movements", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC").Limit(recentMovementLimit)
		}).
		Where("type_id = ?", typeID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, serviceerr.NotFound("no inventory record for type %d", typeID)
		}
		return nil, serviceerr.Internal(err)
	}

	if s.redis != nil {
		if payload, err := json.Marshal(record); err == nil {
			_ = s.redis.Set(ctx, cacheKey, payload, CACHE_TTL_SHORT)
		}
	}
	return &record, nil
}

// GetProduct loads a product with its type, owner and custody history.
func (s *Service) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).
		Preload("Type").
		Preload("CurrentOwner").
		Preload("CustodyHistory").
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, serviceerr.NotFound("product %d not found", id)
		}
		return nil, serviceerr.Internal(err)
	}
	return &product, nil
}

// GetProductByCode loads a product by its generated identifier.
func (s *Service) GetProductByCode(ctx context.Context, code string) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).
		Preload("Type").
		Preload("CurrentOwner").
		Preload("CustodyHistory").
		Where("product_id = ?", code).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, serviceerr.NotFound("product %s not found", code)
		}
		return nil, serviceerr.Internal(err)
	}
	return &product, nil
}

type ProductFilter struct {
	TypeID     *int64
	Status     *models.ProductStatus
	SearchTerm string
	Page       int
	PageSize   int
}

// ListProducts pages through products, optionally filtered by type, status
// and a fuzzy term over identifier and name.
func (s *Service) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{}).
		Preload("Type").Preload("CurrentOwner")

	if filter.TypeID != nil {
		query = query.Where("type_id = ?", *filter.TypeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.SearchTerm != "" {
		term := "%" + filter.SearchTerm + "%"
		query = query.Where("product_id ILIKE ? OR name ILIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, serviceerr.Internal(err)
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var products []models.Product
	err := query.Order("id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error
	if err != nil {
		return nil, 0, serviceerr.Internal(err)
	}
	return products, total, nil
}

// ListEmployeeAssets returns the products currently held by an employee.
func (s *Service) ListEmployeeAssets(ctx context.Context, employeeID int64) ([]models.Product, error) {
	if err := s.checkEmployee(ctx, s.db, employeeID); err != nil {
		return nil, err
	}

	var products []models.Product
	err := s.db.WithContext(ctx).
		Preload("Type").
		Where("current_owner_id = ?", employeeID).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, serviceerr.Internal(err)
	}
	return products, nil
}

// LowStockItem is a consumable type whose remaining quantity has dropped
// to or below the alert threshold.
type LowStockItem struct {
	TypeID   int64  `json:"typeId"`
	TypeName string `json:"typeName"`
	Quantity int64  `json:"quantity"`
}

// ListLowStockConsumables is the alert scheduler's scan.
func (s *Service) ListLowStockConsumables(ctx context.Context, threshold int64) ([]LowStockItem, error) {
	var items []LowStockItem
	err := s.db.WithContext(ctx).Model(&models.InventoryRecord{}).
		Select("inventory_records.type_id AS type_id, item_types.name AS type_name, inventory_records.quantity AS quantity").
		Joins("JOIN item_types ON item_types.id = inventory_records.type_id").
		Where("item_types.tracking_mode = ? AND inventory_records.quantity <= ?",
			models.TrackingModeConsumable, threshold).
		Order("inventory_records.quantity").
		Scan(&items).Error
	if err != nil {
		return nil, serviceerr.Internal(err)
	}
	return items, nil
}
