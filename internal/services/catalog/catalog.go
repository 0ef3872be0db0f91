package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventra-system/internal/database/models"
	"inventra-system/internal/services/serviceerr"
)

const (
	TYPES_CACHE_KEY      = "catalog:types"
	CATEGORIES_CACHE_KEY = "catalog:categories"
	VENDORS_CACHE_KEY    = "catalog:vendors"
	CACHE_TTL_MEDIUM     = 30 * time.Minute
)

// Service manages the catalog entities the stock engine consumes: item
// types, categories and vendors.
type Service struct {
	db     *gorm.DB
	redis  *redis.Client
	logger *zap.Logger
}

func NewService(db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, redis: redisClient, logger: logger}
}

func (s *Service) invalidateCaches(ctx context.Context) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, TYPES_CACHE_KEY, CATEGORIES_CACHE_KEY, VENDORS_CACHE_KEY)
}

// --- Categories ---

func (s *Service) CreateCategory(ctx context.Context, name string, description *string) (*models.Category, error) {
	if name == "" {
		return nil, serviceerr.Validation("category name is required")
	}
	if err := s.checkNameFree(ctx, &models.Category{}, name, 0); err != nil {
		return nil, err
	}

	category := models.Category{Name: name, Description: description}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, serviceerr.Internal(err)
	}

	s.invalidateCaches(ctx)
	return &category, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if ok := s.fromCache(ctx, CATEGORIES_CACHE_KEY, &categories); ok {
		return categories, nil
	}
	if err := s.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, serviceerr.Internal(err)
	}
	s.toCache(ctx, CATEGORIES_CACHE_KEY, categories)
	return categories, nil
}

// --- Vendors ---

type VendorInput struct {
	Name          string  `json:"name"`
	ContactPerson *string `json:"contactPerson"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
}

func (s *Service) CreateVendor(ctx context.Context, in VendorInput) (*models.Vendor, error) {
	if in.Name == "" {
		return nil, serviceerr.Validation("vendor name is required")
	}
	if err := s.checkNameFree(ctx, &models.Vendor{}, in.Name, 0); err != nil {
		return nil, err
	}

	vendor := models.Vendor{
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		IsActive:      true,
	}
	if err := s.db.WithContext(ctx).Create(&vendor).Error; err != nil {
		return nil, serviceerr.Internal(err)
	}

	s.invalidateCaches(ctx)
	return &vendor, nil
}

func (s *Service) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	var vendors []models.Vendor
	if ok := s.fromCache(ctx, VENDORS_CACHE_KEY, &vendors); ok {
		return vendors, nil
	}
	if err := s.db.WithContext(ctx).Order("name").Find(&vendors).Error; err != nil {
		return nil, serviceerr.Internal(err)
	}
	s.toCache(ctx, VENDORS_CACHE_KEY, vendors)
	return vendors, nil
}

// --- Item types ---

type TypeInput struct {
	Name         string              `json:"name"`
	CategoryID   int64               `json:"categoryId"`
	TrackingMode models.TrackingMode `json:"trackingMode"`
}

// CreateType registers a catalog type. Name and tracking mode drive
// identifier generation and ledger arithmetic respectively; the mode is
// immutable once set.
func (s *Service) CreateType(ctx context.Context, in TypeInput) (*models.ItemType, error) {
	if in.Name == "" {
		return nil, serviceerr.Validation("type name is required")
	}
	if in.TrackingMode != models.TrackingModeAsset && in.TrackingMode != models.TrackingModeConsumable {
		return nil, serviceerr.Validation("tracking mode must be ASSET or CONSUMABLE")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", in.CategoryID).Count(&count).Error; err != nil {
		return nil, serviceerr.Internal(err)
	}
	if count == 0 {
		return nil, serviceerr.NotFound("category %d not found", in.CategoryID)
	}

	if err := s.checkNameFree(ctx, &models.ItemType{}, in.Name, 0); err != nil {
		return nil, err
	}

	itemType := models.ItemType{
		Name:         in.Name,
		CategoryID:   in.CategoryID,
		TrackingMode: in.TrackingMode,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&itemType).Error; err != nil {
		return nil, serviceerr.Internal(err)
	}

	s.invalidateCaches(ctx)
	s.logger.Info("item type created",
		zap.String("name", itemType.Name),
		zap.String("trackingMode", string(itemType.TrackingMode)))
	return &itemType, nil
}

type TypeUpdate struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
}

// UpdateType allows renaming and toggling active status only; category and
// tracking mode are fixed at creation.
func (s *Service) UpdateType(ctx context.Context, id int64, in TypeUpdate) (*models.ItemType, error) {
	itemType, err := s.GetType(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, serviceerr.Validation("type name cannot be empty")
		}
		if err := s.checkNameFree(ctx, &models.ItemType{}, *in.Name, id); err != nil {
			return nil, err
		}
		itemType.Name = *in.Name
	}
	if in.IsActive != nil {
		itemType.IsActive = *in.IsActive
	}

	if err := s.db.WithContext(ctx).Save(itemType).Error; err != nil {
		return nil, serviceerr.Internal(err)
	}

	s.invalidateCaches(ctx)
	return itemType, nil
}

func (s *Service) GetType(ctx context.Context, id int64) (*models.ItemType, error) {
	var itemType models.ItemType
	if err := s.db.WithContext(ctx).Preload("Category").First(&itemType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, serviceerr.NotFound("type %d not found", id)
		}
		return nil, serviceerr.Internal(err)
	}
	return &itemType, nil
}

func (s *Service) ListTypes(ctx context.Context, searchTerm string) ([]models.ItemType, error) {
	var types []models.ItemType
	if searchTerm == "" {
		if ok := s.fromCache(ctx, TYPES_CACHE_KEY, &types); ok {
			return types, nil
		}
	}

	query := s.db.WithContext(ctx).Preload("Category").Order("name")
	if searchTerm != "" {
		query = query.Where("name ILIKE ?", "%"+searchTerm+"%")
	}
	if err := query.Find(&types).Error; err != nil {
		return nil, serviceerr.Internal(err)
	}

	if searchTerm == "" {
		s.toCache(ctx, TYPES_CACHE_KEY, types)
	}
	return types, nil
}

// --- helpers ---

func (s *Service) checkNameFree(ctx context.Context, model interface{}, name string, excludeID int64) error {
	var count int64
	query := s.db.WithContext(ctx).Model(model).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return serviceerr.Internal(err)
	}
	if count > 0 {
		return serviceerr.Conflict("name %q is already taken", name)
	}
	return nil
}

func (s *Service) fromCache(ctx context.Context, key string, dest interface{}) bool {
	if s.redis == nil {
		return false
	}
	cached, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(cached), dest) == nil
}

func (s *Service) toCache(ctx context.Context, key string, value interface{}) {
	if s.redis == nil {
		return
	}
	if payload, err := json.Marshal(value); err == nil {
		_ = s.redis.Set(ctx, key, payload, CACHE_TTL_MEDIUM)
	}
}
