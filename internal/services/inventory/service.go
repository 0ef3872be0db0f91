package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventra-system/internal/database/models"
	"inventra-system/internal/messaging"
	"inventra-system/internal/services/identifier"
	"inventra-system/internal/services/serviceerr"
)

const (
	LEDGER_CACHE_PREFIX  = "inventory:ledger:"
	PRODUCT_CACHE_PREFIX = "inventory:product:"
	PRODUCTS_CACHE_KEY   = "inventory:products"
	CACHE_TTL_SHORT      = 5 * time.Minute
	CACHE_TTL_MEDIUM     = 30 * time.Minute
)

// Service owns the stock ledger, the product lifecycle state machine, the
// custody synchronizer and the consumable operations. Every boundary
// operation runs its full multi-record mutation in one transaction.
type Service struct {
	db       *gorm.DB
	redis    *redis.Client
	ids      *identifier.Allocator
	producer messaging.Producer
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(db *gorm.DB, redisClient *redis.Client, ids *identifier.Allocator, producer messaging.Producer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if producer == nil {
		producer = messaging.NopProducer{}
	}
	return &Service{
		db:       db,
		redis:    redisClient,
		ids:      ids,
		producer: producer,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) InvalidateInventoryCaches(ctx context.Context, typeID ...int64) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, PRODUCTS_CACHE_KEY)
	for _, id := range typeID {
		_ = s.redis.Del(ctx, fmt.Sprintf("%s%d", LEDGER_CACHE_PREFIX, id))
	}
}

// publishMovement emits a movement event after a committed change.
// Publishing is best-effort; failures are logged, never propagated.
func (s *Service) publishMovement(ctx context.Context, eventType string, typeID int64, productID string, action models.MovementAction, qty, actor int64) {
	event := messaging.MovementEvent{
		Type:      eventType,
		TypeID:    typeID,
		ProductID: productID,
		Action:    action,
		Quantity:  qty,
		Actor:     actor,
		Timestamp: s.now(),
	}
	if err := s.producer.PublishMovement(ctx, event); err != nil {
		s.logger.Warn("failed to publish movement event",
			zap.String("type", eventType), zap.Error(err))
	}
}

func (s *Service) loadType(ctx context.Context, tx *gorm.DB, typeID int64) (*models.ItemType, error) {
	var itemType models.ItemType
	if err := tx.WithContext(ctx).First(&itemType, typeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, serviceerr.NotFound("type %d not found", typeID)
		}
		return nil, serviceerr.Internal(err)
	}
	return &itemType, nil
}

func (s *Service) checkUser(ctx context.Context, tx *gorm.DB, userID int64) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return serviceerr.Internal(err)
	}
	if count == 0 {
		return serviceerr.NotFound("user %d not found", userID)
	}
	return nil
}

func (s *Service) checkEmployee(ctx context.Context, tx *gorm.DB, employeeID int64) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&models.Employee{}).Where("id = ?", employeeID).Count(&count).Error; err != nil {
		return serviceerr.Internal(err)
	}
	if count == 0 {
		return serviceerr.NotFound("employee %d not found", employeeID)
	}
	return nil
}

// observedState narrows a product query to the status and owner the caller
// read before deciding on a transition. A write guarded this way affects
// zero rows when a concurrent writer changed the product in between.
func observedState(query *gorm.DB, product *models.Product) *gorm.DB {
	query = query.Where("id = ? AND status = ?", product.ID, product.Status)
	if product.CurrentOwnerID == nil {
		return query.Where("current_owner_id IS NULL")
	}
	return query.Where("current_owner_id = ?", *product.CurrentOwnerID)
}

// saveProductTransition writes a product update conditional on the observed
// state, in the same single-statement style the ledger counters use. Zero
// rows affected means another writer got there first and the caller's
// validation no longer holds.
func (s *Service) saveProductTransition(ctx context.Context, tx *gorm.DB, product *models.Product, updates map[string]interface{}) error {
	res := observedState(tx.WithContext(ctx).Model(&models.Product{}), product).
		Updates(updates)
	if res.Error != nil {
		return serviceerr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return serviceerr.Conflict("product %s was modified concurrently, retry", product.ProductID)
	}
	return nil
}

func (s *Service) loadProduct(ctx context.Context, tx *gorm.DB, productID int64) (*models.Product, error) {
	var product models.Product
	if err := tx.WithContext(ctx).Preload("Type").First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, serviceerr.NotFound("product %d not found", productID)
		}
		return nil, serviceerr.Internal(err)
	}
	return &product, nil
}
