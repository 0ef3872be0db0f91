package requisition

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventra-system/internal/database/models"
	"inventra-system/internal/services/identifier"
	"inventra-system/internal/services/serviceerr"
)

const (
	REQUISITION_CACHE_PREFIX = "requisition:"
	REQUISITION_LIST_KEY     = "requisition:list"
	CACHE_TTL_SHORT          = 5 * time.Minute
)

// Service owns requisition creation, the Requested/Approved/Rejected action
// transition, and the per-item fulfillment counters.
type Service struct {
	db     *gorm.DB
	redis  *redis.Client
	ids    *identifier.Allocator
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *gorm.DB, redisClient *redis.Client, ids *identifier.Allocator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:     db,
		redis:  redisClient,
		ids:    ids,
		logger: logger,
		now:    time.Now,
	}
}

type ItemInput struct {
	TypeID        int64           `json:"typeId"`
	VendorID      *int64          `json:"vendor"`
	Quantity      int64           `json:"quantityRequested"`
	EstimatedCost decimal.Decimal `json:"estimatedCost"`
	Documents     []string        `json:"documents"`
}

type CreateInput struct {
	RequestedByID int64       `json:"-"`
	Items         []ItemInput `json:"items"`
}

// Create validates the line items, allocates the monthly requisition number
// and persists the requisition with its derived totals.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Requisition, error) {
	if len(in.Items) == 0 {
		return nil, serviceerr.Validation("at least one item is required")
	}

	seen := make(map[int64]bool, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, serviceerr.Validation("item quantity must be greater than 0")
		}
		if item.EstimatedCost.IsNegative() {
			return nil, serviceerr.Validation("estimated cost cannot be negative")
		}
		if seen[item.TypeID] {
			return nil, serviceerr.Conflict("type %d appears more than once", item.TypeID)
		}
		seen[item.TypeID] = true

		var count int64
		if err := s.db.WithContext(ctx).Model(&models.ItemType{}).Where("id = ?", item.TypeID).Count(&count).Error; err != nil {
			return nil, serviceerr.Internal(err)
		}
		if count == 0 {
			return nil, serviceerr.NotFound("type %d not found", item.TypeID)
		}
	}

	number, err := s.ids.RequisitionID(ctx, s.now())
	if err != nil {
		return nil, err
	}

	req := models.Requisition{
		RequisitionID:      number,
		Status:             models.RequisitionRequested,
		RequestedByID:      in.RequestedByID,
		TotalEstimatedCost: decimal.Zero,
		TotalApprovedCost:  decimal.Zero,
	}
	for _, item := range in.Items {
		req.Items = append(req.Items, models.RequisitionItem{
			TypeID:            item.TypeID,
			VendorID:          item.VendorID,
			QuantityRequested: item.Quantity,
			EstimatedCost:     item.EstimatedCost,
			ApprovedCost:      decimal.Zero,
			Documents:         item.Documents,
		})
	}
	applyTotals(&req, ComputeTotals(req.Items))

	if err := s.db.WithContext(ctx).Create(&req).Error; err != nil {
		return nil, serviceerr.Internal(err)
	}

	s.invalidateCaches(ctx)
	s.logger.Info("requisition created",
		zap.String("requisitionID", req.RequisitionID),
		zap.Int("items", len(req.Items)))

	return &req, nil
}

type ApproveItemInput struct {
	QuantityApproved *int64           `json:"quantityApproved"`
	ApprovedCost     *decimal.Decimal `json:"approvedCost"`
	VendorApprovedID *int64           `json:"vendorApproved"`
}

// Approve moves a Requested requisition to Approved. The approver's
// adjustments line up with the items by index; any field left unset copies
// the requested value. There is no way back out of Approved.
func (s *Service) Approve(ctx context.Context, id int64, actorID int64, items []ApproveItemInput) (*models.Requisition, error) {
	req, err := s.loadForAction(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(items) > 0 && len(items) != len(req.Items) {
		return nil, serviceerr.Validation("expected %d item entries, got %d", len(req.Items), len(items))
	}

	for i := range req.Items {
		item := &req.Items[i]
		item.QuantityApproved = item.QuantityRequested
		item.ApprovedCost = item.EstimatedCost
		item.VendorApprovedID = item.VendorID

		if len(items) == 0 {
			continue
		}
		if items[i].QuantityApproved != nil {
			if *items[i].QuantityApproved < 0 {
				return nil, serviceerr.Validation("approved quantity cannot be negative")
			}
			item.QuantityApproved = *items[i].QuantityApproved
		}
		if items[i].ApprovedCost != nil {
			item.ApprovedCost = *items[i].ApprovedCost
		}
		if items[i].VendorApprovedID != nil {
			item.VendorApprovedID = items[i].VendorApprovedID
		}
	}

	now := s.now()
	req.Status = models.RequisitionApproved
	req.ActionByID = &actorID
	req.ActionAt = &now
	applyTotals(req, ComputeTotals(req.Items))

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range req.Items {
			if err := tx.Model(&models.RequisitionItem{}).
				Where("id = ?", req.Items[i].ID).
				Updates(map[string]interface{}{
					"quantity_approved":  req.Items[i].QuantityApproved,
					"approved_cost":      req.Items[i].ApprovedCost,
					"vendor_approved_id": req.Items[i].VendorApprovedID,
				}).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Requisition{}).
			Where("id = ?", req.ID).
			Updates(map[string]interface{}{
				"status":                   req.Status,
				"action_by_id":             req.ActionByID,
				"action_at":                req.ActionAt,
				"total_quantity_requested": req.TotalQuantityRequested,
				"total_quantity_approved":  req.TotalQuantityApproved,
				"total_estimated_cost":     req.TotalEstimatedCost,
				"total_approved_cost":      req.TotalApprovedCost,
			}).Error
	})
	if err != nil {
		return nil, serviceerr.Internal(err)
	}

	s.invalidateCaches(ctx, req.ID)
	s.logger.Info("requisition approved",
		zap.String("requisitionID", req.RequisitionID),
		zap.Int64("actionBy", actorID))

	return req, nil
}

// Reject stamps the action metadata without touching any item data. There
// is no way back out of Rejected.
func (s *Service) Reject(ctx context.Context, id int64, actorID int64) (*models.Requisition, error) {
	req, err := s.loadForAction(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	req.Status = models.RequisitionRejected
	req.ActionByID = &actorID
	req.ActionAt = &now

	err = s.db.WithContext(ctx).Model(&models.Requisition{}).
		Where("id = ?", req.ID).
		Updates(map[string]interface{}{
			"status":       req.Status,
			"action_by_id": req.ActionByID,
			"action_at":    req.ActionAt,
		}).Error
	if err != nil {
		return nil, serviceerr.Internal(err)
	}

	s.invalidateCaches(ctx, req.ID)
	s.logger.Info("requisition rejected",
		zap.String("requisitionID", req.RequisitionID),
		zap.Int64("actionBy", actorID))

	return req, nil
}

// Get loads a requisition by numeric id with its items.
func (s *Service) Get(ctx context.Context, id int64) (*models.Requisition, error) {
	var req models.Requisition
	if err := s.db.WithContext(ctx).Preload("Items").First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, serviceerr.NotFound("requisition %d not found", id)
		}
		return nil, serviceerr.Internal(err)
	}
	return &req, nil
}

// GetByNumber loads a requisition by its generated identifier.
func (s *Service) GetByNumber(ctx context.Context, number string) (*models.Requisition, error) {
	var req models.Requisition
	err := s.db.WithContext(ctx).Preload("Items").
		Where("requisition_id = ?", number).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, serviceerr.NotFound("requisition %s not found", number)
		}
		return nil, serviceerr.Internal(err)
	}
	return &req, nil
}

// List returns requisitions newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string, page, pageSize int) ([]models.Requisition, int64, error) {
	if pageSize <= 0 {
		pageSize = 10
	}
	if page <= 0 {
		page = 1
	}

	query := s.db.WithContext(ctx).Model(&models.Requisition{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, serviceerr.Internal(err)
	}

	var reqs []models.Requisition
	err := query.Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&reqs).Error
	if err != nil {
		return nil, 0, serviceerr.Internal(err)
	}
	return reqs, total, nil
}

func (s *Service) loadForAction(ctx context.Context, id int64) (*models.Requisition, error) {
	req, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != models.RequisitionRequested {
		return nil, serviceerr.Conflict("requisition %s is already %s", req.RequisitionID, req.Status)
	}
	return req, nil
}

func (s *Service) invalidateCaches(ctx context.Context, ids ...int64) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, REQUISITION_LIST_KEY)
	for _, id := range ids {
		_ = s.redis.Del(ctx, REQUISITION_CACHE_PREFIX+strconv.FormatInt(id, 10))
	}
}
