package identifier

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"inventra-system/internal/database/models"
	"inventra-system/internal/services/serviceerr"
)

// Allocator hands out monotonic serials per partition key. Each allocation
// is a single upsert with RETURNING, so concurrent callers can never read
// the same value. Serials are never reused; a caller that fails after
// allocating simply leaves a gap.
//
// Allocation deliberately runs on the root connection rather than any
// enclosing transaction: holding the counter row lock for the lifetime of a
// multi-record transaction would serialize all creations for the same type.
type Allocator struct {
	db  *gorm.DB
	loc *time.Location
}

func NewAllocator(db *gorm.DB, loc *time.Location) *Allocator {
	if loc == nil {
		loc = time.UTC
	}
	return &Allocator{db: db, loc: loc}
}

// NextSerial atomically increments and returns the counter for a key,
// starting at 1 for a key never seen before.
func (a *Allocator) NextSerial(ctx context.Context, key string) (int64, error) {
	var seq int64
	err := a.db.WithContext(ctx).Raw(
		`INSERT INTO serial_counters (key, seq) VALUES (?, 1)
		 ON CONFLICT (key) DO UPDATE SET seq = serial_counters.seq + 1
		 RETURNING seq`, key,
	).Scan(&seq).Error
	if err != nil {
		return 0, fmt.Errorf("allocate serial for %q: %w", key, err)
	}
	return seq, nil
}

// ProductID allocates the next identifier for a product of the given type.
func (a *Allocator) ProductID(ctx context.Context, itemType *models.ItemType) (string, error) {
	if itemType == nil || itemType.Name == "" {
		return "", serviceerr.Validation("type is required for product identifier generation")
	}

	code := DeriveTypeCode(itemType.Name)
	serial, err := a.NextSerial(ctx, code)
	if err != nil {
		return "", serviceerr.Internal(err)
	}
	return FormatProductID(code, serial), nil
}

// RequisitionID allocates the next requisition number for the current month.
func (a *Allocator) RequisitionID(ctx context.Context, now time.Time) (string, error) {
	key := RequisitionKey(now, a.loc)
	serial, err := a.NextSerial(ctx, key)
	if err != nil {
		return "", serviceerr.Internal(err)
	}
	return FormatRequisitionID(key, serial), nil
}
