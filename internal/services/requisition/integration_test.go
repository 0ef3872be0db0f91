//go:build integration

package requisition

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"inventra-system/internal/database"
	"inventra-system/internal/database/models"
	"inventra-system/internal/services/serviceerr"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestRecordAddedCeiling(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	suffix := time.Now().UnixNano() % 1_000_000_000
	typeID := suffix
	req := models.Requisition{
		RequisitionID:      fmt.Sprintf("REQ%09d", suffix),
		Status:             models.RequisitionApproved,
		RequestedByID:      1,
		TotalEstimatedCost: decimal.Zero,
		TotalApprovedCost:  decimal.Zero,
		Items: []models.RequisitionItem{{
			TypeID:            typeID,
			QuantityRequested: 2,
			QuantityApproved:  2,
			EstimatedCost:     decimal.Zero,
			ApprovedCost:      decimal.Zero,
		}},
	}
	require.NoError(t, db.Create(&req).Error)

	recordAdded := func(count int64) error {
		return db.Transaction(func(tx *gorm.DB) error {
			return RecordAdded(ctx, tx, req.ID, typeID, count)
		})
	}

	// Overshooting the ceiling fails atomically and names the remainder.
	err := recordAdded(3)
	require.Error(t, err)
	assert.True(t, serviceerr.IsConflict(err))
	assert.Equal(t, "you may add 2 only", serviceerr.HintOf(err))

	require.NoError(t, recordAdded(2))

	err = recordAdded(1)
	require.Error(t, err)
	assert.True(t, serviceerr.IsConflict(err))
	assert.Equal(t, "you may add 0 only", serviceerr.HintOf(err))

	var item models.RequisitionItem
	require.NoError(t, db.Where("requisition_id = ?", req.ID).First(&item).Error)
	assert.Equal(t, int64(2), item.AddedToInventory)
}
