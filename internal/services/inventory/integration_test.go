//go:build integration

package inventory

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

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

func seedConsumableType(t *testing.T, db *gorm.DB) (typeID, userID int64) {
	t.Helper()
	suffix := fmt.Sprintf("%d", time.Now().UnixNano())

	category := models.Category{Name: "cat-" + suffix}
	require.NoError(t, db.Create(&category).Error)

	itemType := models.ItemType{
		Name:         "type-" + suffix,
		CategoryID:   category.ID,
		TrackingMode: models.TrackingModeConsumable,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&itemType).Error)

	account := models.User{
		Username:  "user-" + suffix,
		Email:     suffix + "@example.com",
		Password:  "x",
		Firstname: "Test",
		Lastname:  "User",
		IsActive:  true,
	}
	require.NoError(t, db.Create(&account).Error)

	return itemType.ID, account.ID
}

func TestUseStockRoundTrip(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, nil, nil, nil, nil)
	typeID, userID := seedConsumableType(t, db)
	ctx := context.Background()

	_, err := svc.AddStock(ctx, typeID, 5, userID, nil)
	require.NoError(t, err)

	record, err := svc.UseStock(ctx, typeID, 2, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), record.Quantity)
	assert.Equal(t, int64(2), record.UsedQuantity)
}

func TestUseStockInsufficient(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, nil, nil, nil, nil)
	typeID, userID := seedConsumableType(t, db)
	ctx := context.Background()

	_, err := svc.AddStock(ctx, typeID, 5, userID, nil)
	require.NoError(t, err)

	_, err = svc.UseStock(ctx, typeID, 10, userID)
	require.Error(t, err)
	assert.True(t, serviceerr.IsConflict(err))

	// The failed attempt must not have touched the counters.
	record, err := svc.GetLedger(ctx, typeID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), record.Quantity)
	assert.Equal(t, int64(0), record.UsedQuantity)
}

func TestCountersClampAtZero(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, nil, nil, nil, nil)
	typeID, userID := seedConsumableType(t, db)
	ctx := context.Background()

	var record *models.InventoryRecord
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		record, txErr = svc.applyMovement(ctx, tx, typeID, models.ActionOut, 5,
			delta{quantity: -3, used: -5}, nil, userID)
		return txErr
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), record.Quantity)
	assert.Equal(t, int64(0), record.UsedQuantity)
}
