package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"inventra-system/internal/database/models"
	"inventra-system/internal/services/serviceerr"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=localhost user=inventra dbname=inventra"), &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)
	return db
}

// Every lifecycle write must be conditional on the status and owner the
// caller observed, so two overlapping handovers (or a delete overlapping an
// assignment) cannot both commit.
func TestObservedStateGuardsStatusAndOwner(t *testing.T) {
	db := dryRunDB(t)

	available := &models.Product{ID: 7, ProductID: "LAP000007", Status: models.StatusAvailable}
	stmt := observedState(db.Model(&models.Product{}), available).
		Updates(map[string]interface{}{"status": models.StatusAssigned}).Statement
	sql := stmt.SQL.String()
	assert.Contains(t, sql, "status = ")
	assert.Contains(t, sql, "current_owner_id IS NULL")
	assert.Contains(t, stmt.Vars, models.StatusAvailable)

	owner := int64(3)
	assigned := &models.Product{ID: 7, ProductID: "LAP000007", Status: models.StatusAssigned, CurrentOwnerID: &owner}
	stmt = observedState(db.Model(&models.Product{}), assigned).
		Updates(map[string]interface{}{"status": models.StatusAvailable}).Statement
	sql = stmt.SQL.String()
	assert.Contains(t, sql, "status = ")
	assert.Contains(t, sql, "current_owner_id = ")
	assert.Contains(t, stmt.Vars, owner)
}

func TestObservedStateGuardsDelete(t *testing.T) {
	db := dryRunDB(t)

	product := &models.Product{ID: 9, ProductID: "LAP000009", Status: models.StatusUnusable}
	stmt := observedState(db.Session(&gorm.Session{}), product).
		Delete(&models.Product{}).Statement
	sql := stmt.SQL.String()
	assert.Contains(t, sql, "DELETE")
	assert.Contains(t, sql, "status = ")
	assert.Contains(t, stmt.Vars, models.StatusUnusable)
}

// A guarded write that affects zero rows means the product changed under
// the caller; that surfaces as a conflict, never as silent success.
func TestSaveProductTransitionConflictsWhenStateMoved(t *testing.T) {
	db := dryRunDB(t)
	svc := NewService(db, nil, nil, nil, nil)

	product := &models.Product{ID: 1, ProductID: "LAP000001", Status: models.StatusAvailable}
	err := svc.saveProductTransition(context.Background(), db, product, map[string]interface{}{
		"status":           models.StatusAssigned,
		"current_owner_id": int64(3),
	})
	require.Error(t, err)
	assert.True(t, serviceerr.IsConflict(err))
	assert.Contains(t, err.Error(), "modified concurrently")
}
