package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventra-system/internal/database/models"
	"inventra-system/internal/services/serviceerr"
)

func TestTransitionForAllowedPairs(t *testing.T) {
	tests := []struct {
		name    string
		prev    models.ProductStatus
		next    models.ProductStatus
		delta   delta
		action  models.MovementAction
		logged  bool
		custody custodyEffect
	}{
		{"assign", models.StatusAvailable, models.StatusAssigned,
			delta{used: 1}, models.ActionOut, true, custodySet},
		{"return to available", models.StatusAssigned, models.StatusAvailable,
			delta{used: -1}, models.ActionIn, true, custodyClear},
		{"send to maintenance", models.StatusAvailable, models.StatusMaintenance,
			delta{maintenance: 1}, models.ActionOut, true, custodyNone},
		{"back from maintenance", models.StatusMaintenance, models.StatusAvailable,
			delta{maintenance: -1}, models.ActionIn, true, custodyNone},
		{"assigned to maintenance", models.StatusAssigned, models.StatusMaintenance,
			delta{used: -1, maintenance: 1}, models.ActionOut, true, custodyClear},
		{"maintenance straight to assigned", models.StatusMaintenance, models.StatusAssigned,
			delta{maintenance: -1, used: 1}, models.ActionOut, true, custodySet},
		{"write off available", models.StatusAvailable, models.StatusUnusable,
			delta{unusable: 1}, models.ActionDisburst, true, custodyNone},
		{"write off assigned", models.StatusAssigned, models.StatusUnusable,
			delta{unusable: 1, used: -1}, models.ActionDisburst, true, custodyClear},
		{"write off from maintenance", models.StatusMaintenance, models.StatusUnusable,
			delta{unusable: 1, maintenance: -1}, models.ActionDisburst, true, custodyNone},
		{"restore unusable", models.StatusUnusable, models.StatusAvailable,
			delta{unusable: -1}, models.ActionIn, true, custodyNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			effect, err := transitionFor(tt.prev, tt.next)
			require.NoError(t, err)
			assert.Equal(t, tt.delta, effect.delta)
			assert.Equal(t, tt.logged, effect.logged)
			assert.Equal(t, tt.custody, effect.custody)
			if tt.logged {
				assert.Equal(t, tt.action, effect.action)
			}
		})
	}
}

func TestTransitionForReassignment(t *testing.T) {
	effect, err := transitionFor(models.StatusAssigned, models.StatusAssigned)
	require.NoError(t, err)

	// Moving custody between employees touches no counter and writes no
	// history entry.
	assert.True(t, effect.delta.isZero())
	assert.False(t, effect.logged)
	assert.Equal(t, custodyMove, effect.custody)
}

func TestTransitionForForbiddenPairs(t *testing.T) {
	forbidden := []struct {
		prev models.ProductStatus
		next models.ProductStatus
	}{
		{models.StatusUnusable, models.StatusAssigned},
		{models.StatusUnusable, models.StatusMaintenance},
		{models.StatusUnusable, models.StatusUnusable},
		{models.StatusAvailable, models.StatusAvailable},
		{models.StatusMaintenance, models.StatusMaintenance},
	}

	for _, tt := range forbidden {
		_, err := transitionFor(tt.prev, tt.next)
		require.Error(t, err, "%s -> %s", tt.prev, tt.next)
		assert.True(t, serviceerr.IsConflict(err))
	}
}

func TestTransitionForUnknownStatus(t *testing.T) {
	_, err := transitionFor(models.StatusAvailable, models.ProductStatus("LOST"))
	require.Error(t, err)
	assert.Equal(t, serviceerr.CodeValidation, serviceerr.CodeOf(err))
}

func TestUnusableToAssignedMessage(t *testing.T) {
	_, err := transitionFor(models.StatusUnusable, models.StatusAssigned)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "restore it to available first")
}

func TestDeltaIsZero(t *testing.T) {
	assert.True(t, delta{}.isZero())
	assert.False(t, delta{quantity: 1}.isZero())
	assert.False(t, delta{used: -1}.isZero())
	assert.False(t, delta{unusable: 1}.isZero())
	assert.False(t, delta{maintenance: -1}.isZero())
}
