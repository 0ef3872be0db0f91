package inventory

import (
	"inventra-system/internal/database/models"
	"inventra-system/internal/services/serviceerr"
)

// custodyEffect says what a transition does to the product's custodian.
type custodyEffect int

const (
	custodyNone custodyEffect = iota
	custodySet
	custodyClear
	custodyMove
)

// transitionEffect is everything a (prev, next) status pair implies: the
// counter deltas, the history action (when logged is true), and the custody
// change. Reassignment is the one transition with no ledger entry.
type transitionEffect struct {
	delta   delta
	action  models.MovementAction
	logged  bool
	custody custodyEffect
}

type statusPair struct {
	prev, next models.ProductStatus
}

var transitions = map[statusPair]transitionEffect{
	{models.StatusAvailable, models.StatusAssigned}: {
		delta:   delta{used: 1},
		action:  models.ActionOut,
		logged:  true,
		custody: custodySet,
	},
	{models.StatusAssigned, models.StatusAvailable}: {
		delta:   delta{used: -1},
		action:  models.ActionIn,
		logged:  true,
		custody: custodyClear,
	},
	{models.StatusAvailable, models.StatusMaintenance}: {
		delta:  delta{maintenance: 1},
		action: models.ActionOut,
		logged: true,
	},
	{models.StatusMaintenance, models.StatusAvailable}: {
		delta:  delta{maintenance: -1},
		action: models.ActionIn,
		logged: true,
	},
	{models.StatusAssigned, models.StatusMaintenance}: {
		delta:   delta{used: -1, maintenance: 1},
		action:  models.ActionOut,
		logged:  true,
		custody: custodyClear,
	},
	{models.StatusMaintenance, models.StatusAssigned}: {
		delta:   delta{maintenance: -1, used: 1},
		action:  models.ActionOut,
		logged:  true,
		custody: custodySet,
	},
	{models.StatusAvailable, models.StatusUnusable}: {
		delta:  delta{unusable: 1},
		action: models.ActionDisburst,
		logged: true,
	},
	{models.StatusAssigned, models.StatusUnusable}: {
		delta:   delta{unusable: 1, used: -1},
		action:  models.ActionDisburst,
		logged:  true,
		custody: custodyClear,
	},
	{models.StatusMaintenance, models.StatusUnusable}: {
		delta:  delta{unusable: 1, maintenance: -1},
		action: models.ActionDisburst,
		logged: true,
	},
	{models.StatusUnusable, models.StatusAvailable}: {
		delta:  delta{unusable: -1},
		action: models.ActionIn,
		logged: true,
	},
	// Reassignment: custody moves between employees, counters stay put and
	// no history entry is written.
	{models.StatusAssigned, models.StatusAssigned}: {
		custody: custodyMove,
	},
}

// transitionFor resolves the effect for a status pair. Pairs absent from
// the table are rejected, never silently no-oped.
func transitionFor(prev, next models.ProductStatus) (transitionEffect, error) {
	if !validStatus(next) {
		return transitionEffect{}, serviceerr.Validation("unknown status %q", next)
	}

	effect, ok := transitions[statusPair{prev, next}]
	if !ok {
		if prev == models.StatusUnusable && next == models.StatusAssigned {
			return transitionEffect{}, serviceerr.Conflict(
				"an unusable product cannot be assigned, restore it to available first")
		}
		return transitionEffect{}, serviceerr.Conflict(
			"transition from %s to %s is not allowed", prev, next)
	}
	return effect, nil
}

func validStatus(status models.ProductStatus) bool {
	switch status {
	case models.StatusAvailable, models.StatusAssigned, models.StatusUnusable, models.StatusMaintenance:
		return true
	}
	return false
}
