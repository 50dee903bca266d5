package services

import (
	"testing"

	"stayhub-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pctAdj(direction string, magnitude float64, scope string, targetID uint) AdjustmentInput {
	return AdjustmentInput{
		Kind:        models.AdjustmentKindPercentage,
		Direction:   direction,
		Magnitude:   magnitude,
		TargetScope: scope,
		TargetID:    targetID,
	}
}

func fixedAdj(direction string, magnitude float64, scope string, targetID uint) AdjustmentInput {
	in := pctAdj(direction, magnitude, scope, targetID)
	in.Kind = models.AdjustmentKindFixedAmount
	return in
}

func eventInput(t *testing.T, inv *inventory, start, end string, adjs ...AdjustmentInput) EventInput {
	t.Helper()
	return EventInput{
		Name:        "Summer Festival",
		BranchID:    inv.branch.ID,
		StartDate:   date(t, start),
		EndDate:     date(t, end),
		Adjustments: adjs,
	}
}

func TestCreateEventFutureIsScheduled(t *testing.T) {
	env := newPricingEnv(t, "2024-06-01")

	ev, res, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-07-01", "2024-07-05",
		pctAdj(models.AdjustmentDirectionIncrease, 50, models.TargetScopeSpecificRoom, env.inv.room101.ID)))
	require.NoError(t, err)

	assert.Equal(t, models.EventStatusScheduled, ev.Status)
	assert.Nil(t, res)
	assert.Equal(t, 1000000.0, displayOf(t, env.db, env.inv.room101.ID))
}

func TestCreateEventInRangeActivatesImmediately(t *testing.T) {
	env := newPricingEnv(t, "2024-07-03")

	ev, res, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-07-01", "2024-07-05",
		pctAdj(models.AdjustmentDirectionIncrease, 50, models.TargetScopeSpecificRoom, env.inv.room101.ID)))
	require.NoError(t, err)

	assert.Equal(t, models.EventStatusActive, ev.Status)
	require.NotNil(t, res)
	assert.Equal(t, 1, res.RoomsPriced)
	assert.False(t, res.Partial())
	assert.Equal(t, 1500000.0, displayOf(t, env.db, env.inv.room101.ID))
}

func TestCreateEventInvalidRange(t *testing.T) {
	env := newPricingEnv(t, "2024-06-01")

	_, _, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-07-05", "2024-07-01"))
	require.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCreateEventMissingBranch(t *testing.T) {
	env := newPricingEnv(t, "2024-06-01")

	in := eventInput(t, env.inv, "2024-07-01", "2024-07-05")
	in.BranchID = 99999
	_, _, err := env.events.CreateEvent(in)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestActivateAppliesAndCompleteReverts(t *testing.T) {
	env := newPricingEnv(t, "2024-06-01")

	// room102: base 2000, standing discount 10% -> standing price 1800
	ev, _, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-07-01", "2024-07-05",
		fixedAdj(models.AdjustmentDirectionIncrease, 500, models.TargetScopeSpecificRoom, env.inv.room102.ID)))
	require.NoError(t, err)
	assert.Equal(t, 1800.0, displayOf(t, env.db, env.inv.room102.ID))

	ev, res, err := env.events.ActivateEvent(ev.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusActive, ev.Status)
	assert.Equal(t, 1, res.RoomsPriced)
	// event price derives from base, not from the discounted standing price
	assert.Equal(t, 2500.0, displayOf(t, env.db, env.inv.room102.ID))

	ev, res, err = env.events.CompleteEvent(ev.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusCompleted, ev.Status)
	assert.Equal(t, "revert", res.Operation)
	assert.Equal(t, 1800.0, displayOf(t, env.db, env.inv.room102.ID))
}

func TestTransitionFromWrongStatus(t *testing.T) {
	env := newPricingEnv(t, "2024-07-03")

	ev, _, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-07-01", "2024-07-05",
		pctAdj(models.AdjustmentDirectionIncrease, 50, models.TargetScopeSpecificRoom, env.inv.room101.ID)))
	require.NoError(t, err)
	require.Equal(t, models.EventStatusActive, ev.Status)

	_, _, err = env.events.ActivateEvent(ev.ID)
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, _, err = env.events.CompleteEvent(99999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCancelScheduledLeavesPricesAlone(t *testing.T) {
	env := newPricingEnv(t, "2024-06-01")

	ev, _, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-07-01", "2024-07-05",
		pctAdj(models.AdjustmentDirectionIncrease, 50, models.TargetScopeSpecificRoom, env.inv.room101.ID)))
	require.NoError(t, err)

	ev, res, err := env.events.CancelEvent(ev.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusCancelled, ev.Status)
	assert.Nil(t, res)
	assert.Equal(t, 1000000.0, displayOf(t, env.db, env.inv.room101.ID))
}

func TestCancelActiveReverts(t *testing.T) {
	env := newPricingEnv(t, "2024-07-03")

	ev, _, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-07-01", "2024-07-05",
		pctAdj(models.AdjustmentDirectionIncrease, 50, models.TargetScopeSpecificRoom, env.inv.room101.ID)))
	require.NoError(t, err)
	require.Equal(t, 1500000.0, displayOf(t, env.db, env.inv.room101.ID))

	ev, res, err := env.events.CancelEvent(ev.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusCancelled, ev.Status)
	require.NotNil(t, res)
	assert.Equal(t, "revert", res.Operation)
	assert.Equal(t, 1000000.0, displayOf(t, env.db, env.inv.room101.ID))
}

func TestCancelTerminalEvent(t *testing.T) {
	env := newPricingEnv(t, "2024-07-03")

	ev, _, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-07-01", "2024-07-05"))
	require.NoError(t, err)
	_, _, err = env.events.CancelEvent(ev.ID)
	require.NoError(t, err)

	_, _, err = env.events.CancelEvent(ev.ID)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

// When a category-wide and a room-specific adjustment both target the same
// room, the room-specific one wins; the rest of the category keeps the
// category price.
func TestMostSpecificScopeWins(t *testing.T) {
	env := newPricingEnv(t, "2024-07-03")

	_, res, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-07-01", "2024-07-05",
		pctAdj(models.AdjustmentDirectionIncrease, 20, models.TargetScopeSpecificRoom, env.inv.room101.ID),
		pctAdj(models.AdjustmentDirectionDecrease, 10, models.TargetScopeCategory, env.inv.standard.ID)))
	require.NoError(t, err)
	assert.False(t, res.Partial())

	assert.Equal(t, 1200000.0, displayOf(t, env.db, env.inv.room101.ID))
	assert.Equal(t, 1800.0, displayOf(t, env.db, env.inv.room102.ID))
}

// A category event re-prices every room of every type in the category and
// leaves rooms outside it alone; completing it reverts all of them.
func TestCategoryEventPricesAllTypesInCategory(t *testing.T) {
	env := newPricingEnv(t, "2024-07-03")

	_, supRooms := addRoomType(t, env.db, env.inv, &env.inv.standard.ID, "Superior", "201", "202")

	ev, res, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-07-01", "2024-07-05",
		pctAdj(models.AdjustmentDirectionDecrease, 10, models.TargetScopeCategory, env.inv.standard.ID)))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 4, res.RoomsPriced)

	assert.Equal(t, 900000.0, displayOf(t, env.db, env.inv.room101.ID))
	assert.Equal(t, 1800.0, displayOf(t, env.db, env.inv.room102.ID))
	assert.Equal(t, 1350.0, displayOf(t, env.db, supRooms[0].ID))
	assert.Equal(t, 1350.0, displayOf(t, env.db, supRooms[1].ID))
	// premium category untouched
	assert.Equal(t, 2600.0, displayOf(t, env.db, env.inv.room301.ID))

	_, _, err = env.events.CompleteEvent(ev.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000000.0, displayOf(t, env.db, env.inv.room101.ID))
	assert.Equal(t, 1500.0, displayOf(t, env.db, supRooms[0].ID))
	assert.Equal(t, 1500.0, displayOf(t, env.db, supRooms[1].ID))
}

func TestUpdateActiveReplacesAdjustments(t *testing.T) {
	env := newPricingEnv(t, "2024-07-03")

	ev, _, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-07-01", "2024-07-05",
		pctAdj(models.AdjustmentDirectionIncrease, 50, models.TargetScopeSpecificRoom, env.inv.room101.ID)))
	require.NoError(t, err)
	require.Equal(t, 1500000.0, displayOf(t, env.db, env.inv.room101.ID))

	ev, _, err = env.events.UpdateEvent(ev.ID, eventInput(t, env.inv, "2024-07-01", "2024-07-05",
		pctAdj(models.AdjustmentDirectionIncrease, 10, models.TargetScopeSpecificRoom, env.inv.room101.ID)))
	require.NoError(t, err)

	assert.Equal(t, models.EventStatusActive, ev.Status)
	require.Len(t, ev.Adjustments, 1)
	assert.Equal(t, 10.0, ev.Adjustments[0].Magnitude)
	// new magnitude applies against the base price, never the prior event price
	assert.Equal(t, 1100000.0, displayOf(t, env.db, env.inv.room101.ID))
}

func TestUpdateRederivesStatusFromDates(t *testing.T) {
	env := newPricingEnv(t, "2024-06-01")

	ev, _, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-07-01", "2024-07-05",
		pctAdj(models.AdjustmentDirectionIncrease, 50, models.TargetScopeSpecificRoom, env.inv.room101.ID)))
	require.NoError(t, err)

	// moving the range over today activates the event
	in := eventInput(t, env.inv, "2024-05-30", "2024-06-10")
	in.Adjustments = nil // keep existing adjustments
	ev, res, err := env.events.UpdateEvent(ev.ID, in)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusActive, ev.Status)
	require.NotNil(t, res)
	assert.Equal(t, 1500000.0, displayOf(t, env.db, env.inv.room101.ID))

	// moving it back into the future reverts and reschedules
	in = eventInput(t, env.inv, "2024-08-01", "2024-08-05")
	in.Adjustments = nil
	ev, _, err = env.events.UpdateEvent(ev.ID, in)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusScheduled, ev.Status)
	assert.Equal(t, 1000000.0, displayOf(t, env.db, env.inv.room101.ID))
}

func TestUpdateTerminalEvents(t *testing.T) {
	env := newPricingEnv(t, "2024-07-03")

	completed, _, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-07-01", "2024-07-05"))
	require.NoError(t, err)
	_, _, err = env.events.CompleteEvent(completed.ID)
	require.NoError(t, err)

	_, _, err = env.events.UpdateEvent(completed.ID, eventInput(t, env.inv, "2024-07-01", "2024-07-05"))
	require.ErrorIs(t, err, ErrImmutableState)

	cancelled, _, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-08-01", "2024-08-05"))
	require.NoError(t, err)
	_, _, err = env.events.CancelEvent(cancelled.ID)
	require.NoError(t, err)

	_, _, err = env.events.UpdateEvent(cancelled.ID, eventInput(t, env.inv, "2024-08-01", "2024-08-05"))
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDeleteEventLegality(t *testing.T) {
	env := newPricingEnv(t, "2024-06-01")

	scheduled, _, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-07-01", "2024-07-05"))
	require.NoError(t, err)
	require.NoError(t, env.events.DeleteEvent(scheduled.ID))
	_, err = env.events.GetEvent(scheduled.ID)
	require.ErrorIs(t, err, ErrNotFound)

	env.clock.set(t, "2024-07-03")
	active, _, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-07-01", "2024-07-05"))
	require.NoError(t, err)
	require.ErrorIs(t, env.events.DeleteEvent(active.ID), ErrImmutableState)

	_, _, err = env.events.CancelEvent(active.ID)
	require.NoError(t, err)
	require.NoError(t, env.events.DeleteEvent(active.ID))
}

// One unresolvable adjustment is recorded as a failure; the rest of the event
// still applies and the transition completes.
func TestPartialApplyContinues(t *testing.T) {
	env := newPricingEnv(t, "2024-07-03")

	ev, res, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-07-01", "2024-07-05",
		pctAdj(models.AdjustmentDirectionIncrease, 50, models.TargetScopeSpecificRoom, 99999),
		pctAdj(models.AdjustmentDirectionIncrease, 50, models.TargetScopeSpecificRoom, env.inv.room101.ID)))
	require.NoError(t, err)

	assert.Equal(t, models.EventStatusActive, ev.Status)
	require.NotNil(t, res)
	assert.True(t, res.Partial())
	assert.Equal(t, 1, res.RoomsPriced)
	require.Len(t, res.Failures, 1)
	assert.Contains(t, res.Failures[0].Reason, "99999")
	assert.Equal(t, 1500000.0, displayOf(t, env.db, env.inv.room101.ID))

	stored, err := env.events.GetEvent(ev.ID)
	require.NoError(t, err)
	assert.Contains(t, string(stored.LastApplyReport), "99999")
}

func TestEventsDueListing(t *testing.T) {
	env := newPricingEnv(t, "2024-07-01")

	starting, _, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-07-10", "2024-07-12"))
	require.NoError(t, err)

	running, _, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-06-28", "2024-07-05"))
	require.NoError(t, err)
	require.Equal(t, models.EventStatusActive, running.Status)

	toActivate, err := env.events.EventsToActivate(date(t, "2024-07-10"))
	require.NoError(t, err)
	require.Len(t, toActivate, 1)
	assert.Equal(t, starting.ID, toActivate[0].ID)

	toComplete, err := env.events.EventsToComplete(date(t, "2024-07-06"))
	require.NoError(t, err)
	require.Len(t, toComplete, 1)
	assert.Equal(t, running.ID, toComplete[0].ID)

	// end date not yet passed
	toComplete, err = env.events.EventsToComplete(date(t, "2024-07-05"))
	require.NoError(t, err)
	assert.Empty(t, toComplete)
}

func TestListEventsFilters(t *testing.T) {
	env := newPricingEnv(t, "2024-06-01")

	_, _, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-07-01", "2024-07-05"))
	require.NoError(t, err)
	cancelled, _, err := env.events.CreateEvent(eventInput(t, env.inv, "2024-08-01", "2024-08-05"))
	require.NoError(t, err)
	_, _, err = env.events.CancelEvent(cancelled.ID)
	require.NoError(t, err)

	all, err := env.events.ListEvents(EventFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scheduled, err := env.events.ListEvents(EventFilter{Status: models.EventStatusScheduled})
	require.NoError(t, err)
	assert.Len(t, scheduled, 1)

	from, to := date(t, "2024-07-02"), date(t, "2024-07-03")
	july, err := env.events.ListEvents(EventFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, july, 1)
}
