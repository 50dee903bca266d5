package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"stayhub-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventService owns the pricing event state machine and orchestrates
// apply/revert across the rooms each adjustment resolves to.
type EventService struct {
	DB       *gorm.DB
	Resolver *TargetResolver
	Clock    Clock
	Logger   *slog.Logger
}

func NewEventService(db *gorm.DB, resolver *TargetResolver, clock Clock, logger *slog.Logger) *EventService {
	return &EventService{DB: db, Resolver: resolver, Clock: clock, Logger: logger}
}

type AdjustmentInput struct {
	Kind        string
	Direction   string
	Magnitude   float64
	TargetScope string
	TargetID    uint
}

type EventInput struct {
	Name        string
	Description string
	BranchID    uint
	StartDate   time.Time
	EndDate     time.Time
	// Status is honored on update only; empty means re-derive from the dates.
	Status string
	// Nil on update means keep the existing adjustments.
	Adjustments []AdjustmentInput
}

type EventFilter struct {
	BranchID *uint
	Status   string
	From     *time.Time
	To       *time.Time
}

// inRange reports whether day falls in the inclusive [start, end] range.
func inRange(day, start, end time.Time) bool {
	return !day.Before(start) && !day.After(end)
}

// statusForDates re-derives a status from the date range, used by update():
// ACTIVE if today is in range, SCHEDULED if the range is in the future,
// COMPLETED if the end date has already passed.
func statusForDates(today, start, end time.Time) string {
	switch {
	case today.Before(start):
		return models.EventStatusScheduled
	case today.After(end):
		return models.EventStatusCompleted
	default:
		return models.EventStatusActive
	}
}

func validEventStatus(s string) bool {
	switch s {
	case models.EventStatusScheduled, models.EventStatusActive,
		models.EventStatusCompleted, models.EventStatusCancelled:
		return true
	}
	return false
}

// CreateEvent creates the event ACTIVE (adjustments applied immediately) when
// today falls in its range, otherwise SCHEDULED with no pricing effect yet.
func (s *EventService) CreateEvent(in EventInput) (*models.Event, *ApplyResult, error) {
	if in.EndDate.Before(in.StartDate) {
		return nil, nil, fmt.Errorf("start %s after end %s: %w",
			in.StartDate.Format("2006-01-02"), in.EndDate.Format("2006-01-02"), ErrInvalidDateRange)
	}

	var branch models.Branch
	if err := s.DB.First(&branch, in.BranchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("branch %d: %w", in.BranchID, ErrNotFound)
		}
		return nil, nil, err
	}

	ev := models.Event{
		BranchID:    in.BranchID,
		Name:        in.Name,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      models.EventStatusScheduled,
	}
	for _, a := range in.Adjustments {
		ev.Adjustments = append(ev.Adjustments, models.PriceAdjustment{
			Kind:        a.Kind,
			Direction:   a.Direction,
			Magnitude:   a.Magnitude,
			TargetScope: a.TargetScope,
			TargetID:    a.TargetID,
		})
	}

	today := s.Clock.Today()
	var res *ApplyResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ev).Error; err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}
		if !inRange(today, ev.StartDate, ev.EndDate) {
			return nil
		}
		// Apply all possible adjustments and record failures before flipping
		// the status, so the status never runs ahead of the rooms.
		res = s.applyEvent(tx, &ev)
		return s.finishTransition(tx, &ev, models.EventStatusActive, res)
	})
	if err != nil {
		return nil, nil, err
	}
	return &ev, res, nil
}

// ActivateEvent transitions SCHEDULED -> ACTIVE and applies all adjustments.
func (s *EventService) ActivateEvent(id uint) (*models.Event, *ApplyResult, error) {
	return s.transition(id, models.EventStatusScheduled, models.EventStatusActive)
}

// CompleteEvent transitions ACTIVE -> COMPLETED and reverts every targeted
// room to its standing price.
func (s *EventService) CompleteEvent(id uint) (*models.Event, *ApplyResult, error) {
	return s.transition(id, models.EventStatusActive, models.EventStatusCompleted)
}

func (s *EventService) transition(id uint, from, to string) (*models.Event, *ApplyResult, error) {
	var ev models.Event
	var res *ApplyResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.lockEvent(tx, id, &ev); err != nil {
			return err
		}
		if ev.Status != from {
			return fmt.Errorf("cannot move event %d from %s to %s: %w", id, ev.Status, to, ErrInvalidTransition)
		}
		if to == models.EventStatusActive {
			res = s.applyEvent(tx, &ev)
		} else {
			res = s.revertEvent(tx, &ev)
		}
		return s.finishTransition(tx, &ev, to, res)
	})
	if err != nil {
		return nil, nil, err
	}
	return &ev, res, nil
}

// CancelEvent moves any non-terminal event to CANCELLED, reverting first when
// it was ACTIVE.
func (s *EventService) CancelEvent(id uint) (*models.Event, *ApplyResult, error) {
	var ev models.Event
	var res *ApplyResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.lockEvent(tx, id, &ev); err != nil {
			return err
		}
		if ev.Terminal() {
			return fmt.Errorf("cannot cancel %s event %d: %w", ev.Status, id, ErrInvalidTransition)
		}
		if ev.Status == models.EventStatusActive {
			res = s.revertEvent(tx, &ev)
		}
		return s.finishTransition(tx, &ev, models.EventStatusCancelled, res)
	})
	if err != nil {
		return nil, nil, err
	}
	return &ev, res, nil
}

// UpdateEvent edits a SCHEDULED or ACTIVE event. An ACTIVE event's old
// adjustments are reverted before the new state is applied, so the update
// never compounds onto the old pricing. COMPLETED events are immutable.
func (s *EventService) UpdateEvent(id uint, in EventInput) (*models.Event, *ApplyResult, error) {
	if in.EndDate.Before(in.StartDate) {
		return nil, nil, fmt.Errorf("start %s after end %s: %w",
			in.StartDate.Format("2006-01-02"), in.EndDate.Format("2006-01-02"), ErrInvalidDateRange)
	}
	if in.Status != "" && !validEventStatus(in.Status) {
		return nil, nil, fmt.Errorf("unknown status %q: %w", in.Status, ErrInvalidTransition)
	}

	var ev models.Event
	var res *ApplyResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.lockEvent(tx, id, &ev); err != nil {
			return err
		}
		if ev.Status == models.EventStatusCompleted {
			return fmt.Errorf("event %d is completed: %w", id, ErrImmutableState)
		}
		if ev.Status == models.EventStatusCancelled {
			return fmt.Errorf("cannot update cancelled event %d: %w", id, ErrInvalidTransition)
		}

		if ev.Status == models.EventStatusActive {
			res = s.revertEvent(tx, &ev)
		}

		ev.Name = in.Name
		ev.Description = in.Description
		ev.StartDate = in.StartDate
		ev.EndDate = in.EndDate

		if in.Adjustments != nil {
			if err := tx.Where("event_id = ?", ev.ID).Delete(&models.PriceAdjustment{}).Error; err != nil {
				return fmt.Errorf("failed to clear adjustments: %w", err)
			}
			ev.Adjustments = nil
			for _, a := range in.Adjustments {
				adj := models.PriceAdjustment{
					EventID:     ev.ID,
					Kind:        a.Kind,
					Direction:   a.Direction,
					Magnitude:   a.Magnitude,
					TargetScope: a.TargetScope,
					TargetID:    a.TargetID,
				}
				if err := tx.Create(&adj).Error; err != nil {
					return fmt.Errorf("failed to create adjustment: %w", err)
				}
				ev.Adjustments = append(ev.Adjustments, adj)
			}
		}

		newStatus := in.Status
		if newStatus == "" {
			newStatus = statusForDates(s.Clock.Today(), ev.StartDate, ev.EndDate)
		}
		if newStatus == models.EventStatusActive {
			applyRes := s.applyEvent(tx, &ev)
			if res == nil {
				res = applyRes
			} else {
				res.Operation = applyRes.Operation
				res.RoomsPriced = applyRes.RoomsPriced
				res.Failures = append(res.Failures, applyRes.Failures...)
			}
		}
		return s.finishTransition(tx, &ev, newStatus, res)
	})
	if err != nil {
		return nil, nil, err
	}
	return &ev, res, nil
}

// DeleteEvent soft-deletes a SCHEDULED or CANCELLED event. An ACTIVE or
// COMPLETED event's pricing effect must be unwound through the lifecycle, not
// erased, so deletion is rejected.
func (s *EventService) DeleteEvent(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var ev models.Event
		if err := s.lockEvent(tx, id, &ev); err != nil {
			return err
		}
		if ev.Status != models.EventStatusScheduled && ev.Status != models.EventStatusCancelled {
			return fmt.Errorf("cannot delete %s event %d: %w", ev.Status, id, ErrImmutableState)
		}
		if err := tx.Where("event_id = ?", ev.ID).Delete(&models.PriceAdjustment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ev).Error
	})
}

func (s *EventService) GetEvent(id uint) (*models.Event, error) {
	var ev models.Event
	if err := s.DB.Preload("Adjustments").First(&ev, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("event %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &ev, nil
}

func (s *EventService) ListEvents(f EventFilter) ([]models.Event, error) {
	q := s.DB.Preload("Adjustments").Order("created_at DESC")
	if f.BranchID != nil {
		q = q.Where("branch_id = ?", *f.BranchID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil && f.To != nil {
		q = q.Where("start_date <= ? AND end_date >= ?", *f.To, *f.From)
	}
	var events []models.Event
	if err := q.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// EventsToActivate returns SCHEDULED events whose start date is the given day.
func (s *EventService) EventsToActivate(day time.Time) ([]models.Event, error) {
	var events []models.Event
	err := s.DB.Preload("Adjustments").
		Where("status = ? AND start_date = ?", models.EventStatusScheduled, day).
		Order("id").
		Find(&events).Error
	return events, err
}

// EventsToComplete returns ACTIVE events whose end date has passed.
func (s *EventService) EventsToComplete(day time.Time) ([]models.Event, error) {
	var events []models.Event
	err := s.DB.Preload("Adjustments").
		Where("status = ? AND end_date < ?", models.EventStatusActive, day).
		Order("id").
		Find(&events).Error
	return events, err
}

// ---------------------------------------------------------------------------
// internals
// ---------------------------------------------------------------------------

func (s *EventService) lockEvent(tx *gorm.DB, id uint, out *models.Event) error {
	if err := forUpdate(tx).Preload("Adjustments").First(out, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("event %d: %w", id, ErrNotFound)
		}
		return err
	}
	return nil
}

// finishTransition sets the status and persists the apply/revert report as the
// last step, after the room side effects have already happened.
func (s *EventService) finishTransition(tx *gorm.DB, ev *models.Event, status string, res *ApplyResult) error {
	updates := map[string]interface{}{"status": status}
	if res != nil {
		raw, err := json.Marshal(res)
		if err == nil {
			updates["last_apply_report"] = datatypes.JSON(raw)
			ev.LastApplyReport = datatypes.JSON(raw)
		}
	}
	if err := tx.Model(&models.Event{}).Where("id = ?", ev.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update event %d: %w", ev.ID, err)
	}
	ev.Status = status
	return nil
}

// scopeRank orders adjustments so the most specific scope is applied last and
// therefore wins when overlapping scopes target the same room.
func scopeRank(scope string) int {
	switch scope {
	case models.TargetScopeCategory:
		return 0
	case models.TargetScopeRoomType:
		return 1
	default:
		return 2
	}
}

func sortedAdjustments(adjs []models.PriceAdjustment) []models.PriceAdjustment {
	out := make([]models.PriceAdjustment, len(adjs))
	copy(out, adjs)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := scopeRank(out[i].TargetScope), scopeRank(out[j].TargetScope)
		if ri != rj {
			return ri < rj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// applyEvent sets every targeted room's display price via the event formula,
// reading each room's base price under a row lock. One adjustment failing is
// logged and skipped; the rest still apply.
func (s *EventService) applyEvent(tx *gorm.DB, ev *models.Event) *ApplyResult {
	return s.priceRooms(tx, ev, "apply")
}

// revertEvent resets every targeted room to its standing price. The
// computation is identical whether invoked by complete(), cancel() or update().
func (s *EventService) revertEvent(tx *gorm.DB, ev *models.Event) *ApplyResult {
	return s.priceRooms(tx, ev, "revert")
}

func (s *EventService) priceRooms(tx *gorm.DB, ev *models.Event, op string) *ApplyResult {
	res := &ApplyResult{Operation: op}

	for _, adj := range sortedAdjustments(ev.Adjustments) {
		rooms, err := s.Resolver.Resolve(tx, adj)
		if err != nil {
			s.Logger.Warn("adjustment target resolution failed",
				"event_id", ev.ID, "adjustment_id", adj.ID, "op", op, "error", err)
			res.Failures = append(res.Failures, AdjustmentFailure{AdjustmentID: adj.ID, Reason: err.Error()})
			continue
		}
		if adj.TargetScope == models.TargetScopeSpecificRoom && len(rooms) == 0 {
			res.Failures = append(res.Failures, AdjustmentFailure{
				AdjustmentID: adj.ID,
				Reason:       fmt.Sprintf("target room %d not found", adj.TargetID),
			})
			continue
		}

		for _, rm := range rooms {
			if err := s.priceRoom(tx, rm.ID, adj, op); err != nil {
				s.Logger.Warn("failed to price room",
					"event_id", ev.ID, "adjustment_id", adj.ID, "room_id", rm.ID, "op", op, "error", err)
				res.Failures = append(res.Failures, AdjustmentFailure{
					AdjustmentID: adj.ID,
					Reason:       fmt.Sprintf("room %d: %v", rm.ID, err),
				})
				continue
			}
			res.RoomsPriced++
		}
	}

	if res.Partial() {
		s.Logger.Warn("event priced with partial failures",
			"event_id", ev.ID, "op", op, "rooms_priced", res.RoomsPriced, "failures", len(res.Failures))
	}
	return res
}

// priceRoom re-reads the room under a row lock so concurrent activations never
// interleave their read-modify-write, then writes the derived display price.
// The computation only ever reads the base price, so a failure here leaves the
// previous display price untouched.
func (s *EventService) priceRoom(tx *gorm.DB, roomID uint, adj models.PriceAdjustment, op string) error {
	var room models.Room
	if err := forUpdate(tx).First(&room, roomID).Error; err != nil {
		return err
	}

	var price float64
	var err error
	if op == "revert" {
		price = StandingPrice(room.BasePrice, room.StandingDiscountPercent)
	} else {
		price, err = EventPrice(room.BasePrice, adj)
		if err != nil {
			return err
		}
	}

	return tx.Model(&models.Room{}).Where("id = ?", room.ID).
		Update("display_price", price).Error
}
