package services

import (
	"errors"
	"fmt"
	"log/slog"

	"stayhub-backend/models"

	"gorm.io/gorm"
)

// ReconcileService restores a fully consistent pricing state from first
// principles: base price plus whatever is currently active. It is the crash
// recovery and drift correction path, safe to run at any time and idempotent.
type ReconcileService struct {
	DB     *gorm.DB
	Events *EventService
	Clock  Clock
	Logger *slog.Logger
}

func NewReconcileService(db *gorm.DB, events *EventService, clock Clock, logger *slog.Logger) *ReconcileService {
	return &ReconcileService{DB: db, Events: events, Clock: clock, Logger: logger}
}

// SweepReport summarizes one full reconciliation run.
type SweepReport struct {
	RoomsReset    int           `json:"rooms_reset"`
	EventsApplied int           `json:"events_applied"`
	Results       []ApplyResult `json:"results,omitempty"`
}

// RunSweep rebuilds every room's display price in two phases.
//
// Phase 1 resets every non-deleted room to its standing price, unconditionally,
// discarding any stale event pricing. Phase 2 re-applies every ACTIVE event on
// top. Phase 1 must finish first: it is what makes re-applying equivalent to a
// fresh activation, with no compounding. One event's failures never block the
// rest of the sweep.
func (s *ReconcileService) RunSweep() (*SweepReport, error) {
	report := &SweepReport{}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var roomIDs []uint
		if err := tx.Model(&models.Room{}).Order("id").Pluck("id", &roomIDs).Error; err != nil {
			return fmt.Errorf("failed to list rooms: %w", err)
		}
		for _, id := range roomIDs {
			if err := s.resetRoom(tx, id); err != nil {
				return err
			}
			report.RoomsReset++
		}

		var active []models.Event
		if err := tx.Preload("Adjustments").
			Where("status = ?", models.EventStatusActive).
			Order("id").
			Find(&active).Error; err != nil {
			return fmt.Errorf("failed to list active events: %w", err)
		}

		for i := range active {
			res := s.Events.applyEvent(tx, &active[i])
			report.EventsApplied++
			report.Results = append(report.Results, *res)
			if res.Partial() {
				s.Logger.Warn("sweep re-applied event with failures",
					"event_id", active[i].ID, "failures", len(res.Failures))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("reconciliation sweep finished",
		"rooms_reset", report.RoomsReset, "events_applied", report.EventsApplied)
	return report, nil
}

// ReconcileRoom rebuilds one room's display price: standing price first, then
// every ACTIVE adjustment that targets it, in the same order a full activation
// would use. Called explicitly after base-price or discount edits.
func (s *ReconcileService) ReconcileRoom(roomID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := forUpdate(tx).Preload("RoomType").First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("room %d: %w", roomID, ErrNotFound)
			}
			return err
		}

		if err := s.resetRoom(tx, room.ID); err != nil {
			return err
		}
		room.DisplayPrice = StandingPrice(room.BasePrice, room.StandingDiscountPercent)

		var active []models.Event
		if err := tx.Preload("Adjustments").
			Where("status = ?", models.EventStatusActive).
			Order("id").
			Find(&active).Error; err != nil {
			return err
		}

		for _, ev := range active {
			for _, adj := range sortedAdjustments(ev.Adjustments) {
				ok, err := s.adjustmentTargetsRoom(tx, adj, &room)
				if err != nil {
					s.Logger.Warn("room reconcile: target check failed",
						"room_id", room.ID, "adjustment_id", adj.ID, "error", err)
					continue
				}
				if !ok {
					continue
				}
				price, err := EventPrice(room.BasePrice, adj)
				if err != nil {
					s.Logger.Warn("room reconcile: price failed",
						"room_id", room.ID, "adjustment_id", adj.ID, "error", err)
					continue
				}
				if err := tx.Model(&models.Room{}).Where("id = ?", room.ID).
					Update("display_price", price).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// DailySweep drives the calendar transitions: activate events starting today,
// complete events whose end date has passed. One event failing never stops
// the rest.
func (s *ReconcileService) DailySweep() {
	today := s.Clock.Today()

	toActivate, err := s.Events.EventsToActivate(today)
	if err != nil {
		s.Logger.Error("daily sweep: listing events to activate failed", "error", err)
	}
	for _, ev := range toActivate {
		if _, _, err := s.Events.ActivateEvent(ev.ID); err != nil {
			s.Logger.Error("daily sweep: activate failed", "event_id", ev.ID, "error", err)
		}
	}

	toComplete, err := s.Events.EventsToComplete(today)
	if err != nil {
		s.Logger.Error("daily sweep: listing events to complete failed", "error", err)
	}
	for _, ev := range toComplete {
		if _, _, err := s.Events.CompleteEvent(ev.ID); err != nil {
			s.Logger.Error("daily sweep: complete failed", "event_id", ev.ID, "error", err)
		}
	}
}

func (s *ReconcileService) resetRoom(tx *gorm.DB, roomID uint) error {
	var room models.Room
	if err := forUpdate(tx).First(&room, roomID).Error; err != nil {
		return fmt.Errorf("failed to load room %d: %w", roomID, err)
	}
	standing := StandingPrice(room.BasePrice, room.StandingDiscountPercent)
	return tx.Model(&models.Room{}).Where("id = ?", room.ID).
		Update("display_price", standing).Error
}

func (s *ReconcileService) adjustmentTargetsRoom(tx *gorm.DB, adj models.PriceAdjustment, room *models.Room) (bool, error) {
	switch adj.TargetScope {
	case models.TargetScopeSpecificRoom:
		return adj.TargetID == room.ID, nil
	case models.TargetScopeRoomType:
		return room.RoomTypeID != nil && *room.RoomTypeID == adj.TargetID, nil
	case models.TargetScopeCategory:
		if room.RoomTypeID == nil {
			return false, nil
		}
		var rt models.RoomType
		if err := tx.First(&rt, *room.RoomTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
		return rt.RoomCategoryID != nil && *rt.RoomCategoryID == adj.TargetID, nil
	}
	return false, fmt.Errorf("unknown target scope %q", adj.TargetScope)
}
