package services

import (
	"errors"
	"fmt"
	"log/slog"

	"stayhub-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TargetResolver expands an adjustment's scope into the concrete set of
// non-deleted rooms it affects. Resolution always re-reads current membership:
// a room moved into a type after event creation is picked up on the next
// apply/revert.
type TargetResolver struct {
	DB     *gorm.DB
	Logger *slog.Logger
}

func NewTargetResolver(db *gorm.DB, logger *slog.Logger) *TargetResolver {
	return &TargetResolver{DB: db, Logger: logger}
}

// Resolve runs inside the caller's transaction when tx is non-nil. A missing
// SPECIFIC_ROOM target yields an empty set and a warning, not an error.
func (r *TargetResolver) Resolve(tx *gorm.DB, adj models.PriceAdjustment) ([]models.Room, error) {
	if tx == nil {
		tx = r.DB
	}

	var rooms []models.Room
	switch adj.TargetScope {
	case models.TargetScopeSpecificRoom:
		var room models.Room
		err := tx.First(&room, adj.TargetID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.Logger.Warn("adjustment target room not found",
				"adjustment_id", adj.ID, "room_id", adj.TargetID)
			return []models.Room{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("resolve room %d: %w", adj.TargetID, err)
		}
		rooms = append(rooms, room)

	case models.TargetScopeRoomType:
		if err := tx.Where("room_type_id = ?", adj.TargetID).Find(&rooms).Error; err != nil {
			return nil, fmt.Errorf("resolve room type %d: %w", adj.TargetID, err)
		}

	case models.TargetScopeCategory:
		sub := tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.RoomType{}).
			Select("id").
			Where("room_category_id = ?", adj.TargetID)
		if err := tx.Where("room_type_id IN (?)", sub).Find(&rooms).Error; err != nil {
			return nil, fmt.Errorf("resolve category %d: %w", adj.TargetID, err)
		}

	default:
		return nil, fmt.Errorf("adjustment %d: unknown target scope %q", adj.ID, adj.TargetScope)
	}

	return dedupeRooms(rooms), nil
}

func dedupeRooms(rooms []models.Room) []models.Room {
	seen := make(map[uint]struct{}, len(rooms))
	out := rooms[:0]
	for _, rm := range rooms {
		if _, ok := seen[rm.ID]; ok {
			continue
		}
		seen[rm.ID] = struct{}{}
		out = append(out, rm)
	}
	return out
}

// forUpdate adds a row lock on dialects that support it. The sqlite test
// dialect has no FOR UPDATE syntax and serializes writers itself.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
