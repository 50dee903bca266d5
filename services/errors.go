package services

import "errors"

// Sentinel errors surfaced synchronously to callers. Controllers map them to
// HTTP statuses with errors.Is.
var (
	ErrNotFound          = errors.New("not_found")
	ErrInvalidDateRange  = errors.New("invalid_date_range")
	ErrInvalidTransition = errors.New("invalid_transition")
	ErrImmutableState    = errors.New("immutable_state")
	ErrRoomUnavailable   = errors.New("room_not_available")
)

// AdjustmentFailure identifies one adjustment that could not be applied or
// reverted during a bulk operation.
type AdjustmentFailure struct {
	AdjustmentID uint   `json:"adjustment_id"`
	Reason       string `json:"reason"`
}

// ApplyResult aggregates the outcome of applying or reverting an event's
// adjustments. Partial failures do not abort the operation; they are logged,
// collected here and persisted on the event.
type ApplyResult struct {
	Operation   string              `json:"operation"`
	RoomsPriced int                 `json:"rooms_priced"`
	Failures    []AdjustmentFailure `json:"failures,omitempty"`
}

func (r *ApplyResult) Partial() bool {
	return len(r.Failures) > 0
}
