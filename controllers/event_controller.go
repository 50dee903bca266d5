package controllers

import (
	"net/http"

	"stayhub-backend/models"
	"stayhub-backend/services"
	"stayhub-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type AdjustmentPayload struct {
	Kind        string  `json:"kind" binding:"required,oneof=PERCENTAGE FIXED_AMOUNT"`
	Direction   string  `json:"direction" binding:"required,oneof=INCREASE DECREASE"`
	Magnitude   float64 `json:"magnitude" binding:"required,gt=0"`
	TargetScope string  `json:"target_scope" binding:"required,oneof=SPECIFIC_ROOM ROOM_TYPE CATEGORY"`
	TargetID    uint    `json:"target_id" binding:"required"`
}

type EventPayload struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	BranchID    uint                `json:"branch_id" binding:"required"`
	StartDate   string              `json:"start_date" binding:"required,dateformat"`
	EndDate     string              `json:"end_date" binding:"required,dateformat"`
	Status      string              `json:"status" binding:"omitempty,oneof=SCHEDULED ACTIVE COMPLETED CANCELLED"`
	Adjustments []AdjustmentPayload `json:"adjustments" binding:"omitempty,dive"`
}

func (p EventPayload) toInput() (services.EventInput, error) {
	start, err := utils.ParseDate(p.StartDate)
	if err != nil {
		return services.EventInput{}, err
	}
	end, err := utils.ParseDate(p.EndDate)
	if err != nil {
		return services.EventInput{}, err
	}
	in := services.EventInput{
		Name:        p.Name,
		Description: p.Description,
		BranchID:    p.BranchID,
		StartDate:   start,
		EndDate:     end,
		Status:      p.Status,
	}
	if p.Adjustments != nil {
		in.Adjustments = make([]services.AdjustmentInput, 0, len(p.Adjustments))
		for _, a := range p.Adjustments {
			in.Adjustments = append(in.Adjustments, services.AdjustmentInput{
				Kind:        a.Kind,
				Direction:   a.Direction,
				Magnitude:   a.Magnitude,
				TargetScope: a.TargetScope,
				TargetID:    a.TargetID,
			})
		}
	}
	return in, nil
}

// ---------------------------
// Controller
// ---------------------------

type EventController struct {
	EventSvc *services.EventService
}

func NewEventController(svc *services.EventService) *EventController {
	return &EventController{EventSvc: svc}
}

func (ctrl *EventController) CreateEvent(c *gin.Context) {
	var payload EventPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	in, err := payload.toInput()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	ev, res, err := ctrl.EventSvc.CreateEvent(in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": ev, "apply_result": res})
}

func (ctrl *EventController) UpdateEvent(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var payload EventPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	in, err := payload.toInput()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	ev, res, err := ctrl.EventSvc.UpdateEvent(id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": ev, "apply_result": res})
}

func (ctrl *EventController) GetEvent(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	ev, err := ctrl.EventSvc.GetEvent(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, ev)
}

func (ctrl *EventController) ListEvents(c *gin.Context) {
	branchID, ok := optionalUintQuery(c, "branch_id")
	if !ok {
		return
	}
	filter := services.EventFilter{
		BranchID: branchID,
		Status:   c.Query("status"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := utils.ParseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := utils.ParseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		filter.To = &t
	}

	events, err := ctrl.EventSvc.ListEvents(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, events)
}

func (ctrl *EventController) DeleteEvent(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.EventSvc.DeleteEvent(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "event deleted"})
}

func (ctrl *EventController) ActivateEvent(c *gin.Context) {
	ctrl.runTransition(c, ctrl.EventSvc.ActivateEvent)
}

func (ctrl *EventController) CompleteEvent(c *gin.Context) {
	ctrl.runTransition(c, ctrl.EventSvc.CompleteEvent)
}

func (ctrl *EventController) CancelEvent(c *gin.Context) {
	ctrl.runTransition(c, ctrl.EventSvc.CancelEvent)
}

func (ctrl *EventController) runTransition(c *gin.Context, fn func(uint) (*models.Event, *services.ApplyResult, error)) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	ev, res, err := fn(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	status := http.StatusOK
	if res != nil && res.Partial() {
		// the transition still completed for the adjustments that succeeded
		status = http.StatusPartialContent
	}
	c.JSON(status, gin.H{"success": true, "data": ev, "apply_result": res})
}

// DueEvents serves the cron collaborator: which events should transition on
// the given date (defaults to today).
func (ctrl *EventController) DueEvents(c *gin.Context) {
	day := ctrl.EventSvc.Clock.Today()
	if raw := c.Query("date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		day = parsed
	}

	toActivate, err := ctrl.EventSvc.EventsToActivate(day)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	toComplete, err := ctrl.EventSvc.EventsToComplete(day)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"date":        utils.FormatDate(day),
		"to_activate": toActivate,
		"to_complete": toComplete,
	})
}
