package controllers

import (
	"net/http"

	"stayhub-backend/services"
	"stayhub-backend/utils"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	AvailabilitySvc *services.AvailabilityService
}

func NewAvailabilityController(svc *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{AvailabilitySvc: svc}
}

// Check answers whether one room is free for [check_in, check_out).
func (ctrl *AvailabilityController) Check(c *gin.Context) {
	roomID, ok := requiredUintQuery(c, "room_id")
	if !ok {
		return
	}
	checkIn, checkOut, ok := dateRangeQuery(c, "check_in", "check_out")
	if !ok {
		return
	}
	exclude, ok := optionalUintQuery(c, "exclude_booking_id")
	if !ok {
		return
	}

	available, err := ctrl.AvailabilitySvc.IsAvailable(roomID, checkIn, checkOut, exclude)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"room_id":   roomID,
		"check_in":  utils.FormatDate(checkIn),
		"check_out": utils.FormatDate(checkOut),
		"available": available,
	})
}

// FindRooms lists rooms of a type free for the whole range.
func (ctrl *AvailabilityController) FindRooms(c *gin.Context) {
	roomTypeID, ok := requiredUintQuery(c, "room_type_id")
	if !ok {
		return
	}
	checkIn, checkOut, ok := dateRangeQuery(c, "check_in", "check_out")
	if !ok {
		return
	}
	branchID, ok := optionalUintQuery(c, "branch_id")
	if !ok {
		return
	}

	rooms, err := ctrl.AvailabilitySvc.FindAvailableRooms(roomTypeID, checkIn, checkOut, branchID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctrl *AvailabilityController) CountRooms(c *gin.Context) {
	roomTypeID, ok := requiredUintQuery(c, "room_type_id")
	if !ok {
		return
	}
	checkIn, checkOut, ok := dateRangeQuery(c, "check_in", "check_out")
	if !ok {
		return
	}
	branchID, ok := optionalUintQuery(c, "branch_id")
	if !ok {
		return
	}

	count, err := ctrl.AvailabilitySvc.CountAvailable(roomTypeID, checkIn, checkOut, branchID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"count": count})
}

func (ctrl *AvailabilityController) Calendar(c *gin.Context) {
	roomID, ok := requiredUintQuery(c, "room_id")
	if !ok {
		return
	}
	start, end, ok := dateRangeQuery(c, "start", "end")
	if !ok {
		return
	}

	cal, err := ctrl.AvailabilitySvc.Calendar(roomID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, cal)
}
