package controllers

import (
	"net/http"

	"stayhub-backend/services"
	"stayhub-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	CustomerID uint                     `json:"customer_id" binding:"required"`
	BranchID   uint                     `json:"branch_id"`
	CheckIn    string                   `json:"check_in" binding:"required,dateformat"`
	CheckOut   string                   `json:"check_out" binding:"required,dateformat"`
	RoomIDs    []uint                   `json:"room_ids" binding:"required,min=1"`
	Adults     int                      `json:"adults"`
	Children   int                      `json:"children"`
	GuestList  []map[string]interface{} `json:"guest_list,omitempty"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	checkIn, err := utils.ParseDate(req.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	checkOut, err := utils.ParseDate(req.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := ctrl.BookingSvc.CreateBooking(services.BookingInput{
		CustomerID: req.CustomerID,
		BranchID:   req.BranchID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		RoomIDs:    req.RoomIDs,
		Adults:     req.Adults,
		Children:   req.Children,
		GuestList:  req.GuestList,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	list, err := ctrl.BookingSvc.GetAllWithRelations()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	bk, err := ctrl.BookingSvc.GetBookingDetails(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bk)
}

func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.BookingSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "booking deleted"})
}

func (ctrl *BookingController) CheckIn(c *gin.Context) {
	ctrl.runTransition(c, ctrl.BookingSvc.CheckIn, "checked in")
}

func (ctrl *BookingController) Checkout(c *gin.Context) {
	ctrl.runTransition(c, ctrl.BookingSvc.Checkout, "checked out")
}

func (ctrl *BookingController) Cancel(c *gin.Context) {
	ctrl.runTransition(c, ctrl.BookingSvc.Cancel, "cancelled")
}

func (ctrl *BookingController) Close(c *gin.Context) {
	ctrl.runTransition(c, ctrl.BookingSvc.Close, "closed")
}

func (ctrl *BookingController) MarkNoShow(c *gin.Context) {
	ctrl.runTransition(c, ctrl.BookingSvc.MarkNoShow, "marked no-show")
}

func (ctrl *BookingController) runTransition(c *gin.Context, fn func(uint) error, verb string) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := fn(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "booking " + verb})
}
