package controllers

import (
	"net/http"

	"stayhub-backend/models"
	"stayhub-backend/services"
	"stayhub-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomCategoryController struct {
	CategorySvc *services.RoomCategoryService
}

func NewRoomCategoryController(svc *services.RoomCategoryService) *RoomCategoryController {
	return &RoomCategoryController{CategorySvc: svc}
}

func (ctrl *RoomCategoryController) GetCategories(c *gin.Context) {
	cats, err := ctrl.CategorySvc.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, cats)
}

func (ctrl *RoomCategoryController) CreateCategory(c *gin.Context) {
	var cat models.RoomCategory
	if err := c.ShouldBindJSON(&cat); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := ctrl.CategorySvc.Create(&cat); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, cat)
}

func (ctrl *RoomCategoryController) DeleteCategory(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.CategorySvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Room category deleted"})
}
