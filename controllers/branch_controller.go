package controllers

import (
	"net/http"

	"stayhub-backend/models"
	"stayhub-backend/services"
	"stayhub-backend/utils"

	"github.com/gin-gonic/gin"
)

type BranchController struct {
	BranchSvc *services.BranchService
}

func NewBranchController(svc *services.BranchService) *BranchController {
	return &BranchController{BranchSvc: svc}
}

func (ctrl *BranchController) GetBranches(c *gin.Context) {
	branches, err := ctrl.BranchSvc.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, branches)
}

func (ctrl *BranchController) CreateBranch(c *gin.Context) {
	var branch models.Branch
	if err := c.ShouldBindJSON(&branch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := ctrl.BranchSvc.Create(&branch); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, branch)
}

func (ctrl *BranchController) UpdateBranch(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := ctrl.BranchSvc.Update(id, updateData); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Branch updated"})
}

func (ctrl *BranchController) DeleteBranch(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.BranchSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Branch deleted"})
}
