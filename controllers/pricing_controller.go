package controllers

import (
	"net/http"

	"stayhub-backend/services"
	"stayhub-backend/utils"

	"github.com/gin-gonic/gin"
)

type PricingController struct {
	Reconciler *services.ReconcileService
}

func NewPricingController(reconciler *services.ReconcileService) *PricingController {
	return &PricingController{Reconciler: reconciler}
}

// Reconcile runs the full two-phase sweep on demand.
func (ctrl *PricingController) Reconcile(c *gin.Context) {
	report, err := ctrl.Reconciler.RunSweep()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, report)
}
