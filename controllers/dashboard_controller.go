package controllers

import (
	"net/http"
	"time"

	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardSvc *services.DashboardService
}

func NewDashboardController(svc *services.DashboardService) *DashboardController {
	return &DashboardController{DashboardSvc: svc}
}

func (ctrl *DashboardController) GetStats(c *gin.Context) {
	stats, err := ctrl.DashboardSvc.Stats(time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}
