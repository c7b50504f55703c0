package controllers

import (
	"net/http"

	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	SettingsSvc *services.SettingsService
}

func NewSettingsController(svc *services.SettingsService) *SettingsController {
	return &SettingsController{SettingsSvc: svc}
}

func (ctrl *SettingsController) GetHotelSettings(c *gin.Context) {
	setting, err := ctrl.SettingsSvc.Get()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, setting)
}

func (ctrl *SettingsController) UpdateHotelSettings(c *gin.Context) {
	var input models.HotelSetting
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	setting, err := ctrl.SettingsSvc.Update(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, setting)
}
