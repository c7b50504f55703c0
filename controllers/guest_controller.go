package controllers

import (
	"net/http"

	"hotel-pms/middleware"
	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	GuestSvc *services.GuestService
}

func NewGuestController(svc *services.GuestService) *GuestController {
	return &GuestController{GuestSvc: svc}
}

func (ctrl *GuestController) GetGuests(c *gin.Context) {
	guests, err := ctrl.GuestSvc.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

func (ctrl *GuestController) GetGuestByID(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", err.Error())
		return
	}
	guest, err := ctrl.GuestSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (ctrl *GuestController) CreateGuest(c *gin.Context) {
	var input services.GuestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	guest, err := ctrl.GuestSvc.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, guest)
}

func (ctrl *GuestController) UpdateGuest(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", err.Error())
		return
	}
	var patch services.UpdateGuestInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	guest, err := ctrl.GuestSvc.Update(id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (ctrl *GuestController) DeleteGuest(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", err.Error())
		return
	}
	if err := ctrl.GuestSvc.Delete(id, middleware.CurrentUser(c).Role); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
