package controllers

import (
	"net/http"

	"hotel-pms/middleware"
	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctrl *RoomController) GetRoomByID(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", err.Error())
		return
	}
	room, err := ctrl.RoomSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var input services.CreateRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	room, err := ctrl.RoomSvc.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", err.Error())
		return
	}
	var patch services.UpdateRoomInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	room, err := ctrl.RoomSvc.Update(id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", err.Error())
		return
	}
	if err := ctrl.RoomSvc.Delete(id, middleware.CurrentUser(c).Role); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
