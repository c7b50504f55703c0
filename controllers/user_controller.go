package controllers

import (
	"net/http"

	"hotel-pms/middleware"
	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserSvc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{UserSvc: svc}
}

func (ctrl *UserController) GetUsers(c *gin.Context) {
	users, err := ctrl.UserSvc.GetAll(middleware.CurrentUser(c).Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, users)
}

func (ctrl *UserController) CreateUser(c *gin.Context) {
	var input services.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	user, err := ctrl.UserSvc.Create(input, middleware.CurrentUser(c).Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, user)
}

func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", err.Error())
		return
	}
	if err := ctrl.UserSvc.Delete(id, middleware.CurrentUser(c).Role); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
