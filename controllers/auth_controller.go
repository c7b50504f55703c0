package controllers

import (
	"net/http"

	"hotel-pms/middleware"
	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
)

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	UserSvc *services.UserService
}

func NewAuthController(svc *services.UserService) *AuthController {
	return &AuthController{UserSvc: svc}
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "email and password required")
		return
	}

	user, token, err := ctrl.UserSvc.Authenticate(payload.Email, payload.Password)
	if err != nil {
		// Do not leak whether the account exists.
		utils.JSONError(c, http.StatusUnauthorized, "error.invalidCredentials", "invalid credentials")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func (ctrl *AuthController) Logout(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := ctrl.UserSvc.Logout(user.ID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"loggedOut": true})
}
