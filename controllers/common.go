package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
)

func idParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", c.Param("id"))
	}
	return uint(id), nil
}

// parseDate accepts a plain date or an RFC3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// respondServiceError maps the service error taxonomy to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		utils.JSONError(c, http.StatusBadRequest, "error.invalidInput", err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.notFound", err.Error())
	case errors.Is(err, services.ErrRoomUnavailable):
		utils.JSONError(c, http.StatusConflict, "error.roomUnavailable", err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		utils.JSONError(c, http.StatusConflict, "error.invalidTransition", err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.JSONError(c, http.StatusConflict, "error.conflict", err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "error.forbidden", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "internal server error")
	}
}
