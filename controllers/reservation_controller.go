package controllers

import (
	"log"
	"net/http"

	"hotel-pms/middleware"
	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
)

type CreateReservationRequest struct {
	GuestID  uint   `json:"guestId" binding:"required"`
	RoomID   uint   `json:"roomId" binding:"required"`
	CheckIn  string `json:"checkIn" binding:"required"`
	CheckOut string `json:"checkOut" binding:"required"`

	Adults     int     `json:"adults"`
	Children   int     `json:"children"`
	TotalPrice float64 `json:"totalPrice" binding:"required"`

	PaymentStatus   models.PaymentStatus `json:"paymentStatus"`
	Source          string               `json:"source"`
	Notes           string               `json:"notes"`
	SpecialRequests string               `json:"specialRequests"`
}

type UpdateReservationRequest struct {
	CheckIn  *string `json:"checkIn"`
	CheckOut *string `json:"checkOut"`

	Adults     *int     `json:"adults"`
	Children   *int     `json:"children"`
	TotalPrice *float64 `json:"totalPrice"`

	Status        *models.ReservationStatus `json:"status"`
	PaymentStatus *models.PaymentStatus     `json:"paymentStatus"`

	Source          *string `json:"source"`
	Notes           *string `json:"notes"`
	SpecialRequests *string `json:"specialRequests"`
}

type ReservationController struct {
	ReservationSvc  *services.ReservationService
	AvailabilitySvc *services.AvailabilityService
}

func NewReservationController(resSvc *services.ReservationService, availSvc *services.AvailabilityService) *ReservationController {
	return &ReservationController{ReservationSvc: resSvc, AvailabilitySvc: availSvc}
}

func (ctrl *ReservationController) GetReservations(c *gin.Context) {
	list, err := ctrl.ReservationSvc.GetAllWithRelations()
	if err != nil {
		log.Printf("GetReservations error: %v", err)
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ctrl *ReservationController) GetReservationByID(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", err.Error())
		return
	}
	reservation, err := ctrl.ReservationSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload",
			"required fields: guestId, roomId, checkIn, checkOut, totalPrice")
		return
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "invalid checkIn date")
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "invalid checkOut date")
		return
	}

	adults := req.Adults
	if adults == 0 {
		adults = 1
	}

	reservation, err := ctrl.ReservationSvc.Create(services.CreateReservationInput{
		GuestID:         req.GuestID,
		RoomID:          req.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Adults:          adults,
		Children:        req.Children,
		TotalPrice:      req.TotalPrice,
		PaymentStatus:   req.PaymentStatus,
		Source:          req.Source,
		Notes:           req.Notes,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		log.Printf("CreateReservation error: %v", err)
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

// CheckAvailability is a pure query: GET /reservations/availability?roomId=&checkIn=&checkOut=&exclude=
func (ctrl *ReservationController) CheckAvailability(c *gin.Context) {
	var query struct {
		RoomID   uint   `form:"roomId" binding:"required"`
		CheckIn  string `form:"checkIn" binding:"required"`
		CheckOut string `form:"checkOut" binding:"required"`
		Exclude  uint   `form:"exclude"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload",
			"required query params: roomId, checkIn, checkOut")
		return
	}

	checkIn, err := parseDate(query.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "invalid checkIn date")
		return
	}
	checkOut, err := parseDate(query.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "invalid checkOut date")
		return
	}

	available, err := ctrl.AvailabilitySvc.IsAvailable(query.RoomID, checkIn, checkOut, query.Exclude)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"available": available})
}

func (ctrl *ReservationController) UpdateReservation(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", err.Error())
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	patch := services.UpdateReservationInput{
		Adults:          req.Adults,
		Children:        req.Children,
		TotalPrice:      req.TotalPrice,
		Status:          req.Status,
		PaymentStatus:   req.PaymentStatus,
		Source:          req.Source,
		Notes:           req.Notes,
		SpecialRequests: req.SpecialRequests,
	}
	if req.CheckIn != nil {
		t, err := parseDate(*req.CheckIn)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "invalid checkIn date")
			return
		}
		patch.CheckIn = &t
	}
	if req.CheckOut != nil {
		t, err := parseDate(*req.CheckOut)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "invalid checkOut date")
			return
		}
		patch.CheckOut = &t
	}

	reservation, err := ctrl.ReservationSvc.Update(id, patch)
	if err != nil {
		log.Printf("UpdateReservation %d error: %v", id, err)
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (ctrl *ReservationController) lifecycle(c *gin.Context, op func(uint) (*models.Reservation, error)) {
	id, err := idParam(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", err.Error())
		return
	}
	reservation, err := op(id)
	if err != nil {
		log.Printf("reservation %d lifecycle error: %v", id, err)
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (ctrl *ReservationController) CheckIn(c *gin.Context) {
	ctrl.lifecycle(c, ctrl.ReservationSvc.CheckIn)
}

func (ctrl *ReservationController) CheckOut(c *gin.Context) {
	ctrl.lifecycle(c, ctrl.ReservationSvc.CheckOut)
}

func (ctrl *ReservationController) Cancel(c *gin.Context) {
	ctrl.lifecycle(c, ctrl.ReservationSvc.Cancel)
}

func (ctrl *ReservationController) MarkNoShow(c *gin.Context) {
	ctrl.lifecycle(c, ctrl.ReservationSvc.MarkNoShow)
}

func (ctrl *ReservationController) DeleteReservation(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", err.Error())
		return
	}
	if err := ctrl.ReservationSvc.Delete(id, middleware.CurrentUser(c).Role); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
