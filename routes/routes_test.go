package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"hotel-pms/config"
	"hotel-pms/controllers"
	"hotel-pms/models"
	"hotel-pms/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_txlock=immediate&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	config.SeedDatabase(db)

	userService := services.NewUserService(db)
	roomService := services.NewRoomService(db)
	guestService := services.NewGuestService(db)
	availabilityService := services.NewAvailabilityService(db)
	reservationService := services.NewReservationService(db)
	dashboardService := services.NewDashboardService(db)
	settingsService := services.NewSettingsService(db)

	router := SetupRouter(
		controllers.NewAuthController(userService),
		controllers.NewReservationController(reservationService, availabilityService),
		controllers.NewRoomController(roomService),
		controllers.NewGuestController(guestService),
		controllers.NewDashboardController(dashboardService),
		controllers.NewUserController(userService),
		controllers.NewSettingsController(settingsService),
		userService,
	)
	return router, db
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp apiResponse
	if len(w.Body.Bytes()) > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w, resp
}

func login(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()
	w, resp := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestHealth(t *testing.T) {
	router, _ := setupTestServer(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRequired(t *testing.T) {
	router, _ := setupTestServer(t)

	w, _ := doJSON(t, router, http.MethodGet, "/api/rooms", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/api/rooms", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	router, _ := setupTestServer(t)
	w, _ := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "john@doe.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReservationFlow(t *testing.T) {
	router, db := setupTestServer(t)

	admin := login(t, router, "john@doe.com", "johndoe123")
	receptionist := login(t, router, "maria@pms.com", "maria123")

	var room models.Room
	require.NoError(t, db.Where("number = ?", "101").First(&room).Error)

	// Receptionists can create guests and reservations.
	w, resp := doJSON(t, router, http.MethodPost, "/api/guests", receptionist, gin.H{
		"name": "Carlos Oliveira", "email": "carlos@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var guest models.Guest
	require.NoError(t, json.Unmarshal(resp.Data, &guest))

	w, resp = doJSON(t, router, http.MethodPost, "/api/reservations", receptionist, gin.H{
		"guestId":    guest.ID,
		"roomId":     room.ID,
		"checkIn":    "2024-06-01",
		"checkOut":   "2024-06-05",
		"adults":     2,
		"totalPrice": 720,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var reservation models.Reservation
	require.NoError(t, json.Unmarshal(resp.Data, &reservation))
	assert.Equal(t, models.ReservationConfirmed, reservation.Status)

	// Overlapping window on the same room is rejected.
	w, resp = doJSON(t, router, http.MethodPost, "/api/reservations", receptionist, gin.H{
		"guestId":    guest.ID,
		"roomId":     room.ID,
		"checkIn":    "2024-06-03",
		"checkOut":   "2024-06-07",
		"adults":     1,
		"totalPrice": 400,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "error.roomUnavailable", resp.Error.Code)

	// The availability query agrees.
	w, resp = doJSON(t, router, http.MethodGet,
		"/api/reservations/availability?roomId="+itoa(room.ID)+"&checkIn=2024-06-05&checkOut=2024-06-08", receptionist, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Check-in occupies the room.
	w, resp = doJSON(t, router, http.MethodPost,
		"/api/reservations/"+itoa(reservation.ID)+"/checkin", receptionist, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, db.First(&room, room.ID).Error)
	assert.Equal(t, models.RoomOccupied, room.Status)

	// Check-out sends the room to cleaning.
	w, _ = doJSON(t, router, http.MethodPost,
		"/api/reservations/"+itoa(reservation.ID)+"/checkout", receptionist, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, db.First(&room, room.ID).Error)
	assert.Equal(t, models.RoomCleaning, room.Status)

	// Deleting a reservation is administrator-only.
	w, _ = doJSON(t, router, http.MethodDelete,
		"/api/reservations/"+itoa(reservation.ID), receptionist, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, router, http.MethodDelete,
		"/api/reservations/"+itoa(reservation.ID), admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLifecycleEndpointsRejectBadTransitions(t *testing.T) {
	router, db := setupTestServer(t)
	receptionist := login(t, router, "maria@pms.com", "maria123")

	var room models.Room
	require.NoError(t, db.Where("number = ?", "102").First(&room).Error)

	w, resp := doJSON(t, router, http.MethodPost, "/api/guests", receptionist, gin.H{"name": "Ana"})
	require.Equal(t, http.StatusCreated, w.Code)
	var guest models.Guest
	require.NoError(t, json.Unmarshal(resp.Data, &guest))

	w, resp = doJSON(t, router, http.MethodPost, "/api/reservations", receptionist, gin.H{
		"guestId": guest.ID, "roomId": room.ID,
		"checkIn": "2024-06-01", "checkOut": "2024-06-03",
		"adults": 1, "totalPrice": 360,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var reservation models.Reservation
	require.NoError(t, json.Unmarshal(resp.Data, &reservation))

	// Checkout straight from CONFIRMED is not allowed.
	w, resp = doJSON(t, router, http.MethodPost,
		"/api/reservations/"+itoa(reservation.ID)+"/checkout", receptionist, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "error.invalidTransition", resp.Error.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/api/reservations/999/checkin", receptionist, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	router, _ := setupTestServer(t)
	receptionist := login(t, router, "maria@pms.com", "maria123")

	w, resp := doJSON(t, router, http.MethodGet, "/api/dashboard", receptionist, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats services.DashboardStats
	require.NoError(t, json.Unmarshal(resp.Data, &stats))
	assert.Equal(t, int64(6), stats.TotalRooms, "seeded inventory")
}

func TestUserManagementAdminOnly(t *testing.T) {
	router, _ := setupTestServer(t)
	admin := login(t, router, "john@doe.com", "johndoe123")
	receptionist := login(t, router, "maria@pms.com", "maria123")

	w, _ := doJSON(t, router, http.MethodGet, "/api/users", receptionist, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/api/users", admin, gin.H{
		"name": "New Clerk", "email": "clerk@pms.com", "password": "clerk123",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestLogoutInvalidatesToken(t *testing.T) {
	router, _ := setupTestServer(t)
	receptionist := login(t, router, "maria@pms.com", "maria123")

	w, _ := doJSON(t, router, http.MethodPost, "/api/auth/logout", receptionist, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/api/rooms", receptionist, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func itoa(id uint) string {
	return strconv.Itoa(int(id))
}
