package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-pms/controllers"
	"hotel-pms/middleware"
	"hotel-pms/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	ac *controllers.AuthController,
	rc *controllers.ReservationController,
	rmc *controllers.RoomController,
	gc *controllers.GuestController,
	dc *controllers.DashboardController,
	uc *controllers.UserController,
	sc *controllers.SettingsController,
	userSvc *services.UserService,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.POST("/auth/login", ac.Login)

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(userSvc))
	{
		authed.POST("/auth/logout", ac.Logout)

		authed.GET("/dashboard", dc.GetStats)

		rooms := authed.Group("/rooms")
		{
			rooms.GET("", rmc.GetRooms)
			rooms.POST("", rmc.CreateRoom)
			rooms.GET("/:id", rmc.GetRoomByID)
			rooms.PUT("/:id", rmc.UpdateRoom)
			rooms.PATCH("/:id", rmc.UpdateRoom)
			rooms.DELETE("/:id", middleware.RequireAdmin(), rmc.DeleteRoom)
		}

		guests := authed.Group("/guests")
		{
			guests.GET("", gc.GetGuests)
			guests.POST("", gc.CreateGuest)
			guests.GET("/:id", gc.GetGuestByID)
			guests.PUT("/:id", gc.UpdateGuest)
			guests.DELETE("/:id", middleware.RequireAdmin(), gc.DeleteGuest)
		}

		reservations := authed.Group("/reservations")
		{
			// must come before /:id
			reservations.GET("/availability", rc.CheckAvailability)

			reservations.GET("", rc.GetReservations)
			reservations.POST("", rc.CreateReservation)
			reservations.GET("/:id", rc.GetReservationByID)
			reservations.PUT("/:id", rc.UpdateReservation)
			reservations.DELETE("/:id", middleware.RequireAdmin(), rc.DeleteReservation)

			reservations.POST("/:id/checkin", rc.CheckIn)
			reservations.POST("/:id/checkout", rc.CheckOut)
			reservations.POST("/:id/cancel", rc.Cancel)
			reservations.POST("/:id/no-show", rc.MarkNoShow)
		}

		users := authed.Group("/users")
		users.Use(middleware.RequireAdmin())
		{
			users.GET("", uc.GetUsers)
			users.POST("", uc.CreateUser)
			users.DELETE("/:id", uc.DeleteUser)
		}

		settings := authed.Group("/settings")
		{
			settings.GET("/hotel", sc.GetHotelSettings)
			settings.PUT("/hotel", sc.UpdateHotelSettings)
		}
	}

	return r
}
