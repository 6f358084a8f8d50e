package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roombooking/internal/http/middleware"
	"roombooking/internal/service"
)

type RouterConfig struct {
	Booking    service.BookingService
	Search     service.SearchService
	AdminToken string
	Log        *zap.Logger
	Backends   gin.H
}

func NewRouter(rc RouterConfig) *gin.Engine {
	log := rc.Log
	if log == nil {
		log = zap.NewNop()
	}
	r := gin.New()
	r.Use(middleware.Logger(log), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		out := gin.H{"ok": true}
		for k, v := range rc.Backends {
			out[k] = v
		}
		c.JSON(http.StatusOK, out)
	})

	roomH := NewRoomHandler(rc.Search)
	bookH := NewBookingHandler(rc.Booking, rc.Search)
	adminH := NewAdminHandler(rc.Search)

	r.GET("/rooms", roomH.List)
	r.GET("/rooms/:id", roomH.Get)
	r.GET("/status", roomH.Status)
	r.GET("/availability", roomH.Available)

	r.POST("/bookings", bookH.Create)
	r.POST("/bookings/check", bookH.Check)
	r.GET("/bookings", bookH.Search)

	admin := r.Group("/admin", middleware.Admin(rc.AdminToken))
	{
		admin.GET("/rooms", adminH.ListRooms)
		admin.GET("/bookings", adminH.ListBookings)
	}
	return r
}
