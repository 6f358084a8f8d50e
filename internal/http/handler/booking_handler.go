package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roombooking/internal/models"
	"roombooking/internal/service"
)

type BookingHandler struct {
	svc    service.BookingService
	search service.SearchService
}

func NewBookingHandler(s service.BookingService, q service.SearchService) *BookingHandler {
	return &BookingHandler{svc: s, search: q}
}

type bookingIn struct {
	RoomID   string `json:"room_id" binding:"required"`
	Start    string `json:"start_time" binding:"required"` // YYYY-MM-DD HH:MM
	End      string `json:"end_time" binding:"required"`
	UserName string `json:"user_name" binding:"required"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var in bookingIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	id, err := h.svc.BookRoom(c.Request.Context(), in.RoomID, in.Start, in.End, in.UserName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking_id": id})
}

// Check reports whether any ledger entry matches every field set in the body.
func (h *BookingHandler) Check(c *gin.Context) {
	var q models.BookingQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	preds, err := q.Predicates()
	if err != nil {
		writeError(c, err)
		return
	}
	ok, err := h.search.CheckCompletion(c.Request.Context(), preds...)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": ok})
}

func (h *BookingHandler) Search(c *gin.Context) {
	var q models.BookingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad query"})
		return
	}
	preds, err := q.Predicates()
	if err != nil {
		writeError(c, err)
		return
	}
	bs, err := h.search.SearchBookings(c.Request.Context(), preds...)
	if err != nil {
		writeError(c, err)
		return
	}
	if bs == nil {
		bs = []models.Booking{}
	}
	c.JSON(http.StatusOK, bs)
}
