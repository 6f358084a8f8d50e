package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"roombooking/internal/models"
	"roombooking/internal/service"
)

type RoomHandler struct {
	svc service.SearchService
	now func() time.Time
}

func NewRoomHandler(s service.SearchService) *RoomHandler {
	return &RoomHandler{svc: s, now: time.Now}
}

func (h *RoomHandler) List(c *gin.Context) {
	rs, err := h.svc.ListRooms(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rs)
}

func (h *RoomHandler) Get(c *gin.Context) {
	info, err := h.svc.RoomInfo(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// Status lists upcoming bookings per room; as_of defaults to the current wall clock.
func (h *RoomHandler) Status(c *gin.Context) {
	asOf := c.Query("as_of")
	if asOf == "" {
		asOf = models.WallClock(h.now()).Format(models.CreatedAtLayout)
	}
	st, err := h.svc.RoomStatus(c.Request.Context(), asOf)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"as_of": asOf, "rooms": st})
}

func (h *RoomHandler) Available(c *gin.Context) {
	start, end := c.Query("start"), c.Query("end")
	ids, err := h.svc.AvailableRooms(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"start": start, "end": end, "rooms": ids})
}
