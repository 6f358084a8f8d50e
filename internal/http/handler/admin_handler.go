package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roombooking/internal/service"
)

// AdminHandler exposes the raw catalog and ledger.
type AdminHandler struct{ svc service.SearchService }

func NewAdminHandler(s service.SearchService) *AdminHandler { return &AdminHandler{svc: s} }

func (h *AdminHandler) ListRooms(c *gin.Context) {
	rs, err := h.svc.Rooms(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rs)
}

func (h *AdminHandler) ListBookings(c *gin.Context) {
	bs, err := h.svc.Bookings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bs)
}
