package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ClientDirectory interface {
	SearchClients(ctx context.Context, term string) ([]models.User, error)
}

type ClientHandler struct {
	clients ClientDirectory
}

func NewClientHandler(clients ClientDirectory) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// ======================================================
// LIST CLIENTS (barbers book on their behalf)
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clients.SearchClients(c.Request.Context(), c.Query("query"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out := make([]gin.H, 0, len(clients))
	for _, u := range clients {
		out = append(out, gin.H{
			"id":    u.ID,
			"name":  u.Name,
			"email": u.Email,
			"phone": u.Phone,
		})
	}
	httpresp.List(c, out)
}
