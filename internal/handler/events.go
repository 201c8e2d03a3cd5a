package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/events"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
)

// EventsHandler upgrades clients onto the org-scoped event stream.
type EventsHandler struct {
	hub *events.Hub
}

func NewEventsHandler(hub *events.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream handles GET /api/events
func (h *EventsHandler) Stream(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	if caller.OrgID.IsZero() {
		c.JSON(http.StatusForbidden, model.NewCodedErrorResponse("FORBIDDEN", "Join an organization to receive events", ""))
		return
	}
	// The upgrader writes its own error response on a failed handshake.
	_ = h.hub.Serve(c.Writer, c.Request, caller.OrgID)
}
