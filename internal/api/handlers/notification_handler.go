package handlers

import (
	"net/http"
	"strconv"

	"github.com/Prince260602/internhubs/internal/models"
	"github.com/Prince260602/internhubs/internal/services"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc services.NotificationService
}

func NewNotificationHandler(svc services.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// Send returns the handler for one notification route. The body is a flat
// JSON object whose fields feed the template.
func (h *NotificationHandler) Send(kind models.NotificationKind) gin.HandlerFunc {
	op := "NotificationHandler." + string(kind)

	return func(c *gin.Context) {
		limitBody(c, 64<<10)

		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, op, err)
			return
		}

		d, err := h.svc.Notify(c.Request.Context(), kind, flatten(body))
		if err != nil {
			writeError(c, err)
			return
		}

		if d.Queued {
			c.JSON(http.StatusAccepted, gin.H{"msg": "Email queued", "emailSent": d.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "Email sent", "emailSent": d.ID})
	}
}

// flatten keeps scalar fields as strings; the frontend sends phone numbers
// both as strings and numbers.
func flatten(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch t := v.(type) {
		case nil:
		case string:
			out[k] = t
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(t)
		}
	}
	return out
}
