package handlers

import (
	"errors"
	"net/http"

	"github.com/Prince260602/internhubs/internal/api/middleware"
	"github.com/Prince260602/internhubs/internal/utils"
	"github.com/gin-gonic/gin"
)

// APIError is the body of every failed response.
type APIError struct {
	Error   string `json:"error"`
	Section string `json:"section,omitempty"`
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	_ = c.Error(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{Error: ae.PublicMessage(), Section: ae.Section})
		return
	}
	c.JSON(status, APIError{Error: err.Error()})
}

func badRequest(c *gin.Context, op string, err error) {
	msg := "Invalid request body"
	if err != nil {
		msg += ": " + err.Error()
	}
	writeError(c, utils.E(utils.CodeInvalidArgument, op, msg, nil))
}

func requireUserID(c *gin.Context) (string, bool) {
	if s := c.GetString(middleware.CtxUserID); s != "" {
		return s, true
	}
	writeError(c, utils.E(utils.CodeUnauthenticated, "Auth", "User not authenticated", nil))
	return "", false
}

// JSON bodies are capped before binding.
func limitBody(c *gin.Context, n int64) {
	if n > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
	}
}
