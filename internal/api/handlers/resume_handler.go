package handlers

import (
	"net/http"

	"github.com/Prince260602/internhubs/internal/services"
	"github.com/Prince260602/internhubs/internal/utils"
	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	svc services.ResumeService
}

func NewResumeHandler(svc services.ResumeService) *ResumeHandler {
	return &ResumeHandler{svc: svc}
}

// Upload handles POST /profile/resume (multipart field "file").
func (h *ResumeHandler) Upload(c *gin.Context) {
	const op = "ResumeHandler.Upload"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	// multipart overhead on top of the file itself
	limitBody(c, services.MaxResumeBytes+64<<10)
	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "A PDF file is required in field \"file\"", nil))
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "Unable to read uploaded file", err))
		return
	}
	defer f.Close()

	link, err := h.svc.Upload(c.Request.Context(), userID, fh.Size, f)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Resume uploaded successfully", "resumelink": link})
}
