package handlers

import (
	"net/http"

	"github.com/Prince260602/internhubs/internal/services"
	"github.com/Prince260602/internhubs/internal/validation"
	"github.com/gin-gonic/gin"
)

type ProfileHandlerConfig struct {
	MaxBodyBytes int64
}

type ProfileHandler struct {
	svc services.ProfileService
	cfg ProfileHandlerConfig
}

func NewProfileHandler(svc services.ProfileService, cfg ProfileHandlerConfig) *ProfileHandler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	return &ProfileHandler{svc: svc, cfg: cfg}
}

// Add handles POST /profile/addprofile.
func (h *ProfileHandler) Add(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req validation.Payload
	limitBody(c, h.cfg.MaxBodyBytes)
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "ProfileHandler.Add", err)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Profile created successfully", "newProfile": p})
}

// Get handles GET /profile/getprofile.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	agg, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Profile fetched successfully", "profile": agg})
}

// Update handles PUT /profile/updateprofile.
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req validation.Payload
	limitBody(c, h.cfg.MaxBodyBytes)
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "ProfileHandler.Update", err)
		return
	}

	agg, err := h.svc.Update(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Profile updated successfully", "updatedProfile": agg})
}
