package handlers

import (
	"net/http"

	"github.com/Prince260602/internhubs/internal/models"
	"github.com/Prince260602/internhubs/internal/services"
	"github.com/gin-gonic/gin"
)

// ListingHandlerConfig names the response keys for one listing type.
type ListingHandlerConfig struct {
	Label    string // Job
	Singular string // job
	Plural   string // jobs
}

type patch interface {
	Fields() map[string]any
}

// ListingHandler serves create/list/update/delete for jobs or internships.
type ListingHandler[T any, P patch] struct {
	svc services.ListingService[T]
	cfg ListingHandlerConfig
}

func NewJobHandler(svc services.ListingService[models.Job]) *ListingHandler[models.Job, models.JobPatch] {
	return &ListingHandler[models.Job, models.JobPatch]{
		svc: svc,
		cfg: ListingHandlerConfig{Label: "Job", Singular: "job", Plural: "jobs"},
	}
}

func NewInternshipHandler(svc services.ListingService[models.Internship]) *ListingHandler[models.Internship, models.InternshipPatch] {
	return &ListingHandler[models.Internship, models.InternshipPatch]{
		svc: svc,
		cfg: ListingHandlerConfig{Label: "Internship", Singular: "internship", Plural: "internships"},
	}
}

func (h *ListingHandler[T, P]) Create(c *gin.Context) {
	var doc T
	if err := c.ShouldBindJSON(&doc); err != nil {
		badRequest(c, h.cfg.Label+"Handler.Create", err)
		return
	}

	out, err := h.svc.Create(c.Request.Context(), &doc)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": h.cfg.Label + " created successfully", h.cfg.Singular: out})
}

func (h *ListingHandler[T, P]) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": h.cfg.Label + "s fetched successfully", h.cfg.Plural: out})
}

func (h *ListingHandler[T, P]) Update(c *gin.Context) {
	var p P
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, h.cfg.Label+"Handler.Update", err)
		return
	}

	out, err := h.svc.Update(c.Request.Context(), c.Param("id"), p.Fields())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": h.cfg.Label + " updated successfully", h.cfg.Singular: out})
}

func (h *ListingHandler[T, P]) Delete(c *gin.Context) {
	out, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": h.cfg.Label + " deleted successfully", h.cfg.Singular: out})
}
