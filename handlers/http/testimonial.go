package httpHandler

import (
	"errors"
	"io"
	"net/http"

	"sage-portal/auth"
	"sage-portal/usecases"

	"github.com/gin-gonic/gin"
)

type TestimonialHandler struct {
	useCase *usecases.TestimonialUseCase
}

func NewTestimonialHandler(useCase *usecases.TestimonialUseCase) *TestimonialHandler {
	return &TestimonialHandler{useCase: useCase}
}

// GetApproved handles GET /api/v1/testimonials
func (h *TestimonialHandler) GetApproved(c *gin.Context) {
	list, err := h.useCase.ApprovedTestimonials()
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, list)
}

// GetFeatured handles GET /api/v1/testimonials/featured
func (h *TestimonialHandler) GetFeatured(c *gin.Context) {
	list, err := h.useCase.FeaturedTestimonials()
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, list)
}

// GetMine handles GET /api/v1/me/testimonials
func (h *TestimonialHandler) GetMine(c *gin.Context) {
	list, err := h.useCase.UserTestimonials(auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, list)
}

// GetAll handles GET /api/v1/admin/testimonials
func (h *TestimonialHandler) GetAll(c *gin.Context) {
	list, err := h.useCase.AllTestimonials()
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, list)
}

// Create handles POST /api/v1/testimonials
func (h *TestimonialHandler) Create(c *gin.Context) {
	var req usecases.TestimonialRequest
	if !bindJSON(c, &req) {
		return
	}
	testimonial, err := h.useCase.CreateTestimonial(auth.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Testimonial submitted for review",
		"data":    testimonial,
	})
}

type approveRequest struct {
	Featured bool `json:"featured"`
}

// Approve handles POST /api/v1/admin/testimonials/:id/approve
func (h *TestimonialHandler) Approve(c *gin.Context) {
	var req approveRequest
	// body is optional
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	testimonial, err := h.useCase.ApproveTestimonial(c.Param("id"), req.Featured)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Testimonial approved",
		"data":    testimonial,
	})
}

// Update handles PUT /api/v1/admin/testimonials/:id
func (h *TestimonialHandler) Update(c *gin.Context) {
	var upd usecases.TestimonialUpdate
	if !bindJSON(c, &upd) {
		return
	}
	testimonial, err := h.useCase.UpdateTestimonial(c.Param("id"), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Testimonial updated successfully",
		"data":    testimonial,
	})
}

// Delete handles DELETE /api/v1/admin/testimonials/:id
func (h *TestimonialHandler) Delete(c *gin.Context) {
	if err := h.useCase.DeleteTestimonial(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Testimonial deleted successfully"})
}
