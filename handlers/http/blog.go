package httpHandler

import (
	"net/http"

	"sage-portal/auth"
	"sage-portal/usecases"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	useCase  *usecases.BlogUseCase
	profiles *usecases.ProfileUseCase
}

func NewBlogHandler(useCase *usecases.BlogUseCase, profiles *usecases.ProfileUseCase) *BlogHandler {
	return &BlogHandler{useCase: useCase, profiles: profiles}
}

// GetPublished handles GET /api/v1/blog
func (h *BlogHandler) GetPublished(c *gin.Context) {
	posts, err := h.useCase.PublishedPosts()
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, posts)
}

// GetBySlug handles GET /api/v1/blog/:slug
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	post, err := h.useCase.GetBySlug(c.Param("slug"), false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post})
}

// GetAll handles GET /api/v1/admin/blog
func (h *BlogHandler) GetAll(c *gin.Context) {
	posts, err := h.useCase.AllPosts()
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, posts)
}

// Create handles POST /api/v1/admin/blog
func (h *BlogHandler) Create(c *gin.Context) {
	var req usecases.BlogPostRequest
	if !bindJSON(c, &req) {
		return
	}
	author, err := h.profiles.GetProfile(auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	post, err := h.useCase.CreatePost(author, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Blog post created successfully",
		"data":    post,
	})
}

// Update handles PUT /api/v1/admin/blog/:id
func (h *BlogHandler) Update(c *gin.Context) {
	var upd usecases.BlogPostUpdate
	if !bindJSON(c, &upd) {
		return
	}
	post, err := h.useCase.UpdatePost(c.Param("id"), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Blog post updated successfully",
		"data":    post,
	})
}

// TogglePublish handles POST /api/v1/admin/blog/:id/toggle-publish
func (h *BlogHandler) TogglePublish(c *gin.Context) {
	post, err := h.useCase.TogglePublish(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post})
}

// Delete handles DELETE /api/v1/admin/blog/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.useCase.DeletePost(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blog post deleted successfully"})
}
