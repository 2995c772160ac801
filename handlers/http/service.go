package httpHandler

import (
	"net/http"

	"sage-portal/entities"
	"sage-portal/usecases"

	"github.com/gin-gonic/gin"
)

type ServiceHandler struct {
	useCase *usecases.CatalogUseCase
}

func NewServiceHandler(useCase *usecases.CatalogUseCase) *ServiceHandler {
	return &ServiceHandler{useCase: useCase}
}

// GetServices handles GET /api/v1/services (active only) and
// GET /api/v1/admin/services (everything)
func (h *ServiceHandler) GetServices(c *gin.Context) {
	services, err := h.useCase.ListServices(isAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, services)
}

// GetFeaturedServices handles GET /api/v1/services/featured
func (h *ServiceHandler) GetFeaturedServices(c *gin.Context) {
	services, err := h.useCase.FeaturedServices()
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, services)
}

// GetService handles GET /api/v1/services/:id
func (h *ServiceHandler) GetService(c *gin.Context) {
	service, err := h.useCase.GetService(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": service})
}

// CreateService handles POST /api/v1/admin/services
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var service entities.Service
	if !bindJSON(c, &service) {
		return
	}
	service.ID = ""
	if err := h.useCase.CreateService(&service); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Service created successfully",
		"data":    service,
	})
}

// UpdateService handles PUT /api/v1/admin/services/:id
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	var upd usecases.ServiceUpdate
	if !bindJSON(c, &upd) {
		return
	}
	service, err := h.useCase.UpdateService(c.Param("id"), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Service updated successfully",
		"data":    service,
	})
}

// DeleteService handles DELETE /api/v1/admin/services/:id
func (h *ServiceHandler) DeleteService(c *gin.Context) {
	if err := h.useCase.DeleteService(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

// AddFeature handles POST /api/v1/admin/services/:id/features
func (h *ServiceHandler) AddFeature(c *gin.Context) {
	var feature entities.ServiceFeature
	if !bindJSON(c, &feature) {
		return
	}
	feature.ID = ""
	if err := h.useCase.AddFeature(c.Param("id"), &feature); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Feature created successfully",
		"data":    feature,
	})
}

// DeleteFeature handles DELETE /api/v1/admin/features/:id
func (h *ServiceHandler) DeleteFeature(c *gin.Context) {
	if err := h.useCase.DeleteFeature(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feature deleted successfully"})
}
