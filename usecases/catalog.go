package usecases

import (
	"strings"

	"sage-portal/entities"
	"sage-portal/repositories"
)

type ServiceUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Price       *string `json:"price"`
	Featured    *bool   `json:"featured"`
	IsActive    *bool   `json:"is_active"`
}

// CatalogUseCase manages the services offered on the public site.
type CatalogUseCase struct {
	services repositories.ServiceRepository
}

func NewCatalogUseCase(services repositories.ServiceRepository) *CatalogUseCase {
	return &CatalogUseCase{services: services}
}

// ListServices returns active services for visitors, or all of them for admins.
func (uc *CatalogUseCase) ListServices(includeInactive bool) ([]entities.Service, error) {
	return uc.services.GetAll(!includeInactive)
}

func (uc *CatalogUseCase) FeaturedServices() ([]entities.Service, error) {
	return uc.services.GetFeatured()
}

func (uc *CatalogUseCase) GetService(id string) (*entities.Service, error) {
	if id == "" {
		return nil, required("service id")
	}
	service, err := uc.services.GetByID(id)
	if err != nil {
		return nil, notFound("service", err)
	}
	return service, nil
}

// CreateService creates a service together with any features it carries.
func (uc *CatalogUseCase) CreateService(service *entities.Service) error {
	service.Title = strings.TrimSpace(service.Title)
	if service.Title == "" {
		return required("title")
	}
	if strings.TrimSpace(service.Description) == "" {
		return required("description")
	}
	for i := range service.Features {
		if strings.TrimSpace(service.Features[i].Name) == "" {
			return required("feature name")
		}
	}
	return uc.services.Create(service)
}

func (uc *CatalogUseCase) UpdateService(id string, upd ServiceUpdate) (*entities.Service, error) {
	existing, err := uc.GetService(id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, required("title")
		}
		existing.Title = title
	}
	if upd.Description != nil {
		existing.Description = *upd.Description
	}
	if upd.Icon != nil {
		existing.Icon = *upd.Icon
	}
	if upd.Price != nil {
		existing.Price = *upd.Price
	}
	if upd.Featured != nil {
		existing.Featured = *upd.Featured
	}
	if upd.IsActive != nil {
		existing.IsActive = *upd.IsActive
	}

	if err := uc.services.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteService removes the service and its features.
func (uc *CatalogUseCase) DeleteService(id string) error {
	if _, err := uc.GetService(id); err != nil {
		return err
	}
	return uc.services.Delete(id)
}

func (uc *CatalogUseCase) AddFeature(serviceID string, feature *entities.ServiceFeature) error {
	if _, err := uc.GetService(serviceID); err != nil {
		return err
	}
	if strings.TrimSpace(feature.Name) == "" {
		return required("name")
	}
	feature.ServiceID = serviceID
	return uc.services.AddFeature(feature)
}

func (uc *CatalogUseCase) DeleteFeature(id string) error {
	if _, err := uc.services.GetFeature(id); err != nil {
		return notFound("feature", err)
	}
	return uc.services.DeleteFeature(id)
}
