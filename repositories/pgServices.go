package repositories

import (
	"sage-portal/db"
	"sage-portal/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type servicePgRepository struct {
	db db.Database
}

func NewServicePgRepository(database db.Database) ServiceRepository {
	return &servicePgRepository{db: database}
}

func (r *servicePgRepository) Create(service *entities.Service) error {
	return r.db.GetDB().Create(service).Error
}

func (r *servicePgRepository) GetByID(id string) (*entities.Service, error) {
	var service entities.Service
	err := r.db.GetDB().Preload("Features").Where("id = ?", id).First(&service).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *servicePgRepository) GetAll(activeOnly bool) ([]entities.Service, error) {
	var services []entities.Service
	query := r.db.GetDB().Preload("Features").Order("created_at ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&services).Error
	return services, err
}

func (r *servicePgRepository) GetFeatured() ([]entities.Service, error) {
	var services []entities.Service
	err := r.db.GetDB().Preload("Features").
		Where("featured = ? AND is_active = ?", true, true).
		Order("created_at ASC").
		Find(&services).Error
	return services, err
}

// Update saves the service row only; features are managed separately.
func (r *servicePgRepository) Update(service *entities.Service) error {
	return r.db.GetDB().Omit(clause.Associations).Save(service).Error
}

func (r *servicePgRepository) Delete(id string) error {
	return r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", id).Delete(&entities.ServiceFeature{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Service{}).Error
	})
}

func (r *servicePgRepository) AddFeature(feature *entities.ServiceFeature) error {
	return r.db.GetDB().Create(feature).Error
}

func (r *servicePgRepository) GetFeature(id string) (*entities.ServiceFeature, error) {
	var feature entities.ServiceFeature
	err := r.db.GetDB().Where("id = ?", id).First(&feature).Error
	if err != nil {
		return nil, err
	}
	return &feature, nil
}

func (r *servicePgRepository) DeleteFeature(id string) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.ServiceFeature{}).Error
}
