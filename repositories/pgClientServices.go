package repositories

import (
	"sage-portal/db"
	"sage-portal/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type clientServicePgRepository struct {
	db db.Database
}

func NewClientServicePgRepository(database db.Database) ClientServiceRepository {
	return &clientServicePgRepository{db: database}
}

func (r *clientServicePgRepository) Create(cs *entities.ClientService) error {
	return r.db.GetDB().Omit(clause.Associations).Create(cs).Error
}

func (r *clientServicePgRepository) GetByID(id string) (*entities.ClientService, error) {
	var cs entities.ClientService
	err := r.db.GetDB().Preload("Documents").Where("id = ?", id).First(&cs).Error
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

func (r *clientServicePgRepository) GetAll() ([]entities.ClientService, error) {
	var list []entities.ClientService
	err := r.db.GetDB().Preload("Documents").Order("service_date DESC").Find(&list).Error
	return list, err
}

func (r *clientServicePgRepository) GetByUserID(userID string) ([]entities.ClientService, error) {
	var list []entities.ClientService
	err := r.db.GetDB().Preload("Documents").
		Where("user_id = ?", userID).
		Order("service_date DESC").
		Find(&list).Error
	return list, err
}

func (r *clientServicePgRepository) Update(cs *entities.ClientService) error {
	return r.db.GetDB().Omit(clause.Associations).Save(cs).Error
}

func (r *clientServicePgRepository) Delete(id string) error {
	return r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_service_id = ?", id).Delete(&entities.Document{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.ClientService{}).Error
	})
}

type documentPgRepository struct {
	db db.Database
}

func NewDocumentPgRepository(database db.Database) DocumentRepository {
	return &documentPgRepository{db: database}
}

func (r *documentPgRepository) Create(doc *entities.Document) error {
	return r.db.GetDB().Create(doc).Error
}

func (r *documentPgRepository) GetByID(id string) (*entities.Document, error) {
	var doc entities.Document
	err := r.db.GetDB().Where("id = ?", id).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentPgRepository) GetByClientServiceID(clientServiceID string) ([]entities.Document, error) {
	var docs []entities.Document
	err := r.db.GetDB().Where("client_service_id = ?", clientServiceID).Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *documentPgRepository) Update(doc *entities.Document) error {
	return r.db.GetDB().Save(doc).Error
}

func (r *documentPgRepository) Delete(id string) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.Document{}).Error
}
