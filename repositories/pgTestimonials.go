package repositories

import (
	"sage-portal/db"
	"sage-portal/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type testimonialPgRepository struct {
	db db.Database
}

func NewTestimonialPgRepository(database db.Database) TestimonialRepository {
	return &testimonialPgRepository{db: database}
}

func (r *testimonialPgRepository) withRelations() *gorm.DB {
	return r.db.GetDB().Preload("User").Preload("Service")
}

func (r *testimonialPgRepository) Create(testimonial *entities.Testimonial) error {
	return r.db.GetDB().Omit(clause.Associations).Create(testimonial).Error
}

func (r *testimonialPgRepository) GetByID(id string) (*entities.Testimonial, error) {
	var testimonial entities.Testimonial
	err := r.withRelations().Where("id = ?", id).First(&testimonial).Error
	if err != nil {
		return nil, err
	}
	return &testimonial, nil
}

func (r *testimonialPgRepository) GetAll() ([]entities.Testimonial, error) {
	var testimonials []entities.Testimonial
	err := r.withRelations().Order("created_at DESC").Find(&testimonials).Error
	return testimonials, err
}

func (r *testimonialPgRepository) GetApproved() ([]entities.Testimonial, error) {
	var testimonials []entities.Testimonial
	err := r.withRelations().Where("is_approved = ?", true).Order("created_at DESC").Find(&testimonials).Error
	return testimonials, err
}

func (r *testimonialPgRepository) GetFeatured() ([]entities.Testimonial, error) {
	var testimonials []entities.Testimonial
	err := r.withRelations().
		Where("is_approved = ? AND is_featured = ?", true, true).
		Order("created_at DESC").
		Find(&testimonials).Error
	return testimonials, err
}

func (r *testimonialPgRepository) GetByUserID(userID string) ([]entities.Testimonial, error) {
	var testimonials []entities.Testimonial
	err := r.withRelations().Where("user_id = ?", userID).Order("created_at DESC").Find(&testimonials).Error
	return testimonials, err
}

func (r *testimonialPgRepository) Update(testimonial *entities.Testimonial) error {
	return r.db.GetDB().Omit(clause.Associations).Save(testimonial).Error
}

func (r *testimonialPgRepository) Delete(id string) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.Testimonial{}).Error
}
