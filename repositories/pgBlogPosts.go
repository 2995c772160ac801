package repositories

import (
	"sage-portal/db"
	"sage-portal/entities"
)

type blogPgRepository struct {
	db db.Database
}

func NewBlogPgRepository(database db.Database) BlogRepository {
	return &blogPgRepository{db: database}
}

func (r *blogPgRepository) Create(post *entities.BlogPost) error {
	return r.db.GetDB().Create(post).Error
}

func (r *blogPgRepository) GetByID(id string) (*entities.BlogPost, error) {
	var post entities.BlogPost
	err := r.db.GetDB().Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogPgRepository) GetBySlug(slug string) (*entities.BlogPost, error) {
	var post entities.BlogPost
	err := r.db.GetDB().Where("slug = ?", slug).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogPgRepository) GetAll() ([]entities.BlogPost, error) {
	var posts []entities.BlogPost
	err := r.db.GetDB().Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *blogPgRepository) GetPublished() ([]entities.BlogPost, error) {
	var posts []entities.BlogPost
	err := r.db.GetDB().Where("published = ?", true).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// SlugExists also sees soft-deleted posts, which still hold the unique index.
func (r *blogPgRepository) SlugExists(slug, excludeID string) (bool, error) {
	var count int64
	query := r.db.GetDB().Unscoped().Model(&entities.BlogPost{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *blogPgRepository) Update(post *entities.BlogPost) error {
	return r.db.GetDB().Save(post).Error
}

func (r *blogPgRepository) Delete(id string) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.BlogPost{}).Error
}
