package usecases

import (
	"strings"

	"sage-portal/entities"
	"sage-portal/repositories"
)

const (
	minRating = 1
	maxRating = 5
)

type TestimonialRequest struct {
	Content   string  `json:"content"`
	Rating    int     `json:"rating"`
	ServiceID *string `json:"service_id"`
}

type TestimonialUpdate struct {
	Content    *string `json:"content"`
	Rating     *int    `json:"rating"`
	IsApproved *bool   `json:"is_approved"`
	IsFeatured *bool   `json:"is_featured"`
}

type TestimonialUseCase struct {
	testimonials repositories.TestimonialRepository
}

func NewTestimonialUseCase(testimonials repositories.TestimonialRepository) *TestimonialUseCase {
	return &TestimonialUseCase{testimonials: testimonials}
}

func (uc *TestimonialUseCase) ApprovedTestimonials() ([]entities.Testimonial, error) {
	return uc.testimonials.GetApproved()
}

func (uc *TestimonialUseCase) FeaturedTestimonials() ([]entities.Testimonial, error) {
	return uc.testimonials.GetFeatured()
}

func (uc *TestimonialUseCase) AllTestimonials() ([]entities.Testimonial, error) {
	return uc.testimonials.GetAll()
}

func (uc *TestimonialUseCase) UserTestimonials(userID string) ([]entities.Testimonial, error) {
	return uc.testimonials.GetByUserID(userID)
}

func checkRating(rating int) error {
	if rating < minRating || rating > maxRating {
		return invalid("rating must be between %d and %d", minRating, maxRating)
	}
	return nil
}

// CreateTestimonial stores a client's review. It stays hidden until approved.
func (uc *TestimonialUseCase) CreateTestimonial(userID string, req TestimonialRequest) (*entities.Testimonial, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, required("content")
	}
	if err := checkRating(req.Rating); err != nil {
		return nil, err
	}
	if req.ServiceID != nil && *req.ServiceID == "" {
		req.ServiceID = nil
	}

	testimonial := &entities.Testimonial{
		UserID:    userID,
		Content:   content,
		Rating:    req.Rating,
		ServiceID: req.ServiceID,
	}
	if err := uc.testimonials.Create(testimonial); err != nil {
		return nil, err
	}
	return testimonial, nil
}

func (uc *TestimonialUseCase) GetTestimonial(id string) (*entities.Testimonial, error) {
	testimonial, err := uc.testimonials.GetByID(id)
	if err != nil {
		return nil, notFound("testimonial", err)
	}
	return testimonial, nil
}

// ApproveTestimonial publishes a testimonial, optionally featuring it.
func (uc *TestimonialUseCase) ApproveTestimonial(id string, featured bool) (*entities.Testimonial, error) {
	approved := true
	return uc.UpdateTestimonial(id, TestimonialUpdate{IsApproved: &approved, IsFeatured: &featured})
}

func (uc *TestimonialUseCase) UpdateTestimonial(id string, upd TestimonialUpdate) (*entities.Testimonial, error) {
	existing, err := uc.GetTestimonial(id)
	if err != nil {
		return nil, err
	}

	if upd.Content != nil {
		content := strings.TrimSpace(*upd.Content)
		if content == "" {
			return nil, required("content")
		}
		existing.Content = content
	}
	if upd.Rating != nil {
		if err := checkRating(*upd.Rating); err != nil {
			return nil, err
		}
		existing.Rating = *upd.Rating
	}
	if upd.IsApproved != nil {
		existing.IsApproved = *upd.IsApproved
	}
	if upd.IsFeatured != nil {
		existing.IsFeatured = *upd.IsFeatured
	}
	// only approved testimonials can be featured
	if !existing.IsApproved {
		existing.IsFeatured = false
	}

	if err := uc.testimonials.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (uc *TestimonialUseCase) DeleteTestimonial(id string) error {
	if _, err := uc.GetTestimonial(id); err != nil {
		return err
	}
	return uc.testimonials.Delete(id)
}
