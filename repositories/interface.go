package repositories

import "sage-portal/entities"

// ClientSummary is a client profile with the number of engagements on file.
type ClientSummary struct {
	entities.Profile
	ServiceCount int64 `json:"service_count"`
}

type ProfileRepository interface {
	Create(profile *entities.Profile) error
	GetByID(id string) (*entities.Profile, error)
	GetByEmail(email string) (*entities.Profile, error)
	GetAll(role string) ([]entities.Profile, error)
	GetClientSummaries() ([]ClientSummary, error)
	Update(profile *entities.Profile) error
	Delete(id string) error
}

type ServiceRepository interface {
	Create(service *entities.Service) error
	GetByID(id string) (*entities.Service, error)
	GetAll(activeOnly bool) ([]entities.Service, error)
	GetFeatured() ([]entities.Service, error)
	Update(service *entities.Service) error
	Delete(id string) error
	AddFeature(feature *entities.ServiceFeature) error
	GetFeature(id string) (*entities.ServiceFeature, error)
	DeleteFeature(id string) error
}

type TestimonialRepository interface {
	Create(testimonial *entities.Testimonial) error
	GetByID(id string) (*entities.Testimonial, error)
	GetAll() ([]entities.Testimonial, error)
	GetApproved() ([]entities.Testimonial, error)
	GetFeatured() ([]entities.Testimonial, error)
	GetByUserID(userID string) ([]entities.Testimonial, error)
	Update(testimonial *entities.Testimonial) error
	Delete(id string) error
}

type BlogRepository interface {
	Create(post *entities.BlogPost) error
	GetByID(id string) (*entities.BlogPost, error)
	GetBySlug(slug string) (*entities.BlogPost, error)
	GetAll() ([]entities.BlogPost, error)
	GetPublished() ([]entities.BlogPost, error)
	SlugExists(slug, excludeID string) (bool, error)
	Update(post *entities.BlogPost) error
	Delete(id string) error
}

type ClientServiceRepository interface {
	Create(cs *entities.ClientService) error
	GetByID(id string) (*entities.ClientService, error)
	GetAll() ([]entities.ClientService, error)
	GetByUserID(userID string) ([]entities.ClientService, error)
	Update(cs *entities.ClientService) error
	Delete(id string) error
}

type DocumentRepository interface {
	Create(doc *entities.Document) error
	GetByID(id string) (*entities.Document, error)
	GetByClientServiceID(clientServiceID string) ([]entities.Document, error)
	Update(doc *entities.Document) error
	Delete(id string) error
}

type MeetingRepository interface {
	Create(meeting *entities.Meeting) error
	GetByID(id string) (*entities.Meeting, error)
	GetAll() ([]entities.Meeting, error)
	GetByUserID(userID string) ([]entities.Meeting, error)
	Update(meeting *entities.Meeting) error
	Delete(id string) error
}

type MessageRepository interface {
	Create(message *entities.Message) error
	GetByID(id string) (*entities.Message, error)
	GetByUserID(userID string) ([]entities.Message, error)
	GetConversation(userID, otherUserID string) ([]entities.Message, error)
	MarkAsRead(id string) error
}
