package usecases

import (
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"sage-portal/entities"
	"sage-portal/repositories"
	"sage-portal/storage"

	"github.com/google/uuid"
)

var clientServiceStatuses = []string{
	entities.ClientServicePlanned,
	entities.ClientServiceInProgress,
	entities.ClientServiceDone,
	entities.ClientServiceCancelled,
}

type ClientServiceRequest struct {
	UserID      string    `json:"user_id"`
	ServiceID   string    `json:"service_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ServiceDate time.Time `json:"service_date"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
}

type ClientServiceUpdate struct {
	ServiceID   *string    `json:"service_id"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	ServiceDate *time.Time `json:"service_date"`
	Status      *string    `json:"status"`
	Notes       *string    `json:"notes"`
}

type DocumentUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// Upload is a document file received from an administrator.
type Upload struct {
	Title       string
	Description string
	FileName    string
	Body        io.Reader
}

// ClientServiceUseCase manages engagements and their documents.
type ClientServiceUseCase struct {
	services  repositories.ClientServiceRepository
	documents repositories.DocumentRepository
	profiles  repositories.ProfileRepository
	files     storage.FileStore
}

// NewClientServiceUseCase wires the use case. files may be nil when uploads
// are not offered.
func NewClientServiceUseCase(services repositories.ClientServiceRepository, documents repositories.DocumentRepository, profiles repositories.ProfileRepository, files storage.FileStore) *ClientServiceUseCase {
	return &ClientServiceUseCase{
		services:  services,
		documents: documents,
		profiles:  profiles,
		files:     files,
	}
}

func checkStatus(status string, allowed []string) error {
	for _, s := range allowed {
		if s == status {
			return nil
		}
	}
	return invalid("status must be one of %s", strings.Join(allowed, ", "))
}

func (uc *ClientServiceUseCase) ClientServices(userID string) ([]entities.ClientService, error) {
	return uc.services.GetByUserID(userID)
}

func (uc *ClientServiceUseCase) AllClientServices() ([]entities.ClientService, error) {
	return uc.services.GetAll()
}

func (uc *ClientServiceUseCase) GetClientService(id string) (*entities.ClientService, error) {
	cs, err := uc.services.GetByID(id)
	if err != nil {
		return nil, notFound("client service", err)
	}
	return cs, nil
}

// GetClientServiceFor returns the engagement if it belongs to userID, or to
// anyone when the caller is an administrator.
func (uc *ClientServiceUseCase) GetClientServiceFor(id, userID string, isAdmin bool) (*entities.ClientService, error) {
	cs, err := uc.GetClientService(id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && cs.UserID != userID {
		return nil, fmt.Errorf("%w: client service %s", ErrForbidden, id)
	}
	return cs, nil
}

func (uc *ClientServiceUseCase) CreateClientService(req ClientServiceRequest) (*entities.ClientService, error) {
	if req.UserID == "" {
		return nil, required("user_id")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, required("title")
	}
	if req.Status == "" {
		req.Status = entities.ClientServicePlanned
	}
	if err := checkStatus(req.Status, clientServiceStatuses); err != nil {
		return nil, err
	}
	if _, err := uc.profiles.GetByID(req.UserID); err != nil {
		return nil, notFound("client", err)
	}
	if req.ServiceDate.IsZero() {
		req.ServiceDate = time.Now()
	}

	cs := &entities.ClientService{
		UserID:      req.UserID,
		ServiceID:   req.ServiceID,
		Title:       title,
		Description: req.Description,
		ServiceDate: req.ServiceDate,
		Status:      req.Status,
		Notes:       req.Notes,
	}
	if err := uc.services.Create(cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func (uc *ClientServiceUseCase) UpdateClientService(id string, upd ClientServiceUpdate) (*entities.ClientService, error) {
	existing, err := uc.GetClientService(id)
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
	if upd.Status != nil {
		if err := checkStatus(*upd.Status, clientServiceStatuses); err != nil {
			return nil, err
		}
		existing.Status = *upd.Status
	}
	if upd.ServiceID != nil {
		existing.ServiceID = *upd.ServiceID
	}
	if upd.Description != nil {
		existing.Description = *upd.Description
	}
	if upd.ServiceDate != nil {
		existing.ServiceDate = *upd.ServiceDate
	}
	if upd.Notes != nil {
		existing.Notes = *upd.Notes
	}

	if err := uc.services.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (uc *ClientServiceUseCase) DeleteClientService(id string) error {
	if _, err := uc.GetClientService(id); err != nil {
		return err
	}
	return uc.services.Delete(id)
}

// ============= Documents =============

func (uc *ClientServiceUseCase) Documents(clientServiceID string) ([]entities.Document, error) {
	if _, err := uc.GetClientService(clientServiceID); err != nil {
		return nil, err
	}
	return uc.documents.GetByClientServiceID(clientServiceID)
}

func (uc *ClientServiceUseCase) CreateDocument(clientServiceID string, doc *entities.Document) error {
	if _, err := uc.GetClientService(clientServiceID); err != nil {
		return err
	}
	if strings.TrimSpace(doc.Title) == "" {
		return required("title")
	}
	if strings.TrimSpace(doc.FileURL) == "" {
		return required("file_url")
	}
	doc.ClientServiceID = clientServiceID
	return uc.documents.Create(doc)
}

// UploadDocument stores the file and records it on the engagement.
func (uc *ClientServiceUseCase) UploadDocument(clientServiceID string, up Upload) (*entities.Document, error) {
	if uc.files == nil {
		return nil, invalid("file uploads are not enabled")
	}
	if _, err := uc.GetClientService(clientServiceID); err != nil {
		return nil, err
	}
	if up.Body == nil {
		return nil, required("file")
	}

	title := strings.TrimSpace(up.Title)
	if title == "" {
		title = strings.TrimSuffix(path.Base(up.FileName), path.Ext(up.FileName))
	}
	if title == "" || title == "." || title == "/" {
		return nil, required("title")
	}

	name := path.Join("client-services", clientServiceID, uuid.New().String()+strings.ToLower(path.Ext(up.FileName)))
	stored, err := uc.files.Save(name, up.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	doc := &entities.Document{
		ClientServiceID: clientServiceID,
		Title:           title,
		Description:     up.Description,
		FileURL:         stored.URL,
		FileType:        stored.ContentType,
		FileSize:        stored.Size,
	}
	if err := uc.documents.Create(doc); err != nil {
		_ = uc.files.Delete(stored.Path)
		return nil, err
	}
	return doc, nil
}

func (uc *ClientServiceUseCase) UpdateDocument(id string, upd DocumentUpdate) (*entities.Document, error) {
	existing, err := uc.documents.GetByID(id)
	if err != nil {
		return nil, notFound("document", err)
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
	if err := uc.documents.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (uc *ClientServiceUseCase) DeleteDocument(id string) error {
	if _, err := uc.documents.GetByID(id); err != nil {
		return notFound("document", err)
	}
	return uc.documents.Delete(id)
}
