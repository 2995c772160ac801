package httpHandler

import (
	"net/http"

	"sage-portal/auth"
	"sage-portal/entities"
	"sage-portal/usecases"

	"github.com/gin-gonic/gin"
)

// maxUploadSize bounds multipart document uploads.
const maxUploadSize = 20 << 20

type ClientServiceHandler struct {
	useCase *usecases.ClientServiceUseCase
}

func NewClientServiceHandler(useCase *usecases.ClientServiceUseCase) *ClientServiceHandler {
	return &ClientServiceHandler{useCase: useCase}
}

// GetMine handles GET /api/v1/me/services
func (h *ClientServiceHandler) GetMine(c *gin.Context) {
	services, err := h.useCase.ClientServices(auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, services)
}

// GetOne handles GET /api/v1/client-services/:id
func (h *ClientServiceHandler) GetOne(c *gin.Context) {
	service, err := h.useCase.GetClientServiceFor(c.Param("id"), auth.UserID(c), isAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": service})
}

// GetDocuments handles GET /api/v1/client-services/:id/documents
func (h *ClientServiceHandler) GetDocuments(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.useCase.GetClientServiceFor(id, auth.UserID(c), isAdmin(c)); err != nil {
		respondError(c, err)
		return
	}
	documents, err := h.useCase.Documents(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, documents)
}

// GetAll handles GET /api/v1/admin/client-services
func (h *ClientServiceHandler) GetAll(c *gin.Context) {
	services, err := h.useCase.AllClientServices()
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, services)
}

// Create handles POST /api/v1/admin/client-services
func (h *ClientServiceHandler) Create(c *gin.Context) {
	var req usecases.ClientServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	service, err := h.useCase.CreateClientService(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Client service created successfully",
		"data":    service,
	})
}

// Update handles PUT /api/v1/admin/client-services/:id
func (h *ClientServiceHandler) Update(c *gin.Context) {
	var upd usecases.ClientServiceUpdate
	if !bindJSON(c, &upd) {
		return
	}
	service, err := h.useCase.UpdateClientService(c.Param("id"), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Client service updated successfully",
		"data":    service,
	})
}

// Delete handles DELETE /api/v1/admin/client-services/:id
func (h *ClientServiceHandler) Delete(c *gin.Context) {
	if err := h.useCase.DeleteClientService(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client service deleted successfully"})
}

// CreateDocument handles POST /api/v1/admin/client-services/:id/documents.
// A JSON body registers an already hosted file; a multipart form with a
// "file" field uploads it to the document store.
func (h *ClientServiceHandler) CreateDocument(c *gin.Context) {
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		h.uploadDocument(c)
		return
	}

	var doc entities.Document
	if !bindJSON(c, &doc) {
		return
	}
	doc.ID = ""
	if err := h.useCase.CreateDocument(c.Param("id"), &doc); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Document created successfully",
		"data":    doc,
	})
}

func (h *ClientServiceHandler) uploadDocument(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required", "details": err.Error()})
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	doc, err := h.useCase.UploadDocument(c.Param("id"), usecases.Upload{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		FileName:    header.Filename,
		Body:        file,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Document uploaded successfully",
		"data":    doc,
	})
}

// UpdateDocument handles PUT /api/v1/admin/documents/:id
func (h *ClientServiceHandler) UpdateDocument(c *gin.Context) {
	var upd usecases.DocumentUpdate
	if !bindJSON(c, &upd) {
		return
	}
	doc, err := h.useCase.UpdateDocument(c.Param("id"), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Document updated successfully",
		"data":    doc,
	})
}

// DeleteDocument handles DELETE /api/v1/admin/documents/:id
func (h *ClientServiceHandler) DeleteDocument(c *gin.Context) {
	if err := h.useCase.DeleteDocument(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}
