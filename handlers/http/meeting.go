package httpHandler

import (
	"net/http"

	"sage-portal/auth"
	"sage-portal/usecases"

	"github.com/gin-gonic/gin"
)

type MeetingHandler struct {
	useCase *usecases.MeetingUseCase
}

func NewMeetingHandler(useCase *usecases.MeetingUseCase) *MeetingHandler {
	return &MeetingHandler{useCase: useCase}
}

// GetMine handles GET /api/v1/me/meetings
func (h *MeetingHandler) GetMine(c *gin.Context) {
	meetings, err := h.useCase.ClientMeetings(auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, meetings)
}

// GetAll handles GET /api/v1/admin/meetings
func (h *MeetingHandler) GetAll(c *gin.Context) {
	meetings, err := h.useCase.AllMeetings()
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, meetings)
}

// Create handles POST /api/v1/admin/meetings
func (h *MeetingHandler) Create(c *gin.Context) {
	var req usecases.MeetingRequest
	if !bindJSON(c, &req) {
		return
	}
	meeting, err := h.useCase.CreateMeeting(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Meeting scheduled successfully",
		"data":    meeting,
	})
}

// Update handles PUT /api/v1/admin/meetings/:id
func (h *MeetingHandler) Update(c *gin.Context) {
	var upd usecases.MeetingUpdate
	if !bindJSON(c, &upd) {
		return
	}
	meeting, err := h.useCase.UpdateMeeting(c.Param("id"), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Meeting updated successfully",
		"data":    meeting,
	})
}

// Delete handles DELETE /api/v1/admin/meetings/:id
func (h *MeetingHandler) Delete(c *gin.Context) {
	if err := h.useCase.DeleteMeeting(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meeting deleted successfully"})
}
