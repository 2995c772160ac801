package httpHandler

import (
	"net/http"

	"sage-portal/auth"
	"sage-portal/usecases"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	useCase     *usecases.ProfileUseCase
	invitations *usecases.InvitationUseCase
}

func NewProfileHandler(useCase *usecases.ProfileUseCase, invitations *usecases.InvitationUseCase) *ProfileHandler {
	return &ProfileHandler{useCase: useCase, invitations: invitations}
}

// UpdateMe handles PUT /api/v1/me
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var upd usecases.ProfileUpdate
	if !bindJSON(c, &upd) {
		return
	}
	profile, err := h.useCase.UpdateOwnProfile(auth.UserID(c), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"data":    profile,
	})
}

// GetProfiles handles GET /api/v1/admin/profiles?role=
func (h *ProfileHandler) GetProfiles(c *gin.Context) {
	profiles, err := h.useCase.ListProfiles(c.Query("role"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, profiles)
}

// GetClients handles GET /api/v1/admin/clients
func (h *ProfileHandler) GetClients(c *gin.Context) {
	clients, err := h.useCase.ListClients()
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, clients)
}

// GetProfile handles GET /api/v1/admin/profiles/:id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.useCase.GetProfile(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profile})
}

// UpdateProfile handles PUT /api/v1/admin/profiles/:id
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var upd usecases.ProfileUpdate
	if !bindJSON(c, &upd) {
		return
	}
	profile, err := h.useCase.UpdateProfile(c.Param("id"), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"data":    profile,
	})
}

// DeleteProfile handles DELETE /api/v1/admin/profiles/:id
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	id := c.Param("id")
	if id == auth.UserID(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "you cannot delete your own account"})
		return
	}
	if err := h.useCase.DeleteProfile(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted successfully"})
}

// Invite handles POST /api/v1/admin/invitations
func (h *ProfileHandler) Invite(c *gin.Context) {
	var req usecases.InviteRequest
	if !bindJSON(c, &req) {
		return
	}
	invitation, err := h.invitations.Invite(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Invitation créée pour " + invitation.Profile.Email,
		"data":    invitation,
	})
}

// ResendInvitation handles POST /api/v1/admin/invitations/:user_id/resend
func (h *ProfileHandler) ResendInvitation(c *gin.Context) {
	invitation, err := h.invitations.Resend(c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Nouvelle invitation pour " + invitation.Profile.Email,
		"data":    invitation,
	})
}
