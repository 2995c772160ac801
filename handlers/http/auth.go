package httpHandler

import (
	"net/http"
	"strings"

	"sage-portal/auth"
	"sage-portal/logger"
	"sage-portal/usecases"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const resetRequestedMessage = "Si un compte existe pour cette adresse, un lien de réinitialisation a été envoyé."

type AuthHandler struct {
	useCase     *usecases.AuthUseCase
	invitations *usecases.InvitationUseCase
	baseURL     string
}

func NewAuthHandler(useCase *usecases.AuthUseCase, invitations *usecases.InvitationUseCase, baseURL string) *AuthHandler {
	return &AuthHandler{
		useCase:     useCase,
		invitations: invitations,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required"`
}

type tokenPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type passwordRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.useCase.SignIn(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": session})
}

// SignUp handles POST /api/v1/auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req usecases.SignUpRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.useCase.SignUp(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"data":    session,
	})
}

// ForgotPassword handles POST /api/v1/auth/forgot-password. The answer is
// the same whether or not the address is registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if !bindJSON(c, &req) {
		return
	}
	token, err := h.useCase.RequestPasswordReset(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if token != "" {
		// delivery is out of band; operators forward the link
		logger.L().Info("password reset link issued",
			zap.String("email", req.Email),
			zap.String("link", h.baseURL+"/reset-password?token="+token))
	}
	c.JSON(http.StatusOK, gin.H{"message": resetRequestedMessage})
}

// ResetPassword handles POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req tokenPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.useCase.ResetPassword(req.Token, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// Activate handles POST /api/v1/auth/activate
func (h *AuthHandler) Activate(c *gin.Context) {
	var req tokenPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	profile, err := h.invitations.Activate(req.Token, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Account activated successfully",
		"data":    profile,
	})
}

// Me handles GET /api/v1/me
func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.useCase.CurrentUser(auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profile})
}

// Permissions handles GET /api/v1/me/permissions
func (h *AuthHandler) Permissions(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"role":        claims.Role,
		"permissions": auth.Permissions(claims.Role),
	})
}

// UpdatePassword handles PUT /api/v1/me/password
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req passwordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.useCase.UpdatePassword(auth.UserID(c), req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
