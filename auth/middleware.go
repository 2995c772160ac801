package auth

import (
	"errors"
	"net/http"
	"strings"

	"sage-portal/entities"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const claimsKey = "auth.claims"

// Accounts resolves the profile behind a session. repositories.ProfileRepository
// satisfies it.
type Accounts interface {
	GetByID(id string) (*entities.Profile, error)
}

// RequireAuth accepts a session token from the Authorization header, or from
// the token query parameter for websocket upgrades. The profile is re-read on
// every request: deleted or non-active accounts are rejected and the stored
// role replaces the one signed into the token.
func RequireAuth(tokens *TokenManager, accounts Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			raw = c.Query("token")
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": TranslateError(ErrUnauthorized.Error())})
			return
		}

		claims, err := tokens.Parse(raw, PurposeSession)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": Message(err)})
			return
		}

		profile, err := accounts.GetByID(claims.Subject)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": Message(ErrUserNotFound)})
			return
		case err != nil:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		case profile.Status != entities.StatusActive:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": TranslateError(ErrUnauthorized.Error())})
			return
		}
		claims.Role = profile.Role
		claims.Email = profile.Email

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok || claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": TranslateError(ErrUnauthorized.Error())})
			return
		}
		c.Next()
	}
}

// RequirePermission must run after RequireAuth.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok || !HasPermission(claims.Role, permission) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": TranslateError(ErrUnauthorized.Error())})
			return
		}
		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

// UserID returns the authenticated profile id, or "" outside RequireAuth.
func UserID(c *gin.Context) string {
	if claims, ok := ClaimsFrom(c); ok {
		return claims.Subject
	}
	return ""
}

// SetClaims attaches claims to a context; used by tests and the websocket upgrade.
func SetClaims(c *gin.Context, claims *Claims) {
	c.Set(claimsKey, claims)
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
