package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	PurposeSession       = "session"
	PurposeInvitation    = "invitation"
	PurposePasswordReset = "password_reset"

	InvitationTTL    = 7 * 24 * time.Hour
	PasswordResetTTL = time.Hour
)

var (
	ErrInvalidCredentials = errors.New("Invalid login credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Claims identifies a profile. Purpose keeps activation and reset links from
// being used as session tokens.
type Claims struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 tokens with one shared secret.
type TokenManager struct {
	secret     []byte
	sessionTTL time.Duration
	now        func() time.Time
}

func NewTokenManager(secret string, sessionTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// IssueSession returns a session token and its expiry.
func (m *TokenManager) IssueSession(userID, email, role string) (string, time.Time, error) {
	return m.issue(userID, email, role, "", PurposeSession, m.sessionTTL)
}

// IssueInvitation signs an activation link. tokenID lands in the jti claim so
// that a resent invitation can supersede the previous one.
func (m *TokenManager) IssueInvitation(userID, email, role, tokenID string) (string, time.Time, error) {
	return m.issue(userID, email, role, tokenID, PurposeInvitation, InvitationTTL)
}

func (m *TokenManager) IssuePasswordReset(userID, email, role string) (string, time.Time, error) {
	return m.issue(userID, email, role, "", PurposePasswordReset, PasswordResetTTL)
}

func (m *TokenManager) issue(userID, email, role, tokenID, purpose string, ttl time.Duration) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Email:   email,
		Role:    role,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies signature, expiry and purpose. Every failure wraps ErrInvalidToken.
func (m *TokenManager) Parse(tokenString, purpose string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose {
		return nil, fmt.Errorf("%w: token is not a %s token", ErrInvalidToken, purpose)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}
