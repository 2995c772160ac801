package usecases

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sage-portal/auth"
	"sage-portal/entities"
	"sage-portal/repositories"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Session is what a successful sign-in returns to the client.
type Session struct {
	Token       string            `json:"token"`
	ExpiresAt   time.Time         `json:"expires_at"`
	User        *entities.Profile `json:"user"`
	Permissions []string          `json:"permissions"`
}

type SignUpRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
}

type AuthUseCase struct {
	profiles repositories.ProfileRepository
	tokens   *auth.TokenManager
	validate *validator.Validate
	now      func() time.Time
}

func NewAuthUseCase(profiles repositories.ProfileRepository, tokens *auth.TokenManager) *AuthUseCase {
	return &AuthUseCase{
		profiles: profiles,
		tokens:   tokens,
		validate: validator.New(),
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *AuthUseCase) checkEmail(email string) error {
	if err := uc.validate.Var(email, "required,email"); err != nil {
		return auth.ErrEmailInvalid
	}
	return nil
}

// SignIn checks credentials and opens a session. Pending invitations and
// deactivated accounts cannot sign in.
func (uc *AuthUseCase) SignIn(email, password string) (*Session, error) {
	profile, err := uc.profiles.GetByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(profile.PasswordHash, password) {
		return nil, auth.ErrInvalidCredentials
	}
	switch profile.Status {
	case entities.StatusPending:
		return nil, auth.ErrNotConfirmed
	case entities.StatusInactive:
		return nil, auth.ErrUnauthorized
	}

	now := uc.now()
	profile.LastLogin = &now
	if err := uc.profiles.Update(profile); err != nil {
		return nil, err
	}
	return uc.newSession(profile)
}

// SignUp registers a new active client.
func (uc *AuthUseCase) SignUp(req SignUpRequest) (*Session, error) {
	email := normalizeEmail(req.Email)
	if err := uc.checkEmail(email); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	if _, err := uc.profiles.GetByEmail(email); err == nil {
		return nil, auth.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := uc.now()
	profile := &entities.Profile{
		Email:        email,
		PasswordHash: hash,
		Role:         entities.RoleClient,
		Status:       entities.StatusActive,
		FullName:     strings.TrimSpace(req.FullName),
		Company:      strings.TrimSpace(req.Company),
		Phone:        strings.TrimSpace(req.Phone),
		ClientSince:  &now,
		LastLogin:    &now,
	}
	if err := uc.profiles.Create(profile); err != nil {
		return nil, err
	}
	return uc.newSession(profile)
}

func (uc *AuthUseCase) CurrentUser(userID string) (*entities.Profile, error) {
	profile, err := uc.profiles.GetByID(userID)
	if err != nil {
		return nil, notFound("profile", err)
	}
	return profile, nil
}

// RequestPasswordReset returns a reset token for a known active account.
// Unknown addresses yield an empty token and no error so that callers cannot
// probe which emails are registered.
func (uc *AuthUseCase) RequestPasswordReset(email string) (string, error) {
	profile, err := uc.profiles.GetByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	if profile.Status != entities.StatusActive {
		return "", nil
	}
	token, _, err := uc.tokens.IssuePasswordReset(profile.ID, profile.Email, profile.Role)
	return token, err
}

func (uc *AuthUseCase) ResetPassword(token, newPassword string) error {
	claims, err := uc.tokens.Parse(token, auth.PurposePasswordReset)
	if err != nil {
		return err
	}
	return uc.UpdatePassword(claims.Subject, newPassword)
}

func (uc *AuthUseCase) UpdatePassword(userID, newPassword string) error {
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	profile, err := uc.profiles.GetByID(userID)
	if err != nil {
		return notFound("profile", err)
	}
	profile.PasswordHash = hash
	return uc.profiles.Update(profile)
}

func (uc *AuthUseCase) newSession(profile *entities.Profile) (*Session, error) {
	token, expiresAt, err := uc.tokens.IssueSession(profile.ID, profile.Email, profile.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	return &Session{
		Token:       token,
		ExpiresAt:   expiresAt,
		User:        profile,
		Permissions: auth.Permissions(profile.Role),
	}, nil
}
