package usecases

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"sage-portal/auth"
	"sage-portal/entities"
	"sage-portal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultCompany = "1C Gestion"

var invitationTemplate = template.Must(template.New("invitation").Parse(strings.TrimSpace(`
=== {{if .Reminder}}RAPPEL INVITATION{{else}}INVITATION{{end}} {{.RoleUpper}} SAGE 100 ===

Bonjour {{.FullName}},

{{if .Reminder}}Rappel: Vous êtes invité(e) à rejoindre la plateforme Sage 100.{{else}}Vous êtes invité(e) à rejoindre la plateforme Sage 100 - 1C Gestion.{{end}}

🔗 {{if .Reminder}}NOUVEAU LIEN{{else}}LIEN{{end}} D'ACTIVATION:
{{.Link}}

📧 Email: {{.Email}}
👤 Rôle: {{.RoleLabel}}
🏢 Société: {{.Company}}
{{if .Reminder}}
Ce nouveau lien remplace le précédent.
{{else}}
📋 INSTRUCTIONS:
1. Cliquez sur le lien d'activation
2. Définissez votre mot de passe
3. Accédez à votre espace {{.SpaceLabel}}

🔒 Ce lien expire dans 7 jours.
{{end}}
---
Équipe 1C Gestion
`)))

type InviteRequest struct {
	Email    string `json:"email" binding:"required"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	Company  string `json:"company"`
}

// Invitation is handed back to the administrator, who forwards it.
type Invitation struct {
	Profile       *entities.Profile `json:"user"`
	ActivationURL string            `json:"activation_url"`
	ExpiresAt     time.Time         `json:"expires_at"`
	Instructions  string            `json:"instructions"`
}

type InvitationUseCase struct {
	profiles repositories.ProfileRepository
	tokens   *auth.TokenManager
	baseURL  string
	validate *validator.Validate
}

// NewInvitationUseCase builds activation links below baseURL, the public
// address of the portal front end.
func NewInvitationUseCase(profiles repositories.ProfileRepository, tokens *auth.TokenManager, baseURL string) *InvitationUseCase {
	return &InvitationUseCase{
		profiles: profiles,
		tokens:   tokens,
		baseURL:  strings.TrimRight(baseURL, "/"),
		validate: validator.New(),
	}
}

// Invite creates a pending profile and its activation instructions.
func (uc *InvitationUseCase) Invite(req InviteRequest) (*Invitation, error) {
	email := normalizeEmail(req.Email)
	if err := uc.validate.Var(email, "required,email"); err != nil {
		return nil, auth.ErrEmailInvalid
	}
	role := req.Role
	if role == "" {
		role = entities.RoleClient
	}
	if role != entities.RoleAdmin && role != entities.RoleClient {
		return nil, invalid("unknown role %q", role)
	}
	company := strings.TrimSpace(req.Company)
	if company == "" {
		company = defaultCompany
	}

	if _, err := uc.profiles.GetByEmail(email); err == nil {
		return nil, auth.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile := &entities.Profile{
		Email:        email,
		Role:         role,
		Status:       entities.StatusPending,
		FullName:     strings.TrimSpace(req.FullName),
		Company:      company,
		InvitationID: uuid.New().String(),
	}
	if err := uc.profiles.Create(profile); err != nil {
		return nil, err
	}
	return uc.build(profile, false)
}

// Resend issues a fresh link for a profile that has not activated yet. Links
// sent before stop working.
func (uc *InvitationUseCase) Resend(userID string) (*Invitation, error) {
	profile, err := uc.profiles.GetByID(userID)
	if err != nil {
		return nil, notFound("profile", err)
	}
	if profile.Status != entities.StatusPending {
		return nil, invalid("account %s is already activated", profile.Email)
	}
	profile.InvitationID = uuid.New().String()
	if err := uc.profiles.Update(profile); err != nil {
		return nil, err
	}
	return uc.build(profile, true)
}

// Activate sets the password of an invited profile and enables it.
func (uc *InvitationUseCase) Activate(token, password string) (*entities.Profile, error) {
	claims, err := uc.tokens.Parse(token, auth.PurposeInvitation)
	if err != nil {
		return nil, err
	}
	profile, err := uc.profiles.GetByID(claims.Subject)
	if err != nil {
		return nil, notFound("profile", err)
	}
	if !strings.EqualFold(profile.Email, claims.Email) {
		return nil, auth.ErrInvalidToken
	}
	if profile.Status == entities.StatusActive {
		return nil, invalid("Ce compte est déjà activé. Utilisez la page de connexion.")
	}
	if profile.InvitationID == "" || claims.ID != profile.InvitationID {
		return nil, fmt.Errorf("%w: invitation link was replaced", auth.ErrInvalidToken)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	profile.PasswordHash = hash
	profile.Status = entities.StatusActive
	profile.InvitationID = ""
	if profile.Role == entities.RoleClient && profile.ClientSince == nil {
		profile.ClientSince = &now
	}
	if err := uc.profiles.Update(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (uc *InvitationUseCase) build(profile *entities.Profile, reminder bool) (*Invitation, error) {
	token, expiresAt, err := uc.tokens.IssueInvitation(profile.ID, profile.Email, profile.Role, profile.InvitationID)
	if err != nil {
		return nil, err
	}
	link := uc.baseURL + "/client-activation?token=" + token

	roleLabel, spaceLabel := "Client", "client"
	if profile.Role == entities.RoleAdmin {
		roleLabel, spaceLabel = "Administrateur", "administrateur"
	}

	var buf bytes.Buffer
	err = invitationTemplate.Execute(&buf, map[string]interface{}{
		"Reminder":   reminder,
		"RoleUpper":  strings.ToUpper(profile.Role),
		"RoleLabel":  roleLabel,
		"SpaceLabel": spaceLabel,
		"FullName":   profile.FullName,
		"Email":      profile.Email,
		"Company":    profile.Company,
		"Link":       link,
	})
	if err != nil {
		return nil, err
	}

	return &Invitation{
		Profile:       profile,
		ActivationURL: link,
		ExpiresAt:     expiresAt,
		Instructions:  buf.String(),
	}, nil
}
