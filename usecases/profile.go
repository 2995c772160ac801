package usecases

import (
	"strings"

	"sage-portal/entities"
	"sage-portal/repositories"
)

// ProfileUpdate lists the editable profile fields; nil means unchanged.
// Role and Status are only honoured for administrators.
type ProfileUpdate struct {
	FullName  *string `json:"full_name"`
	Phone     *string `json:"phone"`
	Company   *string `json:"company"`
	AvatarURL *string `json:"avatar_url"`
	Role      *string `json:"role"`
	Status    *string `json:"status"`
}

type ProfileUseCase struct {
	profiles repositories.ProfileRepository
}

func NewProfileUseCase(profiles repositories.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{profiles: profiles}
}

func (uc *ProfileUseCase) GetProfile(id string) (*entities.Profile, error) {
	if id == "" {
		return nil, required("profile id")
	}
	profile, err := uc.profiles.GetByID(id)
	if err != nil {
		return nil, notFound("profile", err)
	}
	return profile, nil
}

// ListProfiles lists every profile, or only one role when role is set.
func (uc *ProfileUseCase) ListProfiles(role string) ([]entities.Profile, error) {
	if role != "" && role != entities.RoleAdmin && role != entities.RoleClient {
		return nil, invalid("unknown role %q", role)
	}
	return uc.profiles.GetAll(role)
}

func (uc *ProfileUseCase) ListClients() ([]repositories.ClientSummary, error) {
	return uc.profiles.GetClientSummaries()
}

// UpdateOwnProfile applies a user's edit of their own profile.
func (uc *ProfileUseCase) UpdateOwnProfile(id string, upd ProfileUpdate) (*entities.Profile, error) {
	upd.Role, upd.Status = nil, nil
	return uc.update(id, upd)
}

// UpdateProfile is the administrator edit, which may change role and status.
func (uc *ProfileUseCase) UpdateProfile(id string, upd ProfileUpdate) (*entities.Profile, error) {
	if upd.Role != nil && *upd.Role != entities.RoleAdmin && *upd.Role != entities.RoleClient {
		return nil, invalid("unknown role %q", *upd.Role)
	}
	if upd.Status != nil {
		switch *upd.Status {
		case entities.StatusActive, entities.StatusInactive, entities.StatusPending:
		default:
			return nil, invalid("unknown status %q", *upd.Status)
		}
	}
	return uc.update(id, upd)
}

func (uc *ProfileUseCase) update(id string, upd ProfileUpdate) (*entities.Profile, error) {
	existing, err := uc.GetProfile(id)
	if err != nil {
		return nil, err
	}

	// Update only provided fields
	if upd.FullName != nil {
		existing.FullName = strings.TrimSpace(*upd.FullName)
	}
	if upd.Phone != nil {
		existing.Phone = strings.TrimSpace(*upd.Phone)
	}
	if upd.Company != nil {
		existing.Company = strings.TrimSpace(*upd.Company)
	}
	if upd.AvatarURL != nil {
		existing.AvatarURL = *upd.AvatarURL
	}
	if upd.Role != nil {
		existing.Role = *upd.Role
	}
	if upd.Status != nil {
		existing.Status = *upd.Status
	}

	if err := uc.profiles.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (uc *ProfileUseCase) DeleteProfile(id string) error {
	if _, err := uc.GetProfile(id); err != nil {
		return err
	}
	return uc.profiles.Delete(id)
}
