package repositories

import (
	"sage-portal/db"
	"sage-portal/entities"
)

type profilePgRepository struct {
	db db.Database
}

func NewProfilePgRepository(database db.Database) ProfileRepository {
	return &profilePgRepository{db: database}
}

func (r *profilePgRepository) Create(profile *entities.Profile) error {
	return r.db.GetDB().Create(profile).Error
}

func (r *profilePgRepository) GetByID(id string) (*entities.Profile, error) {
	var profile entities.Profile
	err := r.db.GetDB().Where("id = ?", id).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profilePgRepository) GetByEmail(email string) (*entities.Profile, error) {
	var profile entities.Profile
	err := r.db.GetDB().Where("LOWER(email) = LOWER(?)", email).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetAll lists profiles, newest first. An empty role lists everyone.
func (r *profilePgRepository) GetAll(role string) ([]entities.Profile, error) {
	var profiles []entities.Profile
	query := r.db.GetDB().Order("created_at DESC")
	if role != "" {
		query = query.Where("role = ?", role)
	}
	err := query.Find(&profiles).Error
	return profiles, err
}

func (r *profilePgRepository) GetClientSummaries() ([]ClientSummary, error) {
	clients, err := r.GetAll(entities.RoleClient)
	if err != nil {
		return nil, err
	}

	var counts []struct {
		UserID string
		Total  int64
	}
	err = r.db.GetDB().Model(&entities.ClientService{}).
		Select("user_id, COUNT(*) AS total").
		Group("user_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	byUser := make(map[string]int64, len(counts))
	for _, c := range counts {
		byUser[c.UserID] = c.Total
	}

	summaries := make([]ClientSummary, 0, len(clients))
	for _, p := range clients {
		summaries = append(summaries, ClientSummary{Profile: p, ServiceCount: byUser[p.ID]})
	}
	return summaries, nil
}

func (r *profilePgRepository) Update(profile *entities.Profile) error {
	return r.db.GetDB().Save(profile).Error
}

func (r *profilePgRepository) Delete(id string) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.Profile{}).Error
}
