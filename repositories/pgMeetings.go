package repositories

import (
	"sage-portal/db"
	"sage-portal/entities"

	"gorm.io/gorm/clause"
)

type meetingPgRepository struct {
	db db.Database
}

func NewMeetingPgRepository(database db.Database) MeetingRepository {
	return &meetingPgRepository{db: database}
}

func (r *meetingPgRepository) Create(meeting *entities.Meeting) error {
	return r.db.GetDB().Omit(clause.Associations).Create(meeting).Error
}

func (r *meetingPgRepository) GetByID(id string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.GetDB().Preload("Client").Where("id = ?", id).First(&meeting).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// GetAll is the admin agenda: every meeting with its client, soonest first.
func (r *meetingPgRepository) GetAll() ([]entities.Meeting, error) {
	var meetings []entities.Meeting
	err := r.db.GetDB().Preload("Client").Order("meeting_date ASC").Find(&meetings).Error
	return meetings, err
}

func (r *meetingPgRepository) GetByUserID(userID string) ([]entities.Meeting, error) {
	var meetings []entities.Meeting
	err := r.db.GetDB().Where("user_id = ?", userID).Order("meeting_date ASC").Find(&meetings).Error
	return meetings, err
}

func (r *meetingPgRepository) Update(meeting *entities.Meeting) error {
	return r.db.GetDB().Omit(clause.Associations).Save(meeting).Error
}

func (r *meetingPgRepository) Delete(id string) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.Meeting{}).Error
}
