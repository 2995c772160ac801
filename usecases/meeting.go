package usecases

import (
	"strings"
	"time"

	"sage-portal/entities"
	"sage-portal/repositories"
)

var meetingStatuses = []string{
	entities.MeetingPlanned,
	entities.MeetingConfirmed,
	entities.MeetingCancelled,
	entities.MeetingDone,
}

type MeetingRequest struct {
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	MeetingDate time.Time `json:"meeting_date"`
	Status      string    `json:"status"`
	Location    string    `json:"location"`
}

type MeetingUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	MeetingDate *time.Time `json:"meeting_date"`
	Status      *string    `json:"status"`
	Location    *string    `json:"location"`
}

type MeetingUseCase struct {
	meetings repositories.MeetingRepository
	profiles repositories.ProfileRepository
}

func NewMeetingUseCase(meetings repositories.MeetingRepository, profiles repositories.ProfileRepository) *MeetingUseCase {
	return &MeetingUseCase{meetings: meetings, profiles: profiles}
}

func (uc *MeetingUseCase) ClientMeetings(userID string) ([]entities.Meeting, error) {
	return uc.meetings.GetByUserID(userID)
}

// AllMeetings is the admin agenda, each meeting carrying its client.
func (uc *MeetingUseCase) AllMeetings() ([]entities.Meeting, error) {
	return uc.meetings.GetAll()
}

func (uc *MeetingUseCase) GetMeeting(id string) (*entities.Meeting, error) {
	meeting, err := uc.meetings.GetByID(id)
	if err != nil {
		return nil, notFound("meeting", err)
	}
	return meeting, nil
}

func (uc *MeetingUseCase) CreateMeeting(req MeetingRequest) (*entities.Meeting, error) {
	if req.UserID == "" {
		return nil, required("user_id")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, required("title")
	}
	if req.MeetingDate.IsZero() {
		return nil, required("meeting_date")
	}
	if req.Status == "" {
		req.Status = entities.MeetingPlanned
	}
	if err := checkStatus(req.Status, meetingStatuses); err != nil {
		return nil, err
	}
	if _, err := uc.profiles.GetByID(req.UserID); err != nil {
		return nil, notFound("client", err)
	}

	meeting := &entities.Meeting{
		UserID:      req.UserID,
		Title:       title,
		Description: req.Description,
		MeetingDate: req.MeetingDate,
		Status:      req.Status,
		Location:    req.Location,
	}
	if err := uc.meetings.Create(meeting); err != nil {
		return nil, err
	}
	return meeting, nil
}

func (uc *MeetingUseCase) UpdateMeeting(id string, upd MeetingUpdate) (*entities.Meeting, error) {
	existing, err := uc.GetMeeting(id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, required("title")
		}
		existing.Title = title
	}
	if upd.Status != nil {
		if err := checkStatus(*upd.Status, meetingStatuses); err != nil {
			return nil, err
		}
		existing.Status = *upd.Status
	}
	if upd.Description != nil {
		existing.Description = *upd.Description
	}
	if upd.MeetingDate != nil {
		existing.MeetingDate = *upd.MeetingDate
	}
	if upd.Location != nil {
		existing.Location = *upd.Location
	}

	if err := uc.meetings.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (uc *MeetingUseCase) DeleteMeeting(id string) error {
	if _, err := uc.GetMeeting(id); err != nil {
		return err
	}
	return uc.meetings.Delete(id)
}
