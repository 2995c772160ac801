package repositories

import (
	"sage-portal/db"
	"sage-portal/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type messagePgRepository struct {
	db db.Database
}

func NewMessagePgRepository(database db.Database) MessageRepository {
	return &messagePgRepository{db: database}
}

func (r *messagePgRepository) withParties() *gorm.DB {
	return r.db.GetDB().Preload("Sender").Preload("Recipient")
}

func (r *messagePgRepository) Create(message *entities.Message) error {
	return r.db.GetDB().Omit(clause.Associations).Create(message).Error
}

func (r *messagePgRepository) GetByID(id string) (*entities.Message, error) {
	var message entities.Message
	err := r.withParties().Where("id = ?", id).First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// GetByUserID returns every message sent or received by the user, newest first.
func (r *messagePgRepository) GetByUserID(userID string) ([]entities.Message, error) {
	var messages []entities.Message
	err := r.withParties().
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

// GetConversation returns the exchange between two users in chronological order.
func (r *messagePgRepository) GetConversation(userID, otherUserID string) ([]entities.Message, error) {
	var messages []entities.Message
	err := r.withParties().
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, otherUserID, otherUserID, userID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *messagePgRepository) MarkAsRead(id string) error {
	result := r.db.GetDB().Model(&entities.Message{}).Where("id = ?", id).Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
