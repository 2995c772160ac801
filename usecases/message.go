package usecases

import (
	"fmt"
	"strings"

	"sage-portal/entities"
	"sage-portal/repositories"

	"go.uber.org/zap"
)

const EventMessage = "message"

// Notifier pushes realtime events to a connected user.
type Notifier interface {
	Notify(userID, eventType string, data interface{}) error
}

type MessageRequest struct {
	RecipientID     string  `json:"recipient_id"`
	Content         string  `json:"content"`
	ParentMessageID *string `json:"parent_message_id"`
}

type MessageUseCase struct {
	messages repositories.MessageRepository
	profiles repositories.ProfileRepository
	notifier Notifier
	log      *zap.Logger
}

// NewMessageUseCase wires messaging. notifier may be nil.
func NewMessageUseCase(messages repositories.MessageRepository, profiles repositories.ProfileRepository, notifier Notifier, log *zap.Logger) *MessageUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &MessageUseCase{
		messages: messages,
		profiles: profiles,
		notifier: notifier,
		log:      log,
	}
}

// UserMessages returns everything the user sent or received, newest first.
func (uc *MessageUseCase) UserMessages(userID string) ([]entities.Message, error) {
	return uc.messages.GetByUserID(userID)
}

// Conversation returns the exchange between two users, oldest first.
func (uc *MessageUseCase) Conversation(userID, otherUserID string) ([]entities.Message, error) {
	if otherUserID == "" {
		return nil, required("user_id")
	}
	return uc.messages.GetConversation(userID, otherUserID)
}

// SendMessage stores the message and notifies the recipient if connected.
func (uc *MessageUseCase) SendMessage(senderID string, req MessageRequest) (*entities.Message, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, required("content")
	}
	if req.RecipientID == "" {
		return nil, required("recipient_id")
	}
	if req.RecipientID == senderID {
		return nil, invalid("cannot send a message to yourself")
	}
	if _, err := uc.profiles.GetByID(req.RecipientID); err != nil {
		return nil, notFound("recipient", err)
	}
	if req.ParentMessageID != nil {
		if *req.ParentMessageID == "" {
			req.ParentMessageID = nil
		} else if _, err := uc.messages.GetByID(*req.ParentMessageID); err != nil {
			return nil, notFound("parent message", err)
		}
	}

	message := &entities.Message{
		SenderID:        senderID,
		RecipientID:     req.RecipientID,
		Content:         content,
		ParentMessageID: req.ParentMessageID,
	}
	if err := uc.messages.Create(message); err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		if err := uc.notifier.Notify(message.RecipientID, EventMessage, message); err != nil {
			uc.log.Debug("recipient not notified", zap.String("recipient_id", message.RecipientID), zap.Error(err))
		}
	}
	return message, nil
}

// MarkAsRead marks a message read. Only its recipient may do so.
func (uc *MessageUseCase) MarkAsRead(id, userID string) error {
	message, err := uc.messages.GetByID(id)
	if err != nil {
		return notFound("message", err)
	}
	if message.RecipientID != userID {
		return fmt.Errorf("%w: message %s", ErrForbidden, id)
	}
	return uc.messages.MarkAsRead(id)
}
