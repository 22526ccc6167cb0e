package assistant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Append(m *Message) error
	ListByUser(userID uuid.UUID) ([]*Message, error)
	DeleteByUser(userID uuid.UUID) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Append(m *Message) error {
	return r.db.Create(m).Error
}

func (r *messageRepository) ListByUser(userID uuid.UUID) ([]*Message, error) {
	var messages []*Message
	if err := r.db.
		Where("user_id = ?", userID).
		Order("at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) DeleteByUser(userID uuid.UUID) error {
	return r.db.Delete(&Message{}, "user_id = ?", userID).Error
}
