package assistant

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleMe  = "me"
	RoleBot = "bot"
)

// Message é uma entrada no histórico de conversa de um usuário com o
// assistente. O histórico é individual e persistido na íntegra.
type Message struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Role   string    `gorm:"type:text;not null" json:"role"`
	Text   string    `gorm:"type:text;not null" json:"text"`
	At     time.Time `gorm:"not null" json:"at"`
}

type Reply struct {
	Reply    string    `json:"reply"`
	Provider string    `json:"provider"`
	At       time.Time `json:"at"`
}
