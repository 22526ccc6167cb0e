package progress

import (
	"time"

	"github.com/google/uuid"
)

// Completion registra a conclusão de um conteúdo por um usuário. O par
// usuário+conteúdo é único; marcar de novo não altera o registro original.
type Completion struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_content" json:"user_id"`
	ContentID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_content" json:"content_id"`
	CompletedAt time.Time `gorm:"not null" json:"completedAt"`
}

// Activity é o feed de atividade recente exibido no dashboard.
type Activity struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Kind   string    `gorm:"not null" json:"kind"`
	Title  string    `gorm:"not null" json:"title"`
	At     time.Time `gorm:"not null" json:"at"`
}
