package progress

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	MarkCompleted(c *Completion) (bool, error)
	ListCompletions(userID uuid.UUID) ([]*Completion, error)
	PushActivity(a *Activity) error
	RecentActivity(userID uuid.UUID, limit int) ([]*Activity, error)
}

type progressRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

// MarkCompleted insere a conclusão e informa se a linha é nova.
// Idempotente: a primeira conclusão prevalece.
func (r *progressRepository) MarkCompleted(c *Completion) (bool, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "content_id"}},
		DoNothing: true,
	}).Create(c)
	return tx.RowsAffected > 0, tx.Error
}

func (r *progressRepository) ListCompletions(userID uuid.UUID) ([]*Completion, error) {
	var completions []*Completion
	if err := r.db.Where("user_id = ?", userID).Find(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}

func (r *progressRepository) PushActivity(a *Activity) error {
	return r.db.Create(a).Error
}

func (r *progressRepository) RecentActivity(userID uuid.UUID, limit int) ([]*Activity, error) {
	var activities []*Activity
	if err := r.db.
		Where("user_id = ?", userID).
		Order("at DESC").
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}
