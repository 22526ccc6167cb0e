package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Recurrence controla a cadência das provas periódicas: um novo ciclo abre a
// cada IntervalDays e cada ciclo fica aberto por DueDays.
type Recurrence struct {
	IntervalDays int `json:"intervalDays"`
	DueDays      int `json:"dueDays"`
}

const (
	defaultIntervalDays = 15
	defaultDueDays      = 7
)

type Quiz struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description,omitempty"`
	Kind        QuizKind  `gorm:"type:text;not null" json:"kind"`

	// filtros de atribuição: setor vazio e lista de cargos vazia liberam todos
	Sector    string                      `json:"sector,omitempty"`
	Positions datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"positions"`

	MinScore int `json:"minScore"`

	// somente para kind=periodic
	Recurrence      Recurrence                     `gorm:"embedded;embeddedPrefix:recurrence_" json:"recurrence"`
	AssignedUserIDs datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb" json:"assignedUserIds"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Questions []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (q *Quiz) intervalDays() int {
	if q.Recurrence.IntervalDays > 0 {
		return q.Recurrence.IntervalDays
	}
	return defaultIntervalDays
}

func (q *Quiz) dueDays() int {
	if q.Recurrence.DueDays > 0 {
		return q.Recurrence.DueDays
	}
	return defaultDueDays
}

// EffectiveMinScore cai para a pontuação máxima quando o mínimo não foi
// configurado, exigindo acerto total.
func (q *Quiz) EffectiveMinScore() int {
	if q.MinScore > 0 {
		return q.MinScore
	}
	return len(q.Questions)
}

type Question struct {
	ID           uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuizID       uuid.UUID                   `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Prompt       string                      `gorm:"type:text;not null" json:"prompt"`
	Options      datatypes.JSONSlice[string] `gorm:"type:jsonb;not null" json:"options"`
	CorrectIndex int                         `gorm:"not null" json:"correctIndex"`
	OrderIndex   int                         `gorm:"not null" json:"order_index"`
	CreatedAt    time.Time                   `gorm:"autoCreateTime" json:"created_at"`
}

// Run é uma instância materializada de um ciclo de prova periódica para um
// usuário. Pertence exclusivamente ao registro daquele par usuário+prova.
type Run struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"runId"`
	QuizID    uuid.UUID `gorm:"type:uuid;not null;index:idx_runs_user_quiz" json:"quiz_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_runs_user_quiz" json:"user_id"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	DueAt     time.Time `gorm:"not null" json:"dueAt"`
	Status    RunStatus `gorm:"type:text;not null" json:"status"`
}

// Attempt é imutável após o registro.
type Attempt struct {
	ID          uuid.UUID                          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID                          `gorm:"type:uuid;not null;index" json:"userId"`
	QuizID      uuid.UUID                          `gorm:"type:uuid;not null;index" json:"quizId"`
	QuizTitle   string                             `gorm:"not null" json:"quizTitle"`
	Kind        QuizKind                           `gorm:"type:text;not null" json:"kind"`
	RunID       *uuid.UUID                         `gorm:"type:uuid" json:"runId,omitempty"`
	StartedAt   time.Time                          `json:"startedAt"`
	FinishedAt  time.Time                          `gorm:"not null" json:"finishedAt"`
	DurationSec float64                            `json:"durationSec"`
	Score       int                                `gorm:"not null" json:"score"`
	MaxScore    int                                `gorm:"not null" json:"maxScore"`
	MinScore    int                                `gorm:"not null" json:"minScore"`
	Status      AttemptStatus                      `gorm:"type:text;not null" json:"status"`
	Answers     datatypes.JSONType[map[string]int] `gorm:"type:jsonb" json:"answers"`
}
