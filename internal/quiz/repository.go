package quiz

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(q *Quiz) error
	GetByID(id uuid.UUID) (*Quiz, error)
	List() ([]*Quiz, error)
	Delete(id uuid.UUID) error
}

type AttemptRepository interface {
	Append(a *Attempt) error
	ListByUser(userID uuid.UUID) ([]*Attempt, error)
	ListAll() ([]*Attempt, error)
}

type RunRepository interface {
	ListByUser(userID uuid.UUID) ([]*Run, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(q *Quiz) error {
	return r.db.Create(q).Error
}

func (r *quizRepository) GetByID(id uuid.UUID) (*Quiz, error) {
	var q Quiz
	if err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *quizRepository) List() ([]*Quiz, error) {
	var quizzes []*Quiz
	if err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).Order("created_at ASC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Quiz{}, "id = ?", id).Error
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Append(a *Attempt) error {
	return r.db.Create(a).Error
}

func (r *attemptRepository) ListByUser(userID uuid.UUID) ([]*Attempt, error) {
	var attempts []*Attempt
	if err := r.db.
		Where("user_id = ?", userID).
		Order("finished_at ASC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepository) ListAll() ([]*Attempt, error) {
	var attempts []*Attempt
	if err := r.db.Order("finished_at DESC").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

type runRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) RunRepository {
	return &runRepository{db: db}
}

// ListByUser devolve o registro de runs em ordem de criação; a ordem importa
// para o cálculo do próximo ciclo.
func (r *runRepository) ListByUser(userID uuid.UUID) ([]*Run, error) {
	var runs []*Run
	if err := r.db.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
