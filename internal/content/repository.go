package content

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContentRepository interface {
	Create(c *Content) error
	GetByID(id uuid.UUID) (*Content, error)
	List() ([]*Content, error)
	Update(c *Content) error
	Delete(id uuid.UUID) error
}

type contentRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(c *Content) error {
	return r.db.Create(c).Error
}

func (r *contentRepository) GetByID(id uuid.UUID) (*Content, error) {
	var c Content
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *contentRepository) List() ([]*Content, error) {
	var contents []*Content
	if err := r.db.Find(&contents).Error; err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *contentRepository) Update(c *Content) error {
	return r.db.Save(c).Error
}

func (r *contentRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Content{}, "id = ?", id).Error
}
