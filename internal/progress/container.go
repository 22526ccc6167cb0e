package progress

import (
	"github.com/rkive-app/rkive-api/internal/content"
	"github.com/rkive-app/rkive-api/internal/user"
	"gorm.io/gorm"
)

type ProgressContainer struct {
	Repo    ProgressRepository
	Service ProgressService
	Handler *Handler
}

func NewProgressContainer(db *gorm.DB, contentContainer *content.ContentContainer, userRepo user.UserRepository) *ProgressContainer {
	repo := NewRepository(db)
	service := NewService(repo, contentContainer.Repo)
	handler := NewHandler(service, contentContainer.Service, userRepo)

	return &ProgressContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
