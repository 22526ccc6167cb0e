package content

import (
	"github.com/rkive-app/rkive-api/internal/user"
	"gorm.io/gorm"
)

type ContentContainer struct {
	Repo    ContentRepository
	Service ContentService
	Handler *Handler
}

func NewContentContainer(db *gorm.DB, userRepo user.UserRepository) *ContentContainer {
	repo := NewRepository(db)
	service := NewService(repo, userRepo)
	handler := NewHandler(service, userRepo)

	return &ContentContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
