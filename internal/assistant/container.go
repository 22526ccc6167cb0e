package assistant

import (
	"github.com/rkive-app/rkive-api/internal/user"
	"gorm.io/gorm"
)

type AssistantContainer struct {
	Repo    MessageRepository
	Service AssistantService
	Handler *Handler
}

func NewAssistantContainer(db *gorm.DB, userRepo user.UserRepository) *AssistantContainer {
	repo := NewRepository(db)
	service := NewService(repo, NewMockProvider(), userRepo)
	handler := NewHandler(service)

	return &AssistantContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
