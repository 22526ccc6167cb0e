package quiz

import (
	"github.com/rkive-app/rkive-api/internal/content"
	"github.com/rkive-app/rkive-api/internal/progress"
	"github.com/rkive-app/rkive-api/internal/user"
	"gorm.io/gorm"
)

type QuizContainer struct {
	Repo        QuizRepository
	RunRepo     RunRepository
	AttemptRepo AttemptRepository
	Service     QuizService
	Handler     *Handler
}

func NewQuizContainer(
	db *gorm.DB,
	userRepo user.UserRepository,
	contentSvc content.ContentService,
	progressSvc progress.ProgressService,
) *QuizContainer {
	repo := NewRepository(db)
	runRepo := NewRunRepository(db)
	attemptRepo := NewAttemptRepository(db)
	service := NewService(db, repo, runRepo, attemptRepo, userRepo, contentSvc, progressSvc)
	handler := NewHandler(service)

	return &QuizContainer{
		Repo:        repo,
		RunRepo:     runRepo,
		AttemptRepo: attemptRepo,
		Service:     service,
		Handler:     handler,
	}
}
