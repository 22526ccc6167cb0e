package container

import (
	"context"
	"log"
	"os"

	"github.com/rkive-app/rkive-api/internal/assistant"
	"github.com/rkive-app/rkive-api/internal/auth"
	"github.com/rkive-app/rkive-api/internal/config"
	"github.com/rkive-app/rkive-api/internal/content"
	"github.com/rkive-app/rkive-api/internal/progress"
	"github.com/rkive-app/rkive-api/internal/quiz"
	"github.com/rkive-app/rkive-api/internal/user"
)

type Container struct {
	UserContainer      *user.UserContainer
	ContentContainer   *content.ContentContainer
	ProgressContainer  *progress.ProgressContainer
	QuizContainer      *quiz.QuizContainer
	AssistantContainer *assistant.AssistantContainer
}

func New() *Container {
	config.Init()
	auth.Init()
	config.InitCrypto()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if err := config.DB.AutoMigrate(
		&user.User{},
		&content.Content{},
		&progress.Completion{},
		&progress.Activity{},
		&quiz.Quiz{},
		&quiz.Question{},
		&quiz.Run{},
		&quiz.Attempt{},
		&assistant.Message{},
	); err != nil {
		log.Fatalf("failed to migrate DB: %v", err)
	}

	userContainer := user.NewUserContainer(config.DB)
	contentContainer := content.NewContentContainer(config.DB, userContainer.Repo)
	progressContainer := progress.NewProgressContainer(config.DB, contentContainer, userContainer.Repo)
	quizContainer := quiz.NewQuizContainer(
		config.DB,
		userContainer.Repo,
		contentContainer.Service,
		progressContainer.Service,
	)
	assistantContainer := assistant.NewAssistantContainer(config.DB, userContainer.Repo)

	return &Container{
		UserContainer:      userContainer,
		ContentContainer:   contentContainer,
		ProgressContainer:  progressContainer,
		QuizContainer:      quizContainer,
		AssistantContainer: assistantContainer,
	}
}
