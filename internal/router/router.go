package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/rkive-app/rkive-api/internal/assistant"
	"github.com/rkive-app/rkive-api/internal/auth"
	"github.com/rkive-app/rkive-api/internal/content"
	"github.com/rkive-app/rkive-api/internal/middlewares"
	"github.com/rkive-app/rkive-api/internal/progress"
	"github.com/rkive-app/rkive-api/internal/quiz"
	"github.com/rkive-app/rkive-api/internal/user"
)

type RouterConfig struct {
	UserHandler      *user.Handler
	ContentHandler   *content.Handler
	ProgressHandler  *progress.Handler
	QuizHandler      *quiz.Handler
	AssistantHandler *assistant.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", cfg.UserHandler.Login)
		r.Post("/refresh", cfg.UserHandler.RefreshToken)
		r.Post("/logout", auth.NewHandler().Logout)
		r.Post("/password-reset", cfg.UserHandler.RequestPasswordReset)
		r.Post("/password-reset/confirm", cfg.UserHandler.ConfirmPasswordReset)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/contents", content.Routes(cfg.ContentHandler))
		r.Mount("/progress", progress.Routes(cfg.ProgressHandler))
		r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler))
		r.Mount("/assistant", assistant.Routes(cfg.AssistantHandler))
	})
	return r
}
