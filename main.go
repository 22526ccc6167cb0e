package main

import (
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/rkive-app/rkive-api/internal/container"
	"github.com/rkive-app/rkive-api/internal/router"
)

// @title rKive API
// @version 1.0
// @description API do portal de onboarding e treinamento rKive.
// @BasePath /
func main() {
	_ = godotenv.Load()

	c := container.New()

	r := router.New(router.RouterConfig{
		UserHandler:      c.UserContainer.Handler,
		ContentHandler:   c.ContentContainer.Handler,
		ProgressHandler:  c.ProgressContainer.Handler,
		QuizHandler:      c.QuizContainer.Handler,
		AssistantHandler: c.AssistantContainer.Handler,
	})

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		adapter := chiadapter.New(r)
		lambda.Start(adapter.ProxyWithContext)
		return
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logrus.Infof("Servidor HTTP escutando na porta %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logrus.WithError(err).Fatal("Erro no servidor HTTP")
	}
}
