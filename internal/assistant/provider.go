package assistant

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/rkive-app/rkive-api/internal/user"
)

// Provider é o ponto de integração com o backend do assistente. A
// implementação atual é um mock com respostas prontas; trocar por um cliente
// real exige apenas outra implementação desta interface.
type Provider interface {
	SendMessage(ctx context.Context, u *user.User, message string) (*Reply, error)
}

type mockProvider struct{}

func NewMockProvider() Provider {
	return &mockProvider{}
}

var mockBases = []string{
	"Entendi. Posso ajudar com o seu onboarding e dúvidas sobre processos internos.",
	"Se você quiser, posso resumir o próximo conteúdo obrigatório e sugerir uma ordem de estudo.",
	"Posso ajudar a localizar conteúdos na Biblioteca e indicar links úteis.",
}

func (p *mockProvider) SendMessage(ctx context.Context, u *user.User, message string) (*Reply, error) {
	lower := strings.ToLower(message)

	var hint string
	switch {
	case strings.Contains(lower, "prova"):
		hint = "Dica: revise os conteúdos obrigatórios antes de iniciar a avaliação."
	case strings.Contains(lower, "onboarding"):
		hint = "Posso sugerir quais itens concluir primeiro com base no seu cargo."
	default:
		hint = "Me diga o que você precisa, em uma frase."
	}

	base := mockBases[rand.Intn(len(mockBases))]

	return &Reply{
		Reply:    base + " " + hint,
		Provider: "mock",
		At:       time.Now(),
	}, nil
}
