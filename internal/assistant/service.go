package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rkive-app/rkive-api/internal/auth"
	"github.com/rkive-app/rkive-api/internal/config"
	"github.com/rkive-app/rkive-api/internal/user"
)

var ErrForbidden = errors.New("forbidden")

type AssistantService interface {
	SendMessage(ctx context.Context, text string) ([]*Message, error)
	History(ctx context.Context) ([]*Message, error)
	Clear(ctx context.Context) error
}

type assistantService struct {
	repo     MessageRepository
	provider Provider
	userRepo user.UserRepository
}

func NewService(repo MessageRepository, provider Provider, userRepo user.UserRepository) AssistantService {
	return &assistantService{repo: repo, provider: provider, userRepo: userRepo}
}

func (s *assistantService) currentUser(ctx context.Context) (*user.User, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, ErrForbidden
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrForbidden
	}
	u, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.Active {
		return nil, ErrForbidden
	}
	return u, nil
}

// SendMessage grava a mensagem do usuário, consulta o provedor e grava a
// resposta. Devolve as duas mensagens na ordem em que entraram no histórico.
func (s *assistantService) SendMessage(ctx context.Context, text string) ([]*Message, error) {
	log := config.WithContext(ctx)

	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	mine := &Message{
		ID:     uuid.New(),
		UserID: u.ID,
		Role:   RoleMe,
		Text:   text,
		At:     time.Now(),
	}
	if err := s.repo.Append(mine); err != nil {
		log.WithError(err).Error("Erro ao gravar mensagem do usuário")
		return nil, err
	}

	reply, err := s.provider.SendMessage(ctx, u, text)
	if err != nil {
		log.WithError(err).Error("Falha ao contatar o assistente")
		return nil, err
	}

	bot := &Message{
		ID:     uuid.New(),
		UserID: u.ID,
		Role:   RoleBot,
		Text:   reply.Reply,
		At:     reply.At,
	}
	if err := s.repo.Append(bot); err != nil {
		log.WithError(err).Error("Erro ao gravar resposta do assistente")
		return nil, err
	}

	return []*Message{mine, bot}, nil
}

func (s *assistantService) History(ctx context.Context) ([]*Message, error) {
	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUser(u.ID)
}

func (s *assistantService) Clear(ctx context.Context) error {
	log := config.WithContext(ctx)

	u, err := s.currentUser(ctx)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteByUser(u.ID); err != nil {
		log.WithError(err).Error("Erro ao limpar histórico do assistente")
		return err
	}

	log.Info("Histórico do assistente limpo")
	return nil
}
