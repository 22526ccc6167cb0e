package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rkive-app/rkive-api/internal/config"
	"github.com/rkive-app/rkive-api/internal/content"
)

// feed de atividade exibido no dashboard
const recentActivityLimit = 30

const ActivityKindContent = "Conteúdo concluído"
const ActivityKindQuiz = "Avaliação"

type ProgressService interface {
	MarkCompleted(ctx context.Context, userID, contentID uuid.UUID) error
	CompletedMap(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]time.Time, error)
	RecentActivity(ctx context.Context, userID uuid.UUID) ([]*Activity, error)
	PushActivity(ctx context.Context, userID uuid.UUID, kind, title string, at time.Time) error
}

type progressService struct {
	repo        ProgressRepository
	contentRepo content.ContentRepository
}

func NewService(repo ProgressRepository, contentRepo content.ContentRepository) ProgressService {
	return &progressService{repo: repo, contentRepo: contentRepo}
}

func (s *progressService) MarkCompleted(ctx context.Context, userID, contentID uuid.UUID) error {
	log := config.WithContext(ctx)

	c, err := s.contentRepo.GetByID(contentID)
	if err != nil {
		return err
	}
	if c == nil {
		return content.ErrContentNotFound
	}

	completedAt := time.Now()
	inserted, err := s.repo.MarkCompleted(&Completion{
		ID:          uuid.New(),
		UserID:      userID,
		ContentID:   contentID,
		CompletedAt: completedAt,
	})
	if err != nil {
		log.WithError(err).Error("Erro ao marcar conteúdo como concluído")
		return err
	}
	if !inserted {
		// já estava concluído; nada a registrar no feed
		return nil
	}

	if err := s.PushActivity(ctx, userID, ActivityKindContent, c.Title, completedAt); err != nil {
		log.WithError(err).Warn("Erro ao registrar atividade de conclusão")
	}

	log.WithField("content_id", contentID).Info("Conteúdo concluído")
	return nil
}

func (s *progressService) CompletedMap(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]time.Time, error) {
	completions, err := s.repo.ListCompletions(userID)
	if err != nil {
		return nil, err
	}

	completed := make(map[uuid.UUID]time.Time, len(completions))
	for _, c := range completions {
		completed[c.ContentID] = c.CompletedAt
	}
	return completed, nil
}

func (s *progressService) RecentActivity(ctx context.Context, userID uuid.UUID) ([]*Activity, error) {
	return s.repo.RecentActivity(userID, recentActivityLimit)
}

func (s *progressService) PushActivity(ctx context.Context, userID uuid.UUID, kind, title string, at time.Time) error {
	return s.repo.PushActivity(&Activity{
		ID:     uuid.New(),
		UserID: userID,
		Kind:   kind,
		Title:  title,
		At:     at,
	})
}
