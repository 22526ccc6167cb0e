package content

import (
	"context"
	"errors"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rkive-app/rkive-api/internal/auth"
	"github.com/rkive-app/rkive-api/internal/config"
	"github.com/rkive-app/rkive-api/internal/permission"
	"github.com/rkive-app/rkive-api/internal/user"
)

var (
	ErrContentNotFound = errors.New("content not found")
	ErrForbidden       = errors.New("forbidden")
)

// posição de ordenação para itens sem ordem definida
const unorderedRank = 9999

var validate = validator.New()

type ContentService interface {
	ResolveTrail(ctx context.Context, u *user.User) (*Trail, error)
	ListVisible(ctx context.Context, u *user.User) ([]*Content, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Content, error)

	Create(ctx context.Context, dto CreateContentDTO) (*Content, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateContentDTO) (*Content, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]*Content, error)
}

type contentService struct {
	repo     ContentRepository
	userRepo user.UserRepository
}

func NewService(repo ContentRepository, userRepo user.UserRepository) ContentService {
	return &contentService{repo: repo, userRepo: userRepo}
}

// ResolveTrail filtra o catálogo pela visibilidade do usuário, ordena pela
// posição na trilha (sem ordem vai para o fim) e separa os obrigatórios.
func (s *contentService) ResolveTrail(ctx context.Context, u *user.User) (*Trail, error) {
	log := config.WithContext(ctx)

	all, err := s.repo.List()
	if err != nil {
		log.WithError(err).Error("Erro ao listar conteúdos para a trilha")
		return nil, err
	}

	var items []*Content
	for _, c := range all {
		if c.IsVisibleTo(u) {
			items = append(items, c)
		}
	}

	rank := func(c *Content) int {
		if c.Order == nil {
			return unorderedRank
		}
		return *c.Order
	}
	sort.SliceStable(items, func(i, j int) bool {
		return rank(items[i]) < rank(items[j])
	})

	var required []*Content
	for _, c := range items {
		if c.Required {
			required = append(required, c)
		}
	}

	return &Trail{
		Items:         items,
		RequiredItems: required,
		RequiredCount: len(required),
	}, nil
}

func (s *contentService) ListVisible(ctx context.Context, u *user.User) ([]*Content, error) {
	trail, err := s.ResolveTrail(ctx, u)
	if err != nil {
		return nil, err
	}
	return trail.Items, nil
}

func (s *contentService) GetByID(ctx context.Context, id uuid.UUID) (*Content, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrContentNotFound
	}
	return c, nil
}

func (s *contentService) requireManager(ctx context.Context) error {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return ErrForbidden
	}
	actor, err := s.userRepo.FindByID(uuid.MustParse(claims.UserID))
	if err != nil {
		return err
	}
	if actor == nil || !actor.Can(permission.AdminContentsManage) {
		return ErrForbidden
	}
	return nil
}

func (s *contentService) Create(ctx context.Context, dto CreateContentDTO) (*Content, error) {
	log := config.WithContext(ctx)

	if err := s.requireManager(ctx); err != nil {
		return nil, err
	}
	if err := validate.Struct(dto); err != nil {
		return nil, err
	}

	c := dto.toEntity()
	c.ID = uuid.New()

	if err := s.repo.Create(c); err != nil {
		log.WithError(err).Error("Erro ao criar conteúdo")
		return nil, err
	}

	log.WithField("content_id", c.ID).Info("Conteúdo criado")
	return c, nil
}

func (s *contentService) Update(ctx context.Context, id uuid.UUID, dto UpdateContentDTO) (*Content, error) {
	log := config.WithContext(ctx)

	if err := s.requireManager(ctx); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrContentNotFound
	}

	dto.apply(c)

	if err := s.repo.Update(c); err != nil {
		log.WithError(err).Error("Erro ao atualizar conteúdo")
		return nil, err
	}

	log.WithField("content_id", c.ID).Info("Conteúdo atualizado")
	return c, nil
}

func (s *contentService) Delete(ctx context.Context, id uuid.UUID) error {
	log := config.WithContext(ctx)

	if err := s.requireManager(ctx); err != nil {
		return err
	}

	c, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrContentNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		log.WithError(err).Error("Erro ao excluir conteúdo")
		return err
	}

	log.WithField("content_id", id).Info("Conteúdo excluído")
	return nil
}

func (s *contentService) ListAll(ctx context.Context) ([]*Content, error) {
	if err := s.requireManager(ctx); err != nil {
		return nil, err
	}
	return s.repo.List()
}
