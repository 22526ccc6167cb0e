package quiz

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rkive-app/rkive-api/internal/auth"
	"github.com/rkive-app/rkive-api/internal/config"
	"github.com/rkive-app/rkive-api/internal/content"
	"github.com/rkive-app/rkive-api/internal/permission"
	"github.com/rkive-app/rkive-api/internal/progress"
	"github.com/rkive-app/rkive-api/internal/user"
	util "github.com/rkive-app/rkive-api/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidKind     = errors.New("invalid quiz kind")
	ErrInvalidQuestion = errors.New("invalid question")
)

// limite de linhas exibidas na visão de resultados
const resultsRowLimit = 200

var validate = validator.New()

type QuizService interface {
	GetPendingQuizzes(ctx context.Context) ([]PendingEntry, error)
	CanTakeFinalQuiz(ctx context.Context) (bool, error)
	RecordAttempt(ctx context.Context, quizID uuid.UUID, dto SubmitAttemptDTO) (*Attempt, error)
	ListMyAttempts(ctx context.Context) ([]*Attempt, error)

	BuildTeamResultsView(ctx context.Context) (*ResultsView, error)
	ExportResultsCSV(ctx context.Context, w io.Writer) error

	Create(ctx context.Context, dto CreateQuizDTO) (*Quiz, error)
	List(ctx context.Context) ([]*Quiz, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Quiz, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type quizService struct {
	db          *gorm.DB
	repo        QuizRepository
	runRepo     RunRepository
	attemptRepo AttemptRepository
	userRepo    user.UserRepository
	contentSvc  content.ContentService
	progressSvc progress.ProgressService
}

func NewService(
	db *gorm.DB,
	repo QuizRepository,
	runRepo RunRepository,
	attemptRepo AttemptRepository,
	userRepo user.UserRepository,
	contentSvc content.ContentService,
	progressSvc progress.ProgressService,
) QuizService {
	return &quizService{
		db:          db,
		repo:        repo,
		runRepo:     runRepo,
		attemptRepo: attemptRepo,
		userRepo:    userRepo,
		contentSvc:  contentSvc,
		progressSvc: progressSvc,
	}
}

func (s *quizService) currentUser(ctx context.Context) (*user.User, error) {
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

// GetPendingQuizzes é o coração do motor de pendências. Tudo acontece sob um
// único instante: a consulta materializa ciclos vencidos, fecha ciclos
// resolvidos ou expirados e devolve o que resta acionável. As mudanças de
// estado são persistidas numa única transação antes da resposta, para que
// duas consultas seguidas enxerguem o mesmo mundo.
func (s *quizService) GetPendingQuizzes(ctx context.Context) ([]PendingEntry, error) {
	log := config.WithContext(ctx)

	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	quizzes, err := s.repo.List()
	if err != nil {
		log.WithError(err).Error("Erro ao listar avaliações")
		return nil, err
	}

	runs, err := s.runRepo.ListByUser(u.ID)
	if err != nil {
		return nil, err
	}
	attempts, err := s.attemptRepo.ListByUser(u.ID)
	if err != nil {
		return nil, err
	}

	runsByQuiz := make(map[uuid.UUID][]*Run)
	for _, r := range runs {
		runsByQuiz[r.QuizID] = append(runsByQuiz[r.QuizID], r)
	}

	finalReleased, err := s.finalReleased(ctx, u)
	if err != nil {
		return nil, err
	}

	var pending []PendingEntry
	var created []*Run
	var changed []*Run

	for _, q := range quizzes {
		if !IsAssigned(q, u) {
			continue
		}

		switch q.Kind {
		case QuizKindFinal:
			// uma tentativa, qualquer resultado, encerra a pendência do final
			if HasAttempt(attempts, q.ID) {
				continue
			}
			if finalReleased {
				pending = append(pending, FinalPendingEntry(q))
			}

		case QuizKindPeriodic:
			qRuns := runsByQuiz[q.ID]
			if run := EnsureRuns(q, u.ID, qRuns, now); run != nil {
				qRuns = append(qRuns, run)
				created = append(created, run)
			}
			entries, dirty := ReconcileRuns(q, qRuns, attempts, now)
			pending = append(pending, entries...)
			changed = append(changed, dirty...)
		}
	}

	if len(created) > 0 || len(changed) > 0 {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			for _, r := range created {
				if err := tx.Create(r).Error; err != nil {
					return err
				}
			}
			for _, r := range changed {
				if err := tx.Model(&Run{}).Where("id = ?", r.ID).
					Update("status", r.Status).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.WithError(err).Error("Erro ao persistir ciclos de avaliação")
			return nil, err
		}
		log.WithFields(map[string]interface{}{
			"runs_criados":  len(created),
			"runs_fechados": len(changed),
			"pendencias":    len(pending),
		}).Info("Ciclos de avaliação reconciliados")
	}

	return pending, nil
}

// finalReleased libera o questionário final apenas com a trilha obrigatória
// 100% concluída.
func (s *quizService) finalReleased(ctx context.Context, u *user.User) (bool, error) {
	trail, err := s.contentSvc.ResolveTrail(ctx, u)
	if err != nil {
		return false, err
	}
	completed, err := s.progressSvc.CompletedMap(ctx, u.ID)
	if err != nil {
		return false, err
	}
	return progress.PercentRequired(trail, completed) >= 100, nil
}

func (s *quizService) CanTakeFinalQuiz(ctx context.Context) (bool, error) {
	u, err := s.currentUser(ctx)
	if err != nil {
		return false, err
	}
	return s.finalReleased(ctx, u)
}

// RecordAttempt pontua e grava a tentativa. O run referenciado NÃO é fechado
// aqui: a transição open→done acontece na próxima reconciliação, mantendo um
// único caminho de escrita para o estado dos ciclos.
func (s *quizService) RecordAttempt(ctx context.Context, quizID uuid.UUID, dto SubmitAttemptDTO) (*Attempt, error) {
	log := config.WithContext(ctx)

	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if !u.Can(permission.QuizzesTake) {
		return nil, ErrForbidden
	}

	if err := validate.Struct(dto); err != nil {
		return nil, err
	}

	q, err := s.repo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	now := time.Now()
	startedAt := dto.StartedAt
	if startedAt.IsZero() {
		startedAt = now
	}

	score := Score(q.Questions, dto.Answers)
	maxScore := len(q.Questions)
	status := StatusFor(score, q.MinScore, maxScore)

	answers := make(map[string]int, len(dto.Answers))
	for qid, idx := range dto.Answers {
		answers[qid.String()] = idx
	}

	attempt := &Attempt{
		ID:          uuid.New(),
		UserID:      u.ID,
		QuizID:      q.ID,
		QuizTitle:   q.Title,
		Kind:        q.Kind,
		RunID:       dto.RunID,
		StartedAt:   startedAt,
		FinishedAt:  now,
		DurationSec: now.Sub(startedAt).Seconds(),
		Score:       score,
		MaxScore:    maxScore,
		MinScore:    q.EffectiveMinScore(),
		Status:      status,
		Answers:     datatypes.NewJSONType(answers),
	}

	if err := s.attemptRepo.Append(attempt); err != nil {
		log.WithError(err).Error("Erro ao registrar tentativa")
		return nil, err
	}

	title := fmt.Sprintf("%s (%s)", q.Title, status)
	if err := s.progressSvc.PushActivity(ctx, u.ID, progress.ActivityKindQuiz, title, now); err != nil {
		log.WithError(err).Warn("Erro ao registrar atividade da tentativa")
	}

	log.WithFields(map[string]interface{}{
		"quiz_id": q.ID,
		"score":   score,
		"status":  status,
	}).Info("Tentativa registrada")
	return attempt, nil
}

func (s *quizService) ListMyAttempts(ctx context.Context) ([]*Attempt, error) {
	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.attemptRepo.ListByUser(u.ID)
}

// BuildTeamResultsView monta a visão de resultados conforme o alcance do
// solicitante. Admin enxerga todos os usuários ativos; Supervisor enxerga a
// união da lista explícita do seu escopo com quem casa nos filtros de
// setor E cargo (filtro ausente casa com qualquer um). Um escopo totalmente
// vazio equivale a todos os ativos.
func (s *quizService) BuildTeamResultsView(ctx context.Context) (*ResultsView, error) {
	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if !u.Can(permission.QuizzesResultsView) {
		return nil, ErrForbidden
	}

	active, err := s.userRepo.FindAllActive()
	if err != nil {
		return nil, err
	}

	visible := make(map[uuid.UUID]*user.User)
	title := "Resultados (escopo do time)"

	if u.Role == permission.RoleAdmin {
		title = "Resultados (todos)"
		for _, a := range active {
			visible[a.ID] = a
		}
	} else {
		scope := u.TeamScope.Data()
		inList := make(map[uuid.UUID]bool, len(scope.UserIDs))
		for _, id := range scope.UserIDs {
			inList[id] = true
		}
		for _, a := range active {
			sectorOk := scope.Sector == "" || a.Sector == scope.Sector
			positionOk := scope.Position == "" || a.Position == scope.Position
			if inList[a.ID] || (sectorOk && positionOk) {
				visible[a.ID] = a
			}
		}
	}

	attempts, err := s.attemptRepo.ListAll()
	if err != nil {
		return nil, err
	}

	var rows []ResultRow
	for _, a := range attempts {
		owner, ok := visible[a.UserID]
		if !ok {
			continue
		}
		rows = append(rows, ResultRow{
			UserName:   owner.Name,
			QuizTitle:  a.QuizTitle,
			FinishedAt: a.FinishedAt,
			Score:      a.Score,
			MaxScore:   a.MaxScore,
			Status:     a.Status,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].FinishedAt.After(rows[j].FinishedAt)
	})
	if len(rows) > resultsRowLimit {
		rows = rows[:resultsRowLimit]
	}

	return &ResultsView{Title: title, Rows: rows}, nil
}

func (s *quizService) ExportResultsCSV(ctx context.Context, w io.Writer) error {
	view, err := s.BuildTeamResultsView(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Colaborador", "Avaliação", "Data", "Pontuação", "Status"}); err != nil {
		return err
	}
	for _, row := range view.Rows {
		record := []string{
			row.UserName,
			row.QuizTitle,
			util.FormatDateTimeBR(row.FinishedAt),
			fmt.Sprintf("%d/%d", row.Score, row.MaxScore),
			string(row.Status),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *quizService) Create(ctx context.Context, dto CreateQuizDTO) (*Quiz, error) {
	log := config.WithContext(ctx)

	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if !u.Can(permission.QuizzesCreate) {
		return nil, ErrForbidden
	}

	if err := validate.Struct(dto); err != nil {
		return nil, err
	}
	if !dto.Kind.IsValid() {
		return nil, ErrInvalidKind
	}
	for _, qd := range dto.Questions {
		if qd.CorrectIndex < 0 || qd.CorrectIndex >= len(qd.Options) {
			return nil, ErrInvalidQuestion
		}
	}

	q := &Quiz{
		ID:              uuid.New(),
		Title:           dto.Title,
		Description:     dto.Description,
		Kind:            dto.Kind,
		Sector:          dto.Sector,
		Positions:       datatypes.NewJSONSlice(dto.Positions),
		MinScore:        dto.MinScore,
		Recurrence:      dto.Recurrence,
		AssignedUserIDs: datatypes.NewJSONSlice(dto.AssignedUserIDs),
	}
	for i, qd := range dto.Questions {
		q.Questions = append(q.Questions, Question{
			ID:           uuid.New(),
			QuizID:       q.ID,
			Prompt:       qd.Prompt,
			Options:      datatypes.NewJSONSlice(qd.Options),
			CorrectIndex: qd.CorrectIndex,
			OrderIndex:   i,
		})
	}

	if err := s.repo.Create(q); err != nil {
		log.WithError(err).Error("Erro ao criar avaliação")
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"quiz_id": q.ID,
		"kind":    q.Kind,
	}).Info("Avaliação criada")
	return q, nil
}

func (s *quizService) requireManager(ctx context.Context) error {
	u, err := s.currentUser(ctx)
	if err != nil {
		return err
	}
	if !u.Can(permission.AdminQuizzesManage) {
		return ErrForbidden
	}
	return nil
}

func (s *quizService) List(ctx context.Context) ([]*Quiz, error) {
	if err := s.requireManager(ctx); err != nil {
		return nil, err
	}
	return s.repo.List()
}

func (s *quizService) GetByID(ctx context.Context, id uuid.UUID) (*Quiz, error) {
	if err := s.requireManager(ctx); err != nil {
		return nil, err
	}
	q, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}
	return q, nil
}

func (s *quizService) Delete(ctx context.Context, id uuid.UUID) error {
	log := config.WithContext(ctx)

	if err := s.requireManager(ctx); err != nil {
		return err
	}

	q, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if q == nil {
		return ErrQuizNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		log.WithError(err).Error("Erro ao excluir avaliação")
		return err
	}

	log.WithField("quiz_id", id).Info("Avaliação excluída")
	return nil
}
