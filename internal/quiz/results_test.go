package quiz_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rkive-app/rkive-api/internal/auth"
	"github.com/rkive-app/rkive-api/internal/permission"
	"github.com/rkive-app/rkive-api/internal/quiz"
	"github.com/rkive-app/rkive-api/internal/user"
	"gorm.io/datatypes"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (f *fakeUserRepo) Create(u *user.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) FindByID(id uuid.UUID) (*user.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) FindByEmail(email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) FindAll() ([]*user.User, error) {
	var all []*user.User
	for _, u := range f.users {
		all = append(all, u)
	}
	return all, nil
}
func (f *fakeUserRepo) FindAllActive() ([]*user.User, error) {
	var active []*user.User
	for _, u := range f.users {
		if u.Active {
			active = append(active, u)
		}
	}
	return active, nil
}
func (f *fakeUserRepo) Update(u *user.User) error { f.users[u.ID] = u; return nil }

type fakeAttemptRepo struct {
	attempts []*quiz.Attempt
}

func (f *fakeAttemptRepo) Append(a *quiz.Attempt) error {
	f.attempts = append(f.attempts, a)
	return nil
}
func (f *fakeAttemptRepo) ListByUser(userID uuid.UUID) ([]*quiz.Attempt, error) {
	var out []*quiz.Attempt
	for _, a := range f.attempts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (f *fakeAttemptRepo) ListAll() ([]*quiz.Attempt, error) { return f.attempts, nil }

func ctxFor(u *user.User) context.Context {
	return auth.ContextWithClaims(context.Background(), &auth.UserClaims{
		UserID: u.ID.String(),
		Role:   string(u.Role),
	})
}

func TestBuildTeamResultsView(t *testing.T) {
	admin := &user.User{ID: uuid.New(), Name: "Alice Admin", Role: permission.RoleAdmin, Active: true}
	supervisor := &user.User{
		ID:     uuid.New(),
		Name:   "Sofia Supervisora",
		Role:   permission.RoleSupervisor,
		Sector: "CS",
		Active: true,
		TeamScope: datatypes.NewJSONType(user.TeamScope{
			Sector: "CS",
		}),
	}
	inSector := &user.User{ID: uuid.New(), Name: "Carlos CS", Role: permission.RoleColaborador, Sector: "CS", Active: true}
	outSector := &user.User{ID: uuid.New(), Name: "Fernanda Financeiro", Role: permission.RoleColaborador, Sector: "Financeiro", Active: true}
	collaborator := &user.User{ID: uuid.New(), Name: "Caio Colaborador", Role: permission.RoleColaborador, Sector: "CS", Active: true}

	userRepo := &fakeUserRepo{users: map[uuid.UUID]*user.User{
		admin.ID:        admin,
		supervisor.ID:   supervisor,
		inSector.ID:     inSector,
		outSector.ID:    outSector,
		collaborator.ID: collaborator,
	}}

	base := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	attemptRepo := &fakeAttemptRepo{attempts: []*quiz.Attempt{
		{ID: uuid.New(), UserID: inSector.ID, QuizTitle: "Prova A", FinishedAt: base, Score: 2, MaxScore: 3, Status: quiz.AttemptStatusApto},
		{ID: uuid.New(), UserID: outSector.ID, QuizTitle: "Prova B", FinishedAt: base.Add(time.Hour), Score: 1, MaxScore: 3, Status: quiz.AttemptStatusNaoApto},
	}}

	service := quiz.NewService(nil, nil, nil, attemptRepo, userRepo, nil, nil)

	t.Run("AdminEnxergaTodos", func(t *testing.T) {
		view, err := service.BuildTeamResultsView(ctxFor(admin))
		if err != nil {
			t.Fatalf("BuildTeamResultsView falhou: %v", err)
		}
		if view.Title != "Resultados (todos)" {
			t.Errorf("Título incorreto: %q", view.Title)
		}
		if len(view.Rows) != 2 {
			t.Fatalf("Admin deveria ver 2 tentativas, viu %d", len(view.Rows))
		}
		if !view.Rows[0].FinishedAt.After(view.Rows[1].FinishedAt) {
			t.Error("Linhas deveriam vir da mais recente para a mais antiga.")
		}
	})

	t.Run("SupervisorEnxergaSomenteOEscopo", func(t *testing.T) {
		view, err := service.BuildTeamResultsView(ctxFor(supervisor))
		if err != nil {
			t.Fatalf("BuildTeamResultsView falhou: %v", err)
		}
		if view.Title != "Resultados (escopo do time)" {
			t.Errorf("Título incorreto: %q", view.Title)
		}
		if len(view.Rows) != 1 {
			t.Fatalf("Supervisor deveria ver 1 tentativa, viu %d", len(view.Rows))
		}
		if view.Rows[0].UserName != inSector.Name {
			t.Errorf("Tentativa de fora do escopo apareceu: %q", view.Rows[0].UserName)
		}
	})

	t.Run("EscopoVazioEquivaleATodos", func(t *testing.T) {
		wide := &user.User{ID: uuid.New(), Name: "Sem Escopo", Role: permission.RoleSupervisor, Active: true}
		userRepo.users[wide.ID] = wide

		view, err := service.BuildTeamResultsView(ctxFor(wide))
		if err != nil {
			t.Fatalf("BuildTeamResultsView falhou: %v", err)
		}
		if len(view.Rows) != 2 {
			t.Errorf("Escopo vazio deveria equivaler a todos os ativos, viu %d linhas", len(view.Rows))
		}
	})

	t.Run("ColaboradorNaoTemAcesso", func(t *testing.T) {
		_, err := service.BuildTeamResultsView(ctxFor(collaborator))
		if !errors.Is(err, quiz.ErrForbidden) {
			t.Errorf("Esperava ErrForbidden, recebi %v", err)
		}
	})
}

func TestBuildTeamResultsViewEscopoComposto(t *testing.T) {
	matching := &user.User{ID: uuid.New(), Name: "Ana Analista", Role: permission.RoleColaborador, Sector: "CS", Position: "Analista", Active: true}
	sectorOnly := &user.User{ID: uuid.New(), Name: "Diego Dev", Role: permission.RoleColaborador, Sector: "CS", Position: "Dev", Active: true}
	listed := &user.User{ID: uuid.New(), Name: "Fábio Financeiro", Role: permission.RoleColaborador, Sector: "Financeiro", Position: "Assistente", Active: true}
	supervisor := &user.User{
		ID:     uuid.New(),
		Name:   "Sofia Supervisora",
		Role:   permission.RoleSupervisor,
		Active: true,
		TeamScope: datatypes.NewJSONType(user.TeamScope{
			Sector:   "CS",
			Position: "Analista",
			UserIDs:  []uuid.UUID{listed.ID},
		}),
	}

	userRepo := &fakeUserRepo{users: map[uuid.UUID]*user.User{
		matching.ID:   matching,
		sectorOnly.ID: sectorOnly,
		listed.ID:     listed,
		supervisor.ID: supervisor,
	}}

	base := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	attemptRepo := &fakeAttemptRepo{attempts: []*quiz.Attempt{
		{ID: uuid.New(), UserID: matching.ID, QuizTitle: "Prova A", FinishedAt: base, Status: quiz.AttemptStatusApto},
		{ID: uuid.New(), UserID: sectorOnly.ID, QuizTitle: "Prova B", FinishedAt: base.Add(time.Hour), Status: quiz.AttemptStatusApto},
		{ID: uuid.New(), UserID: listed.ID, QuizTitle: "Prova C", FinishedAt: base.Add(2 * time.Hour), Status: quiz.AttemptStatusNaoApto},
	}}

	service := quiz.NewService(nil, nil, nil, attemptRepo, userRepo, nil, nil)

	view, err := service.BuildTeamResultsView(ctxFor(supervisor))
	if err != nil {
		t.Fatalf("BuildTeamResultsView falhou: %v", err)
	}

	if len(view.Rows) != 2 {
		t.Fatalf("Setor e cargo combinam com E: esperava 2 linhas (filtros + lista), recebi %d", len(view.Rows))
	}
	for _, row := range view.Rows {
		if row.UserName == sectorOnly.Name {
			t.Errorf("Usuário que casa só no setor não deveria entrar no escopo setor+cargo.")
		}
	}
	if view.Rows[0].UserName != listed.Name || view.Rows[1].UserName != matching.Name {
		t.Errorf("Linhas incorretas ou fora de ordem: %+v", view.Rows)
	}
}
