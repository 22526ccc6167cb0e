package quiz_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rkive-app/rkive-api/internal/quiz"
)

var t0 = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func newPeriodicQuiz(intervalDays, dueDays int) *quiz.Quiz {
	return &quiz.Quiz{
		ID:    uuid.New(),
		Title: "Prova de Segurança",
		Kind:  quiz.QuizKindPeriodic,
		Recurrence: quiz.Recurrence{
			IntervalDays: intervalDays,
			DueDays:      dueDays,
		},
		CreatedAt: t0,
	}
}

func TestEnsureRuns(t *testing.T) {
	userID := uuid.New()

	t.Run("PrimeiraConsultaCriaOCicloInicial", func(t *testing.T) {
		q := newPeriodicQuiz(15, 7)
		// sem run anterior o primeiro ciclo nasce já na primeira consulta
		now := t0.Add(time.Hour)

		run := quiz.EnsureRuns(q, userID, nil, now)
		if run == nil {
			t.Fatal("Esperava o ciclo inicial criado na primeira consulta, recebi nil.")
		}
		if run.Status != quiz.RunStatusOpen {
			t.Errorf("Status incorreto. Esperado: %s, Recebido: %s", quiz.RunStatusOpen, run.Status)
		}
		if !run.CreatedAt.Equal(now) {
			t.Errorf("CreatedAt incorreto. Esperado: %v, Recebido: %v", now, run.CreatedAt)
		}
		wantDue := now.Add(7 * 24 * time.Hour)
		if !run.DueAt.Equal(wantDue) {
			t.Errorf("DueAt incorreto. Esperado: %v, Recebido: %v", wantDue, run.DueAt)
		}
	})

	t.Run("MesmoInstanteNaoDuplica", func(t *testing.T) {
		q := newPeriodicQuiz(15, 7)
		now := t0.Add(16 * 24 * time.Hour)

		first := quiz.EnsureRuns(q, userID, nil, now)
		if first == nil {
			t.Fatal("Esperava o primeiro run, recebi nil.")
		}

		second := quiz.EnsureRuns(q, userID, []*quiz.Run{first}, now)
		if second != nil {
			t.Errorf("Consulta repetida no mesmo instante não deveria criar outro run, criou %v", second.ID)
		}
	})

	t.Run("CatchUpCriaUmRunPorConsulta", func(t *testing.T) {
		q := newPeriodicQuiz(15, 7)
		// mais de um intervalo se passou sem nenhuma consulta
		now := t0.Add(16 * 24 * time.Hour)

		first := quiz.EnsureRuns(q, userID, nil, now)
		if first == nil {
			t.Fatal("Esperava um run de catch-up, recebi nil.")
		}
		if !first.CreatedAt.Equal(now) || !first.DueAt.Equal(now.Add(7*24*time.Hour)) {
			t.Errorf("Run de catch-up com datas incorretas: %+v", first)
		}

		second := quiz.EnsureRuns(q, userID, []*quiz.Run{first}, now)
		if second != nil {
			t.Error("Catch-up deveria criar no máximo um run por consulta.")
		}
	})

	t.Run("ProximoCicloContaDoUltimoRun", func(t *testing.T) {
		q := newPeriodicQuiz(15, 7)
		lastCreated := t0.Add(20 * 24 * time.Hour)
		last := &quiz.Run{
			ID:        uuid.New(),
			QuizID:    q.ID,
			UserID:    userID,
			CreatedAt: lastCreated,
			DueAt:     lastCreated.Add(7 * 24 * time.Hour),
			Status:    quiz.RunStatusDone,
		}

		before := lastCreated.Add(14 * 24 * time.Hour)
		if run := quiz.EnsureRuns(q, userID, []*quiz.Run{last}, before); run != nil {
			t.Error("Run criado antes do intervalo contado a partir do último ciclo.")
		}

		after := lastCreated.Add(15 * 24 * time.Hour)
		if run := quiz.EnsureRuns(q, userID, []*quiz.Run{last}, after); run == nil {
			t.Error("Esperava run criado ao completar o intervalo desde o último ciclo.")
		}
	})

	t.Run("FinalNuncaCriaRun", func(t *testing.T) {
		q := newPeriodicQuiz(15, 7)
		q.Kind = quiz.QuizKindFinal
		now := t0.Add(100 * 24 * time.Hour)

		if run := quiz.EnsureRuns(q, userID, nil, now); run != nil {
			t.Error("Questionário final não deveria materializar ciclos.")
		}
	})
}

func TestReconcileRuns(t *testing.T) {
	userID := uuid.New()

	newRun := func(q *quiz.Quiz, createdAt time.Time, status quiz.RunStatus) *quiz.Run {
		return &quiz.Run{
			ID:        uuid.New(),
			QuizID:    q.ID,
			UserID:    userID,
			CreatedAt: createdAt,
			DueAt:     createdAt.Add(7 * 24 * time.Hour),
			Status:    status,
		}
	}

	t.Run("RunAbertoDentroDoPrazoViraPendencia", func(t *testing.T) {
		q := newPeriodicQuiz(15, 7)
		run := newRun(q, t0, quiz.RunStatusOpen)
		now := t0.Add(2 * 24 * time.Hour)

		pending, changed := quiz.ReconcileRuns(q, []*quiz.Run{run}, nil, now)
		if len(changed) != 0 {
			t.Errorf("Nenhum run deveria mudar de estado, mudaram %d", len(changed))
		}
		if len(pending) != 1 {
			t.Fatalf("Esperava 1 pendência, recebi %d", len(pending))
		}
		entry := pending[0]
		if entry.RunID == nil || *entry.RunID != run.ID {
			t.Error("Pendência deveria referenciar o run aberto.")
		}
		if !strings.Contains(entry.Meta, "Prazo: 08/01/2026") {
			t.Errorf("Meta sem o prazo esperado: %q", entry.Meta)
		}
		if !strings.Contains(entry.Meta, "Recorrência: 15d") {
			t.Errorf("Meta sem a recorrência esperada: %q", entry.Meta)
		}
	})

	t.Run("TentativaFechaORun", func(t *testing.T) {
		q := newPeriodicQuiz(15, 7)
		run := newRun(q, t0, quiz.RunStatusOpen)
		runID := run.ID
		attempt := &quiz.Attempt{ID: uuid.New(), QuizID: q.ID, UserID: userID, RunID: &runID}
		now := t0.Add(1 * 24 * time.Hour)

		pending, changed := quiz.ReconcileRuns(q, []*quiz.Run{run}, []*quiz.Attempt{attempt}, now)
		if len(pending) != 0 {
			t.Errorf("Run respondido não deveria aparecer como pendência, apareceram %d", len(pending))
		}
		if len(changed) != 1 || changed[0].Status != quiz.RunStatusDone {
			t.Errorf("Esperava 1 run marcado como done, recebi %+v", changed)
		}
	})

	t.Run("PrazoVencidoExpira", func(t *testing.T) {
		q := newPeriodicQuiz(15, 7)
		run := newRun(q, t0, quiz.RunStatusOpen)
		now := run.DueAt.Add(time.Hour)

		pending, changed := quiz.ReconcileRuns(q, []*quiz.Run{run}, nil, now)
		if len(pending) != 0 {
			t.Errorf("Run vencido não deveria ser pendência, apareceram %d", len(pending))
		}
		if len(changed) != 1 || changed[0].Status != quiz.RunStatusExpired {
			t.Errorf("Esperava 1 run expirado, recebi %+v", changed)
		}
	})

	t.Run("EstadoTerminalNaoMuda", func(t *testing.T) {
		q := newPeriodicQuiz(15, 7)
		done := newRun(q, t0, quiz.RunStatusDone)
		expired := newRun(q, t0, quiz.RunStatusExpired)
		now := t0.Add(30 * 24 * time.Hour)

		pending, changed := quiz.ReconcileRuns(q, []*quiz.Run{done, expired}, nil, now)
		if len(pending) != 0 || len(changed) != 0 {
			t.Errorf("Estados terminais foram revisitados: pending=%d changed=%d", len(pending), len(changed))
		}
	})

	t.Run("MultiplosRunsAbertosCoexistem", func(t *testing.T) {
		q := newPeriodicQuiz(15, 7)
		a := newRun(q, t0, quiz.RunStatusOpen)
		b := newRun(q, t0.Add(24*time.Hour), quiz.RunStatusOpen)
		now := t0.Add(2 * 24 * time.Hour)

		pending, _ := quiz.ReconcileRuns(q, []*quiz.Run{a, b}, nil, now)
		if len(pending) != 2 {
			t.Errorf("Esperava 2 pendências independentes, recebi %d", len(pending))
		}
	})
}

func TestFinalPendingEntry(t *testing.T) {
	q := &quiz.Quiz{
		ID:       uuid.New(),
		Title:    "Questionário Final",
		Kind:     quiz.QuizKindFinal,
		MinScore: 2,
		Questions: []quiz.Question{
			{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()},
		},
	}

	entry := quiz.FinalPendingEntry(q)
	if entry.Meta != "Mínimo: 2/3" {
		t.Errorf("Meta incorreta: %q", entry.Meta)
	}
	if entry.RunID != nil {
		t.Error("Pendência de final não deveria referenciar run.")
	}

	q.MinScore = 0
	entry = quiz.FinalPendingEntry(q)
	if entry.Meta != "Mínimo: 3/3" {
		t.Errorf("Sem mínimo configurado deveria exigir tudo, meta: %q", entry.Meta)
	}
}

func TestHasAttempt(t *testing.T) {
	quizID := uuid.New()
	attempts := []*quiz.Attempt{
		{ID: uuid.New(), QuizID: uuid.New()},
		{ID: uuid.New(), QuizID: quizID},
	}

	if !quiz.HasAttempt(attempts, quizID) {
		t.Error("Deveria encontrar a tentativa do quiz.")
	}
	if quiz.HasAttempt(attempts, uuid.New()) {
		t.Error("Não deveria encontrar tentativa para quiz desconhecido.")
	}
}
