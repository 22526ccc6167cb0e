package quiz

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	util "github.com/rkive-app/rkive-api/internal/utils"
)

// PendingEntry descreve uma avaliação acionável agora. É derivada a cada
// consulta e nunca persistida.
type PendingEntry struct {
	QuizID uuid.UUID  `json:"quizId"`
	RunID  *uuid.UUID `json:"runId,omitempty"`
	Title  string     `json:"title"`
	Meta   string     `json:"meta"`
}

// EnsureRuns materializa sob demanda o próximo ciclo de uma prova periódica.
// Não há timer em segundo plano: o ciclo nasce quando a pendência é
// consultada, o que torna o mecanismo tolerante a períodos longos com a
// aplicação fechada. Se vários intervalos se passaram, nasce UM ciclo por
// consulta (catch-up), não um por intervalo perdido.
//
// runs deve vir em ordem cronológica de criação. Retorna o run criado, ou
// nil quando o ciclo atual ainda não venceu.
func EnsureRuns(q *Quiz, userID uuid.UUID, runs []*Run, now time.Time) *Run {
	if q.Kind != QuizKindPeriodic {
		return nil
	}

	interval := time.Duration(q.intervalDays()) * 24 * time.Hour
	due := time.Duration(q.dueDays()) * 24 * time.Hour

	var last *Run
	if len(runs) > 0 {
		last = runs[len(runs)-1]
	}

	baseTime := q.CreatedAt
	if last != nil {
		baseTime = last.CreatedAt
	}
	nextTime := baseTime.Add(interval)

	if last == nil || !now.Before(nextTime) {
		// evitar criar múltiplos de uma vez
		if last == nil || now.Sub(last.CreatedAt) >= interval {
			return &Run{
				ID:        uuid.New(),
				QuizID:    q.ID,
				UserID:    userID,
				CreatedAt: now,
				DueAt:     now.Add(due),
				Status:    RunStatusOpen,
			}
		}
	}
	return nil
}

// ReconcileRuns fecha os ciclos abertos contra as tentativas e o relógio:
// tentativa registrada para o run → done; prazo vencido → expired; caso
// contrário o run segue aberto e vira uma pendência. Estados terminais não
// são revisitados. Mais de um run aberto pode coexistir e todos aparecem
// como pendências separadas.
//
// Retorna as pendências e os runs cujo status mudou (para persistência).
func ReconcileRuns(q *Quiz, runs []*Run, attempts []*Attempt, now time.Time) (pending []PendingEntry, changed []*Run) {
	for _, run := range runs {
		if run.Status != RunStatusOpen {
			continue
		}

		attempted := false
		for _, a := range attempts {
			if a.QuizID == q.ID && a.RunID != nil && *a.RunID == run.ID {
				attempted = true
				break
			}
		}
		if attempted {
			run.Status = RunStatusDone
			changed = append(changed, run)
			continue
		}

		if now.After(run.DueAt) {
			run.Status = RunStatusExpired
			changed = append(changed, run)
			continue
		}

		runID := run.ID
		pending = append(pending, PendingEntry{
			QuizID: q.ID,
			RunID:  &runID,
			Title:  q.Title,
			Meta:   fmt.Sprintf("Prazo: %s • Recorrência: %dd", util.FormatDateBR(run.DueAt), q.intervalDays()),
		})
	}
	return pending, changed
}

// FinalPendingEntry monta a pendência de um questionário final liberado.
func FinalPendingEntry(q *Quiz) PendingEntry {
	return PendingEntry{
		QuizID: q.ID,
		Title:  q.Title,
		Meta:   fmt.Sprintf("Mínimo: %d/%d", q.EffectiveMinScore(), len(q.Questions)),
	}
}

// HasAttempt verifica se existe qualquer tentativa do usuário para a prova,
// independente de run. Um final tentado deixa de aparecer como pendente.
func HasAttempt(attempts []*Attempt, quizID uuid.UUID) bool {
	for _, a := range attempts {
		if a.QuizID == quizID {
			return true
		}
	}
	return false
}
