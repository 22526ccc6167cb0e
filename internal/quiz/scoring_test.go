package quiz_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rkive-app/rkive-api/internal/quiz"
)

func TestScore(t *testing.T) {
	q1 := uuid.New()
	q2 := uuid.New()
	q3 := uuid.New()
	questions := []quiz.Question{
		{ID: q1, CorrectIndex: 0},
		{ID: q2, CorrectIndex: 1},
		{ID: q3, CorrectIndex: 2},
	}

	t.Run("AcertosParciais", func(t *testing.T) {
		answers := map[uuid.UUID]int{q1: 0, q2: 1, q3: 0}
		if got := quiz.Score(questions, answers); got != 2 {
			t.Errorf("Pontuação incorreta. Esperado: 2, Recebido: %d", got)
		}
	})

	t.Run("SemRespostaNaoPontua", func(t *testing.T) {
		answers := map[uuid.UUID]int{q1: 0}
		if got := quiz.Score(questions, answers); got != 1 {
			t.Errorf("Questão sem resposta pontuou. Esperado: 1, Recebido: %d", got)
		}
	})

	t.Run("TodasCorretas", func(t *testing.T) {
		answers := map[uuid.UUID]int{q1: 0, q2: 1, q3: 2}
		if got := quiz.Score(questions, answers); got != 3 {
			t.Errorf("Pontuação incorreta. Esperado: 3, Recebido: %d", got)
		}
	})
}

func TestStatusFor(t *testing.T) {
	t.Run("MinimoConfigurado", func(t *testing.T) {
		if got := quiz.StatusFor(2, 2, 3); got != quiz.AttemptStatusApto {
			t.Errorf("Esperado: %s, Recebido: %s", quiz.AttemptStatusApto, got)
		}
		if got := quiz.StatusFor(1, 2, 3); got != quiz.AttemptStatusNaoApto {
			t.Errorf("Esperado: %s, Recebido: %s", quiz.AttemptStatusNaoApto, got)
		}
	})

	t.Run("SemMinimoExigePontuacaoMaxima", func(t *testing.T) {
		if got := quiz.StatusFor(3, 0, 3); got != quiz.AttemptStatusApto {
			t.Errorf("Esperado: %s, Recebido: %s", quiz.AttemptStatusApto, got)
		}
		if got := quiz.StatusFor(2, 0, 3); got != quiz.AttemptStatusNaoApto {
			t.Errorf("Esperado: %s, Recebido: %s", quiz.AttemptStatusNaoApto, got)
		}
	})
}
