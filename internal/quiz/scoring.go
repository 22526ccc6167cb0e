package quiz

import "github.com/google/uuid"

// Score conta as questões cuja alternativa registrada é a correta.
// Questões sem resposta não pontuam.
func Score(questions []Question, answers map[uuid.UUID]int) int {
	score := 0
	for _, q := range questions {
		if chosen, ok := answers[q.ID]; ok && chosen == q.CorrectIndex {
			score++
		}
	}
	return score
}

// StatusFor aplica o corte: sem mínimo configurado, exige pontuação máxima.
func StatusFor(score, minScore, maxScore int) AttemptStatus {
	cut := minScore
	if cut <= 0 {
		cut = maxScore
	}
	if score >= cut {
		return AttemptStatusApto
	}
	return AttemptStatusNaoApto
}
