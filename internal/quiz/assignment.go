package quiz

import "github.com/rkive-app/rkive-api/internal/user"

// IsAssigned decide se a prova está atribuída ao usuário.
//
// Questionário final: setor e cargos são combinados com E; filtro ausente
// libera todos. Prova periódica: além dos filtros, a lista explícita de
// usuários funciona como atalho; quem está nela recebe a prova mesmo fora
// do setor/cargo filtrado.
func IsAssigned(q *Quiz, u *user.User) bool {
	sectorOk := q.Sector == "" || q.Sector == u.Sector
	positionOk := len(q.Positions) == 0
	for _, p := range q.Positions {
		if p == u.Position {
			positionOk = true
			break
		}
	}

	switch q.Kind {
	case QuizKindFinal:
		return sectorOk && positionOk
	case QuizKindPeriodic:
		byUser := false
		for _, id := range q.AssignedUserIDs {
			if id == u.ID {
				byUser = true
				break
			}
		}
		return (sectorOk && positionOk) || byUser
	}
	return false
}
