package progress

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rkive-app/rkive-api/internal/content"
)

// PercentRequired devolve o percentual de itens obrigatórios concluídos,
// arredondado e limitado a [0,100]. Sem itens obrigatórios a trilha conta
// como 100% por vacuidade.
func PercentRequired(trail *content.Trail, completed map[uuid.UUID]time.Time) int {
	req := trail.RequiredItems
	if len(req) == 0 {
		return 100
	}

	done := 0
	for _, c := range req {
		if _, ok := completed[c.ID]; ok {
			done++
		}
	}

	pct := int(math.Round(float64(done) / float64(len(req)) * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}

// NextRequiredItems lista os próximos obrigatórios ainda não concluídos,
// na ordem da trilha.
func NextRequiredItems(trail *content.Trail, completed map[uuid.UUID]time.Time, limit int) []*content.Content {
	var next []*content.Content
	for _, c := range trail.RequiredItems {
		if _, ok := completed[c.ID]; ok {
			continue
		}
		next = append(next, c)
		if len(next) == limit {
			break
		}
	}
	return next
}
