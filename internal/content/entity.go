package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/rkive-app/rkive-api/internal/user"
	"gorm.io/datatypes"
)

// SectorAll é o curinga de setor herdado do catálogo ("Todos").
const SectorAll = "Todos"

type Content struct {
	ID            uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title         string                      `gorm:"not null" json:"title"`
	Description   string                      `json:"description,omitempty"`
	Type          string                      `gorm:"not null" json:"type"`
	URL           string                      `json:"url,omitempty"`
	EmbedURL      string                      `json:"embedUrl,omitempty"`
	Unit          string                      `json:"unit"`
	Sector        string                      `json:"sector"`
	Positions     datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"positions"`
	Required      bool                        `gorm:"not null;default:false" json:"required"`
	Order         *int                        `gorm:"column:trail_order" json:"order"`
	EstimatedTime string                      `json:"estimatedTime,omitempty"`
	Tags          datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`
	Owner         string                      `json:"owner,omitempty"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsVisibleTo aplica as regras de visibilidade da trilha: unidade precisa
// bater quando definida, setor vazio ou "Todos" libera geral e lista de
// cargos vazia libera todos os cargos.
func (c *Content) IsVisibleTo(u *user.User) bool {
	if c.Unit != "" && c.Unit != u.Unit {
		return false
	}

	sectorOk := c.Sector == "" || c.Sector == SectorAll || c.Sector == u.Sector
	positionOk := len(c.Positions) == 0
	for _, p := range c.Positions {
		if p == u.Position {
			positionOk = true
			break
		}
	}
	return sectorOk && positionOk
}

// Trail é derivada a cada consulta, nunca persistida.
type Trail struct {
	Items         []*Content `json:"items"`
	RequiredItems []*Content `json:"requiredItems"`
	RequiredCount int        `json:"requiredCount"`
}
