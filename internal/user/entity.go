package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/rkive-app/rkive-api/internal/permission"
	"gorm.io/datatypes"
)

// TeamScope delimita o que um Supervisor enxerga nos resultados: a lista
// explícita de usuários é unida aos que casam com setor/cargo.
type TeamScope struct {
	Sector   string      `json:"sector"`
	Position string      `json:"position"`
	UserIDs  []uuid.UUID `json:"userIds"`
}

type User struct {
	ID                 uuid.UUID                               `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name               string                                  `gorm:"not null" json:"name"`
	Email              string                                  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string                                  `gorm:"not null" json:"-"`
	Role               permission.Role                         `gorm:"type:text;not null;default:'Colaborador'" json:"role"`
	Unit               string                                  `json:"unit"`
	Sector             string                                  `json:"sector"`
	Position           string                                  `json:"position"`
	Active             bool                                    `gorm:"not null;default:true" json:"active"`
	PermissionOverride datatypes.JSONType[permission.Override] `gorm:"type:jsonb" json:"permissionsOverride"`
	TeamScope          datatypes.JSONType[TeamScope]           `gorm:"type:jsonb" json:"teamScope"`
	CreatedAt          time.Time                               `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time                               `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) Can(perm string) bool {
	return permission.Effective(u.Role, u.PermissionOverride.Data()).Has(perm)
}
