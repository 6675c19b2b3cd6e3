package module

import "github.com/fundwit/go-commons/types"

// Module is a named toggleable feature unit. Enabled is the global
// default state; per-scope deviations live in module_states.
type Module struct {
	ID types.ID `json:"id"`

	Name        string `json:"name" binding:"required,lte=128" gorm:"unique_index:uni_module_name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`

	CreatedAt types.Timestamp `json:"createdAt" gorm:"column:created_at" sql:"type:DATETIME(6) NOT NULL"`
}

type ModuleCreation struct {
	Name        string `json:"name" binding:"required,lte=128"`
	Description string `json:"description" binding:"omitempty,lte=255"`
}
