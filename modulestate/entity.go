package modulestate

import "github.com/fundwit/go-commons/types"

// ModuleState is one scope's explicit deviation from a module's global
// default. At most one row exists per (scope, module) pair.
type ModuleState struct {
	ID types.ID `json:"id"`

	ScopeID  string   `json:"scopeId" gorm:"column:scope_id;unique_index:uni_scope_module"`
	ModuleID types.ID `json:"moduleId" gorm:"unique_index:uni_scope_module"`
	Enabled  bool     `json:"enabled"`
}

// EffectiveModule is the resolved projection a client observes: the
// override value when one exists, the module default otherwise.
type EffectiveModule struct {
	ID          types.ID        `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Enabled     bool            `json:"enabled"`
	CreatedAt   types.Timestamp `json:"createdAt" gorm:"column:created_at"`
}
