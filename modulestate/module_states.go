package modulestate

import (
	"discordpanel/bizerror"
	"discordpanel/idgen"
	"discordpanel/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

// Resolver computes effective module states for a scope and performs
// toggles. The implementation is picked once at configuration time:
// guild deployments resolve per-scope overrides over module defaults,
// global deployments treat the module default itself as the state.
type Resolver interface {
	EffectiveModules(scopeID string) ([]EffectiveModule, error)
	Toggle(scopeID string, moduleID types.ID) (*EffectiveModule, error)
}

var (
	stateIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	// ActiveResolver is assigned during startup according to the
	// deployment variant.
	ActiveResolver Resolver = &GlobalDefaultResolver{}

	EffectiveModulesFunc = func(scopeID string) ([]EffectiveModule, error) {
		return ActiveResolver.EffectiveModules(scopeID)
	}
	ToggleFunc = func(scopeID string, moduleID types.ID) (*EffectiveModule, error) {
		return ActiveResolver.Toggle(scopeID, moduleID)
	}
	UpsertModuleStateFunc = UpsertModuleState
)

// ScopeOverrideResolver resolves a scope's override over the module
// default. An empty Allowlist surfaces every registered module.
type ScopeOverrideResolver struct {
	Allowlist []string
}

func (r *ScopeOverrideResolver) EffectiveModules(scopeID string) ([]EffectiveModule, error) {
	if scopeID == "" {
		return nil, bizerror.ErrMissingScope
	}

	db := persistence.ActiveDataSourceManager.GormDB()
	q := db.Table("modules m").
		Select("m.id, m.name, m.description, COALESCE(ms.enabled, m.enabled) AS enabled, m.created_at").
		Joins("LEFT JOIN module_states ms ON ms.module_id = m.id AND ms.scope_id = ?", scopeID).
		Order("m.name ASC")
	if len(r.Allowlist) > 0 {
		q = q.Where("m.name IN (?)", r.Allowlist)
	}

	records := []EffectiveModule{}
	if err := q.Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Toggle negates the scope's effective value and persists it as the
// scope's override. The read-negate-write runs as one statement keyed
// by the (scope_id, module_id) unique index, so concurrent toggles on
// the same pair linearize at the store.
func (r *ScopeOverrideResolver) Toggle(scopeID string, moduleID types.ID) (*EffectiveModule, error) {
	if scopeID == "" {
		return nil, bizerror.ErrMissingScope
	}

	db := persistence.ActiveDataSourceManager.GormDB()
	exec := db.Exec(`INSERT INTO module_states (id, scope_id, module_id, enabled)
		SELECT ?, ?, m.id, NOT m.enabled FROM modules m WHERE m.id = ?
		ON DUPLICATE KEY UPDATE enabled = NOT module_states.enabled`,
		idgen.NextID(stateIdWorker), scopeID, moduleID)
	if exec.Error != nil {
		return nil, exec.Error
	}
	if exec.RowsAffected == 0 {
		return nil, bizerror.ErrNotFound
	}

	return scopedEffectiveModule(db, scopeID, moduleID)
}

func scopedEffectiveModule(db *gorm.DB, scopeID string, moduleID types.ID) (*EffectiveModule, error) {
	var record EffectiveModule
	err := db.Raw(`SELECT m.id, m.name, m.description, COALESCE(ms.enabled, m.enabled) AS enabled, m.created_at
		FROM modules m
		LEFT JOIN module_states ms ON ms.module_id = m.id AND ms.scope_id = ?
		WHERE m.id = ?`, scopeID, moduleID).Scan(&record).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, bizerror.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// GlobalDefaultResolver serves deployments without scoping: the module
// default doubles as the effective state and toggling mutates it in
// place, never creating override rows.
type GlobalDefaultResolver struct {
}

func (r *GlobalDefaultResolver) EffectiveModules(scopeID string) ([]EffectiveModule, error) {
	db := persistence.ActiveDataSourceManager.GormDB()
	records := []EffectiveModule{}
	err := db.Table("modules").Select("id, name, description, enabled, created_at").
		Order("name ASC").Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *GlobalDefaultResolver) Toggle(scopeID string, moduleID types.ID) (*EffectiveModule, error) {
	db := persistence.ActiveDataSourceManager.GormDB()
	exec := db.Exec("UPDATE modules SET enabled = NOT enabled WHERE id = ?", moduleID)
	if exec.Error != nil {
		return nil, exec.Error
	}
	if exec.RowsAffected == 0 {
		return nil, bizerror.ErrNotFound
	}

	var record EffectiveModule
	err := db.Raw("SELECT id, name, description, enabled, created_at FROM modules WHERE id = ?", moduleID).
		Scan(&record).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, bizerror.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// UpsertModuleState writes a scope's override to an explicit value,
// replacing any previous row for the same (scope, module) pair.
func UpsertModuleState(scopeID string, moduleID types.ID, enabled bool) (*ModuleState, error) {
	if scopeID == "" {
		return nil, bizerror.ErrMissingScope
	}

	db := persistence.ActiveDataSourceManager.GormDB()
	var referenced struct {
		ID types.ID
	}
	if err := db.Raw("SELECT id FROM modules WHERE id = ?", moduleID).Scan(&referenced).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, bizerror.ErrNotFound
		}
		return nil, err
	}

	exec := db.Exec(`INSERT INTO module_states (id, scope_id, module_id, enabled) VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE enabled = VALUES(enabled)`,
		idgen.NextID(stateIdWorker), scopeID, moduleID, enabled)
	if exec.Error != nil {
		return nil, exec.Error
	}

	var state ModuleState
	if err := db.Where(&ModuleState{ScopeID: scopeID, ModuleID: moduleID}).First(&state).Error; err != nil {
		return nil, err
	}
	return &state, nil
}
