package module

import (
	"discordpanel/bizerror"
	"discordpanel/idgen"
	"discordpanel/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/go-sql-driver/mysql"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

const mysqlErrDuplicateEntry = 1062

var (
	moduleIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	ListModulesFunc  = ListModules
	CreateModuleFunc = CreateModule
)

func ListModules() ([]Module, error) {
	modules := []Module{}
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Order("name ASC").Find(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

// CreateModule registers a new module, enabled by default. Name
// uniqueness is enforced by the store.
func CreateModule(c ModuleCreation) (*Module, error) {
	r := Module{ID: idgen.NextID(moduleIdWorker), Name: c.Name, Description: c.Description,
		Enabled: true, CreatedAt: types.CurrentTimestamp()}
	if err := persistence.ActiveDataSourceManager.GormDB().Create(&r).Error; err != nil {
		if mysqlErr, ok := err.(*mysql.MySQLError); ok && mysqlErr.Number == mysqlErrDuplicateEntry {
			return nil, bizerror.ErrDuplicateModuleName
		}
		return nil, err
	}
	return &r, nil
}

func GetModule(id types.ID) (*Module, error) {
	var m Module
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Where(&Module{ID: id}).First(&m).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, bizerror.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func FindModuleByName(name string) (*Module, error) {
	var m Module
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Where(&Module{Name: name}).First(&m).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, bizerror.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// UpdateModuleDefault sets the global default state directly, without
// touching any per-scope override.
func UpdateModuleDefault(id types.ID, enabled bool) error {
	db := persistence.ActiveDataSourceManager.GormDB()
	exec := db.Exec("UPDATE modules SET enabled = ? WHERE id = ?", enabled, id)
	if exec.Error != nil {
		return exec.Error
	}
	if exec.RowsAffected == 0 {
		if _, err := GetModule(id); err != nil {
			return err
		}
	}
	return nil
}
