package repo

import (
	"github.com/KNICEX/symbol-precision/internal/entity"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(&entity.SymbolPrecision{})
}
