package ioc

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/KNICEX/symbol-precision/internal/repo"
	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dbDSN() string {
	type Config struct {
		DSN string `mapstructure:"dsn"`
	}

	cfg := Config{DSN: "./data/precision.db"}
	if err := viper.UnmarshalKey("db", &cfg); err != nil {
		panic(err)
	}
	return cfg.DSN
}

// OpenDB 打开 sqlite 并建表, 普通文件路径的目录不存在时先创建
func OpenDB(dsn string) (*gorm.DB, error) {
	if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := repo.InitTables(db); err != nil {
		return nil, err
	}
	return db, nil
}

func InitDB() *gorm.DB {
	db, err := OpenDB(dbDSN())
	if err != nil {
		panic(err)
	}
	return db
}
