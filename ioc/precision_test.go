package ioc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/KNICEX/symbol-precision/internal/entity"
	"github.com/KNICEX/symbol-precision/internal/repo"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func setSqliteConfig(t *testing.T, dsn string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("precision.source", SourceSqlite)
	viper.Set("db.dsn", dsn)
}

func TestInitNormalizer_SqliteMissingDir(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "missing", "precision.db")
	setSqliteConfig(t, dsn)

	core, logs := observer.New(zapcore.DebugLevel)
	n := InitNormalizer(context.Background(), zap.New(core))

	assert.Equal(t, 0, n.Table().Len())
	assert.Equal(t, "0.00000001", n.TickSize("ANY").String())
	assert.Len(t, logs.FilterLevelExact(zapcore.WarnLevel).All(), 1)
}

func TestInitNormalizer_SqliteUnopenable(t *testing.T) {
	// 路径中的目录被同名文件占用, 无法创建
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	setSqliteConfig(t, filepath.Join(blocker, "precision.db"))

	core, logs := observer.New(zapcore.DebugLevel)
	n := InitNormalizer(context.Background(), zap.New(core))

	assert.Equal(t, 0, n.Table().Len())
	assert.Equal(t, "0.000001", n.MinNotional("ANY").String())
	assert.Len(t, logs.FilterLevelExact(zapcore.WarnLevel).All(), 1)
}

func TestInitNormalizer_SqliteRows(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "data", "precision.db")
	setSqliteConfig(t, dsn)

	db, err := OpenDB(dsn)
	require.NoError(t, err)
	err = repo.NewSymbolPrecisionRepo(db).Upsert(context.Background(), []entity.SymbolPrecision{
		{Symbol: "BTCUSDT", StepSize: "0.001", TickSize: "0.01", MinNotional: "10"},
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	n := InitNormalizer(context.Background(), zap.NewNop())
	assert.Equal(t, []string{"BTCUSDT"}, n.Table().Symbols())
	assert.Equal(t, "0.01", n.TickSize("BTCUSDT").String())
}
