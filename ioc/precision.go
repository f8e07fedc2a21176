package ioc

import (
	"context"
	"fmt"

	"github.com/KNICEX/symbol-precision/internal/precision"
	"github.com/KNICEX/symbol-precision/internal/repo"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	SourceFile           = "file"
	SourceSqlite         = "sqlite"
	SourceBinance        = "binance"
	SourceBinanceFutures = "binance_futures"
)

type PrecisionConfig struct {
	Source  string   `mapstructure:"source"`
	File    string   `mapstructure:"file"`
	Symbols []string `mapstructure:"symbols"`
}

func LoadPrecisionConfig() PrecisionConfig {
	cfg := PrecisionConfig{
		Source: SourceFile,
		File:   precision.DefaultFile,
	}
	if err := viper.UnmarshalKey("precision", &cfg); err != nil {
		panic(err)
	}
	return cfg
}

// InitPrecisionSource 按名称构建元数据源, name 为空时使用配置中的 precision.source
func InitPrecisionSource(name string) precision.Source {
	cfg := LoadPrecisionConfig()
	if name == "" {
		name = cfg.Source
	}

	switch name {
	case SourceFile:
		return precision.NewFileSource(cfg.File)
	case SourceSqlite:
		return &sqliteSource{dsn: dbDSN()}
	case SourceBinance:
		return precision.NewBinanceSource(InitBinanceCli(), cfg.Symbols...)
	case SourceBinanceFutures:
		return precision.NewBinanceFuturesSource(InitBinanceFuturesCli(), cfg.Symbols...)
	default:
		panic(fmt.Errorf("unknown precision source: %s", name))
	}
}

func InitNormalizer(ctx context.Context, logger *zap.Logger) *precision.Normalizer {
	return precision.Open(ctx, InitPrecisionSource(""), logger)
}

var _ precision.Source = (*sqliteSource)(nil)

// sqliteSource 在 Load 时才打开数据库, 打开失败按数据源不存在处理
type sqliteSource struct {
	dsn string
}

func (s *sqliteSource) Name() string {
	return "sqlite:" + s.dsn
}

func (s *sqliteSource) Load(ctx context.Context) (precision.Table, error) {
	db, err := OpenDB(s.dsn)
	if err != nil {
		return precision.Table{}, fmt.Errorf("%w: %w", precision.ErrSourceNotFound, err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	return precision.NewRepoSource(repo.NewSymbolPrecisionRepo(db)).Load(ctx)
}
