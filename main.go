package main

import (
	"context"
	"fmt"
	"time"

	"github.com/KNICEX/symbol-precision/internal/precision"
	"github.com/KNICEX/symbol-precision/internal/repo"
	"github.com/KNICEX/symbol-precision/ioc"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	// --config=./config/xxx.yaml
	configFile = pflag.String("config", "./config/config.dev.yaml", "specify config file")
	symbol     = pflag.String("symbol", "", "symbol to normalize, e.g. BTCUSDT")
	qty        = pflag.String("qty", "", "order quantity to trim")
	price      = pflag.String("price", "", "order price to trim, also used for the min notional quantity")
	// --sync=file 从 binance 拉取 exchangeInfo 写入快照
	syncTo = pflag.String("sync", "", "write a snapshot from the binance source into file|sqlite")
)

func initViper() {
	viper.SetConfigFile(*configFile)
	err := viper.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
}

func main() {
	pflag.Parse()
	initViper()

	logger := ioc.InitLogger()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if *syncTo != "" {
		if err := syncSnapshot(ctx, logger, *syncTo); err != nil {
			logger.Fatal("sync symbol precision failed", zap.Error(err))
		}
		return
	}

	normalizer := ioc.InitNormalizer(ctx, logger)
	if *symbol == "" {
		fmt.Printf("loaded %d symbols\n", normalizer.Table().Len())
		return
	}

	fmt.Printf("symbol:       %s\n", *symbol)
	fmt.Printf("step size:    %s\n", normalizer.StepSize(*symbol))
	fmt.Printf("tick size:    %s\n", normalizer.TickSize(*symbol))
	fmt.Printf("min notional: %s\n", normalizer.MinNotional(*symbol))

	p := parseArg(logger, "price", *price)
	if *qty != "" {
		fmt.Printf("quantity:     %s\n", normalizer.TrimQuantity(*symbol, parseArg(logger, "qty", *qty), p))
	}
	if p.Valid {
		fmt.Printf("price:        %s\n", normalizer.TrimPrice(*symbol, p))
	}
}

func parseArg(logger *zap.Logger, name, s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		logger.Warn("invalid decimal argument", zap.String("arg", name), zap.String("value", s), zap.Error(err))
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// syncSnapshot 从 binance 数据源读取, 写入文件或数据库, 之后由对应数据源加载
func syncSnapshot(ctx context.Context, logger *zap.Logger, target string) error {
	cfg := ioc.LoadPrecisionConfig()
	name := cfg.Source
	if name != ioc.SourceBinance && name != ioc.SourceBinanceFutures {
		name = ioc.SourceBinance
	}

	src := ioc.InitPrecisionSource(name)
	table, err := src.Load(ctx)
	if err != nil {
		return err
	}

	switch target {
	case ioc.SourceFile:
		err = precision.WriteFile(cfg.File, table)
	case ioc.SourceSqlite:
		err = precision.SaveTable(ctx, repo.NewSymbolPrecisionRepo(ioc.InitDB()), table)
	default:
		err = fmt.Errorf("unknown sync target: %s", target)
	}
	if err != nil {
		return err
	}

	logger.Info("synced symbol precision",
		zap.String("source", src.Name()),
		zap.String("target", target),
		zap.Int("symbols", table.Len()))
	return nil
}
