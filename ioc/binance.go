package ioc

import (
	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/futures"
	"github.com/spf13/viper"
)

type binanceConfig struct {
	ApiKey    string `mapstructure:"api_key"`
	ApiSecret string `mapstructure:"api_secret"`
}

func InitBinanceCli() *binance.Client {
	var cfg binanceConfig
	if err := viper.UnmarshalKey("cex.binance", &cfg); err != nil {
		panic(err)
	}

	return binance.NewClient(cfg.ApiKey, cfg.ApiSecret)
}

func InitBinanceFuturesCli() *futures.Client {
	var cfg binanceConfig
	if err := viper.UnmarshalKey("cex.binance", &cfg); err != nil {
		panic(err)
	}

	return futures.NewClient(cfg.ApiKey, cfg.ApiSecret)
}
