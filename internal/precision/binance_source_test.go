package precision

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/futures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpotEntry(t *testing.T) {
	e := spotEntry(binance.Symbol{
		Symbol: "BTCUSDT",
		Filters: []map[string]interface{}{
			{"filterType": "PRICE_FILTER", "minPrice": "0.01000000", "maxPrice": "1000000.00000000", "tickSize": "0.01000000"},
			{"filterType": "LOT_SIZE", "minQty": "0.00001000", "maxQty": "9000.00000000", "stepSize": "0.00001000"},
			{"filterType": "NOTIONAL", "minNotional": "5.00000000", "applyMinToMarket": true},
		},
	})
	assert.Equal(t, "0.00001000", e[KeyStepSize].String())
	assert.Equal(t, "0.01000000", e[KeyTickSize].String())
	assert.Equal(t, "5.00000000", e[KeyMinNotional].String())

	// 旧版 MIN_NOTIONAL
	e = spotEntry(binance.Symbol{
		Symbol: "ETHBTC",
		Filters: []map[string]interface{}{
			{"filterType": "MIN_NOTIONAL", "minNotional": "0.0001"},
		},
	})
	assert.Equal(t, "0.0001", e[KeyMinNotional].String())
	_, ok := e[KeyStepSize]
	assert.False(t, ok)
}

func TestFuturesEntry(t *testing.T) {
	e := futuresEntry(futures.Symbol{
		Symbol:            "BTCUSDT",
		PricePrecision:    2,
		QuantityPrecision: 3,
		Filters: []map[string]interface{}{
			{"filterType": "PRICE_FILTER", "tickSize": "0.10"},
			{"filterType": "LOT_SIZE", "stepSize": "0.001"},
			{"filterType": "MIN_NOTIONAL", "notional": "100"},
		},
	})
	assert.Equal(t, "0.001", e[KeyStepSize].String())
	assert.Equal(t, "0.10", e[KeyTickSize].String())
	assert.Equal(t, "100", e[KeyMinNotional].String())

	// 没有过滤器时使用小数位数
	n := NewNormalizer(NewTable(map[string]Entry{
		"XRPUSDT": futuresEntry(futures.Symbol{Symbol: "XRPUSDT", PricePrecision: 4, QuantityPrecision: 1}),
	}), nil)
	assertDecimal(t, "0.1", n.StepSize("XRPUSDT"))
	assertDecimal(t, "0.0001", n.TickSize("XRPUSDT"))
}

const spotExchangeInfo = `{
	"timezone": "UTC",
	"serverTime": 1700000000000,
	"symbols": [
		{
			"symbol": "BTCUSDT",
			"status": "TRADING",
			"baseAsset": "BTC",
			"quoteAsset": "USDT",
			"filters": [
				{"filterType": "PRICE_FILTER", "tickSize": "0.01"},
				{"filterType": "LOT_SIZE", "stepSize": "0.001"},
				{"filterType": "NOTIONAL", "minNotional": "10"}
			]
		}
	]
}`

func TestBinanceSource_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/exchangeInfo" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(spotExchangeInfo))
	}))
	defer srv.Close()

	cli := binance.NewClient("", "")
	cli.BaseURL = srv.URL

	table, err := NewBinanceSource(cli, "BTCUSDT").Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"BTCUSDT"}, table.Symbols())

	n := NewNormalizer(table, nil)
	assertDecimal(t, "0.003", n.TrimQuantity("BTCUSDT", some("0.0035"), some("50000")))
	assertDecimal(t, "50123.45", n.TrimPrice("BTCUSDT", some("50123.456")))
	assertDecimal(t, "10", n.MinNotional("BTCUSDT"))
}

func TestBinanceSource_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code": -1000, "msg": "internal error"}`))
	}))
	defer srv.Close()

	cli := binance.NewClient("", "")
	cli.BaseURL = srv.URL

	src := NewBinanceSource(cli)
	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)

	n := Open(context.Background(), src, nil)
	assert.Equal(t, 0, n.Table().Len())
}
