package precision

import (
	"context"
	"fmt"
	"strconv"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/futures"
	"github.com/samber/lo"
)

// https://developers.binance.com/docs/binance-spot-api-docs/filters
const (
	filterLotSize     = "LOT_SIZE"
	filterPrice       = "PRICE_FILTER"
	filterNotional    = "NOTIONAL"
	filterMinNotional = "MIN_NOTIONAL"
)

var (
	_ Source = (*BinanceSource)(nil)
	_ Source = (*BinanceFuturesSource)(nil)
)

// BinanceSource 币安现货 exchangeInfo, 只读取交易规则
type BinanceSource struct {
	cli     *binance.Client
	symbols []string
}

// NewBinanceSource symbols 为空时读取全部交易对
func NewBinanceSource(cli *binance.Client, symbols ...string) *BinanceSource {
	return &BinanceSource{cli: cli, symbols: symbols}
}

func (s *BinanceSource) Name() string {
	return "binance"
}

func (s *BinanceSource) Load(ctx context.Context) (Table, error) {
	svc := s.cli.NewExchangeInfoService()
	if len(s.symbols) > 0 {
		svc = svc.Symbols(s.symbols...)
	}
	info, err := svc.Do(ctx)
	if err != nil {
		return Table{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	if len(info.Symbols) == 0 {
		return Table{}, fmt.Errorf("%w: exchangeInfo returned no symbols", ErrSourceNotFound)
	}
	return NewTable(lo.SliceToMap(info.Symbols, func(item binance.Symbol) (string, Entry) {
		return item.Symbol, spotEntry(item)
	})), nil
}

func spotEntry(s binance.Symbol) Entry {
	e := Entry{}
	if v, ok := filterValue(s.Filters, filterLotSize, "stepSize"); ok {
		e[KeyStepSize] = NewValue(v)
	}
	if v, ok := filterValue(s.Filters, filterPrice, "tickSize"); ok {
		e[KeyTickSize] = NewValue(v)
	}
	// MIN_NOTIONAL 已被 NOTIONAL 取代, 兼容旧数据
	if v, ok := filterValue(s.Filters, filterNotional, "minNotional"); ok {
		e[KeyMinNotional] = NewValue(v)
	} else if v, ok := filterValue(s.Filters, filterMinNotional, "minNotional"); ok {
		e[KeyMinNotional] = NewValue(v)
	}
	return e
}

// BinanceFuturesSource 币安 U 本位合约 exchangeInfo
type BinanceFuturesSource struct {
	cli     *futures.Client
	symbols map[string]struct{}
}

// NewBinanceFuturesSource symbols 为空时读取全部交易对
func NewBinanceFuturesSource(cli *futures.Client, symbols ...string) *BinanceFuturesSource {
	return &BinanceFuturesSource{
		cli: cli,
		symbols: lo.SliceToMap(symbols, func(item string) (string, struct{}) {
			return item, struct{}{}
		}),
	}
}

func (s *BinanceFuturesSource) Name() string {
	return "binance_futures"
}

func (s *BinanceFuturesSource) Load(ctx context.Context) (Table, error) {
	info, err := s.cli.NewExchangeInfoService().Do(ctx)
	if err != nil {
		return Table{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	symbols := lo.Filter(info.Symbols, func(item futures.Symbol, _ int) bool {
		if len(s.symbols) == 0 {
			return true
		}
		_, ok := s.symbols[item.Symbol]
		return ok
	})
	if len(symbols) == 0 {
		return Table{}, fmt.Errorf("%w: exchangeInfo returned no symbols", ErrSourceNotFound)
	}
	return NewTable(lo.SliceToMap(symbols, func(item futures.Symbol) (string, Entry) {
		return item.Symbol, futuresEntry(item)
	})), nil
}

// futuresEntry 优先使用过滤器, 缺失时使用 quantityPrecision / pricePrecision 小数位数
func futuresEntry(s futures.Symbol) Entry {
	e := Entry{}
	if v, ok := filterValue(s.Filters, filterLotSize, "stepSize"); ok {
		e[KeyStepSize] = NewValue(v)
	} else {
		e[KeyQuantityPrecision] = NewValue(strconv.Itoa(s.QuantityPrecision))
	}
	if v, ok := filterValue(s.Filters, filterPrice, "tickSize"); ok {
		e[KeyTickSize] = NewValue(v)
	} else {
		e[KeyPricePrecision] = NewValue(strconv.Itoa(s.PricePrecision))
	}
	if v, ok := filterValue(s.Filters, filterMinNotional, "notional"); ok {
		e[KeyMinNotional] = NewValue(v)
	}
	return e
}

func filterValue(filters []map[string]interface{}, filterType, key string) (string, bool) {
	filter, ok := lo.Find(filters, func(item map[string]interface{}) bool {
		return item["filterType"] == filterType
	})
	if !ok {
		return "", false
	}
	switch v := filter[key].(type) {
	case string:
		return v, v != ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}
