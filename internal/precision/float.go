package precision

import (
	"github.com/KNICEX/symbol-precision/pkg/decimalx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// float64 接口, 输入先转换为最短字符串再进入十进制运算

func (n *Normalizer) TickSizeFloat(symbol string) float64 {
	return n.TickSize(symbol).InexactFloat64()
}

func (n *Normalizer) MinNotionalFloat(symbol string) float64 {
	return n.MinNotional(symbol).InexactFloat64()
}

// TrimQuantityFloat price 为 nil 或无效时视为没有价格
func (n *Normalizer) TrimQuantityFloat(symbol string, qty float64, price *float64) float64 {
	q, err := decimalx.FromFloat(qty)
	if err != nil {
		fallback := floorFloat8(qty)
		n.logger.Error("invalid quantity, flooring to 8 decimals",
			zap.String("symbol", symbol),
			zap.String("op", "trim_quantity"),
			zap.Float64("qty", qty),
			zap.Error(err))
		return fallback.InexactFloat64()
	}

	var p decimal.NullDecimal
	if price != nil {
		if d, err := decimalx.FromFloat(*price); err == nil {
			p = decimal.NewNullDecimal(d)
		}
	}
	return n.TrimQuantity(symbol, decimal.NewNullDecimal(q), p).InexactFloat64()
}

func (n *Normalizer) TrimPriceFloat(symbol string, price float64) float64 {
	p, err := decimalx.FromFloat(price)
	if err != nil {
		n.logger.Error("invalid price, rounding to 8 decimals",
			zap.String("symbol", symbol),
			zap.String("op", "trim_price"),
			zap.Float64("price", price),
			zap.Error(err))
		return roundFloat8(price)
	}
	return n.TrimPrice(symbol, decimal.NewNullDecimal(p)).InexactFloat64()
}

func (n *Normalizer) PrecisePriceFloat(symbol string, price float64) float64 {
	return n.TrimPriceFloat(symbol, price)
}
