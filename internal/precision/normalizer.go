package precision

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	// 小于该值视为 0, 用于排除十进制表示的残留
	dustTolerance = decimal.New(1, -12)
)

// 按最小名义价值计算数量时的舍入位数
const notionalPlaces = 18

// Normalizer 按交易对的 step size / tick size / min notional 规整下单数量和价格.
// 构造后只读, 可以被多个 goroutine 并发使用.
type Normalizer struct {
	table  Table
	logger *zap.Logger
}

func NewNormalizer(table Table, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{
		table:  table,
		logger: logger.Named("precision"),
	}
}

func (n *Normalizer) Table() Table {
	return n.table
}

// TickSize 价格最小变动单位, 未配置时返回 DefaultTickSize
func (n *Normalizer) TickSize(symbol string) decimal.Decimal {
	return n.lookup(symbol, tickSizeField)
}

// StepSize 数量最小变动单位, 未配置时返回 DefaultStepSize
func (n *Normalizer) StepSize(symbol string) decimal.Decimal {
	return n.lookup(symbol, stepSizeField)
}

// MinNotional 最小下单价值(价格 * 数量), 未配置时返回 DefaultMinNotional
func (n *Normalizer) MinNotional(symbol string) decimal.Decimal {
	return n.lookup(symbol, minNotionalField)
}

func (n *Normalizer) lookup(symbol string, f field) decimal.Decimal {
	d, found, err := f.resolve(n.table.entry(symbol))
	if err != nil {
		n.logger.Debug("malformed precision field, using default",
			zap.String("symbol", symbol),
			zap.String("field", f.name),
			zap.Stringer("default", f.fallback),
			zap.Error(err))
		return f.fallback
	}
	if !found {
		return f.fallback
	}
	return d
}

// TrimPrice 向下规整到 tick size 的整数倍, tick size 为 0 时原样返回, 价格无效时返回 0
func (n *Normalizer) TrimPrice(symbol string, price decimal.NullDecimal) decimal.Decimal {
	if !price.Valid {
		return decimal.Zero
	}
	tick := n.TickSize(symbol)
	if tick.IsZero() {
		return price.Decimal
	}
	// tick 非 0, 不会失败
	res, _ := floorToStep(price.Decimal, tick)
	return res
}

// PrecisePrice 同 TrimPrice, 保留用于兼容
func (n *Normalizer) PrecisePrice(symbol string, price decimal.NullDecimal) decimal.Decimal {
	return n.TrimPrice(symbol, price)
}

// TrimQuantity 向下规整到 step size 的整数倍.
// 如果规整结果为 0 (请求数量不足一个 step), 不返回 0, 而是返回满足最小名义价值的最小合法数量,
// 并输出一条 warn 日志. price 无效时最小数量为一个 step.
func (n *Normalizer) TrimQuantity(symbol string, qty, price decimal.NullDecimal) decimal.Decimal {
	if !qty.Valid || !qty.Decimal.IsPositive() {
		return decimal.Zero
	}

	res, err := n.trimQuantity(symbol, qty.Decimal, price)
	if err != nil {
		fallback := floorFloat8(qty.Decimal.InexactFloat64())
		n.logger.Error("trim quantity failed, flooring to 8 decimals",
			zap.String("symbol", symbol),
			zap.String("op", "trim_quantity"),
			zap.Stringer("qty", qty.Decimal),
			zap.Stringer("fallback", fallback),
			zap.Error(err))
		return fallback
	}
	return res
}

func (n *Normalizer) trimQuantity(symbol string, qty decimal.Decimal, price decimal.NullDecimal) (decimal.Decimal, error) {
	step := n.StepSize(symbol)

	trimmed := qty
	if !step.IsZero() {
		trimmed, _ = floorToStep(qty, step)
	}
	if trimmed.IsNegative() {
		trimmed = decimal.Zero
	}
	if trimmed.GreaterThanOrEqual(dustTolerance) {
		return trimmed, nil
	}

	// 不足一个 step, 计算满足 min notional 的最小数量
	minQty := n.minQtyByNotional(symbol, step, price)
	candidate, err := ceilToStep(minQty, step)
	if err != nil {
		return decimal.Zero, err
	}
	final, err := floorToStep(candidate, step)
	if err != nil {
		return decimal.Zero, err
	}
	if !final.IsPositive() {
		final = step
	}

	priceField := zap.String("price", "none")
	if price.Valid {
		priceField = zap.Stringer("price", price.Decimal)
	}
	n.logger.Warn("trimmed quantity was zero, returning minimum allowed quantity",
		zap.String("symbol", symbol),
		zap.String("op", "trim_quantity"),
		zap.Stringer("requested", qty),
		zap.Stringer("replacement", final),
		priceField)
	return final, nil
}

// minQtyByNotional 满足最小名义价值的数量, 至少为一个 step
func (n *Normalizer) minQtyByNotional(symbol string, step decimal.Decimal, price decimal.NullDecimal) decimal.Decimal {
	if !price.Valid || !price.Decimal.IsPositive() {
		return step
	}
	minQty := n.MinNotional(symbol).DivRound(price.Decimal, notionalPlaces)
	if minQty.LessThan(step) {
		minQty = step
	}
	return minQty
}
