package precision

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KNICEX/symbol-precision/pkg/decimalx"
	"github.com/shopspring/decimal"
)

// 兼容多种命名的元数据字段
const (
	KeyStepSize          = "stepSize"
	KeyLotSize           = "lotSize"
	KeyQuantityStep      = "quantity_step"
	KeyQtyStep           = "qty_step"
	KeyQuantityPrecision = "quantityPrecision"
	KeyQtyPrecision      = "qtyPrecision"

	KeyTickSize       = "tickSize"
	KeyPriceTick      = "priceTick"
	KeyPricePrecision = "pricePrecision"

	KeyMinNotional      = "minNotional"
	KeyMinNotionalSnake = "min_notional"
)

// 小数位数的合理范围
const maxDecimalPlaces = 30

var (
	DefaultTickSize    = decimal.New(1, -8)
	DefaultStepSize    = decimal.New(1, -8)
	DefaultMinNotional = decimal.New(1, -6)
)

type aliasKind int

const (
	// 直接给出增量, 例如 "0.001"
	kindIncrement aliasKind = iota
	// 小数位数, 10^-n
	kindDecimals
	// 整数文本按小数位数处理, 否则按增量处理.
	// 旧版实现把 pricePrecision 直接当作增量, 2 会变成 tick 2.0; 这里有意按 0.01 处理
	kindIncrementOrDecimals
)

type alias struct {
	key  string
	kind aliasKind
}

type field struct {
	name     string
	aliases  []alias
	fallback decimal.Decimal
}

var (
	stepSizeField = field{
		name: "step_size",
		aliases: []alias{
			{KeyStepSize, kindIncrement},
			{KeyLotSize, kindIncrement},
			{KeyQuantityStep, kindIncrement},
			{KeyQtyStep, kindIncrement},
			{KeyQuantityPrecision, kindDecimals},
			{KeyQtyPrecision, kindDecimals},
		},
		fallback: DefaultStepSize,
	}
	tickSizeField = field{
		name: "tick_size",
		aliases: []alias{
			{KeyTickSize, kindIncrement},
			{KeyPriceTick, kindIncrement},
			{KeyPricePrecision, kindIncrementOrDecimals},
		},
		fallback: DefaultTickSize,
	}
	minNotionalField = field{
		name: "min_notional",
		aliases: []alias{
			{KeyMinNotional, kindIncrement},
			{KeyMinNotionalSnake, kindIncrement},
		},
		fallback: DefaultMinNotional,
	}
)

// resolve 按别名优先级查找字段, 第一个出现的别名决定结果, 格式错误时返回 ErrFieldType
func (f field) resolve(e Entry) (decimal.Decimal, bool, error) {
	for _, a := range f.aliases {
		v, ok := e[a.key]
		if !ok {
			continue
		}
		d, err := a.parse(v)
		if err != nil {
			return decimal.Zero, true, fmt.Errorf("%w: %s=%q: %w", ErrFieldType, a.key, v.raw, err)
		}
		return d, true, nil
	}
	return decimal.Zero, false, nil
}

func (a alias) parse(v Value) (decimal.Decimal, error) {
	if !v.valid {
		return decimal.Zero, errors.New("not a scalar")
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v.raw))
	if err != nil {
		return decimal.Zero, err
	}

	kind := a.kind
	if kind == kindIncrementOrDecimals {
		kind = kindIncrement
		if d.IsInteger() && !strings.ContainsAny(v.raw, ".eE") {
			kind = kindDecimals
		}
	}

	switch kind {
	case kindDecimals:
		if !d.IsInteger() {
			return decimal.Zero, errors.New("decimal places must be an integer")
		}
		n := d.IntPart()
		if n > maxDecimalPlaces || n < -maxDecimalPlaces {
			return decimal.Zero, errors.New("decimal places out of range")
		}
		return decimalx.Pow10Neg(n), nil
	default:
		if d.IsNegative() {
			return decimal.Zero, errors.New("negative value")
		}
		return d, nil
	}
}
