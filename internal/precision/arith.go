package precision

import (
	"math"

	"github.com/KNICEX/symbol-precision/pkg/decimalx"
	"github.com/shopspring/decimal"
)

func floorToStep(d, step decimal.Decimal) (decimal.Decimal, error) {
	if step.IsZero() {
		return decimal.Zero, ErrArithmetic
	}
	return decimalx.FloorStep(d, step), nil
}

func ceilToStep(d, step decimal.Decimal) (decimal.Decimal, error) {
	if step.IsZero() {
		return decimal.Zero, ErrArithmetic
	}
	return decimalx.CeilStep(d, step), nil
}

// floorFloat8 二进制浮点下的兜底: 向下保留 8 位小数, 非有限值返回 0
func floorFloat8(f float64) decimal.Decimal {
	v := math.Floor(f*1e8) / 1e8
	d, err := decimalx.FromFloat(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// roundFloat8 二进制浮点下的兜底: 四舍六入五成双保留 8 位小数, 非有限值原样返回
func roundFloat8(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	v := math.RoundToEven(f*1e8) / 1e8
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return f
	}
	return v
}
