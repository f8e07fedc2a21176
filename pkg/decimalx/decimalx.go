package decimalx

import (
	"errors"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

var ErrNotFinite = errors.New("decimalx: value is not finite")

func MustFromString(s string) decimal.Decimal {
	f, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return f
}

// FromFloat 通过最短字符串形式转换 float64, 避免直接引入二进制表示误差
// 例如 0.1 -> "0.1", 而不是 0.1000000000000000055511151231257827...
func FromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, ErrNotFinite
	}
	return decimal.NewFromString(strconv.FormatFloat(f, 'g', -1, 64))
}

// Pow10Neg 返回 10^-n, n 为小数位数
func Pow10Neg(n int64) decimal.Decimal {
	return decimal.New(1, int32(-n))
}

// FloorStep 向零截断到 step 的整数倍, step 不能为 0
func FloorStep(d, step decimal.Decimal) decimal.Decimal {
	q, _ := d.QuoRem(step, 0)
	return q.Mul(step)
}

// CeilStep 向上取整到 step 的整数倍, 仅用于非负数, step 不能为 0
func CeilStep(d, step decimal.Decimal) decimal.Decimal {
	q, r := d.QuoRem(step, 0)
	if !r.IsZero() {
		q = q.Add(decimal.NewFromInt(1))
	}
	return q.Mul(step)
}
