package decimalx

import "github.com/shopspring/decimal"

var two = decimal.NewFromInt(2)

// RoundStep 取最接近 d 的 step 整数倍, 距离相等时远离零
// 基于 QuoRem 的精确整数运算, 不经过二进制浮点
func RoundStep(d, step decimal.Decimal) decimal.Decimal {
	q, r := d.QuoRem(step, 0)
	if r.Abs().Mul(two).Cmp(step.Abs()) >= 0 {
		if d.Sign() < 0 {
			q = q.Sub(decimal.NewFromInt(1))
		} else {
			q = q.Add(decimal.NewFromInt(1))
		}
	}
	return q.Mul(step)
}

// TruncStep 取绝对值不超过 d 的最近 step 整数倍, 只舍不入
func TruncStep(d, step decimal.Decimal) decimal.Decimal {
	q, _ := d.QuoRem(step, 0)
	return q.Mul(step)
}
