package market

import (
	"errors"
	"fmt"

	"github.com/harikrishna2005/bot-launcher/pkg/decimalx"
	"github.com/shopspring/decimal"
)

// PrecisionMode 精度模式, 构造时解析一次, 调用时不再重新推断
type PrecisionMode int

const (
	// ModeDecimalPlaces 固定小数位数, 如 2 -> 123.46
	ModeDecimalPlaces PrecisionMode = iota
	// ModeTickSize 固定步进, 如 0.05 -> 100.05
	ModeTickSize
)

func (m PrecisionMode) String() string {
	switch m {
	case ModeDecimalPlaces:
		return "decimal_places"
	case ModeTickSize:
		return "tick_size"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

var (
	// ErrInvalidPrecision 精度值无法解析为有效模式
	ErrInvalidPrecision = errors.New("precision cannot be resolved to a mode")
	// ErrInvalidRule 约束值本身非法
	ErrInvalidRule = errors.New("invalid market rule")
)

// Precision 解析后的精度
// 0 或 >= 1 按小数位数处理(截断为整数), (0,1) 之间按步进处理
type Precision struct {
	Mode   PrecisionMode
	Places int32           // ModeDecimalPlaces 时有效
	Step   decimal.Decimal // ModeTickSize 时有效

	stepPlaces int32 // 步进的有效小数位数, 用于格式化
}

var one = decimal.NewFromInt(1)

func resolvePrecision(raw decimal.Decimal) (Precision, error) {
	switch {
	case raw.IsNegative():
		return Precision{}, fmt.Errorf("%w: %s", ErrInvalidPrecision, raw)
	case raw.IsZero() || raw.GreaterThanOrEqual(one):
		return Precision{Mode: ModeDecimalPlaces, Places: int32(raw.IntPart())}, nil
	default:
		return Precision{Mode: ModeTickSize, Step: raw, stepPlaces: stepPlaces(raw)}, nil
	}
}

// stepPlaces 去掉尾部多余的 0 之后步进的小数位数
// "0.01000000" 和 "0.01" 格式化结果必须一致
func stepPlaces(step decimal.Decimal) int32 {
	places := -step.Exponent()
	if places < 0 {
		return 0
	}
	for places > 0 && step.Truncate(places-1).Equal(step) {
		places--
	}
	return places
}

// format 按舍入策略把 d 规整到该精度, 返回交易所接受的字符串
func (p Precision) format(d decimal.Decimal, truncate bool) string {
	switch p.Mode {
	case ModeTickSize:
		var m decimal.Decimal
		if truncate {
			m = decimalx.TruncStep(d, p.Step)
		} else {
			m = decimalx.RoundStep(d, p.Step)
		}
		return m.StringFixed(p.stepPlaces)
	default:
		if truncate {
			return d.Truncate(p.Places).StringFixed(p.Places)
		}
		// 五入时距离相等远离零, 123.5 在 0 位精度下是 "124"
		return d.Round(p.Places).StringFixed(p.Places)
	}
}

// Rules 交易所对单个交易对的静态约束
// 随交易所元数据快照整体构造和替换, 构造后只读, 可被任意 goroutine 并发使用
type Rules struct {
	Symbol  Symbol
	MinCost decimal.Decimal // 最小下单金额(计价币)
	MinQty  decimal.Decimal // 最小下单数量(基础币)

	pricePrecision Precision
	qtyPrecision   Precision
}

// NewRules 从交易所元数据构造交易约束
// 精度解析失败在构造期立刻报错, 不延迟到第一次使用
func NewRules(symbol Symbol, minCost, minQty, pricePrecision, qtyPrecision decimal.Decimal) (Rules, error) {
	if symbol.IsZero() {
		return Rules{}, fmt.Errorf("%w: empty symbol", ErrInvalidRule)
	}
	if minCost.IsNegative() {
		return Rules{}, fmt.Errorf("%w: negative min cost %s", ErrInvalidRule, minCost)
	}
	if minQty.IsNegative() {
		return Rules{}, fmt.Errorf("%w: negative min qty %s", ErrInvalidRule, minQty)
	}

	pricePrec, err := resolvePrecision(pricePrecision)
	if err != nil {
		return Rules{}, fmt.Errorf("price precision: %w", err)
	}
	qtyPrec, err := resolvePrecision(qtyPrecision)
	if err != nil {
		return Rules{}, fmt.Errorf("qty precision: %w", err)
	}

	return Rules{
		Symbol:         symbol,
		MinCost:        minCost,
		MinQty:         minQty,
		pricePrecision: pricePrec,
		qtyPrecision:   qtyPrec,
	}, nil
}

// PricePrecision 解析后的价格精度
func (r Rules) PricePrecision() Precision {
	return r.pricePrecision
}

// QtyPrecision 解析后的数量精度
func (r Rules) QtyPrecision() Precision {
	return r.qtyPrecision
}

// PriceToPrecision 价格规整为交易所接受的字符串
// 价格四舍五入到最近有效档位, 距离相等时远离零
func (r Rules) PriceToPrecision(price decimal.Decimal) string {
	return r.pricePrecision.format(price, false)
}

// QtyToPrecision 数量规整为交易所接受的字符串
// 数量只舍不入, 避免下单数量超过实际持有
func (r Rules) QtyToPrecision(qty decimal.Decimal) string {
	return r.qtyPrecision.format(qty, true)
}

// PriceToPrecisionFloat 缺失的价格返回 "0"
func (r Rules) PriceToPrecisionFloat(price *float64) string {
	if price == nil {
		return "0"
	}
	return r.PriceToPrecision(decimal.NewFromFloat(*price))
}

// QtyToPrecisionFloat 缺失的数量返回 "0"
func (r Rules) QtyToPrecisionFloat(qty *float64) string {
	if qty == nil {
		return "0"
	}
	return r.QtyToPrecision(decimal.NewFromFloat(*qty))
}

// CleanPrice 先格式化再解析, 保证参与后续运算的数值与发给交易所的字符串完全一致
func (r Rules) CleanPrice(price decimal.Decimal) decimal.Decimal {
	return decimalx.MustFromString(r.PriceToPrecision(price))
}

// CleanQty 同 CleanPrice, 数量版本
func (r Rules) CleanQty(qty decimal.Decimal) decimal.Decimal {
	return decimalx.MustFromString(r.QtyToPrecision(qty))
}

// IsValidTrade 校验订单是否满足交易所最小数量和最小金额
// qty 取绝对值参与校验, 返回 (false, 原因) 表示可恢复的拒单, 不是错误
// 先按交易所的方式规整数量和价格, 再用精确十进制比较, 数量检查先于金额检查
func (r Rules) IsValidTrade(qty, price decimal.Decimal) (bool, string) {
	cleanQty := r.CleanQty(qty.Abs())
	cleanPrice := r.CleanPrice(price)

	if cleanQty.LessThan(r.MinQty) {
		return false, fmt.Sprintf("quantity %s is below the minimum %s", cleanQty, r.MinQty)
	}

	totalCost := cleanQty.Mul(cleanPrice)
	if totalCost.LessThan(r.MinCost) {
		return false, fmt.Sprintf("total cost %s is below the minimum %s", totalCost, r.MinCost)
	}
	return true, ""
}
