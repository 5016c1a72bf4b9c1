package rebalance

import (
	"time"

	"github.com/harikrishna2005/bot-launcher/internal/service/market"
	"github.com/shopspring/decimal"
)

type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Allocation 单个交易对的目标权重
type Allocation struct {
	Symbol market.Symbol
	Weight decimal.Decimal // [0,1]
}

// Strategy 目标持仓配置
// 权重之和不要求恰好为 1, 需要时由调用方自行校验
type Strategy struct {
	Allocations []Allocation    // 按声明顺序参与计算
	Threshold   decimal.Decimal // 触发调仓的最小偏离, 默认 0.01
	MinTradeUSD decimal.Decimal // 单笔调仓的最小金额, 默认 10
	Interval    time.Duration   // 建议的重算周期, 算法本身不使用
}

// TotalWeight 所有目标权重之和
func (s Strategy) TotalWeight() decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.Allocations {
		total = total.Add(a.Weight)
	}
	return total
}

// TradeInstruction 调仓指令
// 只描述方向和规模, 执行前必须再经过 market.Rules 校验
type TradeInstruction struct {
	Asset    string
	Side     Side
	Amount   decimal.Decimal // 展示精度 8 位小数, 下单精度由 market.Rules 决定
	ValueUSD decimal.Decimal
	DriftPct decimal.Decimal // 偏离百分比, 正数表示超配
}
