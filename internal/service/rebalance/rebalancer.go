package rebalance

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var (
	defaultThreshold   = decimal.NewFromFloat(0.01)
	defaultMinTradeUSD = decimal.NewFromInt(10)

	hundred = decimal.NewFromInt(100)
)

// Target 调仓目标, 以资产代码为键, 按声明顺序参与计算
type Target struct {
	Asset  string
	Weight decimal.Decimal
}

// Rebalancer 把当前持仓向目标权重靠拢的调仓计算器
// 纯计算, 无副作用, 不取行情也不下单
type Rebalancer struct {
	targets     []Target
	threshold   decimal.Decimal
	minTradeUSD decimal.Decimal
}

// NewRebalancer 创建调仓计算器
// threshold/minTradeUSD 不为正数时使用默认值 0.01 / 10
func NewRebalancer(targets []Target, threshold, minTradeUSD decimal.Decimal) *Rebalancer {
	if !threshold.IsPositive() {
		threshold = defaultThreshold
	}
	if !minTradeUSD.IsPositive() {
		minTradeUSD = defaultMinTradeUSD
	}
	return &Rebalancer{
		targets:     targets,
		threshold:   threshold,
		minTradeUSD: minTradeUSD,
	}
}

// NewRebalancerFromStrategy 以交易对的基础币作为资产键
func NewRebalancerFromStrategy(s Strategy) *Rebalancer {
	targets := lo.Map(s.Allocations, func(a Allocation, _ int) Target {
		return Target{Asset: a.Symbol.Base(), Weight: a.Weight}
	})
	return NewRebalancer(targets, s.Threshold, s.MinTradeUSD)
}

// CalculateRebalance 计算从当前持仓到目标权重所需的调仓指令
// holdings/prices 中缺失的资产按 0 处理, 总市值为 0 时返回空列表
// 偏离不超过阈值或金额低于 minTradeUSD 的资产不产生指令
// 每次调用每个资产至多产生一条指令, 顺序与目标声明顺序一致
func (r *Rebalancer) CalculateRebalance(holdings, prices map[string]decimal.Decimal) []TradeInstruction {
	totalValue := decimal.Zero
	values := make(map[string]decimal.Decimal, len(r.targets))
	for _, target := range r.targets {
		value := holdings[target.Asset].Mul(prices[target.Asset])
		values[target.Asset] = value
		totalValue = totalValue.Add(value)
	}
	if totalValue.IsZero() {
		return nil
	}

	var trades []TradeInstruction
	for _, target := range r.targets {
		currentValue := values[target.Asset]
		drift := currentValue.Div(totalValue).Sub(target.Weight)
		if drift.Abs().LessThanOrEqual(r.threshold) {
			continue
		}

		targetValue := totalValue.Mul(target.Weight)
		diffUSD := targetValue.Sub(currentValue) // 正数买入, 负数卖出
		if diffUSD.Abs().LessThan(r.minTradeUSD) {
			continue
		}

		price := prices[target.Asset]
		if !price.IsPositive() {
			// 没有价格无法把金额换算成数量
			continue
		}

		side := SideBuy
		if diffUSD.IsNegative() {
			side = SideSell
		}
		trades = append(trades, TradeInstruction{
			Asset:    target.Asset,
			Side:     side,
			Amount:   diffUSD.Abs().Div(price).Round(8),
			ValueUSD: diffUSD.Abs().Round(2),
			DriftPct: drift.Mul(hundred).Round(2),
		})
	}
	return trades
}
