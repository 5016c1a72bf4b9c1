package rebalance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/harikrishna2005/bot-launcher/internal/entity"
	"github.com/harikrishna2005/bot-launcher/internal/repo"
	"github.com/harikrishna2005/bot-launcher/internal/schedule"
	"github.com/harikrishna2005/bot-launcher/internal/service/exchange"
	"github.com/harikrishna2005/bot-launcher/internal/service/market"
	"github.com/harikrishna2005/bot-launcher/internal/service/rule"
	"github.com/samber/lo"
)

// Task 单个调仓决策周期: 拉取持仓与行情 -> 计算调仓指令 -> 交易所规则校验 -> 记录
// 不直接下单, 通过校验的指令由下游执行层在提交前再次校验
// (计算和提交之间价格与持仓都可能变化)
type Task struct {
	strategy   Strategy
	rebalancer *Rebalancer
	rulesSvc   exchange.RulesService
	marketSvc  exchange.MarketDataService
	accountSvc exchange.AccountService
	recordRepo repo.RebalanceRepo
	specs      []rule.TradeSpec
}

// NewTask 创建调仓任务, 未指定规则时默认只检查交易所最小下单要求
// recordRepo 可以为 nil, 表示不落库
func NewTask(strategy Strategy, rulesSvc exchange.RulesService, marketSvc exchange.MarketDataService,
	accountSvc exchange.AccountService, recordRepo repo.RebalanceRepo, specs ...rule.TradeSpec) schedule.Task {
	if len(specs) == 0 {
		specs = []rule.TradeSpec{rule.NewMinimumOrderRule()}
	}
	return &Task{
		strategy:   strategy,
		rebalancer: NewRebalancerFromStrategy(strategy),
		rulesSvc:   rulesSvc,
		marketSvc:  marketSvc,
		accountSvc: accountSvc,
		recordRepo: recordRepo,
		specs:      specs,
	}
}

func (t *Task) Run(ctx context.Context) error {
	symbols := lo.Map(t.strategy.Allocations, func(a Allocation, _ int) market.Symbol {
		return a.Symbol
	})
	assets := lo.Map(symbols, func(s market.Symbol, _ int) string {
		return s.Base()
	})

	prices, err := t.marketSvc.GetPrices(ctx, symbols)
	if err != nil {
		return fmt.Errorf("fetch prices: %w", err)
	}
	holdings, err := t.accountSvc.GetHoldings(ctx, assets)
	if err != nil {
		return fmt.Errorf("fetch holdings: %w", err)
	}

	instructions := t.rebalancer.CalculateRebalance(holdings, prices)
	if len(instructions) == 0 {
		slog.Info("portfolio within threshold, no trades needed")
		return nil
	}

	symbolByBase := lo.SliceToMap(symbols, func(s market.Symbol) (string, market.Symbol) {
		return s.Base(), s
	})

	for _, ins := range instructions {
		symbol := symbolByBase[ins.Asset]
		rules, err := t.rulesSvc.GetRules(ctx, symbol)
		if err != nil {
			return fmt.Errorf("fetch rules for %s: %w", symbol, err)
		}

		candidate := market.TradeCandidate{
			Symbol: symbol,
			Amount: ins.Amount,
			Price:  prices[ins.Asset],
		}
		res := rule.Chain(candidate, rules, t.specs...)

		status := entity.RebalanceStatusAccepted
		if res.Valid {
			slog.Info("rebalance instruction",
				"symbol", symbol.String(), "side", ins.Side,
				"amount", ins.Amount.String(), "value_usd", ins.ValueUSD.String(),
				"drift_pct", ins.DriftPct.String())
		} else {
			status = entity.RebalanceStatusRejected
			slog.Warn("rebalance instruction rejected",
				"symbol", symbol.String(), "side", ins.Side,
				"amount", ins.Amount.String(), "reason", res.Reason)
		}

		if t.recordRepo != nil {
			record := entity.RebalanceRecord{
				BaseSymbol:  symbol.Base(),
				QuoteSymbol: symbol.Quote(),
				Side:        string(ins.Side),
				Amount:      ins.Amount.String(),
				ValueUsd:    ins.ValueUSD.String(),
				DriftPct:    ins.DriftPct.String(),
				Status:      status,
				Reason:      res.Reason,
			}
			if _, err := t.recordRepo.Create(ctx, record); err != nil {
				return fmt.Errorf("save rebalance record: %w", err)
			}
		}
	}
	return nil
}

func (t *Task) Name() string {
	return "portfolio rebalance task"
}
