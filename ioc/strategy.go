package ioc

import (
	"fmt"
	"time"

	"github.com/harikrishna2005/bot-launcher/internal/service/market"
	"github.com/harikrishna2005/bot-launcher/internal/service/rebalance"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// InitStrategy 从配置加载目标持仓
// 交易对非法属于配置错误, 直接 panic 拒绝启动
func InitStrategy() rebalance.Strategy {
	type Target struct {
		Symbol string  `mapstructure:"symbol"`
		Weight float64 `mapstructure:"weight"`
	}
	type Config struct {
		Targets     []Target `mapstructure:"targets"`
		Threshold   float64  `mapstructure:"threshold"`
		MinTradeUsd float64  `mapstructure:"min_trade_usd"`
		IntervalSec int      `mapstructure:"interval_sec"`
	}

	var cfg Config
	if err := viper.UnmarshalKey("rebalance", &cfg); err != nil {
		panic(err)
	}
	if len(cfg.Targets) == 0 {
		panic("no rebalance targets configured")
	}
	if cfg.IntervalSec <= 0 {
		cfg.IntervalSec = 60
	}

	allocations := make([]rebalance.Allocation, 0, len(cfg.Targets))
	for _, t := range cfg.Targets {
		symbol, err := market.ParseSymbol(t.Symbol)
		if err != nil {
			panic(fmt.Errorf("invalid target symbol %q: %w", t.Symbol, err))
		}
		allocations = append(allocations, rebalance.Allocation{
			Symbol: symbol,
			Weight: decimal.NewFromFloat(t.Weight),
		})
	}

	return rebalance.Strategy{
		Allocations: allocations,
		Threshold:   decimal.NewFromFloat(cfg.Threshold),
		MinTradeUSD: decimal.NewFromFloat(cfg.MinTradeUsd),
		Interval:    time.Duration(cfg.IntervalSec) * time.Second,
	}
}
