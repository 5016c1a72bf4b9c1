package exchange

import (
	"context"

	"github.com/harikrishna2005/bot-launcher/internal/service/market"
	"github.com/shopspring/decimal"
)

// RulesService 从交易所元数据构造交易约束
// 约束随元数据快照整体替换, 调用方持有的旧快照继续有效
type RulesService interface {
	GetRules(ctx context.Context, symbol market.Symbol) (market.Rules, error)
}

// MarketDataService 获取现价
type MarketDataService interface {
	// GetPrices 批量获取现价, 返回以基础币为键的价格表, 查不到的交易对不在结果中
	GetPrices(ctx context.Context, symbols []market.Symbol) (map[string]decimal.Decimal, error)
}

// AccountService 获取现货持仓
type AccountService interface {
	// GetHoldings 返回指定资产的可用余额, 账户中没有的资产不在结果中
	GetHoldings(ctx context.Context, assets []string) (map[string]decimal.Decimal, error)
}
