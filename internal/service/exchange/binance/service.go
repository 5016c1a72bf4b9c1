package binance

import (
	"context"
	"errors"
	"fmt"

	"github.com/adshao/go-binance/v2"
	"github.com/harikrishna2005/bot-launcher/internal/service/exchange"
	"github.com/harikrishna2005/bot-launcher/internal/service/market"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var (
	_ exchange.RulesService      = (*Service)(nil)
	_ exchange.MarketDataService = (*Service)(nil)
	_ exchange.AccountService    = (*Service)(nil)
)

// ErrSymbolNotFound 交易所没有这个交易对
var ErrSymbolNotFound = errors.New("symbol not found")

// Service 基于币安现货 API 的元数据/行情/账户服务
type Service struct {
	cli *binance.Client
}

func NewService(cli *binance.Client) *Service {
	return &Service{cli: cli}
}

// GetRules 从 exchangeInfo 的过滤器中提取交易约束
// PRICE_FILTER.tickSize -> 价格精度, LOT_SIZE.stepSize/minQty -> 数量精度, NOTIONAL.minNotional -> 最小金额
func (svc *Service) GetRules(ctx context.Context, symbol market.Symbol) (market.Rules, error) {
	pair := symbol.WithSeparator("")
	info, err := svc.cli.NewExchangeInfoService().Symbol(pair).Do(ctx)
	if err != nil {
		return market.Rules{}, fmt.Errorf("fetch exchange info for %s: %w", symbol, err)
	}

	for _, s := range info.Symbols {
		if s.Symbol == pair {
			return rulesFromSymbolInfo(symbol, s)
		}
	}
	return market.Rules{}, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
}

func rulesFromSymbolInfo(symbol market.Symbol, s binance.Symbol) (market.Rules, error) {
	minCost := decimal.Zero
	minQty := decimal.Zero

	// 没有对应过滤器时退回到交易对自身的小数位数
	pricePrecision := decimal.NewFromInt(int64(s.QuotePrecision))
	qtyPrecision := decimal.NewFromInt(int64(s.BaseAssetPrecision))

	if f := s.PriceFilter(); f != nil {
		tick, err := decimal.NewFromString(f.TickSize)
		if err != nil {
			return market.Rules{}, fmt.Errorf("parse tick size %q: %w", f.TickSize, err)
		}
		pricePrecision = tickToPrecision(tick)
	}
	if f := s.LotSizeFilter(); f != nil {
		step, err := decimal.NewFromString(f.StepSize)
		if err != nil {
			return market.Rules{}, fmt.Errorf("parse step size %q: %w", f.StepSize, err)
		}
		qtyPrecision = tickToPrecision(step)

		minQty, err = decimal.NewFromString(f.MinQuantity)
		if err != nil {
			return market.Rules{}, fmt.Errorf("parse min qty %q: %w", f.MinQuantity, err)
		}
	}
	if f := s.NotionalFilter(); f != nil {
		var err error
		minCost, err = decimal.NewFromString(f.MinNotional)
		if err != nil {
			return market.Rules{}, fmt.Errorf("parse min notional %q: %w", f.MinNotional, err)
		}
	}

	return market.NewRules(symbol, minCost, minQty, pricePrecision, qtyPrecision)
}

// tickToPrecision 把币安过滤器的步进映射为精度输入
// tickSize >= 1 意味着价格/数量必须是整数, 对应 0 位小数
func tickToPrecision(tick decimal.Decimal) decimal.Decimal {
	if tick.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Zero
	}
	return tick
}

// GetPrices 批量获取现价, 返回以基础币为键的价格表
func (svc *Service) GetPrices(ctx context.Context, symbols []market.Symbol) (map[string]decimal.Decimal, error) {
	pairs := lo.Map(symbols, func(s market.Symbol, _ int) string {
		return s.WithSeparator("")
	})
	prices, err := svc.cli.NewListPricesService().Symbols(pairs).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch prices: %w", err)
	}

	byPair := lo.SliceToMap(prices, func(p *binance.SymbolPrice) (string, string) {
		return p.Symbol, p.Price
	})

	res := make(map[string]decimal.Decimal, len(symbols))
	for _, s := range symbols {
		raw, ok := byPair[s.WithSeparator("")]
		if !ok {
			continue
		}
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("parse price %q for %s: %w", raw, s, err)
		}
		res[s.Base()] = price
	}
	return res, nil
}

// GetHoldings 获取现货账户中指定资产的可用余额
func (svc *Service) GetHoldings(ctx context.Context, assets []string) (map[string]decimal.Decimal, error) {
	account, err := svc.cli.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch account: %w", err)
	}

	want := lo.SliceToMap(assets, func(a string) (string, struct{}) {
		return a, struct{}{}
	})

	res := make(map[string]decimal.Decimal, len(assets))
	for _, b := range account.Balances {
		if _, ok := want[b.Asset]; !ok {
			continue
		}
		free, err := decimal.NewFromString(b.Free)
		if err != nil {
			return nil, fmt.Errorf("parse balance %q for %s: %w", b.Free, b.Asset, err)
		}
		res[b.Asset] = free
	}
	return res, nil
}
