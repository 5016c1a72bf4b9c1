package rebalance

import (
	"context"
	"testing"
	"time"

	"github.com/harikrishna2005/bot-launcher/internal/entity"
	"github.com/harikrishna2005/bot-launcher/internal/service/market"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试用的内存版交易所服务

type fakeExchange struct {
	prices   map[string]decimal.Decimal
	holdings map[string]decimal.Decimal
	rules    map[market.Symbol]market.Rules
}

func (f *fakeExchange) GetPrices(ctx context.Context, symbols []market.Symbol) (map[string]decimal.Decimal, error) {
	return f.prices, nil
}

func (f *fakeExchange) GetHoldings(ctx context.Context, assets []string) (map[string]decimal.Decimal, error) {
	return f.holdings, nil
}

func (f *fakeExchange) GetRules(ctx context.Context, symbol market.Symbol) (market.Rules, error) {
	return f.rules[symbol], nil
}

type memoryRepo struct {
	records []entity.RebalanceRecord
}

func (r *memoryRepo) Create(ctx context.Context, record entity.RebalanceRecord) (int64, error) {
	r.records = append(r.records, record)
	return int64(len(r.records)), nil
}

func (r *memoryRepo) UpdateStatus(ctx context.Context, id int64, status int) error {
	r.records[id-1].Status = status
	return nil
}

func (r *memoryRepo) FindByStatus(ctx context.Context, status int) ([]entity.RebalanceRecord, error) {
	var res []entity.RebalanceRecord
	for _, record := range r.records {
		if record.Status == status {
			res = append(res, record)
		}
	}
	return res, nil
}

func testStrategy(t *testing.T) Strategy {
	t.Helper()
	return Strategy{
		Allocations: []Allocation{
			{Symbol: mustSymbol(t, "btc_usdt"), Weight: decimal.NewFromFloat(0.5)},
			{Symbol: mustSymbol(t, "eth_usdt"), Weight: decimal.NewFromFloat(0.5)},
		},
		Threshold:   decimal.NewFromFloat(0.01),
		MinTradeUSD: decimal.NewFromInt(10),
		Interval:    time.Minute,
	}
}

func testExchange(t *testing.T, strategy Strategy, minQty float64) *fakeExchange {
	t.Helper()
	rules := make(map[market.Symbol]market.Rules, len(strategy.Allocations))
	for _, a := range strategy.Allocations {
		r, err := market.NewRules(a.Symbol,
			decimal.NewFromInt(10), decimal.NewFromFloat(minQty),
			decimal.NewFromInt(2), decimal.NewFromInt(4))
		require.NoError(t, err)
		rules[a.Symbol] = r
	}
	return &fakeExchange{
		prices: map[string]decimal.Decimal{
			"BTC": decimal.NewFromInt(30000),
			"ETH": decimal.NewFromInt(10000),
		},
		holdings: map[string]decimal.Decimal{
			"BTC": decimal.NewFromInt(1),
			"ETH": decimal.NewFromInt(1),
		},
		rules: rules,
	}
}

func TestTaskRunRecordsInstructions(t *testing.T) {
	strategy := testStrategy(t)
	fake := testExchange(t, strategy, 0.0001)
	store := &memoryRepo{}

	task := NewTask(strategy, fake, fake, fake, store)
	require.NoError(t, task.Run(context.Background()))

	require.Len(t, store.records, 2)

	sell := store.records[0]
	assert.Equal(t, "BTC", sell.BaseSymbol)
	assert.Equal(t, "USDT", sell.QuoteSymbol)
	assert.Equal(t, string(SideSell), sell.Side)
	assert.Equal(t, entity.RebalanceStatusAccepted, sell.Status)
	assert.Empty(t, sell.Reason)

	buy := store.records[1]
	assert.Equal(t, "ETH", buy.BaseSymbol)
	assert.Equal(t, string(SideBuy), buy.Side)
	assert.Equal(t, entity.RebalanceStatusAccepted, buy.Status)
}

// TestTaskRunRejectsUndersizedInstruction 指令未达到交易所最小数量时标记拒绝
func TestTaskRunRejectsUndersizedInstruction(t *testing.T) {
	strategy := testStrategy(t)
	// BTC 指令数量约 0.333, ETH 约 1, 把最小数量抬高到 0.5 只拒绝 BTC
	fake := testExchange(t, strategy, 0.5)
	store := &memoryRepo{}

	task := NewTask(strategy, fake, fake, fake, store)
	require.NoError(t, task.Run(context.Background()))

	require.Len(t, store.records, 2)
	assert.Equal(t, entity.RebalanceStatusRejected, store.records[0].Status)
	assert.Contains(t, store.records[0].Reason, "quantity")
	assert.Equal(t, entity.RebalanceStatusAccepted, store.records[1].Status)
}

// TestTaskRunBalancedPortfolio 已平衡的组合不产生记录
func TestTaskRunBalancedPortfolio(t *testing.T) {
	strategy := testStrategy(t)
	fake := testExchange(t, strategy, 0.0001)
	fake.prices["ETH"] = decimal.NewFromInt(30000)
	store := &memoryRepo{}

	task := NewTask(strategy, fake, fake, fake, store)
	require.NoError(t, task.Run(context.Background()))
	assert.Empty(t, store.records)
}

// TestTaskRunWithoutRepo 不落库也能运行
func TestTaskRunWithoutRepo(t *testing.T) {
	strategy := testStrategy(t)
	fake := testExchange(t, strategy, 0.0001)

	task := NewTask(strategy, fake, fake, fake, nil)
	assert.NoError(t, task.Run(context.Background()))
}
