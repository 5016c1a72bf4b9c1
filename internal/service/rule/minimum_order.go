package rule

import (
	"fmt"

	"github.com/harikrishna2005/bot-launcher/internal/service/market"
)

var _ TradeSpec = (*MinimumOrderRule)(nil)

// MinimumOrderRule 校验订单是否达到交易所的最小下单要求
// 数量和金额都按交易所的精度规整后再比较
type MinimumOrderRule struct{}

func NewMinimumOrderRule() *MinimumOrderRule {
	return &MinimumOrderRule{}
}

func (r *MinimumOrderRule) Validate(candidate market.TradeCandidate, rules market.Rules) Result {
	valid, reason := rules.IsValidTrade(candidate.Amount, candidate.Price)
	if !valid {
		return Reject(fmt.Sprintf("trade for %s rejected: %s", rules.Symbol, reason))
	}
	return OK()
}
