package market

import "github.com/shopspring/decimal"

// TradeCandidate 待校验的订单意向, 每个决策周期临时创建, 不持久化
type TradeCandidate struct {
	Symbol Symbol
	Amount decimal.Decimal // 基础币数量, 校验时取绝对值
	Price  decimal.Decimal // 计价币单价
}
