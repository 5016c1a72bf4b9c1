package rule

import (
	"context"

	"github.com/harikrishna2005/bot-launcher/internal/service/market"
)

// Result 规则校验结果
// Valid 为 false 时 Reason 说明拒绝原因, 拒绝是可恢复的, 由调用方改单/跳过
type Result struct {
	Valid  bool
	Reason string
}

// OK 校验通过
func OK() Result {
	return Result{Valid: true}
}

// Reject 校验失败
func Reject(reason string) Result {
	return Result{Reason: reason}
}

// TradeSpec 订单业务规则
// 实现必须无状态, 可被任意 goroutine 并发调用
type TradeSpec interface {
	Validate(candidate market.TradeCandidate, rules market.Rules) Result
}

// Chain 依次执行规则, 第一个失败立即返回
func Chain(candidate market.TradeCandidate, rules market.Rules, specs ...TradeSpec) Result {
	for _, spec := range specs {
		if res := spec.Validate(candidate, rules); !res.Valid {
			return res
		}
	}
	return OK()
}

// ConnectivitySpec 资源可达性规则(API/容器/DB)
type ConnectivitySpec interface {
	Satisfied(ctx context.Context) Result
}
