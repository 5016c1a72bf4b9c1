package market

import (
	"errors"
	"fmt"
	"strings"
)

// Separator 规范交易对的分隔符
const Separator = "/"

// ErrInvalidSymbolFormat 原始字符串无法规范化为 BASE/QUOTE 形式
var ErrInvalidSymbolFormat = errors.New("invalid symbol format")

var separatorReplacer = strings.NewReplacer("_", Separator, "-", Separator, " ", Separator)

// Symbol 规范化后的交易对, 形如 BTC/USDT
// 不可变值对象, 零值不合法, 必须通过 ParseSymbol 构造
// 相等性以规范化后的字符串为准, 可直接作为 map 键
type Symbol struct {
	s string
}

// ParseSymbol 把原始交易对字符串规范化为 BASE/QUOTE 形式
// 支持 btc_usdt / ETH-BTC / sol usdc 等写法
// 规范化后不是恰好两个非空部分时返回 ErrInvalidSymbolFormat
func ParseSymbol(raw string) (Symbol, error) {
	normalized := separatorReplacer.Replace(strings.TrimSpace(raw))
	normalized = strings.ToUpper(normalized)

	base, quote, found := strings.Cut(normalized, Separator)
	if !found || base == "" || quote == "" || strings.Contains(quote, Separator) {
		return Symbol{}, fmt.Errorf("%w: %q", ErrInvalidSymbolFormat, raw)
	}
	return Symbol{s: normalized}, nil
}

// MustParseSymbol 解析失败时 panic, 仅用于初始化期
func MustParseSymbol(raw string) Symbol {
	s, err := ParseSymbol(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Base 基础币, 如 BTC/USDT 中的 BTC
func (s Symbol) Base() string {
	base, _, _ := strings.Cut(s.s, Separator)
	return base
}

// Quote 计价币, 如 BTC/USDT 中的 USDT
func (s Symbol) Quote() string {
	_, quote, _ := strings.Cut(s.s, Separator)
	return quote
}

func (s Symbol) String() string {
	return s.s
}

// WithSeparator 以指定分隔符重新拼接, 不做二次校验
// 币安等交易所 API 使用空分隔符的 BTCUSDT 格式
func (s Symbol) WithSeparator(sep string) string {
	return s.Base() + sep + s.Quote()
}

// IsZero 是否为未初始化的零值
func (s Symbol) IsZero() bool {
	return s.s == ""
}
