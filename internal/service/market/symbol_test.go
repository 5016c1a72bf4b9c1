package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSymbolNormalization(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "下划线转斜杠并大写",
			input: "btc_usdt",
			want:  "BTC/USDT",
		},
		{
			name:  "连字符转斜杠",
			input: "ETH-BTC",
			want:  "ETH/BTC",
		},
		{
			name:  "小写转大写",
			input: "sol/usdc",
			want:  "SOL/USDC",
		},
		{
			name:  "去除首尾空白",
			input: "  btc/usdt  ",
			want:  "BTC/USDT",
		},
		{
			name:  "空格作为分隔符",
			input: "btc usdt",
			want:  "BTC/USDT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseSymbol(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.String())
		})
	}
}

func TestParseSymbolInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "空字符串",
			input: "",
		},
		{
			name:  "没有分隔符",
			input: "BTCUSDT",
		},
		{
			name:  "缺少计价币",
			input: "BTC/",
		},
		{
			name:  "缺少基础币",
			input: "/USDT",
		},
		{
			name:  "超过两个部分",
			input: "BTC/USDT/EXTRA",
		},
		{
			name:  "只有分隔符",
			input: "_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSymbol(tt.input)
			assert.ErrorIs(t, err, ErrInvalidSymbolFormat)
		})
	}
}

func TestSymbolBaseAndQuote(t *testing.T) {
	s := MustParseSymbol("BTC/USDT")
	assert.Equal(t, "BTC", s.Base())
	assert.Equal(t, "USDT", s.Quote())
}

func TestSymbolWithSeparator(t *testing.T) {
	s := MustParseSymbol("BTC/USDT")
	assert.Equal(t, "BTC_USDT", s.WithSeparator("_"))
	assert.Equal(t, "BTC-USDT", s.WithSeparator("-"))
	assert.Equal(t, "BTCUSDT", s.WithSeparator(""))
}

// TestParseSymbolIdempotent 规范化结果再次解析必须得到相同的值
func TestParseSymbolIdempotent(t *testing.T) {
	for _, raw := range []string{"btc_usdt", "ETH-BTC", "sol/usdc", "  paxg_usdt "} {
		first, err := ParseSymbol(raw)
		require.NoError(t, err)
		second, err := ParseSymbol(first.String())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

// TestSymbolAsMapKey 规范化相同的输入是同一个 map 键
func TestSymbolAsMapKey(t *testing.T) {
	weights := map[Symbol]float64{
		MustParseSymbol("btc_usdt"): 0.5,
	}
	weights[MustParseSymbol("BTC/USDT")] = 0.6

	require.Len(t, weights, 1)
	assert.Equal(t, 0.6, weights[MustParseSymbol("btc-usdt")])
}
