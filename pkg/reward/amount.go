package reward

import (
	"github.com/shopspring/decimal"
)

// DisplayText 渲染金额用的文字，不影响序列行为
type DisplayText struct {
	Currency string // 货币符号，如 "$"
	Label    string // 金额下方的标签，为空时使用默认 "REWARD"
}

// FormatAmount 把金额格式化为 "货币符号+数字"，如 "$50"、"$12.5"
func FormatAmount(amount decimal.Decimal, text DisplayText) string {
	return text.Currency + amount.String()
}

// ParseAmount 解析命令行等来源的金额字符串
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
