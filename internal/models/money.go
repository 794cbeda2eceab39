package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

const moneyScale = 2

// Money 金额，始终按 2 位小数四舍五入存储与输出
// JSON 编码为字符串 "12.50"，解码兼容字符串与数字
type Money struct {
	decimal.Decimal
}

func roundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyScale)
}

func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: roundCents(amount)}
}

func NewMoneyFromString(raw string) (Money, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money %q: %w", raw, err)
	}
	return NewMoneyFromDecimal(d), nil
}

// MustMoney 解析失败时 panic，只用于常量和测试数据
func MustMoney(raw string) Money {
	m, err := NewMoneyFromString(raw)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) String() string {
	return roundCents(m.Decimal).StringFixed(moneyScale)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}
	parsed, err := NewMoneyFromString(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Money) Value() (driver.Value, error) {
	return roundCents(m.Decimal).Value()
}

func (m *Money) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	m.Decimal = roundCents(d)
	return nil
}

func (m Money) IsNegative() bool {
	return m.Decimal.IsNegative()
}
