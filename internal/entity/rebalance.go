package entity

import (
	"time"
)

// RebalanceRecord 一条调仓决策记录
// 数值以字符串保存精确值, 避免浮点列的精度损失
type RebalanceRecord struct {
	Id          int64  `gorm:"primaryKey;autoIncrement"`
	BaseSymbol  string `gorm:"index"`
	QuoteSymbol string `gorm:"index"`
	Side        string
	Amount      string
	ValueUsd    string
	DriftPct    string
	Status      int `gorm:"index"` // 0:待执行, 1:通过校验, 2:被规则拒绝
	Reason      string
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

const (
	RebalanceStatusPlanned  = 0
	RebalanceStatusAccepted = 1
	RebalanceStatusRejected = 2
)
