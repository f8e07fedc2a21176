package entity

import (
	"time"
)

// SymbolPrecision 交易对精度, 空字符串表示未配置
type SymbolPrecision struct {
	Id          int64  `gorm:"primaryKey"`
	Symbol      string `gorm:"uniqueIndex"`
	StepSize    string
	TickSize    string
	MinNotional string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
