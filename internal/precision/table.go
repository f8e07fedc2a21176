package precision

import (
	"maps"
	"sort"

	"github.com/samber/lo"
)

// Entry 单个交易对的精度元数据, 字段名 -> 原始值
type Entry map[string]Value

// Table 交易对 -> 精度元数据, 构造后只读
type Table struct {
	entries map[string]Entry
}

// NewTable 拷贝 entries 构建只读的精度表
func NewTable(entries map[string]Entry) Table {
	return Table{
		entries: lo.MapValues(entries, func(e Entry, _ string) Entry {
			return maps.Clone(e)
		}),
	}
}

// Lookup 返回交易对元数据的拷贝
func (t Table) Lookup(symbol string) (Entry, bool) {
	e, ok := t.entries[symbol]
	if !ok {
		return nil, false
	}
	return maps.Clone(e), true
}

func (t Table) Len() int {
	return len(t.entries)
}

// Symbols 按字典序返回所有交易对
func (t Table) Symbols() []string {
	symbols := lo.Keys(t.entries)
	sort.Strings(symbols)
	return symbols
}

func (t Table) entry(symbol string) Entry {
	return t.entries[symbol]
}
