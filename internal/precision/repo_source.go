package precision

import (
	"context"
	"fmt"

	"github.com/KNICEX/symbol-precision/internal/entity"
	"github.com/KNICEX/symbol-precision/internal/repo"
	"github.com/samber/lo"
)

var _ Source = (*RepoSource)(nil)

// RepoSource 从数据库读取精度表
type RepoSource struct {
	repo repo.SymbolPrecisionRepo
}

func NewRepoSource(r repo.SymbolPrecisionRepo) *RepoSource {
	return &RepoSource{repo: r}
}

func (s *RepoSource) Name() string {
	return "sqlite"
}

func (s *RepoSource) Load(ctx context.Context) (Table, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return Table{}, fmt.Errorf("%w: %w", ErrSourceCorrupt, err)
	}
	if len(rows) == 0 {
		return Table{}, fmt.Errorf("%w: no symbol precision rows", ErrSourceNotFound)
	}
	return NewTable(lo.SliceToMap(rows, func(row entity.SymbolPrecision) (string, Entry) {
		return row.Symbol, entryFromRow(row)
	})), nil
}

// SaveTable 将精度表按解析后的增量写入数据库, 格式错误的字段留空
func SaveTable(ctx context.Context, r repo.SymbolPrecisionRepo, table Table) error {
	rows := lo.Map(table.Symbols(), func(symbol string, _ int) entity.SymbolPrecision {
		return rowFromEntry(symbol, table.entry(symbol))
	})
	return r.Upsert(ctx, rows)
}

func entryFromRow(row entity.SymbolPrecision) Entry {
	e := Entry{}
	if row.StepSize != "" {
		e[KeyStepSize] = NewValue(row.StepSize)
	}
	if row.TickSize != "" {
		e[KeyTickSize] = NewValue(row.TickSize)
	}
	if row.MinNotional != "" {
		e[KeyMinNotional] = NewValue(row.MinNotional)
	}
	return e
}

func rowFromEntry(symbol string, e Entry) entity.SymbolPrecision {
	resolved := func(f field) string {
		d, found, err := f.resolve(e)
		if !found || err != nil {
			return ""
		}
		return d.String()
	}
	return entity.SymbolPrecision{
		Symbol:      symbol,
		StepSize:    resolved(stepSizeField),
		TickSize:    resolved(tickSizeField),
		MinNotional: resolved(minNotionalField),
	}
}
