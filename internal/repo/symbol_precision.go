package repo

import (
	"context"

	"github.com/KNICEX/symbol-precision/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SymbolPrecisionRepo interface {
	FindAll(ctx context.Context) ([]entity.SymbolPrecision, error)
	FindBySymbol(ctx context.Context, symbol string) (entity.SymbolPrecision, error)
	// Upsert 按 symbol 插入或覆盖
	Upsert(ctx context.Context, precisions []entity.SymbolPrecision) error
}

type symbolPrecisionRepo struct {
	db *gorm.DB
}

func NewSymbolPrecisionRepo(db *gorm.DB) SymbolPrecisionRepo {
	return &symbolPrecisionRepo{
		db: db,
	}
}

func (repo *symbolPrecisionRepo) FindAll(ctx context.Context) ([]entity.SymbolPrecision, error) {
	var precisions []entity.SymbolPrecision
	err := repo.db.WithContext(ctx).Order("symbol").Find(&precisions).Error
	if err != nil {
		return nil, err
	}
	return precisions, nil
}

func (repo *symbolPrecisionRepo) FindBySymbol(ctx context.Context, symbol string) (entity.SymbolPrecision, error) {
	var precision entity.SymbolPrecision
	err := repo.db.WithContext(ctx).Where("symbol = ?", symbol).First(&precision).Error
	if err != nil {
		return entity.SymbolPrecision{}, err
	}
	return precision, nil
}

func (repo *symbolPrecisionRepo) Upsert(ctx context.Context, precisions []entity.SymbolPrecision) error {
	if len(precisions) == 0 {
		return nil
	}
	return repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"step_size", "tick_size", "min_notional", "updated_at"}),
	}).CreateInBatches(&precisions, 500).Error
}
