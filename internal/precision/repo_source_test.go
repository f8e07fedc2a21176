package precision

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/KNICEX/symbol-precision/internal/entity"
	"github.com/KNICEX/symbol-precision/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type MockSymbolPrecisionRepo struct {
	mock.Mock
}

func (m *MockSymbolPrecisionRepo) FindAll(ctx context.Context) ([]entity.SymbolPrecision, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.SymbolPrecision), args.Error(1)
}

func (m *MockSymbolPrecisionRepo) FindBySymbol(ctx context.Context, symbol string) (entity.SymbolPrecision, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).(entity.SymbolPrecision), args.Error(1)
}

func (m *MockSymbolPrecisionRepo) Upsert(ctx context.Context, precisions []entity.SymbolPrecision) error {
	args := m.Called(ctx, precisions)
	return args.Error(0)
}

func TestRepoSource_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("查询失败", func(t *testing.T) {
		r := new(MockSymbolPrecisionRepo)
		r.On("FindAll", ctx).Return([]entity.SymbolPrecision(nil), errors.New("disk I/O error"))

		_, err := NewRepoSource(r).Load(ctx)
		assert.ErrorIs(t, err, ErrSourceCorrupt)
		r.AssertExpectations(t)
	})

	t.Run("没有数据", func(t *testing.T) {
		r := new(MockSymbolPrecisionRepo)
		r.On("FindAll", ctx).Return([]entity.SymbolPrecision{}, nil)

		_, err := NewRepoSource(r).Load(ctx)
		assert.ErrorIs(t, err, ErrSourceNotFound)
	})
}

func TestRepoSource_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repo.InitTables(db))
	r := repo.NewSymbolPrecisionRepo(db)

	table := NewTable(map[string]Entry{
		"BTCUSDT": {KeyStepSize: NewValue("0.001"), KeyTickSize: NewValue("0.01"), KeyMinNotional: NewValue("10")},
		// 别名和小数位数会被解析成增量
		"SOLUSDT": {KeyQtyPrecision: NewValue("1"), KeyPricePrecision: NewValue("3"), KeyMinNotionalSnake: NewValue("5")},
		// 格式错误的字段不写入
		"BADUSDT": {KeyStepSize: NewValue("x")},
	})
	require.NoError(t, SaveTable(ctx, r, table))

	sol, err := r.FindBySymbol(ctx, "SOLUSDT")
	require.NoError(t, err)
	assert.Equal(t, "0.1", sol.StepSize)
	assert.Equal(t, "0.001", sol.TickSize)
	assert.Equal(t, "5", sol.MinNotional)

	n := Open(ctx, NewRepoSource(r), nil)
	assert.Equal(t, []string{"BADUSDT", "BTCUSDT", "SOLUSDT"}, n.Table().Symbols())
	assertDecimal(t, "0.001", n.StepSize("BTCUSDT"))
	assertDecimal(t, "0.01", n.TickSize("BTCUSDT"))
	assertDecimal(t, "10", n.MinNotional("BTCUSDT"))
	assertDecimal(t, "0.1", n.StepSize("SOLUSDT"))
	assertDecimal(t, "0.00000001", n.StepSize("BADUSDT"))

	assertDecimal(t, "0.001", n.TrimQuantity("BTCUSDT", some("0.0005"), some("50000")))
}
