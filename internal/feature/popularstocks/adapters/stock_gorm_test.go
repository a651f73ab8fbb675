package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stock_analysis/internal/feature/popularstocks/domain/entity"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	// :memory: は接続ごとに別DBになるため1接続に固定する
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&entity.PopularStock{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedStock はテスト用の銘柄データをデータベースに作成します。
func seedStock(t *testing.T, db *gorm.DB, symbol, exchange, name string, sortKey int) *entity.PopularStock {
	t.Helper()

	s := &entity.PopularStock{Symbol: symbol, Exchange: exchange, Name: name, IsActive: true, SortKey: sortKey}
	require.NoError(t, db.Create(s).Error, "failed to seed stock")
	return s
}

// deactivate は銘柄を非アクティブにします。
// default:true のため、INSERT時の false はゼロ値として無視されます。
func deactivate(t *testing.T, db *gorm.DB, s *entity.PopularStock) {
	t.Helper()
	require.NoError(t, db.Model(s).Update("is_active", false).Error)
}

func symbols(stocks []entity.PopularStock) []string {
	out := make([]string, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, s.Symbol)
	}
	return out
}

func TestStockGorm_ListActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		setupFunc       func(t *testing.T, db *gorm.DB)
		expectedSymbols []string
	}{
		{
			name: "success: returns active stocks sorted by sort_key",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedStock(t, db, "MSFT", "NASDAQ", "Microsoft Corporation", 3)
				seedStock(t, db, "AAPL", "NASDAQ", "Apple Inc.", 1)
				seedStock(t, db, "TCS", "NSE", "Tata Consultancy Services", 2)
			},
			expectedSymbols: []string{"AAPL", "TCS", "MSFT"},
		},
		{
			name: "success: excludes inactive stocks",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedStock(t, db, "AAPL", "NASDAQ", "Apple Inc.", 1)
				deactivate(t, db, seedStock(t, db, "TSLA", "NASDAQ", "Tesla Inc.", 2))
				seedStock(t, db, "INFY", "NSE", "Infosys Limited", 3)
			},
			expectedSymbols: []string{"AAPL", "INFY"},
		},
		{
			name:            "success: returns empty list when no stocks",
			setupFunc:       func(t *testing.T, db *gorm.DB) {},
			expectedSymbols: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			tt.setupFunc(t, db)
			repo := NewStockRepository(db)

			stocks, err := repo.ListActive(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.expectedSymbols, symbols(stocks))
		})
	}
}

func TestStockGorm_Seed(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewStockRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Seed(ctx, entity.DefaultCatalog()))
	// 2回目は既存行と衝突しても失敗しない
	require.NoError(t, repo.Seed(ctx, entity.DefaultCatalog()))

	stocks, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "GOOGL", "MSFT", "TSLA", "AMZN", "TCS", "RELIANCE", "INFY"}, symbols(stocks))
	assert.Equal(t, "Reliance Industries", stocks[6].Name)
	assert.Equal(t, "NSE", stocks[6].Exchange)

	assert.NoError(t, repo.Seed(ctx, nil))
}

func TestStockGorm_ListActive_ClosedDB(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = NewStockRepository(db).ListActive(context.Background())
	assert.Error(t, err)
}

func TestStaticStockRepository_ListActive(t *testing.T) {
	t.Parallel()

	repo := NewStaticStockRepository()
	first, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 8)
	assert.Equal(t, "AAPL", first[0].Symbol)
	assert.Equal(t, "Apple Inc.", first[0].Name)
	assert.Equal(t, "INFY", first[7].Symbol)

	// 返り値を書き換えても内部状態に影響しない
	first[0].Symbol = "CHANGED"
	second, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AAPL", second[0].Symbol)
}
