package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_analysis/internal/feature/popularstocks/domain/entity"
	"stock_analysis/internal/feature/popularstocks/usecase"
)

// stockGorm はStockRepositoryインターフェースのgorm実装です（PostgreSQL / SQLite）。
type stockGorm struct {
	db *gorm.DB
}

var _ usecase.StockRepository = (*stockGorm)(nil)

// NewStockRepository は指定されたDB接続でstockGormリポジトリの新しいインスタンスを生成します。
func NewStockRepository(db *gorm.DB) *stockGorm {
	return &stockGorm{db: db}
}

// ListActive はsort_key順にすべてのアクティブな銘柄を返します。
func (r *stockGorm) ListActive(ctx context.Context) ([]entity.PopularStock, error) {
	var stocks []entity.PopularStock
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// Seed は組み込みリストを投入します。既存の (symbol, exchange) は上書きしません。
func (r *stockGorm) Seed(ctx context.Context, stocks []entity.PopularStock) error {
	if len(stocks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}, {Name: "exchange"}},
			DoNothing: true,
		}).
		Create(&stocks).Error
}
