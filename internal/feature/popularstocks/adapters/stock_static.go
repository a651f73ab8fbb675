// Package adapters はpopularstocksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"stock_analysis/internal/feature/popularstocks/domain/entity"
	"stock_analysis/internal/feature/popularstocks/usecase"
)

// staticStockRepository は組み込みの銘柄リストを返すリポジトリです。DBを設定しない場合に使います。
type staticStockRepository struct {
	stocks []entity.PopularStock
}

var _ usecase.StockRepository = (*staticStockRepository)(nil)

// NewStaticStockRepository は組み込みリストを返すリポジトリを生成します。
func NewStaticStockRepository() *staticStockRepository {
	return &staticStockRepository{stocks: entity.DefaultCatalog()}
}

// ListActive は呼び出し側が変更しても影響しないようにコピーを返します。
func (r *staticStockRepository) ListActive(_ context.Context) ([]entity.PopularStock, error) {
	out := make([]entity.PopularStock, len(r.stocks))
	copy(out, r.stocks)
	return out, nil
}
