// Package entity defines the domain models for the popularstocks feature.
package entity

import "time"

// PopularStock is a ticker offered to clients for quick analysis.
type PopularStock struct {
	ID        uint      `gorm:"primaryKey"`
	Symbol    string    `gorm:"size:20;not null;uniqueIndex:idx_symbol_exchange"`
	Exchange  string    `gorm:"size:50;not null;uniqueIndex:idx_symbol_exchange"`
	Name      string    `gorm:"size:255;not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	SortKey   int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// DefaultCatalog returns the built-in list in display order.
func DefaultCatalog() []PopularStock {
	return []PopularStock{
		{Symbol: "AAPL", Exchange: "NASDAQ", Name: "Apple Inc.", IsActive: true, SortKey: 1},
		{Symbol: "GOOGL", Exchange: "NASDAQ", Name: "Alphabet Inc.", IsActive: true, SortKey: 2},
		{Symbol: "MSFT", Exchange: "NASDAQ", Name: "Microsoft Corporation", IsActive: true, SortKey: 3},
		{Symbol: "TSLA", Exchange: "NASDAQ", Name: "Tesla Inc.", IsActive: true, SortKey: 4},
		{Symbol: "AMZN", Exchange: "NASDAQ", Name: "Amazon.com Inc.", IsActive: true, SortKey: 5},
		{Symbol: "TCS", Exchange: "NSE", Name: "Tata Consultancy Services", IsActive: true, SortKey: 6},
		{Symbol: "RELIANCE", Exchange: "NSE", Name: "Reliance Industries", IsActive: true, SortKey: 7},
		{Symbol: "INFY", Exchange: "NSE", Name: "Infosys Limited", IsActive: true, SortKey: 8},
	}
}
