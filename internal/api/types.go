// Package api defines the JSON request and response bodies of the HTTP API.
package api

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// UploadImageResponse is returned by POST /api/upload-image.
type UploadImageResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ImageData string `json:"image_data"`
	Filename  string `json:"filename"`
}

// AnalysisResponse is returned by both analysis endpoints.
// The legacy endpoint fills Analysis only and leaves the section fields empty.
type AnalysisResponse struct {
	Symbol              string `json:"symbol"`
	Exchange            string `json:"exchange"`
	ChartImage          string `json:"chart_image"`
	Analysis            string `json:"analysis"`
	FundamentalAnalysis string `json:"fundamental_analysis"`
	SentimentAnalysis   string `json:"sentiment_analysis"`
	TechnicalAnalysis   string `json:"technical_analysis"`
	Recommendations     string `json:"recommendations"`
	Timestamp           string `json:"timestamp"`
}

// LegacyAnalysisRequest is the JSON body of POST /api/analyze-stock-legacy.
type LegacyAnalysisRequest struct {
	Symbol    string  `json:"symbol" binding:"required"`
	Exchange  string  `json:"exchange" binding:"required"`
	ImageData *string `json:"image_data,omitempty"`
}

// PopularStock is one entry of the popular stocks catalog.
type PopularStock struct {
	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange"`
	Name     string `json:"name"`
}

// PopularStocksResponse is returned by GET /api/popular-stocks.
type PopularStocksResponse struct {
	PopularStocks []PopularStock `json:"popular_stocks"`
}
