package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"

	"stock_analysis/internal/feature/analysis/domain/entity"
	analysishandler "stock_analysis/internal/feature/analysis/transport/handler"
	"stock_analysis/internal/feature/popularstocks/adapters"
	stockhandler "stock_analysis/internal/feature/popularstocks/transport/handler"
	stockusecase "stock_analysis/internal/feature/popularstocks/usecase"
	"stock_analysis/internal/shared/apperror"
)

// stubAnalysisUsecase は常に失敗を返すAnalysisUsecaseのスタブです。
type stubAnalysisUsecase struct{}

func (stubAnalysisUsecase) UploadImage(ctx context.Context, data []byte, contentType string) (*entity.EncodedImage, error) {
	return nil, apperror.New(apperror.KindEmptyPayload, "empty")
}

func (stubAnalysisUsecase) Analyze(ctx context.Context, req entity.AnalysisRequest) (*entity.AnalysisReport, error) {
	return nil, errors.New("not used")
}

func (stubAnalysisUsecase) AnalyzeLegacy(ctx context.Context, req entity.LegacyAnalysisRequest) (*entity.AnalysisReport, error) {
	return nil, apperror.Wrap(apperror.KindProvidersExhausted, "all keys failed", apperror.New(apperror.KindRateLimited, "429"))
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "stock_analysis_test_total", Help: "test"}))

	stocks := stockhandler.NewStockHandler(stockusecase.NewStockUsecase(adapters.NewStaticStockRepository()))
	analysis := analysishandler.NewAnalysisHandler(stubAnalysisUsecase{})
	return NewRouter(analysis, stocks, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	w := serve(newTestRouter(t), httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"active","message":"Stock Analysis API is running"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRouter_PopularStocks(t *testing.T) {
	t.Parallel()

	w := serve(newTestRouter(t), httptest.NewRequest(http.MethodGet, "/api/popular-stocks", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	expected := `{"popular_stocks":[
		{"symbol":"AAPL","exchange":"NASDAQ","name":"Apple Inc."},
		{"symbol":"GOOGL","exchange":"NASDAQ","name":"Alphabet Inc."},
		{"symbol":"MSFT","exchange":"NASDAQ","name":"Microsoft Corporation"},
		{"symbol":"TSLA","exchange":"NASDAQ","name":"Tesla Inc."},
		{"symbol":"AMZN","exchange":"NASDAQ","name":"Amazon.com Inc."},
		{"symbol":"TCS","exchange":"NSE","name":"Tata Consultancy Services"},
		{"symbol":"RELIANCE","exchange":"NSE","name":"Reliance Industries"},
		{"symbol":"INFY","exchange":"NSE","name":"Infosys Limited"}
	]}`
	assert.JSONEq(t, expected, w.Body.String())
}

func TestRouter_LegacyExhaustedIs503(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-stock-legacy", strings.NewReader(`{"symbol":"aapl","exchange":"nasdaq"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(newTestRouter(t), req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"⏳ Too many requests. Please wait a moment and try again."}`, w.Body.String())
}

func TestRouter_RequestIDPropagated(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := serve(newTestRouter(t), req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze-stock", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	w := serve(newTestRouter(t), req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestRouter_CORSSimpleRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/popular-stocks", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := serve(newTestRouter(t), req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RecoveryReturnsGenericError(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	r.GET("/api/boom", func(c *gin.Context) { panic("secret internal detail") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"⚠️ Something went wrong during analysis. Please try again or contact support."}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	w := serve(newTestRouter(t), httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "stock_analysis_test_total")
}

func TestRouter_NoMetricsHandler(t *testing.T) {
	t.Parallel()

	stocks := stockhandler.NewStockHandler(stockusecase.NewStockUsecase(adapters.NewStaticStockRepository()))
	r := NewRouter(analysishandler.NewAnalysisHandler(stubAnalysisUsecase{}), stocks, nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
