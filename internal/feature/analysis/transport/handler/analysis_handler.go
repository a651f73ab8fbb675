// Package handler はanalysisフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"stock_analysis/internal/api"
	"stock_analysis/internal/feature/analysis/domain/entity"
	"stock_analysis/internal/feature/analysis/usecase"
	"stock_analysis/internal/shared/apperror"
)

// UploadSuccessMessage はアップロード成功時のメッセージです。
const UploadSuccessMessage = "✅ Image uploaded successfully! Ready for analysis."

// AnalysisUsecase は分析ユースケースのインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AnalysisUsecase interface {
	UploadImage(ctx context.Context, data []byte, contentType string) (*entity.EncodedImage, error)
	Analyze(ctx context.Context, req entity.AnalysisRequest) (*entity.AnalysisReport, error)
	AnalyzeLegacy(ctx context.Context, req entity.LegacyAnalysisRequest) (*entity.AnalysisReport, error)
}

// AnalysisHandler は画像アップロードと株式分析のHTTPリクエストを処理します。
type AnalysisHandler struct {
	uc AnalysisUsecase
}

// NewAnalysisHandler はAnalysisHandlerの新しいインスタンスを生成します。
func NewAnalysisHandler(uc AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

// UploadImage はチャート画像を検証し、base64で返します。
//
// エンドポイント: POST /api/upload-image
// Content-Type: multipart/form-data
// フィールド: file（画像ファイル、最大10MB）
func (h *AnalysisHandler) UploadImage(c *gin.Context) {
	upload, err := readFormFile(c, "file")
	if err != nil {
		h.respondError(c, err)
		return
	}

	img, err := h.uc.UploadImage(c.Request.Context(), upload.data, upload.contentType)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.UploadImageResponse{
		Success:   true,
		Message:   UploadSuccessMessage,
		ImageData: img.Data,
		Filename:  upload.filename,
	})
}

// AnalyzeStock はアップロード画像を使って4セクションの分析を返します。
// セクション単位の失敗はプレースホルダーになり、ステータスは200のままです。
//
// エンドポイント: POST /api/analyze-stock
// Content-Type: multipart/form-data
// フィールド: symbol, exchange, image
func (h *AnalysisHandler) AnalyzeStock(c *gin.Context) {
	symbol := strings.TrimSpace(c.PostForm("symbol"))
	exchange := strings.TrimSpace(c.PostForm("exchange"))
	if symbol == "" || exchange == "" {
		h.respondError(c, apperror.New(apperror.KindInvalidRequest, "symbol and exchange are required"))
		return
	}

	upload, err := readFormFile(c, "image")
	if err != nil {
		h.respondError(c, err)
		return
	}

	report, err := h.uc.Analyze(c.Request.Context(), entity.AnalysisRequest{
		Symbol:      symbol,
		Exchange:    exchange,
		Image:       upload.data,
		ContentType: upload.contentType,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAnalysisResponse(report))
}

// AnalyzeStockLegacy は単一レポート形式の分析を返します（後方互換用）。
//
// エンドポイント: POST /api/analyze-stock-legacy
// Content-Type: application/json
func (h *AnalysisHandler) AnalyzeStockLegacy(c *gin.Context) {
	var req api.LegacyAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("レガシー分析リクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "symbol and exchange are required"})
		return
	}

	in := entity.LegacyAnalysisRequest{Symbol: req.Symbol, Exchange: req.Exchange}
	if req.ImageData != nil {
		in.ImageData = *req.ImageData
	}

	report, err := h.uc.AnalyzeLegacy(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAnalysisResponse(report))
}

// respondError はエラー種別からステータスコードとユーザー向けメッセージを決めて返します。
// 内部のエラー文字列はレスポンスに含めません。
func (h *AnalysisHandler) respondError(c *gin.Context, err error) {
	status := apperror.HTTPStatus(err)
	msg := apperror.Classify(err)
	if status >= http.StatusInternalServerError {
		slog.Error("分析リクエストに失敗", "status", status, "kind", apperror.KindOf(err), "error", err)
	} else {
		slog.Warn("分析リクエストを拒否", "status", status, "kind", apperror.KindOf(err), "error", err, "remote_addr", c.ClientIP())
	}
	c.JSON(status, api.ErrorResponse{Error: msg})
}

type formUpload struct {
	data        []byte
	contentType string
	filename    string
}

// readFormFile はマルチパートのファイルを読み込みます。
// 上限を1バイト超えた時点で読み込みを止め、サイズ判定はユースケースに任せます。
func readFormFile(c *gin.Context, field string) (*formUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, multipart.ErrMessageTooLarge) {
			return nil, apperror.Wrap(apperror.KindPayloadTooLarge, "multipart body too large", err)
		}
		return nil, apperror.Wrap(apperror.KindInvalidRequest, field+" is required", err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("アップロードファイルのクローズに失敗", "error", err)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(f, usecase.MaxImageSize+1))
	if err != nil {
		return nil, err
	}

	return &formUpload{
		data:        data,
		contentType: fh.Header.Get("Content-Type"),
		filename:    fh.Filename,
	}, nil
}

func toAnalysisResponse(r *entity.AnalysisReport) api.AnalysisResponse {
	out := api.AnalysisResponse{
		Symbol:              r.Symbol,
		Exchange:            r.Exchange,
		Analysis:            r.Analysis,
		FundamentalAnalysis: r.Fundamental,
		SentimentAnalysis:   r.Sentiment,
		TechnicalAnalysis:   r.Technical,
		Recommendations:     r.Recommendations,
		Timestamp:           r.Timestamp.Format(time.RFC3339),
	}
	if r.ChartImage != nil {
		out.ChartImage = r.ChartImage.DataURI()
	}
	return out
}
