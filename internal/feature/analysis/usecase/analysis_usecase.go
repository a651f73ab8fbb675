// Package usecase はanalysisフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"stock_analysis/internal/feature/analysis/domain/entity"
	"stock_analysis/internal/shared/apperror"
)

const (
	// legacySectionLabel はレガシー分析のログ・メトリクス用ラベルです。
	legacySectionLabel = "Legacy"

	combinedReportTemplate = `📊 Stock Analysis Report

📌 Symbol: %s
📅 Timeframe: Multi-Section Analysis
🔍 Exchange: %s

This is a comprehensive multi-section analysis. Please use the individual sections (Fundamental, Sentiment, Technical, Recommendations) for detailed insights.

Generated: %s`
)

// ChartFetcher は銘柄のチャート画像を外部サービスから取得します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ChartFetcher interface {
	// FetchChart は画像バイト列とそのContent-Typeを返します。
	FetchChart(ctx context.Context, symbol, exchange string) ([]byte, string, error)
}

// analysisUsecase はマルチセクション分析とレガシー分析を提供します。
type analysisUsecase struct {
	executor *FallbackExecutor
	chain    entity.CredentialChain
	charts   ChartFetcher
	metrics  Metrics
	now      func() time.Time
}

// Option はanalysisUsecaseの設定を変更します。
type Option func(*analysisUsecase)

// WithClock は現在時刻の取得関数を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(u *analysisUsecase) { u.now = now }
}

// NewAnalysisUsecase はanalysisUsecaseの新しいインスタンスを生成します。
// charts が nil の場合、画像なしのレガシー分析はチャート取得エラーになります。
func NewAnalysisUsecase(executor *FallbackExecutor, chain entity.CredentialChain, charts ChartFetcher, metrics Metrics, opts ...Option) *analysisUsecase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	u := &analysisUsecase{
		executor: executor,
		chain:    chain,
		charts:   charts,
		metrics:  metrics,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// UploadImage はアップロード画像を検証してエンコード結果を返します。
func (u *analysisUsecase) UploadImage(_ context.Context, data []byte, contentType string) (*entity.EncodedImage, error) {
	return IngestImage(data, contentType)
}

// Analyze は4セクションの分析を並行に実行し、結果を集約します。
//
// 画像が不正な場合のみエラーを返します。セクションごとの失敗は
// プレースホルダー文言に置き換えられ、リクエスト全体は成功します。
func (u *analysisUsecase) Analyze(ctx context.Context, req entity.AnalysisRequest) (*entity.AnalysisReport, error) {
	img, err := IngestImage(req.Image, req.ContentType)
	if err != nil {
		return nil, err
	}
	symbol, exchange, err := normalizeTicker(req.Symbol, req.Exchange)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "マルチセクション分析を開始", "symbol", symbol, "exchange", exchange)
	results := u.runSections(ctx, symbol, exchange, img)

	var texts [entity.SectionCount]string
	failed := 0
	for i, r := range results {
		if r.OK() {
			texts[i] = r.Text
			continue
		}
		failed++
		texts[i] = r.Section.Placeholder()
	}
	slog.InfoContext(ctx, "マルチセクション分析が完了", "symbol", symbol, "failed_sections", failed)

	now := u.now()
	return &entity.AnalysisReport{
		Symbol:          symbol,
		Exchange:        exchange,
		ChartImage:      img,
		Analysis:        fmt.Sprintf(combinedReportTemplate, symbol, exchange, now.Format(legacyDateLayout)),
		Fundamental:     texts[entity.SectionFundamental],
		Sentiment:       texts[entity.SectionSentiment],
		Technical:       texts[entity.SectionTechnical],
		Recommendations: texts[entity.SectionRecommendations],
		Timestamp:       now,
	}, nil
}

// AnalyzeLegacy はチャート画像1枚に対して単一レポートの分析を行います。
// ImageData が空の場合はチャート画像を外部APIから取得します。
func (u *analysisUsecase) AnalyzeLegacy(ctx context.Context, req entity.LegacyAnalysisRequest) (*entity.AnalysisReport, error) {
	symbol, exchange, err := normalizeTicker(req.Symbol, req.Exchange)
	if err != nil {
		return nil, err
	}

	img, err := u.legacyChart(ctx, symbol, exchange, req.ImageData)
	if err != nil {
		return nil, err
	}

	now := u.now()
	start := time.Now()
	text, err := u.executor.Execute(ctx, u.chain, legacySectionLabel, LegacyPrompt(symbol, exchange, now), img)
	u.metrics.ObserveSection(legacySectionLabel, err == nil, time.Since(start))
	if err != nil {
		slog.ErrorContext(ctx, "レガシー分析に失敗", "symbol", symbol, "exchange", exchange, "error", err)
		return nil, err
	}

	return &entity.AnalysisReport{
		Symbol:     symbol,
		Exchange:   exchange,
		ChartImage: img,
		Analysis:   text,
		Timestamp:  now,
	}, nil
}

// runSections は各セクションを独立したgoroutineで実行し、全件の完了を待ちます。
// 各goroutineは自分のスロットだけに書き込むため、ロックは不要です。
func (u *analysisUsecase) runSections(ctx context.Context, symbol, exchange string, img *entity.EncodedImage) [entity.SectionCount]entity.SectionResult {
	var results [entity.SectionCount]entity.SectionResult
	var g errgroup.Group
	for i, section := range entity.AllSections() {
		g.Go(func() error {
			results[i] = u.runSection(ctx, section, symbol, exchange, img)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (u *analysisUsecase) runSection(ctx context.Context, section entity.Section, symbol, exchange string, img *entity.EncodedImage) (res entity.SectionResult) {
	res.Section = section
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res.Text = ""
			res.Err = fmt.Errorf("%s analysis panicked: %v", section, r)
		}
		u.metrics.ObserveSection(section.String(), res.Err == nil, time.Since(start))
		if res.Err != nil {
			slog.WarnContext(ctx, "セクション分析に失敗",
				"section", section.String(),
				"symbol", symbol,
				"message", apperror.Classify(res.Err),
				"error", res.Err,
			)
		}
	}()

	var image *entity.EncodedImage
	if section.NeedsImage() {
		image = img
	}
	res.Text, res.Err = u.executor.Execute(ctx, u.chain, section.String(), BuildPrompt(section, symbol, exchange), image)
	return res
}

func (u *analysisUsecase) legacyChart(ctx context.Context, symbol, exchange, imageData string) (*entity.EncodedImage, error) {
	if strings.TrimSpace(imageData) != "" {
		data, declared, err := decodeImageData(imageData)
		if err != nil {
			return nil, err
		}
		return IngestImage(data, declared)
	}

	if u.charts == nil {
		return nil, apperror.New(apperror.KindChartFetchFailure, "chart provider is not configured")
	}
	data, contentType, err := u.charts.FetchChart(ctx, symbol, exchange)
	if err != nil {
		if apperror.IsKind(err, apperror.KindChartFetchFailure) {
			return nil, err
		}
		return nil, apperror.Wrap(apperror.KindChartFetchFailure, "failed to fetch chart", err)
	}
	img, err := IngestImage(data, contentType)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindChartFetchFailure, "chart provider returned an unusable image", err)
	}
	return img, nil
}

// decodeImageData は base64 文字列、または data URI を画像バイト列に戻します。
func decodeImageData(v string) ([]byte, string, error) {
	v = strings.TrimSpace(v)
	declared := ""
	if rest, ok := strings.CutPrefix(v, "data:"); ok {
		meta, payload, found := strings.Cut(rest, ",")
		if !found {
			return nil, "", apperror.New(apperror.KindInvalidMediaType, "invalid image data URI")
		}
		declared = strings.TrimSuffix(meta, ";base64")
		v = payload
	}
	data, err := base64.StdEncoding.DecodeString(v)
	if err != nil {
		return nil, "", apperror.Wrap(apperror.KindInvalidMediaType, "invalid image data encoding", err)
	}
	return data, declared, nil
}

// normalizeTicker は銘柄コードと取引所を前後の空白を除いた大文字に揃えます。
func normalizeTicker(symbol, exchange string) (string, string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	exchange = strings.ToUpper(strings.TrimSpace(exchange))
	if symbol == "" {
		return "", "", apperror.New(apperror.KindInvalidRequest, "symbol is required")
	}
	if exchange == "" {
		return "", "", apperror.New(apperror.KindInvalidRequest, "exchange is required")
	}
	return symbol, exchange, nil
}
