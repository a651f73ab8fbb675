// Package gemini はGoogle Gemini APIを使用したLLMゲートウェイを提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"stock_analysis/internal/feature/analysis/domain/entity"
	"stock_analysis/internal/feature/analysis/usecase"
	"stock_analysis/internal/shared/apperror"
)

// SystemInstruction はすべての呼び出しに付与するシステムメッセージです。
const SystemInstruction = "You are a professional stock market analyst."

// Gateway はGemini APIを1回呼び出すLLMGateway実装です。
// 呼び出しごとにクライアントを生成し、セッションは共有しません。
type Gateway struct {
	cfg        Config
	httpClient *http.Client
}

// GatewayがLLMGatewayを実装していることをコンパイル時に検証します。
var _ usecase.LLMGateway = (*Gateway)(nil)

// NewGateway はGatewayの新しいインスタンスを生成します。
// httpClient が nil の場合はSDKの既定クライアントを使います。
func NewGateway(cfg Config, httpClient *http.Client) *Gateway {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Gateway{cfg: cfg, httpClient: httpClient}
}

// Generate は指定のAPIキーでプロンプト（と任意の画像）を送信し、生成テキストを返します。
// リトライは行いません。
func (g *Gateway) Generate(ctx context.Context, apiKey, prompt string, image *entity.EncodedImage) (string, error) {
	sessionID := "stock_analysis_" + uuid.NewString()

	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  g.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: g.cfg.BaseURL},
	})
	if err != nil {
		return "", apperror.Wrap(apperror.KindProviderFailure, "failed to create gemini client", err)
	}

	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	if image != nil {
		data, err := image.Decode()
		if err != nil {
			return "", apperror.Wrap(apperror.KindInvalidMediaType, "invalid image encoding", err)
		}
		parts = append(parts, genai.NewPartFromBytes(data, image.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	slog.DebugContext(ctx, "gemini request", "session_id", sessionID, "model", g.cfg.Model, "with_image", image != nil)
	resp, err := client.Models.GenerateContent(ctx, g.cfg.Model, contents, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: SystemInstruction}},
		},
	})
	if err != nil {
		return "", tagError(ctx, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", apperror.New(apperror.KindProviderFailure, "gemini response content is empty")
	}
	slog.DebugContext(ctx, "gemini response", "session_id", sessionID, "chars", len(text))
	return text, nil
}

// tagError はSDKやトランスポートのエラーに種別を付けます。
// 元のエラー文字列は残し、未分類の場合の文字列判定に使います。
func tagError(ctx context.Context, err error) error {
	const msg = "gemini generate content failed"

	if code, ok := apiErrorCode(err); ok {
		switch code {
		case http.StatusServiceUnavailable:
			return apperror.Wrap(apperror.KindUnavailable, msg, err)
		case http.StatusUnauthorized:
			return apperror.Wrap(apperror.KindUnauthorized, msg, err)
		case http.StatusTooManyRequests:
			return apperror.Wrap(apperror.KindRateLimited, msg, err)
		}
		return apperror.Wrap(apperror.KindProviderFailure, fmt.Sprintf("%s with status %d", msg, code), err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperror.Wrap(apperror.KindTimeout, msg, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return apperror.Wrap(apperror.KindTimeout, msg, err)
		}
		return apperror.Wrap(apperror.KindNetwork, msg, err)
	}
	return apperror.Wrap(apperror.KindProviderFailure, msg, err)
}

func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}
