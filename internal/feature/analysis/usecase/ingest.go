package usecase

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"stock_analysis/internal/feature/analysis/domain/entity"
	"stock_analysis/internal/shared/apperror"
)

const (
	// MaxImageSize は画像アップロードの最大サイズ（10MiB）です。
	MaxImageSize = 10 * 1024 * 1024
	// DefaultImageMIMEType は画像の種類を判定できない場合のMIMEタイプです。
	DefaultImageMIMEType = "image/png"
)

// IngestImage はアップロードされた画像を検証し、base64にエンコードします。
// declaredType が空の場合はContent-Typeの検証を行いません。
func IngestImage(data []byte, declaredType string) (*entity.EncodedImage, error) {
	if len(data) == 0 {
		return nil, apperror.New(apperror.KindEmptyPayload, "image data is empty")
	}
	if len(data) > MaxImageSize {
		return nil, apperror.New(apperror.KindPayloadTooLarge, "image file size exceeds maximum of 10MB")
	}
	declared := mediaType(declaredType)
	if declared != "" && !strings.HasPrefix(declared, "image/") {
		return nil, apperror.New(apperror.KindInvalidMediaType, "invalid image content type: "+declared)
	}

	return &entity.EncodedImage{
		Data:     base64.StdEncoding.EncodeToString(data),
		MIMEType: inferMIMEType(data, declared),
	}, nil
}

// inferMIMEType はバイト列から判定した画像タイプ、宣言されたタイプ、既定値の順に採用します。
func inferMIMEType(data []byte, declared string) string {
	if sniffed := mediaType(mimetype.Detect(data).String()); strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	if declared != "" {
		return declared
	}
	return DefaultImageMIMEType
}

// mediaType はパラメータを除いた小文字のメディアタイプを返します。
func mediaType(v string) string {
	mt, _, _ := strings.Cut(v, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}
