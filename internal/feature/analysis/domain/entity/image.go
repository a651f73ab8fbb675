package entity

import (
	"encoding/base64"
	"fmt"
)

// EncodedImage は検証済みの画像をbase64文字列で保持します。
// リクエストの処理中だけ使われ、レスポンス送信後は破棄されます。
type EncodedImage struct {
	Data     string // 標準base64エンコード
	MIMEType string // image/png など
}

// Decode は元のバイト列を復元します。
func (e *EncodedImage) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(e.Data)
}

// DataURI はレスポンス埋め込み用の data URI を返します。
func (e *EncodedImage) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", e.MIMEType, e.Data)
}
