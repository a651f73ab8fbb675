package entity

import "time"

// AnalysisRequest はマルチセクション分析の入力です。
type AnalysisRequest struct {
	Symbol      string
	Exchange    string
	Image       []byte
	ContentType string // アップロード時に宣言されたContent-Type（空なら未宣言）
}

// LegacyAnalysisRequest はレガシー分析の入力です。
// ImageData が空の場合はチャート画像を外部APIから取得します。
type LegacyAnalysisRequest struct {
	Symbol    string
	Exchange  string
	ImageData string // base64
}

// SectionResult は1セクションの結果です。Err が nil なら Text が分析結果です。
type SectionResult struct {
	Section Section
	Text    string
	Err     error
}

// OK は成功したかどうかを返します。
func (r SectionResult) OK() bool {
	return r.Err == nil
}

// AnalysisReport は分析結果の集約です。
// 失敗したセクションはプレースホルダー文言に置き換え済みです。
type AnalysisReport struct {
	Symbol          string
	Exchange        string
	ChartImage      *EncodedImage
	Analysis        string // 後方互換用の統合テキスト
	Fundamental     string
	Sentiment       string
	Technical       string
	Recommendations string
	Timestamp       time.Time
}
