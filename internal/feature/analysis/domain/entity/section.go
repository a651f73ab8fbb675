package entity

import "fmt"

// Section は分析セクションの種別です。
type Section int

const (
	SectionFundamental Section = iota
	SectionSentiment
	SectionTechnical
	SectionRecommendations
)

// SectionCount はマルチセクション分析のセクション数です。
const SectionCount = 4

// AllSections はレスポンスに並べる順序でセクションを返します。
func AllSections() [SectionCount]Section {
	return [SectionCount]Section{
		SectionFundamental,
		SectionSentiment,
		SectionTechnical,
		SectionRecommendations,
	}
}

// String はログやメトリクスのラベルに使う表示名を返します。
func (s Section) String() string {
	switch s {
	case SectionFundamental:
		return "Fundamental"
	case SectionSentiment:
		return "Sentiment"
	case SectionTechnical:
		return "Technical"
	case SectionRecommendations:
		return "Recommendations"
	default:
		return fmt.Sprintf("Section(%d)", int(s))
	}
}

// NeedsImage はチャート画像を添付するセクションかどうかを返します。
func (s Section) NeedsImage() bool {
	return s == SectionTechnical
}

// Placeholder は失敗したセクションの代わりに表示する文言です。
func (s Section) Placeholder() string {
	return fmt.Sprintf("⚠️ %s analysis temporarily unavailable. Please try again.", s)
}
