package usecase

import (
	"strings"
	"time"

	"stock_analysis/internal/feature/analysis/domain/entity"
)

// legacyDateLayout はレガシーレポートに埋め込む分析日時のフォーマットです。
const legacyDateLayout = "2006-01-02 15:04:05"

// BuildPrompt はセクションに対応するプロンプトを生成します。
// テクニカル分析のみ画像を前提としたプロンプトになります（画像自体はゲートウェイ側で添付します）。
func BuildPrompt(section entity.Section, symbol, exchange string) string {
	switch section {
	case entity.SectionFundamental:
		return FundamentalPrompt(symbol, exchange)
	case entity.SectionSentiment:
		return SentimentPrompt(symbol, exchange)
	case entity.SectionTechnical:
		return TechnicalPrompt(symbol, exchange)
	case entity.SectionRecommendations:
		return RecommendationsPrompt(symbol, exchange)
	default:
		return ""
	}
}

// FundamentalPrompt はファンダメンタル分析のプロンプトを返します。
func FundamentalPrompt(symbol, exchange string) string {
	return render(fundamentalTemplate, symbol, exchange, "")
}

// SentimentPrompt はセンチメント分析のプロンプトを返します。
func SentimentPrompt(symbol, exchange string) string {
	return render(sentimentTemplate, symbol, exchange, "")
}

// TechnicalPrompt はチャート画像を用いたテクニカル分析のプロンプトを返します。
func TechnicalPrompt(symbol, exchange string) string {
	return render(technicalTemplate, symbol, exchange, "")
}

// RecommendationsPrompt は総合推奨のプロンプトを返します。
func RecommendationsPrompt(symbol, exchange string) string {
	return render(recommendationsTemplate, symbol, exchange, "")
}

// LegacyPrompt はレガシーエンドポイント用の単一レポートのプロンプトを返します。
// 分析日時のみ呼び出しごとに変わります。
func LegacyPrompt(symbol, exchange string, now time.Time) string {
	return render(legacyTemplate, symbol, exchange, now.Format(legacyDateLayout))
}

func render(tmpl, symbol, exchange, date string) string {
	r := strings.NewReplacer(
		"{symbol}", strings.ToUpper(symbol),
		"{exchange}", strings.ToUpper(exchange),
		"{date}", date,
	)
	return r.Replace(tmpl)
}

const fundamentalTemplate = `You are a professional financial analyst. Based on your knowledge of {symbol} listed on {exchange}, provide a detailed fundamental analysis in this exact format:

📊 Fundamental Analysis
1. Revenue & Profitability
Revenue Growth (YoY): ₹2,49,386 Cr → ₹2,59,188 Cr (↑ ~3.9%)

Net Profit (YoY): ₹38,327 Cr → ₹42,303 Cr (↑ ~10.4%)

EBITDA Margin: ~25.0%

Net Profit Margin: ~16.3%

2. Earnings Per Share (EPS)
TTM EPS: ₹115.5

EPS Growth (YoY): 9.5%

Projected EPS FY26: ₹126 – ₹130

3. Return Ratios
ROE (Return on Equity): ~47%

ROCE (Return on Capital Employed): ~54%

ROA (Return on Assets): ~30%

4. Valuation Metrics
P/E Ratio (TTM): ~31.5x

Industry P/E: ~27x (Slightly overvalued)

P/B Ratio: ~14.7

PEG Ratio: ~2.2 (moderate)

5. Debt Analysis
Debt to Equity: 0.04 (Almost debt-free)

Interest Coverage Ratio: > 100 (Excellent)

6. Cash Flow Health
Operating Cash Flow: ₹61,728 Cr (healthy)

Free Cash Flow: ₹48,000 Cr

FCF Yield: ~3.3%

7. Dividend Track Record
Dividend Yield: ~3.16%

5-Year Dividend CAGR: 17%

Payout Ratio: ~75% (consistent high payouts)

8. Promoter & Institutional Holding
Promoter Holding: 72.3% (Stable)

FII Holding: 12.6%

DII Holding: 10.9%

9. Moat & Business Outlook
Strong Moat: Brand trust, client retention, and industry leadership

Client Base: >1200 global clients including multiple Fortune 500 companies

Order Book: Robust TCV of ~$42.7B

Future Outlook: Expanding in cloud, AI, and digital transformation segments

✅ Summary (Fundamentals Only)
Strengths:

Consistent revenue & profit growth

Debt-free with high cash reserves

High ROE and strong dividend policy

Leader in IT services with a global footprint

Risks:

Rich valuation (high P/E vs peers)

FX fluctuations due to high USD exposure

Dependency on global IT demand cycles

Verdict:
✔️ Strong fundamentals for long-term holding
⚠️ For swing trading, check earnings dates, corporate actions, and news events impacting short-term sentiment.

Replace the example data with actual estimates for {symbol}. Provide realistic numbers based on your knowledge of this company and its recent performance. Use appropriate currency symbols (₹ for Indian stocks, $ for US stocks). Only return the formatted analysis, no explanations.`

const sentimentTemplate = `You are an AI financial analyst with access to recent market data. Based on your knowledge and reasoning about {symbol} listed on {exchange}, simulate recent news sentiment analysis in this exact format:

💬 Sentiment Analysis – AI Mode (Based on Recent News)
✅ 1. What We Must Check
To generate reliable Sentiment Analysis, your AI prompt should guide Gemini to analyze recent news headlines, events, and trends. Here's what it should check:

Metric	Description
🔴 Positive/Negative/Neutral	Overall sentiment polarity
📰 Recent News Summary	Key headlines and events in the past 30 days
🔄 Impact on Stock	Interpretation of how news affects investor behavior
🏦 Sector Trend	Sentiment of the overall IT sector if available
🗣️ Public/Media Tone	Investor confidence, trust, or panic signals
🔎 Keywords	Words like "growth", "fraud", "expansion", "layoffs" etc.
🕵️ AI Reasoning	AI should extract sentiment context from multiple stories

💬 Stock Sentiment Report  
📌 Symbol: {symbol}  
📅 Timeframe: Last 30 Days  
🔍 Source: News Headlines & Market Events

📢 News-Based Summary  
- Headline 1: [Simulate realistic recent headline]
- Headline 2: [Simulate realistic recent headline]
- Headline 3: [Simulate realistic recent headline]

📈 Sentiment Overview  
- Overall Sentiment: Positive / Neutral / Negative  
- Investor Mood: Cautious / Bullish / Panic Driven  
- Sector Sentiment: Strong / Weak / Mixed  

🔎 Keyword Highlights  
- Positive Mentions: (e.g., "New client deals", "Cloud expansion")  
- Negative Mentions: (e.g., "Attrition", "IT slowdown", "Layoffs")  

🧠 AI Reasoning  
- Based on the news above, the sentiment is [verdict] because... (explain in 2–3 lines).

✅ Verdict:  
(Example: Slightly bullish due to consistent deal wins and sector recovery.)

Replace all placeholders with realistic simulated data for {symbol}. Use your knowledge of the company, industry trends, and typical market dynamics. Only return the formatted analysis, no explanations.`

const technicalTemplate = `You are a professional technical analyst. Based on the attached 1-day timeframe chart of {symbol} (6-month or 1-year view), provide a detailed Technical Analysis Report in this exact format:

📈 Technical Analysis Report  
📌 Symbol: {symbol}  
📅 Timeframe: 1-Day Chart (Last 6 Months)  
🖼️ Chart: [analyzed image attached]

📊 Trend Analysis  
- Overall trend: Uptrend / Downtrend / Sideways  
- Support Zone: ₹xxx – ₹xxx  
- Resistance Zone: ₹xxx – ₹xxx

🔺 Breakout/Breakdown  
- Breakout Detected: Yes / No  
- Level: ₹xxx  
- Volume Confirmation: Yes / No

📐 Chart Patterns  
- Pattern Detected: (e.g., Ascending Triangle, Cup & Handle, Double Bottom)  
- Pattern Validity: Strong / Weak

📉 Indicators  
- RSI: xxx (Overbought / Oversold / Neutral)  
- SMA/EMA Crossover: (e.g., 50-SMA crossed 200-SMA → Golden Cross)  
- MACD Signal: Bullish / Bearish  
- Bollinger Band Status: Price near Upper / Lower band?

🎯 Entry/Exit Recommendation  
- Suggested Entry Range: ₹xxx – ₹xxx  
- Stop-Loss: ₹xxx  
- Target 1: ₹xxx  
- Target 2: ₹xxx

🧠 AI Summary  
(Explain the chart-based analysis in 2–3 sentences in natural language.)

✅ Verdict:  
(Example: Bullish setup with strong breakout from resistance + RSI supportive.)

Analyze the attached chart image and provide realistic price levels and technical indicators. Use appropriate currency symbols (₹ for Indian stocks, $ for US stocks). Only return the formatted analysis, no explanations.`

const recommendationsTemplate = `You are a professional stock analyst. Based on your combined analysis knowledge of {symbol} listed on {exchange}, provide a comprehensive recommendation in this exact format:

📌 Recommendation Summary  
📍 Stock: {symbol}  
📆 Timeframe: Swing (2–10 days)  
📈 Market View: Bullish / Bearish / Cautious

🧩 Combined Outlook  
- 🧠 Fundamentals: Strong / Weak / Neutral (reason)
- 💬 Sentiment: Positive / Negative / Neutral (reason)
- 📈 Technical: Bullish / Bearish / Neutral (reason)

🎯 Swing Trade Recommendation  
- Entry Range: ₹xxx – ₹xxx  
- Stop-Loss: ₹xxx  
- Target 1: ₹xxx  
- Target 2: ₹xxx  
- Risk Level: Low / Medium / High  
- Confidence Score: 80–90% (AI-estimated based on alignment of signals)

📆 Holding Period Suggestion: 5–7 trading days (can vary)

🔎 Reasoning:  
(Explain why this trade setup is favorable or risky based on combined analysis)

✅ Final Verdict:  
✔️ Action: Consider Entering / Wait & Watch / Avoid  
📢 Notes: (Earnings approaching / Sector uncertainty / Confirm on volume tomorrow etc.)

Provide realistic analysis based on your knowledge of {symbol}. Use appropriate currency symbols (₹ for Indian stocks, $ for US stocks). Only return the formatted recommendation, no explanations.`

const legacyTemplate = `
You are a professional stock market analyst. Generate a comprehensive stock analysis report based on this chart and stock information:

📊 **Stock Information:**
- Symbol: {symbol}
- Exchange: {exchange}
- Timeframe: 1 Day
- Analysis Date: {date}

Please provide a detailed analysis in the following structured format:

# 📈 STOCK ANALYSIS REPORT

## 📌 Stock Overview
- **Symbol:** {symbol}
- **Exchange:** {exchange}
- **Current Analysis:** 1-Day Chart Analysis

## 🔍 Technical Analysis
Based on the 1-day chart, analyze:
- **Price Movement:** Current price trends and patterns
- **Support/Resistance Levels:** Key price levels to watch
- **Volume Analysis:** Trading volume patterns
- **Technical Indicators:** Moving averages, momentum indicators
- **Chart Patterns:** Any notable formations

## 💹 Market Sentiment
- **Overall Sentiment:** Bullish/Bearish/Neutral assessment
- **Market Context:** How this stock fits in current market conditions
- **Volatility Assessment:** Price stability analysis

## 📊 Key Observations
- **Notable Price Movements:** Significant changes in the timeframe
- **Trading Activity:** Volume and liquidity assessment
- **Risk Factors:** Potential concerns or red flags

## 🎯 Trading Recommendations

### Short-Term (1-3 Days)
- **Recommendation:** Buy/Hold/Sell
- **Target Price:** If applicable
- **Stop Loss:** Risk management level
- **Rationale:** Brief explanation

### Medium-Term (1-4 Weeks)
- **Outlook:** Positive/Negative/Neutral
- **Key Levels:** Important price points to watch
- **Catalysts:** Events that might impact price

## ⚠️ Risk Assessment
- **Risk Level:** High/Medium/Low
- **Key Risks:** Major factors that could affect the stock
- **Diversification:** Portfolio considerations

## 📋 Summary
Provide a concise summary of your analysis and key takeaways for investors.

---
**Disclaimer:** This analysis is for educational purposes only and should not be considered as financial advice. Always consult with a qualified financial advisor before making investment decisions.

Please analyze the provided chart image and provide this comprehensive report.
`
