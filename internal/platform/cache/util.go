package cache

import (
	"time"
)

// RefreshHour は人気銘柄キャッシュを入れ替える時刻（UTC）です。
// 米国市場の引け後、インド市場の寄り付き前にあたります。
const RefreshHour = 1

// TimeUntilNextRefresh は now から次の RefreshHour（UTC）までの期間を返します。
func TimeUntilNextRefresh(now time.Time) time.Duration {
	now = now.UTC()

	next := time.Date(now.Year(), now.Month(), now.Day(), RefreshHour, 0, 0, 0, time.UTC)

	// 今日の更新時刻を過ぎている場合は翌日を使用
	if !now.Before(next) {
		next = next.Add(24 * time.Hour)
	}

	return next.Sub(now)
}
