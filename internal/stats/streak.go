package stats

import "time"

// sameDay 判断两个时间是否落在同一个自然日
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// nextStreak 根据最近一次活跃时间计算新的连续天数。
// 规则：昨天活跃过则+1，今天已经活跃过则不变，
// 间隔超过一天或从未活跃则重置为1。
func nextStreak(lastActive *time.Time, current int, now time.Time) int {
	if lastActive == nil {
		return 1
	}
	if sameDay(*lastActive, now) {
		return current
	}
	if sameDay(lastActive.AddDate(0, 0, 1), now) {
		return current + 1
	}
	return 1
}
