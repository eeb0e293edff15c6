package utils

import (
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate 解析 YYYY-MM-DD 字符串，按 UTC 零点落库避免时区漂移。
// 解析失败返回 nil，形状合法但日历非法的输入（如 2024-13-40）由调用方忽略。
func ParseDate(dateStr string) *time.Time {
	if dateStr == "" {
		return nil
	}

	parsed, err := time.ParseInLocation(dateLayout, dateStr, time.UTC)
	if err != nil {
		return nil
	}

	return &parsed
}

// FormatDate 输出 YYYY-MM-DD，nil 时返回空串。
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
