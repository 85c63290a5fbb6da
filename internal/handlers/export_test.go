package handlers

import "time"

// SetNow фиксирует часы обработчиков до вызова возвращённой функции.
func SetNow(t time.Time) (restore func()) {
	prev := now
	now = func() time.Time { return t }
	return func() { now = prev }
}
