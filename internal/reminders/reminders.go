// Package reminders: разбор напоминаний по срокам, фильтры и переходы
// состояний (выполнено / отложено).
package reminders

import (
	"errors"
	"strings"
	"time"

	"certbody/internal/models"
)

var (
	ErrTitleRequired     = errors.New("title is required")
	ErrInvalidCategory   = errors.New("invalid reminder category")
	ErrInvalidPriority   = errors.New("invalid reminder priority")
	ErrInvalidStatus     = errors.New("invalid reminder status")
	ErrInvalidRecurrence = errors.New("invalid recurrence")
	ErrInvalidChannel    = errors.New("invalid notification channel")
	ErrInvalidLinkedType = errors.New("invalid linked entity type")
	ErrDueDateRequired   = errors.New("due date is required")
	ErrAlreadyCompleted  = errors.New("reminder is already completed")
	ErrSnoozeInPast      = errors.New("snooze time must be in the future")
)

// DueSoonDays — горизонт колокольчика уведомлений.
const DueSoonDays = 3

// Normalize fills defaults and validates the enumerations of r.
func Normalize(r *models.Reminder) error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return ErrTitleRequired
	}
	if r.DueDate.IsZero() {
		return ErrDueDateRequired
	}
	if r.Priority == "" {
		r.Priority = models.PriorityMedium
	}
	if r.Status == "" {
		r.Status = models.ReminderPending
	}
	if r.Recurrence == "" {
		r.Recurrence = models.RecurNone
	}
	if r.Category == "" {
		r.Category = models.CategoryOther
	}

	switch r.Category {
	case models.CategoryAudit, models.CategoryCertificate, models.CategoryNC,
		models.CategoryInvoice, models.CategoryDocument, models.CategoryContract,
		models.CategoryCompetency, models.CategoryMeeting, models.CategoryOther:
	default:
		return ErrInvalidCategory
	}

	switch r.Priority {
	case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
	default:
		return ErrInvalidPriority
	}

	switch r.Status {
	case models.ReminderPending, models.ReminderCompleted, models.ReminderSnoozed, models.ReminderOverdue:
	default:
		return ErrInvalidStatus
	}

	switch r.Recurrence {
	case models.RecurNone, models.RecurDaily, models.RecurWeekly,
		models.RecurMonthly, models.RecurYearly, models.RecurCustom:
	default:
		return ErrInvalidRecurrence
	}

	switch r.LinkedType {
	case "", models.LinkedClient, models.LinkedAuditor, models.LinkedCertificate, models.LinkedAudit:
	default:
		return ErrInvalidLinkedType
	}

	seen := map[models.NotificationChannel]bool{}
	channels := make([]models.NotificationChannel, 0, len(r.Notifications))
	for _, ch := range r.Notifications {
		switch ch {
		case models.ChannelEmail, models.ChannelSMS, models.ChannelInApp:
		default:
			return ErrInvalidChannel
		}
		if !seen[ch] {
			seen[ch] = true
			channels = append(channels, ch)
		}
	}
	r.Notifications = channels
	return nil
}

// Filter — пустое поле означает "все".
type Filter struct {
	Category models.ReminderCategory
	Priority models.ReminderPriority
	Status   models.ReminderStatus
	Search   string
}

func (f Filter) Match(r models.Reminder) bool {
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.Priority != "" && r.Priority != f.Priority {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		return strings.Contains(strings.ToLower(r.Title), q) ||
			strings.Contains(strings.ToLower(r.Description), q) ||
			strings.Contains(strings.ToLower(r.LinkedName), q)
	}
	return true
}

func Apply(list []models.Reminder, f Filter) []models.Reminder {
	out := make([]models.Reminder, 0, len(list))
	for _, r := range list {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Buckets — раскладка для дашборда.
type Buckets struct {
	Overdue   []models.Reminder `json:"overdue"`
	Today     []models.Reminder `json:"today"`
	Upcoming  []models.Reminder `json:"upcoming"`
	Completed []models.Reminder `json:"completed"`
}

func Classify(list []models.Reminder, now time.Time) Buckets {
	b := Buckets{
		Overdue:   []models.Reminder{},
		Today:     []models.Reminder{},
		Upcoming:  []models.Reminder{},
		Completed: []models.Reminder{},
	}
	today := dayOf(now, now)
	for _, r := range list {
		if r.Status == models.ReminderCompleted {
			b.Completed = append(b.Completed, r)
			continue
		}
		due := dayOf(r.DueDate, now)
		switch {
		case due.Before(today):
			b.Overdue = append(b.Overdue, r)
		case due.Equal(today):
			b.Today = append(b.Today, r)
		default:
			b.Upcoming = append(b.Upcoming, r)
		}
	}
	return b
}

type Stats struct {
	Total     int `json:"total"`
	Overdue   int `json:"overdue"`
	Today     int `json:"today"`
	Completed int `json:"completed"`
}

func Summarize(list []models.Reminder, now time.Time) Stats {
	b := Classify(list, now)
	return Stats{
		Total:     len(list),
		Overdue:   len(b.Overdue),
		Today:     len(b.Today),
		Completed: len(b.Completed),
	}
}

// Notifications returns overdue, due today and due within DueSoonDays, in
// that order. Reminders snoozed past now are skipped.
func Notifications(list []models.Reminder, now time.Time) []models.Reminder {
	var active []models.Reminder
	for _, r := range list {
		if r.SnoozedUntil != nil && r.SnoozedUntil.After(now) {
			continue
		}
		active = append(active, r)
	}

	b := Classify(active, now)
	horizon := dayOf(now, now).AddDate(0, 0, DueSoonDays)

	out := make([]models.Reminder, 0, len(b.Overdue)+len(b.Today))
	out = append(out, b.Overdue...)
	out = append(out, b.Today...)
	for _, r := range b.Upcoming {
		if !dayOf(r.DueDate, now).After(horizon) {
			out = append(out, r)
		}
	}
	return out
}

// Complete marks r completed and returns the history entry to persist.
func Complete(r *models.Reminder, by string, now time.Time) (models.ReminderHistory, error) {
	if r.Status == models.ReminderCompleted {
		return models.ReminderHistory{}, ErrAlreadyCompleted
	}
	r.Status = models.ReminderCompleted
	r.CompletedAt = &now
	r.SnoozedUntil = nil
	return record(r, "Completed", by, now, ""), nil
}

func Snooze(r *models.Reminder, until time.Time, by string, now time.Time) (models.ReminderHistory, error) {
	if r.Status == models.ReminderCompleted {
		return models.ReminderHistory{}, ErrAlreadyCompleted
	}
	if !until.After(now) {
		return models.ReminderHistory{}, ErrSnoozeInPast
	}
	r.Status = models.ReminderSnoozed
	r.SnoozedUntil = &until
	return record(r, "Snoozed", by, now, "until "+until.Format(time.RFC3339)), nil
}

// Touch записывает произвольное событие (создание, изменение) в историю.
func Touch(r *models.Reminder, action, by string, now time.Time, details string) models.ReminderHistory {
	return record(r, action, by, now, details)
}

func record(r *models.Reminder, action, by string, now time.Time, details string) models.ReminderHistory {
	h := models.ReminderHistory{
		ReminderID: r.ID,
		Action:     action,
		User:       by,
		Timestamp:  now,
		Details:    details,
	}
	r.History = append(r.History, h)
	return h
}

func dayOf(t, now time.Time) time.Time {
	y, m, d := t.In(now.Location()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
