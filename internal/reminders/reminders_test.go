package reminders

import (
	"testing"
	"time"

	"certbody/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC)

func reminder(id uint, title string, due time.Time, status models.ReminderStatus) models.Reminder {
	r := models.Reminder{
		Title:    title,
		DueDate:  due,
		Status:   status,
		Category: models.CategoryAudit,
		Priority: models.PriorityHigh,
	}
	r.ID = id
	return r
}

func ids(list []models.Reminder) []uint {
	out := make([]uint, 0, len(list))
	for _, r := range list {
		out = append(out, r.ID)
	}
	return out
}

func sample() []models.Reminder {
	return []models.Reminder{
		reminder(1, "Certificate expiry", now.AddDate(0, 0, 5), models.ReminderPending),
		reminder(2, "Surveillance audit", now.Add(-10*time.Hour), models.ReminderPending), // сегодня утром
		reminder(3, "NC closing deadline", now.AddDate(0, 0, -21), models.ReminderOverdue),
		reminder(4, "Invoice due", now.AddDate(0, 0, 2), models.ReminderPending),
		reminder(5, "Contract renewal", now.AddDate(0, 0, -3), models.ReminderCompleted),
	}
}

func TestClassify(t *testing.T) {
	b := Classify(sample(), now)

	assert.Equal(t, []uint{3}, ids(b.Overdue))
	assert.Equal(t, []uint{2}, ids(b.Today))
	assert.Equal(t, []uint{1, 4}, ids(b.Upcoming))
	assert.Equal(t, []uint{5}, ids(b.Completed))
}

func TestSummarize(t *testing.T) {
	s := Summarize(sample(), now)
	assert.Equal(t, Stats{Total: 5, Overdue: 1, Today: 1, Completed: 1}, s)
}

func TestNotifications(t *testing.T) {
	list := sample()
	assert.Equal(t, []uint{3, 2, 4}, ids(Notifications(list, now)))

	// отложенное напоминание пропадает до истечения срока
	until := now.Add(24 * time.Hour)
	list[2].SnoozedUntil = &until
	assert.Equal(t, []uint{2, 4}, ids(Notifications(list, now)))
	// через сутки "сегодняшнее" тоже становится просроченным
	assert.Equal(t, []uint{2, 3, 4}, ids(Notifications(list, until.Add(time.Minute))))
}

func TestFilter(t *testing.T) {
	list := sample()
	list[0].LinkedName = "ABC Manufacturing Ltd."
	list[3].Category = models.CategoryInvoice
	list[3].Priority = models.PriorityMedium

	assert.Equal(t, []uint{4}, ids(Apply(list, Filter{Category: models.CategoryInvoice})))
	assert.Equal(t, []uint{4}, ids(Apply(list, Filter{Priority: models.PriorityMedium})))
	assert.Equal(t, []uint{5}, ids(Apply(list, Filter{Status: models.ReminderCompleted})))
	assert.Equal(t, []uint{1}, ids(Apply(list, Filter{Search: "abc manuf"})))
	assert.Equal(t, []uint{3}, ids(Apply(list, Filter{Search: "  DEADLINE "})))
	assert.Len(t, Apply(list, Filter{}), 5)
}

func TestNormalize(t *testing.T) {
	r := models.Reminder{
		Title:         "  Auditor competency review ",
		DueDate:       now,
		Notifications: []models.NotificationChannel{models.ChannelEmail, models.ChannelEmail, models.ChannelSMS},
	}
	require.NoError(t, Normalize(&r))
	assert.Equal(t, "Auditor competency review", r.Title)
	assert.Equal(t, models.PriorityMedium, r.Priority)
	assert.Equal(t, models.ReminderPending, r.Status)
	assert.Equal(t, models.RecurNone, r.Recurrence)
	assert.Equal(t, models.CategoryOther, r.Category)
	assert.Equal(t, []models.NotificationChannel{models.ChannelEmail, models.ChannelSMS}, r.Notifications)
}

func TestNormalizeErrors(t *testing.T) {
	base := func() models.Reminder {
		return models.Reminder{Title: "x", DueDate: now}
	}
	cases := []struct {
		name   string
		mutate func(r *models.Reminder)
		want   error
	}{
		{"title", func(r *models.Reminder) { r.Title = " " }, ErrTitleRequired},
		{"due", func(r *models.Reminder) { r.DueDate = time.Time{} }, ErrDueDateRequired},
		{"category", func(r *models.Reminder) { r.Category = "party" }, ErrInvalidCategory},
		{"priority", func(r *models.Reminder) { r.Priority = "urgent" }, ErrInvalidPriority},
		{"status", func(r *models.Reminder) { r.Status = "done" }, ErrInvalidStatus},
		{"recurrence", func(r *models.Reminder) { r.Recurrence = "hourly" }, ErrInvalidRecurrence},
		{"linked", func(r *models.Reminder) { r.LinkedType = "supplier" }, ErrInvalidLinkedType},
		{"channel", func(r *models.Reminder) {
			r.Notifications = []models.NotificationChannel{"pigeon"}
		}, ErrInvalidChannel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := base()
			tc.mutate(&r)
			assert.ErrorIs(t, Normalize(&r), tc.want)
		})
	}
}

func TestComplete(t *testing.T) {
	r := reminder(7, "Audit", now, models.ReminderSnoozed)
	until := now.Add(time.Hour)
	r.SnoozedUntil = &until

	h, err := Complete(&r, "sarah", now)
	require.NoError(t, err)
	assert.Equal(t, models.ReminderCompleted, r.Status)
	assert.Nil(t, r.SnoozedUntil)
	require.NotNil(t, r.CompletedAt)
	assert.Equal(t, "Completed", h.Action)
	assert.Equal(t, uint(7), h.ReminderID)
	assert.Len(t, r.History, 1)

	_, err = Complete(&r, "sarah", now)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestSnooze(t *testing.T) {
	r := reminder(8, "Meeting", now, models.ReminderPending)

	_, err := Snooze(&r, now.Add(-time.Minute), "mike", now)
	assert.ErrorIs(t, err, ErrSnoozeInPast)
	assert.Equal(t, models.ReminderPending, r.Status)

	h, err := Snooze(&r, now.Add(72*time.Hour), "mike", now)
	require.NoError(t, err)
	assert.Equal(t, models.ReminderSnoozed, r.Status)
	assert.Equal(t, "Snoozed", h.Action)

	r.Status = models.ReminderCompleted
	_, err = Snooze(&r, now.Add(time.Hour), "mike", now)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}
