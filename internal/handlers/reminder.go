package handlers

import (
	"net/http"
	"strings"
	"time"

	"certbody/internal/database"
	"certbody/internal/models"
	"certbody/internal/reminders"

	"github.com/gin-gonic/gin"
)

//
// НАПОМИНАНИЯ
//

func ListReminders(c *gin.Context) {
	list, err := database.ListReminders()
	if err != nil {
		respondError(c, err)
		return
	}

	f := reminders.Filter{
		Category: models.ReminderCategory(c.Query("category")),
		Priority: models.ReminderPriority(c.Query("priority")),
		Status:   models.ReminderStatus(c.Query("status")),
		Search:   c.Query("q"),
	}
	filtered := reminders.Apply(list, f)

	c.JSON(http.StatusOK, gin.H{
		"reminders": filtered,
		"stats":     reminders.Summarize(list, now()),
	})
}

func RemindersDashboard(c *gin.Context) {
	list, err := database.ListReminders()
	if err != nil {
		respondError(c, err)
		return
	}
	t := now()
	c.JSON(http.StatusOK, gin.H{
		"buckets": reminders.Classify(list, t),
		"stats":   reminders.Summarize(list, t),
	})
}

func ReminderNotifications(c *gin.Context) {
	list, err := database.ListReminders()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": reminders.Notifications(list, now())})
}

type reminderForm struct {
	Title         string                       `json:"title"`
	Description   string                       `json:"description"`
	Category      models.ReminderCategory      `json:"category"`
	Priority      models.ReminderPriority      `json:"priority"`
	Recurrence    models.Recurrence            `json:"recurrence"`
	DueDate       string                       `json:"due_date"`
	AssignedTo    string                       `json:"assigned_to"`
	LinkedType    models.LinkedEntityType      `json:"linked_type"`
	LinkedID      string                       `json:"linked_id"`
	LinkedName    string                       `json:"linked_name"`
	Notifications []models.NotificationChannel `json:"notifications"`
	Notes         string                       `json:"notes"`
}

// parseDate принимает RFC 3339 или просто дату YYYY-MM-DD (в UTC).
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func (f reminderForm) reminder() (models.Reminder, bool) {
	due, ok := parseDate(f.DueDate)
	if !ok {
		return models.Reminder{}, false
	}
	return models.Reminder{
		Title:         f.Title,
		Description:   f.Description,
		Category:      f.Category,
		Priority:      f.Priority,
		Recurrence:    f.Recurrence,
		DueDate:       due,
		AssignedTo:    strings.TrimSpace(f.AssignedTo),
		LinkedType:    f.LinkedType,
		LinkedID:      strings.TrimSpace(f.LinkedID),
		LinkedName:    strings.TrimSpace(f.LinkedName),
		Notifications: f.Notifications,
		Notes:         f.Notes,
	}, true
}

func bindReminder(c *gin.Context) (models.Reminder, bool) {
	var form reminderForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "Некорректные данные")
		return models.Reminder{}, false
	}
	r, ok := form.reminder()
	if !ok {
		badRequest(c, "Некорректная дата: due_date")
		return models.Reminder{}, false
	}
	return r, true
}

func CreateReminder(c *gin.Context) {
	r, ok := bindReminder(c)
	if !ok {
		return
	}

	if err := database.CreateReminder(&r, currentUserName(c), now()); err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "reminder", r.ID, "create", "Создано напоминание: "+r.Title)
	c.JSON(http.StatusCreated, r)
}

func ShowReminder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	r, err := database.GetReminder(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func UpdateReminder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	patch, ok := bindReminder(c)
	if !ok {
		return
	}

	r, err := database.UpdateReminder(id, patch, currentUserName(c), now())
	if err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "reminder", r.ID, "update", "Изменено напоминание: "+r.Title)
	c.JSON(http.StatusOK, r)
}

func DeleteReminder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := database.DeleteReminder(id); err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "reminder", id, "delete", "")
	c.Status(http.StatusNoContent)
}

func CompleteReminder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	r, err := database.CompleteReminder(id, currentUserName(c), now())
	if err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "reminder", r.ID, "complete", "Выполнено напоминание: "+r.Title)
	c.JSON(http.StatusOK, r)
}

type snoozeForm struct {
	Hours int    `json:"hours"`
	Until string `json:"until"`
}

// SnoozeReminder откладывает напоминание на hours часов (по умолчанию 24)
// либо до явного момента until.
func SnoozeReminder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var form snoozeForm
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&form); err != nil {
			badRequest(c, "Некорректные данные")
			return
		}
	}

	t := now()
	until := t.Add(24 * time.Hour)
	switch {
	case form.Until != "":
		u, ok := parseDate(form.Until)
		if !ok {
			badRequest(c, "Некорректная дата: until")
			return
		}
		until = u
	case form.Hours < 0:
		badRequest(c, "Некорректное значение: hours")
		return
	case form.Hours > 0:
		until = t.Add(time.Duration(form.Hours) * time.Hour)
	}

	r, err := database.SnoozeReminder(id, until, currentUserName(c), t)
	if err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "reminder", r.ID, "snooze",
		"Напоминание отложено до "+until.Format(time.RFC3339))
	c.JSON(http.StatusOK, r)
}
