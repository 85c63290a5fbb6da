package handlers

import (
	"net/http"

	"certbody/internal/calendar"
	"certbody/internal/database"
	"certbody/internal/models"
	"certbody/internal/reminders"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Dashboard собирает главную страницу: счётчики напоминаний, колокольчик
// и ближайшие аудиты. Источники читаются параллельно.
func Dashboard(c *gin.Context) {
	var (
		list    []models.Reminder
		events  []models.AuditEvent
		clients []models.Client
	)

	var eg errgroup.Group
	eg.Go(func() (err error) {
		list, err = database.ListReminders()
		return err
	})
	eg.Go(func() (err error) {
		events, err = database.ListAuditEvents()
		return err
	})
	eg.Go(func() (err error) {
		clients, err = database.ListClients()
		return err
	})
	if err := eg.Wait(); err != nil {
		respondError(c, err)
		return
	}

	t := now()
	c.JSON(http.StatusOK, gin.H{
		"clients":         len(clients),
		"reminders":       reminders.Summarize(list, t),
		"notifications":   reminders.Notifications(list, t),
		"upcoming_audits": calendar.Upcoming(events, t, calendar.UpcomingLimit),
	})
}
