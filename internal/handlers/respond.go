package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"certbody/internal/calendar"
	"certbody/internal/database"
	"certbody/internal/lifecycle"
	"certbody/internal/models"
	"certbody/internal/reminders"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError переводит доменные ошибки в HTTP-коды.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, database.ErrClientNotFound),
		errors.Is(err, database.ErrCertificationNotFound),
		errors.Is(err, database.ErrReminderNotFound),
		errors.Is(err, database.ErrAuditNotFound),
		errors.Is(err, database.ErrNCNotFound),
		errors.Is(err, lifecycle.ErrStageNotFound),
		errors.Is(err, lifecycle.ErrDocumentNotFound):
		status = http.StatusNotFound

	case errors.Is(err, lifecycle.ErrStageLocked),
		errors.Is(err, lifecycle.ErrIncomplete),
		errors.Is(err, lifecycle.ErrNCNotTracked),
		errors.Is(err, lifecycle.ErrNoOpenNC),
		errors.Is(err, reminders.ErrAlreadyCompleted),
		errors.Is(err, database.ErrClientExists):
		status = http.StatusConflict

	case errors.Is(err, reminders.ErrTitleRequired),
		errors.Is(err, reminders.ErrDueDateRequired),
		errors.Is(err, reminders.ErrInvalidCategory),
		errors.Is(err, reminders.ErrInvalidPriority),
		errors.Is(err, reminders.ErrInvalidStatus),
		errors.Is(err, reminders.ErrInvalidRecurrence),
		errors.Is(err, reminders.ErrInvalidChannel),
		errors.Is(err, reminders.ErrInvalidLinkedType),
		errors.Is(err, reminders.ErrSnoozeInPast),
		errors.Is(err, calendar.ErrInvalidRange),
		errors.Is(err, calendar.ErrInvalidAuditType),
		errors.Is(err, calendar.ErrInvalidStatus),
		errors.Is(err, calendar.ErrInvalidLocation),
		errors.Is(err, calendar.ErrClientRequired):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		database.Log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
		c.JSON(status, gin.H{"error": "внутренняя ошибка сервера"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "Некорректный ID: "+name)
		return 0, false
	}
	return uint(id), true
}

func currentUserID(c *gin.Context) uint {
	uid, _ := sessions.Default(c).Get("user_id").(uint)
	return uid
}

func currentRole(c *gin.Context) models.UserRole {
	roleStr, _ := sessions.Default(c).Get("role").(string)
	return models.UserRole(roleStr)
}

// currentUserName возвращает имя для истории напоминаний. Пользователя кладёт
// middleware.InjectUser.
func currentUserName(c *gin.Context) string {
	if uVal, ok := c.Get("CurrentUser"); ok {
		if u, ok := uVal.(models.User); ok {
			if u.FullName != "" {
				return u.FullName
			}
			return u.Username
		}
	}
	return "unknown"
}
