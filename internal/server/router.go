package server

import (
	"net/http"

	"certbody/internal/config"
	"certbody/internal/handlers"
	"certbody/internal/middleware"
	"certbody/internal/models"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(cfg *config.Config, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// сессия нужна раньше логгера: он пишет user_id
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 8 * 3600, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("cert_session", store))

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.InjectUser())

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// AUTH
	api.POST("/login", handlers.Login)
	api.POST("/logout", handlers.Logout)

	auth := api.Group("/")
	auth.Use(middleware.RequireAuth())

	auth.GET("/me", handlers.Me)
	auth.GET("/dashboard", handlers.Dashboard)

	staff := middleware.RequireRole(models.RoleAdmin, models.RoleCoordinator)
	fieldWork := middleware.RequireRole(models.RoleAdmin, models.RoleCoordinator, models.RoleAuditor)

	// КЛИЕНТЫ
	auth.GET("/clients", handlers.ListClients)
	auth.POST("/clients", staff, handlers.CreateClient)
	auth.GET("/clients/:id", handlers.ShowClient)
	auth.POST("/clients/:id/certifications", staff, handlers.CreateCertification)

	// ЦИКЛ СЕРТИФИКАЦИИ
	auth.GET("/certifications/:id", handlers.ShowCertification)
	auth.GET("/certifications/:id/stages", handlers.ListStages)
	auth.POST("/certifications/:id/stages/:stage_id/documents/:doc_id/upload", fieldWork, handlers.UploadDocument)
	auth.POST("/certifications/:id/stages/:stage_id/complete", fieldWork, handlers.CompleteStage)
	auth.POST("/certifications/:id/stages/:stage_id/nc", fieldWork, handlers.RaiseNonConformity)
	auth.POST("/certifications/:id/stages/:stage_id/nc/:nc_id/close", fieldWork, handlers.CloseNonConformity)

	// НАПОМИНАНИЯ
	auth.GET("/reminders", handlers.ListReminders)
	auth.GET("/reminders/dashboard", handlers.RemindersDashboard)
	auth.GET("/reminders/notifications", handlers.ReminderNotifications)
	auth.POST("/reminders", fieldWork, handlers.CreateReminder)
	auth.GET("/reminders/:id", handlers.ShowReminder)
	auth.PUT("/reminders/:id", fieldWork, handlers.UpdateReminder)
	auth.DELETE("/reminders/:id", staff, handlers.DeleteReminder)
	auth.POST("/reminders/:id/complete", fieldWork, handlers.CompleteReminder)
	auth.POST("/reminders/:id/snooze", fieldWork, handlers.SnoozeReminder)

	// КАЛЕНДАРЬ АУДИТОВ
	auth.GET("/audits", handlers.ListAudits)
	auth.GET("/audits/upcoming", handlers.UpcomingAudits)
	auth.GET("/audits/day/:date", handlers.AuditsOnDay)
	auth.POST("/audits", staff, handlers.CreateAudit)
	auth.GET("/audits/:id", handlers.ShowAudit)
	auth.PATCH("/audits/:id/status", staff, handlers.UpdateAuditStatus)

	// ЖУРНАЛ ДЕЙСТВИЙ
	auth.GET("/audit-log",
		middleware.RequireRole(models.RoleAdmin, models.RoleViewer),
		handlers.ListAuditLogs,
	)

	return r
}
