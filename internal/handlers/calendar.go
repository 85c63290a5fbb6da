package handlers

import (
	"net/http"
	"strings"
	"time"

	"certbody/internal/calendar"
	"certbody/internal/database"
	"certbody/internal/models"

	"github.com/gin-gonic/gin"
)

//
// КАЛЕНДАРЬ АУДИТОВ
//

func auditFilter(c *gin.Context) calendar.Filter {
	return calendar.Filter{
		Auditor:   c.Query("auditor"),
		Client:    c.Query("client"),
		AuditType: models.AuditType(c.Query("type")),
		Standard:  c.Query("standard"),
		Status:    models.AuditStatus(c.Query("status")),
	}
}

// auditWindow разбирает либо явный интервал from/to, либо view=month|week|day
// вокруг date. Без параметров окно не ограничено.
func auditWindow(c *gin.Context) (from, to time.Time, limited, ok bool) {
	if v := c.Query("view"); v != "" {
		anchor := now()
		if d := c.Query("date"); d != "" {
			t, good := parseDate(d)
			if !good {
				badRequest(c, "Некорректная дата: date")
				return
			}
			anchor = t
		}
		switch v {
		case "month":
			from, to = calendar.MonthWindow(anchor)
		case "week":
			from, to = calendar.WeekWindow(anchor)
		case "day":
			from, to = calendar.DayWindow(anchor)
		default:
			badRequest(c, "Некорректный режим: view")
			return
		}
		return from, to, true, true
	}

	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr == "" && toStr == "" {
		return time.Time{}, time.Time{}, false, true
	}
	from, good := parseDate(fromStr)
	if !good || fromStr == "" {
		badRequest(c, "Некорректная дата: from")
		return
	}
	to, good = parseDate(toStr)
	if !good || toStr == "" {
		badRequest(c, "Некорректная дата: to")
		return
	}
	if !to.After(from) {
		respondError(c, calendar.ErrInvalidRange)
		return
	}
	return from, to, true, true
}

func ListAudits(c *gin.Context) {
	from, to, limited, ok := auditWindow(c)
	if !ok {
		return
	}

	events, err := database.ListAuditEvents()
	if err != nil {
		respondError(c, err)
		return
	}

	f := auditFilter(c)
	events = calendar.Apply(events, f)
	if limited {
		events = calendar.InRange(events, from, to)
	}

	c.JSON(http.StatusOK, gin.H{
		"audits":         events,
		"active_filters": f.ActiveCount(),
	})
}

func UpcomingAudits(c *gin.Context) {
	events, err := database.ListAuditEvents()
	if err != nil {
		respondError(c, err)
		return
	}
	events = calendar.Apply(events, auditFilter(c))
	c.JSON(http.StatusOK, gin.H{"audits": calendar.Upcoming(events, now(), calendar.UpcomingLimit)})
}

func AuditsOnDay(c *gin.Context) {
	day, ok := parseDate(c.Param("date"))
	if !ok || c.Param("date") == "" {
		badRequest(c, "Некорректная дата")
		return
	}

	events, err := database.ListAuditEvents()
	if err != nil {
		respondError(c, err)
		return
	}
	events = calendar.Apply(events, auditFilter(c))
	c.JSON(http.StatusOK, gin.H{"audits": calendar.EventsOn(events, day)})
}

type auditForm struct {
	ClientID        uint                `json:"client_id"`
	ClientName      string              `json:"client_name"`
	CertificationID uint                `json:"certification_id"`
	AuditType       models.AuditType    `json:"audit_type"`
	Standard        string              `json:"standard"`
	Coordinator     string              `json:"coordinator"`
	Status          models.AuditStatus  `json:"status"`
	StartDate       string              `json:"start_date"`
	EndDate         string              `json:"end_date"`
	LocationType    models.LocationType `json:"location_type"`
	Location        string              `json:"location"`
	CurrentStage    string              `json:"current_stage"`
	Notes           string              `json:"notes"`
	Auditors        []string            `json:"auditors"`
	Files           []models.AuditFile  `json:"files"`
}

func CreateAudit(c *gin.Context) {
	var form auditForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "Некорректные данные")
		return
	}

	start, ok := parseDate(form.StartDate)
	if !ok || form.StartDate == "" {
		badRequest(c, "Некорректная дата: start_date")
		return
	}
	end, ok := parseDate(form.EndDate)
	if !ok {
		badRequest(c, "Некорректная дата: end_date")
		return
	}
	if strings.TrimSpace(form.Standard) == "" {
		badRequest(c, "Укажите стандарт")
		return
	}

	e := models.AuditEvent{
		ClientID:        form.ClientID,
		ClientName:      form.ClientName,
		CertificationID: form.CertificationID,
		AuditType:       form.AuditType,
		Standard:        strings.TrimSpace(form.Standard),
		Coordinator:     strings.TrimSpace(form.Coordinator),
		Status:          form.Status,
		StartDate:       start,
		EndDate:         end,
		LocationType:    form.LocationType,
		Location:        strings.TrimSpace(form.Location),
		CurrentStage:    strings.TrimSpace(form.CurrentStage),
		Notes:           form.Notes,
		Files:           form.Files,
	}
	for _, name := range form.Auditors {
		if name = strings.TrimSpace(name); name != "" {
			e.Auditors = append(e.Auditors, models.AuditAssignment{Name: name})
		}
	}

	if err := database.CreateAuditEvent(&e); err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "audit", e.ID, "create",
		string(e.AuditType)+" / "+e.ClientName)
	c.JSON(http.StatusCreated, e)
}

func ShowAudit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	e, err := database.GetAuditEvent(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

type auditStatusForm struct {
	Status models.AuditStatus `json:"status"`
}

func UpdateAuditStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var form auditStatusForm
	if err := c.ShouldBindJSON(&form); err != nil || form.Status == "" {
		badRequest(c, "Укажите статус")
		return
	}

	e, err := database.UpdateAuditStatus(id, form.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "audit", e.ID, "status", string(e.Status))
	c.JSON(http.StatusOK, e)
}
