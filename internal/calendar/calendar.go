// Package calendar отбирает аудиты для календаря: фильтры боковой панели,
// окна месяц/неделя/день и виджет ближайших аудитов.
package calendar

import (
	"errors"
	"sort"
	"strings"
	"time"

	"certbody/internal/models"
)

var (
	ErrInvalidRange     = errors.New("end date is before start date")
	ErrInvalidAuditType = errors.New("invalid audit type")
	ErrInvalidStatus    = errors.New("invalid audit status")
	ErrInvalidLocation  = errors.New("invalid location type")
	ErrClientRequired   = errors.New("client name is required")
)

const (
	UpcomingWindowDays = 7
	UpcomingLimit      = 3
)

// Normalize validates e and derives Duration from the date range.
func Normalize(e *models.AuditEvent) error {
	e.ClientName = strings.TrimSpace(e.ClientName)
	if e.ClientName == "" {
		return ErrClientRequired
	}
	switch e.AuditType {
	case models.AuditStage1, models.AuditStage2, models.AuditSurveillance1,
		models.AuditSurveillance2, models.AuditRecertification:
	default:
		return ErrInvalidAuditType
	}

	if e.Status == "" {
		e.Status = models.AuditPlanned
	}
	switch e.Status {
	case models.AuditPlanned, models.AuditConfirmed, models.AuditCompleted,
		models.AuditCanceled, models.AuditPending:
	default:
		return ErrInvalidStatus
	}

	switch e.LocationType {
	case "", models.LocationOnSite, models.LocationRemote:
	default:
		return ErrInvalidLocation
	}

	if e.EndDate.IsZero() {
		e.EndDate = e.StartDate
	}
	start, end := dayOf(e.StartDate), dayOf(e.EndDate)
	if end.Before(start) {
		return ErrInvalidRange
	}
	e.Duration = int(end.Sub(start).Hours()/24) + 1

	for i := range e.Auditors {
		if e.Auditors[i].Initials == "" {
			e.Auditors[i].Initials = Initials(e.Auditors[i].Name)
		}
	}
	return nil
}

// Initials: "Sarah Chen" -> "SC".
func Initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		r := []rune(part)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}

type Filter struct {
	Auditor   string
	Client    string
	AuditType models.AuditType
	Standard  string
	Status    models.AuditStatus
}

func (f Filter) ActiveCount() int {
	n := 0
	for _, v := range []string{f.Auditor, f.Client, string(f.AuditType), f.Standard, string(f.Status)} {
		if v != "" {
			n++
		}
	}
	return n
}

func (f Filter) Match(e models.AuditEvent) bool {
	if f.Auditor != "" {
		found := false
		for _, a := range e.Auditors {
			if strings.Contains(a.Name, f.Auditor) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Client != "" && !strings.Contains(strings.ToLower(e.ClientName), strings.ToLower(f.Client)) {
		return false
	}
	if f.AuditType != "" && e.AuditType != f.AuditType {
		return false
	}
	if f.Standard != "" && e.Standard != f.Standard {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	return true
}

func Apply(events []models.AuditEvent, f Filter) []models.AuditEvent {
	out := make([]models.AuditEvent, 0, len(events))
	for _, e := range events {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// EventsOn отбирает аудиты, начинающиеся в указанный календарный день.
func EventsOn(events []models.AuditEvent, day time.Time) []models.AuditEvent {
	y, m, d := day.Date()
	out := []models.AuditEvent{}
	for _, e := range events {
		ey, em, ed := e.StartDate.In(day.Location()).Date()
		if ey == y && em == m && ed == d {
			out = append(out, e)
		}
	}
	return out
}

// InRange returns events whose days overlap [from, to). An event occupies
// whole days from its start day through its end day.
func InRange(events []models.AuditEvent, from, to time.Time) []models.AuditEvent {
	out := []models.AuditEvent{}
	for _, e := range events {
		last := e.EndDate
		if last.Before(e.StartDate) {
			last = e.StartDate
		}
		start, end := dayOf(e.StartDate), dayOf(last).AddDate(0, 0, 1)
		if start.Before(to) && end.After(from) {
			out = append(out, e)
		}
	}
	sortByStart(out)
	return out
}

// Окна для режимов просмотра. Все интервалы полуоткрытые [from, to).

func MonthWindow(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 1, 0)
}

// WeekWindow starts the week on Sunday, like the month grid.
func WeekWindow(t time.Time) (time.Time, time.Time) {
	from := dayOf(t).AddDate(0, 0, -int(t.Weekday()))
	return from, from.AddDate(0, 0, 7)
}

func DayWindow(t time.Time) (time.Time, time.Time) {
	from := dayOf(t)
	return from, from.AddDate(0, 0, 1)
}

// Upcoming — ближайшие аудиты от начала текущего дня до now+7×24ч, без
// завершённых и отменённых, по дате начала.
func Upcoming(events []models.AuditEvent, now time.Time, limit int) []models.AuditEvent {
	today := dayOf(now)
	horizon := now.Add(UpcomingWindowDays * 24 * time.Hour)

	out := []models.AuditEvent{}
	for _, e := range events {
		if e.Status == models.AuditCompleted || e.Status == models.AuditCanceled {
			continue
		}
		if e.StartDate.Before(today) || e.StartDate.After(horizon) {
			continue
		}
		out = append(out, e)
	}
	sortByStart(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sortByStart(events []models.AuditEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartDate.Before(events[j].StartDate)
	})
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
