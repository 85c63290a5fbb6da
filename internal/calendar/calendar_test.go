package calendar

import (
	"testing"
	"time"

	"certbody/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func event(id uint, client string, typ models.AuditType, status models.AuditStatus, start, end time.Time, auditors ...string) models.AuditEvent {
	e := models.AuditEvent{
		ClientName: client,
		AuditType:  typ,
		Standard:   "ISO 9001:2015",
		Status:     status,
		StartDate:  start,
		EndDate:    end,
	}
	e.ID = id
	for _, a := range auditors {
		e.Auditors = append(e.Auditors, models.AuditAssignment{Name: a, Initials: Initials(a)})
	}
	return e
}

func eventIDs(list []models.AuditEvent) []uint {
	out := []uint{}
	for _, e := range list {
		out = append(out, e.ID)
	}
	return out
}

func sample() []models.AuditEvent {
	acme := event(1, "Acme Manufacturing Ltd.", models.AuditStage2, models.AuditConfirmed, date(12, 15), date(12, 16), "John Smith", "Sarah Chen")
	tech := event(2, "TechSecure Inc.", models.AuditSurveillance1, models.AuditPlanned, date(12, 18), date(12, 18), "David Kim")
	tech.Standard = "ISO 27001:2022"
	logi := event(3, "Global Logistics Co.", models.AuditStage1, models.AuditPending, date(12, 20), date(12, 20), "Maria Garcia")
	medi := event(4, "MediCare Solutions", models.AuditRecertification, models.AuditConfirmed, date(12, 22), date(12, 24), "Robert Taylor", "Lisa Anderson")
	done := event(5, "EcoEnergy Systems", models.AuditSurveillance2, models.AuditCompleted, date(12, 17), date(12, 17), "Sarah Chen")
	return []models.AuditEvent{medi, acme, tech, logi, done}
}

func TestFilter(t *testing.T) {
	events := sample()

	assert.ElementsMatch(t, []uint{1, 5}, eventIDs(Apply(events, Filter{Auditor: "Sarah"})))
	assert.Equal(t, []uint{2}, eventIDs(Apply(events, Filter{Client: "techsecure"})))
	assert.Equal(t, []uint{3}, eventIDs(Apply(events, Filter{AuditType: models.AuditStage1})))
	assert.Equal(t, []uint{2}, eventIDs(Apply(events, Filter{Standard: "ISO 27001:2022"})))
	assert.ElementsMatch(t, []uint{1, 4}, eventIDs(Apply(events, Filter{Status: models.AuditConfirmed})))
	assert.Len(t, Apply(events, Filter{}), 5)

	// поиск по аудитору чувствителен к регистру
	assert.Empty(t, Apply(events, Filter{Auditor: "sarah"}))
}

func TestActiveCount(t *testing.T) {
	assert.Zero(t, Filter{}.ActiveCount())
	assert.Equal(t, 2, Filter{Client: "acme", Status: models.AuditPlanned}.ActiveCount())
}

func TestEventsOn(t *testing.T) {
	events := sample()
	assert.Equal(t, []uint{1}, eventIDs(EventsOn(events, date(12, 15).Add(13*time.Hour))))
	// многодневный аудит показывается только в день начала
	assert.Empty(t, EventsOn(events, date(12, 16)))
}

func TestInRange(t *testing.T) {
	events := sample()

	from, to := DayWindow(date(12, 23))
	assert.Equal(t, []uint{4}, eventIDs(InRange(events, from, to)))

	from, to = DayWindow(date(12, 16))
	assert.Equal(t, []uint{1}, eventIDs(InRange(events, from, to)))

	from, to = WeekWindow(date(12, 18)) // Wed -> Sun 15 .. Sat 21
	assert.Equal(t, date(12, 15), from)
	assert.Equal(t, []uint{1, 5, 2, 3}, eventIDs(InRange(events, from, to)))

	from, to = MonthWindow(date(12, 9))
	assert.Equal(t, date(12, 1), from)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), to)
	assert.Len(t, InRange(events, from, to), 5)

	from, to = MonthWindow(date(11, 30))
	assert.Empty(t, InRange(events, from, to))
}

func TestUpcoming(t *testing.T) {
	events := sample()
	now := date(12, 15).Add(9 * time.Hour)

	assert.Equal(t, []uint{1, 2, 3}, eventIDs(Upcoming(events, now, UpcomingLimit)))
	assert.Equal(t, []uint{1, 2, 3, 4}, eventIDs(Upcoming(events, now, 0)))

	assert.Equal(t, []uint{4}, eventIDs(Upcoming(events, date(12, 21), UpcomingLimit)))
	assert.Empty(t, Upcoming(events, date(12, 25), UpcomingLimit))
}

func TestUpcomingHorizonIsSevenDaysFromNow(t *testing.T) {
	now := date(12, 15).Add(9 * time.Hour)
	inside := event(6, "Nordic Foods AB", models.AuditStage1, models.AuditPlanned,
		date(12, 22).Add(8*time.Hour), date(12, 22), "John Smith")
	edge := event(7, "Harbor Freight Lines", models.AuditStage1, models.AuditPlanned,
		date(12, 22).Add(9*time.Hour), date(12, 22), "John Smith")
	outside := event(8, "Alpine Textiles", models.AuditStage2, models.AuditPlanned,
		date(12, 22).Add(10*time.Hour), date(12, 22), "Maria Garcia")
	earlier := event(9, "Delta Ceramics", models.AuditStage2, models.AuditPlanned,
		date(12, 15).Add(7*time.Hour), date(12, 15), "Maria Garcia")

	got := Upcoming([]models.AuditEvent{outside, edge, inside, earlier}, now, 0)
	assert.Equal(t, []uint{9, 6, 7}, eventIDs(got))
}

func TestNormalize(t *testing.T) {
	e := models.AuditEvent{
		ClientName: " FinTech Partners ",
		AuditType:  models.AuditStage1,
		StartDate:  date(12, 27),
		EndDate:    date(12, 29),
		Auditors:   []models.AuditAssignment{{Name: "John Smith"}},
	}
	require.NoError(t, Normalize(&e))
	assert.Equal(t, "FinTech Partners", e.ClientName)
	assert.Equal(t, models.AuditPlanned, e.Status)
	assert.Equal(t, 3, e.Duration)
	assert.Equal(t, "JS", e.Auditors[0].Initials)

	single := models.AuditEvent{ClientName: "x", AuditType: models.AuditStage2, StartDate: date(12, 1)}
	require.NoError(t, Normalize(&single))
	assert.Equal(t, 1, single.Duration)
	assert.Equal(t, single.StartDate, single.EndDate)
}

func TestNormalizeErrors(t *testing.T) {
	ok := func() models.AuditEvent {
		return models.AuditEvent{ClientName: "x", AuditType: models.AuditStage1, StartDate: date(12, 2), EndDate: date(12, 3)}
	}

	e := ok()
	e.EndDate = date(12, 1)
	assert.ErrorIs(t, Normalize(&e), ErrInvalidRange)

	e = ok()
	e.AuditType = "Stage 3"
	assert.ErrorIs(t, Normalize(&e), ErrInvalidAuditType)

	e = ok()
	e.Status = "Done"
	assert.ErrorIs(t, Normalize(&e), ErrInvalidStatus)

	e = ok()
	e.LocationType = "Moon"
	assert.ErrorIs(t, Normalize(&e), ErrInvalidLocation)

	e = ok()
	e.ClientName = ""
	assert.ErrorIs(t, Normalize(&e), ErrClientRequired)
}
