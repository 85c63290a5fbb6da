package database

import (
	"fmt"
	"time"

	"certbody/internal/models"

	"go.uber.org/zap"
)

// SeedDemo заполняет пустую базу демонстрационными данными: клиент с начатым
// циклом ISO 9001, несколько напоминаний и аудитов. Если клиенты уже есть,
// ничего не делает.
func SeedDemo(now time.Time) error {
	var count int64
	if err := DB.Model(&models.Client{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	client := models.Client{
		Name:         "Acme Manufacturing Ltd.",
		Industry:     "Manufacturing",
		Address:      "1234 Industrial Pkwy, Austin, TX",
		ContactName:  "Jane Doe",
		ContactEmail: "quality@acme.example",
	}
	if err := CreateClient(&client); err != nil {
		return fmt.Errorf("seed client: %w", err)
	}

	start := now.AddDate(0, -2, 0)
	cert := models.Certification{ClientID: client.ID, Standard: "ISO 9001:2015", StartDate: &start}
	if err := CreateCertification(&cert); err != nil {
		return fmt.Errorf("seed certification: %w", err)
	}
	for i, doc := range []string{"doc-1", "doc-2", "doc-3"} {
		at := start.AddDate(0, 0, i)
		if _, err := UploadStageDocument(cert.ID, "pre-stage-1", doc, 0, at); err != nil {
			return fmt.Errorf("seed upload %s: %w", doc, err)
		}
	}

	day := func(offset int) time.Time {
		y, m, d := now.AddDate(0, 0, offset).Date()
		return time.Date(y, m, d, 9, 0, 0, 0, now.Location())
	}

	demoReminders := []models.Reminder{
		{
			Title:             "ISO 9001 Certificate Expiry - ABC Manufacturing",
			Description:       "Certificate expires in 30 days. Schedule recertification audit.",
			Category:          models.CategoryCertificate,
			Priority:          models.PriorityHigh,
			DueDate:           day(30),
			AssignedTo:        "Sarah Johnson",
			LinkedType:        models.LinkedClient,
			LinkedName:        "ABC Manufacturing Ltd.",
			Notifications:     []models.NotificationChannel{models.ChannelEmail, models.ChannelInApp},
			IsSystemGenerated: true,
			CreatedBy:         "System",
		},
		{
			Title:         "NC Closing Deadline - Global Foods Inc.",
			Description:   "Major non-conformity must be closed within 30 days.",
			Category:      models.CategoryNC,
			Priority:      models.PriorityHigh,
			Status:        models.ReminderOverdue,
			DueDate:       day(-3),
			AssignedTo:    "Sarah Johnson",
			LinkedType:    models.LinkedClient,
			LinkedName:    "Global Foods Inc.",
			Notifications: []models.NotificationChannel{models.ChannelEmail, models.ChannelInApp},
		},
		{
			Title:         "Invoice Payment Due - Stellar Manufacturing",
			Description:   "Invoice payment due (Stage 2 Audit)",
			Category:      models.CategoryInvoice,
			Priority:      models.PriorityMedium,
			DueDate:       day(0),
			AssignedTo:    "Finance Team",
			Notifications: []models.NotificationChannel{models.ChannelEmail},
		},
	}
	for i := range demoReminders {
		if err := CreateReminder(&demoReminders[i], "System", now); err != nil {
			return fmt.Errorf("seed reminder: %w", err)
		}
	}

	demoAudits := []models.AuditEvent{
		{
			ClientID:        client.ID,
			ClientName:      client.Name,
			CertificationID: cert.ID,
			AuditType:       models.AuditStage1,
			Standard:        "ISO 9001:2015",
			Coordinator:     "Michael Brown",
			Status:          models.AuditConfirmed,
			StartDate:       day(2),
			EndDate:         day(3),
			LocationType:    models.LocationOnSite,
			Location:        client.Address,
			CurrentStage:    "Pre-Stage 1",
			Auditors:        []models.AuditAssignment{{Name: "John Smith"}, {Name: "Sarah Chen"}},
			Files:           []models.AuditFile{{Name: "Stage 1 Audit Plan.pdf", Type: "pdf"}},
		},
		{
			ClientName:   "TechSecure Inc.",
			AuditType:    models.AuditSurveillance1,
			Standard:     "ISO 27001:2022",
			Coordinator:  "Emily Wilson",
			Status:       models.AuditPlanned,
			StartDate:    day(5),
			LocationType: models.LocationRemote,
			Location:     "https://meet.example/techsecure-surv1",
			CurrentStage: "Surveillance I",
			Auditors:     []models.AuditAssignment{{Name: "David Kim"}},
		},
	}
	for i := range demoAudits {
		if err := CreateAuditEvent(&demoAudits[i]); err != nil {
			return fmt.Errorf("seed audit: %w", err)
		}
	}

	Log.Info("seeded demo data",
		zap.Uint("client_id", client.ID),
		zap.Uint("certification_id", cert.ID),
		zap.Int("reminders", len(demoReminders)),
		zap.Int("audits", len(demoAudits)))
	return nil
}
