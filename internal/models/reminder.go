package models

import (
	"time"

	"gorm.io/gorm"
)

type ReminderCategory string
type ReminderPriority string
type ReminderStatus string
type Recurrence string
type NotificationChannel string
type LinkedEntityType string

const (
	CategoryAudit       ReminderCategory = "audit"
	CategoryCertificate ReminderCategory = "certificate"
	CategoryNC          ReminderCategory = "nc"
	CategoryInvoice     ReminderCategory = "invoice"
	CategoryDocument    ReminderCategory = "document"
	CategoryContract    ReminderCategory = "contract"
	CategoryCompetency  ReminderCategory = "competency"
	CategoryMeeting     ReminderCategory = "meeting"
	CategoryOther       ReminderCategory = "other"

	PriorityHigh   ReminderPriority = "high"
	PriorityMedium ReminderPriority = "medium"
	PriorityLow    ReminderPriority = "low"

	ReminderPending   ReminderStatus = "pending"
	ReminderCompleted ReminderStatus = "completed"
	ReminderSnoozed   ReminderStatus = "snoozed"
	ReminderOverdue   ReminderStatus = "overdue"

	RecurNone    Recurrence = "none"
	RecurDaily   Recurrence = "daily"
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
	RecurYearly  Recurrence = "yearly"
	RecurCustom  Recurrence = "custom"

	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
	ChannelInApp NotificationChannel = "in-app"

	LinkedClient      LinkedEntityType = "client"
	LinkedAuditor     LinkedEntityType = "auditor"
	LinkedCertificate LinkedEntityType = "certificate"
	LinkedAudit       LinkedEntityType = "audit"
)

type Reminder struct {
	gorm.Model
	Title       string           `gorm:"size:255;not null" json:"title"`
	Description string           `gorm:"type:text" json:"description"`
	Category    ReminderCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Priority    ReminderPriority `gorm:"type:varchar(10);not null" json:"priority"`
	Status      ReminderStatus   `gorm:"type:varchar(10);not null;index" json:"status"`
	Recurrence  Recurrence       `gorm:"type:varchar(10);not null" json:"recurrence"`
	DueDate     time.Time        `gorm:"not null;index" json:"due_date"`
	AssignedTo  string           `gorm:"size:255" json:"assigned_to"`

	// связанная сущность (необязательно)
	LinkedType LinkedEntityType `gorm:"type:varchar(20)" json:"linked_type,omitempty"`
	LinkedID   string           `gorm:"size:64" json:"linked_id,omitempty"`
	LinkedName string           `gorm:"size:255" json:"linked_name,omitempty"`

	Notifications []NotificationChannel `gorm:"serializer:json" json:"notifications"`
	Notes         string                `gorm:"type:text" json:"notes"`

	SnoozedUntil      *time.Time `json:"snoozed_until"`
	CompletedAt       *time.Time `json:"completed_at"`
	IsSystemGenerated bool       `json:"is_system_generated"`
	CreatedBy         string     `gorm:"size:255" json:"created_by"`

	History []ReminderHistory `gorm:"constraint:OnDelete:CASCADE" json:"history,omitempty"`
}

type ReminderHistory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReminderID uint      `gorm:"index;not null" json:"reminder_id"`
	Action     string    `gorm:"size:100;not null" json:"action"`
	User       string    `gorm:"size:255" json:"user"`
	Timestamp  time.Time `json:"timestamp"`
	Details    string    `gorm:"type:text" json:"details,omitempty"`
}
