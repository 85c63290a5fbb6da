package models

import (
	"time"

	"gorm.io/gorm"
)

type AuditType string
type AuditStatus string
type LocationType string

const (
	AuditStage1          AuditType = "Stage 1"
	AuditStage2          AuditType = "Stage 2"
	AuditSurveillance1   AuditType = "Surveillance I"
	AuditSurveillance2   AuditType = "Surveillance II"
	AuditRecertification AuditType = "Recertification"

	AuditPlanned   AuditStatus = "Planned"
	AuditConfirmed AuditStatus = "Confirmed"
	AuditCompleted AuditStatus = "Completed"
	AuditCanceled  AuditStatus = "Canceled"
	AuditPending   AuditStatus = "Pending"

	LocationOnSite LocationType = "On-site"
	LocationRemote LocationType = "Remote"
)

// AuditEvent — запланированный аудит в календаре.
type AuditEvent struct {
	gorm.Model
	ClientID        uint   `json:"client_id,omitempty"`
	ClientName      string `gorm:"size:255;not null" json:"client_name"`
	CertificationID uint   `json:"certification_id,omitempty"`

	AuditType    AuditType    `gorm:"type:varchar(20);not null" json:"audit_type"`
	Standard     string       `gorm:"size:64;not null" json:"standard"`
	Coordinator  string       `gorm:"size:255" json:"coordinator"`
	Status       AuditStatus  `gorm:"type:varchar(20);not null" json:"status"`
	StartDate    time.Time    `gorm:"not null;index" json:"start_date"`
	EndDate      time.Time    `gorm:"not null" json:"end_date"`
	Duration     int          `json:"duration"` // дней, включительно
	LocationType LocationType `gorm:"type:varchar(10)" json:"location_type"`
	Location     string       `gorm:"size:512" json:"location"`
	CurrentStage string       `gorm:"size:64" json:"current_stage"`
	Notes        string       `gorm:"type:text" json:"notes"`

	Auditors []AuditAssignment `gorm:"constraint:OnDelete:CASCADE" json:"auditors"`
	Files    []AuditFile       `gorm:"constraint:OnDelete:CASCADE" json:"files"`
}

type AuditAssignment struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	AuditEventID uint   `gorm:"index;not null" json:"-"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Initials     string `gorm:"size:8" json:"initials"`
}

type AuditFile struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	AuditEventID uint   `gorm:"index;not null" json:"-"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Type         string `gorm:"size:16" json:"type"` // pdf, email ...
}
