package models

import "time"

type NCSeverity string
type NCStatus string

const (
	NCMajor NCSeverity = "major"
	NCMinor NCSeverity = "minor"

	NCOpen   NCStatus = "open"
	NCClosed NCStatus = "closed"
)

// NonConformity — несоответствие, выявленное на аудите этапа.
type NonConformity struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	CertStageID uint `gorm:"index;not null" json:"cert_stage_id"`

	Severity    NCSeverity `gorm:"type:varchar(10);not null" json:"severity"`
	Status      NCStatus   `gorm:"type:varchar(10);not null" json:"status"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`

	RaisedAt time.Time  `json:"raised_at"`
	ClosedAt *time.Time `json:"closed_at"`
	RaisedBy uint       `json:"raised_by"`
}
