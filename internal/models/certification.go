package models

import (
	"time"

	"gorm.io/gorm"
)

type CertificationStatus string

const (
	CertActive    CertificationStatus = "active"
	CertSuspended CertificationStatus = "suspended"
	CertWithdrawn CertificationStatus = "withdrawn"
)

// Certification — цикл сертификации клиента по одному стандарту.
type Certification struct {
	gorm.Model
	ClientID uint   `json:"client_id"`
	Client   Client `json:"client,omitempty"`

	Standard  string              `gorm:"size:64;not null" json:"standard"` // ISO 9001:2015 и т.п.
	Status    CertificationStatus `gorm:"type:varchar(20);not null" json:"status"`
	StartDate *time.Time          `json:"start_date"`

	CoordinatorID uint `json:"coordinator_id"`

	Stages []CertStage `gorm:"constraint:OnDelete:CASCADE" json:"stages,omitempty"`
}

// CertStage — этап цикла. Position задаёт порядок и не меняется после создания.
type CertStage struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	CertificationID uint `gorm:"index;not null" json:"certification_id"`
	Position        int  `gorm:"not null" json:"position"`

	Key            string `gorm:"size:64;not null" json:"key"` // pre-stage-1, stage-2 ...
	Name           string `gorm:"size:255;not null" json:"name"`
	ShortName      string `gorm:"size:64" json:"short_name"`
	Category       string `gorm:"type:varchar(20);not null" json:"category"`
	NotifiesClient bool   `json:"notifies_client"`
	TracksNC       bool   `json:"tracks_nc"`

	Status      string     `gorm:"type:varchar(20);not null" json:"status"`
	Progress    int        `gorm:"not null;default:0" json:"progress"`
	CompletedAt *time.Time `json:"completed_at"`

	Documents       []StageDocument `gorm:"constraint:OnDelete:CASCADE" json:"documents"`
	NonConformities []NonConformity `gorm:"constraint:OnDelete:CASCADE" json:"non_conformities,omitempty"`
}

type StageDocument struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	CertStageID uint `gorm:"index;not null" json:"cert_stage_id"`
	Position    int  `gorm:"not null" json:"position"`

	Key        string     `gorm:"size:64;not null" json:"key"` // doc-1 ...
	Name       string     `gorm:"size:255;not null" json:"name"`
	Uploaded   bool       `json:"uploaded"`
	UploadDate *time.Time `json:"upload_date"`
	FileRef    string     `gorm:"size:64" json:"file_ref,omitempty"`
	UploadedBy uint       `json:"uploaded_by,omitempty"`
}
