package models

import "gorm.io/gorm"

// Client — организация, проходящая сертификацию.
type Client struct {
	gorm.Model
	Name         string `gorm:"size:255;not null" json:"name"`
	Industry     string `gorm:"size:100" json:"industry"`
	Address      string `gorm:"size:255" json:"address"`
	ContactName  string `gorm:"size:255" json:"contact_name"`
	ContactEmail string `gorm:"size:255" json:"contact_email"`
	ContactPhone string `gorm:"size:50" json:"contact_phone"`
	Notes        string `gorm:"type:text" json:"notes"`

	Certifications []Certification `json:"certifications,omitempty"`
}
