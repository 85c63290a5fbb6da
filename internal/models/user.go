package models

import "gorm.io/gorm"

type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleCoordinator UserRole = "coordinator" // планирование аудитов, клиенты
	RoleAuditor     UserRole = "auditor"     // загрузка документов, несоответствия
	RoleViewer      UserRole = "viewer"
)

type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:50;not null" json:"username"`
	FullName     string   `gorm:"size:255" json:"full_name"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
}
