package database

import (
	"errors"

	"certbody/internal/calendar"
	"certbody/internal/models"

	"gorm.io/gorm"
)

var ErrAuditNotFound = errors.New("audit event not found")

func ListAuditEvents() ([]models.AuditEvent, error) {
	var events []models.AuditEvent
	err := DB.Preload("Auditors").Preload("Files").
		Order("start_date asc, id asc").
		Find(&events).Error
	return events, err
}

func GetAuditEvent(id uint) (*models.AuditEvent, error) {
	var e models.AuditEvent
	if err := DB.Preload("Auditors").Preload("Files").First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuditNotFound
		}
		return nil, err
	}
	return &e, nil
}

func CreateAuditEvent(e *models.AuditEvent) error {
	if err := calendar.Normalize(e); err != nil {
		return err
	}
	if e.ClientID != 0 {
		var client models.Client
		if err := DB.First(&client, e.ClientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClientNotFound
			}
			return err
		}
	}
	return DB.Create(e).Error
}

func UpdateAuditStatus(id uint, status models.AuditStatus) (*models.AuditEvent, error) {
	e, err := GetAuditEvent(id)
	if err != nil {
		return nil, err
	}
	e.Status = status
	if err := calendar.Normalize(e); err != nil {
		return nil, err
	}
	if err := DB.Model(e).Update("status", e.Status).Error; err != nil {
		return nil, err
	}
	return e, nil
}
