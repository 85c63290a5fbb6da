package database

import (
	"certbody/internal/models"

	"go.uber.org/zap"
)

// helper для записи в журнал аудита
func CreateAuditLog(userID uint, entity string, entityID uint, action, details string) {
	if DB == nil {
		return
	}
	record := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	if err := DB.Create(&record).Error; err != nil {
		Log.Warn("failed to write audit log",
			zap.String("entity", entity),
			zap.Uint("entity_id", entityID),
			zap.Error(err))
	}
}

func ListAuditLogs(entity string, entityID uint, limit int) ([]models.AuditLog, error) {
	q := DB.Preload("User").Order("created_at desc, id desc")
	if entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if entityID != 0 {
		q = q.Where("entity_id = ?", entityID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var logs []models.AuditLog
	err := q.Find(&logs).Error
	return logs, err
}
