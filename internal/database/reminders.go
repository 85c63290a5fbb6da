package database

import (
	"errors"
	"time"

	"certbody/internal/models"
	"certbody/internal/reminders"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrReminderNotFound = errors.New("reminder not found")

func ListReminders() ([]models.Reminder, error) {
	var list []models.Reminder
	err := DB.Order("due_date asc, id asc").Find(&list).Error
	return list, err
}

func GetReminder(id uint) (*models.Reminder, error) {
	return loadReminder(DB, id, false)
}

// loadReminder читает напоминание с историей; forUpdate блокирует строку до
// конца транзакции tx.
func loadReminder(tx *gorm.DB, id uint, forUpdate bool) (*models.Reminder, error) {
	q := tx
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var r models.Reminder
	err := q.Preload("History", func(db *gorm.DB) *gorm.DB {
		return db.Order("timestamp asc, id asc")
	}).First(&r, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, err
	}
	return &r, nil
}

func CreateReminder(r *models.Reminder, by string, now time.Time) error {
	if err := reminders.Normalize(r); err != nil {
		return err
	}
	if r.CreatedBy == "" {
		r.CreatedBy = by
	}
	r.History = nil

	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(r).Error; err != nil {
			return err
		}
		h := reminders.Touch(r, "Created", by, now, "")
		return tx.Create(&h).Error
	})
}

// UpdateReminder переносит редактируемые поля из patch в сохранённое
// напоминание. Статус и отметки выполнения/откладывания не трогаются.
func UpdateReminder(id uint, patch models.Reminder, by string, now time.Time) (*models.Reminder, error) {
	return mutateReminder(id, func(r *models.Reminder) (models.ReminderHistory, error) {
		r.Title = patch.Title
		r.Description = patch.Description
		r.Category = patch.Category
		r.Priority = patch.Priority
		r.Recurrence = patch.Recurrence
		r.DueDate = patch.DueDate
		r.AssignedTo = patch.AssignedTo
		r.LinkedType = patch.LinkedType
		r.LinkedID = patch.LinkedID
		r.LinkedName = patch.LinkedName
		r.Notifications = patch.Notifications
		r.Notes = patch.Notes
		if err := reminders.Normalize(r); err != nil {
			return models.ReminderHistory{}, err
		}
		return reminders.Touch(r, "Updated", by, now, ""), nil
	})
}

func CompleteReminder(id uint, by string, now time.Time) (*models.Reminder, error) {
	return mutateReminder(id, func(r *models.Reminder) (models.ReminderHistory, error) {
		return reminders.Complete(r, by, now)
	})
}

func SnoozeReminder(id uint, until time.Time, by string, now time.Time) (*models.Reminder, error) {
	return mutateReminder(id, func(r *models.Reminder) (models.ReminderHistory, error) {
		return reminders.Snooze(r, until, by, now)
	})
}

// mutateReminder читает, меняет и сохраняет напоминание в одной транзакции
// под блокировкой строки, как mutateStage для этапов.
func mutateReminder(id uint, fn func(r *models.Reminder) (models.ReminderHistory, error)) (*models.Reminder, error) {
	var out *models.Reminder

	err := DB.Transaction(func(tx *gorm.DB) error {
		r, err := loadReminder(tx, id, true)
		if err != nil {
			return err
		}
		h, err := fn(r)
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(r).Error; err != nil {
			return err
		}
		if err := tx.Create(&h).Error; err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func DeleteReminder(id uint) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Reminder{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrReminderNotFound
		}
		return tx.Where("reminder_id = ?", id).Delete(&models.ReminderHistory{}).Error
	})
}
