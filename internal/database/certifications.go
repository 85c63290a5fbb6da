package database

import (
	"errors"
	"fmt"
	"time"

	"certbody/internal/lifecycle"
	"certbody/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrClientNotFound        = errors.New("client not found")
	ErrCertificationNotFound = errors.New("certification not found")
	ErrNCNotFound            = errors.New("non-conformity not found")
)

// CreateCertification создаёт цикл сертификации со всеми этапами и
// документами из шаблона ISO.
func CreateCertification(cert *models.Certification) error {
	var client models.Client
	if err := DB.First(&client, cert.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientNotFound
		}
		return err
	}

	if cert.Status == "" {
		cert.Status = models.CertActive
	}
	cert.Stages = stageRows(lifecycle.ISOTemplate())

	return DB.Create(cert).Error
}

func stageRows(defs []lifecycle.StageDef) []models.CertStage {
	rows := make([]models.CertStage, len(defs))
	for i, def := range defs {
		row := models.CertStage{
			Position:       i,
			Key:            def.ID,
			Name:           def.Name,
			ShortName:      def.ShortName,
			Category:       string(def.Category),
			NotifiesClient: def.NotifiesClient,
			TracksNC:       def.TracksNC,
			Status:         string(lifecycle.StatusNotStarted),
			Documents:      make([]models.StageDocument, len(def.Documents)),
		}
		for j, doc := range def.Documents {
			row.Documents[j] = models.StageDocument{Position: j, Key: doc.ID, Name: doc.Name}
		}
		rows[i] = row
	}
	return rows
}

func GetCertification(id uint) (*models.Certification, error) {
	return loadCertification(DB, id, false)
}

func loadCertification(db *gorm.DB, id uint, forUpdate bool) (*models.Certification, error) {
	byPosition := func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }

	q := db
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var cert models.Certification
	err := q.
		Preload("Client").
		Preload("Stages", byPosition).
		Preload("Stages.Documents", byPosition).
		Preload("Stages.NonConformities", func(db *gorm.DB) *gorm.DB { return db.Order("raised_at asc, id asc") }).
		First(&cert, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificationNotFound
		}
		return nil, err
	}
	return &cert, nil
}

// TrackerFor восстанавливает трекер этапов из строк БД. Счётчики
// несоответствий считаются по открытым записям.
func TrackerFor(cert *models.Certification) (*lifecycle.Tracker, error) {
	stages := make([]lifecycle.Stage, len(cert.Stages))
	for i, row := range cert.Stages {
		st := lifecycle.Stage{
			ID:             row.Key,
			Name:           row.Name,
			ShortName:      row.ShortName,
			Category:       lifecycle.Category(row.Category),
			NotifiesClient: row.NotifiesClient,
			CompletedAt:    row.CompletedAt,
			Documents:      make([]lifecycle.Document, len(row.Documents)),
		}
		for j, doc := range row.Documents {
			st.Documents[j] = lifecycle.Document{
				ID:         doc.Key,
				Name:       doc.Name,
				Uploaded:   doc.Uploaded,
				UploadDate: doc.UploadDate,
			}
		}
		if row.TracksNC {
			nc := lifecycle.NCCount{}
			for _, f := range row.NonConformities {
				if f.Status != models.NCOpen {
					continue
				}
				if f.Severity == models.NCMajor {
					nc.Major++
				} else {
					nc.Minor++
				}
			}
			st.NonConformities = &nc
		}
		stages[i] = st
	}

	tr, err := lifecycle.New(stages)
	if err != nil {
		return nil, fmt.Errorf("certification %d: %w", cert.ID, err)
	}
	return tr, nil
}

// mutateStage загружает цикл под блокировкой, применяет fn к трекеру и
// записывает обратно изменённый этап.
func mutateStage(certID uint, stageKey string, userID uint, fn func(tx *gorm.DB, tr *lifecycle.Tracker, row *models.CertStage) error) (*lifecycle.Tracker, error) {
	var tracker *lifecycle.Tracker

	err := DB.Transaction(func(tx *gorm.DB) error {
		cert, err := loadCertification(tx, certID, true)
		if err != nil {
			return err
		}
		tr, err := TrackerFor(cert)
		if err != nil {
			return err
		}
		_, idx, err := tr.Stage(stageKey)
		if err != nil {
			return err
		}
		row := &cert.Stages[idx]

		if err := fn(tx, tr, row); err != nil {
			return err
		}

		st, _, _ := tr.Stage(stageKey)
		if err := saveStage(tx, row, st, userID); err != nil {
			return err
		}
		tracker = tr
		return nil
	})
	return tracker, err
}

func saveStage(tx *gorm.DB, row *models.CertStage, st lifecycle.Stage, userID uint) error {
	for i := range row.Documents {
		doc := &row.Documents[i]
		state := st.Documents[i]
		if doc.Uploaded == state.Uploaded {
			continue
		}
		doc.Uploaded = state.Uploaded
		doc.UploadDate = state.UploadDate
		doc.FileRef = uuid.NewString()
		doc.UploadedBy = userID
		if err := tx.Model(doc).Select("uploaded", "upload_date", "file_ref", "uploaded_by").Updates(doc).Error; err != nil {
			return fmt.Errorf("save document %s: %w", doc.Key, err)
		}
	}

	row.Status = string(st.Status)
	row.Progress = st.Progress
	row.CompletedAt = st.CompletedAt
	err := tx.Model(row).Select("status", "progress", "completed_at").Updates(row).Error
	if err != nil {
		return fmt.Errorf("save stage %s: %w", row.Key, err)
	}
	return nil
}

func UploadStageDocument(certID uint, stageKey, docKey string, userID uint, now time.Time) (*lifecycle.Tracker, error) {
	return mutateStage(certID, stageKey, userID, func(_ *gorm.DB, tr *lifecycle.Tracker, _ *models.CertStage) error {
		return tr.UploadDocument(stageKey, docKey, now)
	})
}

func CompleteStage(certID uint, stageKey string, userID uint, now time.Time) (*lifecycle.Tracker, error) {
	return mutateStage(certID, stageKey, userID, func(_ *gorm.DB, tr *lifecycle.Tracker, _ *models.CertStage) error {
		return tr.MarkStageComplete(stageKey, now)
	})
}

func RaiseNonConformity(certID uint, stageKey string, nc *models.NonConformity, now time.Time) (*lifecycle.Tracker, error) {
	return mutateStage(certID, stageKey, nc.RaisedBy, func(tx *gorm.DB, tr *lifecycle.Tracker, row *models.CertStage) error {
		if err := tr.RecordNonConformity(stageKey, lifecycle.Severity(nc.Severity)); err != nil {
			return err
		}
		nc.CertStageID = row.ID
		nc.Status = models.NCOpen
		nc.RaisedAt = now
		return tx.Create(nc).Error
	})
}

func CloseNonConformity(certID uint, stageKey string, ncID uint, userID uint, now time.Time) (*models.NonConformity, error) {
	var closed models.NonConformity
	_, err := mutateStage(certID, stageKey, userID, func(tx *gorm.DB, tr *lifecycle.Tracker, row *models.CertStage) error {
		var nc *models.NonConformity
		for i := range row.NonConformities {
			if row.NonConformities[i].ID == ncID && row.NonConformities[i].Status == models.NCOpen {
				nc = &row.NonConformities[i]
				break
			}
		}
		if nc == nil {
			return ErrNCNotFound
		}
		if err := tr.ResolveNonConformity(stageKey, lifecycle.Severity(nc.Severity)); err != nil {
			return err
		}
		nc.Status = models.NCClosed
		nc.ClosedAt = &now
		if err := tx.Model(nc).Select("status", "closed_at").Updates(nc).Error; err != nil {
			return err
		}
		closed = *nc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &closed, nil
}
