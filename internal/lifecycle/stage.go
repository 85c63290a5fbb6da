package lifecycle

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Category — тип этапа сертификационного цикла.
type Category string

const (
	CategoryStandard     Category = "standard"
	CategoryAudit        Category = "audit"
	CategoryReview       Category = "review"
	CategorySurveillance Category = "surveillance"
)

func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryStandard, CategoryAudit, CategoryReview, CategorySurveillance:
		return c, nil
	}
	return "", fmt.Errorf("unknown stage category %q", s)
}

// Panel — дополнительный блок, который показывается в карточке этапа.
type Panel string

const (
	PanelDocuments     Panel = "documents"
	PanelAuditTimeline Panel = "audit_timeline"
	PanelNCTracker     Panel = "nc_tracker"
	PanelCertificate   Panel = "certificate"
	PanelEmailPreview  Panel = "email_preview"
)

// Panels returns the category-specific panels. Stage.Panels adds the ones
// that depend on stage state.
func (c Category) Panels() []Panel {
	switch c {
	case CategoryAudit:
		return []Panel{PanelAuditTimeline, PanelDocuments}
	case CategoryReview, CategorySurveillance, CategoryStandard:
		return []Panel{PanelDocuments}
	default:
		return nil
	}
}

type Severity string

const (
	SeverityMajor Severity = "major"
	SeverityMinor Severity = "minor"
)

func ParseSeverity(s string) (Severity, error) {
	switch sv := Severity(s); sv {
	case SeverityMajor, SeverityMinor:
		return sv, nil
	}
	return "", fmt.Errorf("unknown non-conformity severity %q", s)
}

// NCCount — счётчик открытых несоответствий этапа.
type NCCount struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
}

type Document struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Uploaded   bool       `json:"uploaded"`
	UploadDate *time.Time `json:"upload_date,omitempty"`
}

type Stage struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	ShortName       string     `json:"short_name"`
	Category        Category   `json:"category"`
	Status          Status     `json:"status"`
	Progress        int        `json:"progress"`
	Documents       []Document `json:"documents"`
	NonConformities *NCCount   `json:"non_conformities,omitempty"`
	NotifiesClient  bool       `json:"notifies_client"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

func (s Stage) UploadedCount() int {
	n := 0
	for _, d := range s.Documents {
		if d.Uploaded {
			n++
		}
	}
	return n
}

func (s Stage) hasDocument(docID string) bool {
	for _, d := range s.Documents {
		if d.ID == docID {
			return true
		}
	}
	return false
}

func (s Stage) AllUploaded() bool {
	return s.UploadedCount() == len(s.Documents)
}

// Panels — набор блоков карточки этапа с учётом его состояния.
func (s Stage) Panels() []Panel {
	panels := s.Category.Panels()
	if s.NotifiesClient {
		panels = append([]Panel{PanelEmailPreview}, panels...)
	}
	if s.NonConformities != nil {
		panels = append(panels, PanelNCTracker)
	}
	if s.Category == CategoryReview && s.Progress > 50 {
		panels = append(panels, PanelCertificate)
	}
	return panels
}

// recompute приводит progress/status к количеству загруженных документов.
func (s *Stage) recompute() {
	total := len(s.Documents)
	switch {
	case total == 0 && s.CompletedAt != nil:
		// этап без документов завершается только вручную
		s.Progress = 100
	case total == 0:
		s.Progress = 0
	default:
		uploaded := s.UploadedCount()
		// округление до ближайшего целого, половина вверх
		s.Progress = (200*uploaded + total) / (2 * total)
	}

	switch {
	case s.Progress == 100:
		s.Status = StatusCompleted
	case s.Progress > 0:
		s.Status = StatusInProgress
	default:
		s.Status = StatusNotStarted
	}
}

func (s Stage) clone() Stage {
	out := s
	out.Documents = make([]Document, len(s.Documents))
	for i, d := range s.Documents {
		out.Documents[i] = d
		if d.UploadDate != nil {
			t := *d.UploadDate
			out.Documents[i].UploadDate = &t
		}
	}
	if s.NonConformities != nil {
		nc := *s.NonConformities
		out.NonConformities = &nc
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		out.CompletedAt = &t
	}
	return out
}
