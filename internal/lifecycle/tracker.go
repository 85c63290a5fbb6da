package lifecycle

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrStageNotFound    = errors.New("stage not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrStageLocked      = errors.New("stage is locked")
	ErrIncomplete       = errors.New("stage has documents that are not uploaded")
	ErrNCNotTracked     = errors.New("stage does not track non-conformities")
	ErrNoOpenNC         = errors.New("no open non-conformities of this severity")
)

// Tracker владеет упорядоченным списком этапов сертификации и следит за тем,
// чтобы этап N+1 открывался только после завершения этапа N.
//
// Tracker не потокобезопасен: вызывающий код держит его в рамках одного
// запроса/транзакции.
type Tracker struct {
	stages []Stage
	index  map[string]int
}

// New builds a tracker over stages in the given order. Progress and status
// are recomputed from document state, so callers cannot smuggle in values
// that contradict the uploads.
func New(stages []Stage) (*Tracker, error) {
	t := &Tracker{
		stages: make([]Stage, len(stages)),
		index:  make(map[string]int, len(stages)),
	}
	for i, s := range stages {
		if s.ID == "" {
			return nil, fmt.Errorf("stage %d: empty id", i)
		}
		if _, dup := t.index[s.ID]; dup {
			return nil, fmt.Errorf("duplicate stage id %q", s.ID)
		}
		if _, err := ParseCategory(string(s.Category)); err != nil {
			return nil, fmt.Errorf("stage %q: %w", s.ID, err)
		}
		docs := make(map[string]struct{}, len(s.Documents))
		for _, d := range s.Documents {
			if _, dup := docs[d.ID]; dup {
				return nil, fmt.Errorf("stage %q: duplicate document id %q", s.ID, d.ID)
			}
			docs[d.ID] = struct{}{}
		}

		st := s.clone()
		st.recompute()
		if st.Status != StatusCompleted {
			st.CompletedAt = nil
		}
		t.stages[i] = st
		t.index[s.ID] = i
	}
	return t, nil
}

func (t *Tracker) Len() int { return len(t.stages) }

// Stages returns a copy of all stages in order.
func (t *Tracker) Stages() []Stage {
	out := make([]Stage, len(t.stages))
	for i, s := range t.stages {
		out[i] = s.clone()
	}
	return out
}

func (t *Tracker) Stage(stageID string) (Stage, int, error) {
	i, ok := t.index[stageID]
	if !ok {
		return Stage{}, -1, ErrStageNotFound
	}
	return t.stages[i].clone(), i, nil
}

// IsUnlocked: этап 0 открыт всегда, этап i>0 только если i-1 завершён.
func (t *Tracker) IsUnlocked(index int) bool {
	if index < 0 || index >= len(t.stages) {
		return false
	}
	if index == 0 {
		return true
	}
	return t.stages[index-1].Status == StatusCompleted
}

// UploadDocument marks the document as uploaded on the date of at and
// recomputes the owning stage. Re-uploading an uploaded document keeps the
// first upload date. Uploads to a locked stage are rejected with
// ErrStageLocked.
func (t *Tracker) UploadDocument(stageID, docID string, at time.Time) error {
	i, ok := t.index[stageID]
	if !ok {
		return ErrStageNotFound
	}
	st := &t.stages[i]
	if !st.hasDocument(docID) {
		return ErrDocumentNotFound
	}
	if !t.IsUnlocked(i) {
		return ErrStageLocked
	}

	for j := range st.Documents {
		d := &st.Documents[j]
		if d.ID != docID {
			continue
		}
		if !d.Uploaded {
			day := truncateDay(at)
			d.Uploaded = true
			d.UploadDate = &day
		}
		st.recompute()
		if st.Status == StatusCompleted && st.CompletedAt == nil {
			ts := at
			st.CompletedAt = &ts
		}
		return nil
	}
	return ErrDocumentNotFound
}

// MarkStageComplete подтверждает завершение этапа. Этап должен быть открыт и
// все документы должны быть загружены, иначе состояние не меняется.
func (t *Tracker) MarkStageComplete(stageID string, at time.Time) error {
	i, ok := t.index[stageID]
	if !ok {
		return ErrStageNotFound
	}
	if !t.IsUnlocked(i) {
		return ErrStageLocked
	}
	st := &t.stages[i]
	if !st.AllUploaded() {
		return ErrIncomplete
	}

	st.Status = StatusCompleted
	st.Progress = 100
	if st.CompletedAt == nil {
		ts := at
		st.CompletedAt = &ts
	}
	return nil
}

func (t *Tracker) RecordNonConformity(stageID string, sev Severity) error {
	nc, err := t.ncCounter(stageID)
	if err != nil {
		return err
	}
	switch sev {
	case SeverityMajor:
		nc.Major++
	case SeverityMinor:
		nc.Minor++
	default:
		return fmt.Errorf("unknown non-conformity severity %q", sev)
	}
	return nil
}

func (t *Tracker) ResolveNonConformity(stageID string, sev Severity) error {
	nc, err := t.ncCounter(stageID)
	if err != nil {
		return err
	}
	switch sev {
	case SeverityMajor:
		if nc.Major == 0 {
			return ErrNoOpenNC
		}
		nc.Major--
	case SeverityMinor:
		if nc.Minor == 0 {
			return ErrNoOpenNC
		}
		nc.Minor--
	default:
		return fmt.Errorf("unknown non-conformity severity %q", sev)
	}
	return nil
}

func (t *Tracker) ncCounter(stageID string) (*NCCount, error) {
	i, ok := t.index[stageID]
	if !ok {
		return nil, ErrStageNotFound
	}
	nc := t.stages[i].NonConformities
	if nc == nil {
		return nil, ErrNCNotTracked
	}
	return nc, nil
}

// Summary — сводка по циклу для шкалы прогресса.
type Summary struct {
	TotalStages     int    `json:"total_stages"`
	CompletedStages int    `json:"completed_stages"`
	OverallProgress int    `json:"overall_progress"`
	CurrentStageID  string `json:"current_stage_id,omitempty"`
	OpenMajorNC     int    `json:"open_major_nc"`
	OpenMinorNC     int    `json:"open_minor_nc"`
}

func (t *Tracker) Summary() Summary {
	sum := Summary{TotalStages: len(t.stages)}
	for i, s := range t.stages {
		if s.Status == StatusCompleted {
			sum.CompletedStages++
		} else if sum.CurrentStageID == "" && t.IsUnlocked(i) {
			sum.CurrentStageID = s.ID
		}
		if s.NonConformities != nil {
			sum.OpenMajorNC += s.NonConformities.Major
			sum.OpenMinorNC += s.NonConformities.Minor
		}
	}
	if sum.TotalStages > 0 {
		sum.OverallProgress = (200*sum.CompletedStages + sum.TotalStages) / (2 * sum.TotalStages)
	}
	return sum
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
