package database_test

import (
	"testing"
	"time"

	"certbody/internal/database"
	"certbody/internal/lifecycle"
	"certbody/internal/models"
	"certbody/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCertification(t *testing.T) *models.Certification {
	t.Helper()
	client := models.Client{Name: "Acme Manufacturing"}
	require.NoError(t, database.CreateClient(&client))

	cert := models.Certification{ClientID: client.ID, Standard: "ISO 9001:2015"}
	require.NoError(t, database.CreateCertification(&cert))
	return &cert
}

func TestCreateCertificationSeedsTemplate(t *testing.T) {
	testutil.SetupTestDB(t)
	cert := newCertification(t)

	got, err := database.GetCertification(cert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CertActive, got.Status)
	assert.Equal(t, "Acme Manufacturing", got.Client.Name)

	tmpl := lifecycle.ISOTemplate()
	require.Len(t, got.Stages, len(tmpl))
	for i, st := range got.Stages {
		assert.Equal(t, i, st.Position)
		assert.Equal(t, tmpl[i].ID, st.Key)
		assert.Len(t, st.Documents, len(tmpl[i].Documents))
	}
	assert.Equal(t, "doc-1", got.Stages[0].Documents[0].Key)
}

func TestCreateCertificationUnknownClient(t *testing.T) {
	testutil.SetupTestDB(t)
	err := database.CreateCertification(&models.Certification{ClientID: 7, Standard: "ISO 9001:2015"})
	assert.ErrorIs(t, err, database.ErrClientNotFound)

	_, err = database.GetCertification(7)
	assert.ErrorIs(t, err, database.ErrCertificationNotFound)
}

func TestUploadPersists(t *testing.T) {
	testutil.SetupTestDB(t)
	cert := newCertification(t)
	at := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

	tr, err := database.UploadStageDocument(cert.ID, "pre-stage-1", "doc-2", 5, at)
	require.NoError(t, err)
	st, _, _ := tr.Stage("pre-stage-1")
	assert.Equal(t, 17, st.Progress)

	got, err := database.GetCertification(cert.ID)
	require.NoError(t, err)
	row := got.Stages[0]
	assert.Equal(t, string(lifecycle.StatusInProgress), row.Status)
	assert.Equal(t, 17, row.Progress)

	doc := row.Documents[1]
	assert.True(t, doc.Uploaded)
	assert.NotEmpty(t, doc.FileRef)
	assert.Equal(t, uint(5), doc.UploadedBy)
	require.NotNil(t, doc.UploadDate)
	assert.True(t, doc.UploadDate.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.False(t, row.Documents[0].Uploaded)

	// повторная загрузка не меняет дату и ссылку на файл
	_, err = database.UploadStageDocument(cert.ID, "pre-stage-1", "doc-2", 6, at.AddDate(0, 0, 3))
	require.NoError(t, err)
	again, err := database.GetCertification(cert.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.FileRef, again.Stages[0].Documents[1].FileRef)
	assert.True(t, again.Stages[0].Documents[1].UploadDate.Equal(*doc.UploadDate))
}

func TestCompleteStageRules(t *testing.T) {
	testutil.SetupTestDB(t)
	cert := newCertification(t)
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	_, err := database.CompleteStage(cert.ID, "pre-stage-1", 1, at)
	assert.ErrorIs(t, err, lifecycle.ErrIncomplete)
	_, err = database.CompleteStage(cert.ID, "stage-1", 1, at)
	assert.ErrorIs(t, err, lifecycle.ErrStageLocked)

	for _, doc := range []string{"doc-1", "doc-2", "doc-3", "doc-4", "doc-5", "doc-6"} {
		_, err := database.UploadStageDocument(cert.ID, "pre-stage-1", doc, 1, at)
		require.NoError(t, err)
	}

	got, err := database.GetCertification(cert.ID)
	require.NoError(t, err)
	assert.Equal(t, string(lifecycle.StatusCompleted), got.Stages[0].Status)
	require.NotNil(t, got.Stages[0].CompletedAt)

	tr, err := database.TrackerFor(got)
	require.NoError(t, err)
	assert.True(t, tr.IsUnlocked(1))
	assert.Equal(t, "stage-1", tr.Summary().CurrentStageID)
}

func TestNonConformityCounters(t *testing.T) {
	testutil.SetupTestDB(t)
	cert := newCertification(t)
	at := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	nc := models.NonConformity{Severity: models.NCMinor, Title: "Calibration records missing", RaisedBy: 2}
	tr, err := database.RaiseNonConformity(cert.ID, "surveillance-1", &nc, at)
	require.NoError(t, err)
	assert.NotZero(t, nc.ID)
	assert.Equal(t, models.NCOpen, nc.Status)
	assert.Equal(t, 1, tr.Summary().OpenMinorNC)

	_, err = database.RaiseNonConformity(cert.ID, "stage-1", &models.NonConformity{Severity: models.NCMajor, Title: "x"}, at)
	assert.ErrorIs(t, err, lifecycle.ErrNCNotTracked)

	closed, err := database.CloseNonConformity(cert.ID, "surveillance-1", nc.ID, 2, at.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, models.NCClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)

	_, err = database.CloseNonConformity(cert.ID, "surveillance-1", nc.ID, 2, at)
	assert.ErrorIs(t, err, database.ErrNCNotFound)

	got, err := database.GetCertification(cert.ID)
	require.NoError(t, err)
	tr, err = database.TrackerFor(got)
	require.NoError(t, err)
	st, _, _ := tr.Stage("surveillance-1")
	assert.Equal(t, &lifecycle.NCCount{}, st.NonConformities)
}
