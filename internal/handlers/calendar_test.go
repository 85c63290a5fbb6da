package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"certbody/internal/handlers"
	"certbody/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createAudit(t *testing.T, e env, body gin.H) map[string]interface{} {
	t.Helper()
	w := testutil.DoRequest(e.r, http.MethodPost, "/api/audits", body, e.coord)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return testutil.ParseResponse(w)
}

func clientNames(resp map[string]interface{}) []string {
	names := []string{}
	for _, a := range resp["audits"].([]interface{}) {
		names = append(names, a.(map[string]interface{})["client_name"].(string))
	}
	return names
}

func TestAuditCalendar(t *testing.T) {
	e := setup(t)
	defer handlers.SetNow(time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC))()

	created := createAudit(t, e, gin.H{
		"client_name":   "TechCorp Industries",
		"audit_type":    "Stage 1",
		"standard":      "ISO 9001:2015",
		"start_date":    "2025-03-13",
		"end_date":      "2025-03-14",
		"location_type": "On-site",
		"auditors":      []string{"John Smith", "Sarah Chen"},
	})
	assert.Equal(t, "Planned", created["status"])
	assert.Equal(t, float64(2), created["duration"])
	auditors := created["auditors"].([]interface{})
	assert.Equal(t, "JS", auditors[0].(map[string]interface{})["initials"])

	createAudit(t, e, gin.H{
		"client_name": "Global Manufacturing",
		"audit_type":  "Surveillance I",
		"standard":    "ISO 14001:2015",
		"status":      "Confirmed",
		"start_date":  "2025-03-18",
		"auditors":    []string{"David Kim"},
	})
	createAudit(t, e, gin.H{
		"client_name": "Precision Parts",
		"audit_type":  "Stage 2",
		"standard":    "ISO 9001:2015",
		"start_date":  "2025-04-02",
		"auditors":    []string{"John Smith"},
	})

	w := testutil.DoRequest(e.r, http.MethodPost, "/api/audits",
		gin.H{"client_name": "X", "audit_type": "Stage 9", "standard": "ISO 9001:2015", "start_date": "2025-03-13"}, e.coord)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = testutil.DoRequest(e.r, http.MethodPost, "/api/audits",
		gin.H{"client_name": "X", "audit_type": "Stage 1", "standard": "ISO 9001:2015", "start_date": "2025-03-13", "end_date": "2025-03-10"}, e.coord)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = testutil.DoRequest(e.r, http.MethodPost, "/api/audits",
		gin.H{"client_name": "X", "audit_type": "Stage 1", "standard": "ISO 9001:2015", "start_date": "2025-03-13"}, e.aud)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutil.DoRequest(e.r, http.MethodGet, "/api/audits?view=month", nil, e.view)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"TechCorp Industries", "Global Manufacturing"}, clientNames(testutil.ParseResponse(w)))

	w = testutil.DoRequest(e.r, http.MethodGet, "/api/audits?auditor=John", nil, e.view)
	resp := testutil.ParseResponse(w)
	assert.Equal(t, []string{"TechCorp Industries", "Precision Parts"}, clientNames(resp))
	assert.Equal(t, float64(1), resp["active_filters"])

	w = testutil.DoRequest(e.r, http.MethodGet, "/api/audits?auditor=john", nil, e.view)
	assert.Empty(t, clientNames(testutil.ParseResponse(w)))

	w = testutil.DoRequest(e.r, http.MethodGet, "/api/audits?client=global&from=2025-03-01&to=2025-04-01", nil, e.view)
	assert.Equal(t, []string{"Global Manufacturing"}, clientNames(testutil.ParseResponse(w)))

	w = testutil.DoRequest(e.r, http.MethodGet, "/api/audits?from=2025-04-01&to=2025-03-01", nil, e.view)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = testutil.DoRequest(e.r, http.MethodGet, "/api/audits?view=year", nil, e.view)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.DoRequest(e.r, http.MethodGet, "/api/audits/day/2025-03-18", nil, e.view)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Global Manufacturing"}, clientNames(testutil.ParseResponse(w)))

	w = testutil.DoRequest(e.r, http.MethodGet, "/api/audits/upcoming", nil, e.view)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"TechCorp Industries", "Global Manufacturing"}, clientNames(testutil.ParseResponse(w)))

	id := uint(created["ID"].(float64))
	w = testutil.DoRequest(e.r, http.MethodPatch, fmt.Sprintf("/api/audits/%d/status", id), gin.H{"status": "Canceled"}, e.coord)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = testutil.DoRequest(e.r, http.MethodGet, "/api/audits/upcoming", nil, e.view)
	assert.Equal(t, []string{"Global Manufacturing"}, clientNames(testutil.ParseResponse(w)))

	w = testutil.DoRequest(e.r, http.MethodPatch, fmt.Sprintf("/api/audits/%d/status", id), gin.H{"status": "Lost"}, e.coord)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.DoRequest(e.r, http.MethodGet, fmt.Sprintf("/api/audits/%d", id), nil, e.view)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Canceled", testutil.ParseResponse(w)["status"])

	w = testutil.DoRequest(e.r, http.MethodGet, "/api/audits/999", nil, e.view)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
