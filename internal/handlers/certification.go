package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"certbody/internal/database"
	"certbody/internal/lifecycle"
	"certbody/internal/models"

	"github.com/gin-gonic/gin"
)

// now подменяется в тестах.
var now = time.Now

//
// ЦИКЛЫ СЕРТИФИКАЦИИ
//

type certificationForm struct {
	Standard  string     `json:"standard"`
	StartDate *time.Time `json:"start_date"`
}

func CreateCertification(c *gin.Context) {
	clientID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var form certificationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "Некорректные данные")
		return
	}
	form.Standard = strings.TrimSpace(form.Standard)
	if form.Standard == "" {
		badRequest(c, "Укажите стандарт")
		return
	}

	cert := models.Certification{
		ClientID:      clientID,
		Standard:      form.Standard,
		StartDate:     form.StartDate,
		CoordinatorID: currentUserID(c),
	}
	if err := database.CreateCertification(&cert); err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "certification", cert.ID, "create",
		fmt.Sprintf("Начат цикл %s для клиента %d", cert.Standard, clientID))
	c.JSON(http.StatusCreated, cert)
}

func ShowCertification(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	cert, err := database.GetCertification(id)
	if err != nil {
		respondError(c, err)
		return
	}
	tr, err := database.TrackerFor(cert)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"certification": cert,
		"summary":       tr.Summary(),
	})
}

// stageView: этап в том виде, в каком его рисует страница цикла.
type stageView struct {
	lifecycle.Stage
	Index         int               `json:"index"`
	Unlocked      bool              `json:"unlocked"`
	UploadedCount int               `json:"uploaded_count"`
	CanComplete   bool              `json:"can_complete"`
	Panels        []lifecycle.Panel `json:"panels"`
}

func stageViews(tr *lifecycle.Tracker) []stageView {
	stages := tr.Stages()
	out := make([]stageView, len(stages))
	for i, st := range stages {
		unlocked := tr.IsUnlocked(i)
		out[i] = stageView{
			Stage:         st,
			Index:         i,
			Unlocked:      unlocked,
			UploadedCount: st.UploadedCount(),
			CanComplete:   unlocked && st.Status != lifecycle.StatusCompleted && st.AllUploaded(),
			Panels:        st.Panels(),
		}
	}
	return out
}

func trackerResponse(tr *lifecycle.Tracker) gin.H {
	return gin.H{
		"stages":  stageViews(tr),
		"summary": tr.Summary(),
	}
}

func ListStages(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	cert, err := database.GetCertification(id)
	if err != nil {
		respondError(c, err)
		return
	}
	tr, err := database.TrackerFor(cert)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trackerResponse(tr))
}

func UploadDocument(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	stageKey, docKey := c.Param("stage_id"), c.Param("doc_id")

	tr, err := database.UploadStageDocument(id, stageKey, docKey, currentUserID(c), now())
	if err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "certification", id, "upload",
		fmt.Sprintf("Загружен документ %s на этапе %s", docKey, stageKey))
	c.JSON(http.StatusOK, trackerResponse(tr))
}

func CompleteStage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	stageKey := c.Param("stage_id")

	tr, err := database.CompleteStage(id, stageKey, currentUserID(c), now())
	if err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "certification", id, "complete_stage",
		"Завершён этап "+stageKey)
	c.JSON(http.StatusOK, trackerResponse(tr))
}

//
// НЕСООТВЕТСТВИЯ
//

type ncForm struct {
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func RaiseNonConformity(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	stageKey := c.Param("stage_id")

	var form ncForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "Некорректные данные")
		return
	}
	sev, err := lifecycle.ParseSeverity(form.Severity)
	if err != nil {
		badRequest(c, "Некорректная категория несоответствия")
		return
	}
	form.Title = strings.TrimSpace(form.Title)
	if form.Title == "" {
		badRequest(c, "Укажите краткое описание несоответствия")
		return
	}

	nc := models.NonConformity{
		Severity:    models.NCSeverity(sev),
		Title:       form.Title,
		Description: strings.TrimSpace(form.Description),
		RaisedBy:    currentUserID(c),
	}
	tr, err := database.RaiseNonConformity(id, stageKey, &nc, now())
	if err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "certification", id, "raise_nc",
		fmt.Sprintf("Несоответствие (%s) на этапе %s: %s", nc.Severity, stageKey, nc.Title))
	resp := trackerResponse(tr)
	resp["non_conformity"] = nc
	c.JSON(http.StatusCreated, resp)
}

func CloseNonConformity(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ncID, ok := parseID(c, "nc_id")
	if !ok {
		return
	}
	stageKey := c.Param("stage_id")

	nc, err := database.CloseNonConformity(id, stageKey, ncID, currentUserID(c), now())
	if err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "certification", id, "close_nc",
		fmt.Sprintf("Закрыто несоответствие %d на этапе %s", nc.ID, stageKey))
	c.JSON(http.StatusOK, nc)
}
