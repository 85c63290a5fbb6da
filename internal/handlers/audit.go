package handlers

import (
	"net/http"
	"strconv"

	"certbody/internal/database"
	"certbody/internal/models"

	"github.com/gin-gonic/gin"
)

const auditLogLimit = 200

func ListAuditLogs(c *gin.Context) {
	// журнал видят только admin и viewer
	role := currentRole(c)
	if role != models.RoleAdmin && role != models.RoleViewer {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	var entityID uint
	if s := c.Query("entity_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			badRequest(c, "Некорректный ID: entity_id")
			return
		}
		entityID = uint(id)
	}

	logs, err := database.ListAuditLogs(c.Query("entity"), entityID, auditLogLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
