package handlers

import (
	"net/http"
	"strings"

	"certbody/internal/database"
	"certbody/internal/models"

	"github.com/gin-gonic/gin"
)

//
// КЛИЕНТЫ
//

func ListClients(c *gin.Context) {
	clients, err := database.ListClients()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

type clientForm struct {
	Name         string `json:"name"`
	Industry     string `json:"industry"`
	Address      string `json:"address"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Notes        string `json:"notes"`
}

func CreateClient(c *gin.Context) {
	var form clientForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "Некорректные данные")
		return
	}

	if len(strings.TrimSpace(form.Name)) < 3 {
		badRequest(c, "Название организации должно быть не короче 3 символов")
		return
	}

	client := models.Client{
		Name:         form.Name,
		Industry:     strings.TrimSpace(form.Industry),
		Address:      strings.TrimSpace(form.Address),
		ContactName:  strings.TrimSpace(form.ContactName),
		ContactEmail: strings.TrimSpace(form.ContactEmail),
		ContactPhone: strings.TrimSpace(form.ContactPhone),
		Notes:        strings.TrimSpace(form.Notes),
	}
	if err := database.CreateClient(&client); err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "client", client.ID, "create", "Создан клиент: "+client.Name)
	c.JSON(http.StatusCreated, client)
}

func ShowClient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	client, err := database.GetClient(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}
