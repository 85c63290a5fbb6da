package database

import (
	"errors"
	"strings"

	"certbody/internal/models"

	"gorm.io/gorm"
)

var ErrClientExists = errors.New("client with this name already exists")

func ListClients() ([]models.Client, error) {
	var clients []models.Client
	err := DB.Order("name asc").Find(&clients).Error
	return clients, err
}

func GetClient(id uint) (*models.Client, error) {
	var client models.Client
	err := DB.Preload("Certifications", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc")
	}).First(&client, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

func CreateClient(client *models.Client) error {
	client.Name = strings.TrimSpace(client.Name)

	// --- ПРОВЕРКА УНИКАЛЬНОСТИ ИМЕНИ ---
	var count int64
	if err := DB.Model(&models.Client{}).
		Where("LOWER(name) = LOWER(?)", client.Name).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrClientExists
	}

	return DB.Omit("Certifications").Create(client).Error
}
