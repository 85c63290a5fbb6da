package database

import (
	"fmt"
	"time"

	"certbody/internal/config"
	"certbody/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	DB  *gorm.DB
	Log = zap.NewNop()
)

// Init подключается к Postgres (с повторами, пока поднимается контейнер БД),
// выполняет миграции и создаёт пользователей по умолчанию.
func Init(cfg *config.Config, log *zap.Logger) error {
	Log = log

	var (
		db  *gorm.DB
		err error
	)
	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Info("connecting to DB", zap.Int("attempt", i), zap.Int("max_attempts", maxAttempts))

		db, err = gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err == nil {
			log.Info("connected to DB")
			break
		}

		log.Warn("failed to connect to DB", zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("connect to db after %d attempts: %w", maxAttempts, err)
	}

	if err := Setup(db); err != nil {
		return err
	}

	if err := createDefaultAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return err
	}
	seedDefaultUsers()

	if cfg.SeedDemo {
		if err := SeedDemo(time.Now()); err != nil {
			log.Warn("demo seed failed", zap.Error(err))
		}
	}
	return nil
}

// Setup делает db текущим подключением пакета и накатывает миграции.
// Тесты вызывают его с SQLite в памяти.
func Setup(db *gorm.DB) error {
	DB = db

	err := DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Certification{},
		&models.CertStage{},
		&models.StageDocument{},
		&models.NonConformity{},
		&models.Reminder{},
		&models.ReminderHistory{},
		&models.AuditEvent{},
		&models.AuditAssignment{},
		&models.AuditFile{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// админ только из конфига
func createDefaultAdmin(username, password string) error {
	var count int64
	if err := DB.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	if _, err := CreateUser(username, "Administrator", password, models.RoleAdmin); err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}

	Log.Info("created default admin user", zap.String("username", username))
	return nil
}

// пара тестовых аккаунтов для демо (координатор и аудитор)
func seedDefaultUsers() {
	type seedUser struct {
		Username string
		FullName string
		Password string
		Role     models.UserRole
	}

	users := []seedUser{
		{
			Username: "coordinator@cert.local",
			FullName: "Michael Brown",
			Password: "Coord123!",
			Role:     models.RoleCoordinator,
		},
		{
			Username: "auditor@cert.local",
			FullName: "Sarah Chen",
			Password: "Audit123!",
			Role:     models.RoleAuditor,
		},
	}

	for _, u := range users {
		var count int64
		if err := DB.Model(&models.User{}).
			Where("username = ?", u.Username).
			Count(&count).Error; err != nil {
			Log.Warn("failed to check seed user", zap.String("username", u.Username), zap.Error(err))
			continue
		}
		if count > 0 {
			continue
		}

		if _, err := CreateUser(u.Username, u.FullName, u.Password, u.Role); err != nil {
			Log.Warn("failed to create seed user", zap.String("username", u.Username), zap.Error(err))
			continue
		}

		Log.Info("created seed user", zap.String("username", u.Username), zap.String("role", string(u.Role)))
	}
}

func CreateUser(username, fullName, password string, role models.UserRole) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		FullName:     fullName,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate возвращает пользователя, если пароль совпал.
func Authenticate(username, password string) (*models.User, bool) {
	var user models.User
	if err := DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, false
	}
	return &user, true
}
