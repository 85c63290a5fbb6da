// Package testutil поднимает SQLite в памяти и роутер для тестов пакетов
// database и handlers.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"certbody/internal/config"
	"certbody/internal/database"
	"certbody/internal/models"
	"certbody/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const Password = "Passw0rd!"

// Учётные записи, которые создаёт SeedUsers.
const (
	Admin       = "admin@test.local"
	Coordinator = "coord@test.local"
	Auditor     = "auditor@test.local"
	Viewer      = "viewer@test.local"
)

// SetupTestDB открывает отдельную базу в памяти для каждого теста и делает
// её текущим подключением пакета database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	database.Log = zap.NewNop()
	if err := database.Setup(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// SeedUsers создаёт по пользователю на каждую роль.
func SeedUsers(t *testing.T) map[models.UserRole]*models.User {
	t.Helper()

	users := map[models.UserRole]*models.User{}
	for role, username := range map[models.UserRole]string{
		models.RoleAdmin:       Admin,
		models.RoleCoordinator: Coordinator,
		models.RoleAuditor:     Auditor,
		models.RoleViewer:      Viewer,
	} {
		u, err := database.CreateUser(username, "Test "+string(role), Password, role)
		if err != nil {
			t.Fatalf("failed to seed user %s: %v", username, err)
		}
		users[role] = u
	}
	return users
}

func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{SessionSecret: "test-session-secret"}
	return server.NewRouter(cfg, zap.NewNop())
}

// Session хранит cookie авторизованного пользователя.
type Session []*http.Cookie

// Login входит через /api/login и возвращает cookie сессии.
func Login(t *testing.T, r *gin.Engine, username string) Session {
	t.Helper()

	w := DoRequest(r, http.MethodPost, "/api/login", gin.H{"username": username, "password": Password}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d, body %s", username, w.Code, w.Body.String())
	}
	return Session(w.Result().Cookies())
}

// DoRequest executes an HTTP request against the test router.
func DoRequest(r *gin.Engine, method, path string, body interface{}, sess Session) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range sess {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse decodes a JSON object response.
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &result)
	return result
}
