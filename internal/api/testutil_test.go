package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"estate_invest/internal/config"
	"estate_invest/internal/domain"
	"estate_invest/internal/middleware"
	"estate_invest/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testConfig = &config.Config{
	JWTSecret:   "test-secret",
	JWTTTLHours: 24,
	CORSOrigin:  "http://localhost:5173",
}

// newTestEnv builds a router over a fresh in-memory sqlite database.
// No redis client is wired; the cache helpers treat that as a permanent miss.
func newTestEnv(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	return newTestEnvWithConfig(t, testConfig)
}

// newTestEnvWithConfig is newTestEnv with a caller-supplied configuration
func newTestEnvWithConfig(t *testing.T, cfg *config.Config) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// A named shared-cache DB so the pool's connections see one schema
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection: concurrent requests serialize at the pool, the way the
	// backing store serializes them in production
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Property{},
		&domain.Investment{},
		&domain.Transaction{},
		&domain.AuditLog{},
	))

	return SetupRouter(db, nil, cfg), db
}

// createUser inserts a user and returns it together with a session token
func createUser(t *testing.T, db *gorm.DB, email, role string) (domain.User, string) {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)
	user := domain.User{Name: "Test User", Email: email, PasswordHash: hash, Role: role}
	require.NoError(t, db.Create(&user).Error)
	token, err := utils.GenerateJWT(user.ID, user.Role, testConfig.JWTSecret, time.Hour)
	require.NoError(t, err)
	return user, token
}

// doRequest performs a JSON request against the router, attaching the
// session cookie when a token is given
func doRequest(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a JSON response body into a generic map
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// decodeList unmarshals a JSON array response body
func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
