package controller

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/internal/db"
	"github.com/rahat/tastybites-backend/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupControllerTest(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })
	return database
}

// authAs injects the identity the auth middleware would have set
func authAs(user *model.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, user.ID)
		c.Set(middleware.UserEmailKey, user.Email)
		c.Set(middleware.UserRoleKey, string(user.Role))
		c.Next()
	}
}

func createUser(t *testing.T, database *gorm.DB, email string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Email:        email,
		PasswordHash: "x",
		Name:         "Test User",
		Phone:        "555-0100",
		Role:         role,
	}
	require.NoError(t, database.Create(user).Error)
	return user
}

func createMenuItem(t *testing.T, database *gorm.DB, name, slug, price string) *model.MenuItem {
	t.Helper()
	category := &model.Category{Name: "Mains", Slug: "mains-" + slug, IsActive: true}
	require.NoError(t, database.Create(category).Error)

	item := &model.MenuItem{
		Name:        name,
		Slug:        slug,
		CategoryID:  category.ID,
		Price:       model.NewMoney(decimal.RequireFromString(price)),
		IsAvailable: true,
	}
	require.NoError(t, database.Create(item).Error)
	return item
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
