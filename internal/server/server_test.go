package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inkstream/internal/config"
	"inkstream/internal/media"
	"inkstream/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:    "test-secret-key-for-handler-tests",
		Port:         "0",
		Env:          "test",
		PageSize:     10,
		FeedCacheTTL: 20,
	}
}

// setupTestApp builds a Server over an in-memory sqlite database (with
// foreign keys on) and returns the routed fiber app alongside it.
func setupTestApp(t *testing.T) (*fiber.App, *Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	))

	storage, err := media.New(t.TempDir())
	require.NoError(t, err)

	s, err := NewServerWithDeps(testConfig(), db, nil, storage)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)

	return app, s, db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Username: username, Email: username + "@example.com", Password: string(hash)}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createGroup(t *testing.T, db *gorm.DB, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: "Group " + slug, Slug: slug}
	require.NoError(t, db.Create(group).Error)
	return group
}

func createPost(t *testing.T, db *gorm.DB, author *models.User, text string) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: author.ID}
	require.NoError(t, db.Create(post).Error)
	return post
}

// formRequest builds a request with an urlencoded form body when one is given.
func formRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req
}

func withSession(t *testing.T, s *Server, req *http.Request, userID uint) *http.Request {
	t.Helper()
	token, err := s.generateToken(userID)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	return req
}
