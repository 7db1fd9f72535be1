package seed

import (
	"testing"

	"inkstream/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
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
	return db
}

func TestSeedPopulatesAllTables(t *testing.T) {
	db := setupSeedDB(t)

	// Cleaning uses a TRUNCATE that only Postgres understands, so it
	// stays off against the test database.
	err := Seed(db, Options{NumUsers: 5, NumGroups: 2, NumPosts: 20, ShouldClean: false})
	require.NoError(t, err)

	var users, groups, posts int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Group{}).Count(&groups).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)

	assert.Equal(t, int64(5), users)
	assert.Equal(t, int64(2), groups)
	assert.Equal(t, int64(20), posts)
}

func TestFactoryCreateFollowSkipsSelfAndDuplicates(t *testing.T) {
	db := setupSeedDB(t)
	f := NewFactory(db)

	alice, err := f.CreateUser(func(u *models.User) { u.Username = "alice" })
	require.NoError(t, err)
	bob, err := f.CreateUser(func(u *models.User) { u.Username = "bob" })
	require.NoError(t, err)

	require.NoError(t, f.CreateFollow(alice, alice))
	require.NoError(t, f.CreateFollow(alice, bob))
	require.NoError(t, f.CreateFollow(alice, bob))

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFactoryBuildPostSpreadsTimestamps(t *testing.T) {
	db := setupSeedDB(t)
	f := NewFactory(db)

	author, err := f.CreateUser()
	require.NoError(t, err)
	group, err := f.CreateGroup()
	require.NoError(t, err)

	post := f.BuildPost(author, group, 30)
	assert.NotEmpty(t, post.Text)
	assert.Equal(t, author.ID, post.AuthorID)
	require.NotNil(t, post.GroupID)
	assert.Equal(t, group.ID, *post.GroupID)
	assert.False(t, post.CreatedAt.IsZero())
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "go-tips-and-tricks", slugify("Go Tips and Tricks"))
	assert.Equal(t, "plain", slugify("  Plain!  "))
}
