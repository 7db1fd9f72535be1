package server

import (
	"net/http"
	"testing"

	"inkstream/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowAndUnfollowAuthor(t *testing.T) {
	app, s, db := setupTestApp(t)
	follower := createUser(t, db, "alice")
	author := createUser(t, db, "bob")

	req := withSession(t, s, formRequest(t, "GET", "/profile/bob/follow", ""), follower.ID)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/bob", resp.Header.Get("Location"))

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", follower.ID, author.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	req = withSession(t, s, formRequest(t, "GET", "/profile/bob/unfollow", ""), follower.ID)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFollowTwiceKeepsSingleEdge(t *testing.T) {
	app, s, db := setupTestApp(t)
	follower := createUser(t, db, "alice")
	createUser(t, db, "bob")

	for i := 0; i < 2; i++ {
		req := withSession(t, s, formRequest(t, "GET", "/profile/bob/follow", ""), follower.ID)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
	}

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFollowSelfIsSilentNoOp(t *testing.T) {
	app, s, db := setupTestApp(t)
	user := createUser(t, db, "alice")

	req := withSession(t, s, formRequest(t, "GET", "/profile/alice/follow", ""), user.ID)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/alice", resp.Header.Get("Location"))

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUnfollowWithoutEdgeIsNoOp(t *testing.T) {
	app, s, db := setupTestApp(t)
	follower := createUser(t, db, "alice")
	createUser(t, db, "bob")

	req := withSession(t, s, formRequest(t, "GET", "/profile/bob/unfollow", ""), follower.ID)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/bob", resp.Header.Get("Location"))
}

func TestFollowUnknownAuthor(t *testing.T) {
	app, s, db := setupTestApp(t)
	follower := createUser(t, db, "alice")

	req := withSession(t, s, formRequest(t, "GET", "/profile/ghost/follow", ""), follower.ID)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
