package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/fitcheckapp/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *HandlersTestSuite) doJSON(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) reloadPost() *models.Post {
	var post models.Post
	require.NoError(suite.T(), suite.db.First(&post, "id = ?", suite.testPost.ID).Error)
	return &post
}

func (suite *HandlersTestSuite) TestAddLike() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/testendpoint", map[string]string{
		"post_id": suite.testPost.ID,
		"userId":  suite.testUser.ClerkUserID,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	post := suite.reloadPost()
	assert.True(t, post.Likes.Contains(suite.testUser.ClerkUserID))
	assert.Len(t, post.Likes, 1)
}

func (suite *HandlersTestSuite) TestAddLikeIdempotent() {
	t := suite.T()

	body := map[string]string{
		"post_id": suite.testPost.ID,
		"userId":  suite.testUser.ClerkUserID,
	}
	for i := 0; i < 3; i++ {
		w := suite.doJSON("POST", "/api/testendpoint", body)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	post := suite.reloadPost()
	assert.Len(t, post.Likes, 1, "repeated likes must not double-count")
}

func (suite *HandlersTestSuite) TestAddLikeMissingFields() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/testendpoint", map[string]string{"post_id": suite.testPost.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = suite.doJSON("POST", "/api/testendpoint", map[string]string{"userId": "someone"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestAddLikeUnknownPost() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/testendpoint", map[string]string{
		"post_id": "00000000-0000-0000-0000-000000000000",
		"userId":  suite.testUser.ClerkUserID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestRemoveLike() {
	t := suite.T()

	body := map[string]string{
		"post_id": suite.testPost.ID,
		"userId":  suite.testUser.ClerkUserID,
	}
	suite.doJSON("POST", "/api/testendpoint", body)

	w := suite.doJSON("DELETE", "/api/testendpoint", body)
	assert.Equal(t, http.StatusOK, w.Code)

	post := suite.reloadPost()
	assert.False(t, post.Likes.Contains(suite.testUser.ClerkUserID))
	assert.Len(t, post.Likes, 0)
}

func (suite *HandlersTestSuite) TestRemoveLikeNotMember() {
	t := suite.T()

	// Removing an absent member succeeds without changing the set
	w := suite.doJSON("DELETE", "/api/testendpoint", map[string]string{
		"post_id": suite.testPost.ID,
		"userId":  "never_liked",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	post := suite.reloadPost()
	assert.Len(t, post.Likes, 0)
}

func (suite *HandlersTestSuite) TestLikeToggleRoundTrip() {
	t := suite.T()

	other := suite.createUser("user_other_roundtrip")
	body := map[string]string{
		"post_id": suite.testPost.ID,
		"userId":  other.ClerkUserID,
	}

	suite.doJSON("POST", "/api/testendpoint", body)
	suite.doJSON("DELETE", "/api/testendpoint", body)

	post := suite.reloadPost()
	assert.Len(t, post.Likes, 0, "toggle on then off must restore the original set")
}
