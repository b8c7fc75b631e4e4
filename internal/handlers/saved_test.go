package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fitcheckapp/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSavedCollections(suite *HandlersTestSuite, body []byte) map[string][]string {
	var response struct {
		SavedCollections map[string][]string `json:"saved_collections"`
	}
	require.NoError(suite.T(), json.Unmarshal(body, &response))
	return response.SavedCollections
}

func (suite *HandlersTestSuite) TestSavePost() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/profile", map[string]string{
		"userId":  suite.testUser.ClerkUserID,
		"post_id": suite.testPost.ID,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	cols := decodeSavedCollections(suite, w.Body.Bytes())
	assert.Equal(t, []string{suite.testPost.ID}, cols[models.DefaultCollection])

	// The post-level saves set is updated alongside the collection
	post := suite.reloadPost()
	assert.True(t, post.Saves.Contains(suite.testUser.ClerkUserID))
}

func (suite *HandlersTestSuite) TestSavePostIdempotent() {
	t := suite.T()

	body := map[string]string{
		"userId":  suite.testUser.ClerkUserID,
		"post_id": suite.testPost.ID,
	}
	var last map[string][]string
	for i := 0; i < 3; i++ {
		w := suite.doJSON("POST", "/api/profile", body)
		assert.Equal(t, http.StatusOK, w.Code)
		last = decodeSavedCollections(suite, w.Body.Bytes())
	}

	assert.Equal(t, []string{suite.testPost.ID}, last[models.DefaultCollection],
		"repeated saves must keep the identifier exactly once")

	post := suite.reloadPost()
	assert.Len(t, post.Saves, 1)
}

func (suite *HandlersTestSuite) TestSavePostWithoutPostIDReturnsCollections() {
	t := suite.T()

	suite.doJSON("POST", "/api/profile", map[string]string{
		"userId":  suite.testUser.ClerkUserID,
		"post_id": suite.testPost.ID,
	})

	w := suite.doJSON("POST", "/api/profile", map[string]string{
		"userId": suite.testUser.ClerkUserID,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	cols := decodeSavedCollections(suite, w.Body.Bytes())
	assert.Equal(t, []string{suite.testPost.ID}, cols[models.DefaultCollection])
}

func (suite *HandlersTestSuite) TestSavePostMissingUserID() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/profile", map[string]string{
		"post_id": suite.testPost.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestSavePostUnknownUser() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/profile", map[string]string{
		"userId":  "user_does_not_exist",
		"post_id": suite.testPost.ID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestUnsavePost() {
	t := suite.T()

	body := map[string]string{
		"userId":  suite.testUser.ClerkUserID,
		"post_id": suite.testPost.ID,
	}
	suite.doJSON("POST", "/api/profile", body)

	w := suite.doJSON("DELETE", "/api/profile", body)
	assert.Equal(t, http.StatusOK, w.Code)

	cols := decodeSavedCollections(suite, w.Body.Bytes())
	assert.Empty(t, cols[models.DefaultCollection])

	post := suite.reloadPost()
	assert.False(t, post.Saves.Contains(suite.testUser.ClerkUserID))
}

func (suite *HandlersTestSuite) TestUnsavePostNotSaved() {
	t := suite.T()

	// Removing an identifier that was never saved is a no-op, not an error
	w := suite.doJSON("DELETE", "/api/profile", map[string]string{
		"userId":  suite.testUser.ClerkUserID,
		"post_id": suite.testPost.ID,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	cols := decodeSavedCollections(suite, w.Body.Bytes())
	assert.Empty(t, cols[models.DefaultCollection])
}

func (suite *HandlersTestSuite) TestUnsavePostMissingFields() {
	t := suite.T()

	w := suite.doJSON("DELETE", "/api/profile", map[string]string{
		"userId": suite.testUser.ClerkUserID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = suite.doJSON("DELETE", "/api/profile", map[string]string{
		"post_id": suite.testPost.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
