package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fitcheckapp/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *HandlersTestSuite) createPosts(n int) {
	for i := 0; i < n; i++ {
		image := &models.Image{
			UserID: suite.testUser.ID,
			S3Key:  fmt.Sprintf("outfits/test/feed%d.jpg", i),
			URL:    fmt.Sprintf("https://images.test/feed%d.jpg", i),
		}
		require.NoError(suite.T(), suite.db.Create(image).Error)

		post := &models.Post{
			UserID:    suite.testUser.ID,
			ImageID:   image.ID,
			Caption:   fmt.Sprintf("fit %d", i),
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		require.NoError(suite.T(), suite.db.Create(post).Error)
	}
}

type feedResponse struct {
	Posts []struct {
		ID      string `json:"id"`
		Caption string `json:"caption"`
	} `json:"posts"`
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

func (suite *HandlersTestSuite) TestGetFeedDefaultPage() {
	t := suite.T()

	suite.createPosts(6)

	w := suite.doGET("/api/feed")
	assert.Equal(t, http.StatusOK, w.Code)

	var response feedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Posts, FeedPageSize)
	assert.Equal(t, int64(7), response.Total) // 6 created here + the suite's post
	assert.Equal(t, 0, response.Offset)
	assert.Equal(t, FeedPageSize, response.Limit)
}

func (suite *HandlersTestSuite) TestGetFeedOffsetPaging() {
	t := suite.T()

	suite.createPosts(6)

	first := suite.doGET("/api/feed?offset=0&limit=4")
	second := suite.doGET("/api/feed?offset=4&limit=4")

	var page1, page2 feedResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &page1))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &page2))

	assert.Len(t, page1.Posts, 4)
	assert.Len(t, page2.Posts, 3)

	seen := make(map[string]bool)
	for _, p := range page1.Posts {
		seen[p.ID] = true
	}
	for _, p := range page2.Posts {
		assert.False(t, seen[p.ID], "pages must not overlap")
	}
}

func (suite *HandlersTestSuite) TestGetFeedReverseChronological() {
	t := suite.T()

	suite.createPosts(3)

	w := suite.doGET("/api/feed?limit=10")

	var response feedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.Posts)
	assert.Equal(t, "fit 2", response.Posts[0].Caption, "newest post comes first")
}

func (suite *HandlersTestSuite) TestGetFeedBadParamsFallBackToDefaults() {
	t := suite.T()

	w := suite.doGET("/api/feed?offset=-5&limit=bogus")
	assert.Equal(t, http.StatusOK, w.Code)

	var response feedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 0, response.Offset)
	assert.Equal(t, FeedPageSize, response.Limit)
}

func (suite *HandlersTestSuite) TestGetFeedPastEnd() {
	t := suite.T()

	w := suite.doGET("/api/feed?offset=100")
	assert.Equal(t, http.StatusOK, w.Code)

	var response feedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Posts, 0)
}

func (suite *HandlersTestSuite) TestGetUserProfile() {
	t := suite.T()

	w := suite.doGET("/api/users/" + suite.testUser.ClerkUserID)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, suite.testUser.Username, response["username"])
	assert.Equal(t, suite.testUser.ClerkUserID, response["clerk_user_id"])
}

func (suite *HandlersTestSuite) TestGetUserProfileUnknown() {
	t := suite.T()

	w := suite.doGET("/api/users/user_nobody")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestHealth() {
	t := suite.T()

	w := suite.doGET("/health")
	assert.Equal(t, http.StatusOK, w.Code)
}
