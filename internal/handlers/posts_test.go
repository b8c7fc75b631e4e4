package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fitcheckapp/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *HandlersTestSuite) TestBatchFetchPosts() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/posts", map[string]interface{}{
		"ids": []string{suite.testPost.ID},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Posts []struct {
			ID       string `json:"id"`
			ImageURL string `json:"image_url"`
		} `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Posts, 1)
	assert.Equal(t, suite.testPost.ID, response.Posts[0].ID)
	assert.Equal(t, suite.testImage.URL, response.Posts[0].ImageURL)
}

func (suite *HandlersTestSuite) TestBatchFetchPostsEmptyIDs() {
	t := suite.T()

	// An explicitly-empty ids list returns an empty array without a query
	w := suite.doJSON("POST", "/api/posts", map[string]interface{}{
		"ids": []string{},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Posts []interface{} `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotNil(t, response.Posts)
	assert.Len(t, response.Posts, 0)
}

func (suite *HandlersTestSuite) TestBatchFetchPostsUnknownIDsSkipped() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/posts", map[string]interface{}{
		"ids": []string{suite.testPost.ID, "00000000-0000-0000-0000-000000000000"},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Posts []interface{} `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Posts, 1)
}

func (suite *HandlersTestSuite) TestCreatePost() {
	t := suite.T()

	image := &models.Image{
		UserID: suite.testUser.ID,
		S3Key:  "outfits/test/new.jpg",
		URL:    "https://images.test/outfits/new.jpg",
	}
	require.NoError(t, suite.db.Create(image).Error)

	w := suite.doJSON("POST", "/api/posts", map[string]interface{}{
		"fk_image_id":   image.ID,
		"clerk_user_id": suite.testUser.ClerkUserID,
		"caption":       "New fit",
		"tags": []map[string]interface{}{
			{"x": 0.25, "y": 0.75, "label": "sneakers"},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.ID)

	var post models.Post
	require.NoError(t, suite.db.Preload("Tags").First(&post, "id = ?", response.ID).Error)
	assert.Equal(t, suite.testUser.ID, post.UserID)
	assert.Equal(t, "New fit", post.Caption)
	require.Len(t, post.Tags, 1)
	assert.Equal(t, "sneakers", post.Tags[0].Label)

	var user models.User
	require.NoError(t, suite.db.First(&user, "id = ?", suite.testUser.ID).Error)
	assert.Equal(t, suite.testUser.PostCount+1, user.PostCount)
}

func (suite *HandlersTestSuite) TestCreatePostMissingFields() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/posts", map[string]interface{}{
		"fk_image_id": suite.testImage.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = suite.doJSON("POST", "/api/posts", map[string]interface{}{
		"clerk_user_id": suite.testUser.ClerkUserID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestCreatePostUnknownUser() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/posts", map[string]interface{}{
		"fk_image_id":   suite.testImage.ID,
		"clerk_user_id": "user_missing",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestCreatePostInvalidTagPosition() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/posts", map[string]interface{}{
		"fk_image_id":   suite.testImage.ID,
		"clerk_user_id": suite.testUser.ClerkUserID,
		"tags": []map[string]interface{}{
			{"x": 1.5, "y": 0.5},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestDeletePost() {
	t := suite.T()

	comment := &models.Comment{
		PostID:  suite.testPost.ID,
		UserID:  &suite.testUser.ID,
		Content: "nice fit",
	}
	require.NoError(t, suite.db.Create(comment).Error)

	w := suite.doJSON("DELETE", "/api/posts", map[string]string{
		"postId": suite.testPost.ID,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Post{}).Where("id = ?", suite.testPost.ID).Count(&count)
	assert.Zero(t, count, "post row must be gone")

	suite.db.Model(&models.Comment{}).Where("post_id = ?", suite.testPost.ID).Count(&count)
	assert.Zero(t, count, "comments must cascade")

	suite.db.Model(&models.Image{}).Where("id = ?", suite.testImage.ID).Count(&count)
	assert.Zero(t, count, "image row must cascade")
}

func (suite *HandlersTestSuite) TestDeletePostMissingID() {
	t := suite.T()

	w := suite.doJSON("DELETE", "/api/posts", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestDeletePostUnknown() {
	t := suite.T()

	w := suite.doJSON("DELETE", "/api/posts", map[string]string{
		"postId": "00000000-0000-0000-0000-000000000000",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
