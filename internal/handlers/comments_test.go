package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/fitcheckapp/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *HandlersTestSuite) doGET(path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) TestGetCommentsOldestFirst() {
	t := suite.T()

	for i := 0; i < 3; i++ {
		comment := &models.Comment{
			PostID:    suite.testPost.ID,
			UserID:    &suite.testUser.ID,
			Content:   fmt.Sprintf("comment %d", i),
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, suite.db.Create(comment).Error)
	}

	w := suite.doGET("/api/comments?postId=" + suite.testPost.ID)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Comments []struct {
			Content  string `json:"content"`
			Username string `json:"username"`
		} `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Comments, 3)
	assert.Equal(t, "comment 0", response.Comments[0].Content)
	assert.Equal(t, "comment 2", response.Comments[2].Content)
	assert.Equal(t, suite.testUser.Username, response.Comments[0].Username)
}

func (suite *HandlersTestSuite) TestGetCommentsAnonymousFallback() {
	t := suite.T()

	// Orphaned comment: no author reference
	comment := &models.Comment{
		PostID:  suite.testPost.ID,
		Content: "orphaned",
	}
	require.NoError(t, suite.db.Create(comment).Error)

	w := suite.doGET("/api/comments?postId=" + suite.testPost.ID)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Comments []struct {
			Username    string `json:"username"`
			DisplayName string `json:"display_name"`
		} `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Comments, 1)
	assert.Equal(t, "anonymous", response.Comments[0].Username)
	assert.Equal(t, "anonymous", response.Comments[0].DisplayName)
}

func (suite *HandlersTestSuite) TestGetCommentsMissingPostID() {
	t := suite.T()

	w := suite.doGET("/api/comments")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestCreateComment() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/comments", map[string]string{
		"postId":      suite.testPost.ID,
		"clerkUserId": suite.testUser.ClerkUserID,
		"commentText": "love this look",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var post models.Post
	require.NoError(t, suite.db.First(&post, "id = ?", suite.testPost.ID).Error)
	assert.Equal(t, 1, post.CommentCount)
}

func (suite *HandlersTestSuite) TestCreateCommentMissingFields() {
	t := suite.T()

	cases := []map[string]string{
		{"clerkUserId": suite.testUser.ClerkUserID, "commentText": "hi"},
		{"postId": suite.testPost.ID, "commentText": "hi"},
		{"postId": suite.testPost.ID, "clerkUserId": suite.testUser.ClerkUserID},
		{"postId": suite.testPost.ID, "clerkUserId": suite.testUser.ClerkUserID, "commentText": ""},
	}
	for _, body := range cases {
		w := suite.doJSON("POST", "/api/comments", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func (suite *HandlersTestSuite) TestCreateCommentUnknownPost() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/comments", map[string]string{
		"postId":      "00000000-0000-0000-0000-000000000000",
		"clerkUserId": suite.testUser.ClerkUserID,
		"commentText": "hi",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestDeleteComment() {
	t := suite.T()

	comment := &models.Comment{
		PostID:  suite.testPost.ID,
		UserID:  &suite.testUser.ID,
		Content: "to be deleted",
	}
	require.NoError(t, suite.db.Create(comment).Error)
	suite.db.Model(&models.Post{}).Where("id = ?", suite.testPost.ID).
		Update("comment_count", 1)

	w := suite.doJSON("DELETE",
		"/api/comments?id="+comment.ID+"&clerkUserId="+suite.testUser.ClerkUserID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Comment{}).Where("id = ?", comment.ID).Count(&count)
	assert.Zero(t, count)

	var post models.Post
	require.NoError(t, suite.db.First(&post, "id = ?", suite.testPost.ID).Error)
	assert.Equal(t, 0, post.CommentCount)
}

func (suite *HandlersTestSuite) TestDeleteCommentNotOwner() {
	t := suite.T()

	other := suite.createUser("user_comment_intruder")

	comment := &models.Comment{
		PostID:  suite.testPost.ID,
		UserID:  &suite.testUser.ID,
		Content: "mine",
	}
	require.NoError(t, suite.db.Create(comment).Error)

	w := suite.doJSON("DELETE",
		"/api/comments?id="+comment.ID+"&clerkUserId="+other.ClerkUserID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	suite.db.Model(&models.Comment{}).Where("id = ?", comment.ID).Count(&count)
	assert.Equal(t, int64(1), count, "comment must survive a non-owner delete")
}

func (suite *HandlersTestSuite) TestDeleteCommentMissingParams() {
	t := suite.T()

	w := suite.doJSON("DELETE", "/api/comments?id=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = suite.doJSON("DELETE", "/api/comments?clerkUserId=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
