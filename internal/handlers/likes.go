package handlers

import (
	"net/http"

	"github.com/fitcheckapp/backend/internal/database"
	"github.com/fitcheckapp/backend/internal/metrics"
	"github.com/fitcheckapp/backend/internal/models"
	"github.com/fitcheckapp/backend/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// likeRequest carries the post and acting-user identifiers for like
// mutations. The user identifier is opaque - it is stored in the
// membership set exactly as supplied.
type likeRequest struct {
	PostID string `json:"post_id"`
	UserID string `json:"userId"`
}

// AddLike adds the user to a post's likes set
// POST /api/testendpoint
func (h *Handlers) AddLike(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid request body")
		return
	}
	if req.PostID == "" || req.UserID == "" {
		util.RespondBadRequest(c, "post_id and userId are required")
		return
	}

	// Check if post exists
	var post models.Post
	if err := database.DB.First(&post, "id = ?", req.PostID).Error; err != nil {
		util.HandleDBError(c, err, "post")
		return
	}

	// Guarded by "not already present" so concurrent identical toggles
	// cannot double-count
	err := database.DB.Model(&models.Post{}).
		Where("id = ? AND NOT (? = ANY(COALESCE(likes, '{}')))", req.PostID, req.UserID).
		UpdateColumn("likes", gorm.Expr("array_append(COALESCE(likes, '{}'), ?)", req.UserID)).Error
	if err != nil {
		util.RespondInternalError(c, "failed to like post")
		return
	}

	metrics.Get().LikeTogglesTotal.WithLabelValues("add").Inc()

	c.JSON(http.StatusOK, gin.H{
		"status":  "liked",
		"post_id": req.PostID,
		"user_id": req.UserID,
	})
}

// RemoveLike removes the user from a post's likes set
// DELETE /api/testendpoint
func (h *Handlers) RemoveLike(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid request body")
		return
	}
	if req.PostID == "" || req.UserID == "" {
		util.RespondBadRequest(c, "post_id and userId are required")
		return
	}

	var post models.Post
	if err := database.DB.First(&post, "id = ?", req.PostID).Error; err != nil {
		util.HandleDBError(c, err, "post")
		return
	}

	// Removing an absent member is a harmless no-op
	err := database.DB.Model(&models.Post{}).
		Where("id = ?", req.PostID).
		UpdateColumn("likes", gorm.Expr("array_remove(COALESCE(likes, '{}'), ?)", req.UserID)).Error
	if err != nil {
		util.RespondInternalError(c, "failed to unlike post")
		return
	}

	metrics.Get().LikeTogglesTotal.WithLabelValues("remove").Inc()

	c.JSON(http.StatusOK, gin.H{
		"status":  "unliked",
		"post_id": req.PostID,
		"user_id": req.UserID,
	})
}
