package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/fitcheckapp/backend/internal/auth"
	"github.com/fitcheckapp/backend/internal/database"
	"github.com/fitcheckapp/backend/internal/models"
	"github.com/fitcheckapp/backend/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	anonymousUsername  = "anonymous"
	anonymousAvatarURL = ""
)

// commentView is a comment with display fields resolved. Orphaned
// comments (author deleted) fall back to anonymous display fields.
type commentView struct {
	ID          string    `json:"id"`
	PostID      string    `json:"post_id"`
	UserID      string    `json:"user_id,omitempty"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// GetComments lists a post's comments oldest-first
// GET /api/comments?postId=
func (h *Handlers) GetComments(c *gin.Context) {
	postID := c.Query("postId")
	if postID == "" {
		util.RespondBadRequest(c, "postId is required")
		return
	}

	var comments []models.Comment
	err := database.DB.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch comments")
		return
	}

	views := make([]commentView, 0, len(comments))
	for _, cm := range comments {
		v := commentView{
			ID:          cm.ID,
			PostID:      cm.PostID,
			Content:     cm.Content,
			CreatedAt:   cm.CreatedAt,
			Username:    anonymousUsername,
			DisplayName: anonymousUsername,
			AvatarURL:   anonymousAvatarURL,
		}
		if cm.UserID != nil && cm.User != nil {
			v.UserID = *cm.UserID
			v.Username = cm.User.Username
			v.DisplayName = cm.User.DisplayName
			v.AvatarURL = cm.User.AvatarURL
		}
		views = append(views, v)
	}

	c.JSON(http.StatusOK, gin.H{"comments": views})
}

type createCommentRequest struct {
	PostID      string `json:"postId"`
	ClerkUserID string `json:"clerkUserId"`
	CommentText string `json:"commentText"`
}

// CreateComment adds a comment to a post
// POST /api/comments
func (h *Handlers) CreateComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid request body")
		return
	}
	if req.PostID == "" || req.ClerkUserID == "" || req.CommentText == "" {
		util.RespondBadRequest(c, "postId, clerkUserId and commentText are required")
		return
	}

	user, err := auth.ResolveUser(req.ClerkUserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			util.RespondNotFound(c, "user")
			return
		}
		util.RespondInternalError(c, "failed to look up user")
		return
	}

	var post models.Post
	if err := database.DB.First(&post, "id = ?", req.PostID).Error; err != nil {
		util.HandleDBError(c, err, "post")
		return
	}

	comment := models.Comment{
		PostID:  post.ID,
		UserID:  &user.ID,
		Content: req.CommentText,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		util.RespondInternalError(c, "failed to create comment")
		return
	}

	// Counter drift from a failed increment is tolerable; the comment
	// itself is already committed
	database.DB.Model(&post).
		UpdateColumn("comment_count", gorm.Expr("comment_count + 1"))

	c.JSON(http.StatusOK, gin.H{
		"id":         comment.ID,
		"post_id":    comment.PostID,
		"content":    comment.Content,
		"created_at": comment.CreatedAt,
	})
}

// DeleteComment removes a comment after checking the requester owns it
// DELETE /api/comments?id=&clerkUserId=
func (h *Handlers) DeleteComment(c *gin.Context) {
	commentID := c.Query("id")
	clerkUserID := c.Query("clerkUserId")
	if commentID == "" || clerkUserID == "" {
		util.RespondBadRequest(c, "id and clerkUserId are required")
		return
	}

	user, err := auth.ResolveUser(clerkUserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			util.RespondNotFound(c, "user")
			return
		}
		util.RespondInternalError(c, "failed to look up user")
		return
	}

	var comment models.Comment
	if err := database.DB.First(&comment, "id = ?", commentID).Error; err != nil {
		util.HandleDBError(c, err, "comment")
		return
	}

	if comment.UserID == nil || *comment.UserID != user.ID {
		util.RespondForbidden(c, "you can only delete your own comments")
		return
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		util.RespondInternalError(c, "failed to delete comment")
		return
	}

	database.DB.Model(&models.Post{}).Where("id = ?", comment.PostID).
		UpdateColumn("comment_count", gorm.Expr("GREATEST(comment_count - 1, 0)"))

	c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": comment.ID})
}
