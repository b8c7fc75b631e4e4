package handlers

import (
	"errors"
	"net/http"

	"github.com/fitcheckapp/backend/internal/auth"
	"github.com/fitcheckapp/backend/internal/cache"
	"github.com/fitcheckapp/backend/internal/database"
	apierrors "github.com/fitcheckapp/backend/internal/errors"
	"github.com/fitcheckapp/backend/internal/logger"
	"github.com/fitcheckapp/backend/internal/models"
	"github.com/fitcheckapp/backend/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// tagInput is a tag as submitted at upload time
type tagInput struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// postRequest covers both shapes POST /api/posts accepts. IDs is a
// pointer so an explicitly-empty batch request is distinguishable from
// a create request that omits the field entirely.
type postRequest struct {
	IDs *[]string `json:"ids"`

	FkImageID   string     `json:"fk_image_id"`
	ClerkUserID string     `json:"clerk_user_id"`
	Caption     string     `json:"caption"`
	Tags        []tagInput `json:"tags"`
}

type postSummary struct {
	ID       string `json:"id"`
	ImageURL string `json:"image_url"`
}

// HandlePosts dispatches POST /api/posts between batch-fetch and create
// based on the request body shape
func (h *Handlers) HandlePosts(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid request body")
		return
	}

	if req.IDs != nil {
		h.batchFetchPosts(c, *req.IDs)
		return
	}
	h.createPost(c, &req)
}

// batchFetchPosts returns {id, image_url} summaries for the requested
// post IDs. An empty list short-circuits without touching the database.
func (h *Handlers) batchFetchPosts(c *gin.Context, ids []string) {
	if len(ids) == 0 {
		c.JSON(http.StatusOK, gin.H{"posts": []postSummary{}})
		return
	}

	var posts []models.Post
	if err := database.DB.Preload("Image").Where("id IN ?", ids).Find(&posts).Error; err != nil {
		util.RespondInternalError(c, "failed to fetch posts")
		return
	}

	summaries := make([]postSummary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, postSummary{ID: p.ID, ImageURL: p.Image.URL})
	}

	c.JSON(http.StatusOK, gin.H{"posts": summaries})
}

func (h *Handlers) createPost(c *gin.Context, req *postRequest) {
	if req.FkImageID == "" || req.ClerkUserID == "" {
		util.RespondBadRequest(c, "fk_image_id and clerk_user_id are required")
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

	var image models.Image
	if err := database.DB.First(&image, "id = ?", req.FkImageID).Error; err != nil {
		util.HandleDBError(c, err, "image")
		return
	}

	for _, t := range req.Tags {
		if !util.IsValidTagPosition(t.X, t.Y) {
			util.RespondWithAPIError(c, apierrors.ValidationError("tags", "tag position must be within [0,1]"))
			return
		}
	}

	post := models.Post{
		UserID:  user.ID,
		ImageID: image.ID,
		Caption: req.Caption,
		Likes:   models.StringArray{},
		Saves:   models.StringArray{},
	}
	for _, t := range req.Tags {
		post.Tags = append(post.Tags, models.Tag{X: t.X, Y: t.Y, Label: t.Label})
	}

	if err := database.DB.Create(&post).Error; err != nil {
		util.RespondInternalError(c, "failed to create post")
		return
	}
	if post.ID == "" {
		util.RespondInternalError(c, "post was created without an identifier")
		return
	}

	if err := database.DB.Model(user).
		UpdateColumn("post_count", gorm.Expr("post_count + 1")).Error; err != nil {
		logger.WarnWithFields("failed to increment post count",
			logger.WithUserID(user.ID), zap.Error(err))
	}

	cache.InvalidateFeedTotal(c.Request.Context())

	logger.InfoWithFields("post created",
		logger.WithPostID(post.ID),
		logger.WithUserID(user.ID))

	c.JSON(http.StatusOK, gin.H{
		"id":       post.ID,
		"image_id": image.ID,
	})
}

type deletePostRequest struct {
	PostID string `json:"postId"`
}

// DeletePost cascade-deletes a post: its comments, tags, the post row,
// and the backing image row plus S3 object
// DELETE /api/posts
func (h *Handlers) DeletePost(c *gin.Context) {
	var req deletePostRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PostID == "" {
		util.RespondBadRequest(c, "postId is required")
		return
	}

	var post models.Post
	if err := database.DB.First(&post, "id = ?", req.PostID).Error; err != nil {
		util.HandleDBError(c, err, "post")
		return
	}

	var image models.Image
	imageFound := true
	if err := database.DB.First(&image, "id = ?", post.ImageID).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			util.RespondInternalError(c, "failed to fetch image")
			return
		}
		imageFound = false
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Tag{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&post).Error; err != nil {
			return err
		}
		if imageFound {
			if err := tx.Delete(&image).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&models.User{}).Where("id = ?", post.UserID).
			UpdateColumn("post_count", gorm.Expr("GREATEST(post_count - 1, 0)")).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		util.RespondWithAPIError(c, apierrors.InternalError("failed to delete post").WithDetails(err.Error()))
		return
	}

	// S3 cleanup happens after the DB commit; a failure here leaves an
	// orphaned object, which is logged and acceptable
	if imageFound && h.images != nil && image.S3Key != "" {
		if err := h.images.DeleteFile(c.Request.Context(), image.S3Key); err != nil {
			logger.WarnWithFields("failed to delete image object",
				zap.String("s3_key", image.S3Key), zap.Error(err))
		}
	}

	cache.InvalidateFeedTotal(c.Request.Context())

	logger.InfoWithFields("post deleted", logger.WithPostID(post.ID))

	c.JSON(http.StatusOK, gin.H{"status": "deleted", "post_id": post.ID})
}
