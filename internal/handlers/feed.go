package handlers

import (
	"net/http"

	"github.com/fitcheckapp/backend/internal/cache"
	"github.com/fitcheckapp/backend/internal/database"
	"github.com/fitcheckapp/backend/internal/middleware"
	"github.com/fitcheckapp/backend/internal/models"
	"github.com/fitcheckapp/backend/internal/util"
	"github.com/gin-gonic/gin"
)

// FeedPageSize is the default number of posts per feed page
const FeedPageSize = 4

// GetFeed returns a reverse-chronological page of posts with the total
// post count, which the client paginator uses to decide when to stop
// GET /api/feed?offset=&limit=
func (h *Handlers) GetFeed(c *gin.Context) {
	offset := util.ParseInt(c.Query("offset"), 0)
	limit := util.ParseInt(c.Query("limit"), FeedPageSize)
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = FeedPageSize
	}

	ctx := c.Request.Context()

	total, ok := cache.GetFeedTotal(ctx)
	if ok {
		middleware.RecordCacheHit("feed_total")
	} else {
		middleware.RecordCacheMiss("feed_total")
		if err := database.DB.Model(&models.Post{}).Count(&total).Error; err != nil {
			util.RespondInternalError(c, "failed to count posts")
			return
		}
		cache.SetFeedTotal(ctx, total)
	}

	var posts []models.Post
	err := database.DB.Preload("User").Preload("Image").Preload("Tags").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch feed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":  posts,
		"total":  total,
		"offset": offset,
		"limit":  limit,
	})
}
