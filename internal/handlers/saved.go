package handlers

import (
	"errors"
	"net/http"

	"github.com/fitcheckapp/backend/internal/auth"
	"github.com/fitcheckapp/backend/internal/metrics"
	"github.com/fitcheckapp/backend/internal/models"
	"github.com/fitcheckapp/backend/internal/util"
	"github.com/gin-gonic/gin"
)

// savedRequest carries a saved-collection mutation. PostID is optional
// on POST: without it the request is a read of the current collections.
type savedRequest struct {
	UserID     string `json:"userId"`
	PostID     string `json:"post_id"`
	Collection string `json:"collection"`
}

// SavePost saves a post into one of the user's collections, or returns
// the current collections when no post_id is supplied
// POST /api/profile
func (h *Handlers) SavePost(c *gin.Context) {
	var req savedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid request body")
		return
	}
	if req.UserID == "" {
		util.RespondBadRequest(c, "userId is required")
		return
	}

	user, err := auth.ResolveUser(req.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			util.RespondNotFound(c, "user")
			return
		}
		util.RespondInternalError(c, "failed to look up user")
		return
	}

	// No post_id means the client just wants the current collections
	if req.PostID == "" {
		c.JSON(http.StatusOK, gin.H{"saved_collections": h.collections.Get(user)})
		return
	}

	name := req.Collection
	if name == "" {
		name = models.DefaultCollection
	}

	cols, err := h.collections.Add(user, name, req.PostID)
	if err != nil {
		util.RespondInternalError(c, "failed to save post")
		return
	}

	metrics.Get().SaveTogglesTotal.WithLabelValues("add").Inc()

	c.JSON(http.StatusOK, gin.H{"saved_collections": cols})
}

// UnsavePost removes a post from one of the user's collections
// DELETE /api/profile
func (h *Handlers) UnsavePost(c *gin.Context) {
	var req savedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid request body")
		return
	}
	if req.UserID == "" || req.PostID == "" {
		util.RespondBadRequest(c, "userId and post_id are required")
		return
	}

	user, err := auth.ResolveUser(req.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			util.RespondNotFound(c, "user")
			return
		}
		util.RespondInternalError(c, "failed to look up user")
		return
	}

	name := req.Collection
	if name == "" {
		name = models.DefaultCollection
	}

	cols, err := h.collections.Remove(user, name, req.PostID)
	if err != nil {
		util.RespondInternalError(c, "failed to unsave post")
		return
	}

	metrics.Get().SaveTogglesTotal.WithLabelValues("remove").Inc()

	c.JSON(http.StatusOK, gin.H{"saved_collections": cols})
}
