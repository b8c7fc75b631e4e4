package handlers

import (
	"errors"
	"net/http"

	"github.com/fitcheckapp/backend/internal/auth"
	"github.com/fitcheckapp/backend/internal/util"
	"github.com/gin-gonic/gin"
)

// GetUser returns a user's public profile
// GET /api/users/:clerkUserId
func (h *Handlers) GetUser(c *gin.Context) {
	clerkUserID := c.Param("clerkUserId")
	if clerkUserID == "" {
		util.RespondBadRequest(c, "clerkUserId is required")
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

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"clerk_user_id": user.ClerkUserID,
		"username":      user.Username,
		"display_name":  user.DisplayName,
		"bio":           user.Bio,
		"avatar_url":    user.AvatarURL,
		"post_count":    user.PostCount,
	})
}

// Health reports service liveness
// GET /health
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
