package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// APIClient talks to the Fitcheck backend over HTTP. It implements
// MembershipAPI for the mutation controller and supplies the feed data
// the paginator navigates over.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewAPIClient creates a client for the given base URL, e.g.
// "http://localhost:8080".
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SetToken attaches a session token sent as a Bearer credential on
// authenticated endpoints.
func (c *APIClient) SetToken(token string) {
	c.token = token
}

type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

func (c *APIClient) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(data, &errBody)
		return &apiError{Status: resp.StatusCode, Message: errBody.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

type membershipBody struct {
	PostID string `json:"post_id"`
	UserID string `json:"userId"`
}

// AddLike adds userID to the post's likes set.
func (c *APIClient) AddLike(ctx context.Context, postID, userID string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/testendpoint", membershipBody{postID, userID}, nil)
}

// RemoveLike removes userID from the post's likes set.
func (c *APIClient) RemoveLike(ctx context.Context, postID, userID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/testendpoint", membershipBody{postID, userID}, nil)
}

// SavePost adds the post to the user's default saved collection.
func (c *APIClient) SavePost(ctx context.Context, postID, userID string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/profile", membershipBody{postID, userID}, nil)
}

// UnsavePost removes the post from the user's default saved collection.
func (c *APIClient) UnsavePost(ctx context.Context, postID, userID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/profile", membershipBody{postID, userID}, nil)
}

// FeedPost is one post in a feed page.
type FeedPost struct {
	ID      string   `json:"id"`
	Caption string   `json:"caption"`
	Likes   []string `json:"likes"`
	Saves   []string `json:"saves"`
	Image   struct {
		URL string `json:"url"`
	} `json:"image"`
	User struct {
		Username    string `json:"username"`
		DisplayName string `json:"display_name"`
	} `json:"user"`
	CommentCount int `json:"comment_count"`
}

// FeedPage is one page of the reverse-chronological feed.
type FeedPage struct {
	Posts  []FeedPost `json:"posts"`
	Total  int64      `json:"total"`
	Offset int        `json:"offset"`
	Limit  int        `json:"limit"`
}

// GetFeed fetches one page of the feed.
func (c *APIClient) GetFeed(ctx context.Context, offset, limit int) (*FeedPage, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var page FeedPage
	if err := c.doJSON(ctx, http.MethodGet, "/api/feed?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// FeedTotal fetches the total post count, used to seed a paginator.
func (c *APIClient) FeedTotal(ctx context.Context) (int64, error) {
	page, err := c.GetFeed(ctx, 0, 1)
	if err != nil {
		return 0, err
	}
	return page.Total, nil
}

// PostSummary is a batch-fetch result.
type PostSummary struct {
	ID       string `json:"id"`
	ImageURL string `json:"image_url"`
}

// BatchFetchPosts resolves post IDs to summaries. An empty list returns
// immediately without a request.
func (c *APIClient) BatchFetchPosts(ctx context.Context, ids []string) ([]PostSummary, error) {
	if len(ids) == 0 {
		return []PostSummary{}, nil
	}

	var response struct {
		Posts []PostSummary `json:"posts"`
	}
	body := map[string][]string{"ids": ids}
	if err := c.doJSON(ctx, http.MethodPost, "/api/posts", body, &response); err != nil {
		return nil, err
	}
	return response.Posts, nil
}

// StaticAuth is an AuthContext with a fixed user, for CLIs and tests.
type StaticAuth struct {
	UserID    string
	signedOut bool
}

// CurrentUserID returns the configured user unless signed out.
func (a *StaticAuth) CurrentUserID() (string, bool) {
	if a.signedOut || a.UserID == "" {
		return "", false
	}
	return a.UserID, true
}

// SignOut clears the session.
func (a *StaticAuth) SignOut() {
	a.signedOut = true
}
