package client

import (
	"context"
	"errors"

	"github.com/fitcheckapp/backend/internal/logger"
	"go.uber.org/zap"
)

// ErrSignInRequired is returned synchronously when a mutation is
// triggered without an authenticated user. No state change or network
// request happens in that case.
var ErrSignInRequired = errors.New("sign in required")

// AuthContext is the injected capability the controller uses to learn
// who is acting. Controllers never read ambient auth state.
type AuthContext interface {
	CurrentUserID() (string, bool)
	SignOut()
}

// MembershipAPI is the server surface a mutation controller needs:
// add or remove the acting user from a post's likes or saves set.
type MembershipAPI interface {
	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error
	SavePost(ctx context.Context, postID, userID string) error
	UnsavePost(ctx context.Context, postID, userID string) error
}

// Post is the client-side snapshot a controller toggles. Likes and
// Saves hold user identifiers with set semantics.
type Post struct {
	ID    string
	Likes []string
	Saves []string
}

// Clone returns a deep copy so reverts never alias mutated state.
func (p Post) Clone() Post {
	c := Post{ID: p.ID}
	c.Likes = append([]string(nil), p.Likes...)
	c.Saves = append([]string(nil), p.Saves...)
	return c
}

// MutationState tracks one mutation attempt's lifecycle.
type MutationState int

const (
	StateIdle MutationState = iota
	StateOptimistic
	StateConfirmed
	StateReverted
)

func (s MutationState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOptimistic:
		return "optimistic"
	case StateConfirmed:
		return "confirmed"
	case StateReverted:
		return "reverted"
	default:
		return "unknown"
	}
}

// MutationController toggles the acting user's membership in a post's
// likes or saves set with an optimistic update. The toggled snapshot is
// pushed through OnUpdate before the request is issued; on failure the
// captured pre-mutation snapshot is pushed back through the same
// channel. Request errors are logged, never returned to the trigger.
type MutationController struct {
	api  MembershipAPI
	auth AuthContext
	gate *Gate

	// OnUpdate receives every state transition: the optimistic value
	// and, on failure, the reverted value.
	OnUpdate func(Post)

	// OnNotice surfaces user-facing messages, e.g. the sign-in prompt.
	OnNotice func(string)

	state MutationState
}

// NewMutationController wires a controller to a server API and an auth
// capability. OnUpdate and OnNotice default to no-ops.
func NewMutationController(api MembershipAPI, auth AuthContext) *MutationController {
	return &MutationController{
		api:      api,
		auth:     auth,
		gate:     &Gate{},
		OnUpdate: func(Post) {},
		OnNotice: func(string) {},
		state:    StateIdle,
	}
}

// State returns the most recent mutation attempt's state.
func (m *MutationController) State() MutationState {
	return m.state
}

// ToggleLike toggles the acting user's membership in the post's likes
// set. A trigger while a previous mutation is settling is a no-op.
func (m *MutationController) ToggleLike(ctx context.Context, post Post) error {
	return m.toggle(ctx, post, "likes")
}

// ToggleSave toggles the acting user's membership in the post's saves
// set.
func (m *MutationController) ToggleSave(ctx context.Context, post Post) error {
	return m.toggle(ctx, post, "saves")
}

func (m *MutationController) toggle(ctx context.Context, post Post, field string) error {
	if !m.gate.TryAcquire() {
		return nil
	}
	defer m.gate.Release()

	userID, ok := m.auth.CurrentUserID()
	if !ok || userID == "" {
		m.OnNotice("Sign in to interact with posts")
		return ErrSignInRequired
	}

	// Snapshot before any mutation; the revert is computed from this,
	// never re-derived
	snapshot := post.Clone()

	optimistic := post.Clone()
	var isMember bool
	switch field {
	case "likes":
		isMember = contains(optimistic.Likes, userID)
		optimistic.Likes = toggleMember(optimistic.Likes, userID, isMember)
	case "saves":
		isMember = contains(optimistic.Saves, userID)
		optimistic.Saves = toggleMember(optimistic.Saves, userID, isMember)
	}

	m.state = StateOptimistic
	m.OnUpdate(optimistic)

	var err error
	switch {
	case field == "likes" && isMember:
		err = m.api.RemoveLike(ctx, post.ID, userID)
	case field == "likes":
		err = m.api.AddLike(ctx, post.ID, userID)
	case isMember:
		err = m.api.UnsavePost(ctx, post.ID, userID)
	default:
		err = m.api.SavePost(ctx, post.ID, userID)
	}

	if err != nil {
		logger.WarnWithFields("membership toggle failed, reverting",
			zap.String("post_id", post.ID),
			zap.String("field", field),
			zap.Error(err))
		m.state = StateReverted
		m.OnUpdate(snapshot)
		return nil
	}

	m.state = StateConfirmed
	return nil
}

func contains(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

// toggleMember returns the set with id removed when isMember, appended
// otherwise. The input slice is never modified.
func toggleMember(set []string, id string, isMember bool) []string {
	if !isMember {
		return append(append([]string(nil), set...), id)
	}
	out := make([]string, 0, len(set))
	for _, v := range set {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
