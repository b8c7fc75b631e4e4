package collections

import (
	"github.com/fitcheckapp/backend/internal/models"
	"gorm.io/gorm"
)

// Store persists named saved-collections. Collections live as a JSONB
// object on the user row with the post's saves set maintained alongside;
// the two writes are separate statements, not a transaction, matching
// per-statement atomicity of the underlying store.
type Store struct {
	db *gorm.DB
}

// NewStore creates a collection store backed by db
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Add idempotently adds postID to the user's named collection and marks
// the post's saves set with the user's auth-provider ID (membership sets
// hold the caller-supplied opaque identifier). The post-level write is
// guarded by a "not already present" check inside the statement so
// concurrent identical saves cannot produce duplicates. Returns the
// updated collection object.
func (s *Store) Add(user *models.User, name, postID string) (models.SavedCollections, error) {
	err := s.db.Model(&models.Post{}).
		Where("id = ? AND NOT (? = ANY(COALESCE(saves, '{}')))", postID, user.ClerkUserID).
		UpdateColumn("saves", gorm.Expr("array_append(COALESCE(saves, '{}'), ?)", user.ClerkUserID)).Error
	if err != nil {
		return nil, err
	}

	merged := MergeAdd(user.SavedCollections, name, postID)
	if err := s.db.Model(user).Update("saved_collections", merged).Error; err != nil {
		return nil, err
	}
	user.SavedCollections = merged
	return merged, nil
}

// Remove removes postID from the user's named collection and clears the
// user from the post's saves set. Removing an ID that is not present is a
// no-op that still returns the well-formed collection object.
func (s *Store) Remove(user *models.User, name, postID string) (models.SavedCollections, error) {
	err := s.db.Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("saves", gorm.Expr("array_remove(COALESCE(saves, '{}'), ?)", user.ClerkUserID)).Error
	if err != nil {
		return nil, err
	}

	merged := MergeRemove(user.SavedCollections, name, postID)
	if err := s.db.Model(user).Update("saved_collections", merged).Error; err != nil {
		return nil, err
	}
	user.SavedCollections = merged
	return merged, nil
}

// Get returns the user's collections, treating nil as an empty object
// with the default collection present.
func (s *Store) Get(user *models.User) models.SavedCollections {
	return normalize(user.SavedCollections, models.DefaultCollection)
}

// MergeAdd returns a new collection object with postID added to the named
// array exactly once. A nil object or absent key is treated as an empty
// array. Existing elements keep their order; the new ID goes last.
func MergeAdd(cols models.SavedCollections, name, postID string) models.SavedCollections {
	out := normalize(cols, name)
	for _, id := range out[name] {
		if id == postID {
			return out
		}
	}
	out[name] = append(out[name], postID)
	return out
}

// MergeRemove returns a new collection object with postID filtered out of
// the named array. Absent IDs are a no-op.
func MergeRemove(cols models.SavedCollections, name, postID string) models.SavedCollections {
	out := normalize(cols, name)
	filtered := make([]string, 0, len(out[name]))
	for _, id := range out[name] {
		if id != postID {
			filtered = append(filtered, id)
		}
	}
	out[name] = filtered
	return out
}

// normalize copies the object so merges never alias the caller's map,
// and guarantees the named key exists.
func normalize(cols models.SavedCollections, name string) models.SavedCollections {
	out := make(models.SavedCollections, len(cols)+1)
	for k, v := range cols {
		arr := make([]string, len(v))
		copy(arr, v)
		out[k] = arr
	}
	if _, ok := out[name]; !ok {
		out[name] = []string{}
	}
	return out
}
