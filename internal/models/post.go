package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a shared outfit photo. Likes and Saves are membership
// sets of auth-provider user IDs, stored as text[] and treated as sets:
// each ID appears at most once, enforced by conditional array writes.
type Post struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID string `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	ImageID string `gorm:"not null;index" json:"image_id"`
	Image   Image  `gorm:"foreignKey:ImageID" json:"image,omitempty"`

	Caption string `gorm:"type:text" json:"caption"`

	Likes StringArray `gorm:"type:text[]" json:"likes"`
	Saves StringArray `gorm:"type:text[]" json:"saves"`

	// Cached engagement count
	CommentCount int `gorm:"default:0" json:"comment_count"`

	Tags []Tag `gorm:"foreignKey:PostID" json:"tags,omitempty"`

	// GORM fields
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Tag marks an item within an outfit photo at a normalized position.
// X and Y are image-relative in [0,1]. Tags are immutable after upload.
type Tag struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PostID string `gorm:"not null;index" json:"post_id"`
	Post   Post   `gorm:"foreignKey:PostID" json:"-"`

	X     float64 `gorm:"not null" json:"x"`
	Y     float64 `gorm:"not null" json:"y"`
	Label string  `json:"label,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Comment represents a comment on a Post. UserID is nullable - comments
// survive their author and render with anonymous fallback fields.
type Comment struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PostID string `gorm:"not null;index" json:"post_id"`
	Post   Post   `gorm:"foreignKey:PostID" json:"-"`

	UserID *string `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Content string `gorm:"type:text;not null" json:"content"`

	// GORM fields
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Image is the S3-backed photo behind a post.
type Image struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID string `gorm:"not null;index" json:"user_id"`

	S3Key       string `gorm:"not null" json:"s3_key"`
	URL         string `gorm:"not null" json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = generateUUID()
	}
	return nil
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = generateUUID()
	}
	return nil
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = generateUUID()
	}
	return nil
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = generateUUID()
	}
	return nil
}
