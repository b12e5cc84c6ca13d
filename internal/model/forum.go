package model

import (
	"time"

	"gorm.io/datatypes"
)

// swagger:model DiscussionForum
type DiscussionForum struct {
	BaseModel
	CourseID     uint       `gorm:"index:idx_course_pinned;not null" json:"courseId"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	IsPinned     bool       `gorm:"default:false;index:idx_course_pinned" json:"isPinned"`
	IsLocked     bool       `gorm:"default:false" json:"isLocked"`
	PostsCount   int        `gorm:"default:0" json:"postsCount"`
	LastActivity *time.Time `gorm:"index" json:"lastActivity"`
	CreatedBy    uint       `gorm:"index;not null" json:"createdBy"`
	Creator      *User      `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`

	Posts []ForumPost `gorm:"foreignKey:ForumID" json:"posts,omitempty"`
}

func (DiscussionForum) TableName() string {
	return "discussion_forums"
}

// ForumPost threads through ParentID; replies can nest arbitrarily, so the
// association is resolved per level rather than loaded as an owned tree.
// swagger:model ForumPost
type ForumPost struct {
	BaseModel
	ForumID     uint           `gorm:"index:idx_forum_parent;not null" json:"forumId"`
	UserID      uint           `gorm:"index;not null" json:"userId"`
	User        *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ParentID    *uint          `gorm:"index:idx_forum_parent" json:"parentId"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	Attachments datatypes.JSON `json:"attachments"`
	IsPinned    bool           `gorm:"default:false" json:"isPinned"`
	IsEdited    bool           `gorm:"default:false" json:"isEdited"`
	EditedAt    *time.Time     `json:"editedAt"`

	Replies []ForumPost `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
}

func (ForumPost) TableName() string {
	return "forum_posts"
}
