package comment

import (
	"time"
)

type CommentId string

type Comment struct {
	Id       CommentId  `json:"id" bson:"id" gorm:"primaryKey"`
	PostId   string     `json:"post_id" bson:"post_id" gorm:"index;not null"`
	AuthorId string     `json:"author_id" bson:"author_id" gorm:"not null"`
	ParentId *CommentId `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Created  time.Time  `json:"created" bson:"created"`
	Body     string     `json:"body" bson:"body" validate:"required"`

	// Resolved on read, never stored.
	AuthorName string `json:"author_name,omitempty" bson:"-" gorm:"-"`
}

// IsReply reports whether c names a parent. The parent may still turn out
// to be missing, in which case the tree builder treats c as a root.
func (c *Comment) IsReply() bool {
	return c.ParentId != nil && *c.ParentId != ""
}

// CountByPost returns the number of comments per post, at any depth.
func CountByPost(comments []*Comment) map[string]int {
	counts := make(map[string]int)
	for _, c := range comments {
		counts[c.PostId]++
	}
	return counts
}
