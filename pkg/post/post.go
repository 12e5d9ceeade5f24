package post

import (
	"time"

	"forum/pkg/voting"
)

type PostId string

type Post struct {
	Id       PostId     `json:"id" bson:"id" gorm:"primaryKey"`
	AuthorId string     `json:"author_id" bson:"author_id" gorm:"index;not null"`
	Title    string     `json:"title" bson:"title" validate:"required"`
	Body     string     `json:"body" bson:"body" validate:"required"`
	Created  time.Time  `json:"created" bson:"created" gorm:"index"`
	Modified *time.Time `json:"modified,omitempty" bson:"modified,omitempty"`
}

// Filter narrows a post listing. The zero value lists every post.
type Filter struct {
	AuthorId string

	// Mine asks for the viewer's own posts; the board resolves it to
	// AuthorId before the query runs.
	Mine bool
}

func (f Filter) Matches(p *Post) bool {
	return f.AuthorId == "" || p.AuthorId == f.AuthorId
}

// Summary is a post as the list views show it.
type Summary struct {
	*Post
	AuthorName    string      `json:"author_name,omitempty"`
	CommentsCount int         `json:"comments_count"`
	LikesCount    int         `json:"likes_count"`
	DislikesCount int         `json:"dislikes_count"`
	MyVote        voting.Kind `json:"my_vote"`
}
