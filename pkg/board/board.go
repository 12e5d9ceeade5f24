// Package board ties the comment tree builder, the vote reconciler and the
// post projector to the store and the identity provider. Every mutation
// refetches and returns the aggregate it touched.
package board

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"forum/pkg/comment"
	"forum/pkg/logger"
	"forum/pkg/post"
	"forum/pkg/user"
	"forum/pkg/voting"
)

type (
	PostRepo interface {
		ListPosts(context.Context, post.Filter) ([]*post.Post, error)
		GetPost(context.Context, post.PostId) (*post.Post, error)
		AddPost(context.Context, *post.Post) error
		UpdatePost(context.Context, *post.Post) error
		DeletePost(context.Context, post.PostId) error
	}

	CommentRepo interface {
		ListComments(ctx context.Context, postIds []string) ([]*comment.Comment, error)
		CountComments(ctx context.Context, postIds []string) (map[string]int, error)
		GetComment(context.Context, comment.CommentId) (*comment.Comment, error)
		AddComment(context.Context, *comment.Comment) error
		DeleteComment(context.Context, comment.CommentId) error
	}

	VoteRepo interface {
		ListVotes(ctx context.Context, postIds []string) ([]*voting.Vote, error)
		InsertVote(context.Context, *voting.Vote) error
		UpdateVote(context.Context, *voting.Vote) error
		DeleteVote(ctx context.Context, postId, userId string) error
	}

	Store interface {
		PostRepo
		CommentRepo
		VoteRepo
	}

	// Identity reports who is making the request; ok is false for anonymous
	// requests.
	Identity interface {
		CurrentUser(context.Context) (u *user.User, ok bool)
	}

	Directory interface {
		Usernames(ctx context.Context, ids []string) (map[string]string, error)
	}
)

// Thread is a post with its full comment forest.
type Thread struct {
	*post.Summary
	Comments []*comment.Node `json:"comments"`
}

type PostInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type Board struct {
	store    Store
	identity Identity
	names    Directory
	metrics  *Metrics
	validate *validator.Validate

	now   func() time.Time
	newId func() string
}

func New(store Store, identity Identity, names Directory, metrics *Metrics) *Board {
	return &Board{
		store:    store,
		identity: identity,
		names:    names,
		metrics:  metrics,
		validate: newValidator(),
		now:      time.Now,
		newId:    uuid.NewString,
	}
}

// viewer returns the current user id or "" for anonymous requests.
func (b *Board) viewer(ctx context.Context) string {
	if u, ok := b.identity.CurrentUser(ctx); ok {
		return u.Id
	}
	return ""
}

func (b *Board) requireUser(ctx context.Context) (*user.User, error) {
	u, ok := b.identity.CurrentUser(ctx)
	if !ok || u == nil {
		return nil, ErrUnauthenticated
	}
	return u, nil
}

// usernames resolves display names. A failing directory only costs the
// names, so it is logged and the read goes on.
func (b *Board) usernames(ctx context.Context, ids []string) map[string]string {
	if b.names == nil || len(ids) == 0 {
		return map[string]string{}
	}
	names, err := b.names.Usernames(ctx, ids)
	if err != nil {
		logger.Log(ctx).Warnf("board: can't resolve usernames: %v", err)
		return map[string]string{}
	}
	return names
}
