package board

import (
	"context"
	"fmt"
	"strings"

	"forum/pkg/comment"
	"forum/pkg/logger"
	"forum/pkg/post"
)

// Comments returns the comment forest of a post.
func (b *Board) Comments(ctx context.Context, postId post.PostId) ([]*comment.Node, error) {
	comments, err := b.store.ListComments(ctx, []string{string(postId)})
	if err != nil {
		return nil, b.fail(ctx, "list comments", err)
	}

	nameComments(comments, b.usernames(ctx, authorIds(nil, comments)))

	return comment.BuildTree(comments), nil
}

// PostComment adds a top level comment and returns the refetched forest.
func (b *Board) PostComment(ctx context.Context, postId post.PostId, body string) ([]*comment.Node, error) {
	return b.addComment(ctx, postId, nil, body)
}

// PostReply answers an existing comment of the same post.
func (b *Board) PostReply(ctx context.Context, postId post.PostId, parentId comment.CommentId, body string) ([]*comment.Node, error) {
	if parentId == "" {
		if _, err := b.requireUser(ctx); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: parent_id required", ErrValidation)
	}
	return b.addComment(ctx, postId, &parentId, body)
}

func (b *Board) addComment(ctx context.Context, postId post.PostId, parentId *comment.CommentId, body string) ([]*comment.Node, error) {
	u, err := b.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	c := &comment.Comment{
		Id:       comment.CommentId(b.newId()),
		PostId:   string(postId),
		AuthorId: u.Id,
		ParentId: parentId,
		Created:  b.now(),
		Body:     strings.TrimSpace(body),
	}
	if err := b.check(c); err != nil {
		return nil, err
	}

	if _, err := b.store.GetPost(ctx, postId); err != nil {
		return nil, b.fail(ctx, "get post", err)
	}
	if parentId != nil {
		parent, err := b.store.GetComment(ctx, *parentId)
		if err != nil {
			return nil, b.fail(ctx, "get parent comment", err)
		}
		if parent.PostId != c.PostId {
			return nil, fmt.Errorf("%w: parent comment %s belongs to another post", ErrValidation, *parentId)
		}
	}

	if err := b.store.AddComment(ctx, c); err != nil {
		return nil, b.fail(ctx, "add comment", err)
	}
	logger.Log(ctx).Debugf("board: comment %s added to post %s", c.Id, postId)

	return b.Comments(ctx, postId)
}

// DeleteComment removes a comment owned by the current user. Its replies
// stay and show up as roots of the refetched forest.
func (b *Board) DeleteComment(ctx context.Context, id comment.CommentId) ([]*comment.Node, error) {
	u, err := b.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	c, err := b.store.GetComment(ctx, id)
	if err != nil {
		return nil, b.fail(ctx, "get comment", err)
	}
	if c.AuthorId != u.Id {
		return nil, ErrForbidden
	}

	if err := b.store.DeleteComment(ctx, id); err != nil {
		return nil, b.fail(ctx, "delete comment", err)
	}
	logger.Log(ctx).Debugf("board: comment %s deleted", id)

	return b.Comments(ctx, post.PostId(c.PostId))
}

func nameComments(comments []*comment.Comment, names map[string]string) {
	for _, c := range comments {
		c.AuthorName = names[c.AuthorId]
	}
}
