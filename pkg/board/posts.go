package board

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"forum/pkg/comment"
	"forum/pkg/logger"
	"forum/pkg/post"
	"forum/pkg/voting"
)

// ListPosts returns the posts matching f, newest first, with their comment
// and vote counts as seen by the current user.
func (b *Board) ListPosts(ctx context.Context, f post.Filter) ([]*post.Summary, error) {
	f, err := b.resolve(ctx, f)
	if err != nil {
		return nil, err
	}
	posts, err := b.store.ListPosts(ctx, f)
	if err != nil {
		return nil, b.fail(ctx, "list posts", err)
	}
	if len(posts) == 0 {
		return []*post.Summary{}, nil
	}

	ids := post.Ids(posts)
	var (
		counts map[string]int
		votes  []*voting.Vote
		names  map[string]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if counts, err = b.store.CountComments(gctx, ids); err != nil {
			return b.fail(ctx, "count comments", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if votes, err = b.store.ListVotes(gctx, ids); err != nil {
			return b.fail(ctx, "list votes", err)
		}
		return nil
	})
	g.Go(func() error {
		names = b.usernames(gctx, post.AuthorIds(posts))
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b.audit(ctx, votes)
	return post.Project(posts, counts, votes, b.viewer(ctx), names), nil
}

// Feed is ListPosts with every post's comment forest attached. All comments
// of the listed posts are loaded in one query and split per post.
func (b *Board) Feed(ctx context.Context, f post.Filter) ([]*Thread, error) {
	f, err := b.resolve(ctx, f)
	if err != nil {
		return nil, err
	}
	posts, err := b.store.ListPosts(ctx, f)
	if err != nil {
		return nil, b.fail(ctx, "list posts", err)
	}
	if len(posts) == 0 {
		return []*Thread{}, nil
	}

	comments, votes, err := b.load(ctx, post.Ids(posts))
	if err != nil {
		return nil, err
	}
	names := b.usernames(ctx, authorIds(posts, comments))
	nameComments(comments, names)

	b.audit(ctx, votes)
	forests := comment.BuildByPost(comments)
	summaries := post.Project(posts, comment.CountByPost(comments), votes, b.viewer(ctx), names)

	threads := make([]*Thread, 0, len(summaries))
	for _, s := range summaries {
		forest, ok := forests[string(s.Id)]
		if !ok {
			forest = []*comment.Node{}
		}
		threads = append(threads, &Thread{Summary: s, Comments: forest})
	}
	return threads, nil
}

// Thread returns one post with its counts and comment forest.
func (b *Board) Thread(ctx context.Context, id post.PostId) (*Thread, error) {
	p, err := b.store.GetPost(ctx, id)
	if err != nil {
		return nil, b.fail(ctx, "get post", err)
	}

	comments, votes, err := b.load(ctx, []string{string(p.Id)})
	if err != nil {
		return nil, err
	}
	names := b.usernames(ctx, authorIds([]*post.Post{p}, comments))
	nameComments(comments, names)

	b.audit(ctx, votes)
	summary := post.Project([]*post.Post{p}, comment.CountByPost(comments), votes, b.viewer(ctx), names)[0]
	return &Thread{Summary: summary, Comments: comment.BuildTree(comments)}, nil
}

// CreatePost stores a new post by the current user and returns it along
// with the refetched listing for f.
func (b *Board) CreatePost(ctx context.Context, in PostInput, f post.Filter) (*post.Post, []*post.Summary, error) {
	u, err := b.requireUser(ctx)
	if err != nil {
		return nil, nil, err
	}
	p := &post.Post{
		Id:       post.PostId(b.newId()),
		AuthorId: u.Id,
		Title:    strings.TrimSpace(in.Title),
		Body:     strings.TrimSpace(in.Body),
		Created:  b.now(),
	}
	if err := b.check(p); err != nil {
		return nil, nil, err
	}

	if err := b.store.AddPost(ctx, p); err != nil {
		return nil, nil, b.fail(ctx, "add post", err)
	}
	logger.Log(ctx).Debugf("board: post %s created by %s", p.Id, u.Id)

	list, err := b.ListPosts(ctx, f)
	return p, list, err
}

// EditPost replaces the title and body of a post owned by the current user.
func (b *Board) EditPost(ctx context.Context, id post.PostId, in PostInput) (*Thread, error) {
	u, err := b.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	edit := &post.Post{Title: strings.TrimSpace(in.Title), Body: strings.TrimSpace(in.Body)}
	if err := b.check(edit); err != nil {
		return nil, err
	}

	p, err := b.store.GetPost(ctx, id)
	if err != nil {
		return nil, b.fail(ctx, "get post", err)
	}
	if p.AuthorId != u.Id {
		return nil, ErrForbidden
	}

	now := b.now()
	p.Title, p.Body, p.Modified = edit.Title, edit.Body, &now
	if err := b.store.UpdatePost(ctx, p); err != nil {
		return nil, b.fail(ctx, "update post", err)
	}
	logger.Log(ctx).Debugf("board: post %s edited", p.Id)

	return b.Thread(ctx, id)
}

// DeletePost removes a post owned by the current user together with its
// comments and votes, and returns the refetched listing for f.
func (b *Board) DeletePost(ctx context.Context, id post.PostId, f post.Filter) ([]*post.Summary, error) {
	u, err := b.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	p, err := b.store.GetPost(ctx, id)
	if err != nil {
		return nil, b.fail(ctx, "get post", err)
	}
	if p.AuthorId != u.Id {
		return nil, ErrForbidden
	}

	if err := b.store.DeletePost(ctx, id); err != nil {
		return nil, b.fail(ctx, "delete post", err)
	}
	logger.Log(ctx).Debugf("board: post %s deleted", id)

	return b.ListPosts(ctx, f)
}

func (b *Board) resolve(ctx context.Context, f post.Filter) (post.Filter, error) {
	if !f.Mine {
		return f, nil
	}
	u, err := b.requireUser(ctx)
	if err != nil {
		return f, err
	}
	return post.Filter{AuthorId: u.Id}, nil
}

// load fetches the comments and votes of the given posts concurrently.
func (b *Board) load(ctx context.Context, ids []string) ([]*comment.Comment, []*voting.Vote, error) {
	var (
		comments []*comment.Comment
		votes    []*voting.Vote
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if comments, err = b.store.ListComments(gctx, ids); err != nil {
			return b.fail(ctx, "list comments", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if votes, err = b.store.ListVotes(gctx, ids); err != nil {
			return b.fail(ctx, "list votes", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return comments, votes, nil
}

func authorIds(posts []*post.Post, comments []*comment.Comment) []string {
	ids := post.AuthorIds(posts)
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	for _, c := range comments {
		if !seen[c.AuthorId] {
			seen[c.AuthorId] = true
			ids = append(ids, c.AuthorId)
		}
	}
	return ids
}
