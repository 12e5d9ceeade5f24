package board

import (
	"context"
	"errors"
	"fmt"

	"forum/pkg/logger"
	"forum/pkg/post"
	"forum/pkg/voting"
)

var noVotes = voting.State{Mine: voting.None}

// Votes recounts the votes of a post for the current user.
func (b *Board) Votes(ctx context.Context, postId post.PostId) (voting.State, error) {
	return b.recount(ctx, postId, b.viewer(ctx))
}

// ApplyVote toggles or switches the current user's vote on a post and
// returns the recounted state. The recount runs even when the write
// fails, so the caller always gets what is actually stored along with the
// write error.
func (b *Board) ApplyVote(ctx context.Context, postId post.PostId, requested string) (voting.State, error) {
	u, err := b.requireUser(ctx)
	if err != nil {
		return noVotes, err
	}
	kind, err := voting.ParseKind(requested)
	if err != nil {
		return noVotes, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if _, err := b.store.GetPost(ctx, postId); err != nil {
		return noVotes, b.fail(ctx, "get post", err)
	}

	current, err := b.recount(ctx, postId, u.Id)
	if err != nil {
		return noVotes, err
	}
	action, next, err := voting.Transition(current.Mine, kind)
	if err != nil {
		return current, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	writeErr := b.writeVote(ctx, action, postId, u.Id, next)
	if writeErr == nil {
		b.metrics.VotesApplied.WithLabelValues(action.String()).Inc()
		logger.Log(ctx).Debugf("board: vote %s on post %s by %s: %s -> %s",
			action, postId, u.Id, current.Mine, next)
	}

	st, err := b.recount(ctx, postId, u.Id)
	if err != nil {
		return noVotes, errors.Join(writeErr, err)
	}
	return st, writeErr
}

func (b *Board) writeVote(ctx context.Context, action voting.Action, postId post.PostId, userId string, kind voting.Kind) error {
	now := b.now()
	v := &voting.Vote{PostId: string(postId), UserId: userId, Kind: kind, Created: now, Updated: now}

	var err error
	switch action {
	case voting.ActionInsert:
		err = b.store.InsertVote(ctx, v)
	case voting.ActionUpdate:
		err = b.store.UpdateVote(ctx, v)
	case voting.ActionDelete:
		err = b.store.DeleteVote(ctx, v.PostId, userId)
	default:
		return fmt.Errorf("board: unknown vote action %v", action)
	}
	if err != nil {
		return b.persistence(ctx, action.String()+" vote", err)
	}
	return nil
}

func (b *Board) recount(ctx context.Context, postId post.PostId, viewer string) (voting.State, error) {
	votes, err := b.store.ListVotes(ctx, []string{string(postId)})
	if err != nil {
		return noVotes, b.fail(ctx, "list votes", err)
	}
	st := voting.Tally(votes, viewer)
	b.report(ctx, string(postId), st)
	return st, nil
}

// audit reports duplicate vote rows found in a batch read.
func (b *Board) audit(ctx context.Context, votes []*voting.Vote) {
	for postId, st := range voting.TallyByPost(votes, "") {
		b.report(ctx, postId, st)
	}
}

func (b *Board) report(ctx context.Context, postId string, st voting.State) {
	if st.Consistent() {
		return
	}
	b.metrics.VoteInconsistencies.Add(float64(len(st.Duplicates)))
	logger.Log(ctx).Warnf("board: post %s has more than one vote row for users %v", postId, st.Duplicates)
}
