package main

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/jaswdr/faker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"forum/pkg/board"
	"forum/pkg/comment"
	. "forum/pkg/common"
	"forum/pkg/logger"
	"forum/pkg/post"
	"forum/pkg/sessions"
	"forum/pkg/user"
	"forum/pkg/voting"
)

var f = faker.New()

type seeder struct {
	users []*user.User
	board *board.Board
}

func seedCmd() *cobra.Command {
	var posts int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the board with fake users, posts, comments and votes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := setup(ctx, prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer a.Close()

			s := &seeder{board: a.board}
			if s.users, err = authors(ctx, a.users); err != nil {
				return err
			}
			for i := 0; i < posts; i++ {
				if err := s.thread(ctx); err != nil {
					return err
				}
			}
			logger.Log(ctx).Infof("seed: %d posts added", posts)
			return nil
		},
	}
	cmd.Flags().IntVar(&posts, "posts", 10, "number of posts to create")
	return cmd
}

// Returns existing users or creates a few. Everyone shares one password.
func authors(ctx context.Context, repo *user.UserRepo) ([]*user.User, error) {
	users, err := repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed: can't get all authors: %w", err)
	}
	if len(users) > 0 {
		return users, nil
	}

	pass := HashPass("sdfsdfsdf", RandStringRunes(8))
	names := []string{"pike"}
	for i := 0; i < 5; i++ {
		names = append(names, strings.ToLower(f.Person().FirstName())+RandStringRunes(3))
	}
	for _, name := range names {
		u := &user.User{Username: name, Password: pass}
		if u.Id, err = repo.Add(ctx, u); err != nil {
			return nil, fmt.Errorf("seed: can't add user %s: %w", name, err)
		}
		users = append(users, u)
	}
	return users, nil
}

func (s *seeder) as(ctx context.Context) context.Context {
	return sessions.ContextWithUser(ctx, s.users[rand.Intn(len(s.users))])
}

func (s *seeder) thread(ctx context.Context) error {
	in := board.PostInput{
		Title: strings.Join(f.Lorem().Words(rand.Intn(5)+3), " "),
		Body:  f.Lorem().Paragraph(rand.Intn(3) + 2),
	}
	p, _, err := s.board.CreatePost(s.as(ctx), in, post.Filter{})
	if err != nil {
		return fmt.Errorf("seed: can't add post: %w", err)
	}

	ids := []comment.CommentId{}
	for i := rand.Intn(10); i > 0; i-- {
		body := f.Lorem().Sentence(rand.Intn(12) + 3)
		var forest []*comment.Node
		if len(ids) > 0 && rand.Intn(2) == 0 {
			forest, err = s.board.PostReply(s.as(ctx), p.Id, ids[rand.Intn(len(ids))], body)
		} else {
			forest, err = s.board.PostComment(s.as(ctx), p.Id, body)
		}
		if err != nil {
			return fmt.Errorf("seed: can't add comment: %w", err)
		}
		ids = collect(forest)
	}

	for _, u := range s.users {
		kind := []voting.Kind{voting.Like, voting.Dislike, voting.None}[rand.Intn(3)]
		if kind == voting.None {
			continue
		}
		if _, err := s.board.ApplyVote(sessions.ContextWithUser(ctx, u), p.Id, string(kind)); err != nil {
			return fmt.Errorf("seed: can't vote: %w", err)
		}
	}
	return nil
}

func collect(forest []*comment.Node) []comment.CommentId {
	ids := []comment.CommentId{}
	comment.Walk(forest, func(n *comment.Node, _ int) bool {
		ids = append(ids, n.Comment.Id)
		return true
	})
	return ids
}
