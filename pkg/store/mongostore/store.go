// Package mongostore keeps posts, comments and votes in three MongoDB
// collections. Votes are unique per post and user through an index.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"forum/pkg/comment"
	"forum/pkg/post"
	"forum/pkg/store"
	"forum/pkg/voting"
)

type Store struct {
	posts    IMongoCollection
	comments IMongoCollection
	votes    IMongoCollection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		posts:    &MongoCollection{Coll: db.Collection("posts")},
		comments: &MongoCollection{Coll: db.Collection("comments")},
		votes:    &MongoCollection{Coll: db.Collection("votes")},
	}
}

// EnsureIndexes creates the lookup indexes and the unique vote index that
// keeps a user to a single vote per post.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	indexes := []struct {
		coll   IMongoCollection
		models []mongo.IndexModel
	}{
		{s.posts, []mongo.IndexModel{
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created", Value: -1}}},
		}},
		{s.comments, []mongo.IndexModel{
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "created", Value: 1}}},
		}},
		{s.votes, []mongo.IndexModel{
			{Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: unique},
		}},
	}
	for _, idx := range indexes {
		if _, err := idx.coll.CreateIndexes(ctx, idx.models); err != nil {
			return fmt.Errorf("mongostore: failed creating indexes: %w", err)
		}
	}
	return nil
}

// Posts

func (s *Store) ListPosts(ctx context.Context, f post.Filter) ([]*post.Post, error) {
	filter := bson.M{}
	if f.AuthorId != "" {
		filter["author_id"] = f.AuthorId
	}
	opts := options.Find().SetSort(bson.D{{Key: "created", Value: -1}, {Key: "id", Value: 1}})

	posts := []*post.Post{}
	if err := s.findAll(ctx, s.posts, filter, &posts, opts); err != nil {
		return nil, fmt.Errorf("mongostore: failed listing posts: %w", err)
	}
	return posts, nil
}

func (s *Store) GetPost(ctx context.Context, id post.PostId) (*post.Post, error) {
	p := new(post.Post)
	if err := s.posts.FindOne(ctx, bson.M{"id": id}).Decode(p); err != nil {
		return nil, fmt.Errorf("mongostore: post %s: %w", id, notFound(err))
	}
	return p, nil
}

func (s *Store) AddPost(ctx context.Context, p *post.Post) error {
	if _, err := s.posts.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("mongostore: failed inserting a post: %w", err)
	}
	return nil
}

func (s *Store) UpdatePost(ctx context.Context, p *post.Post) error {
	update := bson.M{"$set": bson.M{"title": p.Title, "body": p.Body, "modified": p.Modified}}
	res, err := s.posts.UpdateOne(ctx, bson.M{"id": p.Id}, update)
	if err != nil {
		return fmt.Errorf("mongostore: failed updating post: %w", err)
	}
	if res.Matched() == 0 {
		return fmt.Errorf("mongostore: post %s: %w", p.Id, store.ErrNotFound)
	}
	return nil
}

// DeletePost removes votes and comments first so a failure half way leaves
// the post in place and the delete can be retried.
func (s *Store) DeletePost(ctx context.Context, id post.PostId) error {
	byPost := bson.M{"post_id": string(id)}
	if _, err := s.votes.DeleteMany(ctx, byPost); err != nil {
		return fmt.Errorf("mongostore: failed deleting post votes: %w", err)
	}
	if _, err := s.comments.DeleteMany(ctx, byPost); err != nil {
		return fmt.Errorf("mongostore: failed deleting post comments: %w", err)
	}
	res, err := s.posts.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("mongostore: failed deleting post: %w", err)
	}
	if res.Deleted() == 0 {
		return fmt.Errorf("mongostore: post %s: %w", id, store.ErrNotFound)
	}
	return nil
}

// Comments

func (s *Store) ListComments(ctx context.Context, postIds []string) ([]*comment.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created", Value: 1}, {Key: "id", Value: 1}})

	comments := []*comment.Comment{}
	if err := s.findAll(ctx, s.comments, inPosts(postIds), &comments, opts); err != nil {
		return nil, fmt.Errorf("mongostore: failed listing comments: %w", err)
	}
	return comments, nil
}

type countRow struct {
	PostId string `bson:"_id"`
	N      int    `bson:"n"`
}

func (s *Store) CountComments(ctx context.Context, postIds []string) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: inPosts(postIds)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$post_id"},
			{Key: "n", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := s.comments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongostore: failed counting comments: %w", err)
	}
	defer cursor.Close(ctx)

	rows := []countRow{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("mongostore: failed reading comment counts: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.PostId] = r.N
	}
	return counts, nil
}

func (s *Store) GetComment(ctx context.Context, id comment.CommentId) (*comment.Comment, error) {
	c := new(comment.Comment)
	if err := s.comments.FindOne(ctx, bson.M{"id": id}).Decode(c); err != nil {
		return nil, fmt.Errorf("mongostore: comment %s: %w", id, notFound(err))
	}
	return c, nil
}

func (s *Store) AddComment(ctx context.Context, c *comment.Comment) error {
	if _, err := s.comments.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("mongostore: failed inserting a comment: %w", err)
	}
	return nil
}

// DeleteComment removes a single comment. Replies keep pointing at it.
func (s *Store) DeleteComment(ctx context.Context, id comment.CommentId) error {
	res, err := s.comments.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("mongostore: failed deleting comment: %w", err)
	}
	if res.Deleted() == 0 {
		return fmt.Errorf("mongostore: comment %s: %w", id, store.ErrNotFound)
	}
	return nil
}

// Votes

func (s *Store) ListVotes(ctx context.Context, postIds []string) ([]*voting.Vote, error) {
	votes := []*voting.Vote{}
	if err := s.findAll(ctx, s.votes, inPosts(postIds), &votes); err != nil {
		return nil, fmt.Errorf("mongostore: failed listing votes: %w", err)
	}
	return votes, nil
}

func (s *Store) InsertVote(ctx context.Context, v *voting.Vote) error {
	if _, err := s.votes.InsertOne(ctx, v); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("mongostore: %w: %v", store.ErrDuplicateVote, err)
		}
		return fmt.Errorf("mongostore: failed inserting a vote: %w", err)
	}
	return nil
}

func (s *Store) UpdateVote(ctx context.Context, v *voting.Vote) error {
	res, err := s.votes.UpdateOne(ctx,
		voteKey(v.PostId, v.UserId),
		bson.M{"$set": bson.M{"kind": v.Kind, "updated": v.Updated}})
	if err != nil {
		return fmt.Errorf("mongostore: failed updating vote: %w", err)
	}
	if res.Matched() == 0 {
		return fmt.Errorf("mongostore: vote of %s on %s: %w", v.UserId, v.PostId, store.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteVote(ctx context.Context, postId, userId string) error {
	if _, err := s.votes.DeleteOne(ctx, voteKey(postId, userId)); err != nil {
		return fmt.Errorf("mongostore: failed deleting vote: %w", err)
	}
	return nil
}

func (s *Store) findAll(ctx context.Context, coll IMongoCollection, filter interface{}, results interface{}, opts ...*options.FindOptions) error {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, results)
}

func inPosts(postIds []string) bson.M {
	return bson.M{"post_id": bson.M{"$in": postIds}}
}

func voteKey(postId, userId string) bson.M {
	return bson.M{"post_id": postId, "user_id": userId}
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}
	return err
}

