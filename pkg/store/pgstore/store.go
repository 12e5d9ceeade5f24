// Package pgstore keeps posts, comments and votes in PostgreSQL through
// gorm. The votes primary key (post_id, user_id) allows one vote per user
// and post.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"forum/pkg/comment"
	"forum/pkg/post"
	"forum/pkg/store"
	"forum/pkg/voting"
)

type Store struct {
	db *gorm.DB
}

func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), config())
	if err != nil {
		return nil, fmt.Errorf("pgstore: failed connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("pgstore: failed getting database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return New(db), nil
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func config() *gorm.Config {
	return &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Warn),
		SkipDefaultTransaction: true,
		TranslateError:         true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var foreignKeys = []string{
	`ALTER TABLE comments DROP CONSTRAINT IF EXISTS fk_comments_post`,
	`ALTER TABLE comments ADD CONSTRAINT fk_comments_post
		FOREIGN KEY (post_id) REFERENCES posts(id) ON DELETE CASCADE`,
	`ALTER TABLE votes DROP CONSTRAINT IF EXISTS fk_votes_post`,
	`ALTER TABLE votes ADD CONSTRAINT fk_votes_post
		FOREIGN KEY (post_id) REFERENCES posts(id) ON DELETE CASCADE`,
}

// Migrate creates the tables. parent_id has no foreign key: a reply may
// outlive its parent.
func (s *Store) Migrate(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if err := db.AutoMigrate(&post.Post{}, &comment.Comment{}, &voting.Vote{}); err != nil {
		return fmt.Errorf("pgstore: failed migrating tables: %w", err)
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range foreignKeys {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("pgstore: failed adding foreign keys: %w", err)
			}
		}
		return nil
	})
}

// Posts

func (s *Store) ListPosts(ctx context.Context, f post.Filter) ([]*post.Post, error) {
	q := s.db.WithContext(ctx)
	if f.AuthorId != "" {
		q = q.Where("author_id = ?", f.AuthorId)
	}

	posts := []*post.Post{}
	if err := q.Order("created desc, id").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("pgstore: failed listing posts: %w", err)
	}
	return posts, nil
}

func (s *Store) GetPost(ctx context.Context, id post.PostId) (*post.Post, error) {
	p := new(post.Post)
	if err := s.db.WithContext(ctx).Where("id = ?", string(id)).First(p).Error; err != nil {
		return nil, fmt.Errorf("pgstore: post %s: %w", id, notFound(err))
	}
	return p, nil
}

func (s *Store) AddPost(ctx context.Context, p *post.Post) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("pgstore: failed inserting a post: %w", err)
	}
	return nil
}

func (s *Store) UpdatePost(ctx context.Context, p *post.Post) error {
	res := s.db.WithContext(ctx).Model(&post.Post{}).
		Where("id = ?", string(p.Id)).
		Updates(map[string]interface{}{"title": p.Title, "body": p.Body, "modified": p.Modified})
	if res.Error != nil {
		return fmt.Errorf("pgstore: failed updating post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("pgstore: post %s: %w", p.Id, store.ErrNotFound)
	}
	return nil
}

// DeletePost removes the post with its votes and comments in one transaction.
func (s *Store) DeletePost(ctx context.Context, id post.PostId) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", string(id)).Delete(&voting.Vote{}).Error; err != nil {
			return fmt.Errorf("pgstore: failed deleting post votes: %w", err)
		}
		if err := tx.Where("post_id = ?", string(id)).Delete(&comment.Comment{}).Error; err != nil {
			return fmt.Errorf("pgstore: failed deleting post comments: %w", err)
		}
		res := tx.Where("id = ?", string(id)).Delete(&post.Post{})
		if res.Error != nil {
			return fmt.Errorf("pgstore: failed deleting post: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("pgstore: post %s: %w", id, store.ErrNotFound)
		}
		return nil
	})
}

// Comments

func (s *Store) ListComments(ctx context.Context, postIds []string) ([]*comment.Comment, error) {
	comments := []*comment.Comment{}
	err := s.db.WithContext(ctx).
		Where("post_id IN ?", postIds).
		Order("created asc, id").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("pgstore: failed listing comments: %w", err)
	}
	return comments, nil
}

func (s *Store) CountComments(ctx context.Context, postIds []string) (map[string]int, error) {
	var rows []struct {
		PostId string
		N      int
	}
	err := s.db.WithContext(ctx).Model(&comment.Comment{}).
		Select("post_id, count(*) as n").
		Where("post_id IN ?", postIds).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("pgstore: failed counting comments: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.PostId] = r.N
	}
	return counts, nil
}

func (s *Store) GetComment(ctx context.Context, id comment.CommentId) (*comment.Comment, error) {
	c := new(comment.Comment)
	if err := s.db.WithContext(ctx).Where("id = ?", string(id)).First(c).Error; err != nil {
		return nil, fmt.Errorf("pgstore: comment %s: %w", id, notFound(err))
	}
	return c, nil
}

func (s *Store) AddComment(ctx context.Context, c *comment.Comment) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("pgstore: failed inserting a comment: %w", err)
	}
	return nil
}

func (s *Store) DeleteComment(ctx context.Context, id comment.CommentId) error {
	res := s.db.WithContext(ctx).Where("id = ?", string(id)).Delete(&comment.Comment{})
	if res.Error != nil {
		return fmt.Errorf("pgstore: failed deleting comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("pgstore: comment %s: %w", id, store.ErrNotFound)
	}
	return nil
}

// Votes

func (s *Store) ListVotes(ctx context.Context, postIds []string) ([]*voting.Vote, error) {
	votes := []*voting.Vote{}
	if err := s.db.WithContext(ctx).Where("post_id IN ?", postIds).Find(&votes).Error; err != nil {
		return nil, fmt.Errorf("pgstore: failed listing votes: %w", err)
	}
	return votes, nil
}

func (s *Store) InsertVote(ctx context.Context, v *voting.Vote) error {
	if err := s.db.WithContext(ctx).Create(v).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("pgstore: %w: %v", store.ErrDuplicateVote, err)
		}
		return fmt.Errorf("pgstore: failed inserting a vote: %w", err)
	}
	return nil
}

func (s *Store) UpdateVote(ctx context.Context, v *voting.Vote) error {
	res := s.db.WithContext(ctx).Model(&voting.Vote{}).
		Where("post_id = ? AND user_id = ?", v.PostId, v.UserId).
		Updates(map[string]interface{}{"kind": string(v.Kind), "updated": v.Updated})
	if res.Error != nil {
		return fmt.Errorf("pgstore: failed updating vote: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("pgstore: vote of %s on %s: %w", v.UserId, v.PostId, store.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteVote(ctx context.Context, postId, userId string) error {
	err := s.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postId, userId).
		Delete(&voting.Vote{}).Error
	if err != nil {
		return fmt.Errorf("pgstore: failed deleting vote: %w", err)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}
	return err
}
