package user

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/lib/pq"

	"forum/pkg/common"
	"forum/pkg/logger"
)

const schema = `CREATE TABLE IF NOT EXISTS users (
	id       BIGSERIAL PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password BYTEA NOT NULL
)`

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{
		db: db,
	}
}

func (r *UserRepo) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("user/repo: failed creating users table: %w", err)
	}
	return nil
}

func (r *UserRepo) Add(ctx context.Context, u *User) (string, error) {
	var userID string
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users(username, password) VALUES($1, $2) RETURNING id",
		u.Username, u.Password).Scan(&userID)
	if err != nil {
		return ``, fmt.Errorf("user/repo: user wasn't added: %w", err)
	}
	return userID, nil
}

func (r *UserRepo) GetByUsernameAndPass(ctx context.Context, uname string, pass string) (*User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT id, username, password FROM users where username=$1", uname)
	u := new(User)
	if err := row.Scan(&u.Id, &u.Username, &u.Password); err != nil {
		return nil, fmt.Errorf("user/repo: row scan failed: %w", err)
	}
	// User found by username, now check if passwords are the same
	if len(u.Password) < 8 {
		return nil, errors.New("user/repo: stored password is malformed")
	}
	salt := string(u.Password[0:8])
	if !bytes.Equal(common.HashPass(pass, salt), u.Password) {
		return nil, errors.New("user/repo: password is invalid")
	}
	return u, nil
}

func (r *UserRepo) UserExists(ctx context.Context, uname string) bool {
	row := r.db.QueryRowContext(ctx, "SELECT id FROM users where username=$1", uname)
	u := new(User)
	if err := row.Scan(&u.Id); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Log(ctx).Errorf("user/repo: could not scan row: %v", err)
		}
		return false
	}
	return true
}

func (r *UserRepo) GetById(ctx context.Context, uid string) (*User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT id, username FROM users where id=$1", uid)
	u := new(User)
	if err := row.Scan(&u.Id, &u.Username); err != nil {
		return u, fmt.Errorf("user/repo: could not scan row: %w", err)
	}
	return u, nil
}

// Usernames maps the given ids to usernames. Unknown ids are left out.
func (r *UserRepo) Usernames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	rows, err := r.db.QueryContext(ctx, "SELECT id, username FROM users WHERE id::text = ANY($1)", pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("user/repo: failed querying usernames: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("user/repo: could not scan row: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

// Returns all users. Used only for seeding the DB.
func (r *UserRepo) GetAll(ctx context.Context) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, username, password FROM users")
	if err != nil {
		return nil, fmt.Errorf("repo: failed executing query for getting all users: %w", err)
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		u := new(User)
		err := rows.Scan(&u.Id, &u.Username, &u.Password)
		if err != nil {
			return nil, fmt.Errorf("user/repo: could not scan row: %w", err)
		}
		users = append(users, u)
	}

	return users, nil
}
