package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"forum/pkg/board"
	"forum/pkg/config"
	"forum/pkg/logger"
	"forum/pkg/sessions"
	"forum/pkg/store/mongostore"
	"forum/pkg/store/pgstore"
	"forum/pkg/user"
)

// app holds the wired dependencies shared by the commands.
type app struct {
	cfg      *config.Config
	users    *user.UserRepo
	sessions *sessions.SessionManager
	board    *board.Board
	closers  []io.Closer
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func setup(ctx context.Context, reg prometheus.Registerer) (*app, error) {
	cfg, err := config.Load(dotenv)
	if err != nil {
		return nil, err
	}
	logger.Run(cfg.LogLevel)
	a := &app{cfg: cfg}

	db, err := sql.Open("pgx", cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("main: unable to open PostgreSQL: %w", err)
	}
	a.closers = append(a.closers, db)
	if err := db.PingContext(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("main: unable to reach PostgreSQL: %w", err)
	}
	a.users = user.NewUserRepo(db)
	if err := a.users.Migrate(ctx); err != nil {
		a.Close()
		return nil, err
	}

	st, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	pool := sessions.NewPool(cfg.RedisAddr)
	a.closers = append(a.closers, pool)
	a.sessions = sessions.NewSessionManager(cfg.SecretKey, pool)

	names := user.NewDirectory(a.users, cfg.NameCacheSize, cfg.NameCacheTTL)
	a.board = board.New(st, sessions.ContextIdentity{}, names, board.NewMetrics(reg))
	return a, nil
}

func (a *app) openStore(ctx context.Context) (board.Store, error) {
	switch a.cfg.BoardStore {
	case config.StorePostgres:
		st, err := pgstore.Open(a.cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, st)
		if err := st.Migrate(ctx); err != nil {
			return nil, err
		}
		return st, nil
	default:
		connectCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(a.cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("main: can't connect to MongoDB: %w", err)
		}
		a.closers = append(a.closers, closerFunc(func() error {
			return client.Disconnect(context.Background())
		}))
		if err := client.Ping(connectCtx, nil); err != nil {
			return nil, fmt.Errorf("main: unable to reach MongoDB: %w", err)
		}
		st := mongostore.NewStore(client.Database(a.cfg.MongoDB))
		if err := st.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return st, nil
	}
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			logger.Log(context.Background()).Warnf("main: close failed: %v", err)
		}
	}
}
