package middleware

import (
	"context"
	"net/http"
	"time"

	. "forum/pkg/common"
	"forum/pkg/logger"
	"forum/pkg/sessions"
	"forum/pkg/user"
)

type (
	IUserRepo interface {
		GetById(context.Context, string) (*user.User, error)
	}
	ISessionManager interface {
		UserFromToken(context.Context, string) (*user.User, error)
	}
	Auth struct {
		UserRepo       IUserRepo
		SessionManager ISessionManager
	}
)

func NewAuthMiddleware(sm ISessionManager, ur IUserRepo) *Auth {
	return &Auth{
		UserRepo:       ur,
		SessionManager: sm,
	}
}

// Middleware puts the user behind a valid token into the request context.
// Requests without a usable token pass through anonymously.
func (auth Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		userFromToken, err := auth.SessionManager.UserFromToken(r.Context(), authHeader)
		if err != nil {
			logger.Log(r.Context()).Infof("can't get user from token: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		repoCtx, repoCtxCancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer repoCtxCancel()
		user, err := auth.UserRepo.GetById(repoCtx, userFromToken.Id)
		if err != nil {
			logger.Log(r.Context()).Errorf("auth: can't get the user from repo: %v", err)
			WriteMsg(w, "user not found", http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r.WithContext(sessions.ContextWithUser(r.Context(), user)))
	})
}
