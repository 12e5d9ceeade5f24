package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"forum/pkg/common"
	"forum/pkg/logger"
	"forum/pkg/user"
)

type (
	UserRepo interface {
		UserExists(context.Context, string) bool
		GetByUsernameAndPass(context.Context, string, string) (*user.User, error)
		Add(context.Context, *user.User) (string, error)
	}

	SessionManager interface {
		CreateToken(context.Context, *user.User) (string, error)
		CleanupUserSessions(ctx context.Context, userId string) error
	}

	UserHandler struct {
		Repo           UserRepo
		SessionManager SessionManager
	}

	HttpUser struct {
		Username string `json:"username" validate:"required,alphanum,min=3,max=32"`
		Password string `json:"password" validate:"required,min=8"`
	}
)

var validate = validator.New()

func NewUserHanler(r UserRepo, sm SessionManager) *UserHandler {
	return &UserHandler{
		Repo:           r,
		SessionManager: sm,
	}
}

func (uh UserHandler) LogIn(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	httpUser := new(HttpUser)
	err := common.ParseReqBody(r.Body, httpUser)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't parse request body as user: %v", err)
		common.WriteMsg(w, "bad request format", http.StatusBadRequest)
		return
	}

	user, err := uh.Repo.GetByUsernameAndPass(r.Context(), httpUser.Username, httpUser.Password)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't get the user by username `%s` and password: %v",
			httpUser.Username, err)
		common.WriteMsg(w, "user not found", http.StatusNotFound)
		return
	}

	// Remove expired user session if there are any
	if err := uh.SessionManager.CleanupUserSessions(r.Context(), user.Id); err != nil {
		logger.Log(r.Context()).Errorf("user/handlers: can't cleanup sessions for user `%s`, %v", httpUser.Username, err)
		common.WriteMsg(w, "failed managing user sessions", http.StatusInternalServerError)
		return
	}

	uh.sendToken(r.Context(), w, user, http.StatusOK)
}

func (uh UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	httpUser := new(HttpUser)
	err := common.ParseReqBody(r.Body, httpUser)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't parse request body as user: %v", err)
		common.WriteMsg(w, "bad request format", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(httpUser); err != nil {
		logger.Log(r.Context()).Infof("user/handlers: invalid registration: %v", err)
		common.WriteMsg(w, "username must be 3-32 letters or digits, password at least 8 characters", http.StatusBadRequest)
		return
	}

	// Check if user already exists
	if uh.Repo.UserExists(r.Context(), httpUser.Username) {
		msg := fmt.Sprintf(`user "%s" already exists`, httpUser.Username)
		logger.Log(r.Context()).Error(msg)
		common.WriteMsg(w, msg, http.StatusConflict)
		return
	}

	salt := common.RandStringRunes(8)
	pass := common.HashPass(httpUser.Password, salt)
	user := &user.User{
		Username: httpUser.Username,
		Password: pass,
		// Id is handled below
	}
	id, err := uh.Repo.Add(r.Context(), user)
	if err != nil {
		logger.Log(r.Context()).Errorf("user/handlers: can't add user `%s`: %v", httpUser.Username, err)
		common.WriteMsg(w, "can't add user", http.StatusInternalServerError)
		return
	}
	user.Id = id

	uh.sendToken(r.Context(), w, user, http.StatusCreated)
}

func (uh *UserHandler) sendToken(ctx context.Context, w http.ResponseWriter, user *user.User, status int) {
	token, err := uh.SessionManager.CreateToken(ctx, user)
	if err != nil {
		logger.Log(ctx).Errorf("can't create JWT token from user: %v", err)
		common.WriteMsg(w, "user authentication failed", http.StatusInternalServerError)
		return
	}

	tk := struct {
		Token string `json:"token"`
	}{token}
	w.WriteHeader(status)
	common.WriteRespJSON(w, tk)
}
