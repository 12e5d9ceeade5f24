package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"forum/pkg/board"
	"forum/pkg/comment"
	. "forum/pkg/common"
	"forum/pkg/logger"
	"forum/pkg/post"
	"forum/pkg/voting"
)

type (
	Board interface {
		ListPosts(context.Context, post.Filter) ([]*post.Summary, error)
		Feed(context.Context, post.Filter) ([]*board.Thread, error)
		Thread(context.Context, post.PostId) (*board.Thread, error)
		Comments(context.Context, post.PostId) ([]*comment.Node, error)
		Votes(context.Context, post.PostId) (voting.State, error)

		CreatePost(context.Context, board.PostInput, post.Filter) (*post.Post, []*post.Summary, error)
		EditPost(context.Context, post.PostId, board.PostInput) (*board.Thread, error)
		DeletePost(context.Context, post.PostId, post.Filter) ([]*post.Summary, error)

		PostComment(context.Context, post.PostId, string) ([]*comment.Node, error)
		PostReply(context.Context, post.PostId, comment.CommentId, string) ([]*comment.Node, error)
		DeleteComment(context.Context, comment.CommentId) ([]*comment.Node, error)

		ApplyVote(context.Context, post.PostId, string) (voting.State, error)
	}

	BoardHandler struct {
		Board Board
	}

	HttpComment struct {
		Body     string `json:"body"`
		ParentId string `json:"parent_id,omitempty"`
	}

	HttpVote struct {
		Kind string `json:"kind"`
	}

	createdResp struct {
		Post  *post.Post      `json:"post"`
		Posts []*post.Summary `json:"posts"`
	}

	voteResp struct {
		Message string       `json:"message,omitempty"`
		Votes   voting.State `json:"votes"`
	}
)

func NewBoardHandler(b Board) *BoardHandler {
	return &BoardHandler{
		Board: b,
	}
}

func (bh *BoardHandler) Routes(api *mux.Router) {
	api.HandleFunc("/posts", bh.List).Methods("GET")
	api.HandleFunc("/posts", bh.Add).Methods("POST")
	api.HandleFunc("/feed", bh.Feed).Methods("GET")
	api.HandleFunc("/post/{post_id}", bh.Get).Methods("GET")
	api.HandleFunc("/post/{post_id}", bh.Edit).Methods("PUT")
	api.HandleFunc("/post/{post_id}", bh.Delete).Methods("DELETE")
	api.HandleFunc("/post/{post_id}/vote", bh.Vote).Methods("POST")
	api.HandleFunc("/post/{post_id}/votes", bh.Votes).Methods("GET")
	api.HandleFunc("/post/{post_id}/comments", bh.Comments).Methods("GET")
	api.HandleFunc("/post/{post_id}/comments", bh.AddComment).Methods("POST")
	api.HandleFunc("/comment/{comment_id}", bh.DeleteComment).Methods("DELETE")
}

func (bh *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		WriteMsg(w, "bad filter", http.StatusBadRequest)
		return
	}

	posts, err := bh.Board.ListPosts(r.Context(), f)
	if err != nil {
		writeErr(w, r, "failed loading posts", err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

func (bh *BoardHandler) Feed(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		WriteMsg(w, "bad filter", http.StatusBadRequest)
		return
	}

	threads, err := bh.Board.Feed(r.Context(), f)
	if err != nil {
		writeErr(w, r, "failed loading feed", err)
		return
	}

	writeJSON(w, http.StatusOK, threads)
}

func (bh *BoardHandler) Add(w http.ResponseWriter, r *http.Request) {
	in := board.PostInput{}
	if err := ParseReqBody(r.Body, &in); err != nil {
		logger.Log(r.Context()).Errorf("can't parse post from request body: %v", err)
		WriteMsg(w, "can't parse post", http.StatusBadRequest)
		return
	}

	p, posts, err := bh.Board.CreatePost(r.Context(), in, post.Filter{})
	if err != nil {
		writeErr(w, r, "failed adding post", err)
		return
	}

	writeJSON(w, http.StatusCreated, createdResp{Post: p, Posts: posts})
}

func (bh *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	thread, err := bh.Board.Thread(r.Context(), postId(r))
	if err != nil {
		writeErr(w, r, "failed loading post", err)
		return
	}

	writeJSON(w, http.StatusOK, thread)
}

func (bh *BoardHandler) Edit(w http.ResponseWriter, r *http.Request) {
	in := board.PostInput{}
	if err := ParseReqBody(r.Body, &in); err != nil {
		logger.Log(r.Context()).Errorf("can't parse post from request body: %v", err)
		WriteMsg(w, "can't parse post", http.StatusBadRequest)
		return
	}

	thread, err := bh.Board.EditPost(r.Context(), postId(r), in)
	if err != nil {
		writeErr(w, r, "failed editing post", err)
		return
	}

	writeJSON(w, http.StatusOK, thread)
}

func (bh *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	posts, err := bh.Board.DeletePost(r.Context(), postId(r), post.Filter{})
	if err != nil {
		writeErr(w, r, "removing post failed", err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

func (bh *BoardHandler) Comments(w http.ResponseWriter, r *http.Request) {
	forest, err := bh.Board.Comments(r.Context(), postId(r))
	if err != nil {
		writeErr(w, r, "failed loading comments", err)
		return
	}

	writeJSON(w, http.StatusOK, forest)
}

// AddComment posts a top level comment, or a reply when parent_id is set.
func (bh *BoardHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	c := HttpComment{}
	if err := ParseReqBody(r.Body, &c); err != nil {
		logger.Log(r.Context()).Errorf("can't get comment body: %v", err)
		WriteMsg(w, "failed parsing comment body", http.StatusBadRequest)
		return
	}

	var (
		forest []*comment.Node
		err    error
	)
	if c.ParentId != "" {
		forest, err = bh.Board.PostReply(r.Context(), postId(r), comment.CommentId(c.ParentId), c.Body)
	} else {
		forest, err = bh.Board.PostComment(r.Context(), postId(r), c.Body)
	}
	if err != nil {
		writeErr(w, r, "adding comment failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, forest)
}

func (bh *BoardHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentId := comment.CommentId(mux.Vars(r)["comment_id"])

	forest, err := bh.Board.DeleteComment(r.Context(), commentId)
	if err != nil {
		writeErr(w, r, "removing comment failed", err)
		return
	}

	writeJSON(w, http.StatusOK, forest)
}

// Vote answers with the recounted votes even when the write failed.
func (bh *BoardHandler) Vote(w http.ResponseWriter, r *http.Request) {
	v := HttpVote{}
	if err := ParseReqBody(r.Body, &v); err != nil {
		logger.Log(r.Context()).Errorf("can't parse vote from request body: %v", err)
		WriteMsg(w, "can't parse vote", http.StatusBadRequest)
		return
	}

	st, err := bh.Board.ApplyVote(r.Context(), postId(r), v.Kind)
	if err != nil {
		code, msg := status(err, "voting failed")
		logFailure(r, code, err)
		writeJSON(w, code, voteResp{Message: msg, Votes: st})
		return
	}

	writeJSON(w, http.StatusOK, voteResp{Votes: st})
}

func (bh *BoardHandler) Votes(w http.ResponseWriter, r *http.Request) {
	st, err := bh.Board.Votes(r.Context(), postId(r))
	if err != nil {
		writeErr(w, r, "failed loading votes", err)
		return
	}

	writeJSON(w, http.StatusOK, st)
}

func postId(r *http.Request) post.PostId {
	return post.PostId(mux.Vars(r)["post_id"])
}

func filterFromQuery(r *http.Request) (post.Filter, error) {
	q := r.URL.Query()
	f := post.Filter{AuthorId: q.Get("author")}
	if mine := q.Get("mine"); mine != "" {
		b, err := strconv.ParseBool(mine)
		if err != nil {
			return f, err
		}
		f.Mine = b
	}
	return f, nil
}

// status maps a board error to the response code and the message shown to
// the client. Persistence failures keep their details out of the response.
func status(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, board.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, board.ErrUnauthenticated):
		return http.StatusUnauthorized, "not authorized"
	case errors.Is(err, board.ErrForbidden):
		return http.StatusForbidden, "only the author can do that"
	case errors.Is(err, board.ErrNotFound):
		return http.StatusNotFound, "not found"
	default:
		return http.StatusInternalServerError, fallback
	}
}

func writeErr(w http.ResponseWriter, r *http.Request, fallback string, err error) {
	code, msg := status(err, fallback)
	logFailure(r, code, err)
	WriteMsg(w, msg, code)
}

func logFailure(r *http.Request, code int, err error) {
	if code >= http.StatusInternalServerError {
		logger.Log(r.Context()).Errorf("%s %s failed: %v", r.Method, r.URL.Path, err)
		return
	}
	logger.Log(r.Context()).Infof("%s %s rejected: %v", r.Method, r.URL.Path, err)
}

func writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	WriteRespJSON(w, data)
}
