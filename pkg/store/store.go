// Package store holds what the board store implementations share.
package store

import "errors"

var (
	// ErrNotFound is returned when the requested post or comment does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicateVote is returned when a second vote row for the same
	// post and user is rejected by the unique key.
	ErrDuplicateVote = errors.New("store: user already voted for the post")
)
