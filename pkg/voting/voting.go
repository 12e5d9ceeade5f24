package voting

import (
	"errors"
	"fmt"
	"time"
)

type (
	// Kind is a stored vote kind. None is only ever an observed state:
	// a missing row means the user has not voted.
	Kind string

	Vote struct {
		PostId  string    `json:"post_id" bson:"post_id" gorm:"primaryKey"`
		UserId  string    `json:"user" bson:"user_id" gorm:"primaryKey"`
		Kind    Kind      `json:"kind" bson:"kind" gorm:"not null"`
		Created time.Time `json:"created" bson:"created"`
		Updated time.Time `json:"updated" bson:"updated"`
	}
)

const (
	None    Kind = "none"
	Like    Kind = "like"
	Dislike Kind = "dislike"
)

var ErrBadKind = errors.New("voting: vote kind must be like or dislike")

// ParseKind accepts only the kinds a user can request.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Like, Dislike:
		return k, nil
	default:
		return "", fmt.Errorf("%w, got %q", ErrBadKind, s)
	}
}

func (k Kind) Valid() bool {
	return k == Like || k == Dislike
}
