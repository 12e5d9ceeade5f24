package voting

import "fmt"

// Action is the single write applyVote issues against the vote store.
type Action int

const (
	ActionInsert Action = iota + 1
	ActionUpdate
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Transition maps the viewer's current vote and the requested kind to the
// write to perform and the resulting vote:
//
//	none    + like|dislike -> insert, requested
//	like    + like         -> delete, none
//	like    + dislike      -> update, dislike
//	dislike + dislike      -> delete, none
//	dislike + like         -> update, like
func Transition(current, requested Kind) (Action, Kind, error) {
	if !requested.Valid() {
		return 0, current, fmt.Errorf("%w, got %q", ErrBadKind, string(requested))
	}

	switch current {
	case None, "":
		return ActionInsert, requested, nil
	case requested:
		return ActionDelete, None, nil
	case Like, Dislike:
		return ActionUpdate, requested, nil
	default:
		return 0, current, fmt.Errorf("voting: unknown current vote %q", string(current))
	}
}
