package voting

import "sort"

// State is what one viewer sees of the votes on one post.
type State struct {
	Likes    int  `json:"likes"`
	Dislikes int  `json:"dislikes"`
	Mine     Kind `json:"my_vote"`

	// Duplicates lists voters that own more than one row for the post.
	// The store is expected to prevent this; a non-empty list means the
	// single-vote rule was broken by a racing write.
	Duplicates []string `json:"-"`
}

func (s State) Consistent() bool {
	return len(s.Duplicates) == 0
}

// Tally recounts the votes of a single post as seen by viewer. An empty
// viewer means an anonymous observer. Each voter is counted once; if a
// voter owns several rows the most recently written one wins.
func Tally(votes []*Vote, viewer string) State {
	latest := make(map[string]*Vote, len(votes))
	var dups []string

	for _, v := range votes {
		if v == nil || !v.Kind.Valid() {
			continue
		}
		prev, seen := latest[v.UserId]
		if !seen {
			latest[v.UserId] = v
			continue
		}
		dups = appendOnce(dups, v.UserId)
		if newer(v, prev) {
			latest[v.UserId] = v
		}
	}

	st := State{Mine: None, Duplicates: dups}
	for voter, v := range latest {
		switch v.Kind {
		case Like:
			st.Likes++
		case Dislike:
			st.Dislikes++
		}
		if viewer != "" && voter == viewer {
			st.Mine = v.Kind
		}
	}
	sort.Strings(st.Duplicates)
	return st
}

// TallyByPost recounts a batch of votes spanning several posts. Posts
// without any vote are absent from the result; their zero state is
// State{Mine: None}.
func TallyByPost(votes []*Vote, viewer string) map[string]State {
	byPost := make(map[string][]*Vote)
	for _, v := range votes {
		if v == nil {
			continue
		}
		byPost[v.PostId] = append(byPost[v.PostId], v)
	}

	res := make(map[string]State, len(byPost))
	for postId, vs := range byPost {
		res[postId] = Tally(vs, viewer)
	}
	return res
}

func newer(a, b *Vote) bool {
	if !a.Updated.Equal(b.Updated) {
		return a.Updated.After(b.Updated)
	}
	return a.Created.After(b.Created)
}

func appendOnce(s []string, v string) []string {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}
