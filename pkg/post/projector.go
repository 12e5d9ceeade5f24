package post

import (
	"forum/pkg/voting"
)

// Project attaches comment counts, vote counts, the viewer's own vote and
// the author name to every post. The output keeps the order of posts.
// Posts missing from commentCounts or votes get zero counts.
func Project(posts []*Post, commentCounts map[string]int, votes []*voting.Vote, viewer string, names map[string]string) []*Summary {
	states := voting.TallyByPost(votes, viewer)

	res := make([]*Summary, 0, len(posts))
	for _, p := range posts {
		if p == nil {
			continue
		}
		st, ok := states[string(p.Id)]
		if !ok {
			st = voting.State{Mine: voting.None}
		}
		res = append(res, &Summary{
			Post:          p,
			AuthorName:    names[p.AuthorId],
			CommentsCount: commentCounts[string(p.Id)],
			LikesCount:    st.Likes,
			DislikesCount: st.Dislikes,
			MyVote:        st.Mine,
		})
	}
	return res
}

// Ids returns the ids of posts in order, as plain strings for the stores.
func Ids(posts []*Post) []string {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, string(p.Id))
	}
	return ids
}

// AuthorIds returns the distinct author ids of posts.
func AuthorIds(posts []*Post) []string {
	seen := make(map[string]bool, len(posts))
	ids := []string{}
	for _, p := range posts {
		if !seen[p.AuthorId] {
			seen[p.AuthorId] = true
			ids = append(ids, p.AuthorId)
		}
	}
	return ids
}
