package comment

import "sort"

// Node is one comment of a reply tree with its direct replies in
// ascending creation order.
type Node struct {
	Comment  *Comment `json:"comment"`
	Children []*Node  `json:"children"`
}

// BuildTree turns the flat comments of one post into a forest. Roots and
// every sibling group come out oldest first; ties keep the input order.
//
// A comment whose parent is absent from the input becomes a root, so
// replies survive the deletion of their parent. Parent chains that loop
// back on themselves are cut at the oldest comment of the loop, which is
// promoted to a root; no comment is ever dropped.
func BuildTree(comments []*Comment) []*Node {
	if len(comments) == 0 {
		return []*Node{}
	}

	sorted := make([]*Comment, 0, len(comments))
	for _, c := range comments {
		if c != nil {
			sorted = append(sorted, c)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Created.Before(sorted[j].Created)
	})

	nodes := make([]*Node, len(sorted))
	byId := make(map[CommentId]*Node, len(sorted))
	for i, c := range sorted {
		nodes[i] = &Node{Comment: c, Children: []*Node{}}
		if _, dup := byId[c.Id]; !dup {
			byId[c.Id] = nodes[i]
		}
	}

	parents := make(map[*Node]*Node, len(nodes))
	roots := []*Node{}
	for _, n := range nodes {
		var parent *Node
		if n.Comment.IsReply() {
			parent = byId[*n.Comment.ParentId]
		}
		if parent == nil {
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
		parents[n] = parent
	}

	if Count(roots) < len(nodes) {
		roots = breakCycles(nodes, roots, parents)
	}
	return roots
}

// BuildByPost partitions comments by post and builds one forest per post.
func BuildByPost(comments []*Comment) map[string][]*Node {
	byPost := make(map[string][]*Comment)
	for _, c := range comments {
		if c == nil {
			continue
		}
		byPost[c.PostId] = append(byPost[c.PostId], c)
	}

	forests := make(map[string][]*Node, len(byPost))
	for postId, cs := range byPost {
		forests[postId] = BuildTree(cs)
	}
	return forests
}

// breakCycles cuts every parent loop at its oldest member, which becomes a
// root, until the whole input is reachable.
func breakCycles(nodes, roots []*Node, parents map[*Node]*Node) []*Node {
	order := make(map[*Node]int, len(nodes))
	for i, n := range nodes {
		order[n] = i
	}

	reached := make(map[*Node]bool, len(nodes))
	mark := func(from ...*Node) {
		Walk(from, func(n *Node, _ int) bool {
			reached[n] = true
			return true
		})
	}
	mark(roots...)

	for _, n := range nodes {
		if reached[n] {
			continue
		}

		// Climb until a node repeats: that node lies on the loop.
		seen := map[*Node]bool{}
		cur := n
		for !seen[cur] {
			seen[cur] = true
			cur = parents[cur]
		}
		oldest := cur
		for m := parents[cur]; m != cur; m = parents[m] {
			if order[m] < order[oldest] {
				oldest = m
			}
		}

		p := parents[oldest]
		p.Children = removeChild(p.Children, oldest)
		delete(parents, oldest)
		roots = append(roots, oldest)
		mark(oldest)
	}

	sort.SliceStable(roots, func(i, j int) bool {
		return order[roots[i]] < order[roots[j]]
	})
	return roots
}

func removeChild(children []*Node, n *Node) []*Node {
	for i, c := range children {
		if c == n {
			return append(children[:i], children[i+1:]...)
		}
	}
	return children
}

// Walk visits the forest depth first in display order. Roots have depth 0.
// Returning false from fn skips the node's replies.
func Walk(roots []*Node, fn func(n *Node, depth int) bool) {
	type frame struct {
		n     *Node
		depth int
	}
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{roots[i], 0})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.n, f.depth) {
			continue
		}
		for i := len(f.n.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.n.Children[i], f.depth + 1})
		}
	}
}

// Count returns the number of nodes reachable from roots.
func Count(roots []*Node) int {
	n := 0
	Walk(roots, func(*Node, int) bool {
		n++
		return true
	})
	return n
}
