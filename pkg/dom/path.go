package dom

// Path returns the traversal steps from root to target as child indices,
// e.g. [0, 2] means root -> child[0] -> child[2]. It returns nil, false if
// target is not in root's subtree. Path of root itself is the empty slice.
func Path(root, target Node) ([]int, bool) {
	if root == nil || target == nil {
		return nil, false
	}
	if root == target {
		return []int{}, true
	}

	var steps []int
	n := target
	for n != root {
		parent := n.Parent()
		if parent == nil {
			return nil, false
		}
		idx := 0
		for sib := parent.FirstChild(); sib != nil; sib = sib.NextSibling() {
			if sib == n {
				break
			}
			idx++
		}
		steps = append(steps, idx)
		n = parent
	}

	// Reverse into root-first order.
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps, true
}

// NodeAt resolves a path produced by Path back to a node. It returns nil
// if the path walks off the tree.
func NodeAt(root Node, path []int) Node {
	n := root
	for _, idx := range path {
		if n == nil {
			return nil
		}
		child := n.FirstChild()
		for i := 0; i < idx && child != nil; i++ {
			child = child.NextSibling()
		}
		n = child
	}
	return n
}

// ChildIndex returns n's position among its siblings, -1 if detached.
func ChildIndex(n Node) int {
	if n == nil || n.Parent() == nil {
		return -1
	}
	idx := 0
	for sib := n.Parent().FirstChild(); sib != nil; sib = sib.NextSibling() {
		if sib == n {
			return idx
		}
		idx++
	}
	return -1
}
