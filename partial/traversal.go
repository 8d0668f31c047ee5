package partial

// VisitResult is a visitor's decision for one item: recurse into its
// children with a new threaded state, or stop (skip the subtree, siblings
// are unaffected).
type VisitResult struct {
	recurse bool
	state   any
}

// Continue recurses into the visited item's children, threading state to
// them.
func Continue(state any) VisitResult { return VisitResult{recurse: true, state: state} }

// Stop skips the visited item's subtree without affecting its siblings.
func Stop() VisitResult { return VisitResult{} }

// Visitor is called once per item during a Walk, back-to-front (painter's
// order, i.e. in child-declaration order).
type Visitor func(subtree ItemTree, item Item, itemIndex int, parentState any) VisitResult

// Walk performs a depth-first, back-to-front traversal of tree starting at
// startIndex (-1 for the root), invoking visit once per item.
func Walk(tree ItemTree, startIndex int, initialState any, visit Visitor) {
	n := tree.ChildCount(startIndex)
	for i := 0; i < n; i++ {
		subtree, item, itemIndex := tree.ChildAt(startIndex, i)
		result := visit(subtree, item, itemIndex, initialState)
		if !result.recurse {
			continue
		}
		Walk(subtree, itemIndex, result.state, visit)
	}
}
