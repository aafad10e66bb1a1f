package schema

// applyFieldOrder moves named children to their configured positions. Index
// -1 appends; other indexes insert. Children without an entry keep their
// relative order.
func applyFieldOrder(children []*Node, order map[string]int) []*Node {
	if len(order) == 0 || len(children) == 0 {
		return children
	}

	kept := make([]*Node, 0, len(children))
	type move struct {
		node  *Node
		index int
	}
	var moves []move
	for _, child := range children {
		if index, ok := order[child.Name]; ok {
			moves = append(moves, move{node: child, index: index})
			continue
		}
		kept = append(kept, child)
	}

	for _, m := range moves {
		if m.index == -1 || m.index >= len(kept) {
			kept = append(kept, m.node)
			continue
		}
		index := m.index
		if index < 0 {
			index = 0
		}
		kept = append(kept[:index], append([]*Node{m.node}, kept[index:]...)...)
	}
	return kept
}
