package weave

// Node is a vertex in the task dependency graph.
type Node interface {
	// InwardEdges returns the dependency edges flowing into this node.
	InwardEdges() []EdgeRef
	// Reachability returns the longest dependency path below this node:
	// 0 for roots, otherwise max over inward owners plus one. Valid only
	// after ComputeReachability has run over the graph.
	Reachability() int

	markReachability(marker map[*graphNode]struct{})
}

// graphNode holds the graph bookkeeping shared by all task
// instantiations. It is embedded into Task.
type graphNode struct {
	inward []EdgeRef
	reach  int
}

func (n *graphNode) InwardEdges() []EdgeRef {
	edges := make([]EdgeRef, len(n.inward))
	copy(edges, n.inward)

	return edges
}

func (n *graphNode) Reachability() int {
	return n.reach
}

// markReachability computes the node's reachability, sharing the visit
// marker so overlapping subgraphs are traversed once. Roots stay at 0;
// a bound but nil edge contributes 0 like a root dependency.
func (n *graphNode) markReachability(marker map[*graphNode]struct{}) {
	if _, seen := marker[n]; seen {
		return
	}
	marker[n] = struct{}{}

	if len(n.inward) == 0 {
		n.reach = 0
		return
	}

	highest := 0
	for _, edge := range n.inward {
		depth := 0
		if edge != nil {
			if owner := edge.Owner(); owner != nil {
				owner.markReachability(marker)
				if r := owner.Reachability(); r > depth {
					depth = r
				}
			}
		}
		if depth > highest {
			highest = depth
		}
	}

	n.reach = highest + 1
}
