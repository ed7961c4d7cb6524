package weave

// ComputeReachability computes reachability for a collection of tasks,
// sharing one visit marker so that shared dependency subgraphs are
// traversed only once. Must run before sorting tasks for execution.
func ComputeReachability(tasks []Runner) {
	marker := make(map[*graphNode]struct{})
	for _, task := range tasks {
		if task != nil {
			task.markReachability(marker)
		}
	}
}
