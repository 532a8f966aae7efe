package explore

// Trace walks backward from start along incoming edges and returns every
// node visited on the way to the entrypoint set.
//
// The walk is a breadth-first search with an explicit visited set, so cyclic
// graphs (recursion, mutual calls) terminate and no node is processed twice.
// A branch stops expanding once it reaches an entrypoint: the entrypoint is
// included in the result but its own ancestry is not explored from that
// branch. All incoming branches are explored, so diamond-shaped ancestries
// surface every contributing path.
//
// If no entrypoint is backward-reachable from start, the result is {start}
// alone - a graceful terminal case, not an error. Unknown start ids behave
// the same way.
//
// Trace is stateless and safe for concurrent use over a shared Index.
func Trace(ix *Index, start string, entrypoints map[string]struct{}) map[string]struct{} {
	visited := map[string]struct{}{start: {}}

	found := false
	queue := []string{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if _, entry := entrypoints[id]; entry {
			found = true
			continue
		}

		for parent := range ix.incoming[id] {
			if _, seen := visited[parent]; seen {
				continue
			}
			visited[parent] = struct{}{}
			queue = append(queue, parent)
		}
	}

	if !found {
		return map[string]struct{}{start: {}}
	}
	return visited
}

// TraceToEntrypoints traces a node's ancestry back to the explorer's
// entrypoint set. The returned ids are sorted for deterministic output.
func (e *Explorer) TraceToEntrypoints(id string) []string {
	entries := make(map[string]struct{})
	for _, ep := range e.model.Entrypoints() {
		entries[ep] = struct{}{}
	}
	return sortedKeys(Trace(e.index, id, entries))
}
