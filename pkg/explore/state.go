package explore

// State is the render state of a visible node. Exactly one state applies to
// each node at any time - states are a single tagged value recomputed from
// the interaction context, never an accumulating flag list.
type State int

// States in ascending priority order. When several rules match a node the
// highest-priority state wins: selected > path > connected > dimmed.
const (
	// StateDefault applies when no interaction context exists.
	StateDefault State = iota
	// StateDimmed applies to nodes outside the interaction context.
	StateDimmed
	// StateConnected applies to direct neighbors of the selected node.
	// Only assigned when no trace is active.
	StateConnected
	// StatePath applies to members of the active trace result.
	StatePath
	// StateSelected applies to the selected node itself.
	StateSelected
)

// String returns the wire name of the state.
func (s State) String() string {
	switch s {
	case StateSelected:
		return "selected"
	case StatePath:
		return "path"
	case StateConnected:
		return "connected"
	case StateDimmed:
		return "dimmed"
	default:
		return "default"
	}
}

// MarshalText implements encoding.TextMarshaler so state maps serialize as
// readable names in JSON responses.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Interaction is the context a state assignment is computed from.
type Interaction struct {
	// Selected is the clicked node id, empty when nothing is selected.
	Selected string
	// Trace is the active trace result, nil when no trace is active.
	Trace map[string]struct{}
}

func (in Interaction) active() bool {
	return in.Selected != "" || in.Trace != nil
}

// Resolver assigns render states to visible nodes and tracks the previous
// assignment so callers receive only the changed subset.
//
// The full assignment is recomputed from scratch on every interaction;
// incremental patching of a persisted state map invites stale-state bugs and
// is deliberately not supported.
type Resolver struct {
	prev map[string]State
}

// NewResolver creates a resolver with an empty previous assignment.
// Nodes absent from the previous assignment are treated as StateDefault.
func NewResolver() *Resolver {
	return &Resolver{prev: make(map[string]State)}
}

// Resolve computes the full state assignment for the explorer's visible set.
// It does not touch the resolver's diff bookkeeping - use Apply for the
// interaction path.
func (r *Resolver) Resolve(e *Explorer, in Interaction) map[string]State {
	states := make(map[string]State, len(e.visible))

	if !in.active() {
		for id := range e.visible {
			states[id] = StateDefault
		}
		return states
	}

	for id := range e.visible {
		states[id] = r.classify(e, in, id)
	}
	return states
}

func (r *Resolver) classify(e *Explorer, in Interaction, id string) State {
	if id == in.Selected {
		return StateSelected
	}
	if in.Trace != nil {
		if _, ok := in.Trace[id]; ok {
			return StatePath
		}
		// Connected is only meaningful without an active trace.
		return StateDimmed
	}
	if in.Selected != "" && r.adjacent(e, in.Selected, id) {
		return StateConnected
	}
	return StateDimmed
}

func (r *Resolver) adjacent(e *Explorer, selected, id string) bool {
	if _, ok := e.index.outgoing[selected][id]; ok {
		return true
	}
	_, ok := e.index.incoming[selected][id]
	return ok
}

// Apply recomputes the assignment and returns only the nodes whose state
// changed since the previous call, so update cost is proportional to the
// change rather than to the visible-set size. Nodes that left the visible
// set are dropped from the bookkeeping; the renderer removes them together
// with the subgraph.
//
// Clearing the interaction (empty selection, nil trace) resets every node to
// StateDefault through the same diff path.
func (r *Resolver) Apply(e *Explorer, in Interaction) map[string]State {
	full := r.Resolve(e, in)

	changed := make(map[string]State)
	for id, s := range full {
		if prev, ok := r.prev[id]; !ok && s != StateDefault || ok && prev != s {
			changed[id] = s
		}
	}

	r.prev = full
	return changed
}

// Current returns the last full assignment computed by Apply.
func (r *Resolver) Current() map[string]State {
	out := make(map[string]State, len(r.prev))
	for id, s := range r.prev {
		out[id] = s
	}
	return out
}
