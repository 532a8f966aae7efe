package explore

import (
	"testing"
)

// diamond builds main -> a, main -> b, a -> c, b -> c with everything visible.
func diamond(t *testing.T) *Explorer {
	t.Helper()
	e := buildExplorer(t,
		[]string{"main", "a", "b", "c"},
		[][2]string{{"main", "a"}, {"main", "b"}, {"a", "c"}, {"b", "c"}},
		[]string{"main"})
	e.ShowAll()
	return e
}

func TestResolveNoInteractionIsAllDefault(t *testing.T) {
	e := diamond(t)
	r := NewResolver()

	states := r.Resolve(e, Interaction{})
	if len(states) != 4 {
		t.Fatalf("states = %d entries, want 4", len(states))
	}
	for id, s := range states {
		if s != StateDefault {
			t.Errorf("state[%s] = %v, want default", id, s)
		}
	}
}

func TestResolveSelectionHighlightsNeighbors(t *testing.T) {
	e := diamond(t)
	r := NewResolver()

	states := r.Resolve(e, Interaction{Selected: "a"})

	want := map[string]State{
		"a":    StateSelected,
		"main": StateConnected, // incoming neighbor
		"c":    StateConnected, // outgoing neighbor
		"b":    StateDimmed,
	}
	for id, w := range want {
		if states[id] != w {
			t.Errorf("state[%s] = %v, want %v", id, states[id], w)
		}
	}
}

func TestResolveTraceSuppressesConnected(t *testing.T) {
	e := diamond(t)
	r := NewResolver()

	trace := map[string]struct{}{"c": {}, "a": {}, "b": {}, "main": {}}
	states := r.Resolve(e, Interaction{Selected: "c", Trace: trace})

	if states["c"] != StateSelected {
		t.Errorf("state[c] = %v, want selected (selected beats path)", states["c"])
	}
	for _, id := range []string{"a", "b", "main"} {
		if states[id] != StatePath {
			t.Errorf("state[%s] = %v, want path", id, states[id])
		}
	}
}

func TestResolveTraceDimsNonMembers(t *testing.T) {
	e := buildExplorer(t,
		[]string{"main", "a", "b", "other"},
		[][2]string{{"main", "a"}, {"a", "b"}, {"main", "other"}, {"other", "b"}},
		[]string{"main"})
	e.ShowAll()
	r := NewResolver()

	// Trace covering only the main -> a -> b branch; "other" is a direct
	// neighbor of b but must be dimmed, not connected, while a trace is
	// active.
	trace := map[string]struct{}{"b": {}, "a": {}, "main": {}}
	states := r.Resolve(e, Interaction{Selected: "b", Trace: trace})

	if states["other"] != StateDimmed {
		t.Errorf("state[other] = %v, want dimmed during trace", states["other"])
	}
}

func TestApplyReturnsOnlyChanges(t *testing.T) {
	e := diamond(t)
	r := NewResolver()

	// First interaction: everything leaves default except nothing yet
	// tracked, so all non-default states are reported.
	changed := r.Apply(e, Interaction{Selected: "a"})
	if len(changed) != 4 {
		t.Fatalf("first apply changed = %d, want 4", len(changed))
	}

	// Same interaction again: nothing changed.
	changed = r.Apply(e, Interaction{Selected: "a"})
	if len(changed) != 0 {
		t.Errorf("repeated apply changed = %v, want none", changed)
	}

	// Moving the selection from a to b flips a, b, and the neighbor sets.
	changed = r.Apply(e, Interaction{Selected: "b"})
	if changed["b"] != StateSelected {
		t.Errorf("state[b] = %v, want selected", changed["b"])
	}
	if changed["a"] != StateDimmed {
		t.Errorf("state[a] = %v, want dimmed", changed["a"])
	}
	if _, ok := changed["main"]; ok {
		t.Errorf("main reported as changed but stayed connected")
	}
	if _, ok := changed["c"]; ok {
		t.Errorf("c reported as changed but stayed connected")
	}
}

func TestApplyClearResetsToDefault(t *testing.T) {
	e := diamond(t)
	r := NewResolver()

	r.Apply(e, Interaction{Selected: "a"})
	changed := r.Apply(e, Interaction{})

	if len(changed) != 4 {
		t.Fatalf("clear changed = %d, want 4", len(changed))
	}
	for id, s := range changed {
		if s != StateDefault {
			t.Errorf("state[%s] = %v, want default after clear", id, s)
		}
	}
}

func TestCurrentReturnsFullAssignment(t *testing.T) {
	e := diamond(t)
	r := NewResolver()

	r.Apply(e, Interaction{Selected: "a"})
	current := r.Current()
	if len(current) != 4 {
		t.Fatalf("current = %d entries, want 4", len(current))
	}
	if current["b"] != StateDimmed {
		t.Errorf("current[b] = %v, want dimmed", current["b"])
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateDefault, "default"},
		{StateDimmed, "dimmed"},
		{StateConnected, "connected"},
		{StatePath, "path"},
		{StateSelected, "selected"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
