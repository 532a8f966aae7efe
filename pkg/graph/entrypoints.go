package graph

import (
	"fmt"
	"regexp"
	"slices"
)

// LayerEntry is the layer label that marks a node as an application entry
// regardless of its id.
const LayerEntry = "entry"

// DefaultEntrypointPatterns match common application-entry naming
// conventions in call and import graphs.
var DefaultEntrypointPatterns = []string{
	`^main\.`,
	`\.main$`,
	`^init\.`,
	`^cmd/`,
	`(?i)handler$`,
}

// Classifier derives the entrypoint id set from node naming patterns.
//
// Classification is a heuristic that runs once at load time; the explorer
// core only ever consumes the resulting id set. Nodes match if their id
// matches any pattern, their layer label is [LayerEntry], or they carry the
// Entrypoint flag.
type Classifier struct {
	patterns []*regexp.Regexp
}

// NewClassifier compiles the given patterns. With no patterns,
// DefaultEntrypointPatterns are used.
func NewClassifier(patterns ...string) (*Classifier, error) {
	if len(patterns) == 0 {
		patterns = DefaultEntrypointPatterns
	}
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("entrypoint pattern %q: %w", p, err)
		}
		compiled[i] = re
	}
	return &Classifier{patterns: compiled}, nil
}

// Classify returns the sorted entrypoint ids for the graph.
func (c *Classifier) Classify(g Graph) []string {
	var out []string
	for i := range g.Nodes {
		if c.matches(&g.Nodes[i]) {
			out = append(out, g.Nodes[i].ID)
		}
	}
	slices.Sort(out)
	return out
}

func (c *Classifier) matches(n *Node) bool {
	if n.Entrypoint || n.Layer == LayerEntry {
		return true
	}
	for _, re := range c.patterns {
		if re.MatchString(n.ID) {
			return true
		}
	}
	return false
}
