// Package search implements the per-agent multi-tree bandit search that
// powers the coordinated decision strategy. Every agent on both teams owns
// its own tree; one iteration walks all trees in lockstep through a shared
// simulated battlefield, and each tree learns only from its own agent's
// choices.
package search

import (
	"math"

	"github.com/nstehr/splashdown/model"
)

// node is one tree position. Nodes live in a per-tree arena slice and refer
// to each other by index, so growing the tree never invalidates references
// and teardown is a single slice drop.
type node struct {
	parent   int // arena index, -1 for the root
	action   model.Action
	prior    float64 // static desirability in [0, 1], set at expansion
	children []int
	visits   int
	total    float64 // sum of backpropagated values
	expanded bool
}

// tree is one agent's arena of nodes plus the value range observed so far,
// used to normalize exploitation terms into [0, 1].
type tree struct {
	agentID  int
	enemy    bool // true when the agent plays for the opposing team
	nodes    []node
	current  int // cursor during one lockstep descent
	minValue float64
	maxValue float64
}

func newTree(agentID int, enemy bool) *tree {
	t := &tree{
		agentID:  agentID,
		enemy:    enemy,
		nodes:    make([]node, 1, 256),
		minValue: math.Inf(1),
		maxValue: math.Inf(-1),
	}
	t.nodes[0] = node{parent: -1}
	return t
}

// addChild appends a node for the action under the given parent and returns
// its arena index.
func (t *tree) addChild(parent int, action model.Action, prior float64) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, node{parent: parent, action: action, prior: prior})
	t.nodes[parent].children = append(t.nodes[parent].children, idx)
	return idx
}

// backpropagate adds the rollout value to every node on the cursor's path
// and widens the normalization range.
func (t *tree) backpropagate(value float64) {
	if value < t.minValue {
		t.minValue = value
	}
	if value > t.maxValue {
		t.maxValue = value
	}
	for idx := t.current; idx != -1; idx = t.nodes[idx].parent {
		t.nodes[idx].visits++
		t.nodes[idx].total += value
	}
}

// normalized maps a node's mean value into [0, 1] using the tree's observed
// range. Before any spread exists every node scores 0.5.
func (t *tree) normalized(idx int) float64 {
	n := &t.nodes[idx]
	if n.visits == 0 {
		return 0.5
	}
	spread := t.maxValue - t.minValue
	if spread <= 0 {
		return 0.5
	}
	mean := n.total / float64(n.visits)
	return (mean - t.minValue) / spread
}

// robustChild returns the root child with the most visits, the conventional
// low-variance final pick. Returns -1 for an unexpanded root.
func (t *tree) robustChild() int {
	best, bestVisits := -1, -1
	for _, c := range t.nodes[0].children {
		if t.nodes[c].visits > bestVisits {
			bestVisits = t.nodes[c].visits
			best = c
		}
	}
	return best
}
