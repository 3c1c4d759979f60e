package search

import (
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/nstehr/splashdown/model"
	"github.com/nstehr/splashdown/tactics"
)

// Engine runs the multi-tree search. One Engine is built per turn; trees do
// not survive across turns because the opponent's real move invalidates
// them.
type Engine struct {
	tuning tactics.Tuning
	rng    *rand.Rand
}

// NewEngine creates a search engine with the given tuning. The rng seed
// varies per construction so repeated turns explore differently.
func NewEngine(tuning tactics.Tuning) *Engine {
	return &Engine{
		tuning: tuning,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ChooseActions searches the battlefield within the time budget and returns
// one action per entry in bf.Mine, index-aligned, most-visited root child
// per tree. Dead agents and agents whose tree never expanded get hunker.
func (e *Engine) ChooseActions(bf *model.Battlefield) []model.Action {
	deadline := time.Now().Add(time.Duration(e.tuning.TimeBudgetMillis) * time.Millisecond)

	trees := e.buildTrees(bf)
	iterations := 0
	for iterations < e.tuning.MaxIterations {
		if iterations%e.tuning.TimeCheckInterval == 0 && time.Now().After(deadline) {
			break
		}
		e.iterate(bf, trees)
		iterations++
	}

	byAgent := make(map[int]model.Action, len(trees))
	for _, t := range trees {
		if t.enemy {
			continue
		}
		best := t.robustChild()
		if best == -1 {
			byAgent[t.agentID] = model.Hunker("search produced no candidates")
			continue
		}
		chosen := t.nodes[best].action
		chosen.Value = t.nodes[best].total / float64(max(1, t.nodes[best].visits))
		chosen.Rationale = "coordinated search pick"
		byAgent[t.agentID] = chosen
	}

	actions := make([]model.Action, len(bf.Mine))
	for i := range bf.Mine {
		if act, ok := byAgent[bf.Mine[i].ID]; ok {
			actions[i] = act
			slog.Debug("agent decision",
				"agent", bf.Mine[i].ID,
				"action", act.Kind.String(),
				"priority", tactics.TacticalPriority(bf, bf.Mine[i]),
				"value", act.Value,
			)
		} else {
			actions[i] = model.Hunker("eliminated")
		}
	}

	slog.Debug("search complete", "iterations", iterations, "trees", len(trees))
	return actions
}

// buildTrees creates one tree per living agent on both teams. Enemy trees
// learn from the negated team value, so their bandits steer toward moves
// that hurt us; that is the adversarial half of the search.
func (e *Engine) buildTrees(bf *model.Battlefield) []*tree {
	var trees []*tree
	for i := range bf.Mine {
		if bf.Mine[i].Alive() {
			trees = append(trees, newTree(bf.Mine[i].ID, false))
		}
	}
	for i := range bf.Enemies {
		if bf.Enemies[i].Alive() {
			trees = append(trees, newTree(bf.Enemies[i].ID, true))
		}
	}
	return trees
}

// iterate runs one lockstep descent: every tree selects or expands a child,
// the shared sim applies all chosen actions at once, and this repeats until
// max depth or a terminal state. The final evaluation backpropagates through
// every tree, negated for enemy trees.
func (e *Engine) iterate(bf *model.Battlefield, trees []*tree) {
	world := newSim(bf)
	for _, t := range trees {
		t.current = 0
	}

	for depth := 0; depth < e.tuning.MaxDepth && !world.terminal(); depth++ {
		actions := make(map[int]model.Action, len(trees))
		for _, t := range trees {
			actions[t.agentID] = e.descend(t, world)
		}
		world.step(actions)
	}

	value := world.evaluate()
	for _, t := range trees {
		if t.enemy {
			t.backpropagate(-value)
		} else {
			t.backpropagate(value)
		}
	}
}

// descend advances one tree's cursor by one ply and returns the action to
// play in the shared world. Unexpanded frontiers expand in place; cursors
// past their tree's frontier use the greedy rollout policy without growing
// the tree.
func (e *Engine) descend(t *tree, world *sim) model.Action {
	cur := &t.nodes[t.current]
	if !cur.expanded {
		parent := t.current
		for _, act := range world.legalActions(t.agentID) {
			t.addChild(parent, act, world.actionPrior(t.agentID, act))
		}
		t.nodes[parent].expanded = true
		cur = &t.nodes[parent]
	}
	if len(cur.children) == 0 {
		return world.greedyAction(t.agentID)
	}

	chosen := e.selectChild(t, t.current)
	t.current = chosen
	return t.nodes[chosen].action
}

// selectChild applies the bandit policy at one node: uniform random while
// the parent is young, then UCB1 over range-normalized means plus a static
// prior bias that keeps tactically promising branches warm.
func (e *Engine) selectChild(t *tree, parentIdx int) int {
	parent := &t.nodes[parentIdx]
	if parent.visits < e.tuning.MinRandomVisits {
		return parent.children[e.rng.Intn(len(parent.children))]
	}

	best, bestScore := parent.children[0], math.Inf(-1)
	logParent := math.Log(float64(parent.visits))
	for _, c := range parent.children {
		child := &t.nodes[c]
		if child.visits == 0 {
			return c
		}
		score := t.normalized(c) +
			e.tuning.Exploration*math.Sqrt(logParent/float64(child.visits)) +
			e.tuning.PriorityBlend*child.prior
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

