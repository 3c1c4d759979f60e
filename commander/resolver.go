package commander

import (
	"log/slog"

	"github.com/nstehr/splashdown/model"
)

// redirect order for a contested destination: east first, then the
// remaining neighbors clockwise-ish. Fixed so resolution is deterministic.
var redirectDeltas = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {-1, 1}, {1, -1}, {-1, -1},
}

// ResolveConflicts rewrites the move legs of the action set so no two
// friendly agents claim the same destination cell. Agents are processed in
// bf.Mine order; the first claimant keeps its cell, later ones are
// redirected to a free neighbor of the contested cell or downgraded to
// hunker. Attack legs survive redirection; only the destination changes.
func ResolveConflicts(bf *model.Battlefield, actions []model.Action) []model.Action {
	claimed := make(map[[2]int]bool)

	// Cells of agents that are not moving are reserved up front so nobody
	// is redirected onto a stationary ally.
	for i := range bf.Mine {
		agent := &bf.Mine[i]
		if !agent.Alive() {
			continue
		}
		if i >= len(actions) || !actions[i].HasMove() {
			claimed[[2]int{agent.X, agent.Y}] = true
		}
	}

	resolved := make([]model.Action, len(actions))
	copy(resolved, actions)

	for i := range bf.Mine {
		agent := &bf.Mine[i]
		if !agent.Alive() || i >= len(resolved) || !resolved[i].HasMove() {
			continue
		}
		act := resolved[i]
		dest := [2]int{act.MoveX, act.MoveY}

		if !claimed[dest] && bf.FreeCell(dest[0], dest[1], agent.ID) {
			claimed[dest] = true
			continue
		}

		redirected := false
		for _, d := range redirectDeltas {
			alt := [2]int{dest[0] + d[0], dest[1] + d[1]}
			if alt == [2]int{agent.X, agent.Y} {
				// Walking onto its own cell is a wasted move; hunker wins.
				continue
			}
			if claimed[alt] || !bf.FreeCell(alt[0], alt[1], agent.ID) {
				continue
			}
			act.MoveX, act.MoveY = alt[0], alt[1]
			act.Rationale = act.Rationale + " (redirected)"
			resolved[i] = act
			claimed[alt] = true
			redirected = true
			break
		}
		if redirected {
			continue
		}

		slog.Debug("movement conflict unresolvable, holding", "agent", agent.ID, "cell", dest)
		// Any attack leg is dropped with the move; its range was computed
		// from the destination, not the current cell.
		resolved[i] = model.Hunker("destination contested, holding position")
		claimed[[2]int{agent.X, agent.Y}] = true
	}
	return resolved
}
