package commander

import (
	"fmt"
	"log/slog"

	"github.com/nstehr/splashdown/model"
	"github.com/nstehr/splashdown/search"
	"github.com/nstehr/splashdown/tactics"
)

// Commander owns the full per-turn decision pipeline: strategy selection,
// doctrine overrides, and conflict resolution. One Commander lives for the
// whole game.
type Commander struct {
	tuning    tactics.Tuning
	overrides []*tactics.OverrideRule
	greedy    *Greedy
	cached    *Cached // optional, nil unless precomputation was requested
}

// New compiles the override doctrine and wires the default strategies.
func New(tuning tactics.Tuning) (*Commander, error) {
	overrides, err := tactics.CompileOverrides(tuning)
	if err != nil {
		return nil, fmt.Errorf("compile overrides: %w", err)
	}
	return &Commander{
		tuning:    tuning,
		overrides: overrides,
		greedy:    &Greedy{Tuning: tuning},
	}, nil
}

// SetCache installs a precomputed strategy used for the opening turns
// before the search engages.
func (c *Commander) SetCache(cached *Cached) {
	c.cached = cached
}

// DecideTurn runs the pipeline and returns one resolved action per entry in
// bf.Mine, index-aligned.
func (c *Commander) DecideTurn(bf *model.Battlefield) []model.Action {
	strategy := c.pickStrategy(bf)
	proposed := strategy.ChooseActions(bf)

	for i := range bf.Mine {
		agent := bf.Mine[i]
		if !agent.Alive() || i >= len(proposed) {
			continue
		}
		proposed[i] = tactics.ApplyOverrides(c.overrides, c.tuning, bf, agent, proposed[i])
	}

	return ResolveConflicts(bf, proposed)
}

// pickStrategy gates the search behind minimum force sizes and a few
// settling turns: with one agent left, or before positions stabilize, the
// coordination payoff doesn't cover the search's cost. A fresh engine is
// built per turn since trees never survive the opponent's real move.
func (c *Commander) pickStrategy(bf *model.Battlefield) Strategy {
	aliveMine, aliveEnemies := bf.AliveCount()
	if aliveMine >= 2 && aliveEnemies >= 1 && bf.Turn >= c.tuning.SettlingTurns {
		slog.Debug("strategy: search", "turn", bf.Turn, "mine", aliveMine, "enemies", aliveEnemies)
		return search.NewEngine(c.tuning)
	}
	if c.cached != nil && bf.Turn < c.tuning.SettlingTurns {
		slog.Debug("strategy: cached", "turn", bf.Turn)
		return c.cached
	}
	slog.Debug("strategy: greedy", "turn", bf.Turn, "mine", aliveMine, "enemies", aliveEnemies)
	return c.greedy
}
