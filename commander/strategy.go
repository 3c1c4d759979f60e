// Package commander turns one battlefield snapshot into one legal order per
// friendly agent. It owns strategy selection, doctrine overrides, and the
// movement conflict resolver; the strategies themselves only propose.
package commander

import (
	"github.com/nstehr/splashdown/model"
	"github.com/nstehr/splashdown/tactics"
)

// Strategy produces one action per entry in bf.Mine, index-aligned. Dead
// agents get hunker. Implementations must not mutate the battlefield.
type Strategy interface {
	ChooseActions(bf *model.Battlefield) []model.Action
}

// Greedy evaluates each agent independently with the full tactical
// evaluator. No coordination between agents happens here; that is the
// search strategy's job.
type Greedy struct {
	Tuning tactics.Tuning
}

// ChooseActions implements Strategy.
func (g *Greedy) ChooseActions(bf *model.Battlefield) []model.Action {
	ev := tactics.NewEvaluator(bf, g.Tuning)
	actions := make([]model.Action, len(bf.Mine))
	for i := range bf.Mine {
		agent := bf.Mine[i]
		if !agent.Alive() {
			actions[i] = model.Hunker("eliminated")
			continue
		}
		actions[i] = ev.Decide(agent)
	}
	return actions
}
