package commander

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/nstehr/splashdown/model"
	"github.com/nstehr/splashdown/tactics"
)

// Cached is a precomputed-response strategy: during the generous first-turn
// budget it tabulates the greedy decision for a grid of bucketed single-agent
// scenarios, then answers later turns from the table when the exact bucket
// key is present. Misses fall through to live greedy evaluation, so the
// cache can only speed things up, never change legality.
type Cached struct {
	Tuning   tactics.Tuning
	fallback *Greedy
	table    map[string]cachedPlan
}

// cachedPlan is an action template relative to the nearest enemy; lookup
// re-anchors it to the live target.
type cachedPlan struct {
	kind model.ActionKind
}

// NewCached builds the scenario table within the given budget. Scenarios
// sweep class, distance-to-enemy bucket, wetness bucket, bomb stock, and
// cooldown state on a neutral open board.
func NewCached(tuning tactics.Tuning, budget time.Duration) *Cached {
	c := &Cached{
		Tuning:   tuning,
		fallback: &Greedy{Tuning: tuning},
		table:    make(map[string]cachedPlan),
	}
	deadline := time.Now().Add(budget)

	board := model.NewBoard(16, 8)
	classes := []model.AgentProfile{
		{ID: 0, ShootCooldown: 1, OptimalRange: 4, SoakingPower: 16, SplashBombs: 1, Class: model.Gunner},
		{ID: 0, ShootCooldown: 5, OptimalRange: 6, SoakingPower: 24, SplashBombs: 0, Class: model.Sniper},
		{ID: 0, ShootCooldown: 2, OptimalRange: 2, SoakingPower: 8, SplashBombs: 3, Class: model.Bomber},
		{ID: 0, ShootCooldown: 2, OptimalRange: 4, SoakingPower: 16, SplashBombs: 2, Class: model.Assault},
		{ID: 0, ShootCooldown: 5, OptimalRange: 2, SoakingPower: 32, SplashBombs: 1, Class: model.Berserker},
	}

build:
	for _, prof := range classes {
		for distance := 1; distance <= 10; distance++ {
			for _, wetness := range []int{0, 30, 60, 90} {
				for _, bombs := range []int{0, 1} {
					for _, cooldown := range []int{0, 2} {
						if time.Now().After(deadline) {
							break build
						}
						scenario := &model.Battlefield{
							Board: board,
							Mine: []model.AgentState{
								{ID: 0, X: 3, Y: 4, Cooldown: cooldown, Bombs: bombs, Wetness: wetness},
							},
							Enemies: []model.AgentState{
								{ID: 1, X: 3 + distance, Y: 4, Wetness: 40},
							},
							Profiles: map[int]model.AgentProfile{
								0: prof,
								1: {ID: 1, ShootCooldown: 1, OptimalRange: 4, SoakingPower: 16},
							},
						}
						ev := tactics.NewEvaluator(scenario, tuning)
						decision := ev.Decide(scenario.Mine[0])
						key := scenarioKey(prof.Class, distance, wetness, bombs, cooldown)
						c.table[key] = cachedPlan{kind: decision.Kind}
					}
				}
			}
		}
	}
	slog.Info("scenario cache built", "entries", len(c.table))
	return c
}

func scenarioKey(class model.AgentClass, distance, wetness, bombs, cooldown int) string {
	wb := wetness / 30 * 30
	if wb > 90 {
		wb = 90
	}
	if bombs > 1 {
		bombs = 1
	}
	if cooldown > 0 {
		cooldown = 2
	}
	if distance > 10 {
		distance = 10
	}
	return fmt.Sprintf("%d/%d/%d/%d/%d", class, distance, wb, bombs, cooldown)
}

// ChooseActions implements Strategy. Only action kinds come from the table;
// targets and cells are re-derived against the live battlefield. Any bucket
// miss or inapplicable template falls back to greedy for that agent.
func (c *Cached) ChooseActions(bf *model.Battlefield) []model.Action {
	greedy := c.fallback.ChooseActions(bf)
	ev := tactics.NewEvaluator(bf, c.Tuning)

	actions := make([]model.Action, len(bf.Mine))
	for i := range bf.Mine {
		agent := bf.Mine[i]
		if !agent.Alive() {
			actions[i] = model.Hunker("eliminated")
			continue
		}
		nearest := bf.NearestEnemy(agent.X, agent.Y)
		if nearest == nil {
			actions[i] = greedy[i]
			continue
		}
		key := scenarioKey(bf.Profile(agent.ID).Class, agent.DistanceTo(*nearest), agent.Wetness, agent.Bombs, agent.Cooldown)
		plan, ok := c.table[key]
		if !ok {
			actions[i] = greedy[i]
			continue
		}
		actions[i] = c.instantiate(ev, agent, plan, greedy[i])
	}
	return actions
}

func (c *Cached) instantiate(ev *tactics.Evaluator, agent model.AgentState, plan cachedPlan, fallback model.Action) model.Action {
	var act model.Action
	switch plan.kind {
	case model.ActionShoot:
		act = ev.BestShot(agent)
	case model.ActionThrow:
		act = ev.BestBomb(agent)
	case model.ActionMoveShoot, model.ActionMoveThrow:
		act = ev.BestCompound(agent)
	case model.ActionMove:
		moves := ev.MoveCandidates(agent)
		act = moves[0]
		for _, m := range moves[1:] {
			if m.Value > act.Value {
				act = m
			}
		}
	default:
		act = model.Hunker("cached defensive posture")
		act.Value = 50
	}
	if act.Kind != plan.kind && plan.kind != model.ActionHunker {
		return fallback
	}
	act.Rationale = "cached plan: " + act.Rationale
	return act
}
