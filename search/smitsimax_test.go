package search

import (
	"testing"

	"github.com/nstehr/splashdown/model"
	"github.com/nstehr/splashdown/tactics"
)

func searchBattlefield() *model.Battlefield {
	return &model.Battlefield{
		Board: model.NewBoard(16, 8),
		Mine: []model.AgentState{
			{ID: 1, X: 2, Y: 3, Bombs: 1},
			{ID: 2, X: 2, Y: 5},
		},
		Enemies: []model.AgentState{
			{ID: 3, X: 12, Y: 3, Wetness: 30},
			{ID: 4, X: 12, Y: 5, Wetness: 60},
		},
		Profiles: map[int]model.AgentProfile{
			1: {ID: 1, Player: 0, ShootCooldown: 1, OptimalRange: 4, SoakingPower: 16, SplashBombs: 1, Class: model.Gunner},
			2: {ID: 2, Player: 0, ShootCooldown: 5, OptimalRange: 6, SoakingPower: 24, Class: model.Sniper},
			3: {ID: 3, Player: 1, ShootCooldown: 1, OptimalRange: 4, SoakingPower: 16, Class: model.Gunner},
			4: {ID: 4, Player: 1, ShootCooldown: 1, OptimalRange: 4, SoakingPower: 16, Class: model.Gunner},
		},
		Turn: 5,
	}
}

func TestChooseActionsCoversEveryAgent(t *testing.T) {
	tuning := tactics.DefaultTuning()
	tuning.TimeBudgetMillis = 10
	engine := NewEngine(tuning)

	bf := searchBattlefield()
	actions := engine.ChooseActions(bf)
	if len(actions) != len(bf.Mine) {
		t.Fatalf("got %d actions for %d agents", len(actions), len(bf.Mine))
	}
}

func TestChooseActionsWithExpiredBudget(t *testing.T) {
	// A zero budget still has to produce a full, legal action set.
	tuning := tactics.DefaultTuning()
	tuning.TimeBudgetMillis = 0
	engine := NewEngine(tuning)

	bf := searchBattlefield()
	actions := engine.ChooseActions(bf)
	if len(actions) != len(bf.Mine) {
		t.Fatalf("got %d actions for %d agents", len(actions), len(bf.Mine))
	}
}

func TestChooseActionsSkipsDeadAgents(t *testing.T) {
	tuning := tactics.DefaultTuning()
	tuning.TimeBudgetMillis = 10
	engine := NewEngine(tuning)

	bf := searchBattlefield()
	bf.Mine[1].Wetness = 100
	actions := engine.ChooseActions(bf)
	if len(actions) != 2 {
		t.Fatalf("got %d actions, want 2", len(actions))
	}
	if actions[1].Kind != model.ActionHunker {
		t.Errorf("dead agent got %v, want HUNKER_DOWN", actions[1].Kind)
	}
}

func TestRobustChildPicksMostVisited(t *testing.T) {
	tr := newTree(1, false)
	a := tr.addChild(0, model.Hunker(""), 0)
	b := tr.addChild(0, model.MoveTo(1, 1), 0)
	tr.nodes[a].visits = 3
	tr.nodes[b].visits = 9
	if got := tr.robustChild(); got != b {
		t.Errorf("robustChild = %d, want the most visited child %d", got, b)
	}
}

func TestTreeBackpropagation(t *testing.T) {
	tr := newTree(1, false)
	child := tr.addChild(0, model.Hunker(""), 0)
	tr.current = child
	tr.backpropagate(100)
	tr.current = child
	tr.backpropagate(50)

	if tr.nodes[0].visits != 2 || tr.nodes[child].visits != 2 {
		t.Errorf("visits root=%d child=%d, want 2/2", tr.nodes[0].visits, tr.nodes[child].visits)
	}
	if tr.minValue != 50 || tr.maxValue != 100 {
		t.Errorf("value range [%v, %v], want [50, 100]", tr.minValue, tr.maxValue)
	}
	if got := tr.normalized(child); got != 0.5 {
		t.Errorf("normalized mean = %v, want 0.5 for mean 75 in [50, 100]", got)
	}
}

func TestSimTerminalEvaluation(t *testing.T) {
	bf := searchBattlefield()
	world := newSim(bf)
	for i := range world.bf.Enemies {
		world.bf.Enemies[i].Wetness = 100
	}
	if !world.terminal() {
		t.Fatal("wiped enemy team should be terminal")
	}
	if v := world.evaluate(); v < 10000 {
		t.Errorf("winning terminal value = %v, want >= 10000", v)
	}

	world = newSim(bf)
	for i := range world.bf.Mine {
		world.bf.Mine[i].Wetness = 100
	}
	if v := world.evaluate(); v > -9000 {
		t.Errorf("losing terminal value = %v, want strongly negative", v)
	}
}

func TestLegalActionsGateThrowsOnCooldown(t *testing.T) {
	bf := searchBattlefield()
	bf.Mine[0].X = 10 // bomb carrier inside throw range of enemy 3
	bf.Mine[0].Cooldown = 2
	world := newSim(bf)

	for _, act := range world.legalActions(1) {
		if act.Kind == model.ActionThrow {
			t.Errorf("cooling-down agent offered a throw at (%d,%d)", act.BombX, act.BombY)
		}
	}

	world.bf.Mine[0].Cooldown = 0
	throws := 0
	for _, act := range world.legalActions(1) {
		if act.Kind == model.ActionThrow {
			throws++
		}
	}
	if throws == 0 {
		t.Error("ready agent inside throw range offered no throws")
	}
}

func TestSimStepAppliesMove(t *testing.T) {
	bf := searchBattlefield()
	world := newSim(bf)

	world.step(map[int]model.Action{1: model.MoveTo(3, 3)})
	moved := world.agent(1)
	if moved.X != 3 || moved.Y != 3 {
		t.Errorf("agent 1 at (%d,%d), want (3,3)", moved.X, moved.Y)
	}
	for _, id := range []int{2, 3, 4} {
		a := world.agent(id)
		if a.X == 3 && a.Y == 3 {
			t.Errorf("agent %d also occupies (3,3)", id)
		}
	}
}

func TestSimStepAppliesShot(t *testing.T) {
	bf := searchBattlefield()
	bf.Mine[0].X = 10 // distance 2 from enemy 3
	world := newSim(bf)

	world.step(map[int]model.Action{1: model.ShootAt(3)})
	enemy := world.agent(3)
	if enemy.Wetness <= 30 {
		t.Errorf("shot target wetness = %d, want above 30", enemy.Wetness)
	}
	shooter := world.agent(1)
	if shooter.Cooldown != 0 {
		// ShootCooldown 1 set on fire, then the end-of-turn tick consumes it.
		t.Errorf("shooter cooldown = %d, want 0 after same-turn tick", shooter.Cooldown)
	}
}

func TestSimStepBombSplashesBothTeams(t *testing.T) {
	bf := searchBattlefield()
	bf.Mine[0].X = 11 // adjacent to enemy 3 at (12,3)
	world := newSim(bf)

	world.step(map[int]model.Action{1: model.ThrowAt(12, 3)})
	if w := world.agent(3).Wetness; w != 60 {
		t.Errorf("blast center wetness = %d, want 60", w)
	}
	if w := world.agent(1).Wetness; w != 30 {
		t.Errorf("thrower inside own splash: wetness = %d, want 30", w)
	}
	if world.agent(1).Bombs != 0 {
		t.Errorf("bomb stock = %d, want 0", world.agent(1).Bombs)
	}
}
