package commander

import (
	"testing"
	"time"

	"github.com/nstehr/splashdown/model"
	"github.com/nstehr/splashdown/tactics"
)

func pipelineBattlefield() *model.Battlefield {
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

func TestDecideTurnProducesAlignedActions(t *testing.T) {
	tuning := tactics.DefaultTuning()
	tuning.TimeBudgetMillis = 10
	cmd, err := New(tuning)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	bf := pipelineBattlefield()
	actions := cmd.DecideTurn(bf)
	if len(actions) != len(bf.Mine) {
		t.Fatalf("got %d actions for %d agents", len(actions), len(bf.Mine))
	}

	// No two friendly move legs may land on the same cell.
	seen := make(map[[2]int]bool)
	for _, a := range actions {
		if !a.HasMove() {
			continue
		}
		cell := [2]int{a.MoveX, a.MoveY}
		if seen[cell] {
			t.Errorf("duplicate destination %v after resolution", cell)
		}
		seen[cell] = true
	}
}

func TestPickStrategyGating(t *testing.T) {
	tuning := tactics.DefaultTuning()
	cmd, err := New(tuning)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	bf := pipelineBattlefield()

	bf.Turn = 0
	if _, ok := cmd.pickStrategy(bf).(*Greedy); !ok {
		t.Error("settling turns should use the greedy strategy without a cache")
	}

	bf.Turn = 5
	bf.Mine[1].Wetness = 100
	if _, ok := cmd.pickStrategy(bf).(*Greedy); !ok {
		t.Error("one remaining agent should fall back to greedy")
	}

	bf.Mine[1].Wetness = 0
	if _, ok := cmd.pickStrategy(bf).(*Greedy); ok {
		t.Error("full squad past settling turns should not use greedy")
	}
}

func TestPickStrategyUsesCacheForOpening(t *testing.T) {
	tuning := tactics.DefaultTuning()
	cmd, err := New(tuning)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	cmd.SetCache(NewCached(tuning, 100*time.Millisecond))

	bf := pipelineBattlefield()
	bf.Turn = 0
	if _, ok := cmd.pickStrategy(bf).(*Cached); !ok {
		t.Error("opening turn with a cache installed should use it")
	}
}

func TestGreedyChoosesAttackInRange(t *testing.T) {
	tuning := tactics.DefaultTuning()
	g := &Greedy{Tuning: tuning}

	bf := pipelineBattlefield()
	bf.Mine[0].X = 10 // gunner within shooting range of enemy 3
	actions := g.ChooseActions(bf)
	if len(actions) != 2 {
		t.Fatalf("got %d actions, want 2", len(actions))
	}
	a := actions[0]
	attack := a.Kind == model.ActionShoot || a.Kind == model.ActionThrow ||
		a.Kind == model.ActionMoveShoot || a.Kind == model.ActionMoveThrow
	if !attack {
		t.Errorf("gunner in range chose %v (%s), want an attack", a.Kind, a.Rationale)
	}
}

func TestCachedFallsBackGracefully(t *testing.T) {
	tuning := tactics.DefaultTuning()
	cached := NewCached(tuning, 100*time.Millisecond)

	bf := pipelineBattlefield()
	actions := cached.ChooseActions(bf)
	if len(actions) != len(bf.Mine) {
		t.Fatalf("got %d actions for %d agents", len(actions), len(bf.Mine))
	}

	// With no enemies left every lookup misses and greedy answers.
	bf.Enemies = nil
	actions = cached.ChooseActions(bf)
	if len(actions) != len(bf.Mine) {
		t.Fatalf("got %d actions with no enemies, want %d", len(actions), len(bf.Mine))
	}
}
