package tactics

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/nstehr/splashdown/mechanics"
	"github.com/nstehr/splashdown/model"
)

// OverrideEnv wraps one agent's situation and proposed action, exposing
// helper methods callable from expr conditions.
type OverrideEnv struct {
	BF       *model.Battlefield
	Agent    model.AgentState
	Proposed model.Action
}

func (e OverrideEnv) AgentHealth() int { return e.Agent.Health() }

func (e OverrideEnv) AgentBombs() int { return e.Agent.Bombs }

func (e OverrideEnv) AgentCooldown() int { return e.Agent.Cooldown }

func (e OverrideEnv) EnemyInThrowRange() bool {
	for i := range e.BF.Enemies {
		enemy := &e.BF.Enemies[i]
		if enemy.Alive() && e.Agent.DistanceTo(*enemy) <= mechanics.ThrowRange {
			return true
		}
	}
	return false
}

func (e OverrideEnv) ProposedIsThrow() bool {
	return e.Proposed.Kind == model.ActionThrow || e.Proposed.Kind == model.ActionMoveThrow
}

// ApplyFunc rewrites the proposed action when its rule's condition holds.
// Returning false leaves the proposal untouched.
type ApplyFunc func(env OverrideEnv, tuning Tuning) (model.Action, bool)

// OverrideRule is a condition/rewrite pair evaluated after normal action
// selection. Conditions compile to expr bytecode once at startup.
type OverrideRule struct {
	Name         string
	Priority     int // higher = evaluated first
	ConditionSrc string
	program      *vm.Program
	Apply        ApplyFunc
}

// CompileOverrides builds the standard override set from tuning thresholds.
// Conditions are generated via fmt.Sprintf with interpolated values, so the
// compiler never emits invalid expr.
func CompileOverrides(t Tuning) ([]*OverrideRule, error) {
	rules := []*OverrideRule{
		{
			Name:         "critical-bomb",
			Priority:     300,
			ConditionSrc: fmt.Sprintf(`AgentHealth() <= %d && AgentBombs() > 0 && AgentCooldown() == 0 && EnemyInThrowRange()`, t.CriticalHealth),
			Apply:        applyCriticalBomb,
		},
		{
			Name:         "focus-fire",
			Priority:     200,
			ConditionSrc: `AgentCooldown() == 0`,
			Apply:        applyFocusFire,
		},
		{
			Name:         "bomb-urgency",
			Priority:     100,
			ConditionSrc: fmt.Sprintf(`AgentBombs() > 0 && AgentHealth() <= %d && !ProposedIsThrow() && EnemyInThrowRange()`, t.BombUrgencyHealth),
			Apply:        applyBombUrgency,
		},
	}
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(OverrideEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile override %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Priority > rules[j].Priority })
	return rules, nil
}

// ApplyOverrides runs the compiled rules against one agent's proposed action
// in priority order. The first rule whose condition holds and whose rewrite
// succeeds wins.
func ApplyOverrides(rules []*OverrideRule, tuning Tuning, bf *model.Battlefield, agent model.AgentState, proposed model.Action) model.Action {
	env := OverrideEnv{BF: bf, Agent: agent, Proposed: proposed}
	for _, r := range rules {
		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("override condition error", "rule", r.Name, "error", err)
			continue
		}
		match, ok := result.(bool)
		if !ok || !match {
			continue
		}
		rewritten, applied := r.Apply(env, tuning)
		if !applied {
			continue
		}
		slog.Debug("override fired", "rule", r.Name, "agent", agent.ID, "was", proposed.Kind.String(), "now", rewritten.Kind.String())
		return rewritten
	}
	return proposed
}

// applyCriticalBomb forces a dying bomb carrier to spend its bombs rather
// than die holding them. The best bomb's value is multiplied so it outbids
// whatever was proposed.
func applyCriticalBomb(env OverrideEnv, tuning Tuning) (model.Action, bool) {
	ev := NewEvaluator(env.BF, tuning)
	bomb := ev.BestBomb(env.Agent)
	if bomb.Kind != model.ActionThrow {
		return env.Proposed, false
	}
	bomb.Value *= tuning.CriticalBombMultiplier
	if bomb.Value <= env.Proposed.Value {
		return env.Proposed, false
	}
	bomb.Rationale = "critical health, spending bombs: " + bomb.Rationale
	return bomb, true
}

// applyFocusFire retargets onto the shared priority target whenever the
// concentrated attack is worth a tolerable fraction of the independent pick.
// FocusFireRatio is that fraction; the team converges on one victim even at
// a small per-agent cost.
func applyFocusFire(env OverrideEnv, tuning Tuning) (model.Action, bool) {
	target := PriorityTarget(env.BF)
	if target == nil {
		return env.Proposed, false
	}
	focus := FocusAction(env.BF, tuning, env.Agent, target)
	if focus.Kind == model.ActionHunker || focus.Value <= env.Proposed.Value*tuning.FocusFireRatio {
		return env.Proposed, false
	}
	// Keep the move leg of a compound proposal only when the focus target
	// stays shootable from the landing cell; otherwise the focus shot
	// replaces the proposal wholesale.
	if env.Proposed.HasMove() && focus.Kind == model.ActionShoot {
		prof := env.BF.Profile(env.Agent.ID)
		landed := model.ManhattanDistance(env.Proposed.MoveX, env.Proposed.MoveY, target.X, target.Y)
		if landed > 0 && landed <= prof.OptimalRange {
			combined := model.MoveAndShoot(env.Proposed.MoveX, env.Proposed.MoveY, focus.TargetID)
			combined.Value = focus.Value
			combined.Rationale = focus.Rationale
			return combined, true
		}
	}
	return focus, true
}

// applyBombUrgency swaps a non-throw proposal for the best available bomb
// when the agent is unlikely to survive long enough to use it later. The
// bomb only needs to clear BombUrgencyRatio of the proposal's value; dying
// with bombs in hand wastes them entirely.
func applyBombUrgency(env OverrideEnv, tuning Tuning) (model.Action, bool) {
	ev := NewEvaluator(env.BF, tuning)
	bomb := ev.BestBomb(env.Agent)
	if bomb.Kind != model.ActionThrow || bomb.Value <= env.Proposed.Value*tuning.BombUrgencyRatio {
		return env.Proposed, false
	}
	bomb.Rationale = "bomb urgency: " + bomb.Rationale
	return bomb, true
}
