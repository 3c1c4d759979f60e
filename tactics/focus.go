package tactics

import (
	"fmt"

	"github.com/nstehr/splashdown/mechanics"
	"github.com/nstehr/splashdown/model"
)

// PriorityTarget picks the single enemy the whole team should concentrate
// on: bomb carriers first, then wounded enemies, then whoever is closest to
// the team's centroid, with a bonus for targets about to come off cooldown.
// Returns nil when no enemy is alive.
func PriorityTarget(bf *model.Battlefield) *model.AgentState {
	cx, cy, alive := 0, 0, 0
	for i := range bf.Mine {
		a := &bf.Mine[i]
		if a.Alive() {
			cx += a.X
			cy += a.Y
			alive++
		}
	}
	if alive > 0 {
		cx /= alive
		cy /= alive
	}

	var target *model.AgentState
	bestScore := -1.0
	for i := range bf.Enemies {
		enemy := &bf.Enemies[i]
		if !enemy.Alive() {
			continue
		}
		score := float64(enemy.Bombs) * 3000.0
		if enemy.Wetness > 50 {
			score += float64(enemy.Wetness-50) * 60.0
		}
		d := model.ManhattanDistance(cx, cy, enemy.X, enemy.Y)
		if d < 10 {
			score += float64(10-d) * 100.0
		}
		if enemy.Cooldown <= 1 {
			score += 1500.0
		}
		if score > bestScore {
			bestScore = score
			target = enemy
		}
	}
	return target
}

// FocusAction returns the agent's best attack against the designated focus
// target, or a zero-value hunker when the agent cannot reach it. Used by the
// focus-fire override to replace scattered attacks with concentrated ones.
func FocusAction(bf *model.Battlefield, tuning Tuning, agent model.AgentState, target *model.AgentState) model.Action {
	best := model.Hunker("cannot reach focus target")
	if target == nil || !target.Alive() {
		return best
	}
	prof := bf.Profile(agent.ID)
	distance := agent.DistanceTo(*target)

	if agent.Cooldown == 0 && distance > 0 && distance <= prof.OptimalRange {
		damage := mechanics.ShootingDamage(prof.SoakingPower, prof.OptimalRange, distance)
		cover := mechanics.CoverMultiplier(agent.X, agent.Y, target.X, target.Y, bf.Board)
		damage = int(float64(damage) * cover)
		if damage > 0 {
			value := float64(damage) * 200.0
			if target.Wetness+damage >= 100 {
				value += 10000.0
			} else {
				value += float64(target.Wetness+damage) * 100.0
			}
			best = model.ShootAt(target.ID)
			best.Value = value
			best.Rationale = fmt.Sprintf("focus fire on %d for %d", target.ID, damage)
		}
	}

	if agent.Bombs > 0 && agent.Wetness < 80 && distance <= mechanics.ThrowRange {
		damage := mechanics.ThrowDamage
		value := float64(damage) * 150.0
		if target.Wetness+damage >= 100 {
			value += 8000.0
		}
		if value > best.Value {
			best = model.ThrowAt(target.X, target.Y)
			best.Value = value
			best.Rationale = fmt.Sprintf("focus bomb on %d", target.ID)
		}
	}
	return best
}
