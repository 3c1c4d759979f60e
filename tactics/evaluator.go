// Package tactics scores candidate actions for individual agents using the
// exact game mechanics. Each evaluator is independent and returns its best
// candidate in one tactical category; arbitration between categories belongs
// to the commander.
package tactics

import (
	"fmt"
	"math"

	"github.com/nstehr/splashdown/mechanics"
	"github.com/nstehr/splashdown/model"
)

// neighbor8 enumerates the 8-neighborhood in the fixed priority order used
// everywhere an alternative cell is searched. East-first matters for
// deterministic tie-breaking.
var neighbor8 = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// Evaluator scores actions for agents on one battlefield snapshot.
type Evaluator struct {
	BF     *model.Battlefield
	Tuning Tuning
}

// NewEvaluator binds an evaluator to a battlefield snapshot.
func NewEvaluator(bf *model.Battlefield, tuning Tuning) *Evaluator {
	return &Evaluator{BF: bf, Tuning: tuning}
}

// BestShot finds the highest-value shot for the agent, or a zero-value
// hunker when nothing qualifies. In-range shots use the per-tile falloff
// formula; targets beyond optimal range but within twice it get half the
// base power. Cover between shooter and target reduces further.
func (ev *Evaluator) BestShot(agent model.AgentState) model.Action {
	best := model.Hunker("no enemies in effective shooting range")
	if agent.Cooldown > 0 {
		best.Rationale = "weapon on cooldown"
		return best
	}

	prof := ev.BF.Profile(agent.ID)
	for i := range ev.BF.Enemies {
		enemy := &ev.BF.Enemies[i]
		if !enemy.Alive() {
			continue
		}
		distance := agent.DistanceTo(*enemy)
		if distance == 0 || distance > prof.OptimalRange*2 {
			continue
		}

		damage := mechanics.ShootingDamage(prof.SoakingPower, prof.OptimalRange, distance)
		if distance > prof.OptimalRange {
			damage = prof.SoakingPower / 2
		}
		cover := mechanics.CoverMultiplier(agent.X, agent.Y, enemy.X, enemy.Y, ev.BF.Board)
		damage = int(float64(damage) * cover)
		if damage <= 0 {
			continue
		}

		value := float64(damage) * ev.Tuning.ShotDamageWeight
		if enemy.Wetness+damage >= 100 {
			value += ev.Tuning.CertainKillBonus
		} else {
			value += float64(enemy.Wetness+damage) * ev.Tuning.WoundProgressWeight
		}

		switch prof.Class {
		case model.Sniper:
			if distance >= 4 {
				value += ev.Tuning.SniperLongShotBonus
			}
		case model.Gunner:
			if distance <= 2 {
				value += ev.Tuning.GunnerCloseBonus
			}
		case model.Berserker:
			if distance <= 2 {
				value += ev.Tuning.BerserkerCloseBonus
			}
		}

		// Finishing wounded targets beats spreading damage around.
		if enemy.Wetness > 80 {
			value *= ev.Tuning.Wound80Multiplier
		} else if enemy.Wetness > 50 {
			value *= ev.Tuning.Wound50Multiplier
		}

		if value > best.Value {
			best = model.ShootAt(enemy.ID)
			best.Value = value
			best.Rationale = fmt.Sprintf("shoot %d for %d at distance %d", enemy.ID, damage, distance)
		}
	}
	return best
}

// BestBomb searches the 3x3 neighborhood of every reachable enemy for the
// impact cell with the highest total splash damage. Cells whose blast would
// touch a living ally are vetoed outright.
func (ev *Evaluator) BestBomb(agent model.AgentState) model.Action {
	best := model.Hunker("no bomb targets in throw range")
	if agent.Cooldown > 0 || agent.Bombs <= 0 {
		best.Rationale = "no bombs available or on cooldown"
		return best
	}

	bestDamage := 0
	bestX, bestY := -1, -1
	for i := range ev.BF.Enemies {
		enemy := &ev.BF.Enemies[i]
		if !enemy.Alive() || agent.DistanceTo(*enemy) > mechanics.ThrowRange {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				bx, by := enemy.X+dx, enemy.Y+dy
				if !ev.BF.Board.InBounds(bx, by) {
					continue
				}
				if model.ManhattanDistance(agent.X, agent.Y, bx, by) > mechanics.ThrowRange {
					continue
				}
				if ev.splashHitsAlly(agent.ID, bx, by) {
					continue
				}
				damage := ev.totalSplashDamage(bx, by)
				if damage > bestDamage {
					bestDamage = damage
					bestX, bestY = bx, by
				}
			}
		}
	}

	if bestDamage == 0 {
		return best
	}

	hits := ev.enemiesInSplash(bestX, bestY)
	value := float64(bestDamage) * ev.Tuning.BombDamageWeight
	if hits > 1 {
		value += float64(hits) * ev.Tuning.BombMultiHitBonus
	}
	best = model.ThrowAt(bestX, bestY)
	best.Value = value
	best.Rationale = fmt.Sprintf("bomb (%d,%d) hits %d enemies for %d total", bestX, bestY, hits, bestDamage)
	return best
}

// BestCompound evaluates move-then-attack combinations: candidate cells
// within two tiles that close on the nearest enemy (open ground preferred
// over cover as a landing cell), each followed by the best shot or throw
// available from there. Throws account for self-splash on the landing cell.
func (ev *Evaluator) BestCompound(agent model.AgentState) model.Action {
	best := model.Hunker("no useful move-attack combination")
	prof := ev.BF.Profile(agent.ID)

	nearest := ev.BF.NearestEnemy(agent.X, agent.Y)
	candidates := ev.compoundCells(agent, nearest)

	for _, cell := range candidates {
		nx, ny := cell[0], cell[1]

		// Follow-up shot from the candidate cell.
		for i := range ev.BF.Enemies {
			enemy := &ev.BF.Enemies[i]
			if !enemy.Alive() {
				continue
			}
			distance := model.ManhattanDistance(nx, ny, enemy.X, enemy.Y)
			if distance == 0 || distance > prof.OptimalRange {
				continue
			}
			damage := prof.SoakingPower
			value := float64(damage) * ev.Tuning.CompoundShotWeight
			if enemy.Wetness+damage >= 100 {
				value += ev.Tuning.CompoundKillBonus
			} else {
				value += float64(enemy.Wetness+damage) * ev.Tuning.CompoundWoundWeight
			}
			if distance < agent.DistanceTo(*enemy) {
				value += ev.Tuning.CompoundClosingBonus
			}
			if value > best.Value {
				best = model.MoveAndShoot(nx, ny, enemy.ID)
				best.Value = value
				best.Rationale = fmt.Sprintf("advance to (%d,%d) and shoot %d for %d", nx, ny, enemy.ID, damage)
			}
		}

		// Follow-up throw from the candidate cell.
		if agent.Bombs > 0 && agent.Wetness < 80 {
			ev.compoundThrows(agent, nx, ny, &best)
		}
	}
	return best
}

func (ev *Evaluator) compoundThrows(agent model.AgentState, nx, ny int, best *model.Action) {
	for i := range ev.BF.Enemies {
		target := &ev.BF.Enemies[i]
		if !target.Alive() {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				bx, by := target.X+dx, target.Y+dy
				if !ev.BF.Board.InBounds(bx, by) {
					continue
				}
				if model.ManhattanDistance(nx, ny, bx, by) > mechanics.ThrowRange {
					continue
				}
				total := ev.totalSplashDamage(bx, by)
				if total == 0 {
					continue
				}

				selfDamage := 0
				if model.ManhattanDistance(bx, by, nx, ny) <= mechanics.SplashRadius {
					selfDamage = mechanics.ThrowDamage
					if agent.Wetness > 70 {
						selfDamage = mechanics.ThrowDamage / 2
					}
				}
				if float64(total) <= float64(selfDamage)*1.2 {
					continue
				}

				hits := ev.enemiesInSplash(bx, by)
				value := float64(total)*ev.Tuning.CompoundBombWeight - float64(selfDamage)*ev.Tuning.SelfDamagePenalty
				if hits > 1 {
					value += float64(hits) * ev.Tuning.CompoundBombMultiBonus
				}
				if model.ManhattanDistance(nx, ny, target.X, target.Y) < agent.DistanceTo(*target) {
					value += ev.Tuning.CompoundBombCloseBonus
				}
				if selfDamage == 0 {
					value += ev.Tuning.CompoundCleanBonus
				}

				if value > best.Value {
					*best = model.MoveAndThrow(nx, ny, bx, by)
					best.Value = value
					best.Rationale = fmt.Sprintf("advance to (%d,%d) and bomb (%d,%d) hitting %d enemies", nx, ny, bx, by, hits)
				}
			}
		}
	}
}

// compoundCells ranks landing cells for a move+attack: cells within two
// tiles that reduce distance to the nearest enemy come first, open tiles
// ahead of cover tiles. When no closing cell exists the plain free
// 8-neighborhood is used.
func (ev *Evaluator) compoundCells(agent model.AgentState, nearest *model.AgentState) [][2]int {
	var preferred, deferred [][2]int

	if nearest != nil {
		baseDistance := agent.DistanceTo(*nearest)
		for dx := -2; dx <= 2; dx++ {
			for dy := -2; dy <= 2; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := agent.X+dx, agent.Y+dy
				if !ev.BF.FreeCell(nx, ny, agent.ID) {
					continue
				}
				if model.ManhattanDistance(nx, ny, nearest.X, nearest.Y) >= baseDistance {
					continue
				}
				if ev.BF.Board.IsCover(nx, ny) {
					deferred = append(deferred, [2]int{nx, ny})
				} else {
					preferred = append(preferred, [2]int{nx, ny})
				}
			}
		}
	}

	if len(preferred) == 0 && len(deferred) == 0 {
		for _, d := range neighbor8 {
			nx, ny := agent.X+d[0], agent.Y+d[1]
			if !ev.BF.FreeCell(nx, ny, agent.ID) {
				continue
			}
			if ev.BF.Board.At(nx, ny) == model.TileOpen {
				preferred = append(preferred, [2]int{nx, ny})
			} else {
				deferred = append(deferred, [2]int{nx, ny})
			}
		}
	}
	return append(preferred, deferred...)
}

// CoverSeek proposes a defensive relocation when the agent is in danger:
// low health with multiple close threats, heavy incoming damage potential,
// being outnumbered, or wounded under bomb threat. The nearest unoccupied
// cover tile within two tiles wins a large fixed value that outbids normal
// offense.
func (ev *Evaluator) CoverSeek(agent model.AgentState) model.Action {
	decision := model.Hunker("no need for cover")

	threats := 0
	damagePotential := 0
	bombThreat := false
	for i := range ev.BF.Enemies {
		enemy := &ev.BF.Enemies[i]
		if !enemy.Alive() {
			continue
		}
		distance := agent.DistanceTo(*enemy)
		if distance <= 4 {
			threats++
			damagePotential += 20
			if enemy.Bombs > 0 {
				damagePotential += 30
				bombThreat = true
			}
		}
	}

	aliveMine, aliveEnemies := ev.BF.AliveCount()
	reason := ""
	switch {
	case agent.Health() <= 50 && threats >= 2:
		reason = "low health with multiple threats"
	case damagePotential >= 60:
		reason = "heavy enemy fire incoming"
	case aliveEnemies > aliveMine+1:
		reason = "outnumbered"
	case agent.Health() <= 70 && bombThreat:
		reason = "wounded under bomb threat"
	default:
		return decision
	}

	bestDistance := math.MaxInt
	bestX, bestY := -1, -1
	for dx := -2; dx <= 2; dx++ {
		for dy := -2; dy <= 2; dy++ {
			cx, cy := agent.X+dx, agent.Y+dy
			if !ev.BF.Board.IsCover(cx, cy) || !ev.BF.FreeCell(cx, cy, agent.ID) {
				continue
			}
			d := model.ManhattanDistance(agent.X, agent.Y, cx, cy)
			if d < bestDistance {
				bestDistance = d
				bestX, bestY = cx, cy
			}
		}
	}
	if bestX == -1 {
		return decision
	}

	decision = model.MoveTo(bestX, bestY)
	decision.Value = ev.Tuning.CoverSeekValue
	decision.Rationale = "seek cover: " + reason
	return decision
}

// SniperRetreat keeps a sniper at stand-off range when the team is at a
// disadvantage or the sniper itself is threatened. Non-snipers always get
// the zero-value default.
func (ev *Evaluator) SniperRetreat(agent model.AgentState) model.Action {
	decision := model.Hunker("not a sniper")
	if ev.BF.Profile(agent.ID).Class != model.Sniper {
		return decision
	}

	myHealth, enemyHealth := ev.BF.TeamHealth()
	aliveMine, aliveEnemies := ev.BF.AliveCount()
	teamAdvantage := mechanics.TeamAdvantage(aliveMine, aliveEnemies, myHealth, enemyHealth) >= 1.0

	bomberThreat := false
	for i := range ev.BF.Enemies {
		enemy := &ev.BF.Enemies[i]
		if enemy.Alive() && enemy.Bombs > 0 && agent.DistanceTo(*enemy) <= 6 {
			bomberThreat = true
			break
		}
	}

	retreat := false
	reason := ""
	if !teamAdvantage && (agent.Health() <= 60 || bomberThreat) {
		retreat = true
		reason = "team disadvantage with personal threats"
	} else if bomberThreat && agent.Health() <= 80 {
		retreat = true
		reason = "bomber threat, keeping stand-off distance"
	}
	if !retreat {
		decision.Rationale = "team advantage allows close engagement"
		return decision
	}

	nearest := ev.BF.NearestEnemy(agent.X, agent.Y)
	if nearest == nil {
		return decision
	}

	dx := float64(agent.X - nearest.X)
	dy := float64(agent.Y - nearest.Y)
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return decision
	}
	standoff := float64(ev.Tuning.SniperStandoff)
	tx := nearest.X + int(dx/length*standoff)
	ty := nearest.Y + int(dy/length*standoff)
	tx = min(max(tx, 0), ev.BF.Board.Width-1)
	ty = min(max(ty, 0), ev.BF.Board.Height-1)

	if !ev.BF.FreeCell(tx, ty, agent.ID) {
		return decision
	}
	decision = model.MoveTo(tx, ty)
	decision.Value = ev.Tuning.SniperRetreatValue
	decision.Rationale = "sniper retreat: " + reason
	return decision
}

// MoveCandidates scores plain movement options: the free 8-neighborhood at
// one and two steps, rewarding approach toward the priority (nearest) enemy
// and entry into weapon range, penalizing withdrawal and the mobility cost
// of waterlogged agents. An opponent-response pressure term discounts cells
// deep in enemy reach.
func (ev *Evaluator) MoveCandidates(agent model.AgentState) []model.Action {
	var moves []model.Action
	prof := ev.BF.Profile(agent.ID)
	nearest := ev.BF.NearestEnemy(agent.X, agent.Y)

	seen := make(map[[2]int]bool)
	for step := 1; step <= 2; step++ {
		for _, d := range neighbor8 {
			nx, ny := agent.X+d[0]*step, agent.Y+d[1]*step
			cell := [2]int{nx, ny}
			if seen[cell] || !ev.BF.FreeCell(nx, ny, agent.ID) {
				continue
			}
			seen[cell] = true

			value := 300.0
			if cost := mechanics.MovementCost(agent.Wetness); cost > 1 {
				value -= float64(cost-1) * 50.0
			}

			if nearest != nil {
				oldDistance := agent.DistanceTo(*nearest)
				newDistance := model.ManhattanDistance(nx, ny, nearest.X, nearest.Y)
				if newDistance < oldDistance {
					value += 2000.0
				} else if newDistance > oldDistance {
					value -= 1000.0
				}
				if newDistance <= prof.OptimalRange {
					value += 3000.0
				}
				if newDistance <= prof.OptimalRange+2 {
					value += 1000.0
				}
				value += ev.classRangeBonus(prof.Class, newDistance)
			}

			value -= ev.responsePressure(nx, ny)

			mv := model.MoveTo(nx, ny)
			mv.Value = value
			mv.Rationale = fmt.Sprintf("advance to (%d,%d)", nx, ny)
			moves = append(moves, mv)
		}
	}

	if len(moves) == 0 {
		hold := model.Hunker("no valid moves")
		hold.Value = 200.0
		moves = append(moves, hold)
	}
	return moves
}

// classRangeBonus rewards each class for standing at its preferred
// engagement distance.
func (ev *Evaluator) classRangeBonus(class model.AgentClass, distance int) float64 {
	switch class {
	case model.Sniper:
		if distance >= 4 && distance <= 6 {
			return 700.0
		}
	case model.Bomber:
		if distance <= 4 {
			return 600.0
		}
	case model.Berserker:
		if distance <= 2 {
			return 800.0
		}
	default:
		if distance <= 4 {
			return 400.0
		}
	}
	return 0
}

// responsePressure approximates the enemy team's reply to standing on
// (x, y): every enemy within four tiles adds pressure, doubled inside two.
// The caller subtracts it, modeling a greedy (not optimal) opponent.
func (ev *Evaluator) responsePressure(x, y int) float64 {
	pressure := 0.0
	for i := range ev.BF.Enemies {
		enemy := &ev.BF.Enemies[i]
		if !enemy.Alive() {
			continue
		}
		distance := model.ManhattanDistance(x, y, enemy.X, enemy.Y)
		if distance <= 4 {
			pressure += 100.0
		}
		if distance <= 2 {
			pressure += 200.0
		}
	}
	return pressure * 3.0 * 0.3
}

// Decide picks the agent's best standalone action across all tactical
// categories. This is the greedy per-agent path; the search strategy calls
// the category evaluators directly instead.
func (ev *Evaluator) Decide(agent model.AgentState) model.Action {
	best := model.Hunker("default defensive action")
	best.Value = 50.0

	options := []model.Action{
		ev.BestShot(agent),
		ev.BestBomb(agent),
		ev.BestCompound(agent),
		ev.CoverSeek(agent),
		ev.SniperRetreat(agent),
	}
	options = append(options, ev.MoveCandidates(agent)...)

	for _, opt := range options {
		if opt.Kind == model.ActionHunker && opt.Value == 0 {
			continue
		}
		if opt.Value > best.Value {
			best = opt
		}
	}
	return best
}

func (ev *Evaluator) splashHitsAlly(selfID, bx, by int) bool {
	for i := range ev.BF.Mine {
		ally := &ev.BF.Mine[i]
		if ally.ID == selfID || !ally.Alive() {
			continue
		}
		if model.ManhattanDistance(bx, by, ally.X, ally.Y) <= mechanics.SplashRadius {
			return true
		}
	}
	return false
}

func (ev *Evaluator) totalSplashDamage(bx, by int) int {
	total := 0
	for i := range ev.BF.Enemies {
		enemy := &ev.BF.Enemies[i]
		if !enemy.Alive() {
			continue
		}
		total += mechanics.BombDamage(model.ManhattanDistance(bx, by, enemy.X, enemy.Y), false)
	}
	return total
}

func (ev *Evaluator) enemiesInSplash(bx, by int) int {
	count := 0
	for i := range ev.BF.Enemies {
		enemy := &ev.BF.Enemies[i]
		if enemy.Alive() && model.ManhattanDistance(bx, by, enemy.X, enemy.Y) <= mechanics.SplashRadius {
			count++
		}
	}
	return count
}
