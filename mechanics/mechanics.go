// Package mechanics holds the exact combat formulas of the game engine.
// Every function here is pure; the evaluators and the search both depend on
// these numbers matching the referee, so nothing in this package is tunable.
package mechanics

import (
	"math"

	"github.com/nstehr/splashdown/model"
)

const (
	// ThrowDamage is the flat splash-bomb damage before hunker reduction.
	ThrowDamage = 30
	// ThrowRange is the maximum Manhattan distance a bomb can be thrown.
	ThrowRange = 4
	// SplashRadius is the Manhattan radius of a bomb's blast.
	SplashRadius = 1
)

// ShootingDamage computes shot damage at the given Manhattan distance.
// Zero at distance 0 (no point-blank self overlap) and beyond optimal range;
// otherwise the base power loses 25% per tile past the first, truncated.
func ShootingDamage(soakingPower, optimalRange, distance int) int {
	if distance == 0 || distance > optimalRange {
		return 0
	}
	damage := soakingPower
	if distance > 1 {
		penalty := 0.25 * float64(distance-1)
		damage = int(float64(damage) * (1.0 - penalty))
	}
	if damage < 0 {
		return 0
	}
	return damage
}

// BombDamage computes splash damage at the given distance from the impact
// cell. Hunkered targets take half, rounded down.
func BombDamage(splashDistance int, hunkered bool) int {
	if splashDistance > SplashRadius {
		return 0
	}
	damage := ThrowDamage
	if hunkered {
		damage /= 2
	}
	return damage
}

// MovementCost is the per-step cost for a waterlogged agent: one plus one
// more for each started 100-wetness fraction.
func MovementCost(wetness int) int {
	return int(math.Ceil(1.0 + float64(wetness)*0.01))
}

// CoverMultiplier scans the eight neighbors of the target for a cover tile
// that sits directly between shooter and target. Low cover halves the shot,
// high cover quarters it. The first qualifying neighbor wins; cover never
// stacks.
func CoverMultiplier(shooterX, shooterY, targetX, targetY int, board *model.Board) float64 {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			cx, cy := targetX+dx, targetY+dy
			if !board.InBounds(cx, cy) {
				continue
			}
			tile := board.At(cx, cy)
			if tile != model.TileLowCover && tile != model.TileHighCover {
				continue
			}
			blocks := (cx == targetX+1 && shooterX < targetX) ||
				(cx == targetX-1 && shooterX > targetX) ||
				(cy == targetY+1 && shooterY < targetY) ||
				(cy == targetY-1 && shooterY > targetY)
			if blocks {
				if tile == model.TileLowCover {
					return 0.5
				}
				return 0.25
			}
		}
	}
	return 1.0
}

// KillProbability is a linear proxy for how close a hit brings the target to
// elimination: certain (1.0) when wetness+damage reaches 100, otherwise the
// resulting wetness over 100.
func KillProbability(currentWetness, damage int) float64 {
	if currentWetness+damage >= 100 {
		return 1.0
	}
	return float64(currentWetness+damage) / 100.0
}

// TeamAdvantage blends the alive-count ratio (60%) and the health ratio
// (40%). Denominators are floored at 1 so a wiped enemy team doesn't divide
// by zero.
func TeamAdvantage(myAlive, enemyAlive, myHealth, enemyHealth int) float64 {
	agentRatio := float64(myAlive) / float64(max(1, enemyAlive))
	healthRatio := float64(myHealth) / float64(max(1, enemyHealth))
	return agentRatio*0.6 + healthRatio*0.4
}
