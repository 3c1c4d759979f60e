package tactics

import (
	"math"

	"github.com/nstehr/splashdown/mechanics"
	"github.com/nstehr/splashdown/model"
)

// TacticalPriority scores an agent's current situation on a 0..1 scale used
// to bias search exploration toward agents whose choices matter most this
// turn. The blend is 50% immediate tactical opportunity, 15% positioning,
// 20% territorial weight, 15% survival pressure.
func TacticalPriority(bf *model.Battlefield, agent model.AgentState) float64 {
	prof := bf.Profile(agent.ID)

	tactical := 0.0
	for i := range bf.Enemies {
		enemy := &bf.Enemies[i]
		if !enemy.Alive() {
			continue
		}
		d := agent.DistanceTo(*enemy)
		if agent.Cooldown == 0 && d > 0 && d <= prof.OptimalRange {
			damage := mechanics.ShootingDamage(prof.SoakingPower, prof.OptimalRange, d)
			tactical = math.Max(tactical, mechanics.KillProbability(enemy.Wetness, damage))
		}
		if agent.Bombs > 0 && d <= mechanics.ThrowRange {
			tactical = math.Max(tactical, mechanics.KillProbability(enemy.Wetness, mechanics.ThrowDamage))
		}
	}

	positioning := TileStrategicValue(bf, agent.X, agent.Y, prof) / 1000.0
	positioning = math.Min(1.0, math.Max(0.0, positioning))

	territorial := territorialWeight(bf, agent)

	survival := 0.0
	if agent.Wetness >= 50 {
		survival = float64(agent.Wetness) / 100.0
	}

	return tactical*0.5 + positioning*0.15 + territorial*0.2 + survival*0.15
}

// TileStrategicValue rates a cell for a given profile: cover adjacency,
// class-preferred engagement distance to the nearest enemy, map placement
// preferences (snipers like edges, bombers the middle), and spacing from
// allies to dodge shared splash.
func TileStrategicValue(bf *model.Battlefield, x, y int, prof model.AgentProfile) float64 {
	value := 0.0

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			switch bf.Board.At(x+dx, y+dy) {
			case model.TileLowCover:
				value += 150.0
			case model.TileHighCover:
				value += 300.0
			}
		}
	}

	if nearest := bf.NearestEnemy(x, y); nearest != nil {
		d := model.ManhattanDistance(x, y, nearest.X, nearest.Y)
		switch prof.Class {
		case model.Sniper:
			if d >= 4 && d <= prof.OptimalRange {
				value += 400.0
			}
		case model.Bomber, model.Berserker:
			if d <= 3 {
				value += 350.0
			}
		default:
			if d >= 2 && d <= prof.OptimalRange {
				value += 300.0
			}
		}
	}

	edgeDistance := min(min(x, bf.Board.Width-1-x), min(y, bf.Board.Height-1-y))
	switch prof.Class {
	case model.Sniper:
		if edgeDistance <= 2 {
			value += 200.0
		}
	case model.Bomber:
		if edgeDistance >= 3 {
			value += 150.0
		}
	}

	for i := range bf.Mine {
		ally := &bf.Mine[i]
		if ally.ID == prof.ID || !ally.Alive() {
			continue
		}
		if model.ManhattanDistance(x, y, ally.X, ally.Y) <= mechanics.SplashRadius*2 {
			value -= 100.0
		}
	}
	return value
}

// TerritoryBalance partitions the board into cells controlled by each team
// (nearest living agent wins, movement-weighted) and returns my cells minus
// enemy cells. Agents at 50+ wetness count their distance doubled, shrinking
// the reach of waterlogged agents.
func TerritoryBalance(bf *model.Battlefield) int {
	balance := 0
	for y := 0; y < bf.Board.Height; y++ {
		for x := 0; x < bf.Board.Width; x++ {
			mine := nearestControlDistance(bf.Mine, x, y)
			theirs := nearestControlDistance(bf.Enemies, x, y)
			if mine < theirs {
				balance++
			} else if theirs < mine {
				balance--
			}
		}
	}
	return balance
}

func nearestControlDistance(agents []model.AgentState, x, y int) int {
	best := math.MaxInt
	for i := range agents {
		a := &agents[i]
		if !a.Alive() {
			continue
		}
		d := model.ManhattanDistance(x, y, a.X, a.Y)
		if a.Wetness >= 50 {
			d *= 2
		}
		if d < best {
			best = d
		}
	}
	return best
}

// territorialWeight is the agent's share of nearby contested ground, used in
// the priority blend. An agent standing where it alone controls its
// neighborhood scores 1.0.
func territorialWeight(bf *model.Battlefield, agent model.AgentState) float64 {
	controlled, total := 0, 0
	for dy := -3; dy <= 3; dy++ {
		for dx := -3; dx <= 3; dx++ {
			cx, cy := agent.X+dx, agent.Y+dy
			if !bf.Board.InBounds(cx, cy) {
				continue
			}
			total++
			myDistance := model.ManhattanDistance(cx, cy, agent.X, agent.Y)
			if agent.Wetness >= 50 {
				myDistance *= 2
			}
			if myDistance < nearestControlDistance(bf.Enemies, cx, cy) {
				controlled++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(controlled) / float64(total)
}
