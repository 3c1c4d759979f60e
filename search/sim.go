package search

import (
	"math"

	"github.com/nstehr/splashdown/mechanics"
	"github.com/nstehr/splashdown/model"
	"github.com/nstehr/splashdown/tactics"
)

// sim is one rollout's mutable world: a cloned battlefield stepped forward
// by the lockstep action sets the trees produce. The original battlefield is
// never touched.
type sim struct {
	bf       *model.Battlefield
	hunkered map[int]bool // rebuilt every step
}

func newSim(bf *model.Battlefield) *sim {
	return &sim{bf: bf.Clone(), hunkered: make(map[int]bool)}
}

func (s *sim) agent(id int) *model.AgentState {
	for i := range s.bf.Mine {
		if s.bf.Mine[i].ID == id {
			return &s.bf.Mine[i]
		}
	}
	for i := range s.bf.Enemies {
		if s.bf.Enemies[i].ID == id {
			return &s.bf.Enemies[i]
		}
	}
	return nil
}

func (s *sim) isMine(id int) bool {
	for i := range s.bf.Mine {
		if s.bf.Mine[i].ID == id {
			return true
		}
	}
	return false
}

// opponents returns the team the given agent shoots at.
func (s *sim) opponents(id int) []model.AgentState {
	if s.isMine(id) {
		return s.bf.Enemies
	}
	return s.bf.Mine
}

// legalActions enumerates the expansion move set for an agent: hunker,
// shots at opponents inside optimal range, throws onto occupied opponent
// cells inside throw range, and steps into the free 8-neighborhood.
func (s *sim) legalActions(id int) []model.Action {
	a := s.agent(id)
	if a == nil || !a.Alive() {
		return []model.Action{model.Hunker("eliminated")}
	}
	prof := s.bf.Profile(id)
	actions := []model.Action{model.Hunker("hold")}

	opponents := s.opponents(id)
	for i := range opponents {
		op := &opponents[i]
		if !op.Alive() {
			continue
		}
		d := a.DistanceTo(*op)
		if a.Cooldown == 0 && d > 0 && d <= prof.OptimalRange {
			actions = append(actions, model.ShootAt(op.ID))
		}
		if a.Cooldown == 0 && a.Bombs > 0 && d <= mechanics.ThrowRange {
			actions = append(actions, model.ThrowAt(op.X, op.Y))
		}
	}

	for _, delta := range [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
		nx, ny := a.X+delta[0], a.Y+delta[1]
		if s.bf.FreeCell(nx, ny, id) {
			actions = append(actions, model.MoveTo(nx, ny))
		}
	}
	return actions
}

// actionPrior rates an action's static desirability in [0, 1] at expansion
// time, blending kill progress for attacks with closing moves. The bandit
// adds it as a fixed bias, so promising branches get early visits without
// being locked in.
func (s *sim) actionPrior(id int, act model.Action) float64 {
	a := s.agent(id)
	if a == nil {
		return 0
	}
	prof := s.bf.Profile(id)
	switch act.Kind {
	case model.ActionShoot:
		target := s.agent(act.TargetID)
		if target == nil {
			return 0
		}
		damage := mechanics.ShootingDamage(prof.SoakingPower, prof.OptimalRange, a.DistanceTo(*target))
		return mechanics.KillProbability(target.Wetness, damage)
	case model.ActionThrow:
		best := 0.0
		opponents := s.opponents(id)
		for i := range opponents {
			op := &opponents[i]
			if !op.Alive() {
				continue
			}
			damage := mechanics.BombDamage(model.ManhattanDistance(act.BombX, act.BombY, op.X, op.Y), false)
			if damage == 0 {
				continue
			}
			if p := mechanics.KillProbability(op.Wetness, damage); p > best {
				best = p
			}
		}
		return best
	case model.ActionMove:
		prior := tactics.TileStrategicValue(s.bf, act.MoveX, act.MoveY, prof) / 1000.0
		prior = math.Min(1.0, math.Max(0.0, prior))
		opponents := s.opponents(id)
		for i := range opponents {
			op := &opponents[i]
			if !op.Alive() {
				continue
			}
			if model.ManhattanDistance(act.MoveX, act.MoveY, op.X, op.Y) < a.DistanceTo(*op) {
				prior = math.Max(prior, 0.3)
				break
			}
		}
		return prior
	default:
		return 0.1
	}
}

// greedyAction is the rollout policy past a tree's expanded frontier: shoot
// the nearest opponent if possible, otherwise step toward it, otherwise
// hunker.
func (s *sim) greedyAction(id int) model.Action {
	a := s.agent(id)
	if a == nil || !a.Alive() {
		return model.Hunker("eliminated")
	}
	prof := s.bf.Profile(id)

	var nearest *model.AgentState
	best := int(^uint(0) >> 1)
	opponents := s.opponents(id)
	for i := range opponents {
		op := &opponents[i]
		if !op.Alive() {
			continue
		}
		if d := a.DistanceTo(*op); d < best {
			best = d
			nearest = op
		}
	}
	if nearest == nil {
		return model.Hunker("no opponents")
	}
	if a.Cooldown == 0 && best > 0 && best <= prof.OptimalRange {
		return model.ShootAt(nearest.ID)
	}

	step := func(v int) int {
		if v > 0 {
			return 1
		}
		if v < 0 {
			return -1
		}
		return 0
	}
	nx, ny := a.X+step(nearest.X-a.X), a.Y+step(nearest.Y-a.Y)
	if s.bf.FreeCell(nx, ny, id) {
		return model.MoveTo(nx, ny)
	}
	return model.Hunker("blocked")
}

// step advances the world one turn: moves, then hunker marks, then shots
// and throws resolved simultaneously against post-move positions. Cooldowns
// tick down for everyone who did not fire.
func (s *sim) step(actions map[int]model.Action) {
	clear(s.hunkered)

	for id, act := range actions {
		if !act.HasMove() {
			continue
		}
		a := s.agent(id)
		if a == nil || !a.Alive() {
			continue
		}
		if s.bf.FreeCell(act.MoveX, act.MoveY, id) {
			a.X, a.Y = act.MoveX, act.MoveY
		}
	}

	for id, act := range actions {
		if act.Kind == model.ActionHunker {
			s.hunkered[id] = true
		}
	}

	type hit struct {
		targetID int
		damage   int
	}
	type blast struct {
		x, y int
	}
	var hits []hit
	var blasts []blast

	for id, act := range actions {
		a := s.agent(id)
		if a == nil || !a.Alive() {
			continue
		}
		prof := s.bf.Profile(id)
		switch act.Kind {
		case model.ActionShoot, model.ActionMoveShoot:
			if a.Cooldown > 0 {
				continue
			}
			target := s.agent(act.TargetID)
			if target == nil || !target.Alive() {
				continue
			}
			d := a.DistanceTo(*target)
			damage := mechanics.ShootingDamage(prof.SoakingPower, prof.OptimalRange, d)
			damage = int(float64(damage) * mechanics.CoverMultiplier(a.X, a.Y, target.X, target.Y, s.bf.Board))
			if s.hunkered[target.ID] {
				damage = damage * 3 / 4
			}
			if damage > 0 {
				hits = append(hits, hit{target.ID, damage})
			}
			a.Cooldown = prof.ShootCooldown
		case model.ActionThrow, model.ActionMoveThrow:
			if a.Bombs <= 0 {
				continue
			}
			a.Bombs--
			blasts = append(blasts, blast{act.BombX, act.BombY})
		}
	}

	for _, h := range hits {
		if t := s.agent(h.targetID); t != nil {
			t.Wetness += h.damage
		}
	}
	for _, b := range blasts {
		s.applyBlast(b.x, b.y)
	}

	for i := range s.bf.Mine {
		if s.bf.Mine[i].Cooldown > 0 {
			s.bf.Mine[i].Cooldown--
		}
	}
	for i := range s.bf.Enemies {
		if s.bf.Enemies[i].Cooldown > 0 {
			s.bf.Enemies[i].Cooldown--
		}
	}
	s.bf.Turn++
}

// applyBlast damages every agent inside the splash radius, both teams alike.
func (s *sim) applyBlast(x, y int) {
	apply := func(team []model.AgentState) {
		for i := range team {
			a := &team[i]
			if !a.Alive() {
				continue
			}
			d := model.ManhattanDistance(x, y, a.X, a.Y)
			a.Wetness += mechanics.BombDamage(d, s.hunkered[a.ID])
		}
	}
	apply(s.bf.Mine)
	apply(s.bf.Enemies)
}

// terminal reports whether either team is wiped out.
func (s *sim) terminal() bool {
	mine, enemies := s.bf.AliveCount()
	return mine == 0 || enemies == 0
}

// evaluate scores the position from my team's perspective. Terminal states
// dominate everything; otherwise health, numbers, bomb stock, proximity
// pressure, and territorial control each contribute.
func (s *sim) evaluate() float64 {
	aliveMine, aliveEnemies := s.bf.AliveCount()
	myHealth, enemyHealth := s.bf.TeamHealth()

	if aliveEnemies == 0 {
		return 10000.0 + float64(myHealth-enemyHealth)*10.0
	}
	if aliveMine == 0 {
		return -10000.0 + float64(myHealth-enemyHealth)*10.0
	}

	value := float64(myHealth-enemyHealth)*5.0 + float64(aliveMine-aliveEnemies)*500.0

	myBombs, enemyBombs := 0, 0
	for i := range s.bf.Mine {
		if s.bf.Mine[i].Alive() {
			myBombs += s.bf.Mine[i].Bombs
		}
	}
	for i := range s.bf.Enemies {
		if s.bf.Enemies[i].Alive() {
			enemyBombs += s.bf.Enemies[i].Bombs
		}
	}
	value += float64(myBombs-enemyBombs) * 300.0

	for i := range s.bf.Mine {
		a := &s.bf.Mine[i]
		if !a.Alive() {
			continue
		}
		if nearest := s.bf.NearestEnemy(a.X, a.Y); nearest != nil {
			d := a.DistanceTo(*nearest)
			if d <= 4 {
				value += 200.0
			}
			if d <= 2 {
				value += 100.0
			}
		}
	}

	value += float64(tactics.TerritoryBalance(s.bf)) * 2.0
	return value
}
