package model

// AgentClass is derived from an agent's static combat profile. The game never
// transmits it; the thresholds below recover it from range/power/bomb stats.
type AgentClass int

const (
	Gunner AgentClass = iota
	Sniper
	Bomber
	Assault
	Berserker
)

func (c AgentClass) String() string {
	switch c {
	case Sniper:
		return "SNIPER"
	case Bomber:
		return "BOMBER"
	case Assault:
		return "ASSAULT"
	case Berserker:
		return "BERSERKER"
	default:
		return "GUNNER"
	}
}

// ClassifyAgent maps a static profile onto a class. Order matters: the sniper
// and berserker stat lines overlap the generic checks below them.
func ClassifyAgent(optimalRange, soakingPower, splashBombs int) AgentClass {
	if optimalRange == 6 && soakingPower == 24 {
		return Sniper
	}
	if optimalRange == 2 && splashBombs >= 3 {
		return Bomber
	}
	if optimalRange == 2 && soakingPower == 32 {
		return Berserker
	}
	if optimalRange == 4 && splashBombs >= 2 {
		return Assault
	}
	return Gunner
}

// AgentProfile is the static half of an agent, set once at game start.
type AgentProfile struct {
	ID            int
	Player        int
	ShootCooldown int // turns between shots
	OptimalRange  int
	SoakingPower  int // base shot damage
	SplashBombs   int // starting bomb count
	Class         AgentClass
}

// AgentState is the dynamic half, replaced wholesale from each turn's input.
// Wetness accumulates damage; 100 or more means eliminated.
type AgentState struct {
	ID       int
	X, Y     int
	Cooldown int
	Bombs    int
	Wetness  int
}

// Alive reports whether the agent is still in play.
func (a AgentState) Alive() bool { return a.Wetness < 100 }

// Health is the remaining damage budget (100 - wetness), never negative.
func (a AgentState) Health() int {
	h := 100 - a.Wetness
	if h < 0 {
		return 0
	}
	return h
}

// DistanceTo returns the Manhattan distance to another agent.
func (a AgentState) DistanceTo(b AgentState) int {
	return ManhattanDistance(a.X, a.Y, b.X, b.Y)
}
