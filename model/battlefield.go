package model

// Battlefield is the full decision input for one turn: the shared immutable
// board, both teams' fresh agent states, and the static profile roster.
// A Battlefield (or a Clone of it) is owned by exactly one turn's pipeline.
type Battlefield struct {
	Board    *Board
	Mine     []AgentState
	Enemies  []AgentState
	Profiles map[int]AgentProfile
	Turn     int
}

// Profile looks up the static profile for an agent id. The zero profile is
// returned for unknown ids, which classifies as a Gunner with no reach and
// is effectively inert.
func (bf *Battlefield) Profile(id int) AgentProfile {
	return bf.Profiles[id]
}

// Clone deep-copies the mutable agent slices for rollout use. The board and
// profile roster are immutable and shared.
func (bf *Battlefield) Clone() *Battlefield {
	c := &Battlefield{
		Board:    bf.Board,
		Mine:     make([]AgentState, len(bf.Mine)),
		Enemies:  make([]AgentState, len(bf.Enemies)),
		Profiles: bf.Profiles,
		Turn:     bf.Turn,
	}
	copy(c.Mine, bf.Mine)
	copy(c.Enemies, bf.Enemies)
	return c
}

// Occupied reports whether any living agent stands on (x, y). The excluded
// id lets an agent test its own destination without seeing itself.
func (bf *Battlefield) Occupied(x, y, excludeID int) bool {
	for i := range bf.Mine {
		a := &bf.Mine[i]
		if a.ID != excludeID && a.Alive() && a.X == x && a.Y == y {
			return true
		}
	}
	for i := range bf.Enemies {
		a := &bf.Enemies[i]
		if a.ID != excludeID && a.Alive() && a.X == x && a.Y == y {
			return true
		}
	}
	return false
}

// FreeCell reports whether (x, y) is in bounds and unoccupied by any living
// agent other than excludeID.
func (bf *Battlefield) FreeCell(x, y, excludeID int) bool {
	return bf.Board.InBounds(x, y) && !bf.Occupied(x, y, excludeID)
}

// AliveCount returns the number of living agents on each side.
func (bf *Battlefield) AliveCount() (mine, enemies int) {
	for i := range bf.Mine {
		if bf.Mine[i].Alive() {
			mine++
		}
	}
	for i := range bf.Enemies {
		if bf.Enemies[i].Alive() {
			enemies++
		}
	}
	return mine, enemies
}

// TeamHealth returns the summed remaining health of each side's living agents.
func (bf *Battlefield) TeamHealth() (mine, enemies int) {
	for i := range bf.Mine {
		if bf.Mine[i].Alive() {
			mine += bf.Mine[i].Health()
		}
	}
	for i := range bf.Enemies {
		if bf.Enemies[i].Alive() {
			enemies += bf.Enemies[i].Health()
		}
	}
	return mine, enemies
}

// NearestEnemy returns the living enemy closest to (x, y), or nil when the
// enemy team is eliminated.
func (bf *Battlefield) NearestEnemy(x, y int) *AgentState {
	var nearest *AgentState
	best := int(^uint(0) >> 1)
	for i := range bf.Enemies {
		e := &bf.Enemies[i]
		if !e.Alive() {
			continue
		}
		d := ManhattanDistance(x, y, e.X, e.Y)
		if d < best {
			best = d
			nearest = e
		}
	}
	return nearest
}
