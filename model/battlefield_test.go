package model

import "testing"

func testBattlefield() *Battlefield {
	return &Battlefield{
		Board: NewBoard(10, 10),
		Mine: []AgentState{
			{ID: 1, X: 2, Y: 2, Wetness: 10},
			{ID: 2, X: 3, Y: 2, Wetness: 100}, // dead
		},
		Enemies: []AgentState{
			{ID: 3, X: 7, Y: 2, Wetness: 40},
			{ID: 4, X: 8, Y: 8, Wetness: 0},
		},
		Profiles: map[int]AgentProfile{
			1: {ID: 1, OptimalRange: 4, SoakingPower: 16},
			3: {ID: 3, OptimalRange: 4, SoakingPower: 16},
		},
	}
}

func TestCloneIsIndependent(t *testing.T) {
	bf := testBattlefield()
	clone := bf.Clone()
	clone.Mine[0].Wetness = 99
	clone.Enemies[0].X = 0
	if bf.Mine[0].Wetness != 10 {
		t.Errorf("clone mutation leaked into original: wetness %d", bf.Mine[0].Wetness)
	}
	if bf.Enemies[0].X != 7 {
		t.Errorf("clone mutation leaked into original: x %d", bf.Enemies[0].X)
	}
	if clone.Board != bf.Board {
		t.Error("clone should share the immutable board")
	}
}

func TestOccupiedIgnoresDeadAndSelf(t *testing.T) {
	bf := testBattlefield()
	if !bf.Occupied(2, 2, -1) {
		t.Error("living agent's cell should be occupied")
	}
	if bf.Occupied(3, 2, -1) {
		t.Error("dead agent's cell should not be occupied")
	}
	if bf.Occupied(2, 2, 1) {
		t.Error("agent should not block its own cell")
	}
}

func TestFreeCell(t *testing.T) {
	bf := testBattlefield()
	if bf.FreeCell(-1, 0, -1) {
		t.Error("out of bounds cell reported free")
	}
	if bf.FreeCell(7, 2, -1) {
		t.Error("enemy-occupied cell reported free")
	}
	if !bf.FreeCell(5, 5, -1) {
		t.Error("empty in-bounds cell reported occupied")
	}
}

func TestAliveCountAndTeamHealth(t *testing.T) {
	bf := testBattlefield()
	mine, enemies := bf.AliveCount()
	if mine != 1 || enemies != 2 {
		t.Errorf("AliveCount() = (%d, %d), want (1, 2)", mine, enemies)
	}
	myHealth, enemyHealth := bf.TeamHealth()
	if myHealth != 90 {
		t.Errorf("my team health = %d, want 90", myHealth)
	}
	if enemyHealth != 160 {
		t.Errorf("enemy team health = %d, want 160", enemyHealth)
	}
}

func TestNearestEnemy(t *testing.T) {
	bf := testBattlefield()
	nearest := bf.NearestEnemy(2, 2)
	if nearest == nil || nearest.ID != 3 {
		t.Fatalf("NearestEnemy(2,2) = %v, want agent 3", nearest)
	}
	bf.Enemies[0].Wetness = 100
	bf.Enemies[1].Wetness = 100
	if bf.NearestEnemy(2, 2) != nil {
		t.Error("NearestEnemy should be nil with the enemy team wiped")
	}
}
