package model

import "testing"

func TestClassifyAgent(t *testing.T) {
	tests := []struct {
		name                string
		optimalRange, power int
		bombs               int
		want                AgentClass
	}{
		{"sniper stat line", 6, 24, 0, Sniper},
		{"bomber stat line", 2, 8, 3, Bomber},
		{"berserker stat line", 2, 32, 1, Berserker},
		{"assault stat line", 4, 16, 2, Assault},
		{"gunner default", 4, 16, 1, Gunner},
		{"short range low power few bombs", 2, 16, 1, Gunner},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyAgent(tc.optimalRange, tc.power, tc.bombs)
			if got != tc.want {
				t.Errorf("ClassifyAgent(%d, %d, %d) = %v, want %v", tc.optimalRange, tc.power, tc.bombs, got, tc.want)
			}
		})
	}
}

func TestAgentStateAliveHealth(t *testing.T) {
	tests := []struct {
		wetness    int
		alive      bool
		health     int
	}{
		{0, true, 100},
		{99, true, 1},
		{100, false, 0},
		{150, false, 0},
	}
	for _, tc := range tests {
		a := AgentState{Wetness: tc.wetness}
		if a.Alive() != tc.alive {
			t.Errorf("wetness %d: Alive() = %v, want %v", tc.wetness, a.Alive(), tc.alive)
		}
		if a.Health() != tc.health {
			t.Errorf("wetness %d: Health() = %d, want %d", tc.wetness, a.Health(), tc.health)
		}
	}
}

func TestManhattanDistance(t *testing.T) {
	tests := []struct {
		x1, y1, x2, y2, want int
	}{
		{0, 0, 0, 0, 0},
		{0, 0, 3, 4, 7},
		{5, 5, 2, 7, 5},
		{-1, -1, 1, 1, 4},
	}
	for _, tc := range tests {
		got := ManhattanDistance(tc.x1, tc.y1, tc.x2, tc.y2)
		if got != tc.want {
			t.Errorf("ManhattanDistance(%d,%d,%d,%d) = %d, want %d", tc.x1, tc.y1, tc.x2, tc.y2, got, tc.want)
		}
	}
}
