package tactics

import (
	"testing"

	"github.com/nstehr/splashdown/model"
)

func TestTacticalPriorityBounds(t *testing.T) {
	bf := &model.Battlefield{
		Board:    model.NewBoard(16, 8),
		Mine:     []model.AgentState{{ID: 1, X: 2, Y: 4, Wetness: 60}},
		Enemies:  []model.AgentState{{ID: 2, X: 4, Y: 4, Wetness: 90}},
		Profiles: map[int]model.AgentProfile{1: gunnerProfile(1, 0)},
	}
	p := TacticalPriority(bf, bf.Mine[0])
	if p < 0 || p > 1.5 {
		t.Errorf("TacticalPriority = %v, want a small bounded blend", p)
	}
	// A certain kill in range should dominate the blend.
	if p < 0.5 {
		t.Errorf("TacticalPriority = %v, want >= 0.5 with a kill available", p)
	}
}

func TestTerritoryBalanceSymmetry(t *testing.T) {
	bf := &model.Battlefield{
		Board:   model.NewBoard(11, 5),
		Mine:    []model.AgentState{{ID: 1, X: 2, Y: 2}},
		Enemies: []model.AgentState{{ID: 2, X: 8, Y: 2}},
		Profiles: map[int]model.AgentProfile{
			1: gunnerProfile(1, 0),
			2: gunnerProfile(2, 1),
		},
	}
	if got := TerritoryBalance(bf); got != 0 {
		t.Errorf("mirrored positions: TerritoryBalance = %d, want 0", got)
	}

	// Waterlogging one side shrinks its reach.
	bf.Mine[0].Wetness = 60
	if got := TerritoryBalance(bf); got >= 0 {
		t.Errorf("waterlogged team: TerritoryBalance = %d, want negative", got)
	}
}

func TestTileStrategicValueRewardsCoverAdjacency(t *testing.T) {
	board := model.NewBoard(16, 8)
	board.SetTile(5, 4, model.TileHighCover)
	bf := &model.Battlefield{
		Board:    board,
		Mine:     []model.AgentState{{ID: 1, X: 2, Y: 4}},
		Enemies:  []model.AgentState{{ID: 2, X: 10, Y: 4}},
		Profiles: map[int]model.AgentProfile{1: gunnerProfile(1, 0)},
	}
	prof := bf.Profile(1)
	nextToCover := TileStrategicValue(bf, 4, 4, prof)
	openGround := TileStrategicValue(bf, 2, 2, prof)
	if nextToCover <= openGround {
		t.Errorf("cover-adjacent value %v <= open value %v", nextToCover, openGround)
	}
}
