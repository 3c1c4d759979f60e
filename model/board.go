package model

// TileType classifies a board cell. Cover tiles block movement targets for
// nobody but reduce incoming shot damage when they sit between shooter and
// target.
type TileType byte

const (
	TileOpen      TileType = 0 // open ground
	TileLowCover  TileType = 1 // waist-high cover, halves incoming shots
	TileHighCover TileType = 2 // full cover, quarters incoming shots
)

// Board is the rectangular tile grid. Immutable after game start; every
// turn's pipeline shares the same Board value.
type Board struct {
	Width  int
	Height int
	Tiles  []TileType // row-major: Tiles[y*Width + x]
}

// NewBoard returns an all-open board of the given dimensions.
func NewBoard(width, height int) *Board {
	return &Board{
		Width:  width,
		Height: height,
		Tiles:  make([]TileType, width*height),
	}
}

// At returns the tile type at (x, y). Returns TileOpen for out-of-bounds
// coordinates so callers scanning neighborhoods don't need their own guards.
func (b *Board) At(x, y int) TileType {
	if !b.InBounds(x, y) {
		return TileOpen
	}
	return b.Tiles[y*b.Width+x]
}

// SetTile stores a tile type; out-of-bounds writes are ignored.
func (b *Board) SetTile(x, y int, t TileType) {
	if b.InBounds(x, y) {
		b.Tiles[y*b.Width+x] = t
	}
}

// InBounds reports whether (x, y) is a valid cell.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// IsCover reports whether the tile at (x, y) is either cover tier.
func (b *Board) IsCover(x, y int) bool {
	t := b.At(x, y)
	return t == TileLowCover || t == TileHighCover
}

// ManhattanDistance is the movement and targeting metric for the whole game.
func ManhattanDistance(x1, y1, x2, y2 int) int {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y2
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
