package model

// ActionKind discriminates the Action variant. The wire protocol's string
// verbs stay in the protocol package; the engine only handles these tags.
type ActionKind int

const (
	ActionHunker ActionKind = iota
	ActionMove
	ActionShoot
	ActionThrow
	ActionMoveShoot
	ActionMoveThrow
)

func (k ActionKind) String() string {
	switch k {
	case ActionMove:
		return "MOVE"
	case ActionShoot:
		return "SHOOT"
	case ActionThrow:
		return "THROW"
	case ActionMoveShoot:
		return "MOVE_SHOOT"
	case ActionMoveThrow:
		return "MOVE_THROW"
	default:
		return "HUNKER_DOWN"
	}
}

// Action is one agent's order for the turn. Only the payload fields relevant
// to Kind are meaningful: MoveX/MoveY for the move leg, TargetID for shots,
// BombX/BombY for the throw impact cell. Value and Rationale exist for
// observability; they never influence game mechanics.
type Action struct {
	Kind         ActionKind
	MoveX, MoveY int
	TargetID     int
	BombX, BombY int
	Value        float64
	Rationale    string
}

// Hunker is the universal fallback order.
func Hunker(rationale string) Action {
	return Action{Kind: ActionHunker, TargetID: -1, MoveX: -1, MoveY: -1, BombX: -1, BombY: -1, Rationale: rationale}
}

// MoveTo orders a step toward (x, y).
func MoveTo(x, y int) Action {
	return Action{Kind: ActionMove, MoveX: x, MoveY: y, TargetID: -1, BombX: -1, BombY: -1}
}

// ShootAt orders a shot at the given enemy.
func ShootAt(targetID int) Action {
	return Action{Kind: ActionShoot, TargetID: targetID, MoveX: -1, MoveY: -1, BombX: -1, BombY: -1}
}

// ThrowAt orders a bomb throw onto the impact cell (x, y).
func ThrowAt(x, y int) Action {
	return Action{Kind: ActionThrow, BombX: x, BombY: y, TargetID: -1, MoveX: -1, MoveY: -1}
}

// MoveAndShoot orders a move to (x, y) followed by a shot.
func MoveAndShoot(x, y, targetID int) Action {
	return Action{Kind: ActionMoveShoot, MoveX: x, MoveY: y, TargetID: targetID, BombX: -1, BombY: -1}
}

// MoveAndThrow orders a move to (x, y) followed by a throw onto (bx, by).
func MoveAndThrow(x, y, bx, by int) Action {
	return Action{Kind: ActionMoveThrow, MoveX: x, MoveY: y, BombX: bx, BombY: by, TargetID: -1}
}

// HasMove reports whether the action includes a movement leg, which is the
// only part subject to collision resolution.
func (a Action) HasMove() bool {
	return a.Kind == ActionMove || a.Kind == ActionMoveShoot || a.Kind == ActionMoveThrow
}
