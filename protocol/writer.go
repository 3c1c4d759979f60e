package protocol

import (
	"bufio"
	"fmt"
	"io"

	"github.com/nstehr/splashdown/model"
)

// Writer emits order lines. Output is buffered and flushed once per turn so
// the referee sees the whole order set atomically.
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps the referee's command stream.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// FormatAction renders one agent's order line. Standalone attacks carry a
// trailing HUNKER_DOWN so the agent still gets the defensive bonus in the
// same turn; compound orders use their move leg instead.
func FormatAction(agentID int, a model.Action) string {
	switch a.Kind {
	case model.ActionMove:
		return fmt.Sprintf("%d;MOVE %d %d; HUNKER_DOWN", agentID, a.MoveX, a.MoveY)
	case model.ActionShoot:
		return fmt.Sprintf("%d;SHOOT %d; HUNKER_DOWN", agentID, a.TargetID)
	case model.ActionThrow:
		return fmt.Sprintf("%d;THROW %d %d; HUNKER_DOWN", agentID, a.BombX, a.BombY)
	case model.ActionMoveShoot:
		return fmt.Sprintf("%d;MOVE %d %d; SHOOT %d", agentID, a.MoveX, a.MoveY, a.TargetID)
	case model.ActionMoveThrow:
		return fmt.Sprintf("%d;MOVE %d %d; THROW %d %d", agentID, a.MoveX, a.MoveY, a.BombX, a.BombY)
	default:
		return fmt.Sprintf("%d;HUNKER_DOWN", agentID)
	}
}

// WriteTurn emits exactly expected lines: the resolved actions first, then
// hunker padding for any shortfall. The referee disqualifies agents that
// send the wrong line count, so the padding is load-bearing. Padding lines
// borrow a living agent's id; the referee rejects orders without one.
func (w *Writer) WriteTurn(bf *model.Battlefield, actions []model.Action, expected int) error {
	fallbackID := 0
	if len(bf.Mine) > 0 {
		fallbackID = bf.Mine[0].ID
	}
	for i := range bf.Mine {
		if bf.Mine[i].Alive() {
			fallbackID = bf.Mine[i].ID
			break
		}
	}

	written := 0
	for i := range bf.Mine {
		if written >= expected {
			break
		}
		agent := &bf.Mine[i]
		if !agent.Alive() {
			continue
		}
		line := FormatAction(agent.ID, actionAt(actions, i))
		if _, err := fmt.Fprintln(w.w, line); err != nil {
			return fmt.Errorf("write order: %w", err)
		}
		written++
	}
	for ; written < expected; written++ {
		if _, err := fmt.Fprintf(w.w, "%d;HUNKER_DOWN\n", fallbackID); err != nil {
			return fmt.Errorf("write padding: %w", err)
		}
	}
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("flush orders: %w", err)
	}
	return nil
}

func actionAt(actions []model.Action, i int) model.Action {
	if i < len(actions) {
		return actions[i]
	}
	return model.Hunker("missing action")
}
