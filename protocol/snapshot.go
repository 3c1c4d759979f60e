package protocol

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nstehr/splashdown/model"
)

// SnapshotWriter dumps one human-readable file per decided turn for offline
// replay analysis. A nil SnapshotWriter is a no-op, so callers never branch.
type SnapshotWriter struct {
	dir string
}

// NewSnapshotWriter returns nil when dir is empty.
func NewSnapshotWriter(dir string) *SnapshotWriter {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Warn("snapshot dir unavailable, snapshots disabled", "dir", dir, "error", err)
		return nil
	}
	return &SnapshotWriter{dir: dir}
}

// Write records the battlefield and the chosen actions. Failures are logged
// and swallowed; snapshots must never cost a turn.
func (s *SnapshotWriter) Write(bf *model.Battlefield, actions []model.Action) {
	if s == nil {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "turn %d\n", bf.Turn)
	for i := range bf.Mine {
		a := &bf.Mine[i]
		fmt.Fprintf(&b, "mine %d pos=(%d,%d) wet=%d bombs=%d cd=%d\n", a.ID, a.X, a.Y, a.Wetness, a.Bombs, a.Cooldown)
		if i < len(actions) {
			fmt.Fprintf(&b, "  -> %s value=%.1f %s\n", FormatAction(a.ID, actions[i]), actions[i].Value, actions[i].Rationale)
		}
	}
	for i := range bf.Enemies {
		a := &bf.Enemies[i]
		fmt.Fprintf(&b, "enemy %d pos=(%d,%d) wet=%d bombs=%d cd=%d\n", a.ID, a.X, a.Y, a.Wetness, a.Bombs, a.Cooldown)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("turn_%04d.txt", bf.Turn))
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		slog.Warn("snapshot write failed", "path", path, "error", err)
	}
}
