package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/nstehr/splashdown/commander"
	"github.com/nstehr/splashdown/model"
	"github.com/nstehr/splashdown/protocol"
	"github.com/nstehr/splashdown/tactics"
)

// cacheBuildBudget is how much of the generous first-turn allowance goes to
// precomputing the opening scenario table.
const cacheBuildBudget = 2 * time.Second

func main() {
	// stdout belongs to the referee; everything else goes to stderr.
	level := slog.LevelInfo
	if os.Getenv("SPLASHDOWN_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	tuning := tactics.DefaultTuning()
	if path := os.Getenv("SPLASHDOWN_TUNING"); path != "" {
		t, err := tactics.LoadTuning(path)
		if err != nil {
			slog.Error("tuning load failed, using defaults", "path", path, "error", err)
		} else {
			tuning = t
			slog.Info("tuning loaded", "path", path)
		}
	}

	cmd, err := commander.New(tuning)
	if err != nil {
		slog.Error("commander init failed", "error", err)
		os.Exit(1)
	}

	reader := protocol.NewReader(os.Stdin)
	writer := protocol.NewWriter(os.Stdout)
	snapshots := protocol.NewSnapshotWriter(os.Getenv("SPLASHDOWN_SNAPSHOT_DIR"))

	setup, err := reader.ReadInit()
	if err != nil {
		slog.Error("init read failed", "error", err)
		os.Exit(1)
	}
	slog.Info("initialized",
		"myID", setup.MyID,
		"agents", len(setup.Profiles),
		"board", setup.Board.Width*setup.Board.Height,
	)

	cmd.SetCache(commander.NewCached(tuning, cacheBuildBudget))

	for turnNumber := 0; ; turnNumber++ {
		turn, err := reader.ReadTurn()
		if err != nil {
			if errors.Is(err, protocol.ErrStreamClosed) {
				slog.Info("game over", "turns", turnNumber)
				return
			}
			slog.Error("turn read failed", "turn", turnNumber, "error", err)
			os.Exit(1)
		}

		bf := protocol.BuildBattlefield(setup, turn, turnNumber)
		started := time.Now()
		actions := decideSafely(cmd, bf)
		elapsed := time.Since(started)

		snapshots.Write(bf, actions)
		if err := writer.WriteTurn(bf, actions, turn.ExpectedLines); err != nil {
			slog.Error("order write failed", "turn", turnNumber, "error", err)
			os.Exit(1)
		}
		slog.Info("turn decided",
			"turn", turnNumber,
			"elapsedMs", elapsed.Milliseconds(),
			"orders", turn.ExpectedLines,
		)
	}
}

// decideSafely guards the pipeline with a recover so a panic costs one
// turn's quality, not the game. The referee treats a missing order set as a
// loss, so hunker-everything is always preferable to crashing.
func decideSafely(cmd *commander.Commander, bf *model.Battlefield) (actions []model.Action) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("decision pipeline panicked, holding position", "turn", bf.Turn, "panic", r)
			actions = make([]model.Action, len(bf.Mine))
			for i := range actions {
				actions[i] = model.Hunker("pipeline recovery")
			}
		}
	}()
	return cmd.DecideTurn(bf)
}
