// Package protocol handles the referee's line protocol: the one-time init
// block, the per-turn state block, and the formatted order lines going back.
package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/nstehr/splashdown/model"
)

// ErrStreamClosed reports that the referee closed the input stream, which is
// how a finished game looks from inside the agent process.
var ErrStreamClosed = errors.New("referee stream closed")

// Reader tokenizes the referee's input. All values are whitespace-separated
// integers, so one word scanner serves both the init and turn blocks.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader wraps the referee stream.
func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	s.Buffer(make([]byte, 64*1024), 64*1024)
	return &Reader{scanner: s}
}

func (r *Reader) nextInt() (int, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return 0, fmt.Errorf("read token: %w", err)
		}
		return 0, ErrStreamClosed
	}
	v, err := strconv.Atoi(r.scanner.Text())
	if err != nil {
		return 0, fmt.Errorf("parse int %q: %w", r.scanner.Text(), err)
	}
	return v, nil
}

// Init is everything the referee sends once before the first turn.
type Init struct {
	MyID     int
	Profiles map[int]model.AgentProfile
	Board    *model.Board
}

// ReadInit parses the init block: my player id, the full agent roster with
// static stats, then the board dimensions and every tile.
func (r *Reader) ReadInit() (*Init, error) {
	myID, err := r.nextInt()
	if err != nil {
		return nil, fmt.Errorf("init: my id: %w", err)
	}

	count, err := r.nextInt()
	if err != nil {
		return nil, fmt.Errorf("init: agent count: %w", err)
	}
	profiles := make(map[int]model.AgentProfile, count)
	for i := 0; i < count; i++ {
		var p model.AgentProfile
		fields := []*int{&p.ID, &p.Player, &p.ShootCooldown, &p.OptimalRange, &p.SoakingPower, &p.SplashBombs}
		for _, f := range fields {
			if *f, err = r.nextInt(); err != nil {
				return nil, fmt.Errorf("init: agent %d: %w", i, err)
			}
		}
		p.Class = model.ClassifyAgent(p.OptimalRange, p.SoakingPower, p.SplashBombs)
		profiles[p.ID] = p
	}

	width, err := r.nextInt()
	if err != nil {
		return nil, fmt.Errorf("init: width: %w", err)
	}
	height, err := r.nextInt()
	if err != nil {
		return nil, fmt.Errorf("init: height: %w", err)
	}
	board := model.NewBoard(width, height)
	for i := 0; i < width*height; i++ {
		x, err := r.nextInt()
		if err != nil {
			return nil, fmt.Errorf("init: tile %d: %w", i, err)
		}
		y, err := r.nextInt()
		if err != nil {
			return nil, fmt.Errorf("init: tile %d: %w", i, err)
		}
		tile, err := r.nextInt()
		if err != nil {
			return nil, fmt.Errorf("init: tile %d: %w", i, err)
		}
		board.SetTile(x, y, model.TileType(tile))
	}

	return &Init{MyID: myID, Profiles: profiles, Board: board}, nil
}

// Turn is one turn's dynamic state: every living agent's position and
// resources, plus how many order lines the referee expects back.
type Turn struct {
	Agents        []model.AgentState
	ExpectedLines int
}

// ReadTurn parses one turn block. Agents absent from the block are dead;
// the caller reconciles against the roster.
func (r *Reader) ReadTurn() (*Turn, error) {
	count, err := r.nextInt()
	if err != nil {
		return nil, fmt.Errorf("turn: agent count: %w", err)
	}
	agents := make([]model.AgentState, count)
	for i := 0; i < count; i++ {
		a := &agents[i]
		fields := []*int{&a.ID, &a.X, &a.Y, &a.Cooldown, &a.Bombs, &a.Wetness}
		for _, f := range fields {
			if *f, err = r.nextInt(); err != nil {
				return nil, fmt.Errorf("turn: agent %d: %w", i, err)
			}
		}
	}
	expected, err := r.nextInt()
	if err != nil {
		return nil, fmt.Errorf("turn: expected line count: %w", err)
	}
	return &Turn{Agents: agents, ExpectedLines: expected}, nil
}

// BuildBattlefield splits a turn's roster into my team and the enemy's
// using the profile table, producing the decision input.
func BuildBattlefield(setup *Init, turn *Turn, turnNumber int) *model.Battlefield {
	bf := &model.Battlefield{
		Board:    setup.Board,
		Profiles: setup.Profiles,
		Turn:     turnNumber,
	}
	for _, a := range turn.Agents {
		if setup.Profiles[a.ID].Player == setup.MyID {
			bf.Mine = append(bf.Mine, a)
		} else {
			bf.Enemies = append(bf.Enemies, a)
		}
	}
	return bf
}
